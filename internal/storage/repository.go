package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/islandhop/internal/catalog"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository reads the reference catalogs from Postgres. It satisfies
// catalog.Source.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ListLocations returns every location row in insertion order.
// Nullable columns come back as zero values and are defaulted by the adapter.
func (r *Repository) ListLocations(ctx context.Context) ([]catalog.RawLocation, error) {
	const q = `
		SELECT id, island, name, description, category, duration, moods, best_time, image
		FROM locations
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var out []catalog.RawLocation
	for rows.Next() {
		var (
			l                                          catalog.RawLocation
			island, description, category, best, image *string
		)
		if err := rows.Scan(
			&l.ID,
			&island,
			&l.Name,
			&description,
			&category,
			&l.Duration,
			&l.Moods,
			&best,
			&image,
		); err != nil {
			return nil, fmt.Errorf("scanning location row: %w", err)
		}
		l.Island = deref(island)
		l.Description = deref(description)
		l.Category = deref(category)
		l.BestTime = deref(best)
		l.Image = deref(image)
		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}

	return out, nil
}

// ListActivities returns every activity row in insertion order.
func (r *Repository) ListActivities(ctx context.Context) ([]catalog.RawActivity, error) {
	const q = `
		SELECT id, name, price, islands
		FROM activities
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var out []catalog.RawActivity
	for rows.Next() {
		var a catalog.RawActivity
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.Islands); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}

	return out, nil
}

// ListTransitLegs returns the ferry schedule.
func (r *Repository) ListTransitLegs(ctx context.Context) ([]catalog.RawTransitLeg, error) {
	const q = `
		SELECT origin, destination, operator, departs, arrives
		FROM transit_legs
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying transit legs: %w", err)
	}
	defer rows.Close()

	var out []catalog.RawTransitLeg
	for rows.Next() {
		var (
			t                         catalog.RawTransitLeg
			operator, departs, arrive *string
		)
		if err := rows.Scan(&t.Origin, &t.Destination, &operator, &departs, &arrive); err != nil {
			return nil, fmt.Errorf("scanning transit leg row: %w", err)
		}
		t.Operator = deref(operator)
		t.Departs = deref(departs)
		t.Arrives = deref(arrive)
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transit leg rows: %w", err)
	}

	return out, nil
}

// UpsertLocation inserts or replaces one location. SeedLocations calls it
// for each record of a seed file.
func (r *Repository) UpsertLocation(ctx context.Context, l catalog.RawLocation) error {
	const q = `
		INSERT INTO locations (id, island, name, description, category, duration, moods, best_time, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET island      = EXCLUDED.island,
		    name        = EXCLUDED.name,
		    description = EXCLUDED.description,
		    category    = EXCLUDED.category,
		    duration    = EXCLUDED.duration,
		    moods       = EXCLUDED.moods,
		    best_time   = EXCLUDED.best_time,
		    image       = EXCLUDED.image
	`

	moods := l.Moods
	if moods == nil {
		moods = []string{}
	}
	if _, err := r.q.Exec(ctx, q,
		l.ID, l.Island, l.Name, l.Description, l.Category, l.Duration, moods, l.BestTime, l.Image,
	); err != nil {
		return fmt.Errorf("upserting location %s: %w", l.ID, err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
