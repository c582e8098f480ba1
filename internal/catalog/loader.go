package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds each of the three catalog fetches.
const DefaultFetchTimeout = 8 * time.Second

var (
	// ErrDataUnavailable marks a failed catalog load. Sessions built on a
	// failed load never leave the data-unavailable state.
	ErrDataUnavailable = errors.New("catalog data unavailable")
	// ErrTimeout marks a load that failed because a fetch hit its deadline.
	ErrTimeout = errors.New("catalog fetch timed out")
)

// LoadError reports which dataset broke the load.
type LoadError struct {
	Resource string
	Timeout  bool
	Err      error
}

func (e *LoadError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("loading %s catalog: timed out: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("loading %s catalog: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Timeout {
		return []error{ErrDataUnavailable, ErrTimeout, e.Err}
	}
	return []error{ErrDataUnavailable, e.Err}
}

// locationSource is satisfied by HTTPSource and storage.Repository.
type locationSource interface {
	ListLocations(ctx context.Context) ([]RawLocation, error)
}

// activitySource is satisfied by HTTPSource and storage.Repository.
type activitySource interface {
	ListActivities(ctx context.Context) ([]RawActivity, error)
}

// transitSource is satisfied by HTTPSource and storage.Repository.
type transitSource interface {
	ListTransitLegs(ctx context.Context) ([]RawTransitLeg, error)
}

// Source provides all three raw datasets.
type Source interface {
	locationSource
	activitySource
	transitSource
}

// Loader fetches the reference catalogs once and normalizes them.
type Loader struct {
	locations  locationSource
	activities activitySource
	transit    transitSource
	adapter    *Adapter
	timeout    time.Duration
}

// NewLoader constructs a Loader reading every dataset from src.
func NewLoader(src Source, adapter *Adapter, timeout time.Duration) *Loader {
	return NewLoaderWithSources(src, src, src, adapter, timeout)
}

// NewLoaderWithSources constructs a Loader with a separate source per dataset (used in tests).
func NewLoaderWithSources(l locationSource, a activitySource, t transitSource, adapter *Adapter, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{locations: l, activities: a, transit: t, adapter: adapter, timeout: timeout}
}

// Load fetches locations, activities and transit legs in parallel.
// Unlike a best-effort aggregate, any single failure fails the whole load:
// the first error cancels the remaining fetches and is returned as a
// *LoadError wrapping ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var (
		locs []RawLocation
		acts []RawActivity
		legs []RawTransitLeg
	)

	g.Go(func() error {
		var err error
		locs, err = fetch(gCtx, l.timeout, "locations", l.locations.ListLocations)
		return err
	})

	g.Go(func() error {
		var err error
		acts, err = fetch(gCtx, l.timeout, "activities", l.activities.ListActivities)
		return err
	})

	g.Go(func() error {
		var err error
		legs, err = fetch(gCtx, l.timeout, "transit", l.transit.ListTransitLegs)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := l.adapter.Snapshot(locs, acts, legs)
	slog.Info("catalog loaded",
		"locations", len(snap.Locations),
		"activities", len(snap.Activities),
		"transit_legs", len(snap.TransitLegs),
	)
	return snap, nil
}

// fetch runs one list call under its own deadline and converts failures
// and panics into a *LoadError.
func fetch[T any](ctx context.Context, timeout time.Duration, resource string, list func(context.Context) ([]T, error)) (out []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("catalog fetch panicked", "resource", resource, "recover", r)
			err = &LoadError{Resource: resource, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err = list(rctx)
	if err != nil {
		timedOut := errors.Is(rctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
		slog.Warn("catalog fetch failed", "resource", resource, "timeout", timedOut, "err", err)
		return nil, &LoadError{Resource: resource, Timeout: timedOut, Err: err}
	}
	return out, nil
}
