package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/neexbeast/islandhop/internal/catalog"
)

// SeedLocations upserts every location in r, a JSON array in the same
// shape the HTTP catalog source serves. It returns the number of rows
// written. Records without an ID are rejected before anything is written.
func (r *Repository) SeedLocations(ctx context.Context, src io.Reader) (int, error) {
	var locs []catalog.RawLocation
	if err := json.NewDecoder(src).Decode(&locs); err != nil {
		return 0, fmt.Errorf("decoding location seed: %w", err)
	}
	if locs == nil {
		return 0, errors.New("location seed is not a list of records")
	}
	for i, l := range locs {
		if l.ID == "" {
			return 0, fmt.Errorf("location seed record %d has no id", i)
		}
	}

	for i, l := range locs {
		if err := r.UpsertLocation(ctx, l); err != nil {
			return i, fmt.Errorf("seeding locations: %w", err)
		}
	}
	slog.Debug("location seed applied", "count", len(locs))
	return len(locs), nil
}
