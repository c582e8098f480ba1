package session

import (
	"maps"

	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/itinerary"
	"github.com/neexbeast/islandhop/internal/mood"
	"github.com/neexbeast/islandhop/internal/pricing"
)

// SelectionView is the read-only copy of the traveller's selection.
type SelectionView struct {
	Locations    []string   `json:"locations"`
	Activities   []string   `json:"activities"`
	MoodFilter   mood.Tag   `json:"mood_filter,omitempty"`
	IslandFilter geo.Island `json:"island_filter,omitempty"`
	StartAtHub   bool       `json:"start_at_hub"`
}

// View is everything the presentation layer reads back after a change.
type View struct {
	ID        string                 `json:"id"`
	Status    Status                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Itinerary *itinerary.Itinerary   `json:"itinerary,omitempty"`
	Cost      *pricing.Breakdown     `json:"cost,omitempty"`
	Nights    []pricing.IslandNights `json:"nights,omitempty"`
	Selection *SelectionView         `json:"selection,omitempty"`
	Options   *pricing.Options       `json:"options,omitempty"`
}

// View returns a snapshot of the session safe to hand to other goroutines.
func (s *Session) View() View {
	v := View{ID: s.id, Status: s.status}
	if !s.Ready() {
		if s.loadErr != nil {
			v.Error = s.loadErr.Error()
		}
		return v
	}

	it := s.itinerary.Clone()
	cost := s.cost
	opts := s.opts
	opts.Hotels = maps.Clone(s.opts.Hotels)
	opts.ScooterIslands = append([]geo.Island(nil), s.opts.ScooterIslands...)
	opts.Activities = s.selectedActivityIDs()

	locIDs := make([]string, 0, len(s.locations))
	for _, l := range s.selectedLocations() {
		locIDs = append(locIDs, l.ID)
	}

	v.Itinerary = &it
	v.Cost = &cost
	v.Nights = s.Nights()
	v.Selection = &SelectionView{
		Locations:    locIDs,
		Activities:   opts.Activities,
		MoodFilter:   s.moodFilter,
		IslandFilter: s.islandFilter,
		StartAtHub:   s.startAtHub,
	}
	v.Options = &opts
	return v
}
