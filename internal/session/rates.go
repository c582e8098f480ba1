package session

import (
	"maps"
	"slices"

	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/pricing"
)

// IslandHotels lists the bookable hotels for one island of the trip.
type IslandHotels struct {
	Island geo.Island      `json:"island"`
	Nights int             `json:"nights"`
	Chosen string          `json:"chosen,omitempty"`
	Hotels []pricing.Hotel `json:"hotels"`
}

// RateOptions lists the valid values for the pricing setters.
type RateOptions struct {
	Currency     string               `json:"currency"`
	FerryClasses []pricing.FerryClass `json:"ferry_classes"`
	CabModels    []pricing.CabModel   `json:"cab_models"`
	ScooterRate  int                  `json:"scooter_day_rate"`
	Islands      []IslandHotels       `json:"islands"`
}

// RateOptions returns the rate card choices relevant to the current
// itinerary: every ferry class and cab model, and the hotels on each island
// the traveller spends a night on.
func (s *Session) RateOptions() (RateOptions, error) {
	if !s.Ready() {
		return RateOptions{}, ErrUnavailable
	}

	rc := s.model.Rates()
	out := RateOptions{
		Currency:     rc.Currency,
		FerryClasses: slices.Sorted(maps.Keys(rc.Ferry.Classes)),
		CabModels:    slices.Clone(rc.Ground.CabModels),
		ScooterRate:  rc.Ground.ScooterDayRate,
	}
	for _, n := range s.Nights() {
		hotels := rc.HotelsOn(n.Island)
		if hotels == nil {
			hotels = []pricing.Hotel{}
		}
		out.Islands = append(out.Islands, IslandHotels{
			Island: n.Island,
			Nights: n.Nights,
			Chosen: s.opts.Hotels[n.Island],
			Hotels: hotels,
		})
	}
	return out, nil
}
