package catalog

import (
	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/mood"
)

// TimeOfDay is a part of the day a location is best visited in.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// RawLocation is a points-of-interest record as stored upstream.
// Every field may be missing or malformed.
type RawLocation struct {
	ID          string   `json:"id"`
	Island      string   `json:"island"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	Moods       []string `json:"moods,omitempty"`
	BestTime    string   `json:"best_time,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// RawActivity is an add-on record as stored upstream.
type RawActivity struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Price   int      `json:"price"`
	Islands []string `json:"islands"`
}

// RawTransitLeg is a scheduled ferry record as stored upstream.
type RawTransitLeg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Operator    string `json:"operator"`
	Departs     string `json:"departs"`
	Arrives     string `json:"arrives"`
}

// Location is a normalized point of interest.
type Location struct {
	ID        string      `json:"id"`
	Island    geo.Island  `json:"island"`
	Name      string      `json:"name"`
	Duration  float64     `json:"duration"`
	Moods     []mood.Tag  `json:"moods"`
	BestTimes []TimeOfDay `json:"best_times"`
	Image     string      `json:"image,omitempty"`
}

// Activity is a normalized paid add-on.
type Activity struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Price   int          `json:"price"`
	Islands []geo.Island `json:"islands"`
}

// TransitLeg is advisory ferry metadata for one origin/destination pair.
type TransitLeg struct {
	Origin      geo.Island `json:"origin"`
	Destination geo.Island `json:"destination"`
	Operator    string     `json:"operator"`
	Departs     string     `json:"departs"`
	Arrives     string     `json:"arrives"`
}

// Snapshot is the full set of reference data a session works against.
// It is read-only once built.
type Snapshot struct {
	Locations   []Location   `json:"locations"`
	Activities  []Activity   `json:"activities"`
	TransitLegs []TransitLeg `json:"transit_legs"`
}

// Location looks up a location by ID.
func (s *Snapshot) Location(id string) (Location, bool) {
	for _, l := range s.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// Activity looks up an activity by ID.
func (s *Snapshot) Activity(id string) (Activity, bool) {
	for _, a := range s.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}
