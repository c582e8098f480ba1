// Package session holds the explicit per-traveller state of the trip
// wizard. The UI mutates a Session through its methods (or Apply); every
// mutation synchronously recomputes the derived itinerary and estimate, so
// callers always read a consistent view.
package session

import (
	"errors"
	"slices"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/itinerary"
	"github.com/neexbeast/islandhop/internal/mood"
	"github.com/neexbeast/islandhop/internal/pricing"
)

// DefaultAdults is the party size a new session starts with.
const DefaultAdults = 2

// Status is the lifecycle state of a session.
type Status string

const (
	StatusReady       Status = "ready"
	StatusUnavailable Status = "data_unavailable"
)

// ErrUnavailable is returned for any change to a session whose catalog failed to load.
var ErrUnavailable = errors.New("session data unavailable")

// Config carries the static inputs shared by all sessions.
type Config struct {
	Rules itinerary.Rules
	Rates pricing.RateCard
}

// DefaultConfig returns the default scheduling rules and embedded rate card.
func DefaultConfig() Config {
	return Config{Rules: itinerary.DefaultRules(), Rates: pricing.DefaultRateCard()}
}

// Session is one traveller's wizard state. It is not safe for concurrent
// use; Store serializes access.
type Session struct {
	id      string
	status  Status
	loadErr error

	snap      *catalog.Snapshot
	profile   geo.Profile
	scheduler *itinerary.Scheduler
	model     *pricing.Model

	locations    map[string]bool
	activities   map[string]bool
	moodFilter   mood.Tag
	islandFilter geo.Island
	startAtHub   bool
	opts         pricing.Options

	itinerary itinerary.Itinerary
	cost      pricing.Breakdown
}

// New creates a ready session over a loaded catalog snapshot.
func New(id string, snap *catalog.Snapshot, cfg Config) *Session {
	s := &Session{
		id:         id,
		status:     StatusReady,
		snap:       snap,
		profile:    cfg.Rules.Profile,
		scheduler:  itinerary.NewScheduler(cfg.Rules, snap.TransitLegs),
		model:      pricing.NewModel(cfg.Rates, snap.Activities),
		locations:  make(map[string]bool),
		activities: make(map[string]bool),
		startAtHub: true,
		opts: pricing.Options{
			Hotels:     make(map[geo.Island]string),
			FerryClass: cfg.Rates.Ferry.DefaultClass,
			CabModel:   cfg.Rates.Ground.DefaultCab,
			Adults:     DefaultAdults,
		},
	}
	s.regenerate()
	return s
}

// Unavailable creates a session stuck in the data-unavailable state.
func Unavailable(id string, loadErr error) *Session {
	return &Session{id: id, status: StatusUnavailable, loadErr: loadErr}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// Ready reports whether the session can be edited.
func (s *Session) Ready() bool { return s.status == StatusReady }

// Itinerary returns a copy of the current itinerary.
func (s *Session) Itinerary() itinerary.Itinerary { return s.itinerary.Clone() }

// Cost returns the current estimate.
func (s *Session) Cost() pricing.Breakdown { return s.cost }

// Nights returns the nights per island of the current itinerary.
func (s *Session) Nights() []pricing.IslandNights { return pricing.NightsPerIsland(s.itinerary) }

// ---- selection ----

// ToggleLocation adds or removes a location and regenerates the itinerary,
// discarding manual day edits. Unknown IDs are ignored.
func (s *Session) ToggleLocation(id string) bool {
	if !s.Ready() {
		return false
	}
	if _, ok := s.snap.Location(id); !ok {
		return false
	}
	toggle(s.locations, id)
	s.regenerate()
	return true
}

// ToggleActivity adds or removes an add-on. Unknown IDs are ignored.
func (s *Session) ToggleActivity(id string) bool {
	if !s.Ready() {
		return false
	}
	if _, ok := s.snap.Activity(id); !ok {
		return false
	}
	toggle(s.activities, id)
	s.recompute()
	return true
}

// SetMoodFilter narrows VisibleLocations to one mood; the empty tag clears it.
func (s *Session) SetMoodFilter(tag mood.Tag) bool {
	if !s.Ready() || (tag != "" && !slices.Contains(mood.Vocabulary, tag)) {
		return false
	}
	s.moodFilter = tag
	return true
}

// SetIslandFilter narrows VisibleLocations to one island; the empty island clears it.
func (s *Session) SetIslandFilter(isl geo.Island) bool {
	if !s.Ready() {
		return false
	}
	if isl != "" {
		isl = s.profile.Canonicalize(string(isl))
	}
	s.islandFilter = isl
	return true
}

// SetStartAtHub sets whether the tour visits the hub island first and
// regenerates the itinerary.
func (s *Session) SetStartAtHub(v bool) bool {
	if !s.Ready() {
		return false
	}
	s.startAtHub = v
	s.regenerate()
	return true
}

// ---- day edits ----

// InsertDayAfter inserts an empty day after day i.
func (s *Session) InsertDayAfter(i int) bool {
	return s.edit(func(it *itinerary.Itinerary) bool { return it.InsertDayAfter(i) })
}

// DeleteDay removes day i unless it is an anchor day.
func (s *Session) DeleteDay(i int) bool {
	return s.edit(func(it *itinerary.Itinerary) bool { return it.DeleteDay(i) })
}

// MoveItem moves item p of day from one day in direction dir.
func (s *Session) MoveItem(from, p, dir int) bool {
	return s.edit(func(it *itinerary.Itinerary) bool { return it.MoveItem(from, p, dir) })
}

// SetTransport changes the transport mode of day i unless it is an anchor day.
func (s *Session) SetTransport(i int, mode itinerary.Transport) bool {
	return s.edit(func(it *itinerary.Itinerary) bool { return it.SetTransport(i, mode) })
}

func (s *Session) edit(fn func(*itinerary.Itinerary) bool) bool {
	if !s.Ready() || !fn(&s.itinerary) {
		return false
	}
	s.recompute()
	return true
}

// ---- pricing options ----

// SetFerryClass picks a ferry class listed on the rate card.
func (s *Session) SetFerryClass(class pricing.FerryClass) bool {
	if !s.Ready() || !s.model.Rates().HasFerryClass(class) {
		return false
	}
	s.opts.FerryClass = class
	s.recompute()
	return true
}

// SetCabModel picks a day-cab model listed on the rate card.
func (s *Session) SetCabModel(id string) bool {
	if !s.Ready() {
		return false
	}
	if _, ok := s.model.Rates().CabModel(id); !ok {
		return false
	}
	s.opts.CabModel = id
	s.recompute()
	return true
}

// ToggleScooterIsland switches the flat scooter rate on or off for an island.
func (s *Session) ToggleScooterIsland(isl geo.Island) bool {
	if !s.Ready() || isl == "" {
		return false
	}
	isl = s.profile.Canonicalize(string(isl))
	if i := slices.Index(s.opts.ScooterIslands, isl); i >= 0 {
		s.opts.ScooterIslands = slices.Delete(s.opts.ScooterIslands, i, i+1)
	} else {
		s.opts.ScooterIslands = append(s.opts.ScooterIslands, isl)
	}
	s.recompute()
	return true
}

// ChooseHotel selects the hotel for an island. An empty hotelID clears the
// choice; a hotel on a different island is refused.
func (s *Session) ChooseHotel(isl geo.Island, hotelID string) bool {
	if !s.Ready() || isl == "" {
		return false
	}
	isl = s.profile.Canonicalize(string(isl))
	if hotelID == "" {
		delete(s.opts.Hotels, isl)
		s.recompute()
		return true
	}
	h, ok := s.model.Rates().Hotel(hotelID)
	if !ok || h.Island != isl {
		return false
	}
	s.opts.Hotels[isl] = hotelID
	s.recompute()
	return true
}

// SetAdults sets the number of adults (at least one).
func (s *Session) SetAdults(n int) bool {
	if !s.Ready() || n < 1 {
		return false
	}
	s.opts.Adults = n
	s.recompute()
	return true
}

// SetInfants sets the number of infants (zero or more).
func (s *Session) SetInfants(n int) bool {
	if !s.Ready() || n < 0 {
		return false
	}
	s.opts.Infants = n
	s.recompute()
	return true
}

// ---- derived state ----

// regenerate rebuilds the itinerary from scratch and reprices it.
func (s *Session) regenerate() {
	selected := s.selectedLocations()
	islands := make([]geo.Island, 0, len(selected))
	for _, l := range selected {
		islands = append(islands, l.Island)
	}
	order := s.profile.ResolveOrder(islands, s.startAtHub)
	s.itinerary = s.scheduler.Schedule(selected, order)
	s.recompute()
}

// recompute reprices the current itinerary.
func (s *Session) recompute() {
	opts := s.opts
	opts.Activities = s.selectedActivityIDs()
	s.cost = s.model.Estimate(s.itinerary, opts)
}

// selectedLocations returns the selected locations in catalog order.
func (s *Session) selectedLocations() []catalog.Location {
	var out []catalog.Location
	for _, l := range s.snap.Locations {
		if s.locations[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// selectedActivityIDs returns the selected activity IDs in catalog order.
func (s *Session) selectedActivityIDs() []string {
	var out []string
	for _, a := range s.snap.Activities {
		if s.activities[a.ID] {
			out = append(out, a.ID)
		}
	}
	return out
}

// VisibleLocations lists catalog locations passing the mood and island filters.
func (s *Session) VisibleLocations() []catalog.Location {
	if !s.Ready() {
		return nil
	}
	out := make([]catalog.Location, 0, len(s.snap.Locations))
	for _, l := range s.snap.Locations {
		if s.moodFilter != "" && !mood.Contains(l.Moods, s.moodFilter) {
			continue
		}
		if s.islandFilter != "" && l.Island != s.islandFilter {
			continue
		}
		out = append(out, l)
	}
	return out
}

// AvailableActivities lists the add-ons offered on any island the current
// itinerary stays on. Activities without islands are offered everywhere.
func (s *Session) AvailableActivities() []catalog.Activity {
	if !s.Ready() {
		return nil
	}
	onTrip := s.itinerary.Islands()
	out := make([]catalog.Activity, 0, len(s.snap.Activities))
	for _, a := range s.snap.Activities {
		if len(a.Islands) == 0 || slices.ContainsFunc(a.Islands, func(isl geo.Island) bool {
			return slices.Contains(onTrip, isl)
		}) {
			out = append(out, a)
		}
	}
	return out
}

func toggle(set map[string]bool, id string) {
	if set[id] {
		delete(set, id)
		return
	}
	set[id] = true
}
