package itinerary

import (
	"fmt"
	"slices"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/geo"
)

const (
	DefaultMaxStops = 4
	DefaultMaxHours = 7.0
)

// Rules parameterize the scheduler.
type Rules struct {
	Profile  geo.Profile
	MaxStops int
	MaxHours float64
}

// DefaultRules returns the 4-stop / 7-hour rules for the default profile.
func DefaultRules() Rules {
	return Rules{Profile: geo.DefaultProfile(), MaxStops: DefaultMaxStops, MaxHours: DefaultMaxHours}
}

// Scheduler turns a location selection into a day-by-day itinerary.
//
// Bucketing is a greedy first-fit over the time-of-day ordered queue, not an
// optimal packing. Day counts and therefore costs depend on this exact order.
type Scheduler struct {
	rules Rules
	legs  []catalog.TransitLeg
}

// NewScheduler constructs a Scheduler. legs is advisory ferry metadata and may be nil.
func NewScheduler(rules Rules, legs []catalog.TransitLeg) *Scheduler {
	if rules.MaxStops <= 0 {
		rules.MaxStops = DefaultMaxStops
	}
	if rules.MaxHours <= 0 {
		rules.MaxHours = DefaultMaxHours
	}
	return &Scheduler{rules: rules, legs: legs}
}

// Schedule builds the itinerary for the selected locations, visiting islands
// in the given order. Selected locations are expected in catalog order;
// islands of the selection missing from order are visited after it.
//
// The result always opens with the locked arrival day and closes with the
// locked departure day at the hub. Any change of island between days goes
// through exactly one ferry day, including the final return to the hub.
func (s *Scheduler) Schedule(selected []catalog.Location, order []geo.Island) Itinerary {
	hub := s.rules.Profile.Hub
	days := []Day{arrivalDay(hub)}

	byIsland := make(map[geo.Island][]catalog.Location)
	for _, loc := range selected {
		byIsland[loc.Island] = append(byIsland[loc.Island], loc)
	}

	visit := slices.Clone(order)
	for _, loc := range selected {
		if !slices.Contains(visit, loc.Island) {
			visit = append(visit, loc.Island)
		}
	}

	at := hub
	done := make(map[geo.Island]bool)
	for _, isl := range visit {
		locs := byIsland[isl]
		if len(locs) == 0 || done[isl] {
			continue
		}
		done[isl] = true

		if isl != at {
			days = append(days, s.ferryDay(at, isl))
			at = isl
		}
		for _, bucket := range s.bucket(sortByTimeOfDay(locs)) {
			days = append(days, s.visitDay(isl, bucket))
		}
	}

	if at != hub {
		days = append(days, s.ferryDay(at, hub))
	}
	days = append(days, departureDay(hub))

	return Itinerary{Days: days}
}

// bucket groups one island's queue into days. A bucket takes the next stop
// while it stays under both caps; an empty bucket always takes it. When a
// bucket would close with a single stop and more remain, one extra stop is
// pulled in before closing, once per close.
func (s *Scheduler) bucket(queue []catalog.Location) [][]catalog.Location {
	var (
		out   [][]catalog.Location
		cur   []catalog.Location
		hours float64
	)

	for i := 0; i < len(queue); {
		next := queue[i]
		if len(cur) == 0 || (len(cur) < s.rules.MaxStops && hours+next.Duration <= s.rules.MaxHours) {
			cur = append(cur, next)
			hours += next.Duration
			i++
			continue
		}

		if len(cur) == 1 {
			cur = append(cur, next)
			i++
		}
		out = append(out, cur)
		cur, hours = nil, 0
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (s *Scheduler) visitDay(isl geo.Island, stops []catalog.Location) Day {
	items := make([]Item, 0, len(stops))
	for _, loc := range stops {
		items = append(items, Item{
			Kind:  KindLocation,
			Label: loc.Name,
			Visit: &Visit{LocationID: loc.ID, Name: loc.Name, Duration: loc.Duration},
		})
	}

	transport := PointToPoint
	switch {
	case len(stops) >= 3:
		transport = DayCab
	case s.rules.Profile.IsScooterFriendly(isl):
		transport = Scooter
	}

	return Day{Island: isl, Transport: transport, Items: items}
}

func (s *Scheduler) ferryDay(from, to geo.Island) Day {
	ferry := &Ferry{From: from, To: to, Operator: "Inter-island ferry", Window: "Schedule to be confirmed"}
	for _, leg := range s.legs {
		if leg.Origin == from && leg.Destination == to {
			if leg.Operator != "" {
				ferry.Operator = leg.Operator
			}
			if w := window(leg.Departs, leg.Arrives); w != "" {
				ferry.Window = w
			}
			break
		}
	}

	return Day{
		Island:    to,
		Transport: NoTransport,
		Items: []Item{{
			Kind:  KindFerry,
			Label: fmt.Sprintf("Ferry %s → %s", from, to),
			Ferry: ferry,
		}},
	}
}

func arrivalDay(hub geo.Island) Day {
	return Day{
		Island:    hub,
		Transport: PointToPoint,
		Locked:    true,
		Items: []Item{
			{Kind: KindArrival, Label: fmt.Sprintf("Arrive at %s", hub)},
			{Kind: KindTransfer, Label: "Airport to hotel transfer"},
		},
	}
}

func departureDay(hub geo.Island) Day {
	return Day{
		Island:    hub,
		Transport: PointToPoint,
		Locked:    true,
		Items: []Item{
			{Kind: KindTransfer, Label: "Hotel to airport transfer"},
			{Kind: KindDeparture, Label: fmt.Sprintf("Depart from %s", hub)},
		},
	}
}

func window(departs, arrives string) string {
	switch {
	case departs != "" && arrives != "":
		return departs + "-" + arrives
	case departs != "":
		return "departs " + departs
	default:
		return ""
	}
}

// timeRank orders morning < afternoon < evening < no preference, using the
// earliest affinity of a location.
func timeRank(loc catalog.Location) int {
	rank := 3
	for _, t := range loc.BestTimes {
		switch t {
		case catalog.Morning:
			rank = min(rank, 0)
		case catalog.Afternoon:
			rank = min(rank, 1)
		case catalog.Evening:
			rank = min(rank, 2)
		}
	}
	return rank
}

func sortByTimeOfDay(locs []catalog.Location) []catalog.Location {
	out := slices.Clone(locs)
	slices.SortStableFunc(out, func(a, b catalog.Location) int {
		return timeRank(a) - timeRank(b)
	})
	return out
}
