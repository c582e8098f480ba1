package itinerary_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/itinerary"
)

// ---- helpers ----

func loc(id string, isl geo.Island, hours float64, times ...catalog.TimeOfDay) catalog.Location {
	return catalog.Location{ID: id, Island: isl, Name: id, Duration: hours, BestTimes: times}
}

func newScheduler() *itinerary.Scheduler {
	return itinerary.NewScheduler(itinerary.DefaultRules(), nil)
}

func order(selected []catalog.Location, preferHub bool) []geo.Island {
	islands := make([]geo.Island, 0, len(selected))
	for _, l := range selected {
		islands = append(islands, l.Island)
	}
	return geo.DefaultProfile().ResolveOrder(islands, preferHub)
}

func stopIDs(d itinerary.Day) []string {
	var ids []string
	for _, it := range d.Items {
		if it.Kind == itinerary.KindLocation {
			ids = append(ids, it.Visit.LocationID)
		}
	}
	return ids
}

func dayIslands(it itinerary.Itinerary) []string {
	out := make([]string, 0, len(it.Days))
	for _, d := range it.Days {
		switch {
		case d.IsArrival():
			out = append(out, "arrival:"+string(d.Island))
		case d.IsDeparture():
			out = append(out, "departure:"+string(d.Island))
		case d.IsFerry():
			f := d.Items[0].Ferry
			out = append(out, fmt.Sprintf("ferry:%s>%s", f.From, f.To))
		default:
			out = append(out, "day:"+string(d.Island))
		}
	}
	return out
}

func assertAnchors(t *testing.T, it itinerary.Itinerary) {
	t.Helper()
	require.GreaterOrEqual(t, len(it.Days), 2)

	first, last := it.Days[0], it.Days[len(it.Days)-1]
	assert.True(t, first.Locked)
	assert.True(t, first.IsArrival())
	assert.Equal(t, geo.PortBlair, first.Island)
	assert.True(t, last.Locked)
	assert.True(t, last.IsDeparture())
	assert.Equal(t, geo.PortBlair, last.Island)

	for _, d := range it.Days[1 : len(it.Days)-1] {
		assert.False(t, d.Locked, "only anchor days are locked")
	}
}

func assertFerrySeparation(t *testing.T, it itinerary.Itinerary) {
	t.Helper()
	for i := 0; i+1 < len(it.Days); i++ {
		cur, next := it.Days[i], it.Days[i+1]
		require.False(t, cur.IsFerry() && next.IsFerry(), "back-to-back ferry days at %d", i)

		if !cur.IsFerry() && !next.IsFerry() {
			assert.Equal(t, cur.Island, next.Island, "island change without a ferry at %d", i)
		}
		if next.IsFerry() {
			require.Less(t, i+2, len(it.Days))
			leg := next.Items[0].Ferry
			assert.Equal(t, cur.Island, leg.From)
			assert.Equal(t, it.Days[i+2].Island, leg.To)
			assert.NotEqual(t, leg.From, leg.To)
		}
	}
}

// ---- scenarios ----

func TestSchedule_EmptySelection(t *testing.T) {
	it := newScheduler().Schedule(nil, order(nil, true))

	require.Len(t, it.Days, 2)
	assertAnchors(t, it)
	assert.Equal(t, []string{"arrival:Port Blair", "departure:Port Blair"}, dayIslands(it))
	assert.Equal(t, 0, it.FerryLegs())
}

func TestSchedule_AnchorItems(t *testing.T) {
	it := newScheduler().Schedule(nil, nil)

	arrival := it.Days[0].Items
	require.Len(t, arrival, 2)
	assert.Equal(t, itinerary.KindArrival, arrival[0].Kind)
	assert.Equal(t, itinerary.KindTransfer, arrival[1].Kind)

	departure := it.Days[1].Items
	require.Len(t, departure, 2)
	assert.Equal(t, itinerary.KindTransfer, departure[0].Kind)
	assert.Equal(t, itinerary.KindDeparture, departure[1].Kind)
}

func TestSchedule_FiveAfternoonStopsOnHub(t *testing.T) {
	var selected []catalog.Location
	for i := 1; i <= 5; i++ {
		selected = append(selected, loc(fmt.Sprintf("L%d", i), geo.PortBlair, 2, catalog.Afternoon))
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	assert.Equal(t, []string{"arrival:Port Blair", "day:Port Blair", "day:Port Blair", "departure:Port Blair"}, dayIslands(it))
	assert.Equal(t, []string{"L1", "L2", "L3"}, stopIDs(it.Days[1]))
	assert.Equal(t, []string{"L4", "L5"}, stopIDs(it.Days[2]))
	assert.Equal(t, itinerary.DayCab, it.Days[1].Transport)
	assert.Equal(t, itinerary.PointToPoint, it.Days[2].Transport)
}

func TestSchedule_FiveShortStopsHitStopCap(t *testing.T) {
	var selected []catalog.Location
	for i := 1; i <= 5; i++ {
		selected = append(selected, loc(fmt.Sprintf("L%d", i), geo.Havelock, 1.5, catalog.Afternoon))
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	assert.Equal(t, []string{
		"arrival:Port Blair", "ferry:Port Blair>Havelock", "day:Havelock", "day:Havelock",
		"ferry:Havelock>Port Blair", "departure:Port Blair",
	}, dayIslands(it))
	assert.Equal(t, []string{"L1", "L2", "L3", "L4"}, stopIDs(it.Days[2]))
	assert.Equal(t, []string{"L5"}, stopIDs(it.Days[3]), "last stop has nothing left to pair with")
	assert.Equal(t, itinerary.Scooter, it.Days[3].Transport)
}

func TestSchedule_HubAndSecondIsland(t *testing.T) {
	selected := []catalog.Location{
		loc("cellular-jail", geo.PortBlair, 2),
		loc("corbyns-cove", geo.PortBlair, 2),
		loc("radhanagar", geo.Havelock, 3),
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	assert.Equal(t, []string{
		"arrival:Port Blair", "day:Port Blair", "ferry:Port Blair>Havelock",
		"day:Havelock", "ferry:Havelock>Port Blair", "departure:Port Blair",
	}, dayIslands(it))
	assert.Equal(t, 2, it.FerryLegs())
	assertAnchors(t, it)
	assertFerrySeparation(t, it)
}

func TestSchedule_EndingOnHubNeedsNoReturnFerry(t *testing.T) {
	p := geo.DefaultProfile()
	p.Priority = []geo.Island{geo.Havelock, geo.PortBlair}
	rules := itinerary.DefaultRules()
	rules.Profile = p
	s := itinerary.NewScheduler(rules, nil)

	selected := []catalog.Location{loc("a", geo.Havelock, 2), loc("b", geo.PortBlair, 2)}
	it := s.Schedule(selected, p.ResolveOrder([]geo.Island{geo.Havelock, geo.PortBlair}, false))

	assert.Equal(t, []string{
		"arrival:Port Blair", "ferry:Port Blair>Havelock", "day:Havelock",
		"ferry:Havelock>Port Blair", "day:Port Blair", "departure:Port Blair",
	}, dayIslands(it))
}

func TestSchedule_HubAbsentWithoutPreference(t *testing.T) {
	selected := []catalog.Location{loc("a", geo.Neil, 2)}

	it := newScheduler().Schedule(selected, order(selected, false))

	assert.Equal(t, []string{
		"arrival:Port Blair", "ferry:Port Blair>Neil", "day:Neil",
		"ferry:Neil>Port Blair", "departure:Port Blair",
	}, dayIslands(it))
}

func TestSchedule_IslandsMissingFromOrderStillScheduled(t *testing.T) {
	selected := []catalog.Location{loc("a", geo.Neil, 2), loc("b", geo.Havelock, 2)}

	it := newScheduler().Schedule(selected, []geo.Island{geo.Havelock})

	assert.Equal(t, []string{
		"arrival:Port Blair", "ferry:Port Blair>Havelock", "day:Havelock",
		"ferry:Havelock>Neil", "day:Neil", "ferry:Neil>Port Blair", "departure:Port Blair",
	}, dayIslands(it))
}

// ---- bucketing ----

func TestSchedule_TimeOfDayOrdering(t *testing.T) {
	selected := []catalog.Location{
		loc("evening", geo.PortBlair, 1, catalog.Evening),
		loc("none", geo.PortBlair, 1),
		loc("morning-1", geo.PortBlair, 1, catalog.Morning),
		loc("afternoon", geo.PortBlair, 1, catalog.Afternoon),
		loc("morning-2", geo.PortBlair, 1, catalog.Evening, catalog.Morning),
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	require.Len(t, it.Days, 4)
	assert.Equal(t, []string{"morning-1", "morning-2", "afternoon", "evening"}, stopIDs(it.Days[1]))
	assert.Equal(t, []string{"none"}, stopIDs(it.Days[2]))
}

func TestSchedule_SingleStopLookahead(t *testing.T) {
	selected := []catalog.Location{
		loc("a", geo.PortBlair, 5),
		loc("b", geo.PortBlair, 4),
		loc("c", geo.PortBlair, 1),
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	require.Len(t, it.Days, 4)
	assert.Equal(t, []string{"a", "b"}, stopIDs(it.Days[1]), "single-stop bucket pulls one more")
	assert.Equal(t, 9.0, it.Days[1].Hours())
	assert.Equal(t, []string{"c"}, stopIDs(it.Days[2]))
}

func TestSchedule_LookaheadAppliesOncePerClose(t *testing.T) {
	selected := []catalog.Location{
		loc("a", geo.PortBlair, 6),
		loc("b", geo.PortBlair, 6),
		loc("c", geo.PortBlair, 6),
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	require.Len(t, it.Days, 4)
	assert.Equal(t, []string{"a", "b"}, stopIDs(it.Days[1]))
	assert.Equal(t, []string{"c"}, stopIDs(it.Days[2]))
}

func TestSchedule_OversizedStopGetsOwnDay(t *testing.T) {
	selected := []catalog.Location{loc("trek", geo.PortBlair, 9)}

	it := newScheduler().Schedule(selected, order(selected, true))

	require.Len(t, it.Days, 3)
	assert.Equal(t, []string{"trek"}, stopIDs(it.Days[1]))
}

func TestSchedule_TransportDerivation(t *testing.T) {
	selected := []catalog.Location{
		loc("n1", geo.Neil, 1), loc("n2", geo.Neil, 1), loc("n3", geo.Neil, 1),
		loc("b1", geo.Baratang, 3), loc("b2", geo.Baratang, 3),
		loc("h1", geo.Havelock, 2), loc("h2", geo.Havelock, 2),
	}

	it := newScheduler().Schedule(selected, order(selected, true))

	byIsland := map[geo.Island]itinerary.Transport{}
	for _, d := range it.Days {
		if d.Stops() > 0 {
			byIsland[d.Island] = d.Transport
		}
		if d.IsFerry() {
			assert.Equal(t, itinerary.NoTransport, d.Transport)
		}
	}
	assert.Equal(t, itinerary.DayCab, byIsland[geo.Neil], "three stops beat scooter")
	assert.Equal(t, itinerary.Scooter, byIsland[geo.Havelock])
	assert.Equal(t, itinerary.PointToPoint, byIsland[geo.Baratang])
}

func TestSchedule_DurationIsCaptured(t *testing.T) {
	selected := []catalog.Location{loc("a", geo.PortBlair, 2)}
	it := newScheduler().Schedule(selected, order(selected, true))

	selected[0].Duration = 6
	assert.Equal(t, 2.0, it.Days[1].Items[0].Visit.Duration)
}

// ---- ferry metadata ----

func TestSchedule_FerryMetadata(t *testing.T) {
	legs := []catalog.TransitLeg{
		{Origin: geo.PortBlair, Destination: geo.Havelock, Operator: "Makruzz", Departs: "08:00", Arrives: "09:30"},
	}
	s := itinerary.NewScheduler(itinerary.DefaultRules(), legs)
	selected := []catalog.Location{loc("a", geo.Havelock, 2)}

	it := s.Schedule(selected, order(selected, true))

	out := it.Days[1].Items[0].Ferry
	require.NotNil(t, out)
	assert.Equal(t, "Makruzz", out.Operator)
	assert.Equal(t, "08:00-09:30", out.Window)

	back := it.Days[3].Items[0].Ferry
	require.NotNil(t, back)
	assert.Equal(t, "Inter-island ferry", back.Operator, "no matching leg falls back to a generic label")
	assert.NotEmpty(t, back.Window)
}

// ---- properties ----

func TestSchedule_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	islands := append(geo.DefaultProfile().Priority, "Ross Island")
	durations := []float64{1, 1.5, 2, 2.5, 3, 4, 5, 6}
	times := []catalog.TimeOfDay{catalog.Morning, catalog.Afternoon, catalog.Evening}

	for run := 0; run < 200; run++ {
		n := rng.IntN(14)
		selected := make([]catalog.Location, 0, n)
		for i := 0; i < n; i++ {
			l := loc(fmt.Sprintf("r%d-%d", run, i), islands[rng.IntN(len(islands))], durations[rng.IntN(len(durations))])
			if rng.IntN(2) == 0 {
				l.BestTimes = []catalog.TimeOfDay{times[rng.IntN(len(times))]}
			}
			selected = append(selected, l)
		}
		preferHub := rng.IntN(2) == 0

		it := newScheduler().Schedule(selected, order(selected, preferHub))

		assertAnchors(t, it)
		assertFerrySeparation(t, it)

		covered := map[geo.Island]bool{}
		scheduled := 0
		for _, d := range it.Days {
			if !d.IsFerry() && d.Stops() > 0 {
				covered[d.Island] = true
			}
			scheduled += d.Stops()

			assert.LessOrEqual(t, d.Stops(), itinerary.DefaultMaxStops)
			if d.Stops() > 2 {
				assert.LessOrEqual(t, d.Hours(), itinerary.DefaultMaxHours)
			}
		}
		for _, l := range selected {
			assert.True(t, covered[l.Island], "island %s has no day", l.Island)
		}
		assert.Equal(t, len(selected), scheduled)
	}
}
