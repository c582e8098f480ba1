package pricing

import (
	"math"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/itinerary"
)

// Options are the traveller's pricing choices.
type Options struct {
	Hotels         map[geo.Island]string `json:"hotels"`
	FerryClass     FerryClass            `json:"ferry_class"`
	CabModel       string                `json:"cab_model"`
	ScooterIslands []geo.Island          `json:"scooter_islands"`
	Adults         int                   `json:"adults"`
	Infants        int                   `json:"infants"`
	Activities     []string              `json:"activities"`
}

// Breakdown is the estimate for one itinerary, in whole currency units.
type Breakdown struct {
	Accommodation int `json:"accommodation"`
	Transit       int `json:"transit"`
	Ground        int `json:"ground"`
	Activities    int `json:"activities"`
	Total         int `json:"total"`
}

// IslandNights is the number of nights spent on one island.
type IslandNights struct {
	Island geo.Island `json:"island"`
	Nights int        `json:"nights"`
}

// Model prices itineraries against a rate card and the activity catalog.
// It is a pure function of its inputs and never fails: unknown hotels,
// cab models and activities price at zero and an unknown ferry class uses
// the neutral multiplier. Ground transport is charged only for days with
// at least one stop, so anchor days and empty inserted days are free.
type Model struct {
	rates      RateCard
	activities map[string]int
}

// NewModel constructs a Model.
func NewModel(rates RateCard, activities []catalog.Activity) *Model {
	prices := make(map[string]int, len(activities))
	for _, a := range activities {
		prices[a.ID] = a.Price
	}
	return &Model{rates: rates, activities: prices}
}

// Rates returns the rate card the model prices against.
func (m *Model) Rates() RateCard {
	return m.rates
}

// Estimate computes the four subtotals and the grand total.
func (m *Model) Estimate(it itinerary.Itinerary, opts Options) Breakdown {
	b := Breakdown{
		Accommodation: m.accommodation(it, opts),
		Transit:       m.transit(it, opts),
		Ground:        m.ground(it, opts),
		Activities:    m.activityTotal(opts),
	}
	b.Total = b.Accommodation + b.Transit + b.Ground + b.Activities
	return b
}

// NightsPerIsland counts, per island, the days that are neither ferry
// days nor the departure day. Islands appear in first-visit order.
func NightsPerIsland(it itinerary.Itinerary) []IslandNights {
	var out []IslandNights
	idx := make(map[geo.Island]int)
	for _, d := range it.Days {
		if !staysOvernight(d) {
			continue
		}
		i, ok := idx[d.Island]
		if !ok {
			i = len(out)
			idx[d.Island] = i
			out = append(out, IslandNights{Island: d.Island})
		}
		out[i].Nights++
	}
	return out
}

func staysOvernight(d itinerary.Day) bool {
	return !d.IsFerry() && !d.IsDeparture()
}

func (m *Model) accommodation(it itinerary.Itinerary, opts Options) int {
	total := 0
	for _, n := range NightsPerIsland(it) {
		id, ok := opts.Hotels[n.Island]
		if !ok {
			continue
		}
		if h, ok := m.rates.Hotel(id); ok {
			total += n.Nights * h.NightlyRate
		}
	}
	return total
}

func (m *Model) transit(it itinerary.Itinerary, opts Options) int {
	legs := it.FerryLegs()
	if legs == 0 {
		return 0
	}
	mult, ok := m.rates.Ferry.Classes[opts.FerryClass]
	if !ok {
		mult = 1
	}
	perLeg := float64(m.rates.Ferry.BasePerLeg) * mult * float64(max(1, opts.Adults))
	return legs * int(math.Round(perLeg))
}

func (m *Model) ground(it itinerary.Itinerary, opts Options) int {
	scooterOverride := make(map[geo.Island]bool, len(opts.ScooterIslands))
	for _, isl := range opts.ScooterIslands {
		scooterOverride[isl] = true
	}
	cabRate := 0
	if cab, ok := m.rates.CabModel(opts.CabModel); ok {
		cabRate = cab.DayRate
	}

	total := 0
	for _, d := range it.Days {
		if !staysOvernight(d) || d.Stops() == 0 {
			continue
		}
		switch {
		case scooterOverride[d.Island]:
			total += m.rates.Ground.ScooterDayRate
		case d.Transport == itinerary.DayCab:
			total += cabRate
		case d.Transport == itinerary.Scooter:
			total += m.rates.Ground.ScooterDayRate
		default:
			total += max(1, d.Stops()-1) * m.rates.Ground.HopRate
		}
	}
	return total
}

func (m *Model) activityTotal(opts Options) int {
	total := 0
	seen := make(map[string]bool, len(opts.Activities))
	for _, id := range opts.Activities {
		if seen[id] {
			continue
		}
		seen[id] = true
		total += m.activities[id]
	}
	return total
}
