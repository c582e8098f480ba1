package itinerary

import (
	"github.com/neexbeast/islandhop/internal/geo"
)

// Transport is how the traveller gets around on a given day.
type Transport string

const (
	PointToPoint Transport = "point_to_point"
	DayCab       Transport = "day_cab"
	Scooter      Transport = "scooter"
	NoTransport  Transport = "none"
)

// Valid reports whether t is one of the enumerated modes.
func (t Transport) Valid() bool {
	switch t {
	case PointToPoint, DayCab, Scooter, NoTransport:
		return true
	}
	return false
}

// ItemKind tags the variant held by an Item.
type ItemKind string

const (
	KindArrival   ItemKind = "arrival"
	KindDeparture ItemKind = "departure"
	KindTransfer  ItemKind = "transfer"
	KindFerry     ItemKind = "ferry"
	KindLocation  ItemKind = "location"
)

// Ferry describes one inter-island leg.
type Ferry struct {
	From     geo.Island `json:"from"`
	To       geo.Island `json:"to"`
	Operator string     `json:"operator"`
	Window   string     `json:"window"`
}

// Visit is a scheduled location stop. Name and Duration are copied from the
// catalog when the day is built and are not re-read afterwards.
type Visit struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Duration   float64 `json:"duration"`
}

// Item is one entry of a day. Exactly one of Ferry or Visit is set for the
// ferry and location kinds; the anchor kinds carry only a label.
type Item struct {
	Kind  ItemKind `json:"kind"`
	Label string   `json:"label,omitempty"`
	Ferry *Ferry   `json:"ferry,omitempty"`
	Visit *Visit   `json:"visit,omitempty"`
}

// IsAnchor reports whether the item belongs to the arrival/departure anchors.
func (it Item) IsAnchor() bool {
	return it.Kind == KindArrival || it.Kind == KindDeparture || it.Kind == KindTransfer
}

// Day is one calendar day of the trip.
type Day struct {
	Island    geo.Island `json:"island"`
	Transport Transport  `json:"transport"`
	Locked    bool       `json:"locked"`
	Items     []Item     `json:"items"`
}

// IsFerry reports whether the day holds nothing but ferry legs.
func (d Day) IsFerry() bool {
	if len(d.Items) == 0 {
		return false
	}
	for _, it := range d.Items {
		if it.Kind != KindFerry {
			return false
		}
	}
	return true
}

// IsDeparture reports whether the day carries the departure anchor.
func (d Day) IsDeparture() bool {
	return d.has(KindDeparture)
}

// IsArrival reports whether the day carries the arrival anchor.
func (d Day) IsArrival() bool {
	return d.has(KindArrival)
}

// Stops counts the location visits of the day.
func (d Day) Stops() int {
	n := 0
	for _, it := range d.Items {
		if it.Kind == KindLocation {
			n++
		}
	}
	return n
}

// Hours sums the captured durations of the day's location visits.
func (d Day) Hours() float64 {
	var h float64
	for _, it := range d.Items {
		if it.Kind == KindLocation && it.Visit != nil {
			h += it.Visit.Duration
		}
	}
	return h
}

func (d Day) has(kind ItemKind) bool {
	for _, it := range d.Items {
		if it.Kind == kind {
			return true
		}
	}
	return false
}

// Itinerary is the ordered list of days. The first day is the locked arrival
// at the hub and the last day the locked departure from it.
type Itinerary struct {
	Days []Day `json:"days"`
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (it Itinerary) Clone() Itinerary {
	days := make([]Day, len(it.Days))
	for i, d := range it.Days {
		days[i] = d
		days[i].Items = cloneItems(d.Items)
	}
	return Itinerary{Days: days}
}

// FerryLegs counts every ferry item across the itinerary.
func (it Itinerary) FerryLegs() int {
	n := 0
	for _, d := range it.Days {
		for _, item := range d.Items {
			if item.Kind == KindFerry {
				n++
			}
		}
	}
	return n
}

// Islands returns the islands of non-ferry days in first-appearance order.
func (it Itinerary) Islands() []geo.Island {
	var out []geo.Island
	seen := make(map[geo.Island]bool)
	for _, d := range it.Days {
		if d.IsFerry() || seen[d.Island] {
			continue
		}
		seen[d.Island] = true
		out = append(out, d.Island)
	}
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.Ferry != nil {
			f := *it.Ferry
			out[i].Ferry = &f
		}
		if it.Visit != nil {
			v := *it.Visit
			out[i].Visit = &v
		}
	}
	return out
}
