package geo

import (
	"slices"
	"strings"
)

// Island is the canonical display name of an island.
type Island string

const (
	PortBlair     Island = "Port Blair"
	Havelock      Island = "Havelock"
	Neil          Island = "Neil"
	Baratang      Island = "Baratang"
	Rangat        Island = "Rangat"
	LongIsland    Island = "Long Island"
	Diglipur      Island = "Diglipur"
	LittleAndaman Island = "Little Andaman"
)

const unknownRank = 1 << 30

// Profile describes the islands a trip can touch: which one is the
// arrival/departure hub, the canonical visiting priority, and which islands
// are small enough to get around by scooter.
type Profile struct {
	Hub             Island
	Priority        []Island
	ScooterFriendly []Island
	Aliases         map[string]Island
}

// DefaultProfile returns the Andaman profile with Port Blair as the hub.
func DefaultProfile() Profile {
	return Profile{
		Hub:             PortBlair,
		Priority:        []Island{PortBlair, Havelock, Neil, Baratang, Rangat, LongIsland, Diglipur, LittleAndaman},
		ScooterFriendly: []Island{Havelock, Neil},
		Aliases: map[string]Island{
			"sri vijaya puram": PortBlair,
			"swaraj dweep":     Havelock,
			"havelock island":  Havelock,
			"shaheed dweep":    Neil,
			"neil island":      Neil,
			"hutbay":           LittleAndaman,
		},
	}
}

// Canonicalize maps a raw island string onto a known island, matching names
// and aliases case-insensitively. Unknown names are returned trimmed but
// otherwise untouched; an empty input yields the hub.
func (p Profile) Canonicalize(raw string) Island {
	name := strings.TrimSpace(raw)
	if name == "" {
		return p.Hub
	}
	key := strings.ToLower(name)
	for _, isl := range p.Priority {
		if strings.ToLower(string(isl)) == key {
			return isl
		}
	}
	if isl, ok := p.Aliases[key]; ok {
		return isl
	}
	return Island(name)
}

// IsScooterFriendly reports whether the island is on the scooter list.
func (p Profile) IsScooterFriendly(isl Island) bool {
	return slices.Contains(p.ScooterFriendly, isl)
}

func (p Profile) rank(isl Island) int {
	if i := slices.Index(p.Priority, isl); i >= 0 {
		return i
	}
	return unknownRank
}

// ResolveOrder returns the order in which the given islands are visited.
//
// Islands are deduplicated and sorted by canonical priority; islands missing
// from the priority list go last in first-seen order. When preferHubFirst is
// set the hub is moved to the front, and injected if the selection does not
// touch it, so the trip always starts where the traveller lands.
func (p Profile) ResolveOrder(islands []Island, preferHubFirst bool) []Island {
	order := make([]Island, 0, len(islands)+1)
	for _, isl := range islands {
		if !slices.Contains(order, isl) {
			order = append(order, isl)
		}
	}

	slices.SortStableFunc(order, func(a, b Island) int {
		return p.rank(a) - p.rank(b)
	})

	if !preferHubFirst || p.Hub == "" {
		return order
	}

	if i := slices.Index(order, p.Hub); i >= 0 {
		order = slices.Delete(order, i, i+1)
	}
	return append([]Island{p.Hub}, order...)
}
