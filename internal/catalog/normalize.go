package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/mood"
)

// DefaultDuration is used for locations with a missing or non-positive duration.
const DefaultDuration = 2.0

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Adapter turns raw upstream records into canonical catalog entries.
// Malformed records are repaired with safe defaults rather than rejected.
type Adapter struct {
	profile  geo.Profile
	inferrer mood.Inferrer
}

// NewAdapter constructs an Adapter. A nil inferrer falls back to mood.KeywordInferrer.
func NewAdapter(profile geo.Profile, inferrer mood.Inferrer) *Adapter {
	if inferrer == nil {
		inferrer = mood.KeywordInferrer{}
	}
	return &Adapter{profile: profile, inferrer: inferrer}
}

// Location normalizes a single raw location. It reports false only when the
// record carries neither an ID nor a name.
func (a *Adapter) Location(raw RawLocation) (Location, bool) {
	id := strings.TrimSpace(raw.ID)
	name := strings.TrimSpace(raw.Name)
	if id == "" && name == "" {
		return Location{}, false
	}
	if id == "" {
		id = slug(name)
	}
	if name == "" {
		name = id
	}

	duration := DefaultDuration
	if raw.Duration != nil && *raw.Duration > 0 {
		duration = *raw.Duration
	}

	moods := mood.Parse(raw.Moods)
	if len(moods) == 0 {
		moods = a.inferrer.Infer(mood.Record{
			Name:        name,
			Description: raw.Description,
			Category:    raw.Category,
			Duration:    duration,
		})
	}

	return Location{
		ID:        id,
		Island:    a.profile.Canonicalize(raw.Island),
		Name:      name,
		Duration:  duration,
		Moods:     moods,
		BestTimes: ParseTimesOfDay(raw.BestTime),
		Image:     strings.TrimSpace(raw.Image),
	}, true
}

// Activity normalizes a single raw activity.
func (a *Adapter) Activity(raw RawActivity) (Activity, bool) {
	id := strings.TrimSpace(raw.ID)
	name := strings.TrimSpace(raw.Name)
	if id == "" && name == "" {
		return Activity{}, false
	}
	if id == "" {
		id = slug(name)
	}
	if name == "" {
		name = id
	}

	islands := make([]geo.Island, 0, len(raw.Islands))
	for _, isl := range raw.Islands {
		if strings.TrimSpace(isl) == "" {
			continue
		}
		islands = append(islands, a.profile.Canonicalize(isl))
	}

	return Activity{
		ID:      id,
		Name:    name,
		Price:   max(raw.Price, 0),
		Islands: islands,
	}, true
}

// TransitLeg normalizes a single raw transit leg. Legs without both
// endpoints are dropped.
func (a *Adapter) TransitLeg(raw RawTransitLeg) (TransitLeg, bool) {
	if strings.TrimSpace(raw.Origin) == "" || strings.TrimSpace(raw.Destination) == "" {
		return TransitLeg{}, false
	}
	return TransitLeg{
		Origin:      a.profile.Canonicalize(raw.Origin),
		Destination: a.profile.Canonicalize(raw.Destination),
		Operator:    strings.TrimSpace(raw.Operator),
		Departs:     strings.TrimSpace(raw.Departs),
		Arrives:     strings.TrimSpace(raw.Arrives),
	}, true
}

// Snapshot normalizes complete raw datasets. Duplicate IDs keep the first record.
func (a *Adapter) Snapshot(locs []RawLocation, acts []RawActivity, legs []RawTransitLeg) *Snapshot {
	snap := &Snapshot{
		Locations:   make([]Location, 0, len(locs)),
		Activities:  make([]Activity, 0, len(acts)),
		TransitLegs: make([]TransitLeg, 0, len(legs)),
	}

	seen := make(map[string]bool, len(locs))
	for _, raw := range locs {
		l, ok := a.Location(raw)
		if !ok || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		snap.Locations = append(snap.Locations, l)
	}

	seen = make(map[string]bool, len(acts))
	for _, raw := range acts {
		act, ok := a.Activity(raw)
		if !ok || seen[act.ID] {
			continue
		}
		seen[act.ID] = true
		snap.Activities = append(snap.Activities, act)
	}

	for _, raw := range legs {
		if leg, ok := a.TransitLeg(raw); ok {
			snap.TransitLegs = append(snap.TransitLegs, leg)
		}
	}

	return snap
}

// ParseTimesOfDay reads a free-text best-time hint such as "Morning",
// "afternoon / evening" or "sunset". Unrecognized text yields no preference.
func ParseTimesOfDay(hint string) []TimeOfDay {
	hint = strings.ToLower(hint)
	var times []TimeOfDay
	if strings.Contains(hint, "morning") || strings.Contains(hint, "sunrise") {
		times = append(times, Morning)
	}
	if strings.Contains(hint, "noon") {
		times = append(times, Afternoon)
	}
	if strings.Contains(hint, "evening") || strings.Contains(hint, "sunset") || strings.Contains(hint, "night") {
		times = append(times, Evening)
	}
	return times
}

func slug(name string) string {
	s := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return fmt.Sprintf("%x", name)
	}
	return s
}
