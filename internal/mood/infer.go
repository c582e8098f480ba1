// Package mood holds the trip mood vocabulary and the strategy used to tag
// locations that arrive from the catalog without explicit moods.
package mood

import (
	"regexp"
	"slices"
	"strings"
)

// Tag is one entry of the fixed mood vocabulary.
type Tag string

const (
	Relaxed     Tag = "Relaxed"
	Balanced    Tag = "Balanced"
	Active      Tag = "Active"
	Adventure   Tag = "Adventure"
	Family      Tag = "Family"
	Photography Tag = "Photography"
	Offbeat     Tag = "Offbeat"
	Romantic    Tag = "Romantic"
)

// Vocabulary lists every tag in display order. Inferred and normalized tag
// sets are always returned in this order.
var Vocabulary = []Tag{Relaxed, Balanced, Active, Adventure, Family, Photography, Offbeat, Romantic}

// Record is the free-text view of a location that inference works from.
type Record struct {
	Name        string
	Description string
	Category    string
	Duration    float64
}

// Inferrer derives mood tags for a location record.
// Implementations must be deterministic and return at least one tag.
type Inferrer interface {
	Infer(rec Record) []Tag
}

var (
	adventureRe   = regexp.MustCompile(`\b(snorkel\w*|scuba|dive|diving|trek\w*|kayak\w*|surf\w*|sea ?walk\w*|jet ?ski\w*|parasail\w*|hike|hiking|glass[- ]bottom)\b`)
	familyRe      = regexp.MustCompile(`\b(museum|heritage|history|historic|jail|memorial|cultur\w*|temple|church|anthropolog\w*|light ?and ?sound|zoo|aquarium|park)\b`)
	photographyRe = regexp.MustCompile(`\b(nature|wildlife|mangrove\w*|forest|rainforest|bird\w*|coral\w*|limestone|cave\w*|lighthouse|viewpoint|mud volcano|turtle\w*|sunrise)\b`)
	offbeatRe     = regexp.MustCompile(`\b(baratang|diglipur|rangat|long island|little andaman|mayabunder|ross and smith|saddle peak|chidiya tapu|hutbay|remote|secluded|hidden)\b`)
	romanticRe    = regexp.MustCompile(`\b(sunset|candle ?light|honeymoon|romantic|couples?)\b`)
)

// KeywordInferrer tags locations from their duration and keyword matches in
// name, description and category.
type KeywordInferrer struct{}

// Infer implements Inferrer.
func (KeywordInferrer) Infer(rec Record) []Tag {
	found := make(map[Tag]bool)

	if rec.Duration <= 2 {
		found[Relaxed] = true
	}
	if rec.Duration >= 3 {
		found[Balanced] = true
	}
	if rec.Duration >= 4 {
		found[Active] = true
	}

	text := strings.ToLower(strings.Join([]string{rec.Name, rec.Description, rec.Category}, " "))
	if adventureRe.MatchString(text) {
		found[Adventure] = true
	}
	if familyRe.MatchString(text) {
		found[Family] = true
	}
	if photographyRe.MatchString(text) {
		found[Photography] = true
	}
	if offbeatRe.MatchString(text) {
		found[Offbeat] = true
	}
	if romanticRe.MatchString(text) {
		found[Romantic] = true
	}

	if len(found) == 0 {
		return []Tag{Balanced}
	}
	return ordered(found)
}

// Parse matches raw tag strings against the vocabulary case-insensitively,
// dropping anything unknown. The result is deduplicated and ordered.
func Parse(raw []string) []Tag {
	found := make(map[Tag]bool)
	for _, r := range raw {
		r = strings.TrimSpace(r)
		for _, t := range Vocabulary {
			if strings.EqualFold(r, string(t)) {
				found[t] = true
			}
		}
	}
	return ordered(found)
}

// Contains reports whether tags includes t.
func Contains(tags []Tag, t Tag) bool {
	return slices.Contains(tags, t)
}

func ordered(found map[Tag]bool) []Tag {
	tags := make([]Tag, 0, len(found))
	for _, t := range Vocabulary {
		if found[t] {
			tags = append(tags, t)
		}
	}
	return tags
}
