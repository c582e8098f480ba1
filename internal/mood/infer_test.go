package mood_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neexbeast/islandhop/internal/mood"
)

func TestKeywordInferrer_DurationRules(t *testing.T) {
	inf := mood.KeywordInferrer{}

	tests := []struct {
		name     string
		duration float64
		want     []mood.Tag
	}{
		{"short", 1.5, []mood.Tag{mood.Relaxed}},
		{"two hours", 2, []mood.Tag{mood.Relaxed}},
		{"between caps defaults", 2.5, []mood.Tag{mood.Balanced}},
		{"three hours", 3, []mood.Tag{mood.Balanced}},
		{"half day", 4, []mood.Tag{mood.Balanced, mood.Active}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inf.Infer(mood.Record{Name: "Somewhere", Duration: tt.duration})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordInferrer_Keywords(t *testing.T) {
	inf := mood.KeywordInferrer{}

	got := inf.Infer(mood.Record{Name: "Elephant Beach", Description: "Snorkeling over coral reefs", Duration: 3})
	assert.Equal(t, []mood.Tag{mood.Balanced, mood.Adventure, mood.Photography}, got)

	got = inf.Infer(mood.Record{Name: "Cellular Jail", Category: "Heritage", Duration: 2})
	assert.Equal(t, []mood.Tag{mood.Relaxed, mood.Family}, got)

	got = inf.Infer(mood.Record{Name: "Baratang Limestone Caves", Duration: 6})
	assert.Equal(t, []mood.Tag{mood.Balanced, mood.Active, mood.Photography, mood.Offbeat}, got)

	got = inf.Infer(mood.Record{Name: "Laxmanpur Beach", Description: "Best sunset point", Duration: 2})
	assert.Equal(t, []mood.Tag{mood.Relaxed, mood.Romantic}, got)
}

func TestKeywordInferrer_NeverEmpty(t *testing.T) {
	inf := mood.KeywordInferrer{}

	got := inf.Infer(mood.Record{Name: "Market", Duration: 2.5})
	assert.Equal(t, []mood.Tag{mood.Balanced}, got)
}

func TestKeywordInferrer_Deterministic(t *testing.T) {
	inf := mood.KeywordInferrer{}
	rec := mood.Record{Name: "Radhanagar Beach", Description: "Sunset and swimming, kayak rentals nearby", Duration: 4}

	first := inf.Infer(rec)
	for range 20 {
		assert.Equal(t, first, inf.Infer(rec))
	}
}

func TestParse(t *testing.T) {
	got := mood.Parse([]string{"adventure", " Relaxed ", "unknown", "ADVENTURE"})
	assert.Equal(t, []mood.Tag{mood.Relaxed, mood.Adventure}, got)

	assert.Empty(t, mood.Parse(nil))
}

func TestContains(t *testing.T) {
	tags := []mood.Tag{mood.Relaxed, mood.Family}
	assert.True(t, mood.Contains(tags, mood.Family))
	assert.False(t, mood.Contains(tags, mood.Offbeat))
}
