package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neexbeast/islandhop/internal/geo"
)

//go:embed ratecard.yaml
var defaultRateCard []byte

// FerryClass is a ferry seating class.
type FerryClass string

// Hotel is one bookable accommodation option.
type Hotel struct {
	ID          string     `yaml:"id" json:"id"`
	Island      geo.Island `yaml:"island" json:"island"`
	Tier        string     `yaml:"tier" json:"tier"`
	Name        string     `yaml:"name" json:"name"`
	NightlyRate int        `yaml:"nightly_rate" json:"nightly_rate"`
}

// CabModel is one day-cab vehicle option.
type CabModel struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	DayRate int    `yaml:"day_rate" json:"day_rate"`
}

// FerryRates holds the per-leg fare and class multipliers.
type FerryRates struct {
	BasePerLeg   int                    `yaml:"base_per_leg" json:"base_per_leg"`
	DefaultClass FerryClass             `yaml:"default_class" json:"default_class"`
	Classes      map[FerryClass]float64 `yaml:"classes" json:"classes"`
}

// GroundRates holds the on-island transport rates.
type GroundRates struct {
	HopRate        int        `yaml:"hop_rate" json:"hop_rate"`
	ScooterDayRate int        `yaml:"scooter_day_rate" json:"scooter_day_rate"`
	DefaultCab     string     `yaml:"default_cab" json:"default_cab"`
	CabModels      []CabModel `yaml:"cab_models" json:"cab_models"`
}

// RateCard is the static price list the cost model works from.
type RateCard struct {
	Currency string      `yaml:"currency" json:"currency"`
	Ferry    FerryRates  `yaml:"ferry" json:"ferry"`
	Ground   GroundRates `yaml:"ground" json:"ground"`
	Hotels   []Hotel     `yaml:"hotels" json:"hotels"`
}

// DefaultRateCard returns the rate card compiled into the binary.
func DefaultRateCard() RateCard {
	rc, err := ParseRateCard(defaultRateCard)
	if err != nil {
		panic(fmt.Sprintf("embedded rate card: %v", err))
	}
	return rc
}

// LoadRateCard reads a YAML rate card from path.
func LoadRateCard(path string) (RateCard, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return RateCard{}, fmt.Errorf("reading rate card %s: %w", path, err)
	}
	rc, err := ParseRateCard(b)
	if err != nil {
		return RateCard{}, fmt.Errorf("parsing rate card %s: %w", path, err)
	}
	return rc, nil
}

// ParseRateCard decodes and validates a YAML rate card.
func ParseRateCard(b []byte) (RateCard, error) {
	var rc RateCard
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return RateCard{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := rc.validate(); err != nil {
		return RateCard{}, err
	}
	return rc, nil
}

func (rc RateCard) validate() error {
	var errs []error
	if rc.Ferry.BasePerLeg < 0 {
		errs = append(errs, errors.New("ferry.base_per_leg must not be negative"))
	}
	for class, mult := range rc.Ferry.Classes {
		if mult < 0 {
			errs = append(errs, fmt.Errorf("ferry class %q has negative multiplier", class))
		}
	}
	if rc.Ferry.DefaultClass != "" {
		if _, ok := rc.Ferry.Classes[rc.Ferry.DefaultClass]; !ok {
			errs = append(errs, fmt.Errorf("ferry.default_class %q is not a listed class", rc.Ferry.DefaultClass))
		}
	}
	if rc.Ground.HopRate < 0 || rc.Ground.ScooterDayRate < 0 {
		errs = append(errs, errors.New("ground rates must not be negative"))
	}
	if rc.Ground.DefaultCab != "" {
		if _, ok := rc.CabModel(rc.Ground.DefaultCab); !ok {
			errs = append(errs, fmt.Errorf("ground.default_cab %q is not a listed cab model", rc.Ground.DefaultCab))
		}
	}
	seen := make(map[string]bool, len(rc.Hotels))
	for _, h := range rc.Hotels {
		switch {
		case h.ID == "":
			errs = append(errs, errors.New("hotel without id"))
		case seen[h.ID]:
			errs = append(errs, fmt.Errorf("duplicate hotel id %q", h.ID))
		case h.NightlyRate < 0:
			errs = append(errs, fmt.Errorf("hotel %q has negative nightly rate", h.ID))
		}
		seen[h.ID] = true
	}
	return errors.Join(errs...)
}

// Hotel looks up a hotel by ID.
func (rc RateCard) Hotel(id string) (Hotel, bool) {
	for _, h := range rc.Hotels {
		if h.ID == id {
			return h, true
		}
	}
	return Hotel{}, false
}

// HotelsOn lists the hotels on an island in rate card order.
func (rc RateCard) HotelsOn(isl geo.Island) []Hotel {
	var out []Hotel
	for _, h := range rc.Hotels {
		if h.Island == isl {
			out = append(out, h)
		}
	}
	return out
}

// CabModel looks up a cab model by ID.
func (rc RateCard) CabModel(id string) (CabModel, bool) {
	for _, c := range rc.Ground.CabModels {
		if c.ID == id {
			return c, true
		}
	}
	return CabModel{}, false
}

// HasFerryClass reports whether class is listed on the card.
func (rc RateCard) HasFerryClass(class FerryClass) bool {
	_, ok := rc.Ferry.Classes[class]
	return ok
}
