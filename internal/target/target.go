// Package target implements ring scoring for circular targets.
package target

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/bullseye/internal/model"
)

// CustomPreset names a target built from explicit rings and size.
const CustomPreset = "custom"

var (
	// ErrInvalidRings reports a ring count below one.
	ErrInvalidRings = errors.New("rings must be >= 1")
	// ErrInvalidDiameter reports a non-positive diameter.
	ErrInvalidDiameter = errors.New("diameter must be > 0")
	// ErrUnknownPreset reports a preset name that is not registered.
	ErrUnknownPreset = errors.New("unknown target preset")
)

var presets = map[string]model.TargetConfig{
	"bullseye": {Name: "bullseye", Rings: 10, Diameter: 400, MaxScore: 10},
	"olympic":  {Name: "olympic", Rings: 10, Diameter: 400, MaxScore: 10},
	"field":    {Name: "field", Rings: 5, Diameter: 300, MaxScore: 5},
}

// New builds a validated target config. MaxScore always equals the ring count.
func New(name string, rings int, diameter float64) (model.TargetConfig, error) {
	cfg := model.TargetConfig{
		Name:     name,
		Rings:    rings,
		Diameter: diameter,
		MaxScore: rings,
	}
	if err := Validate(cfg); err != nil {
		return model.TargetConfig{}, err
	}
	return cfg, nil
}

// Validate checks the ring count, diameter and max score of a target.
func Validate(cfg model.TargetConfig) error {
	if cfg.Rings < 1 {
		return ErrInvalidRings
	}
	if cfg.Diameter <= 0 || math.IsNaN(cfg.Diameter) || math.IsInf(cfg.Diameter, 0) {
		return ErrInvalidDiameter
	}
	if cfg.MaxScore != cfg.Rings {
		return fmt.Errorf("max score %d must equal ring count %d", cfg.MaxScore, cfg.Rings)
	}
	return nil
}

// Preset returns a registered target by name.
func Preset(name string) (model.TargetConfig, error) {
	cfg, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.TargetConfig{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return cfg, nil
}

// Presets returns all registered targets sorted by name.
func Presets() []model.TargetConfig {
	out := make([]model.TargetConfig, 0, len(presets))
	for _, cfg := range presets {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// PresetNames returns the registered preset names sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Distance returns the Euclidean distance of p from the target center.
func Distance(p model.Point, cfg model.TargetConfig) float64 {
	c := cfg.Center()
	return math.Hypot(p.X-c.X, p.Y-c.Y)
}

// RingRadius returns the outer boundary radius of ring i, counted from the center.
func RingRadius(i int, cfg model.TargetConfig) float64 {
	return float64(i+1) * cfg.Radius() / float64(cfg.Rings)
}

// RingIndex returns the innermost ring containing distance d, or -1 outside the target.
func RingIndex(d float64, cfg model.TargetConfig) int {
	for i := 0; i < cfg.Rings; i++ {
		if d <= RingRadius(i, cfg) {
			return i
		}
	}
	return -1
}

// Score converts a point into a ring score in [0, MaxScore].
func Score(p model.Point, cfg model.TargetConfig) int {
	if cfg.Rings < 1 {
		return 0
	}
	i := RingIndex(Distance(p, cfg), cfg)
	if i < 0 {
		return 0
	}
	return cfg.MaxScore - i
}

// AccuracyThreshold is the lowest score counted as accurate: ceil(0.7 * maxScore).
func AccuracyThreshold(maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return (7*maxScore + 9) / 10
}

// Grade classifies a shot score.
type Grade int

// Shot grades, best first.
const (
	GradeExcellent Grade = iota
	GradeGood
	GradePoor
)

// String returns the grade label.
func (g Grade) String() string {
	switch g {
	case GradeExcellent:
		return "excellent"
	case GradeGood:
		return "good"
	default:
		return "poor"
	}
}

// GradeOf grades a score: excellent from ceil(0.9 * maxScore), good from the accuracy threshold.
func GradeOf(score, maxScore int) Grade {
	excellent := (9*maxScore + 9) / 10
	switch {
	case maxScore > 0 && score >= excellent:
		return GradeExcellent
	case maxScore > 0 && score >= AccuracyThreshold(maxScore):
		return GradeGood
	default:
		return GradePoor
	}
}
