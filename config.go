package arena

import "github.com/BurntSushi/toml"

// Config gathers every tunable knob spec.md §6 enumerates. A zero Config is
// not valid; use DefaultConfig or LoadConfig.
//
// Grounded on ellipswarm/cmd/swarm/config.go: a plain struct decoded from a
// TOML file, defaults filled in before the decode so a partial config file
// only overrides what it mentions.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	SnakeDistancePerStep         float64
	SnakeBoostSteps              int
	SnakeBoostLossFactor         float64
	SnakeSelfKillMassThreshold   float64
	SnakePullFactor              float64
	SnakeConsumeRange            float64
	SnakeSegmentDistanceFactor   float64
	SnakeSegmentDistanceExponent float64
	SnakeConversionFactor        float64

	KillerMinMassRatio float64

	FoodSizeMean           float64
	FoodSizeStddev         float64
	StaticFoodTarget       int
	StaticFoodLifeTicks    int
	DynamicFoodLifeTicks   int
	SpatialMapReserveCount int

	Workers              int
	BrainDecisionTimeout float64 // seconds
	RNGSeed              int64
}

// DefaultConfig returns reasonable starting values for every knob. The
// original prototype this system is modeled on did not ship the config
// header its own constants were tuned against, so these are not recovered
// originals; they are picked to keep a fresh Field's snakes and food
// behaving plausibly, and are expected to be tuned per deployment via
// LoadConfig (see DESIGN.md's "Constants without a source").
func DefaultConfig() Config {
	return Config{
		WorldWidth:  1000,
		WorldHeight: 1000,

		SnakeDistancePerStep:         1.0,
		SnakeBoostSteps:              4,
		SnakeBoostLossFactor:         0.05,
		SnakeSelfKillMassThreshold:   1.0,
		SnakePullFactor:              0.4,
		SnakeConsumeRange:            1.5,
		SnakeSegmentDistanceFactor:   1.0,
		SnakeSegmentDistanceExponent: 0.5,
		SnakeConversionFactor:        0.8,

		KillerMinMassRatio: 1.5,

		FoodSizeMean:           1.0,
		FoodSizeStddev:         0.4,
		StaticFoodTarget:       200,
		StaticFoodLifeTicks:    3600,
		DynamicFoodLifeTicks:   1800,
		SpatialMapReserveCount: 4,

		Workers:              4,
		BrainDecisionTimeout: 0.010,
		RNGSeed:              1,
	}
}

// LoadConfig decodes a TOML file over DefaultConfig's values, so a config
// file only needs to mention the knobs it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports InvalidConfigurationError for any knob outside its
// documented range. This is only ever fatal at startup (spec.md §7).
func (c Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return &InvalidConfigurationError{Field: "WorldWidth/WorldHeight", Reason: "must be positive"}
	case c.SnakePullFactor < 0 || c.SnakePullFactor > 1:
		return &InvalidConfigurationError{Field: "SnakePullFactor", Reason: "must be in [0,1]"}
	case c.KillerMinMassRatio <= 1:
		return &InvalidConfigurationError{Field: "KillerMinMassRatio", Reason: "must be > 1"}
	case c.SnakeBoostSteps < 1:
		return &InvalidConfigurationError{Field: "SnakeBoostSteps", Reason: "must be >= 1"}
	case c.SnakeConsumeRange <= 0:
		return &InvalidConfigurationError{Field: "SnakeConsumeRange", Reason: "must be positive"}
	case c.Workers < 1:
		return &InvalidConfigurationError{Field: "Workers", Reason: "must be >= 1"}
	case c.SpatialMapReserveCount < 0:
		return &InvalidConfigurationError{Field: "SpatialMapReserveCount", Reason: "must be >= 0"}
	}
	return nil
}

// World returns the WorldSize this config describes.
func (c Config) World() WorldSize {
	return WorldSize{Width: c.WorldWidth, Height: c.WorldHeight}
}
