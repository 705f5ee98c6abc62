package arena

import (
	"math/rand"

	"github.com/google/uuid"
)

// Food is a single edible item on the field. Static food is uniformly
// seeded and regenerates; dynamic food is spawned by Snake.ConvertToFood
// when a bot dies and never regenerates (spec.md §3).
type Food struct {
	ID              string
	Position        Vector2D
	Value           float64
	IsStatic        bool
	Hunter          *Bot // set only for dynamic food, to block instant self-consumption
	life            int  // remaining decay countdown, in ticks
	shallRegenerate bool
	removed         bool
}

// Pos implements Positioned so Food can live in a SpatialMap.
func (f Food) Pos() Vector2D { return f.Position }

// Decay decrements the food's remaining life and reports whether it just
// expired. Once expired the caller must take it out of the map
// (Field.decayFood drops it in the same EraseIf sweep); Decay itself
// never mutates the map (spec.md §9 open question (b): all respawns are
// deferred to a post-iteration phase, never triggered mid-loop).
func (f *Food) Decay() bool {
	if f.removed {
		return false
	}
	f.life--
	if f.life <= 0 {
		return true
	}
	return false
}

// ShallRegenerate reports whether removing this item should trigger a
// replacement spawn.
func (f *Food) ShallRegenerate() bool { return f.shallRegenerate }

// MarkForRemove flags the item so a subsequent SpatialMap.EraseIf sweep
// drops it. Once marked, a food item is inert: further ShallBeRemoved
// checks return true and no further consumption or decay logic should
// touch it (spec.md §8, "consumption idempotence").
func (f *Food) MarkForRemove() { f.removed = true }

// ShallBeRemoved reports whether MarkForRemove has been called.
func (f *Food) ShallBeRemoved() bool { return f.removed }

// FoodPool owns the static-food quota and the value/position distributions
// used for both static seeding and death-drop spawns. Grounded on the
// teacher's spawn helpers (pickup.go's NewPickup, asteroid.go's NewAsteroid)
// generalised to food's Gaussian value distribution.
type FoodPool struct {
	cfg *Config
	rng *rand.Rand
}

// NewFoodPool creates a pool bound to cfg's food knobs, drawing from rng.
// The RNG is owned by the controller (Field), never by workers, per
// spec.md §5's shared-resource rule.
func NewFoodPool(cfg *Config, rng *rand.Rand) *FoodPool {
	return &FoodPool{cfg: cfg, rng: rng}
}

// SampleValue draws a food value from Gaussian(FoodSizeMean, FoodSizeStddev)
// clamped to strictly positive by resampling until positive. This choice
// (resample vs. truncate) is documented here per spec.md §4.6 and is stable
// across runs for a fixed RNG seed: the same sequence of draws from rng
// always yields the same accepted values.
func (p *FoodPool) SampleValue() float64 {
	for {
		v := p.cfg.FoodSizeMean + p.rng.NormFloat64()*p.cfg.FoodSizeStddev
		if v > 0 {
			return v
		}
	}
}

// SpawnStatic creates one regenerable static food item at a uniformly
// random position in world.
func (p *FoodPool) SpawnStatic(world WorldSize) *Food {
	return &Food{
		ID:              uuid.NewString(),
		Position:        Vector2D{X: p.rng.Float64() * world.Width, Y: p.rng.Float64() * world.Height},
		Value:           p.SampleValue(),
		IsStatic:        true,
		shallRegenerate: true,
		life:            p.cfg.StaticFoodLifeTicks,
	}
}

// SpawnDynamic distributes totalValue across food items scattered uniformly
// inside the disk of radius r around center, mirroring Field.createDynamicFood
// in the reference: while more than FoodSizeMean remains, each item's value
// is a SampleValue draw, cut down to what remains if the draw exceeds it; the
// last item takes whatever is left, so the values sum to totalValue.
// Positions are wrapped onto the torus.
func (p *FoodPool) SpawnDynamic(totalValue float64, center Vector2D, r float64, hunter *Bot, world WorldSize) []*Food {
	var items []*Food
	remaining := totalValue
	for remaining > 0 {
		value := remaining
		if remaining > p.cfg.FoodSizeMean {
			value = p.SampleValue()
			if value > remaining {
				value = remaining
			}
		}

		rndRadius := r * p.rng.Float64()
		rndAngleDeg := (p.rng.Float64()*2 - 1) * 180
		offset := FromAngleDeg(rndAngleDeg).Scale(rndRadius)
		pos := world.Wrap(center.Add(offset))

		items = append(items, &Food{
			ID:       uuid.NewString(),
			Position: pos,
			Value:    value,
			IsStatic: false,
			Hunter:   hunter,
			life:     p.cfg.DynamicFoodLifeTicks,
		})

		remaining -= value
	}
	return items
}
