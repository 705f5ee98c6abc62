package main

import (
	"math"
	"math/rand"

	"snakearena"
)

// wanderBrain is a minimal BotBrain that drifts its heading gently and
// occasionally boosts, used to exercise a running field without a real bot
// script. Grounded on the teacher's Mob wander behaviour (mob.go): drift a
// desired heading by a small random delta each step, then steer toward it.
type wanderBrain struct {
	rng         *rand.Rand
	wanderAngle float64
	logs        []string
}

func newWanderBrain(seed int64) *wanderBrain {
	return &wanderBrain{rng: rand.New(rand.NewSource(seed))}
}

func (b *wanderBrain) Init() error {
	b.wanderAngle = b.rng.Float64()*360 - 180
	return nil
}

func (b *wanderBrain) Decide(view arena.LocalView) (float64, bool) {
	b.wanderAngle = arena.NormalizeAngleDeg(b.wanderAngle + (b.rng.Float64()*2-1)*20)

	if len(view.NearbyFood) > 0 {
		world := view.Self.World()
		head := view.Self.Head()
		nearest := world.Unwrap(view.NearbyFood[0].Position, head)
		best := nearest.Sub(head).SquaredNorm()
		for _, f := range view.NearbyFood[1:] {
			pos := world.Unwrap(f.Position, head)
			if d := pos.Sub(head).SquaredNorm(); d < best {
				best = d
				nearest = pos
			}
		}
		toFood := nearest.Sub(head)
		if toFood.SquaredNorm() > 0 {
			b.wanderAngle = angleOfDeg(toFood)
		}
	}

	boost := b.rng.Float64() < 0.02
	return b.wanderAngle, boost
}

func (b *wanderBrain) LogMessages() []string {
	out := b.logs
	b.logs = nil
	return out
}

func angleOfDeg(v arena.Vector2D) float64 {
	return arena.NormalizeAngleDeg(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}
