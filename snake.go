package arena

import "math"

// Snake is one bot's body: a mass, a heading and a double-ended sequence of
// segments. It holds a WorldSize by value rather than a back-reference to
// Field, so it can wrap coordinates without forming an ownership cycle
// (spec.md §9 "back-references"; DESIGN.md explains the departure from the
// reference's Snake*->Field* pointer).
type Snake struct {
	world WorldSize
	cfg   *Config

	Mass    float64
	Heading float64

	segments []Vector2D

	targetSegmentDistance float64
	segmentRadius         float64
	movedSinceLastSpawn   float64
	boostedLastMove       bool
}

// NewSnake creates a two-segment snake at pos with the given mass and
// heading, already sized to match its mass.
func NewSnake(world WorldSize, cfg *Config, pos Vector2D, mass, headingDeg float64) *Snake {
	s := &Snake{
		world:    world,
		cfg:      cfg,
		Mass:     mass,
		Heading:  NormalizeAngleDeg(headingDeg),
		segments: []Vector2D{pos, pos},
	}
	s.ensureSizeMatchesMass()
	return s
}

// World returns the toroidal world this snake moves in, so a BotBrain can
// unwrap LocalView positions relative to Self.Head() itself.
func (s *Snake) World() WorldSize { return s.world }

// Head returns the snake's head position.
func (s *Snake) Head() Vector2D { return s.segments[0] }

// Tail returns the snake's tail position.
func (s *Snake) Tail() Vector2D { return s.segments[len(s.segments)-1] }

// Pos implements Positioned via the head, so a *Snake can be dropped
// straight into a SpatialMap keyed by head position where useful.
func (s *Snake) Pos() Vector2D { return s.Head() }

// Segments returns the live segment slice. Callers must not retain it past
// the next Move call, since Move reuses the backing array.
func (s *Snake) Segments() []Vector2D { return s.segments }

// SegmentRadius returns the current collision/consume radius.
func (s *Snake) SegmentRadius() float64 { return s.segmentRadius }

// BoostedLastMove reports whether the most recent Move call boosted.
func (s *Snake) BoostedLastMove() bool { return s.boostedLastMove }

// Consume applies food's value to mass and resizes the body accordingly.
func (s *Snake) Consume(food *Food) {
	s.Mass += food.Value
	s.ensureSizeMatchesMass()
}

// ApplyMassDelta adds delta (which may be negative) to mass and resizes the
// body accordingly. Used for mass changes that do not come from consuming
// food, such as the cost a boosted move sheds each tick.
func (s *Snake) ApplyMassDelta(delta float64) {
	s.Mass += delta
	if s.Mass < 0 {
		s.Mass = 0
	}
	s.ensureSizeMatchesMass()
}

// CanConsume reports whether food lies within this snake's consume range of
// its head, unwrapped for the short path across the torus seam.
func (s *Snake) CanConsume(food *Food) bool {
	head := s.Head()
	unwrapped := s.world.Unwrap(food.Position, head)
	d := unwrapped.Sub(head)
	range_ := s.segmentRadius * s.cfg.SnakeConsumeRange
	return d.SquaredNorm() < range_*range_
}

// ensureSizeMatchesMass recomputes target_segment_distance and
// segment_radius from mass, then grows or truncates the tail to match the
// derived segment count (spec.md §4.3).
func (s *Snake) ensureSizeMatchesMass() {
	s.targetSegmentDistance = math.Pow(s.Mass*s.cfg.SnakeSegmentDistanceFactor, s.cfg.SnakeSegmentDistanceExponent)
	if s.targetSegmentDistance <= 0 {
		s.targetSegmentDistance = 1e-6
	}

	target := int(math.Floor(s.Mass / s.targetSegmentDistance / 5))
	if target < 2 {
		target = 2
	}

	switch {
	case len(s.segments) < target:
		tail := s.segments[len(s.segments)-1]
		for len(s.segments) < target {
			s.segments = append(s.segments, tail)
		}
	case len(s.segments) > target:
		s.segments = s.segments[:target]
	}

	s.segmentRadius = math.Sqrt(s.Mass) / 2
}

// unwrapChain replaces each segment (after the head) with the representative
// nearest its predecessor, turning the wrapped polyline into a locally
// continuous one so arithmetic across the seam behaves like flat-plane
// arithmetic (spec.md §4.3 step 4).
func (s *Snake) unwrapChain() {
	for i := 1; i < len(s.segments); i++ {
		s.segments[i] = s.world.Unwrap(s.segments[i], s.segments[i-1])
	}
}

// Move advances the snake by one simulation step toward targetAngleDeg,
// optionally boosting, and returns the number of new head segments produced
// during this call (spec.md §4.3 step 12; the reference implementation
// instead returns the post-truncation segment count, which is always just
// old_len — a no-op value. DESIGN.md documents following the spec's
// corrected contract instead).
func (s *Snake) Move(targetAngleDeg float64, boost bool) int {
	delta := NormalizeAngleDeg(targetAngleDeg - s.Heading)

	maxRotation := 10 / (s.segmentRadius/10 + 1)
	if delta > maxRotation {
		delta = maxRotation
	} else if delta < -maxRotation {
		delta = -maxRotation
	}

	oldLen := len(s.segments)

	s.unwrapChain()

	head := s.segments[0]
	body := s.segments[1:]

	steps := 1
	if boost {
		steps = s.cfg.SnakeBoostSteps
	}

	newSegments := 0
	for step := 0; step < steps; step++ {
		s.Heading += delta
		head = head.Add(FromAngleDeg(s.Heading).Scale(s.cfg.SnakeDistancePerStep))

		s.movedSinceLastSpawn += s.cfg.SnakeDistancePerStep
		for s.movedSinceLastSpawn > s.targetSegmentDistance {
			front := head
			if len(body) > 0 {
				front = body[0]
			}
			unit := head.Sub(front).Unit()
			newSeg := front.Add(unit.Scale(s.targetSegmentDistance))
			body = append([]Vector2D{newSeg}, body...)
			newSegments++
			s.movedSinceLastSpawn -= s.targetSegmentDistance
		}
	}

	s.segments = append([]Vector2D{head}, body...)

	if len(s.segments) > oldLen {
		s.segments = s.segments[:oldLen]
	}

	s.Heading = NormalizeAngleDeg(s.Heading)

	alpha := s.cfg.SnakePullFactor
	for i := 1; i <= len(s.segments)-2; i++ {
		mid := s.segments[i-1].Add(s.segments[i+1]).Scale(0.5)
		s.segments[i] = s.segments[i].Scale(1 - alpha).Add(mid.Scale(alpha))
	}

	for i := range s.segments {
		s.segments[i] = s.world.Wrap(s.segments[i])
	}

	s.boostedLastMove = boost

	return newSegments
}

// CheckInvariant reports a broken body: fewer than two segments, or a
// segment lying outside the canonical [0,Width) x [0,Height) rectangle Move
// is supposed to always wrap into. A non-nil return indicates a bug in Move
// or ensureSizeMatchesMass, not a reachable game state.
func (s *Snake) CheckInvariant(botID string) error {
	if len(s.segments) < 2 {
		return &InternalInvariantViolationError{BotID: botID, Message: "fewer than two segments"}
	}
	for _, seg := range s.segments {
		if seg.X < 0 || seg.X >= s.world.Width || seg.Y < 0 || seg.Y >= s.world.Height {
			return &InternalInvariantViolationError{BotID: botID, Message: "segment position not canonical"}
		}
	}
	return nil
}

// ConvertToFood spreads mass*SnakeConversionFactor evenly across the
// snake's segments as dynamic food, one item (or cluster of items, via
// FoodPool.SpawnDynamic) per segment, crediting hunter so it does not
// immediately re-consume its own kill.
func (s *Snake) ConvertToFood(pool *FoodPool, hunter *Bot) []*Food {
	total := s.Mass * s.cfg.SnakeConversionFactor
	perSegment := total / float64(len(s.segments))

	var out []*Food
	for _, seg := range s.segments {
		out = append(out, pool.SpawnDynamic(perSegment, seg, s.segmentRadius, hunter, s.world)...)
	}
	return out
}
