package arena

// LocalView is the read-only slice of world state handed to a BotBrain each
// tick: the bot's own snake plus whatever else its brain wants to reason
// about, gathered by Field via SpatialMap.Region before the move phase.
// Positions in NearbyFood/NearbySnakes are absolute world coordinates, still
// on the far side of the torus seam from Self's head where relevant; a brain
// that cares about direction should unwrap them relative to Self.Head()
// itself (WorldSize.Unwrap), the same way Snake.CanConsume does internally.
type LocalView struct {
	Self         *Snake
	NearbyFood   []*Food
	NearbySnakes []*Snake
}

// BotBrain is the only decision-making abstraction Field depends on. Field
// never inspects a brain's internals; it only calls these three methods,
// mirroring how the teacher's Mob.Update never reaches into a specific AI
// implementation (mob.go).
type BotBrain interface {
	// Init is called once when the bot is admitted to the field. Returning
	// an error rejects the bot (BotInitFailedError) instead of spawning it.
	Init() error

	// Decide is called once per tick with the bot's current view and must
	// return a target heading in degrees and whether to boost. Field applies
	// a soft timeout (Config.BrainDecisionTimeout) around this call; on
	// timeout the prior decision is reused and LastDecisionTimedOut is set.
	Decide(view LocalView) (targetAngleDeg float64, boost bool)

	// LogMessages drains and returns any messages the brain wants surfaced
	// through UpdateTracker.BotLogMessage since the last call.
	LogMessages() []string
}

// Bot pairs a Snake with the BotBrain steering it and the bookkeeping Field
// needs to run the two-phase tick and report timeouts.
type Bot struct {
	ID        string
	Name      string
	ViewerKey string

	Snake *Snake
	Brain BotBrain

	Score int

	LastAngle            float64
	LastBoost            bool
	LastDecisionTimedOut bool
}
