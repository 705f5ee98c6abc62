package arena

import (
	"math/rand"
	"sync"
	"time"
)

// KillCallback is invoked synchronously during kill resolution. It must not
// mutate the field's current bot set. It runs with Field's bot-set lock held,
// so calling AddBot (or any other Field method that takes that lock) from
// inside it deadlocks; Field keeps no queue of admissions requested during a
// callback.
type KillCallback func(victim, killer *Bot)

// Field owns all mutable world state and drives the tick pipeline. It is
// grounded on the teacher's Game (game.go): a mutex-guarded map of live
// entities advanced by a single controller loop, generalised here to a
// two-phase parallel step per spec.md §4.4-§5 instead of Game's
// single-threaded per-player loop.
type Field struct {
	mu sync.RWMutex

	world WorldSize
	cfg   *Config

	bots map[string]*Bot

	foodMap    *SpatialMap[*Food]
	segmentMap *SpatialMap[segmentRef]

	pool *FoodPool
	rng  *rand.Rand

	tracker UpdateTracker

	frame int64

	staticFoodTarget int
	staticFoodLive   int
	maxSegmentRadius float64

	executor *BotExecutor

	killCallbacks []KillCallback
}

// segmentRef is what the segment map actually indexes: a body-segment
// position tagged with the owning bot and that segment's radius, so a
// collision job can attribute a hit without walking back through the bot
// map.
type segmentRef struct {
	pos    Vector2D
	bot    *Bot
	radius float64
}

func (s segmentRef) Pos() Vector2D { return s.pos }

// NewField constructs an empty field over cfg's world size. The tracker
// defaults to NopTracker if nil.
func NewField(cfg *Config, tracker UpdateTracker) *Field {
	if tracker == nil {
		tracker = NopTracker{}
	}
	world := cfg.World()
	rng := rand.New(rand.NewSource(cfg.RNGSeed))
	f := &Field{
		world:            world,
		cfg:              cfg,
		bots:             make(map[string]*Bot),
		foodMap:          NewSpatialMap[*Food](world, cfg.SpatialMapReserveCount),
		segmentMap:       NewSpatialMap[segmentRef](world, cfg.SpatialMapReserveCount),
		pool:             NewFoodPool(cfg, rng),
		rng:              rng,
		tracker:          tracker,
		staticFoodTarget: cfg.StaticFoodTarget,
		executor:         NewBotExecutor(cfg.Workers),
	}
	for i := 0; i < f.staticFoodTarget; i++ {
		f.spawnStaticFood()
	}
	f.rebuildSegmentMap()
	return f
}

// Close shuts down the field's worker pool. The field must not be used
// afterward.
func (f *Field) Close() {
	f.executor.Close()
}

// RegisterKillCallback adds a callback invoked synchronously during kill
// resolution (spec.md §6, BotKilledCallback).
func (f *Field) RegisterKillCallback(cb KillCallback) {
	f.killCallbacks = append(f.killCallbacks, cb)
}

// AddBot admits bot to the field after calling its brain's Init. On Init
// failure the bot is not admitted and BotInitFailedError is returned.
func (f *Field) AddBot(b *Bot) error {
	if err := b.Brain.Init(); err != nil {
		return &BotInitFailedError{BotID: b.ID, Err: err}
	}
	f.mu.Lock()
	f.bots[b.ID] = b
	f.mu.Unlock()
	f.tracker.BotSpawned(b)
	return nil
}

// Frame returns the current tick counter.
func (f *Field) Frame() int64 { return f.frame }

// BotCount returns the number of live bots.
func (f *Field) BotCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.bots)
}

func (f *Field) spawnStaticFood() {
	food := f.pool.SpawnStatic(f.world)
	f.foodMap.Insert(food)
	f.staticFoodLive++
	f.tracker.FoodSpawned(food)
}

// Tick advances the simulation by one frame, running the pipeline spec.md
// §4.4 lays out in order: decayFood, consumeFood, the two move-phase
// barriers, kill resolution, and the segment-map rebuild.
func (f *Field) Tick() {
	f.frame++
	f.tracker.Tick(f.frame)

	f.decayFood()
	f.consumeFood()
	results := f.moveAllBots()
	f.resolveKills(results)
	f.drainBrainLogs()
	f.reportStats()
	f.rebuildSegmentMap()
}

// drainBrainLogs pulls each surviving bot's self-reported diagnostic
// messages and forwards them through UpdateTracker.BotLogMessage, mirroring
// the reference's Field::processLog (original_source/src/Field.cpp): drain
// every bot's log queue once per tick, single-threaded, after movement and
// kill resolution have settled.
func (f *Field) drainBrainLogs() {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, b := range f.bots {
		for _, msg := range b.Brain.LogMessages() {
			f.tracker.BotLogMessage(b.ViewerKey, msg)
		}
	}
}

// reportStats emits UpdateTracker.BotStats for every surviving bot, once
// per tick after kill resolution (spec.md §4.7's botStats(b) operation).
func (f *Field) reportStats() {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, b := range f.bots {
		f.tracker.BotStats(b)
	}
}

// decayFood decrements every food item's life and drops expired items in a
// single EraseIf sweep, counting regenerable ones; the replacements are
// spawned only after the sweep has finished, so no spawn mutates the
// container being iterated (spec.md §9 open question (b)).
func (f *Field) decayFood() {
	var expired []*Food
	var toRegenerate int

	f.foodMap.EraseIf(func(item *Food) bool {
		if !item.Decay() {
			return false
		}
		expired = append(expired, item)
		if item.ShallRegenerate() {
			toRegenerate++
		}
		f.staticFoodLive--
		return true
	})

	for _, e := range expired {
		f.tracker.FoodDecayed(e)
	}
	for i := 0; i < toRegenerate; i++ {
		f.spawnStaticFood()
	}
}

// consumeFood queries the food map around each bot's head, applies
// Snake.CanConsume/Consume, and defers replacement spawns until after every
// bot has been checked. A food item consumed by one bot is marked removed
// immediately so no other bot in the same pass can also consume it.
func (f *Field) consumeFood() {
	f.mu.RLock()
	bots := make([]*Bot, 0, len(f.bots))
	for _, b := range f.bots {
		bots = append(bots, b)
	}
	f.mu.RUnlock()

	var toRegenerate int
	buf := make([]*Food, 0, 16)

	for _, b := range bots {
		head := b.Snake.Head()
		reach := b.Snake.SegmentRadius() * f.cfg.SnakeConsumeRange
		buf = f.foodMap.Region(head, reach, buf[:0])

		for _, candidate := range buf {
			if candidate.ShallBeRemoved() {
				continue
			}
			if candidate.Hunter == b {
				continue
			}
			if !b.Snake.CanConsume(candidate) {
				continue
			}
			b.Snake.Consume(candidate)
			f.tracker.FoodConsumed(candidate, b)
			if candidate.ShallRegenerate() {
				toRegenerate++
			}
			candidate.MarkForRemove()
		}
	}

	f.foodMap.EraseIf(func(item *Food) bool { return item.ShallBeRemoved() })

	for i := 0; i < toRegenerate; i++ {
		f.spawnStaticFood()
	}

	f.updateMaxSegmentRadius(bots)
}

// updateMaxSegmentRadius recomputes the largest segment radius among live
// bots, used to size the neighbourhood a brain's view sweeps and the
// candidate query in findKiller without every
// caller re-scanning the whole bot set (spec.md §4.4 step 2).
func (f *Field) updateMaxSegmentRadius(bots []*Bot) {
	max := 0.0
	for _, b := range bots {
		if r := b.Snake.SegmentRadius(); r > max {
			max = r
		}
	}
	f.maxSegmentRadius = max
}

// moveResult is one bot's outcome from the two-phase move step, collected on
// the controller after both barriers.
type moveResult struct {
	bot     *Bot
	steps   int
	killer  *Bot
	invalid error
}

// moveAllBots runs the move phase and the collision-check phase, each behind
// its own WaitForCompletion barrier, mirroring spec.md §4.4 steps 3-4: no
// bot observes another bot's post-move state until phase 1 has fully
// completed.
func (f *Field) moveAllBots() []moveResult {
	f.mu.RLock()
	bots := make([]*Bot, 0, len(f.bots))
	for _, b := range f.bots {
		bots = append(bots, b)
	}
	f.mu.RUnlock()

	// Views are gathered on the controller before any move job starts, and
	// neighbour snakes are copied, so a brain never sees another bot's
	// post-move state.
	views := make([]LocalView, len(bots))
	for i, b := range bots {
		views[i] = f.localView(b)
		for j, s := range views[i].NearbySnakes {
			snap := *s
			snap.segments = append([]Vector2D(nil), s.segments...)
			views[i].NearbySnakes[j] = &snap
		}
	}

	moveJobs := make([]*Job, len(bots))
	for i, b := range bots {
		bot := b
		view := views[i]
		moveJobs[i] = &Job{
			Kind: JobMove,
			Bot:  bot,
			Fn: func(bot *Bot) JobResult {
				angle, boost := f.decide(bot, view)
				steps := bot.Snake.Move(angle, boost)
				return JobResult{Steps: steps, Invalid: bot.Snake.CheckInvariant(bot.ID)}
			},
		}
		f.executor.AddJob(moveJobs[i])
	}
	f.executor.WaitForCompletion()
	f.executor.DrainProcessed()

	// Rebuild the segment map from post-move positions before the collision
	// phase, so A-kills-B and B-kills-A are resolved from the same geometry
	// (spec.md §4.4 step 4's rationale). The authoritative rebuild for the
	// next frame still happens after kill resolution, in Tick.
	f.rebuildSegmentMap()

	collisionJobs := make([]*Job, len(bots))
	for i, b := range bots {
		bot := b
		collisionJobs[i] = &Job{
			Kind: JobCollisionCheck,
			Bot:  bot,
			Fn: func(bot *Bot) JobResult {
				killer := f.findKiller(bot)
				return JobResult{Killer: killer}
			},
		}
		f.executor.AddJob(collisionJobs[i])
	}
	f.executor.WaitForCompletion()
	f.executor.DrainProcessed()

	results := make([]moveResult, len(bots))
	for i, b := range bots {
		results[i] = moveResult{
			bot:     b,
			steps:   moveJobs[i].Result.Steps,
			killer:  collisionJobs[i].Result.Killer,
			invalid: moveJobs[i].Result.Invalid,
		}
	}
	return results
}

// decide calls the bot's brain under a soft timeout: if the brain does not
// respond within Config.BrainDecisionTimeout, the previous decision is
// reused and the bot is flagged (spec.md §5 "suspension points").
func (f *Field) decide(bot *Bot, view LocalView) (float64, bool) {
	type decision struct {
		angle float64
		boost bool
	}
	ch := make(chan decision, 1)
	go func() {
		angle, boost := bot.Brain.Decide(view)
		ch <- decision{angle, boost}
	}()

	timeout := time.Duration(f.cfg.BrainDecisionTimeout * float64(time.Second))
	select {
	case d := <-ch:
		bot.LastAngle, bot.LastBoost, bot.LastDecisionTimedOut = d.angle, d.boost, false
		return d.angle, d.boost
	case <-time.After(timeout):
		bot.LastDecisionTimedOut = true
		f.tracker.BotLogMessage(bot.ViewerKey, (&BrainDecisionTimeoutError{BotID: bot.ID}).Error())
		return bot.LastAngle, bot.LastBoost
	}
}

// localView gathers the read-only neighbourhood a brain reasons over. It is
// called before the move phase starts: the segment map is the one rebuilt at
// the end of the previous tick, and the food map already reflects this
// tick's decay and consume steps.
func (f *Field) localView(bot *Bot) LocalView {
	head := bot.Snake.Head()
	reach := (bot.Snake.SegmentRadius() + f.maxSegmentRadius) * f.cfg.SnakeConsumeRange * 2

	food := f.foodMap.Region(head, reach, nil)

	var neighbours []*Snake
	seen := make(map[*Snake]bool)
	for _, ref := range f.segmentMap.Region(head, reach, nil) {
		if ref.bot == bot || seen[ref.bot.Snake] {
			continue
		}
		seen[ref.bot.Snake] = true
		neighbours = append(neighbours, ref.bot.Snake)
	}

	return LocalView{Self: bot.Snake, NearbyFood: food, NearbySnakes: neighbours}
}

// findKiller queries the segment map around bot's head for foreign segments
// and returns the first one whose owner satisfies KillerMinMassRatio,
// mirroring spec.md §4.4 step 4. Iteration order over the map is
// unspecified but stable within a frame.
func (f *Field) findKiller(bot *Bot) *Bot {
	head := bot.Snake.Head()
	radius := bot.Snake.SegmentRadius()

	for _, ref := range f.segmentMap.Region(head, radius+f.maxSegmentRadius, nil) {
		if ref.bot == bot {
			continue
		}
		unwrapped := f.world.Unwrap(ref.pos, head)
		d := unwrapped.Sub(head)
		limit := radius + ref.radius
		if d.SquaredNorm() >= limit*limit {
			continue
		}
		if ref.bot.Snake.Mass > bot.Snake.Mass*f.cfg.KillerMinMassRatio {
			return ref.bot
		}
	}
	return nil
}

// resolveKills runs the single-threaded kill-resolution step: mass-gated
// kills convert the victim to food and remove it from the bot set; survivors
// that boosted pay the boost mass cost and may self-kill (spec.md §4.4
// step 5).
func (f *Field) resolveKills(results []moveResult) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range results {
		bot := r.bot
		if _, alive := f.bots[bot.ID]; !alive {
			continue
		}

		if r.invalid != nil {
			delete(f.bots, bot.ID)
			f.tracker.BotLogMessage(bot.ViewerKey, r.invalid.Error())
			continue
		}

		if r.killer != nil && r.killer.Snake.Mass > bot.Snake.Mass*f.cfg.KillerMinMassRatio {
			f.killBotLocked(bot, r.killer)
			continue
		}

		f.tracker.BotMoved(bot, r.steps)

		if bot.Snake.BoostedLastMove() {
			loss := bot.Snake.Mass * f.cfg.SnakeBoostLossFactor
			dropped := f.pool.SpawnDynamic(loss, bot.Snake.Tail(), bot.Snake.SegmentRadius(), bot, f.world)
			bot.Snake.ApplyMassDelta(-loss)
			for _, item := range dropped {
				f.foodMap.Insert(item)
				f.tracker.FoodSpawned(item)
			}
			if bot.Snake.Mass < f.cfg.SnakeSelfKillMassThreshold {
				f.killBotLocked(bot, bot)
			}
		}
	}
}

// killBotLocked removes victim from the bot set, converts it to dynamic
// food, credits killer with a confirmed kill, emits botKilled, and invokes
// registered callbacks. Callers must hold f.mu.
func (f *Field) killBotLocked(victim, killer *Bot) {
	delete(f.bots, victim.ID)

	if killer != victim {
		killer.Score++
	}

	dropped := victim.Snake.ConvertToFood(f.pool, killer)
	for _, item := range dropped {
		f.foodMap.Insert(item)
		f.tracker.FoodSpawned(item)
	}

	f.tracker.BotKilled(killer, victim)

	for _, cb := range f.killCallbacks {
		cb(victim, killer)
	}
}

// rebuildSegmentMap clears and refills the segment map from every surviving
// bot, so the next frame's move and collision phases read a consistent
// index (spec.md §4.4 step 6).
func (f *Field) rebuildSegmentMap() {
	f.mu.RLock()
	defer f.mu.RUnlock()

	f.segmentMap.Clear()
	for _, b := range f.bots {
		radius := b.Snake.SegmentRadius()
		for _, seg := range b.Snake.Segments() {
			f.segmentMap.Insert(segmentRef{pos: seg, bot: b, radius: radius})
		}
	}
}
