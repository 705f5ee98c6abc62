package arena

import (
	"errors"
	"fmt"
	"testing"
)

// fixedBrain always steers toward a fixed target and boost setting.
type fixedBrain struct {
	angle float64
	boost bool
}

func (b *fixedBrain) Init() error                     { return nil }
func (b *fixedBrain) Decide(LocalView) (float64, bool) { return b.angle, b.boost }
func (b *fixedBrain) LogMessages() []string            { return nil }

type failingBrain struct{}

func (failingBrain) Init() error                     { return errors.New("boom") }
func (failingBrain) Decide(LocalView) (float64, bool) { return 0, false }
func (failingBrain) LogMessages() []string            { return nil }

// recordingTracker captures every event for assertions.
type recordingTracker struct {
	NopTracker
	kills   []string
	moved   []string
	spawned []string
}

func (r *recordingTracker) BotKilled(killer, victim *Bot) {
	r.kills = append(r.kills, killer.ID+">"+victim.ID)
}
func (r *recordingTracker) BotMoved(b *Bot, steps int) { r.moved = append(r.moved, b.ID) }
func (r *recordingTracker) BotSpawned(b *Bot)          { r.spawned = append(r.spawned, b.ID) }

func newTestBot(id string, world WorldSize, cfg *Config, pos Vector2D, mass float64, brain BotBrain) *Bot {
	return &Bot{
		ID:        id,
		Name:      id,
		ViewerKey: id,
		Snake:     NewSnake(world, cfg, pos, mass, 0),
		Brain:     brain,
	}
}

func TestFieldAddBotRejectsFailingInit(t *testing.T) {
	cfg := DefaultConfig()
	f := NewField(&cfg, nil)
	defer f.Close()

	bot := newTestBot("a", cfg.World(), &cfg, Vector2D{}, 1, failingBrain{})
	err := f.AddBot(bot)
	if err == nil {
		t.Fatal("expected BotInitFailedError")
	}
	var initErr *BotInitFailedError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected *BotInitFailedError, got %T", err)
	}
	if f.BotCount() != 0 {
		t.Fatalf("bot count = %d, want 0 after rejected admission", f.BotCount())
	}
}

func TestFieldTickAdvancesFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StaticFoodTarget = 0
	f := NewField(&cfg, nil)
	defer f.Close()

	if f.Frame() != 0 {
		t.Fatalf("initial frame = %d, want 0", f.Frame())
	}
	f.Tick()
	if f.Frame() != 1 {
		t.Fatalf("frame after one Tick = %d, want 1", f.Frame())
	}
}

func TestFieldStraightLineFoodCollection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldWidth, cfg.WorldHeight = 60, 60
	cfg.StaticFoodTarget = 0
	f := NewField(&cfg, nil)
	defer f.Close()

	bot := newTestBot("eater", cfg.World(), &cfg, Vector2D{X: 1, Y: 1}, 1.0, &fixedBrain{angle: 0})
	if err := f.AddBot(bot); err != nil {
		t.Fatalf("AddBot: %v", err)
	}

	for x := 5.0; x <= 25; x += 5 {
		item := &Food{ID: fmt.Sprintf("food-%.0f", x), Position: Vector2D{X: x, Y: 1}, Value: 1.0, shallRegenerate: false, life: 1 << 30}
		f.foodMap.Insert(item)
	}

	for i := 0; i < 200; i++ {
		f.Tick()
	}

	if bot.Snake.Mass < 6.0-1e-6 {
		t.Errorf("mass = %v, want >= 6.0 after collecting 5 food items of value 1", bot.Snake.Mass)
	}
}

func TestFindKillerRespectsMassRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KillerMinMassRatio = 1.5
	world := cfg.World()
	f := NewField(&cfg, nil)
	defer f.Close()

	victim := newTestBot("victim", world, &cfg, Vector2D{X: 10, Y: 10}, 2.0, &fixedBrain{})
	killer := newTestBot("killer", world, &cfg, Vector2D{X: 10, Y: 10}, 10.0, &fixedBrain{})

	f.segmentMap.Clear()
	f.segmentMap.Insert(segmentRef{pos: killer.Snake.Head(), bot: killer, radius: killer.Snake.SegmentRadius()})
	f.segmentMap.Insert(segmentRef{pos: victim.Snake.Head(), bot: victim, radius: victim.Snake.SegmentRadius()})

	got := f.findKiller(victim)
	if got != killer {
		t.Fatalf("findKiller = %v, want killer bot", got)
	}
}

func TestFindKillerRejectsInsufficientMassRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KillerMinMassRatio = 1.5
	world := cfg.World()
	f := NewField(&cfg, nil)
	defer f.Close()

	victim := newTestBot("victim", world, &cfg, Vector2D{X: 10, Y: 10}, 2.0, &fixedBrain{})
	notQuiteKiller := newTestBot("notquite", world, &cfg, Vector2D{X: 10, Y: 10}, 2.5, &fixedBrain{})

	f.segmentMap.Clear()
	f.segmentMap.Insert(segmentRef{pos: notQuiteKiller.Snake.Head(), bot: notQuiteKiller, radius: notQuiteKiller.Snake.SegmentRadius()})
	f.segmentMap.Insert(segmentRef{pos: victim.Snake.Head(), bot: victim, radius: victim.Snake.SegmentRadius()})

	if got := f.findKiller(victim); got != nil {
		t.Fatalf("findKiller = %v, want nil (2.5 <= 2.0*1.5)", got)
	}
}

func TestResolveKillsRemovesVictimAndEmitsEvent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KillerMinMassRatio = 1.5
	world := cfg.World()
	tracker := &recordingTracker{}
	f := NewField(&cfg, tracker)
	defer f.Close()

	victim := newTestBot("victim", world, &cfg, Vector2D{X: 10, Y: 10}, 2.0, &fixedBrain{})
	killer := newTestBot("killer", world, &cfg, Vector2D{X: 10, Y: 10}, 10.0, &fixedBrain{})
	f.mu.Lock()
	f.bots[victim.ID] = victim
	f.bots[killer.ID] = killer
	f.mu.Unlock()

	f.resolveKills([]moveResult{{bot: victim, killer: killer}})

	if f.BotCount() != 1 {
		t.Fatalf("bot count after kill = %d, want 1", f.BotCount())
	}
	if len(tracker.kills) != 1 {
		t.Fatalf("expected 1 BotKilled event, got %d", len(tracker.kills))
	}
	if killer.Score != 1 {
		t.Fatalf("killer.Score = %d, want 1 after a confirmed kill", killer.Score)
	}
}

func TestResolveKillsSelfKillOnBoostMassLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnakeSelfKillMassThreshold = 5.0
	cfg.SnakeBoostLossFactor = 0.5
	world := cfg.World()
	tracker := &recordingTracker{}
	f := NewField(&cfg, tracker)
	defer f.Close()

	bot := newTestBot("boostbot", world, &cfg, Vector2D{X: 10, Y: 10}, 6.0, &fixedBrain{boost: true})
	f.mu.Lock()
	f.bots[bot.ID] = bot
	f.mu.Unlock()

	bot.Snake.Move(0, true)

	f.resolveKills([]moveResult{{bot: bot, killer: nil}})

	if f.BotCount() != 0 {
		t.Fatalf("bot count after self-kill = %d, want 0", f.BotCount())
	}
	if len(tracker.kills) != 1 {
		t.Fatalf("expected 1 self-kill event, got %d", len(tracker.kills))
	}
	if bot.Score != 0 {
		t.Fatalf("bot.Score = %d, want 0 after a self-kill (not a confirmed kill)", bot.Score)
	}
}

func TestResolveKillsDropsBotOnInvariantViolation(t *testing.T) {
	cfg := DefaultConfig()
	world := cfg.World()
	tracker := &recordingTracker{}
	f := NewField(&cfg, tracker)
	defer f.Close()

	bot := newTestBot("broken", world, &cfg, Vector2D{X: 10, Y: 10}, 2.0, &fixedBrain{})
	f.mu.Lock()
	f.bots[bot.ID] = bot
	f.mu.Unlock()

	f.resolveKills([]moveResult{{bot: bot, invalid: &InternalInvariantViolationError{BotID: bot.ID, Message: "test"}}})

	if f.BotCount() != 0 {
		t.Fatalf("bot count after invariant violation = %d, want 0", f.BotCount())
	}
	if len(tracker.kills) != 0 {
		t.Fatalf("invariant-violation drop should not emit BotKilled, got %d", len(tracker.kills))
	}
}

func TestRegisterKillCallbackInvokedOnKill(t *testing.T) {
	cfg := DefaultConfig()
	world := cfg.World()
	f := NewField(&cfg, nil)
	defer f.Close()

	victim := newTestBot("victim", world, &cfg, Vector2D{X: 10, Y: 10}, 2.0, &fixedBrain{})
	killer := newTestBot("killer", world, &cfg, Vector2D{X: 10, Y: 10}, 10.0, &fixedBrain{})
	f.mu.Lock()
	f.bots[victim.ID] = victim
	f.bots[killer.ID] = killer
	f.mu.Unlock()

	var callbackFired bool
	f.RegisterKillCallback(func(v, k *Bot) {
		callbackFired = true
		if v.ID != victim.ID || k.ID != killer.ID {
			t.Errorf("callback got wrong bots: victim=%s killer=%s", v.ID, k.ID)
		}
	})

	f.resolveKills([]moveResult{{bot: victim, killer: killer}})

	if !callbackFired {
		t.Fatal("kill callback was not invoked")
	}
}
