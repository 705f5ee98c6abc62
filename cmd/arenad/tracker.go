package main

import (
	"log"

	"github.com/dustin/go-humanize"

	"snakearena"
)

// logTracker reports field events through the standard logger, humanizing
// counts and masses the way the teacher's log lines read (main.go, hub.go
// both log plain Printf lines; humanize is pulled in here to render mass
// and tick counts the way an operator-facing CLI would).
type logTracker struct {
	verbose bool
}

func newLogTracker(verbose bool) *logTracker {
	return &logTracker{verbose: verbose}
}

func (t *logTracker) Tick(frame int64) {
	if t.verbose && frame%100 == 0 {
		log.Printf("tick %s", humanize.Comma(frame))
	}
}

func (t *logTracker) FoodSpawned(f *arena.Food) {}
func (t *logTracker) FoodDecayed(f *arena.Food) {}

func (t *logTracker) FoodConsumed(f *arena.Food, b *arena.Bot) {
	if t.verbose {
		log.Printf("bot %s consumed food worth %.2f", b.Name, f.Value)
	}
}

func (t *logTracker) BotSpawned(b *arena.Bot) {
	log.Printf("bot %s spawned (mass %.1f)", b.Name, b.Snake.Mass)
}

func (t *logTracker) BotMoved(b *arena.Bot, steps int) {}

func (t *logTracker) BotKilled(killer, victim *arena.Bot) {
	if killer == victim {
		log.Printf("bot %s self-killed", victim.Name)
		return
	}
	log.Printf("bot %s killed bot %s", killer.Name, victim.Name)
}

func (t *logTracker) BotLogMessage(viewerKey, text string) {
	log.Printf("[%s] %s", viewerKey, text)
}

func (t *logTracker) BotStats(b *arena.Bot) {
	if t.verbose {
		log.Printf("bot %s: mass=%s score=%d", b.Name, humanize.FormatFloat("#,###.##", b.Snake.Mass), b.Score)
	}
}
