package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"snakearena"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults built in if omitted)")
	numBots := flag.Int("bots", 8, "number of wander bots to spawn")
	tickRate := flag.Duration("tick", 100*time.Millisecond, "duration between ticks")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 = run until signaled)")
	verbose := flag.Bool("verbose", false, "log per-tick and per-consume events")
	flag.Parse()

	cfg := arena.DefaultConfig()
	if *configPath != "" {
		loaded, err := arena.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	tracker := newLogTracker(*verbose)
	field := arena.NewField(&cfg, tracker)
	defer field.Close()

	seedSource := rand.New(rand.NewSource(cfg.RNGSeed))
	for i := 0; i < *numBots; i++ {
		id := uuid.NewString()
		brain := newWanderBrain(seedSource.Int63())
		snake := arena.NewSnake(cfg.World(), &cfg, randomPos(seedSource, cfg.World()), 5.0, 0)
		bot := &arena.Bot{
			ID:        id,
			Name:      "wanderer-" + id[:8],
			ViewerKey: id,
			Snake:     snake,
			Brain:     brain,
		}
		if err := field.AddBot(bot); err != nil {
			log.Printf("bot %s not admitted: %v", bot.Name, err)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*tickRate)
	defer ticker.Stop()

	log.Printf("arenad running: world=%.0fx%.0f bots=%d tick=%s", cfg.WorldWidth, cfg.WorldHeight, *numBots, *tickRate)

	elapsed := 0
	for {
		select {
		case <-ticker.C:
			field.Tick()
			elapsed++
			if *ticks > 0 && elapsed >= *ticks {
				log.Printf("reached %d ticks, shutting down...", elapsed)
				return
			}
		case <-stop:
			log.Println("shutting down...")
			return
		}
	}
}

func randomPos(rng *rand.Rand, world arena.WorldSize) arena.Vector2D {
	return arena.Vector2D{X: rng.Float64() * world.Width, Y: rng.Float64() * world.Height}
}
