package arena

import (
	"math/rand"
	"testing"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSampleValueAlwaysPositive(t *testing.T) {
	cfg := testConfig()
	pool := NewFoodPool(cfg, newTestRNG())

	for i := 0; i < 1000; i++ {
		if v := pool.SampleValue(); v <= 0 {
			t.Fatalf("SampleValue returned non-positive value %v", v)
		}
	}
}

func TestSpawnStaticWithinWorldBounds(t *testing.T) {
	cfg := testConfig()
	world := WorldSize{Width: 40, Height: 30}
	pool := NewFoodPool(cfg, newTestRNG())

	for i := 0; i < 100; i++ {
		f := pool.SpawnStatic(world)
		if f.Position.X < 0 || f.Position.X >= world.Width {
			t.Fatalf("X = %v out of [0, %v)", f.Position.X, world.Width)
		}
		if f.Position.Y < 0 || f.Position.Y >= world.Height {
			t.Fatalf("Y = %v out of [0, %v)", f.Position.Y, world.Height)
		}
		if !f.ShallRegenerate() {
			t.Error("static food should be marked to regenerate")
		}
	}
}

func TestSpawnDynamicSumsToTotalValue(t *testing.T) {
	cfg := testConfig()
	world := WorldSize{Width: 100, Height: 100}
	pool := NewFoodPool(cfg, newTestRNG())

	const total = 37.5
	items := pool.SpawnDynamic(total, Vector2D{X: 50, Y: 50}, 3, nil, world)

	var sum float64
	for _, f := range items {
		if f.IsStatic {
			t.Error("dynamic food item marked static")
		}
		if f.ShallRegenerate() {
			t.Error("dynamic food should not regenerate")
		}
		sum += f.Value
	}
	if diff := sum - total; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("sum of dynamic food values = %v, want %v", sum, total)
	}
}

func TestFoodDecayExpiresAtZero(t *testing.T) {
	f := &Food{life: 3}
	if f.Decay() {
		t.Fatal("Decay reported expiry too early")
	}
	if f.Decay() {
		t.Fatal("Decay reported expiry too early")
	}
	if !f.Decay() {
		t.Fatal("Decay should report expiry when life reaches 0")
	}
}

func TestFoodMarkForRemoveIsIdempotent(t *testing.T) {
	f := &Food{life: 1}
	f.MarkForRemove()
	if !f.ShallBeRemoved() {
		t.Fatal("expected ShallBeRemoved to be true after MarkForRemove")
	}
	if f.Decay() {
		t.Error("Decay should be a no-op once removed")
	}
}
