package arena

import (
	"math"
	"testing"
)

func TestWrapCanonicalizesIntoBounds(t *testing.T) {
	w := WorldSize{Width: 100, Height: 50}

	got := w.Wrap(Vector2D{X: -10, Y: 260})
	if got.X < 0 || got.X >= w.Width {
		t.Errorf("X out of bounds: %v", got.X)
	}
	if got.Y < 0 || got.Y >= w.Height {
		t.Errorf("Y out of bounds: %v", got.Y)
	}
}

func TestWrapClosedUnderRepetition(t *testing.T) {
	w := WorldSize{Width: 37, Height: 41}
	v := Vector2D{X: 12345.678, Y: -9876.543}

	once := w.Wrap(v)
	twice := w.Wrap(once)
	if once != twice {
		t.Errorf("wrap not idempotent: %v vs %v", once, twice)
	}
}

func TestToroidalRoundTrip(t *testing.T) {
	w := WorldSize{Width: 80, Height: 60}
	p := Vector2D{X: 5, Y: 55}
	ref := Vector2D{X: 75, Y: 5}

	lhs := w.Wrap(w.Unwrap(p, ref))
	rhs := w.Wrap(p)
	if math.Abs(lhs.X-rhs.X) > 1e-9 || math.Abs(lhs.Y-rhs.Y) > 1e-9 {
		t.Errorf("wrap(unwrap(p,ref)) = %v, want %v", lhs, rhs)
	}
}

func TestUnwrapShortPath(t *testing.T) {
	w := WorldSize{Width: 100, Height: 100}
	ref := Vector2D{X: 5, Y: 5}
	p := Vector2D{X: 95, Y: 95}

	got := w.Unwrap(p, ref)
	if math.Abs(got.X-ref.X) > w.Width/2+1e-9 {
		t.Errorf("X component too far from ref: got %v ref %v", got.X, ref.X)
	}
	if math.Abs(got.Y-ref.Y) > w.Height/2+1e-9 {
		t.Errorf("Y component too far from ref: got %v ref %v", got.Y, ref.Y)
	}
}

func TestUnwrapRelativeRange(t *testing.T) {
	w := WorldSize{Width: 40, Height: 40}
	for _, d := range []Vector2D{{X: 39}, {X: -39}, {X: 20}, {X: -20}, {X: 1000}} {
		got := w.UnwrapRelative(d)
		if got.X <= -w.Width/2 || got.X > w.Width/2 {
			t.Errorf("UnwrapRelative(%v).X = %v out of (-W/2, W/2]", d, got.X)
		}
	}
}

func TestNormalizeAngleDegRange(t *testing.T) {
	cases := []float64{0, 180, -180, 181, -181, 720, -720, 359}
	for _, a := range cases {
		got := NormalizeAngleDeg(a)
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeAngleDeg(%v) = %v, out of (-180,180]", a, got)
		}
	}
}
