package arena

import "math"

// WorldSize describes a toroidal playfield of width x height world units.
// It carries no state beyond the two dimensions, so it can be passed by
// value into Snake without forming an ownership cycle back to Field — see
// DESIGN.md for why Snake does not hold a *Field back-reference.
type WorldSize struct {
	Width, Height float64
}

// wrapAxis folds x into [0, size) using floating modulo, so it is closed
// under repeated application and correct for arbitrarily large or negative
// inputs (the reference implementation's while-loop wrap only worked for
// inputs already within one period of the world size).
func wrapAxis(x, size float64) float64 {
	r := math.Mod(x, size)
	if r < 0 {
		r += size
	}
	return r
}

// wrapAxisLowClosed folds a displacement into [-size/2, size/2).
func wrapAxisLowClosed(d, size float64) float64 {
	r := math.Mod(d, size)
	if r < -size/2 {
		r += size
	} else if r >= size/2 {
		r -= size
	}
	return r
}

// wrapAxisHighClosed folds a displacement into (-size/2, size/2].
func wrapAxisHighClosed(d, size float64) float64 {
	r := math.Mod(d, size)
	if r <= -size/2 {
		r += size
	} else if r > size/2 {
		r -= size
	}
	return r
}

// Wrap returns the canonical representative of v in [0,Width) x [0,Height).
func (w WorldSize) Wrap(v Vector2D) Vector2D {
	return Vector2D{wrapAxis(v.X, w.Width), wrapAxis(v.Y, w.Height)}
}

// Unwrap returns the representative of v nearest ref: each axis lies in
// [ref-size/2, ref+size/2). Used before any distance test so that a short
// path across the seam is preferred over the long way around.
func (w WorldSize) Unwrap(v, ref Vector2D) Vector2D {
	return Vector2D{
		ref.X + wrapAxisLowClosed(v.X-ref.X, w.Width),
		ref.Y + wrapAxisLowClosed(v.Y-ref.Y, w.Height),
	}
}

// UnwrapRelative folds a displacement (not an absolute position) into
// (-Width/2, Width/2] x (-Height/2, Height/2].
func (w WorldSize) UnwrapRelative(d Vector2D) Vector2D {
	return Vector2D{
		wrapAxisHighClosed(d.X, w.Width),
		wrapAxisHighClosed(d.Y, w.Height),
	}
}

// NormalizeAngleDeg wraps an angle in degrees into (-180, 180].
func NormalizeAngleDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}
