package sim

import "github.com/vovakirdan/tui-asteroids/internal/core"

// Bounds is the arena rectangle, centered at the origin.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewBounds returns the bounds of a width x height arena centered at the origin.
func NewBounds(width, height float64) Bounds {
	return Bounds{
		MinX: -width / 2,
		MaxX: width / 2,
		MinY: -height / 2,
		MaxY: height / 2,
	}
}

// Width returns the arena width.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the arena height.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// InBand reports whether p lies inside the wrap band for half-scale half.
func (b Bounds) InBand(p core.Vec2, half float64) bool {
	return p.X >= b.MinX-half && p.X <= b.MaxX+half &&
		p.Y >= b.MinY-half && p.Y <= b.MaxY+half
}

// Wrap advances p by v on a torus. An entity is moved to the opposite edge
// only once it is fully past an edge (beyond it by half), so the jump is not
// visible. Axes wrap independently.
func Wrap(p, v core.Vec2, half float64, b Bounds) core.Vec2 {
	next := p.Add(v)
	next.X = wrapAxis(next.X, b.MinX, b.MaxX, half)
	next.Y = wrapAxis(next.Y, b.MinY, b.MaxY, half)
	return next
}

func wrapAxis(x, lo, hi, half float64) float64 {
	switch {
	case x > hi+half:
		return lo - half
	case x < lo-half:
		return hi + half
	default:
		return x
	}
}

// integrate moves every entity with a position and velocity, then syncs the
// render transforms.
func integrate(w *World, b Bounds) {
	for _, e := range w.Velocities.Entities() {
		pos := w.Positions.Ptr(e)
		if pos == nil {
			continue
		}
		vel, _ := w.Velocities.Get(e)
		*pos = Wrap(*pos, vel, w.scaleOf(e), b)
	}

	for _, e := range w.Transforms.Entities() {
		if pos, ok := w.Positions.Get(e); ok {
			w.Transforms.Ptr(e).Pos = pos
		}
	}
}
