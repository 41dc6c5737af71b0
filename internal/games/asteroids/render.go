package asteroids

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Visual characters for rendering
const (
	BulletChar   = '•'
	RockRimChar  = '#'
	RockFillChar = '.'
	TinyRockChar = '*'
)

// shipGlyphs is indexed by heading octant, counter-clockwise from up.
var shipGlyphs = [8]rune{'▲', '◤', '◀', '◣', '▼', '◢', '▶', '◥'}

// rockColors is indexed by asteroid size.
var rockColors = [sim.SizeCount]core.Color{
	sim.SizeTiny:   core.ColorYellow,
	sim.SizeSmall:  core.ColorOrange,
	sim.SizeMedium: core.ColorWhite,
	sim.SizeLarge:  core.ColorGray,
}

// hudHeight is the number of rows reserved above the arena.
const hudHeight = 1

// viewport maps arena coordinates onto screen cells. World y grows upward,
// screen rows grow downward.
type viewport struct {
	b      sim.Bounds
	x0, y0 int
	w, h   int
}

func newViewport(b sim.Bounds, dst *core.Screen) viewport {
	return viewport{b: b, x0: 0, y0: hudHeight, w: dst.Width(), h: dst.Height() - hudHeight}
}

// cell returns the screen cell containing world point p.
func (v viewport) cell(p core.Vec2) (int, int) {
	fx := (p.X - v.b.MinX) / v.b.Width() * float64(v.w)
	fy := (v.b.MaxY - p.Y) / v.b.Height() * float64(v.h)
	return v.x0 + int(math.Floor(fx)), v.y0 + int(math.Floor(fy))
}

// radii returns a world radius in cells along each axis.
func (v viewport) radii(r float64) (float64, float64) {
	return r / v.b.Width() * float64(v.w), r / v.b.Height() * float64(v.h)
}

func (v viewport) contains(x, y int) bool {
	return x >= v.x0 && x < v.x0+v.w && y >= v.y0 && y < v.y0+v.h
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	w := g.sim.World()
	vp := newViewport(g.sim.Bounds(), dst)
	p := g.sim.Params()

	for _, e := range w.Asteroids.Entities() {
		a, _ := w.Asteroids.Get(e)
		tr, _ := w.Transforms.Get(e)
		g.drawRock(dst, vp, tr.Pos, p.Radius(a.Size), a.Size)
	}

	for _, e := range w.Bullets.Entities() {
		tr, _ := w.Transforms.Get(e)
		if x, y := vp.cell(tr.Pos); vp.contains(x, y) {
			dst.SetColored(x, y, BulletChar, core.ColorBrightYellow)
		}
	}

	if e, ok := w.ShipEntity(); ok {
		tr, _ := w.Transforms.Get(e)
		if x, y := vp.cell(tr.Pos); vp.contains(x, y) {
			dst.SetColored(x, y, ShipGlyph(tr.Rotation), core.ColorBrightCyan)
		}
	}

	g.drawHUD(dst)

	switch g.phase {
	case PhaseReady:
		g.drawCenteredMessage(dst, g.Title(), "Press SPACE to launch")
	case PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseLost:
		g.drawCenteredMessage(dst, "SHIP DESTROYED", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score()))
	case PhaseWon:
		g.drawCenteredMessage(dst, "FIELD CLEARED", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score()))
	}
}

// ShipGlyph returns the arrow for a heading, snapped to the nearest octant.
func ShipGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return shipGlyphs[octant]
}

// drawRock draws an asteroid as an elliptical disk (cells are taller than
// wide, so the world circle is scaled per axis).
func (g *Game) drawRock(dst *core.Screen, vp viewport, pos core.Vec2, radius float64, size sim.Size) {
	color := core.ColorWhite
	if size.Valid() {
		color = rockColors[size]
	}

	cx, cy := vp.cell(pos)
	rx, ry := vp.radii(radius)
	if rx < 1 || ry < 1 {
		if vp.contains(cx, cy) {
			dst.SetColored(cx, cy, TinyRockChar, color)
		}
		return
	}

	// Normalized distance beyond which a cell counts as rim.
	rim := 1 - 1/math.Min(rx, ry)

	for dy := -int(math.Ceil(ry)); dy <= int(math.Ceil(ry)); dy++ {
		for dx := -int(math.Ceil(rx)); dx <= int(math.Ceil(rx)); dx++ {
			nx, ny := float64(dx)/rx, float64(dy)/ry
			d := math.Hypot(nx, ny)
			if d > 1 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !vp.contains(x, y) {
				continue
			}
			ch := RockFillChar
			if d >= rim {
				ch = RockRimChar
			}
			dst.SetColored(x, y, ch, color)
		}
	}
}

// drawHUD draws score, wave and field size on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')

	scoreText := fmt.Sprintf(" Score: %d ", g.sim.Score())
	dst.DrawTextColored(2, 0, scoreText, core.ColorBrightWhite)

	right := fmt.Sprintf(" Asteroids: %d ", g.sim.World().Asteroids.Len())
	if g.mode == ModeEndless {
		right = fmt.Sprintf(" Wave: %d ", g.sim.Wave()) + right
	}
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		speed := g.difficulty.AsteroidSpeed(g.cfg.Asteroids.Speed, g.progress())
		right = fmt.Sprintf(" Spd: %.1f ", speed) + right
	}
	dst.DrawText(dst.Width()-len(right)-2, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
