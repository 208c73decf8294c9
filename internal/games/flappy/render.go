package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	FlyerChar     = '●'
	BeakChar      = '>'
	BeakUpChar    = '/'
	BeakDownChar  = '\\'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GrassChar     = '▀'
	GroundChar    = '▒'
	GroundAltChar = '░'
	HillChar      = '░'
)

// Decoration tuning, in world pixels and px/s.
const (
	tiltThreshold = 150.0
	menuBobHeight = 12.0
	menuBobSpeed  = 3.0
	groundTile    = 24.0
	hillCount     = 6
	hillSpacing   = 90.0
	hillHalfWidth = 60.0
	hillHeight    = 140.0
)

// projection maps world pixels onto screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(dst *core.Screen, snap Snapshot) projection {
	return projection{
		sx: float64(dst.Width()) / snap.World.Width,
		sy: float64(dst.Height()) / snap.World.Height,
	}
}

func (p projection) col(wx float64) int { return int(math.Floor(wx * p.sx)) }
func (p projection) row(wy float64) int { return int(math.Floor(wy * p.sy)) }

// centerX returns the world x at the middle of a screen column.
func (p projection) centerX(col int) float64 { return (float64(col) + 0.5) / p.sx }

// centerY returns the world y at the middle of a screen row.
func (p projection) centerY(row int) float64 { return (float64(row) + 0.5) / p.sy }

// Render draws a snapshot onto the screen, scaling the world to fit.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || snap.World.Width <= 0 || snap.World.Height <= 0 {
		return
	}
	proj := newProjection(dst, snap)

	drawHills(dst, proj, snap)
	for _, p := range snap.Pipes {
		drawPipe(dst, proj, snap, p)
	}
	drawGround(dst, proj, snap)
	drawFlyer(dst, proj, snap)
	drawHUD(dst, snap)
}

// drawHills renders the static background hills.
func drawHills(dst *core.Screen, proj projection, snap Snapshot) {
	groundTop := snap.Ground.Top
	for y := 0; y < proj.row(groundTop); y++ {
		wy := proj.centerY(y)
		for x := 0; x < dst.Width(); x++ {
			wx := proj.centerX(x)
			for i := 0; i < hillCount; i++ {
				peak := float64(i)*hillSpacing - 40 + hillHalfWidth
				h := hillHeight * (1 - math.Abs(wx-peak)/hillHalfWidth)
				if h > 0 && wy >= groundTop-h {
					dst.SetColored(x, y, HillChar, core.ColorHill)
					break
				}
			}
		}
	}
}

// drawPipe renders a single pipe pair.
func drawPipe(dst *core.Screen, proj projection, snap Snapshot, p Pipe) {
	x0 := proj.col(p.X)
	x1 := max(proj.col(p.X+snap.PipeWidth), x0+1)
	groundRow := proj.row(snap.Ground.Top)
	topEnd := proj.row(p.GapTop())
	bottomStart := proj.row(p.GapBottom())

	// Top section with its cap on the last row
	dst.FillRect(x0, 0, x1-x0, topEnd, PipeChar, core.ColorPipe)
	if topEnd > 0 {
		dst.FillRect(x0, topEnd-1, x1-x0, 1, PipeCapTop, core.ColorPipeCap)
	}

	// Bottom section with its cap on the first row
	dst.FillRect(x0, bottomStart, x1-x0, groundRow-bottomStart, PipeChar, core.ColorPipe)
	if bottomStart < groundRow {
		dst.FillRect(x0, bottomStart, x1-x0, 1, PipeCapBottom, core.ColorPipeCap)
	}
}

// drawGround renders the grass edge and a texture that moves with the strips.
func drawGround(dst *core.Screen, proj projection, snap Snapshot) {
	groundRow := proj.row(snap.Ground.Top)
	dst.DrawHLine(0, groundRow, dst.Width(), GrassChar, core.ColorGrass)

	lead := snap.Ground.Lead()
	for x := 0; x < dst.Width(); x++ {
		tile := int(math.Floor((proj.centerX(x) - lead) / groundTile))
		ch := GroundChar
		if tile%2 == 1 {
			ch = GroundAltChar
		}
		for y := groundRow + 1; y < dst.Height(); y++ {
			dst.SetColored(x, y, ch, core.ColorGround)
		}
	}
}

// drawFlyer renders the flyer body and a beak that tilts with velocity.
func drawFlyer(dst *core.Screen, proj projection, snap Snapshot) {
	f := snap.Flyer
	y := f.Y
	if snap.Mode == ModeMenu {
		y += math.Sin(snap.Idle*menuBobSpeed) * menuBobHeight
	}

	cx, cy := proj.col(f.X), proj.row(y)
	b := core.SquareAround(f.X, y, f.Radius)
	for row := proj.row(b.Y); row <= proj.row(b.Bottom()); row++ {
		for col := proj.col(b.X); col <= proj.col(b.Right()); col++ {
			dx := (proj.centerX(col) - f.X) / f.Radius
			dy := (proj.centerY(row) - y) / f.Radius
			if dx*dx+dy*dy <= 1 {
				dst.SetColored(col, row, FlyerChar, core.ColorFlyer)
			}
		}
	}
	dst.SetColored(cx, cy, FlyerChar, core.ColorFlyer)

	beak := BeakChar
	switch {
	case f.VY < -tiltThreshold:
		beak = BeakUpChar
	case f.VY > tiltThreshold:
		beak = BeakDownChar
	}
	dst.SetColored(max(proj.col(f.X+f.Radius), cx+1), cy, beak, core.ColorBeak)
}

// drawHUD renders the per-mode text overlay.
func drawHUD(dst *core.Screen, snap Snapshot) {
	h := dst.Height()
	top := int(float64(h) * 0.22)

	switch snap.Mode {
	case ModeMenu:
		dst.DrawTextCentered(top, " F L A P P Y ", core.ColorTitle)
		dst.DrawTextCentered(top+2, " Press Enter to start ", core.ColorHUD)
		dst.DrawTextCentered(top+3, " Space/Up: flap  |  Q: quit ", core.ColorDim)
		if snap.Best > 0 {
			dst.DrawTextCentered(top+5, fmt.Sprintf(" Best: %d ", snap.Best), core.ColorHUD)
		}

	case ModePlaying:
		dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorHUD)

	case ModeGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Best: %d", snap.Score, snap.Best),
			"Enter = restart  |  Esc = menu")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len(title)
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorDim)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorAlert)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len(l))/2, boxY+3+i, l, core.ColorHUD)
	}
}
