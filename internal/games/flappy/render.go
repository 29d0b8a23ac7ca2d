package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-gym/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// viewport maps world pixels onto screen cells.
type viewport struct {
	sx, sy float64 // Pixels per cell
	rows   int     // Rows above the ground line
}

func newViewport(r Rules, dst *core.Screen) viewport {
	rows := core.Max(dst.Height()-1, 1)
	return viewport{
		sx:   r.Width / float64(core.Max(dst.Width(), 1)),
		sy:   r.GroundY / float64(rows),
		rows: rows,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x / v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y / v.sy)) }

// Render draws an ASCII view of the current state scaled to dst.
func (e *Env) Render(dst *core.Screen) {
	dst.Clear()
	if e.phase == PhaseUninitialized {
		dst.DrawTextCentered(dst.Height()/2, "press space to start")
		return
	}

	v := newViewport(e.rules, dst)
	dst.DrawHLine(0, v.rows, dst.Width(), GroundChar, core.ColorBrightGreen)

	for _, p := range e.state.Field.Pipes {
		e.drawPipe(dst, v, p)
	}
	e.drawPlayer(dst, v)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", e.state.Score))

	if e.phase == PhaseTerminated {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", e.state.Score))
	}
}

// drawPipe renders a single pipe pair.
func (e *Env) drawPipe(dst *core.Screen, v viewport, p Pipe) {
	x0 := v.col(p.X)
	x1 := core.Max(v.col(p.X+e.rules.Pipes.Width), x0+1)
	top := v.row(p.GapTop)
	bottom := v.row(p.GapBottom)

	for x := x0; x < x1; x++ {
		for y := 0; y < top; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if top > 0 {
			dst.SetColored(x, top-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := bottom; y < v.rows; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if bottom < v.rows {
			dst.SetColored(x, bottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

// drawPlayer renders the player's hitbox with its beak on the right.
func (e *Env) drawPlayer(dst *core.Screen, v viewport) {
	p := e.rules.Player
	y := e.state.Player.Y
	x0, x1 := v.col(p.X), core.Max(v.col(p.X+p.W), v.col(p.X)+1)
	y0, y1 := v.row(y), core.Max(v.row(y+p.H), v.row(y)+1)

	color := core.ColorYellow
	if e.phase == PhaseTerminated {
		color = core.ColorRed
	}
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			ch := PlayerBody
			if cx == x1-1 && cy == y0 {
				ch = PlayerChar
			}
			dst.SetColored(cx, cy, ch, color)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
