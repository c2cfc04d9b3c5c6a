package tetris

import (
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
)

// Layout constants, in screen cells.
const (
	cellW      = 2 // each block is two characters wide
	panelW     = 12
	panelGap   = 2
	hudHeight  = 1
	pieceSlotH = 3 // two rows of blocks plus a spacer
)

// frame is what one Render draws: the sim to show and, during a clear
// delay, the rows to flash.
type frame struct {
	sim     core.Sim
	flash   []int
	flashOn bool
	ghost   bool
}

func (g *Game) frame() frame {
	switch st := g.eng.State().(type) {
	case *state.DelayState:
		// Blink three times over the delay.
		on := int(st.Progress()*6)%2 == 0
		return frame{sim: st.Sim(), flash: st.ClearedRows(), flashOn: on}
	case *state.GameOverState:
		return frame{sim: st.Sim()}
	default:
		return frame{sim: st.Sim(), ghost: true}
	}
}

// boardSize returns the framed matrix size in screen cells.
func (g *Game) boardSize() (w, h int) {
	return g.cfg.Board.Cols*cellW + 2, g.cfg.Board.VisibleRows + 2
}

// requiredSize returns the smallest screen the layout fits in.
func (g *Game) requiredSize() (w, h int) {
	bw, bh := g.boardSize()
	return panelW + panelGap + bw + panelGap + panelW, hudHeight + bh
}

// Render draws the matrix, the hold and next panels and the HUD.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	reqW, reqH := g.requiredSize()
	g.tooSmall = dst.Width() < reqW || dst.Height() < reqH
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", reqW, reqH))
		return
	}

	g.renderHUD(dst)

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	layout := platformcore.CenterIn(area, reqW, reqH-hudHeight)
	bw, bh := g.boardSize()
	boardRect := platformcore.NewRect(layout.X+panelW+panelGap, layout.Y, bw, bh)
	holdRect := platformcore.NewRect(layout.X, layout.Y, panelW, 2+pieceSlotH)
	nextRect := platformcore.NewRect(boardRect.Right()+panelGap, layout.Y, panelW, bh)

	f := g.frame()
	g.renderBoard(dst, boardRect, f)
	g.renderHold(dst, holdRect, f.sim)
	g.renderNext(dst, nextRect, f.sim)
	g.renderStats(dst, platformcore.NewRect(layout.X, holdRect.Bottom()+1, panelW, bh-holdRect.H-1))

	switch {
	case g.eng.IsGameOver():
		g.renderOverlay(dst, "GAME OVER", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" %s  Lines: %d  Level: %d  Time: %s",
		g.variant.Title, g.stats.Lines, g.stats.Level(), formatElapsed(g.elapsed))
	dst.DrawText(0, 0, hud)
}

// renderBoard draws the visible rows of the matrix. Row 0 is the bottom.
func (g *Game) renderBoard(dst *platformcore.Screen, r platformcore.Rect, f frame) {
	dst.DrawBox(r, platformcore.ColorGray)
	inner := r.Inset(1)
	visible := g.cfg.Board.VisibleRows

	toScreen := func(pos core.Coord) (x, y int, ok bool) {
		if pos.Row < 0 || pos.Row >= visible || pos.Col < 0 || pos.Col >= g.cfg.Board.Cols {
			return 0, 0, false
		}
		return inner.X + pos.Col*cellW, inner.Y + visible - 1 - pos.Row, true
	}

	for row := range visible {
		for col := range g.cfg.Board.Cols {
			x, y, _ := toScreen(core.RC(row, col))
			dst.DrawTextColored(x, y, " .", platformcore.ColorDim)
		}
	}

	board := f.sim.Board()
	for _, c := range board.Cells() {
		if x, y, ok := toScreen(c.Pos); ok {
			dst.DrawTextColored(x, y, "██", blockColor(c.Block.Color))
		}
	}

	falling := f.sim.Falling()
	if f.ghost && !falling.IsZero() {
		for _, c := range f.sim.GhostPiece().AbsoluteCells() {
			if x, y, ok := toScreen(c.Pos); ok {
				dst.DrawTextColored(x, y, "░░", platformcore.ColorDim)
			}
		}
	}
	if !falling.IsZero() {
		for _, c := range falling.AbsoluteCells() {
			if x, y, ok := toScreen(c.Pos); ok {
				dst.DrawTextColored(x, y, "██", blockColor(c.Block.Color))
			}
		}
	}

	if f.flashOn {
		for _, row := range f.flash {
			for col := range g.cfg.Board.Cols {
				if x, y, ok := toScreen(core.RC(row, col)); ok {
					dst.DrawTextColored(x, y, "▓▓", platformcore.ColorWhite)
				}
			}
		}
	}
}

func (g *Game) renderHold(dst *platformcore.Screen, r platformcore.Rect, sim core.Sim) {
	dst.DrawBox(r, platformcore.ColorGray)
	dst.DrawText(r.X+2, r.Y, " HOLD ")
	if held := sim.Held(); held != nil {
		drawPrototype(dst, r.X+2, r.Y+1, held)
	}
}

func (g *Game) renderNext(dst *platformcore.Screen, r platformcore.Rect, sim core.Sim) {
	dst.DrawBox(r, platformcore.ColorGray)
	dst.DrawText(r.X+2, r.Y, " NEXT ")
	fits := (r.H - 2) / pieceSlotH
	for i, proto := range sim.Preview(min(g.cfg.Rules.Preview, fits)) {
		drawPrototype(dst, r.X+2, r.Y+1+i*pieceSlotH, proto)
	}
}

func (g *Game) renderStats(dst *platformcore.Screen, r platformcore.Rect) {
	lines := []string{
		fmt.Sprintf("Pieces %5d", g.stats.Pieces),
		fmt.Sprintf("Lines  %5d", g.stats.Lines),
		fmt.Sprintf("Tetris %5d", g.stats.Tetrises),
		fmt.Sprintf("Spins  %5d", g.stats.Spins),
		fmt.Sprintf("Holds  %5d", g.stats.Holds),
	}
	if g.stats.AllClears > 0 {
		lines = append(lines, fmt.Sprintf("Clears %5d", g.stats.AllClears))
	}
	for i, l := range lines {
		if i >= r.H {
			break
		}
		dst.DrawText(r.X, r.Y+i, l)
	}
}

// drawPrototype draws the spawn orientation of proto with its top-left
// block at (x, y).
func drawPrototype(dst *platformcore.Screen, x, y int, proto *core.PiecePrototype) {
	o, ok := proto.Orientation(0)
	if !ok {
		return
	}
	cells := o.Cells()
	if len(cells) == 0 {
		return
	}
	top, left := cells[0].Pos.Row, cells[0].Pos.Col
	for _, c := range cells[1:] {
		top = max(top, c.Pos.Row)
		left = min(left, c.Pos.Col)
	}
	for _, c := range cells {
		dst.DrawTextColored(x+(c.Pos.Col-left)*cellW, y+(top-c.Pos.Row), "██", blockColor(c.Block.Color))
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.CenterIn(platformcore.NewRect(0, 0, dst.Width(), dst.Height()), boxW, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-len([]rune(line1)))/2, box.Y+1, line1, platformcore.ColorYellow)
	dst.DrawText(box.X+(boxW-len([]rune(line2)))/2, box.Y+3, line2)
}

// blockColor maps a block color to a terminal color.
func blockColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorCyan:
		return platformcore.ColorCyan
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorRed:
		return platformcore.ColorRed
	default:
		return platformcore.ColorWhite
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
