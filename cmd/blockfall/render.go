package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
)

const (
	cellSize   = 24
	boardLeft  = 16
	boardTop   = 16
	panelLeft  = boardLeft + tetris.Width*cellSize + 24
	panelWidth = 160

	screenWidth  = panelLeft + panelWidth
	screenHeight = boardTop*2 + tetris.Height*cellSize
)

var (
	backgroundColor = color.RGBA{R: 0x14, G: 0x14, B: 0x1c, A: 0xff}
	wellColor       = color.RGBA{R: 0x22, G: 0x22, B: 0x2e, A: 0xff}
	gridColor       = color.RGBA{R: 0x2c, G: 0x2c, B: 0x3a, A: 0xff}
	ghostColor      = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0x80}
	shadeColor      = color.RGBA{A: 0xa0}
)

// Renderer draws the session onto the logical screen, scaled by an integer
// factor.
type Renderer struct {
	scale float32
}

func NewRenderer(scale int) *Renderer {
	return &Renderer{scale: float32(scale)}
}

// Size is the window size in device-independent pixels.
func (r *Renderer) Size() (int, int) {
	return int(screenWidth * r.scale), int(screenHeight * r.scale)
}

func (r *Renderer) Draw(screen *ebiten.Image, session *Session, banner *Banner, scores *Scores) {
	screen.Fill(backgroundColor)
	g := session.Game

	r.rect(screen, boardLeft, boardTop, tetris.Width*cellSize, tetris.Height*cellSize, wellColor)
	for x := 1; x < tetris.Width; x++ {
		r.rect(screen, float32(boardLeft+x*cellSize), boardTop, 1, tetris.Height*cellSize, gridColor)
	}

	board := g.Board()
	for y := 0; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			if c := board.At(x, y); c.Filled {
				r.cell(screen, boardLeft, boardTop, x, y, c.Kind.Color())
			}
		}
	}

	if active := g.Active(); active.Visible {
		for _, t := range g.Ghost().Tiles() {
			if t.Y >= 0 {
				r.outline(screen, boardLeft, boardTop, t.X, t.Y, ghostColor)
			}
		}
		for _, t := range active.Tiles() {
			// Tiles above the board are not drawn.
			if t.Y >= 0 {
				r.cell(screen, boardLeft, boardTop, t.X, t.Y, active.Kind.Color())
			}
		}
	}

	r.drawPanel(screen, g, scores)

	switch {
	case g.Over():
		r.rect(screen, boardLeft, boardTop, tetris.Width*cellSize, tetris.Height*cellSize, shadeColor)
		r.text(screen, "GAME OVER", boardLeft+tetris.Width*cellSize/2-27, boardTop+tetris.Height*cellSize/2-8)
		r.text(screen, "press R", boardLeft+tetris.Width*cellSize/2-21, boardTop+tetris.Height*cellSize/2+8)
	case banner.Text != "":
		r.text(screen, banner.Text, boardLeft+tetris.Width*cellSize/2-3*len(banner.Text), boardTop+cellSize*4)
	}
}

func (r *Renderer) drawPanel(screen *ebiten.Image, g *tetris.Game, scores *Scores) {
	r.text(screen, "NEXT", panelLeft, boardTop)
	preview := g.Preview()
	for _, t := range preview.Tiles() {
		r.cell(screen, panelLeft, boardTop+20, t.X, t.Y, preview.Kind.Color())
	}

	state := g.State()
	y := boardTop + 20 + 5*cellSize
	for _, line := range []string{
		fmt.Sprintf("SCORE %d", state.Score),
		fmt.Sprintf("LINES %d", state.Lines),
		fmt.Sprintf("LEVEL %d", state.Level),
	} {
		r.text(screen, line, panelLeft, y)
		y += 20
	}

	y += 20
	if best, ok := scores.Store.Best(); ok {
		r.text(screen, fmt.Sprintf("BEST %d", best.Score), panelLeft, y)
		y += 20
	}
	if g.Over() && scores.LastRank > 0 {
		r.text(screen, fmt.Sprintf("RANK #%d", scores.LastRank), panelLeft, y)
	}
}

func (r *Renderer) cell(screen *ebiten.Image, left, top float32, x, y int, clr color.Color) {
	px := left + float32(x*cellSize)
	py := top + float32(y*cellSize)
	r.rect(screen, px+1, py+1, cellSize-2, cellSize-2, clr)
}

func (r *Renderer) outline(screen *ebiten.Image, left, top float32, x, y int, clr color.Color) {
	px := (left + float32(x*cellSize) + 2) * r.scale
	py := (top + float32(y*cellSize) + 2) * r.scale
	size := (cellSize - 4) * r.scale
	vector.StrokeRect(screen, px, py, size, size, r.scale, clr, false)
}

func (r *Renderer) rect(screen *ebiten.Image, x, y, w, h float32, clr color.Color) {
	vector.DrawFilledRect(screen, x*r.scale, y*r.scale, w*r.scale, h*r.scale, clr, false)
}

func (r *Renderer) text(screen *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(screen, s, int(float32(x)*r.scale), int(float32(y)*r.scale))
}
