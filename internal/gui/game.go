// Package gui renders a simulation in a desktop window using ebiten.
package gui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/viz"
)

// Game adapts a lattice simulation to the ebiten.Game interface. One
// sweep runs per frame tick.
type Game struct {
	model  *ising.Model
	img    *ebiten.Image
	buf    []byte
	theme  viz.Theme
	scale  int
	sweeps int
	paused bool
}

// New constructs a Game for the provided model.
func New(m *ising.Model, scale int, theme viz.Theme) *Game {
	n := m.Size()
	return &Game{
		model: m,
		img:   ebiten.NewImage(n, n),
		buf:   make([]byte, 4*n*n),
		theme: theme,
		scale: scale,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.model.Reset()
		g.sweeps = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.adjustTemperature(1.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.adjustTemperature(1 / 1.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.adjustField(-0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.adjustField(0.05)
	}
	if g.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.model.Sweep()
		g.sweeps++
	}

	if !g.paused {
		g.model.Sweep()
		g.sweeps++
	}
	return nil
}

func (g *Game) adjustTemperature(factor float64) {
	p := g.model.Params()
	p.Temperature *= factor
	if p.Temperature < 0.01 {
		p.Temperature = 0.01
	}
	g.model.Reconfigure(p)
}

func (g *Game) adjustField(delta float64) {
	p := g.model.Params()
	p.H += delta
	g.model.Reconfigure(p)
}

// Draw renders the current lattice.
func (g *Game) Draw(screen *ebiten.Image) {
	fillSpinRGBA(g.buf, g.model.Spins(), g.theme.UpRGBA, g.theme.DownRGBA)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	p := g.model.Params()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"sweep %d  T=%.3f  h=%.2f  E=%.1f  m=%.3f",
		g.sweeps, p.Temperature, p.H, g.model.Energy(), g.model.Magnetization()))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	n := g.model.Size()
	return n * g.scale, n * g.scale
}
