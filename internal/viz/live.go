package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/isinglab/internal/ising"
)

const historyCapacity = 600

var (
	latticeStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Live is the interactive view over a running simulation. Each frame
// advances the lattice by one sweep so the animation speed stays
// independent of lattice size.
type Live struct {
	model      *ising.Model
	sweeps     int
	accepted   int
	running    bool
	recording  bool
	showHelp   bool
	energyHist []float64
	magHist    []float64
	frames     []*image.Paletted
}

// NewLive wraps a model for interactive viewing.
func NewLive(m *ising.Model) Live {
	return Live{
		model:      m,
		running:    true,
		energyHist: make([]float64, 0, historyCapacity),
		magHist:    make([]float64, 0, historyCapacity),
	}
}

func (l Live) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.model.Reset()
			l.sweeps = 0
			l.accepted = 0
			l.energyHist = l.energyHist[:0]
			l.magHist = l.magHist[:0]
		case "up", "k":
			l.adjustTemperature(1.05)
		case "down", "j":
			l.adjustTemperature(1 / 1.05)
		case "left", "h":
			l.adjustField(-0.05)
		case "right":
			l.adjustField(0.05)
		case "g":
			if l.recording {
				l.saveGIF()
				l.recording = false
				l.frames = nil
			} else {
				l.recording = true
				l.frames = make([]*image.Paletted, 0)
			}
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			l.showHelp = !l.showHelp
		}
	case TickMsg:
		if l.running {
			l.accepted += l.model.Sweep()
			l.sweeps++
			l.record()
		}
		if l.recording {
			l.captureFrame()
		}
		return l, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return l, nil
}

func (l *Live) adjustTemperature(factor float64) {
	p := l.model.Params()
	p.Temperature *= factor
	if p.Temperature < 0.01 {
		p.Temperature = 0.01
	}
	l.model.Reconfigure(p)
}

func (l *Live) adjustField(delta float64) {
	p := l.model.Params()
	p.H += delta
	l.model.Reconfigure(p)
}

func (l *Live) record() {
	l.energyHist = append(l.energyHist, l.model.Energy())
	if len(l.energyHist) > historyCapacity {
		l.energyHist = l.energyHist[1:]
	}
	l.magHist = append(l.magHist, l.model.Magnetization())
	if len(l.magHist) > historyCapacity {
		l.magHist = l.magHist[1:]
	}
}

// View renders the TUI interface.
func (l Live) View() string {
	theme := CurrentTheme
	upStyle := lipgloss.NewStyle().Foreground(theme.SpinUp)
	downStyle := lipgloss.NewStyle().Foreground(theme.SpinDown)

	size := l.model.Size()
	var lattice strings.Builder
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if l.model.At(i, j) > 0 {
				lattice.WriteString(upStyle.Render("██"))
			} else {
				lattice.WriteString(downStyle.Render("██"))
			}
		}
		lattice.WriteByte('\n')
	}
	latticeView := latticeStyle.Render(lattice.String())

	p := l.model.Params()
	var s strings.Builder
	s.WriteString(headerStyle.Render("ISING LATTICE") + "\n")

	status := "RUNNING"
	if !l.running {
		status = "PAUSED"
	}
	if l.recording {
		status += " " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	if len(l.magHist) > 1 {
		chart := asciigraph.Plot(l.magHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Magnetization"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	if len(l.energyHist) > 1 {
		chart := asciigraph.Plot(l.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	tc, _ := ising.CurieTemperature(p.J)
	phase := "paramagnetic"
	if p.Temperature < tc {
		phase = "ferromagnetic"
	}

	s.WriteString(labelStyle.Render("Sweeps") + valueStyle.Render(fmt.Sprintf("%d", l.sweeps)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.3f (T_c %.3f)", p.Temperature, tc)) + "\n")
	s.WriteString(labelStyle.Render("Field") + valueStyle.Render(fmt.Sprintf("%.2f", p.H)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", l.model.Energy())) + "\n")
	s.WriteString(labelStyle.Render("|m|") + valueStyle.Render(fmt.Sprintf("%.3f", math.Abs(l.model.Magnetization()))) + "\n")
	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(phase) + "\n")

	if l.sweeps > 0 {
		rate := float64(l.accepted) / float64(l.sweeps*size*size)
		s.WriteString(labelStyle.Render("Accept rate") + valueStyle.Render(fmt.Sprintf("%.1f%%", rate*100)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help\n↑↓:Temp  ←→:Field"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, latticeView, statsView)

	if l.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Re-randomize lattice     ║
║  Q        - Quit                     ║
║  Up/K     - Raise temperature (+5%)  ║
║  Down/J   - Lower temperature (-5%)  ║
║  Left/H   - Decrease field (-0.05)   ║
║  Right    - Increase field (+0.05)   ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (l *Live) captureFrame() {
	theme := CurrentTheme
	size := l.model.Size()
	cell := 8
	dim := size * cell

	img := image.NewPaletted(image.Rect(0, 0, dim, dim),
		color.Palette{theme.BgRGBA, theme.UpRGBA, theme.DownRGBA})

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			idx := uint8(2)
			if l.model.At(i, j) > 0 {
				idx = 1
			}
			for py := 0; py < cell; py++ {
				for px := 0; px < cell; px++ {
					img.SetColorIndex(j*cell+px, i*cell+py, idx)
				}
			}
		}
	}
	l.frames = append(l.frames, img)
}

func (l *Live) saveGIF() {
	if len(l.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range l.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create("lattice.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
