package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/marcosvz/gravsim/internal/nbody"
	"github.com/marcosvz/gravsim/internal/scenario"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model owns one live simulation: the system being stepped, the rolling
// trails, and the energy history sparkline.
type Model struct {
	sc       scenario.Scenario
	sys      *nbody.System
	dt       float64
	substeps int
	fps      int
	t        float64

	canvas        *Canvas
	trails        [][]nbody.Vec2
	initialEnergy float64
	energyHistory []float64

	running  bool
	showHelp bool
}

func NewModel(sc scenario.Scenario, dt float64, substeps, fps int) (Model, error) {
	sys, err := sc.Build()
	if err != nil {
		return Model{}, err
	}

	return Model{
		sc:            sc,
		sys:           sys,
		dt:            dt,
		substeps:      substeps,
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trails:        make([][]nbody.Vec2, sys.Len()),
		initialEnergy: sys.Energy(),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}, nil
}

// Run builds the model and blocks inside the bubbletea event loop.
func Run(sc scenario.Scenario, dt float64, substeps, fps int) error {
	m, err := NewModel(sc, dt, substeps, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.substeps++
		case "down", "j":
			if m.substeps > 1 {
				m.substeps--
			}
		case "left", "h":
			m.dt *= 0.5
		case "right", "l":
			m.dt *= 2.0
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the system by one frame of sub-steps and records trails
// and energy.
func (m *Model) step() {
	for i := 0; i < m.substeps; i++ {
		m.sys.Step(m.dt)
	}
	m.t += m.dt * float64(m.substeps)

	for i := 0; i < m.sys.Len(); i++ {
		m.trails[i] = append(m.trails[i], m.sys.Position(i))
		if len(m.trails[i]) > m.sc.TrailLen {
			m.trails[i] = m.trails[i][1:]
		}
	}

	m.energyHistory = append(m.energyHistory, m.sys.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset rebuilds the system from the scenario's initial conditions.
func (m *Model) reset() {
	sys, err := m.sc.Build()
	if err != nil {
		return
	}
	m.sys = sys
	m.t = 0
	m.trails = make([][]nbody.Vec2, sys.Len())
	m.energyHistory = m.energyHistory[:0]
	m.initialEnergy = sys.Energy()
}

func (m *Model) draw() {
	m.canvas.Clear()
	window := m.sc.Window

	for i := 0; i < m.sys.Len(); i++ {
		trail := m.trails[i]
		for j := 1; j < len(trail); j++ {
			x0, y0 := m.canvas.Project(trail[j-1].X, trail[j-1].Y, window)
			x1, y1 := m.canvas.Project(trail[j].X, trail[j].Y, window)
			m.canvas.DrawLine(x0, y0, x1, y1)
		}

		pos := m.sys.Position(i)
		x, y := m.canvas.Project(pos.X, pos.Y, window)
		m.canvas.DrawMarker(x, y)
	}
}

func (m Model) View() string {
	m.draw()

	var stats strings.Builder
	energy := m.sys.Energy()
	drift := 0.0
	if m.initialEnergy != 0 {
		drift = math.Abs(energy-m.initialEnergy) / math.Abs(m.initialEnergy)
	}

	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.2f", m.t))
	row("dt", fmt.Sprintf("%.4g", m.dt))
	row("substeps", fmt.Sprintf("%d", m.substeps))
	row("bodies", fmt.Sprintf("%d", m.sys.Len()))
	row("energy", fmt.Sprintf("%.6f", energy))
	row("drift", fmt.Sprintf("%.2e", drift))
	row("|momentum|", fmt.Sprintf("%.2e", m.sys.Momentum().Norm()))

	if len(m.energyHistory) >= 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(5),
			asciigraph.Width(34),
			asciigraph.Caption("energy"))
		stats.WriteString(graphStyle.Render(graph))
	}

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sc.Name)) + "\n")
	s.WriteString(status + "\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String())))

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause · r reset · ←/→ dt · ↑/↓ substeps · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help"))
	}
	s.WriteString("\n")

	return s.String()
}
