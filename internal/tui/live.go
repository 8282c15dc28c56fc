package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/graph"
	"github.com/causelab/causim/internal/sim"
)

const (
	plotWidth  = 64
	plotHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	loopStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

type TickMsg time.Time

// Model steps the causal graph once per tick and plots the trajectory
// of the focused variable.
type Model struct {
	g       *graph.Graph
	initial *graph.Graph
	loops   []cycles.Record
	opts    sim.Options

	step     int
	history  map[string][]float64
	ids      []string
	selected int
	running  bool
	interval time.Duration
}

func NewModel(g *graph.Graph, loops []cycles.Record, opts sim.Options, fps int) Model {
	if fps <= 0 {
		fps = 4
	}
	ids := make([]string, 0, len(g.Variables))
	history := make(map[string][]float64, len(g.Variables))
	for _, v := range g.Variables {
		ids = append(ids, v.ID)
		history[v.ID] = []float64{v.Value}
	}
	return Model{
		g:        g,
		initial:  g.Clone(),
		loops:    loops,
		opts:     opts,
		history:  history,
		ids:      ids,
		running:  true,
		interval: time.Second / time.Duration(fps),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			m.selected = (m.selected + 1) % len(m.ids)
		case "r":
			m.g = m.initial.Clone()
			m.step = 0
			for _, v := range m.g.Variables {
				m.history[v.ID] = []float64{v.Value}
			}
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.step < m.opts.Steps {
			series := sim.Integrate(m.g, 1, m.opts.Dt, m.opts.Damping)
			m.step++
			for id, v := range series.Final() {
				m.history[id] = append(m.history[id], v)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.step >= m.opts.Steps {
		status = "done"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("causim live  step %d/%d  [%s]", m.step, m.opts.Steps, status)))
	b.WriteString("\n")

	focused := m.ids[m.selected]
	plot := asciigraph.Plot(m.history[focused],
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(focused),
	)
	b.WriteString(graphStyle.Render(plot))
	b.WriteString("\n")

	var panel strings.Builder
	for i, id := range m.ids {
		idx, _ := m.g.Lookup(id)
		line := labelStyle.Render(id) + valueStyle.Render(fmt.Sprintf("%5.2f", m.g.Variables[idx].Value))
		if i == m.selected {
			line = activeStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		panel.WriteString(line)
		panel.WriteString("\n")
	}
	if len(m.loops) > 0 {
		panel.WriteString("\n")
		for _, loop := range m.loops {
			panel.WriteString(loopStyle.Render(fmt.Sprintf("%s %3d  %s", string(loop.Type)[:1], loop.Dominance, loop.Chain)))
			panel.WriteString("\n")
		}
	}
	b.WriteString(panelStyle.Render(panel.String()))

	b.WriteString(helpStyle.Render("space pause · tab focus · r reset · q quit"))
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(g *graph.Graph, loops []cycles.Record, opts sim.Options, fps int) error {
	p := tea.NewProgram(NewModel(g, loops, opts, fps))
	_, err := p.Run()
	return err
}
