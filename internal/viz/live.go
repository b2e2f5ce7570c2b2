package viz

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 44
	maxTerminalFPS  = 60
	historyCapacity = 200
)

type TickMsg time.Time

// Model is the terminal view: a Simulator stepped on every tick with the
// wall-clock time since the previous tick, drawn onto a braille canvas.
type Model struct {
	exp      *experiment.Experiment
	sim      *sim.Simulator
	renderer *CanvasRenderer
	logger   *log.Logger

	interval  time.Duration
	last      time.Time
	running   bool
	showHelp  bool
	theme     Theme
	styles    Styles
	speedHist []float64
	err       error
}

// NewModel builds a fresh simulator from exp. The terminal view never hands
// the simulator a Window; it calls Frame directly.
func NewModel(exp *experiment.Experiment, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s, err := exp.Simulator(nil, nil, sim.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}

	fps := exp.Config().Window.FPS
	if fps <= 0 || fps > maxTerminalFPS {
		fps = maxTerminalFPS
	}

	return Model{
		exp:       exp,
		sim:       s,
		renderer:  NewCanvasRenderer(NewCanvas(width, height), s.World().Bounds()),
		logger:    logger,
		interval:  time.Second / time.Duration(fps),
		last:      time.Now(),
		running:   true,
		theme:     ThemeMinimal,
		styles:    NewStyles(ThemeMinimal),
		speedHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.sim.Close("quit")
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-statsWidth-8, 10)
		rows := max(msg.Height-4, 5)
		m.renderer.Canvas().Resize(cols, rows)
	case TickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last).Seconds()
		m.last = now
		if m.running && m.sim.State() == sim.Running {
			m.step(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step(dt float64) {
	m.sim.Frame(dt, m.renderer)

	w := m.sim.World()
	speed := 0.0
	for _, b := range w.Balls() {
		speed += b.Velocity().Len() * w.Params().MoveSpeed
	}
	if w.Len() > 0 {
		speed /= float64(w.Len())
	}
	m.speedHist = append(m.speedHist, speed)
	if len(m.speedHist) > historyCapacity {
		m.speedHist = m.speedHist[1:]
	}
}

// reset rebuilds the simulator from the same seed, so the run replays.
func (m *Model) reset() {
	s, err := m.exp.Simulator(nil, nil, sim.WithLogger(m.logger))
	if err != nil {
		m.err = err
		return
	}
	m.sim.Close("reset")
	m.sim = s
	m.renderer.SetWorld(s.World().Bounds())
	m.speedHist = m.speedHist[:0]
	m.logger.Debug("simulation reset", "seed", m.exp.Seed())
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	res := m.sim.Result()

	var s strings.Builder
	s.WriteString(st.Header.Render("BOUNCE") + "\n")
	if m.running {
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	}

	if hist := m.exp.EnergyHistory(); len(hist) > 1 {
		if len(hist) > historyCapacity {
			hist = hist[len(hist)-historyCapacity:]
		}
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.Graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", res.SimTime))
	row("Frames", fmt.Sprintf("%d", res.Frames))
	row("Bodies", fmt.Sprintf("%d", m.sim.World().Len()))
	row("Collision", m.sim.World().Params().Collision.String())
	row("Wall hits", fmt.Sprintf("%d", res.WallHits))
	row("Pair hits", fmt.Sprintf("%d", res.PairHits))
	row("Drift", fmt.Sprintf("%.3f", res.Metrics["energy_drift"]))
	s.WriteString(st.Label.Render("Contained") + st.ProgressBar(res.Metrics["containment"], 20) + "\n")
	s.WriteString(st.Label.Render("Speed") + st.Sparkline(m.speedHist, 24) + "\n")
	if m.err != nil {
		s.WriteString("\n" + st.Paused.Render(m.err.Error()) + "\n")
	}

	s.WriteString(st.Help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme  ?:Help"))

	canvasView := st.Canvas.Render(m.renderer.Canvas().Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Restart from the seed    ║
║  T        - Cycle themes             ║
║  Q/Esc    - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the terminal view and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, exp *experiment.Experiment, logger *log.Logger) (*sim.Result, error) {
	m, err := NewModel(exp, logger)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()

	if fm, ok := final.(Model); ok {
		m = fm
	}
	if ctx.Err() != nil {
		m.sim.Close("context canceled")
		return m.sim.Result(), ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("terminal view: %w", err)
	}
	return m.sim.Result(), nil
}
