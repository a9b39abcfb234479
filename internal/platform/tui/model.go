package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-pilot/internal/core"
	"github.com/vovakirdan/asteroids-pilot/internal/pilot"
	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/runner"
	"github.com/vovakirdan/asteroids-pilot/internal/storage"
	"github.com/vovakirdan/asteroids-pilot/internal/vision"
)

const (
	hudWidth    = 30
	minTickRate = 1
	maxTickRate = 480
)

// Model is the Bubble Tea model for watching the pilot play one environment.
type Model struct {
	env     registry.Env
	pilot   *pilot.Pilot
	session *runner.Session
	store   *storage.Store
	logger  *log.Logger
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    WatchKeyMap
	help    help.Model

	paused   bool
	overlay  bool
	saved    bool
	quitting bool
	err      error
}

// NewModel creates a watch model. store may be nil.
func NewModel(env registry.Env, p *pilot.Pilot, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		env:     env,
		pilot:   p,
		store:   store,
		logger:  logger,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    DefaultWatchKeyMap(),
		help:    help.New(),
		overlay: true,
	}
	m.restart()
	return m
}

// restart begins a new episode with the current seed.
func (m *Model) restart() {
	m.saved = false
	m.session, m.err = runner.Start(m.env, m.pilot, runner.Options{
		Seed:   m.config.Seed,
		Logger: m.logger,
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}

	case key.Matches(msg, m.keys.Faster):
		m.config.TickRate = min(m.config.TickRate*2, maxTickRate)

	case key.Matches(msg, m.keys.Slower):
		m.config.TickRate = max(m.config.TickRate/2, minTickRate)

	case key.Matches(msg, m.keys.Restart):
		m.config.Seed++
		m.restart()

	case key.Matches(msg, m.keys.Overlay):
		m.overlay = !m.overlay

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step advances the episode by one tick and saves it once it ends.
func (m *Model) step() {
	if m.session == nil || m.err != nil {
		return
	}
	if !m.session.Done() {
		if err := m.session.Step(); err != nil {
			m.err = err
			m.logger.Error("step failed", "env", m.env.ID(), "error", err)
			return
		}
	}
	if m.session.Done() && !m.saved {
		m.saved = true
		r := m.session.Result()
		m.logger.Info("episode finished", "env", r.EnvID, "score", r.Score, "ticks", r.Ticks)
		if m.store != nil {
			if _, err := m.store.SaveEpisode(r.Episode()); err != nil {
				m.logger.Warn("could not save episode", "error", err)
			}
		}
	}
}

// Session returns the episode being watched.
func (m Model) Session() *runner.Session {
	return m.session
}

// Paused reports whether stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// TickRate returns the current steps per second.
func (m Model) TickRate() int {
	return m.config.TickRate
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n\npress q to quit", m.err)
	}

	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	rows := max(m.config.ScreenH-lipgloss.Height(helpView)-1, 4)
	cols := max(m.config.ScreenW-hudWidth-2, 8)

	obs := m.session.Observation()
	m.drawFrame(obs.Frame, cols, rows)

	field := RenderScreen(m.screen)
	body := lipgloss.JoinHorizontal(lipgloss.Top, field, "  ", m.renderHUD())
	return body + "\n" + helpView
}

// drawFrame paints the pilot's last scan and its overlay into the screen
// buffer, sized to fit cols×rows cells. Nothing is painted before the first
// tick.
func (m Model) drawFrame(f *vision.Frame, cols, rows int) {
	r := core.FitRaster(f.Width, f.Height, cols, rows)
	w, h := r.Size(f.Width, f.Height)
	m.screen.Resize(w, h)
	m.screen.Clear()

	seg := m.pilot.Segmenter()
	r.Draw(m.screen, f.Width, f.Height, func(x, y int) core.Color {
		return core.ColorOf(seg.Category(x, y))
	})

	if !m.overlay {
		return
	}

	s := m.pilot.State()
	plotCircle(r, m.screen, s.Location, s.Radius, f.Width, f.Height)
	if s.Threat.Seen {
		tx, ty := int(math.Round(s.Threat.Point.X)), int(math.Round(s.Threat.Point.Y))
		r.Plot(m.screen, tx, ty, core.ColorThreat)
	}
}

// plotCircle marks the personal-space radius around the ship.
func plotCircle(r core.Raster, s *core.Screen, c vision.PointF, radius float64, w, h int) {
	steps := int(2 * math.Pi * radius)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(c.X + radius*math.Cos(a)))
		y := int(math.Round(c.Y + radius*math.Sin(a)))
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		if cell := s.GetCell(r.OX+x/r.SX, r.OY+y/(2*r.SY)); cell.Fg > core.ColorRadius || cell.Bg > core.ColorRadius {
			continue
		}
		r.Plot(s, x, y, core.ColorRadius)
	}
}

func (m Model) renderHUD() string {
	r := m.session.Result()
	s := m.pilot.State()
	obs := m.session.Observation()

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	value := lipgloss.NewStyle().Bold(true)
	modeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	if s.Mode == pilot.ModeEvade {
		modeStyle = modeStyle.Foreground(lipgloss.Color("9"))
	}

	threat := "none"
	if s.Threat.Seen {
		threat = fmt.Sprintf("%.1f px", s.Threat.Distance)
	}

	lines := [][2]string{
		{"score", fmt.Sprintf("%d", r.Score)},
		{"lives", fmt.Sprintf("%d", obs.Lives)},
		{"tick", fmt.Sprintf("%d", r.Ticks)},
		{"mode", modeStyle.Render(s.Mode.String())},
		{"heading", fmt.Sprintf("%.0f°", s.Heading())},
		{"counter", fmt.Sprintf("%+.1f", s.Counter)},
		{"threat", threat},
		{"action", m.session.LastAction().String()},
		{"fires", fmt.Sprintf("%d", r.Count(pilot.ActionFire))},
		{"speed", fmt.Sprintf("%d/s", m.config.TickRate)},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(m.env.Title()))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(label.Render(l[0]))
		b.WriteString(value.Render(l[1]))
		b.WriteString("\n")
	}

	switch {
	case m.session.Done():
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("EPISODE OVER"))
		b.WriteString("\npress r to restart")
	case m.paused:
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render("PAUSED"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(hudWidth - 4).
		Render(b.String())
}

// Run starts the Bubble Tea program with the given model.
func Run(env registry.Env, p *pilot.Pilot, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(env, p, store, cfg, logger)
	if model.err != nil {
		return model.err
	}

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}
