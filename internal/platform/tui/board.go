package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroids-pilot/internal/registry"
	"github.com/vovakirdan/asteroids-pilot/internal/storage"
)

const maxEpisodes = 100

// BoardKeyMap defines the key bindings for the episode board.
type BoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextEnv key.Binding
	PrevEnv key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextEnv, k.PrevEnv, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextEnv, k.PrevEnv, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextEnv: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next env"),
		),
		PrevEnv: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev env"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel lists recorded episodes per environment.
type BoardModel struct {
	envs      []registry.EnvInfo
	envCursor int
	store     *storage.Store
	episodes  []storage.Episode
	stats     *storage.EnvStats
	table     table.Model
	help      help.Model
	keys      BoardKeyMap
	width     int
	height    int
	quitting  bool
	err       error
}

// NewBoardModel creates an episode board starting at envID, or at the first
// registered environment when envID is empty or unknown.
func NewBoardModel(store *storage.Store, envID string, width, height int) BoardModel {
	m := BoardModel{
		envs:   registry.List(),
		store:  store,
		keys:   DefaultBoardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, e := range m.envs {
		if e.ID == envID {
			m.envCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.envs) > 0 {
		m.load()
	}
	return m
}

func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Lost", Width: 5},
		{Title: "Fires", Width: 7},
		{Title: "Evade", Width: 6},
		{Title: "Seed", Width: 12},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches episodes and stats for the selected environment.
func (m *BoardModel) load() {
	m.episodes, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		envID := m.envs[m.envCursor].ID
		m.episodes, m.err = m.store.TopEpisodes(envID, maxEpisodes)
		if m.err == nil {
			m.stats, m.err = m.store.EnvStats(envID)
		}
	}
	m.table.SetRows(episodeRows(m.episodes))
	m.table.GotoTop()
}

func episodeRows(episodes []storage.Episode) []table.Row {
	rows := make([]table.Row, len(episodes))
	for i, e := range episodes {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%d", e.LivesLost),
			fmt.Sprintf("%d", e.Fires),
			fmt.Sprintf("%.0f%%", 100*e.EvadeRatio()),
			fmt.Sprintf("%d", e.Seed),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the board.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextEnv):
			if len(m.envs) > 0 {
				m.envCursor = (m.envCursor + 1) % len(m.envs)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevEnv):
			if len(m.envs) > 0 {
				m.envCursor = (m.envCursor - 1 + len(m.envs)) % len(m.envs)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(episodeRows(m.episodes))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// EnvID returns the selected environment, or "" when none is registered.
func (m BoardModel) EnvID() string {
	if len(m.envs) == 0 {
		return ""
	}
	return m.envs[m.envCursor].ID
}

// Episodes returns the rows currently shown.
func (m BoardModel) Episodes() []storage.Episode {
	return m.episodes
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "EPISODES"
	if len(m.envs) > 0 {
		title = fmt.Sprintf("EPISODES - %s", m.envs[m.envCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Episodes > 0 {
		summary := fmt.Sprintf("%d episodes   best %d   avg %.0f   avg ticks %.0f",
			m.stats.Episodes, m.stats.HighScore, m.stats.AvgScore, m.stats.AvgTicks)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(centerText(summary, m.width)))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load episodes:\n%v", m.err))
	case len(m.episodes) == 0:
		return emptyStyle.Render("No episodes recorded yet.\nRun the pilot to fill the board!")
	}
	return m.table.View()
}

// RunBoard runs the episode board.
func RunBoard(store *storage.Store, envID string, width, height int) error {
	p := tea.NewProgram(
		NewBoardModel(store, envID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
