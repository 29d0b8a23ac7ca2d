package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-gym/internal/registry"
	"github.com/vovakirdan/flappy-gym/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the agent sidebar
	sidebarWidth       = 20  // Width of the agent sidebar
	maxEpisodes        = 100 // Max episodes to load per agent
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextAgent key.Binding
	PrevAgent key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextAgent, k.PrevAgent, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextAgent, k.PrevAgent},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextAgent: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/l", "next agent"),
		),
		PrevAgent: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/h", "prev agent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the episode scoreboard.
type ScoreboardModel struct {
	agents      []string
	cursor      int
	store       *storage.Store
	episodes    []storage.Episode
	stats       *storage.AgentStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// ScoreboardAgents lists the human player, every registered policy, and any
// other agent that has episodes in store, without duplicates.
func ScoreboardAgents(store *storage.Store) []string {
	seen := map[string]bool{HumanAgent: true}
	agents := []string{HumanAgent}
	for _, p := range registry.List() {
		if !seen[p.Name] {
			seen[p.Name] = true
			agents = append(agents, p.Name)
		}
	}

	if store == nil {
		return agents
	}
	all, err := store.GetAllAgentStats()
	if err != nil {
		return agents
	}
	var extra []string
	for name := range all {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(agents, extra...)
}

// NewScoreboardModel creates a scoreboard that opens on the given agent,
// or on the first one when agent is empty or unknown.
func NewScoreboardModel(store *storage.Store, agent string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		agents:      ScoreboardAgents(store),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, a := range m.agents {
		if a == agent {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadEpisodes()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Steps", Width: 7},
		{Title: "Reward", Width: 9},
		{Title: "End", Width: 11},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height)),
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

// tableHeight leaves room for the title, stats and help lines.
func tableHeight(screenH int) int {
	return max(screenH-10, 3)
}

func (m *ScoreboardModel) current() string {
	if len(m.agents) == 0 {
		return ""
	}
	return m.agents[m.cursor]
}

// loadEpisodes loads the best episodes and stats for the selected agent.
func (m *ScoreboardModel) loadEpisodes() {
	m.episodes = nil
	m.stats = nil
	if m.store != nil && len(m.agents) > 0 {
		if eps, err := m.store.TopEpisodes(m.current(), maxEpisodes); err == nil {
			m.episodes = eps
		}
		if st, err := m.store.GetAgentStats(m.current()); err == nil {
			m.stats = st
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded episodes.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.episodes))
	for i, e := range m.episodes {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Steps),
			fmt.Sprintf("%.1f", e.TotalReward),
			e.EndReason,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextAgent):
			if len(m.agents) > 0 {
				m.cursor = (m.cursor + 1) % len(m.agents)
				m.loadEpisodes()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevAgent):
			if len(m.agents) > 0 {
				m.cursor = (m.cursor - 1 + len(m.agents)) % len(m.agents)
				m.loadEpisodes()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)

var boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "EPISODES"
	if a := m.current(); a != "" {
		title = fmt.Sprintf("EPISODES - %s", a)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected agent.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Episodes == 0 {
		return ""
	}
	return fmt.Sprintf("episodes %d  best %d  avg score %.2f  avg steps %.1f  avg reward %.2f",
		m.stats.Episodes, m.stats.BestScore, m.stats.AvgScore, m.stats.AvgSteps, m.stats.AvgReward)
}

// renderWideLayout renders the agent list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Agents\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.agents {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	side := boxStyle.Width(sidebarWidth).Render(sidebar.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", boxStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the selected agent above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.current()), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderTableContent())))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.episodes) == 0 {
		return dimStyle.
			Italic(true).
			Padding(2, 4).
			Render("No episodes recorded yet.\nPlay or run an agent to fill this board.")
	}
	return m.table.View()
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, agent string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, agent, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
