package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-gym/internal/config"
	"github.com/vovakirdan/flappy-gym/internal/core"
	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
	"github.com/vovakirdan/flappy-gym/internal/platform/headless"
	"github.com/vovakirdan/flappy-gym/internal/registry"
	"github.com/vovakirdan/flappy-gym/internal/storage"
)

// HumanAgent is the agent name stored for episodes played from the keyboard.
const HumanAgent = "human"

// Options configures a live session.
type Options struct {
	Policy  registry.Policy // nil means the keyboard drives the bird
	Store   *storage.Store  // optional; finished episodes are saved here
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// Model is the Bubble Tea model for playing or watching episodes.
type Model struct {
	env        *flappy.Env
	policy     registry.Policy
	agent      string
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	log        *log.Logger
	inputFrame core.InputFrame
	obs        flappy.Observation
	baseSeed   int64
	episodes   int
	seed       int64
	reward     float64
	paused     bool
	quitting   bool
	saved      bool
}

// NewModel creates a model around env. When opts.Policy is set the episode
// starts immediately and the policy picks every action.
func NewModel(env *flappy.Env, opts Options) Model {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		d := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = d.ScreenW, d.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		env:        env,
		policy:     opts.Policy,
		agent:      HumanAgent,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		store:      opts.Store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		log:        logger,
		inputFrame: core.NewInputFrame(),
		baseSeed:   env.Seed(),
	}
	if m.policy != nil {
		m.agent = m.policy.Name()
		m.keys = watchKeyMap()
		m.start()
	}
	m.help.Width = cfg.ScreenW
	return m
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
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize rescales the view. The world keeps its own size so the
// episode carries on untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionPause) && m.env.Phase() == flappy.PhaseRunning {
		m.paused = !m.paused
	}

	switch m.env.Phase() {
	case flappy.PhaseUninitialized:
		if m.inputFrame.Has(core.ActionFlap) {
			m.start()
		}
	case flappy.PhaseTerminated:
		if m.inputFrame.Has(core.ActionRestart) {
			m.start()
		}
	case flappy.PhaseRunning:
		if !m.paused {
			m.step()
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// start begins a new episode. Episode i of the session uses seed base+i,
// so every saved seed replays its own pipes.
func (m *Model) start() {
	m.seed = m.baseSeed + int64(m.episodes)
	m.episodes++
	m.obs, _ = m.env.ResetWithSeed(m.seed)
	m.reward = 0
	m.paused = false
	m.saved = false
}

func (m *Model) step() {
	a := flappy.ActionIdle
	switch {
	case m.policy != nil:
		a = m.policy.Act(m.obs, m.env.State())
	case m.inputFrame.Has(core.ActionFlap):
		a = flappy.ActionFlap
	}

	res, err := m.env.Step(a)
	if err != nil {
		m.log.Error("step failed", "err", err)
		return
	}
	m.obs = res.Observation
	m.reward += res.Reward

	if res.Terminated || res.Truncated {
		m.saveEpisode(res)
	}
}

// saveEpisode stores the finished episode once. Storage is best effort.
func (m *Model) saveEpisode(res flappy.StepResult) {
	if m.saved || m.store == nil {
		m.saved = true
		return
	}
	m.saved = true

	reason := res.Info.Crash.String()
	if res.Truncated {
		reason = headless.EndScoreLimit
	}
	ep := storage.Episode{
		Agent:       m.agent,
		Seed:        m.seed,
		Score:       res.Info.Score,
		Steps:       res.Info.Tick,
		TotalReward: m.reward,
		EndReason:   reason,
		UseLidar:    m.env.Config().Observation.UseLidar,
	}
	if _, err := m.store.SaveEpisode(ep); err != nil {
		m.log.Warn("could not save episode", "agent", m.agent, "err", err)
	}
}

// saveScreenshot writes the current frame as plain text under the app directory.
func (m *Model) saveScreenshot() error {
	m.env.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("flappy_%s_%s.txt", m.agent, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.log.Info("screenshot saved", "path", path)
	return nil
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.env.Render(m.screen)
	if m.policy != nil {
		label := fmt.Sprintf(" agent: %s ", m.agent)
		m.screen.DrawText(m.screen.Width()-len(label)-2, 0, label)
	}

	view := RenderScreen(m.screen)
	if m.paused {
		view += "\n" + pausedStyle.Render("PAUSED") + "  " + statusStyle.Render(m.help.View(m.keys))
		return view
	}
	return view + "\n" + statusStyle.Render(m.help.View(m.keys))
}

// Agent returns the name episodes are saved under.
func (m Model) Agent() string {
	return m.agent
}

// Run starts the Bubble Tea program for env.
func Run(env *flappy.Env, opts Options) error {
	p := tea.NewProgram(
		NewModel(env, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
