package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-outpost/internal/core"
	"github.com/vovakirdan/tui-outpost/internal/game"
)

// circlesPerPurchase is how many circles one buy key press adds.
const circlesPerPurchase = 1

// Model is the Bubble Tea model that drives a Game.
// Keys become game events; every FrameMsg runs one game frame.
type Model struct {
	game    *game.Game
	queue   *game.EventQueue
	tracker *game.ExpeditionTracker
	store   game.ExpeditionSaver
	logger  *log.Logger

	screen *core.Screen
	config core.RuntimeConfig
	keys   *KeyMap
	mapper *KeyMapper
	help   help.Model

	snap     game.Snapshot
	cursor   int // Selected scouted site while at base
	quitting bool
}

// NewModel creates a new Bubble Tea model for g. store may be nil, in which
// case finished expeditions are only logged.
func NewModel(g *game.Game, store game.ExpeditionSaver, logger *log.Logger, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalize()
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	snap := g.Snapshot()
	keys.SetScreen(snap.Screen)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:    g,
		queue:   &game.EventQueue{},
		tracker: game.NewExpeditionTracker(),
		store:   store,
		logger:  logger,
		screen:  core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		config:  cfg,
		keys:    &keys,
		mapper:  NewKeyMapper(&keys),
		help:    h,
		snap:    snap,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey turns a key press into game events. Nothing is applied until
// the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	intent := m.mapper.MapKey(msg)

	switch intent {
	case IntentQuit:
		m.queue.Push(game.Quit{})
	case IntentHelp:
		m.help.ShowAll = !m.help.ShowAll
	case IntentScreenshot:
		m.saveScreenshot()
	case IntentSurvey:
		m.queue.Push(game.SurveySurroundings{})
	case IntentBuy:
		m.queue.Push(game.BuyCircle{Amount: circlesPerPurchase})
	case IntentBase:
		m.queue.Push(game.RequestReturnToBase{})
	case IntentEmbark:
		if m.cursor < len(m.snap.Scouted) {
			m.queue.Push(game.RequestEmbark{Location: m.snap.Scouted[m.cursor]})
		}
	case IntentUp, IntentDown:
		if m.snap.Screen == game.ScreenEmbark {
			m.queue.Push(game.KeyAction{Direction: intent.direction()})
			break
		}
		m.moveCursor(intent)
	case IntentLeft, IntentRight:
		m.queue.Push(game.KeyAction{Direction: intent.direction()})
	default:
		m.logger.Warn("unhandled key", "key", msg.String(), "screen", m.snap.Screen)
	}

	return m, nil
}

func (m *Model) moveCursor(intent Intent) {
	if intent == IntentUp {
		m.cursor--
	} else {
		m.cursor++
	}
	m.cursor = core.Clamp(m.cursor, 0, max(0, len(m.snap.Scouted)-1))
}

// handleResize resizes the screen buffer and reports the new viewport to
// the game. The bottom line is kept for help.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-1))
	m.help.Width = msg.Width

	m.queue.Push(game.ResizeViewport{Width: float64(msg.Width), Height: float64(msg.Height)})
	return m, nil
}

// handleFrame runs one game frame and journals any expedition it ended.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	res := m.game.Frame(now, m.queue)

	if done := m.tracker.Observe(now, res); done != nil {
		m.saveExpedition(*done)
	}

	m.snap = m.game.Snapshot()
	m.keys.SetScreen(m.snap.Screen)
	m.cursor = core.Clamp(m.cursor, 0, max(0, len(m.snap.Scouted)-1))

	if res.ExitRequested {
		m.flush(now)
		m.quitting = true
		return m, tea.Quit
	}

	return m, frameCmd(m.config.FPS)
}

// flush journals the running expedition, if any.
func (m Model) flush(now time.Time) {
	if done := m.tracker.Finish(now); done != nil {
		m.saveExpedition(*done)
	}
}

func (m Model) saveExpedition(e game.Expedition) {
	m.logger.Info("expedition finished",
		"id", e.ID,
		"site", e.Params,
		"steps", e.Steps,
		"bumps", e.Bumps,
		"duration", e.Duration().Round(time.Second),
	)
	if m.store == nil {
		return
	}
	if err := m.store.SaveExpedition(e); err != nil {
		m.logger.Error("cannot save expedition", "id", e.ID, "err", err)
	}
}

// draw renders the current snapshot into the screen buffer.
func (m Model) draw() {
	switch m.snap.Screen {
	case game.ScreenEmbark:
		drawEmbark(m.screen, m.snap)
	default:
		drawBase(m.screen, m.snap, m.cursor)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".outpost", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("outpost_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Snapshot returns the state the model last rendered from.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}

// Run starts the Bubble Tea program for g and blocks until the player quits.
func Run(g *game.Game, store game.ExpeditionSaver, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(g, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		// Journal an expedition cut short by a killed program
		m.flush(time.Now())
	}
	return err
}
