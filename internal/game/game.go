// Package game is the outpost simulation core: the resource economy at base,
// the embark state machine, grid movement and the per-frame update.
//
// A Game is owned by a single frame loop. The platform pushes intent events
// into an EventQueue and calls Frame once per frame; renderers read a
// Snapshot. Nothing here blocks, spawns goroutines or touches the terminal.
package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-outpost/internal/config"
	"github.com/vovakirdan/tui-outpost/internal/economy"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Game is the aggregate root of the simulation. It is not safe for
// concurrent use.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	ledger   *economy.Ledger
	location world.Location
	scouted  []world.Location
	session  Session

	screen ScreenState
	staged *transition

	viewportW float64
	viewportH float64

	ticker        TickScheduler
	ticks         uint64
	frames        uint64
	exitRequested bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game at base from cfg. The first economy tick is due one
// tick interval after now.
func New(cfg config.Config, now time.Time, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	entries := make([]economy.Entry, 0, len(cfg.Economy.Resources))
	for _, r := range cfg.Economy.Resources {
		entries = append(entries, economy.Entry{Name: r.Name, Start: r.Start, Max: r.Max})
	}
	ledger, err := economy.NewLedger(entries)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		logger:    log.New(io.Discard),
		ledger:    ledger,
		location:  world.AtBase(),
		screen:    ScreenIdle,
		viewportW: cfg.Viewport.Width,
		viewportH: cfg.Viewport.Height,
		ticker:    NewTickScheduler(cfg.Tick.Interval, now),
	}
	g.session = newSession(g.defaultParams())

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// defaultParams returns the parameters given to newly surveyed sites.
func (g *Game) defaultParams() world.EmbarkParams {
	return g.cfg.Embark.Params()
}

// Screen returns the active top-level mode.
func (g *Game) Screen() ScreenState {
	return g.screen
}

// Location returns the current location.
func (g *Game) Location() world.Location {
	return g.location
}

// Ledger returns the resource ledger. Callers outside the frame loop
// should treat it as read-only.
func (g *Game) Ledger() *economy.Ledger {
	return g.ledger
}

// ExitRequested reports whether a Quit event has been processed.
func (g *Game) ExitRequested() bool {
	return g.exitRequested
}

// accumulate applies delta to a resource the config guarantees exists.
func (g *Game) accumulate(name string, delta float64) {
	if err := g.ledger.Accumulate(name, delta); err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
}

// peek reads a resource the config guarantees exists.
func (g *Game) peek(name string) economy.Resource {
	r, err := g.ledger.Peek(name)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return r
}
