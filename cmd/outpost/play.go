package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-outpost/internal/config"
	"github.com/vovakirdan/tui-outpost/internal/core"
	"github.com/vovakirdan/tui-outpost/internal/game"
	"github.com/vovakirdan/tui-outpost/internal/platform/tui"
	"github.com/vovakirdan/tui-outpost/internal/storage"
)

var flagSeed int64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game at base.

Controls at base:
  S          - Survey the surroundings (costs energy)
  B          - Buy a circle
  Up/Down    - Pick a scouted site
  Enter      - Embark to the selected site

Controls while embarked:
  Arrows     - Move (hjkl also works)
  I/Esc      - Return to base

Anywhere:
  ?          - Show all keys
  Ctrl+S     - Save a screenshot to ~/.outpost/screenshots
  Q/Ctrl+C   - Quit

Examples:
  outpost play
  outpost play --seed 7
  outpost play --config ./my-outpost.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Seed for surveyed sites (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Embark.Seed = flagSeed
	}

	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg.Viewport.Width = float64(width)
	cfg.Viewport.Height = float64(height)

	g, err := game.New(cfg, time.Now(), game.WithLogger(logger))
	if err != nil {
		logger.Error("cannot start game", "err", err)
		return err
	}

	// Open the journal; the game still works without it
	var saver game.ExpeditionSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		logger.Warn("journal disabled", "err", err)
	} else {
		saver = store
		defer store.Close()
	}

	logger.Info("starting", "fps", flagFPS, "tick", cfg.Tick.Interval, "size", fmt.Sprintf("%dx%d", width, height))

	if err := tui.Run(g, saver, logger, core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		FPS:     flagFPS,
	}); err != nil {
		logger.Error("game stopped", "err", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
