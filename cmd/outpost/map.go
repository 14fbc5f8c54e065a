package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-outpost/internal/config"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

var (
	flagMapWidth  float64
	flagMapHeight float64
	flagMapSeed   int64
	flagMapStats  bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print a generated site",
	Long: `Generate a site and print it as ASCII, one row per line.
Walls are '#', floor is '.'. Unset flags fall back to the configured embark
parameters.

Examples:
  outpost map --width 20 --height 8
  outpost map --seed 42 --stats`,
	Args: cobra.NoArgs,
	Run:  runMap,
}

func init() {
	mapCmd.Flags().Float64Var(&flagMapWidth, "width", 0, "Site width in tiles")
	mapCmd.Flags().Float64Var(&flagMapHeight, "height", 0, "Site height in tiles")
	mapCmd.Flags().Int64Var(&flagMapSeed, "seed", 0, "Generator seed")
	mapCmd.Flags().BoolVar(&flagMapStats, "stats", false, "Print tile counts after the map")
}

func runMap(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	params := world.EmbarkParams{
		Seed:   cfg.Embark.Seed,
		Width:  cfg.Embark.Width,
		Height: cfg.Embark.Height,
	}
	if cmd.Flags().Changed("width") {
		params.Width = flagMapWidth
	}
	if cmd.Flags().Changed("height") {
		params.Height = flagMapHeight
	}
	if cmd.Flags().Changed("seed") {
		params.Seed = flagMapSeed
	}

	m, err := world.Generate(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, line := range m.Lines() {
		fmt.Println(line)
	}

	if flagMapStats {
		counts := m.CountByTile()
		fmt.Println()
		fmt.Printf("%s  %dx%d\n", params, m.Cols(), m.Rows())
		fmt.Printf("  %-6s %d\n", world.TileWall, counts[world.TileWall])
		fmt.Printf("  %-6s %d\n", world.TileEmpty, counts[world.TileEmpty])
	}
}
