package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-outpost/internal/platform/tui"
	"github.com/vovakirdan/tui-outpost/internal/storage"
)

var (
	flagJournalLimit  int
	flagJournalClear  bool
	flagJournalBrowse bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [id]",
	Short: "Show past expeditions",
	Long: `Display the most recent expeditions and overall totals, or the
details of a single expedition when an id is given.

Examples:
  outpost journal
  outpost journal --limit 5
  outpost journal --browse
  outpost journal 01HV6Z3K8Q2M5N7P9R1T3V5X7Z
  outpost journal --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 10, "Number of expeditions to show")
	journalCmd.Flags().BoolVar(&flagJournalClear, "clear", false, "Delete all journaled expeditions")
	journalCmd.Flags().BoolVar(&flagJournalBrowse, "browse", false, "Browse the journal interactively")
}

func runJournal(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagJournalClear:
		if err := store.ClearExpeditions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Journal cleared.")
	case flagJournalBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	case len(args) == 1:
		showExpedition(store, args[0])
	default:
		showJournal(store)
	}
}

func showExpedition(store *storage.Store, id string) {
	r, err := store.ExpeditionByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if r == nil {
		fmt.Printf("No expedition with id %s.\n", id)
		return
	}

	fmt.Printf("Expedition %s\n", r.ID)
	fmt.Println()
	fmt.Printf("  Site      %s\n", r.Params)
	fmt.Printf("  Started   %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Ended     %s\n", r.EndedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Duration  %s\n", r.Duration().Round(time.Second))
	fmt.Printf("  Steps     %d\n", r.Steps)
	fmt.Printf("  Bumps     %d\n", r.Bumps)
}

func showJournal(store *storage.Store) {
	records, err := store.RecentExpeditions(flagJournalLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving expeditions: %v\n", err)
		return
	}

	fmt.Println("Expedition Journal")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No expeditions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'outpost play', survey a site and embark to start one!")
		return
	}

	fmt.Printf("  %-26s  %-16s  %-16s  %8s  %5s  %5s\n", "ID", "Started", "Site", "Duration", "Steps", "Bumps")
	fmt.Printf("  %-26s  %-16s  %-16s  %8s  %5s  %5s\n", "--", "-------", "----", "--------", "-----", "-----")

	for _, r := range records {
		fmt.Printf("  %-26s  %-16s  %-16s  %8s  %5d  %5d\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("seed=%d %gx%g", r.Params.Seed, r.Params.Width, r.Params.Height),
			r.Duration().Round(time.Second),
			r.Steps,
			r.Bumps,
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Expeditions: %d  Steps: %d  Bumps: %d  Time out: %s  Longest: %s\n",
		stats.Count,
		stats.TotalSteps,
		stats.TotalBumps,
		stats.TotalDuration.Round(time.Second),
		stats.Longest.Round(time.Second),
	)
}
