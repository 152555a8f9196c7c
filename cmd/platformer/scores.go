package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top scores and run statistics for a level. Without a
level, shows a summary of every level that has been played.

Examples:
  platformer scores
  platformer scores meadow
  platformer scores towers --limit 20
  platformer scores towers --all
  platformer scores meadow --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run instead of the top --limit")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the level")
}

func runScores(_ *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer closeStore(store)

	switch {
	case len(args) == 0 && flagScoresClear:
		err = errors.New("--clear needs a level")
	case len(args) == 0:
		err = printSummary(os.Stdout, store, a.levels)
	default:
		var lvl levels.Level
		if lvl, err = a.level(args[0]); err != nil {
			break
		}
		if flagScoresClear {
			err = clearScores(os.Stdout, store, lvl)
			break
		}
		err = printScores(os.Stdout, store, lvl, flagScoresAll, flagScoresLimit)
	}
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the ranked runs of a level followed by its stats.
func printScores(w io.Writer, store *storage.Store, lvl levels.Level, all bool, limit int) error {
	var scores []storage.ScoreEntry
	var err error
	if all {
		scores, err = store.AllScores(lvl.ID)
	} else {
		scores, err = store.TopScores(lvl.ID, limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", lvl.Name)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'platformer play %s' to set the first high score!\n", lvl.ID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		fmt.Fprintf(w, "  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, result, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	stats, err := store.GetLevelStats(lvl.ID)
	if err == nil && stats != nil {
		fmt.Fprintf(w, "Best: %d  Runs: %d  Wins: %d  Avg: %.1f\n", stats.HighScore, stats.Runs, stats.Wins, stats.AvgScore)
	}
	return nil
}

// printSummary writes one line per played level. Levels missing from the
// current level list keep their stored ID as the title.
func printSummary(w io.Writer, store *storage.Store, known []levels.Level) error {
	all, err := store.GetAllLevelsStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	names := make(map[string]string, len(known))
	for _, lvl := range known {
		names[lvl.ID] = lvl.Name
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-20s  %-6s  %-6s  %-6s  %s\n", "Level", "Best", "Runs", "Wins", "Last played")
	fmt.Fprintf(w, "  %-20s  %-6s  %-6s  %-6s  %s\n", "-----", "----", "----", "----", "-----------")
	for _, id := range ids {
		s := all[id]
		name := names[id]
		if name == "" {
			name = id
		}
		fmt.Fprintf(w, "  %-20s  %-6d  %-6d  %-6d  %s\n", name, s.HighScore, s.Runs, s.Wins, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func clearScores(w io.Writer, store *storage.Store, lvl levels.Level) error {
	if err := store.ClearScores(lvl.ID); err != nil {
		return err
	}
	logger.Info("scores cleared", "level", lvl.ID)
	fmt.Fprintf(w, "Cleared every score of %s.\n", lvl.Name)
	return nil
}
