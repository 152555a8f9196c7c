package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and the levels found in --levels.
A level file with the same ID as a built-in level replaces it.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range a.levels {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	fmt.Printf("  %-*s  %-20s  %-7s  %s\n", maxIDLen, "ID", "Title", "Size", "Source")
	fmt.Printf("  %-*s  %-20s  %-7s  %s\n", maxIDLen, "--", "-----", "----", "------")

	for _, lvl := range a.levels {
		source := "built-in"
		if !lvl.Builtin() {
			source = lvl.FilePath
		}
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		fmt.Printf("  %-*s  %-20s  %-7s  %s\n", maxIDLen, lvl.ID, lvl.Name, size, source)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
}
