package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/gui"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play in a desktop window",
	Long: `Play a level in a desktop window. Without a level, the first one is
played.

Controls:
  Arrows/WASD - Walk and jump (hold to keep walking)
  Space       - Start the run
  Esc         - Restart (after game over)
  P           - Pause
  Q           - Quit

Examples:
  platformer window
  platformer window towers --scale 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 2, "Window scale factor")
}

func runWindow(_ *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	lvl, err := a.level(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	scene, err := a.newScene(lvl.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer closeStore(store)

	// The map plus a margin for the HUD and the centred messages.
	width := core.Max(lvl.Width*a.cfg.Map.CellW+4, 40)
	height := lvl.Height*a.cfg.Map.CellH + 4

	logger.Debug("opening window", "level", lvl.ID, "cells", fmt.Sprintf("%dx%d", width, height))
	if err := gui.Run(scene, storeAs[gui.ScoreSaver](store), runtimeConfig(width, height), flagScale); err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
