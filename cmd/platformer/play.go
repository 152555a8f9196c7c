package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Play a level in the terminal. Without a level, a menu lets you pick
one and you return to it after each game.

Controls:
  Left/Right/A/D - Walk
  Up/W           - Jump
  Space          - Start the run
  Esc            - Restart (after game over)
  P              - Pause
  B              - Back to the menu (before the start, paused or game over)
  Tab            - Scoreboard (in the menu)
  Ctrl+S         - Save a text screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play
  platformer play meadow
  platformer play towers --difficulty hard
  platformer play meadow --config ./my-platformer.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer closeStore(store)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := runtimeConfig(width, height)

	if len(args) == 1 {
		scene, err := a.newScene(args[0])
		if err != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if _, err := tui.Run(scene, storeAs[tui.ScoreSaver](store), cfg, a.cfg.Input.HoldTicks); err != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runMenuLoop(a, store, cfg)
}

// runMenuLoop alternates between the level menu, the scoreboard and games
// until the user quits.
func runMenuLoop(a *app, store *storage.Store, cfg core.RuntimeConfig) {
	infos := a.levelInfos()

	for {
		menuResult, err := tui.RunMenu(infos, storeAs[tui.HighScorer](store), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(infos, storeAs[tui.ScoreReader](store), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		scene, err := a.newScene(menuResult.LevelID)
		if err != nil {
			logger.Error("creating scene", "level", menuResult.LevelID, "err", err)
			continue
		}

		// Fresh seed for each game unless one was fixed on the command line.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(scene, storeAs[tui.ScoreSaver](store), cfg, a.cfg.Input.HoldTicks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
