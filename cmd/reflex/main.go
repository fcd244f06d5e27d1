package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reflex/audio"
	"github.com/lixenwraith/reflex/config"
	"github.com/lixenwraith/reflex/core"
	"github.com/lixenwraith/reflex/engine"
	"github.com/lixenwraith/reflex/history"
	"github.com/lixenwraith/reflex/panel"
	"github.com/lixenwraith/reflex/peripheral"
)

var (
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/reflex.log")
	muteFlag    = flag.Bool("mute", false, "Disable buzzer audio")
	secondsFlag = flag.Int("seconds", 0, "Countdown length in seconds, 0 keeps REFLEX_INITIAL_SECONDS")
	historyFlag = flag.String("history", "", "Score history database, '-' disables, empty keeps REFLEX_HISTORY_PATH")
)

// stopGrace bounds the wait for the stimulus loop to finish its last tone
const stopGrace = 2 * time.Second

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	summary, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflex: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
	if summary != "" {
		fmt.Println(summary)
	}
}

// applyOverrides layers command-line flags over the environment config
func applyOverrides(cfg *config.Config, seconds int, mute bool, historyPath string) {
	if seconds != 0 {
		cfg.InitialSeconds = seconds
	}
	if mute {
		cfg.AudioEnabled = false
	}
	switch historyPath {
	case "":
	case "-":
		cfg.HistoryPath = ""
	default:
		cfg.HistoryPath = historyPath
	}
}

func run() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	applyOverrides(&cfg, *secondsFlag, *muteFlag, *historyFlag)

	screen, err := tcell.NewScreen()
	if err != nil {
		return "", fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return "", fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	clock := peripheral.NewSystemClock()
	board := panel.New(screen, clock, cfg.KeyHold)

	buzzers := audio.NewBuzzers(cfg.MasterVolume, clock)
	if cfg.AudioEnabled {
		if err := buzzers.Initialize(); err != nil {
			// Non-fatal, tones keep their timing without sound
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer buzzers.Cleanup()
		}
	}

	game, err := engine.NewGame(cfg, peripheral.Board{
		Visual:  board,
		Audio:   buzzers,
		Input:   board,
		Display: board,
		Clock:   clock,
	})
	if err != nil {
		return "", err
	}

	core.Go(board.Run)
	if err := game.Start(); err != nil {
		return "", err
	}
	log.Printf("game started: %d seconds, window %v", cfg.InitialSeconds, cfg.InitialWindow)

	select {
	case <-game.Done():
	case <-board.Quit():
		log.Printf("player quit at score %d", game.State().Score())
		return "", nil
	}

	select {
	case <-game.Stopped():
	case <-time.After(stopGrace):
		log.Printf("stimulus loop still running after %v", stopGrace)
	}

	return finish(cfg.HistoryPath, game.Result()), nil
}

// finish records the result and returns the line printed after the board closes
func finish(historyPath string, result engine.Result) string {
	summary := fmt.Sprintf("Score: %d (%d rounds, best reaction %v)",
		result.Score, result.Stats.Rounds, result.Stats.BestReaction)
	if historyPath == "" {
		return summary
	}

	store, err := history.Open(historyPath)
	if err != nil {
		log.Printf("history unavailable: %v", err)
		return summary
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, history.Record{
		FinishedAt:   time.Now(),
		Score:        result.Score,
		Rounds:       result.Stats.Rounds,
		Hits:         result.Stats.Hits,
		Misses:       result.Stats.Misses,
		BestReaction: result.Stats.BestReaction,
		MeanReaction: result.Stats.MeanReaction(),
	}); err != nil {
		log.Printf("saving game failed: %v", err)
		return summary
	}

	best, err := store.Best(ctx)
	if err != nil {
		if !errors.Is(err, history.ErrNoGames) {
			log.Printf("reading best game failed: %v", err)
		}
		return summary
	}
	log.Printf("best recorded score: %d", best.Score)
	if best.Score > result.Score {
		return fmt.Sprintf("%s, best ever: %d", summary, best.Score)
	}
	return summary + ", new best"
}
