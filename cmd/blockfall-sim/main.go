// Command blockfall-sim plays seeded games headlessly with random input and
// prints a report. It is used to soak the engine and to time it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/internal/logging"
	"github.com/plus3/blockfall/tetris"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file for the board and log level.")
	duration := flag.Duration("duration", 10*time.Second, "The longest the simulation should run for.")
	steps := flag.Int64("steps", 0, "Stop after this many engine calls; 0 means run for the full duration.")
	seed := flag.Uint64("seed", 1, "Seed for the piece sequence and the input policy.")
	tickEvery := flag.Int("tick-every", 4, "One engine call in this many, on average, is a gravity tick.")
	flag.Parse()

	cfg := config.Default()
	cfg.LogLevel = "warn"
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.Seed = *seed

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	t := newTally()
	game, err := cfg.NewGame(
		tetris.WithLogger(logger),
		tetris.WithObserver(t),
	)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	report := &Report{
		Width:       cfg.Board.Width,
		Height:      cfg.Board.Height,
		Seed:        *seed,
		Duration:    *duration,
		Steps:       *steps,
		TickEvery: *tickEvery,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", *duration), zap.Int64("steps", *steps))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report.Loop, report.TotalTime = simulate(ctx, game, t, simOptions{
		steps:       *steps,
		tickEvery: *tickEvery,
		seed:        *seed,
	})
	report.fill(t)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
