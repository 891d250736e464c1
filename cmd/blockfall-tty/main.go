// Command blockfall-tty plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/internal/logging"
	"github.com/plus3/blockfall/tetris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	logPath := flag.String("log", "blockfall-tty.log", "File to write logs to.")
	seed := flag.Uint64("seed", 0, "Fix the piece sequence; overrides the config file.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	logger, err := logging.NewConsole(cfg.LogLevel, logFile)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	game, err := cfg.NewGame(tetris.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal("failed to create screen", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		logger.Fatal("failed to init screen", zap.Error(err))
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := play(ctx, screen, game, cfg, logger); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}

// play runs the loop and the terminal event reader until the player quits
// or ctx is cancelled.
func play(ctx context.Context, screen tcell.Screen, game *tetris.Game, cfg config.Config, logger *zap.Logger) error {
	session := driver.NewSession(game)
	loop := driver.NewLoop(session,
		driver.WithInterval(cfg.TickInterval),
		driver.WithLogger(logger),
	)
	loop.OnUpdate(func() {
		draw(screen, game.Snapshot())
	})
	draw(screen, game.Snapshot())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loop.Run(ctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return readEvents(ctx, screen, session, loop)
	})
	g.Go(func() error {
		// Wake PollEvent so readEvents can see the cancellation.
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})
	return g.Wait()
}

func readEvents(ctx context.Context, screen tcell.Screen, session *driver.Session, loop *driver.Loop) error {
	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch keyCommand(ev) {
			case commandQuit:
				return nil
			case commandRestart:
				session.RequestRestart()
				loop.Submit(tetris.ActionNone)
			case commandAction:
				loop.Submit(keyAction(ev))
			}
		}
	}
}
