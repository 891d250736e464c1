// Command blockfall plays the game in a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/internal/logging"
	"github.com/plus3/blockfall/telemetry"
	"github.com/plus3/blockfall/tetris"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Fix the piece sequence; overrides the config file.")
	debugUI := flag.Bool("debug-ui", false, "Show the engine debug panel.")
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
	cfg.DebugUI = cfg.DebugUI || *debugUI

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	metrics := telemetry.NewMetrics()
	game, err := cfg.NewGame(
		tetris.WithLogger(logger),
		tetris.WithObserver(metrics),
	)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	session := driver.NewSession(game)
	loop := driver.NewLoop(session,
		driver.WithInterval(cfg.TickInterval),
		driver.WithLogger(logger),
	)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, metrics, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	window := newWindow(session, loop, cfg.Scale)
	width, height := window.size()
	if cfg.DebugUI {
		window.overlay = debugui_ebiten.NewOverlay("Blockfall", width+320, height)
		window.panel = debugui.NewPanel(120)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Blockfall")
	}

	if err := ebiten.RunGame(window); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}

func serveMetrics(addr string, metrics *telemetry.Metrics, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
