// Headless campaign runner: plays seeded dino marathon campaigns with a
// greedy strategy and optionally saves progression and race history.
//
// Usage:
//
//	go run ./cmd/racesim -runs 100 -parallel 8
//	go run ./cmd/racesim -config config/racesim.yaml -seed 7 -save
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dinomarathon/internal/campaign"
	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/db"
)

const ConfigPath = "config/racesim.yaml"

type options struct {
	configPath string
	runs       int
	seed       uint64
	parallel   int
	save       bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default $DINO_CONFIG or "+ConfigPath+")")
	flag.IntVar(&opts.runs, "runs", 1, "number of campaigns to play")
	flag.Uint64Var(&opts.seed, "seed", 1, "seed of the first campaign, campaign i uses seed+i")
	flag.IntVar(&opts.parallel, "parallel", runtime.GOMAXPROCS(0), "campaigns played at once")
	flag.BoolVar(&opts.save, "save", false, "save progression and race history to the store")
	flag.Parse()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = ConfigPath
		if p := os.Getenv("DINO_CONFIG"); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("racesim starting", "log_level", cfg.LogLevel, "runs", opts.runs, "seed", opts.seed)

	if opts.runs <= 0 || opts.parallel <= 0 {
		return fmt.Errorf("runs and parallel must be positive, got %d and %d", opts.runs, opts.parallel)
	}

	if err := data.LoadItemTemplates(); err != nil {
		return fmt.Errorf("loading item templates: %w", err)
	}

	var store *db.DB
	if opts.save {
		store, err = db.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()
	}

	var (
		mu       sync.Mutex
		wins     int
		finished int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for i := range opts.runs {
		seed := opts.seed + uint64(i)
		g.Go(func() error {
			c := campaign.New(cfg, data.ItemTable, campaign.NewGreedyPlayer(data.ItemTable), seed)
			res, err := c.Run(gctx)
			if err != nil {
				return fmt.Errorf("campaign seed %d: %w", seed, err)
			}

			runID := uuid.New()
			slog.Info("campaign finished",
				"run", runID,
				"seed", seed,
				"wins", res.Wins(),
				"completed", res.Completed,
				"roster", res.Final.Roster)

			if store != nil {
				if err := saveRun(gctx, store, runID, res); err != nil {
					return fmt.Errorf("campaign seed %d: %w", seed, err)
				}
			}

			mu.Lock()
			wins += res.Wins()
			if res.Completed {
				finished++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("racesim done",
		"runs", opts.runs,
		"completed", finished,
		"avg_wins", float64(wins)/float64(opts.runs))
	return nil
}

func saveRun(ctx context.Context, store *db.DB, runID uuid.UUID, res campaign.Result) error {
	if err := store.SaveProgression(ctx, runID.String(), res.Final); err != nil {
		return err
	}
	for _, rec := range res.Records {
		if err := store.RecordRace(ctx, runID, rec.Level, rec.Distance, rec.Summary); err != nil {
			return err
		}
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
