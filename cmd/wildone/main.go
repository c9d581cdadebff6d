// Package main provides the wildone binary: a single-player console game
// with saves kept in files, PostgreSQL, or Redis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/config"
	"github.com/cory-johannsen/wildone/internal/frontend/console"
	"github.com/cory-johannsen/wildone/internal/game/character"
	"github.com/cory-johannsen/wildone/internal/game/content"
	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/message"
	"github.com/cory-johannsen/wildone/internal/game/save"
	"github.com/cory-johannsen/wildone/internal/game/session"
	"github.com/cory-johannsen/wildone/internal/game/world"
	"github.com/cory-johannsen/wildone/internal/observability"
	"github.com/cory-johannsen/wildone/internal/scripting"
	"github.com/cory-johannsen/wildone/internal/server"
	"github.com/cory-johannsen/wildone/internal/storage/file"
	"github.com/cory-johannsen/wildone/internal/storage/postgres"
	"github.com/cory-johannsen/wildone/internal/storage/redis"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	slot := flag.String("slot", "", "save slot to resume; empty starts a new character")
	name := flag.String("name", "", "name of the new character")
	race := flag.String("race", "", "race key of the new character; empty picks the first race")
	list := flag.Bool("list", false, "list the saved slots and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lifecycle := server.NewLifecycle(logger)

	store, err := openStore(ctx, cfg, logger, lifecycle)
	if err != nil {
		fatal(logger, "opening save store", err)
	}

	if *list {
		slots, err := store.List(ctx)
		if err != nil {
			fatal(logger, "listing saves", err)
		}
		for _, s := range slots {
			fmt.Fprintln(os.Stdout, s)
		}
		return
	}

	diceCfg, err := cfg.Dice.ServiceConfig()
	if err != nil {
		fatal(logger, "configuring dice", err)
	}
	diceSvc, err := dice.NewConfiguredService(diceCfg, logger)
	if err != nil {
		fatal(logger, "configuring dice", err)
	}

	// Scripting is optional; hooks stays a nil interface when disabled.
	var hooks *scripting.Manager
	if cfg.Scripting.Dir != "" {
		scriptStart := time.Now()
		hooks = scripting.NewManager(diceSvc, logger, cfg.Scripting.InstructionLimit)
		defer hooks.Close()
		if err := hooks.LoadDir(cfg.Scripting.Dir); err != nil {
			fatal(logger, "loading scripts", err)
		}
		logger.Info("scripts loaded",
			zap.String("dir", cfg.Scripting.Dir),
			zap.Duration("elapsed", time.Since(scriptStart)),
		)
	}

	var catalog *content.Catalog
	if hooks != nil {
		catalog, err = content.Load(cfg.Game.DataDir, diceSvc, hooks, logger)
	} else {
		catalog, err = content.Load(cfg.Game.DataDir, diceSvc, nil, logger)
	}
	if err != nil {
		fatal(logger, "loading content", err)
	}

	player, at, err := loadPlayer(ctx, store, catalog, diceSvc, cfg.Game, *slot, *name, *race)
	if err != nil {
		fatal(logger, "preparing character", err)
	}
	startLoc, ok := catalog.World.LocationAt(at.X, at.Y)
	if !ok {
		fatal(logger, "preparing character", fmt.Errorf("no location at %s", at))
	}
	if *slot == "" {
		*slot = save.NewSlot()
	}

	broker := message.NewBroker(logger)
	deps := session.Deps{
		World:  catalog.World,
		NPCs:   catalog.NPCs,
		Items:  catalog.Items,
		Broker: broker,
		Dice:   diceSvc,
		Logger: logger,
	}
	if hooks != nil {
		deps.Hooks = hooks
	}
	opts := session.Options{
		SafeLocation: world.Coordinate{X: cfg.Game.SafeX, Y: cfg.Game.SafeY},
		LogLimit:     cfg.Game.MessageLimit,
	}

	sessions := session.NewManager()
	game := session.New(player, startLoc, deps, opts)
	if err := sessions.Add(*slot, game); err != nil {
		fatal(logger, "starting session", err)
	}

	con := console.New(console.Config{
		Game:    game,
		Broker:  broker,
		Items:   catalog.Items,
		Details: catalog.Details,
		Save: func(ctx context.Context) error {
			return store.Save(ctx, *slot, save.Capture(game))
		},
		Logger: logger,
	}, os.Stdin, os.Stdout)

	lifecycle.Add("console", &server.FuncService{
		StartFn: con.Run,
		StopFn: func() {
			con.Close()
			sessions.DisposeAll()
		},
	})

	logger.Info("game initialized",
		zap.String("slot", *slot),
		zap.String("player", player.Name()),
		zap.String("storage", cfg.Storage.Backend),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		fatal(logger, "game error", err)
	}
}

// openStore connects the configured save backend. Backends holding a
// connection register a service with lc so the connection is released on
// shutdown.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger, lc *server.Lifecycle) (save.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return file.NewStore(cfg.Storage.SaveDir)
	case "postgres":
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		lc.Add("postgres", &server.FuncService{
			StartFn: func(ctx context.Context) error {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						if err := pool.Health(ctx, 5*time.Second); err != nil && ctx.Err() == nil {
							logger.Warn("database health check failed", zap.Error(err))
						}
					}
				}
			},
			StopFn: pool.Close,
		})
		return postgres.NewSaveRepository(pool.DB()), nil
	case "redis":
		store := redis.NewStore(cfg.Redis, logger)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		lc.Add("redis", &server.FuncService{
			StartFn: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			StopFn: func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing redis client", zap.Error(err))
				}
			},
		})
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// loadPlayer resumes slot from store, or rolls a new character when slot
// is empty. It returns the player and where play begins.
func loadPlayer(ctx context.Context, store save.Store, cat *content.Catalog, d *dice.Service, game config.GameConfig, slot, name, race string) (*entity.Player, world.Coordinate, error) {
	if slot != "" {
		doc, err := store.Load(ctx, slot)
		if err != nil {
			return nil, world.Coordinate{}, err
		}
		return save.Restore(doc, cat, cat)
	}

	if name == "" {
		return nil, world.Coordinate{}, errors.New("a new character needs -name")
	}
	creator, err := character.NewCreator(cat.Details, d, cat, cat, character.DefaultKit)
	if err != nil {
		return nil, world.Coordinate{}, err
	}
	if race != "" {
		if err := creator.SelectRace(race); err != nil {
			return nil, world.Coordinate{}, err
		}
	}
	p, err := creator.Build(name)
	if err != nil {
		return nil, world.Coordinate{}, err
	}
	return p, world.Coordinate{X: game.StartX, Y: game.StartY}, nil
}

func fatal(logger *zap.Logger, msg string, err error) {
	observability.LogFailure(logger, msg, err)
	_ = logger.Sync()
	os.Exit(1)
}
