package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/agenthands/travelmate/internal/config"
	"github.com/agenthands/travelmate/internal/core"
	"github.com/agenthands/travelmate/internal/core/extraction"
	"github.com/agenthands/travelmate/internal/core/gate"
	"github.com/agenthands/travelmate/internal/core/itinerary"
	"github.com/agenthands/travelmate/internal/core/merge"
	"github.com/agenthands/travelmate/internal/core/rank"
	"github.com/agenthands/travelmate/internal/driver"
	"github.com/agenthands/travelmate/internal/llm"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/registry"
	"github.com/agenthands/travelmate/internal/sources"
)

// App is a wired Server plus the resources it holds open.
type App struct {
	Server  *Server
	closers []func(context.Context) error
}

// Build assembles every component named in cfg.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	app := &App{}

	store, err := OpenStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, store.Close)

	reg, closeReg, err := OpenRegistry(ctx, cfg.Registry)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	if closeReg != nil {
		app.closers = append(app.closers, closeReg)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM, log)
	if err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	srcOpts := sources.Options{
		Timeout:            cfg.Sources.Timeout(),
		RequestsPerSecond:  cfg.Sources.RequestsPerSecond,
		BreakerMaxFailures: cfg.Sources.BreakerMaxFailures,
		Logger:             log,
	}
	maps := sources.NewMapsClient(cfg.Sources.MapsURL, cfg.Sources.MapsAPIKey,
		cfg.Sources.SearchPrefix, cfg.Sources.RadiusMeters, srcOpts)
	wiki := sources.NewWikipediaClient(cfg.Sources.WikipediaURL, srcOpts)
	gatherer := sources.NewGatherer(maps, wiki, cfg.Sources.PlacesPerCity, log)

	extractor := extraction.NewExtractor(llmClient, gatherer, cfg.Prompts.Extraction, log)
	g := gate.NewGate(extractor, merge.NewMerger(log), log)
	ranker := rank.NewLLMRanker(llmClient, cfg.Prompts.Ranking, log)
	planner := itinerary.NewPlanner(llmClient, cfg.Prompts.Itinerary, log)

	tm := core.NewTravelMate(store, reg, g, maps, ranker, planner, cfg.Retrieval.MaxHops, log)
	app.Server = NewServer(tm, cfg.Server.AllowOrigins, log)
	return app, nil
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore opens the graph store selected by cfg.Backend.
func OpenStore(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (driver.GraphStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Backend {
	case "memory":
		return driver.NewMemoryStore(), nil

	case "badger":
		s, err := driver.NewBadgerStore(cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return s, nil

	case "neo4j", "memgraph":
		d, err := driver.NewBoltDriver(driver.BoltOptions{
			URI:         cfg.URI,
			User:        cfg.User,
			Password:    cfg.Password,
			Database:    cfg.Database,
			MaxPoolSize: cfg.MaxPoolSize,
			Timeout:     cfg.Timeout(),
		}, log)
		if err != nil {
			return nil, err
		}
		dialect := driver.DialectNeo4j
		if cfg.Backend == "memgraph" {
			dialect = driver.DialectMemgraph
		}
		s := driver.NewBoltStore(d, dialect, log)
		if err := s.BuildIndices(ctx); err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

// OpenRegistry opens the known-destinations registry. The returned closer
// may be nil.
func OpenRegistry(ctx context.Context, cfg config.RegistryConfig) (registry.Registry, func(context.Context) error, error) {
	switch cfg.Backend {
	case "file":
		return registry.NewFileRegistry(cfg.Path), nil, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		r := registry.NewRedisRegistry(client, cfg.RedisKey)
		return r, func(context.Context) error { return r.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported registry backend: %s", cfg.Backend)
	}
}
