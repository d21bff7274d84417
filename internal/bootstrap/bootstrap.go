// Package bootstrap wires storage, notifications, metrics and the match
// usecase from config. Both binaries share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go-matching-backend/config"
	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"
	"go-matching-backend/internal/metrics"
	"go-matching-backend/internal/notify"
	"go-matching-backend/internal/repository/memory"
	"go-matching-backend/internal/repository/postgres"
	"go-matching-backend/internal/usecase"
	"go-matching-backend/migrations"
	"go-matching-backend/pkg/database"
	"go-matching-backend/pkg/logger"
	"go-matching-backend/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App holds the wired dependencies.
type App struct {
	MatchUC  domain.MatchUsecase
	HealthUC usecase.HealthUsecase
	Registry *prometheus.Registry
	Weights  matching.Weights

	pool     *pgxpool.Pool
	presence *notify.PresenceSync
	redisOn  bool
}

// Close releases connections. Safe to call once.
func (a *App) Close() {
	if a.presence != nil {
		a.presence.Stop()
	}
	if a.redisOn {
		_ = redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// Build connects to the configured backends and wires the usecases. Redis
// is optional; a missing or unreachable Redis only disables match events.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}
	checks := map[string]usecase.HealthCheck{}

	profiles, matches, err := app.storage(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if app.pool != nil {
		checks["database"] = app.pool.Ping
	}

	var sink domain.NotificationSink = notify.NopSink{}
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warnw("Redis unavailable, match events are dropped", "error", err)
		}
	} else {
		app.redisOn = true
		presence := notify.NewPresence()
		app.presence = notify.NewPresenceSync(redis.Client(), presence, cfg.PresenceKey, cfg.PresenceChannel)
		if err := app.presence.Start(ctx); err != nil {
			logger.Log.Warnw("Presence sync unavailable, events report recipients offline", "error", err)
		}
		sink = notify.NewRedisSink(redis.Client(), cfg.NotifyChannel, presence)
		checks["redis"] = redis.HealthCheck
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New()
	if err := m.Register(app.Registry); err != nil {
		app.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app.Weights, err = matching.LoadWeights(cfg.MatchWeightsFile)
	if err != nil {
		logger.Log.Warnw("Falling back to default weights", "error", err)
	}
	orchestrator := matching.NewOrchestrator(matching.NewEngine(app.Weights), cfg.MatchWorkers)

	app.MatchUC = usecase.NewMatchUsecase(profiles, matches, orchestrator, sink, m, usecase.MatchConfig{
		RunTimeout:        cfg.MatchRunTimeout,
		UpsertConcurrency: cfg.MatchUpsertConcurrency,
		MaxPageSize:       cfg.MatchMaxPageSize,
	})
	app.HealthUC = usecase.NewHealthUsecase(checks)
	return app, nil
}

func (a *App) storage(ctx context.Context, cfg *config.Config) (domain.ProfileSource, domain.MatchRepository, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Log.Warnw("Using in-memory storage, matches are lost on restart")
		src := memory.NewProfileSource()
		if cfg.ProfilesFile != "" {
			if err := src.LoadFile(cfg.ProfilesFile); err != nil {
				return nil, nil, err
			}
		}
		return src, memory.NewMatchStore(), nil
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	a.pool = pool

	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	return postgres.NewProfileSource(pool), postgres.NewMatchRepository(pool), nil
}
