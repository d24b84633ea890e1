package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/internal/store"
	"github.com/Alijeyrad/glycare/pkg/authorize"
	"github.com/Alijeyrad/glycare/pkg/database"
	"github.com/Alijeyrad/glycare/pkg/logs"
	"github.com/Alijeyrad/glycare/pkg/observability"
	redispkg "github.com/Alijeyrad/glycare/pkg/redis"
)

// InfraModule provides all infrastructure dependencies. Redis, NATS,
// telemetry and the SQL database are optional: their providers return nil
// when the matching config section is empty or disabled.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideTables),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvidePublisher),
	fx.Provide(ProvideOTel),
)

func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := logs.New(cfg)
	slog.SetDefault(logger)
	return logger
}

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	dbCfg, ok := database.FromCentralConfig(cfg.Store)
	if !ok {
		logger.Info("using in-memory store")
		return nil, nil
	}

	db, err := database.Open(context.Background(), dbCfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("closing database connection")
			return db.Close()
		},
	})
	return db, nil
}

// ProvideTables migrates the SQL schema before handing out tables, so a
// fresh database is usable without running `system migrate` first.
func ProvideTables(cfg *config.Config, db *database.DB, logger *slog.Logger) (*store.Tables, error) {
	if db == nil {
		return store.NewMemoryTables(), nil
	}
	if err := store.Migrate(context.Background(), db, logger); err != nil {
		return nil, err
	}
	logger.Info("using SQL store", "driver", cfg.Store.Driver)
	return store.NewSQLTables(db), nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	rdb, err := redispkg.NewRedis(context.Background(), redispkg.FromCentralConfig(cfg.Redis))
	if errors.Is(err, redispkg.ErrDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(logger *slog.Logger) (authorize.IAuthorization, error) {
	return authorize.NewDefault(context.Background(), logger)
}

func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name(cfg.Observability.ServiceName))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

// ProvidePublisher returns a nil Publisher when NATS is not configured,
// which turns record events off.
func ProvidePublisher(nc *nats.Conn) clinical.Publisher {
	if nc == nil {
		return nil
	}
	return nc
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
