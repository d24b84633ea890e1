package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/api/http/middleware"
	"github.com/Alijeyrad/glycare/internal/api/http/router"
	"github.com/Alijeyrad/glycare/internal/session"
	"github.com/Alijeyrad/glycare/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Router    *router.Router
	Redis     *redis.Client           `optional:"true"`
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := New(p.Cfg, p.Router, p.Redis, p.OTel != nil)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					p.Logger.Error("HTTP server error", "error", err)
				}
			}()
			p.Logger.Info("HTTP server listening", "addr", addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// New assembles the app without starting it. Tests call it directly.
func New(cfg *config.Config, r *router.Router, rdb *redis.Client, traced bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	app := fiber.New(fiber.Config{
		AppName:      cfg.Observability.ServiceName,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	if traced {
		app.Use(observability.FiberMiddleware())
	}
	configureGlobalMiddleware(app, cfg, rdb)

	r.Register(app)
	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
	}
	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.CORS.AllowOrigins,
			AllowHeaders: []string{
				fiber.HeaderContentType,
				middleware.HeaderRequestID,
				session.HeaderRole,
				session.HeaderActorID,
			},
		}))
	}
	if cfg.RateLimit.Enabled {
		app.Use(middleware.NewLimiter(cfg.RateLimit.RequestsPerMinute, rdb))
	}

	if cfg.Server.Environment == "development" {
		app.Use(logger.New(logger.Config{
			Format: "${ip} - [${time}] [req_id=${respHeader:X-Request-Id}] ${method} ${url} ${status}\n",
		}))
	}
}
