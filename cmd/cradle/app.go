package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/cradle/internal/api"
	"github.com/terraincognita07/cradle/internal/config"
	"github.com/terraincognita07/cradle/internal/db"
	"github.com/terraincognita07/cradle/internal/i18n"
	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/metrics"
	"github.com/terraincognita07/cradle/internal/session"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// appOptions wires every component except the configuration, which the
// caller supplies.
func appOptions() fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Provide(
			newLogger,
			newDatabase,
			db.NewRepositories,
			newRegistry,
			newMetrics,
			newMailer,
			newSessionStore,
			newI18nManager,
			newHandler,
			newFiberApp,
		),
		fx.Invoke(startServer),
	)
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

func newDatabase(lc fx.Lifecycle, cfg config.Config) (*gorm.DB, error) {
	database, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return database, nil
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.New(registry)
}

func newMailer(cfg config.Config, logger *slog.Logger) (mail.Mailer, error) {
	return mail.New(context.Background(), mail.Config{
		Region:    cfg.AWSRegion,
		FromEmail: cfg.SESFromEmail,
		FromName:  cfg.SESFromName,
	}, logger)
}

// newSessionStore prefers Redis when REDIS_URL is set and falls back to
// signed cookies.
func newSessionStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (session.Store, error) {
	if cfg.RedisURL == "" {
		logger.Info("session store: signed cookie")
		return session.NewCookieStore([]byte(cfg.SecretKey)), nil
	}

	options, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(options)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	logger.Info("session store: redis", "addr", options.Addr)
	return session.NewRedisStore(client), nil
}

func newI18nManager(cfg config.Config) (*i18n.Manager, error) {
	manager, err := i18n.NewManager(cfg.DefaultLanguage, cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}
	return manager, nil
}

type handlerParams struct {
	fx.In

	Config       config.Config
	Repositories *db.Repositories
	Sessions     session.Store
	I18n         *i18n.Manager
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Mailer       mail.Mailer
}

func newHandler(params handlerParams) (*api.Handler, error) {
	handler, err := api.NewHandler(api.Config{
		Repositories: params.Repositories,
		Sessions:     params.Sessions,
		I18n:         params.I18n,
		TemplatesDir: params.Config.TemplatesDir,
		Location:     params.Config.Location,
		CookieSecure: params.Config.CookieSecure,
		Logger:       params.Logger,
		Metrics:      params.Metrics,
		Mailer:       params.Mailer,
		BaseURL:      params.Config.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}
	return handler, nil
}

func newFiberApp(cfg config.Config, handler *api.Handler, registry *prometheus.Registry, appMetrics *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Cradle",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(appMetrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(api.CSRFMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", cfg.StaticDir)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return app
}

func startServer(lc fx.Lifecycle, app *fiber.App, cfg config.Config, logger *slog.Logger) {
	time.Local = cfg.Location

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("cradle listening",
					"addr", "http://0.0.0.0:"+cfg.Port,
					"postgres", db.IsPostgresURL(cfg.DatabaseURL),
					"tz", cfg.Location.String(),
				)
				if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("server exited", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping http server")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	})
}
