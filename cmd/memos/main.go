// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gogetmemo/internal/memos/adapters/cache"
	"gogetmemo/internal/memos/adapters/gemini"
	memohttp "gogetmemo/internal/memos/adapters/http"
	memorepo "gogetmemo/internal/memos/adapters/postgres"
	"gogetmemo/internal/memos/app"
	"gogetmemo/internal/memos/config"
	"gogetmemo/internal/memos/metrics"
	portcache "gogetmemo/internal/memos/ports/cache"
	"gogetmemo/internal/memos/ports/services"
	"gogetmemo/pkg/db/postgres"
	"gogetmemo/pkg/logger"
	"gogetmemo/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MEMOS_LOGGER_MODE"
	EnvLoggerLevel = "MEMOS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrMigrateDB            = "failed to apply database migrations"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to initialize redis"
	ErrInitSummarizer       = "failed to initialize summarizer"
	ErrInitialLoad          = "initial memo load failed"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "memo service started"
	LogServiceShutdownDone = "memo service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogViewCacheDisabled   = "view cache disabled"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), "file://"+cfg.Postgres.MigrationsDir); err != nil {
			log.Error(ctx, ErrMigrateDB, zap.Error(err))
			exitCode = 1
			return
		}

		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		collector := metrics.NewCollector(config.ServiceName)

		var (
			redisCache  *cache.RedisCache
			viewCache   portcache.Cache
			invalidator services.ViewInvalidator = services.NopInvalidator{}
		)
		health := []memohttp.HealthCheck{database.Ping}
		if cfg.Redis.Enabled {
			redisCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			viewCache = redisCache
			invalidator = cache.NewViewInvalidator(redisCache, collector)
			health = append(health, redisCache.Ping)
		} else {
			log.Info(ctx, LogViewCacheDisabled)
		}

		log.Info(ctx, LogInitRepo)
		repoFactory := memorepo.NewRepositoryFactory(database.Pool(), invalidator, collector)
		memoRepo := repoFactory.MemoRepository()

		log.Info(ctx, LogInitServices)
		summarizer, err := gemini.NewSummarizer(ctx, cfg.Gemini, nil)
		if err != nil {
			log.Error(ctx, ErrInitSummarizer, zap.Error(err))
			closeStores(ctx, database, redisCache)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		controller := app.NewController(memoRepo)
		if err := controller.Load(ctx); err != nil {
			log.Error(ctx, ErrInitialLoad, zap.Error(err))
		}
		queries := app.NewMemoQueries(memoRepo, viewCache)
		summaryUseCase := app.NewSummaryUseCase(summarizer, collector)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			AppName:      config.ServiceName,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		memohttp.SetupRouter(server, memohttp.Dependencies{
			Reader:     queries,
			Writer:     controller,
			View:       controller,
			Summarizer: summaryUseCase,
			Health:     memohttp.CombineHealthChecks(health...),
			Metrics:    collector,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := server.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
				}
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
			func(ctx context.Context) error {
				if redisCache == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func closeStores(ctx context.Context, database *postgres.Database, redisCache *cache.RedisCache) {
	database.Close(ctx)
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logger.Log(ctx).Warn(ctx, LogClosingRedis, zap.Error(err))
		}
	}
}
