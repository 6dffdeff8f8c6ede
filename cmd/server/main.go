package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/foodshare/platform/docs" // swagger docs

	"github.com/foodshare/platform/internal/api"
	"github.com/foodshare/platform/internal/api/handler"
	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/ports"
	"github.com/foodshare/platform/internal/core/service"
	"github.com/foodshare/platform/internal/core/session"
	"github.com/foodshare/platform/internal/infrastructure/db/memory"
	"github.com/foodshare/platform/internal/infrastructure/db/mongo"
	"github.com/foodshare/platform/internal/infrastructure/db/redis"
	"github.com/foodshare/platform/internal/infrastructure/queue"
	"github.com/foodshare/platform/internal/pkg/config"
	"github.com/foodshare/platform/pkg/logger"
)

// backends are the storage adapters selected by CACHE_DRIVER.
type backends struct {
	cache    ports.SessionCache
	guard    ports.SubmissionGuard
	accounts ports.AccountRepository
	checks   []handler.DependencyCheck
	close    func(context.Context)
}

// @title FoodShare API
// @version 1.0
// @description Session and food listing API of the FoodShare donation platform.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "foodshare",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.CacheDriver).Msg("backend init failed")
	}

	cat := catalog.New()

	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, queue.NewLogNotifier(logger.Component("notifier")), logger.Component("dispatcher"))
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	dispatcher.Start(dispatchCtx)

	auth := service.NewAuthService(b.accounts, service.AuthOptions{
		Mode:          service.AuthMode(cfg.Auth.Mode),
		AvatarBaseURL: cfg.Auth.AvatarBaseURL,
	})
	gate := session.NewGate(auth, b.cache, b.guard, logger.Component("session_gate"), session.WithDelay(cfg.Delays.Login))
	store := session.NewStore(b.cache, b.guard, logger.Component("session_store"))
	donations := service.NewDonationService(cat, b.guard, dispatcher, service.DonationOptions{
		PostDelay:  cfg.Delays.Post,
		ClaimDelay: cfg.Delays.Claim,
	}, logger.Component("donations"))

	e := api.NewRouter(api.Deps{
		Log:       log,
		Store:     store,
		Gate:      gate,
		Donations: donations,
		Catalog:   cat,
		Codec:     middleware.NewTokenCodec(cfg.JWTSecret, cfg.Session.TTL),
		Cookie: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			TTL:        cfg.Session.TTL,
		},
		Checks: b.checks,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.CacheDriver).Str("auth_mode", cfg.Auth.Mode).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	stopDispatch()
	dispatcher.Wait()
	b.close(shutdownCtx)
	log.Info().Msg("server stopped")
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	if cfg.UsesMemory() {
		log.Warn().Msg("using in-memory session cache and account directory; state is lost on restart")
		return &backends{
			cache:    memory.NewSessionCache(),
			guard:    memory.NewSubmissionGuard(),
			accounts: memory.NewAccountRepository(),
			close:    func(context.Context) {},
		}, nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return nil, err
	}
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  cfg.Mongo.AppName,
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	accounts := mongo.NewAccountRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		_ = rdb.Close()
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &backends{
		cache:    redis.NewSessionCache(rdb, cfg.Session.TTL),
		guard:    redis.NewSubmissionGuard(rdb, cfg.Delays.Longest()),
		accounts: accounts,
		checks: []handler.DependencyCheck{
			{Name: "redis", Ping: redis.Pinger(rdb)},
			{Name: "mongodb", Ping: mongo.Pinger(client)},
		},
		close: func(ctx context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		},
	}, nil
}
