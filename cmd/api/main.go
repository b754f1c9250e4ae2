package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"


	"github.com/HapppyEnd/api-server/internal/api"
	"github.com/HapppyEnd/api-server/internal/api/handler"
	"github.com/HapppyEnd/api-server/internal/core/ports"
	"github.com/HapppyEnd/api-server/internal/core/service"
	mongostore "github.com/HapppyEnd/api-server/internal/infrastructure/db/mongo"
	pgstore "github.com/HapppyEnd/api-server/internal/infrastructure/db/postgres"
	redisstore "github.com/HapppyEnd/api-server/internal/infrastructure/db/redis"
	"github.com/HapppyEnd/api-server/internal/pkg/config"
	"github.com/HapppyEnd/api-server/internal/security/password"
	"github.com/HapppyEnd/api-server/internal/security/token"
	"github.com/HapppyEnd/api-server/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Patient Records API
// @version                     1.0
// @description                 Bearer-token login and role-gated access to patient records.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "api-server",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

type stores struct {
	users    ports.UserRepository
	patients ports.PatientRepository
	checks   []handler.DependencyCheck
	close    func()
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// Security primitives fail fast on bad settings.
	tokenCfg, err := token.NewConfig(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL(), cfg.Auth.JWTIssuer)
	if err != nil {
		return err
	}
	hasher, err := password.NewHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var logins ports.LoginTracker
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, last-login tracking disabled")
	} else {
		defer rdb.Close()
		logins = redisstore.NewLoginTracker(rdb)
		st.checks = append(st.checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	credentials, err := service.NewCredentialStore(st.users, hasher)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(
		st.users, credentials, hasher, token.NewIssuer(tokenCfg), logins,
		log.With().Str("component", "auth").Logger(),
	)
	patientService := service.NewPatientService(st.patients, log.With().Str("component", "patients").Logger())

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Logins:         authService,
		Patients:       patientService,
		Guard:          service.NewAccessGuard(token.NewVerifier(tokenCfg)),
		Checks:         st.checks,
		Logger:         log,
		ForbiddenAs403: cfg.Auth.ForbiddenAs403,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("jwt_algorithm", tokenCfg.Algorithm()).
			Dur("token_ttl", tokenCfg.TTL()).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			users:    pgstore.NewUserRepository(pool),
			patients: pgstore.NewPatientRepository(pool),
			checks:   []handler.DependencyCheck{{Name: "postgres", Ping: pool.Ping}},
			close:    pool.Close,
		}, nil

	default:
		store, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(store.DB)
		if err := users.EnsureIndexes(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return &stores{
			users:    users,
			patients: mongostore.NewPatientRepository(store.DB),
			checks:   []handler.DependencyCheck{{Name: "mongodb", Ping: store.Ping}},
			close:    store.Close,
		}, nil
	}
}
