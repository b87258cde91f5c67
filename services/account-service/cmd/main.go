package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/userhub/userhub-api/services/account-service/internal/config"
	"github.com/userhub/userhub-api/services/account-service/internal/handler"
	"github.com/userhub/userhub-api/services/account-service/internal/policy"
	"github.com/userhub/userhub-api/services/account-service/internal/repository"
	"github.com/userhub/userhub-api/services/account-service/internal/token"
	"github.com/userhub/userhub-api/services/account-service/internal/usecase"
	"github.com/userhub/userhub-api/shared/auth"
	"github.com/userhub/userhub-api/shared/logger"
	"github.com/userhub/userhub-api/shared/mailer"
	"github.com/userhub/userhub-api/shared/registry"
	"github.com/userhub/userhub-api/shared/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("account-service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &log, db)
	profileRepo := repository.NewProfileMongoRepository(ctx, &log, db)
	sessionRepo := repository.NewSessionMongoRepository(db)
	transactor := repository.NewMongoTransactor(client)

	validate, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	mail, err := mailer.New(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	tokens := token.NewGenerator()
	passwordPolicy := policy.New()

	registrationUC := usecase.NewRegistrationUsecase(
		userRepo, profileRepo, transactor,
		tokens, passwordPolicy, validate, mail, &log,
		cfg.ActivationTokenTTL,
	)
	authUC := usecase.NewAuthUsecase(userRepo, sessionRepo, jwtAuth, cfg.Token)
	passwordResetUC := usecase.NewPasswordResetUsecase(
		userRepo, profileRepo, transactor,
		tokens, passwordPolicy, mail, &log,
		cfg.ResetTokenTTL,
	)

	h := handler.New(&log, registrationUC, authUC, passwordResetUC, jwtAuth, cfg.Token.AccessTokenSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	h.MountRoutes(r)

	if cfg.Consul.Enabled {
		deregister, err := registerWithConsul(cfg, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register with consul")
		}
		defer deregister()
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("account service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// registerWithConsul announces this instance to the local Consul agent and
// returns a deregistration callback for shutdown.
func registerWithConsul(cfg *config.Config, log *zerolog.Logger) (func(), error) {
	consul, err := registry.NewConsul(cfg.Consul.Address, log)
	if err != nil {
		return nil, err
	}

	_, portStr, err := net.SplitHostPort(cfg.HTTPAddr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	serviceID := cfg.ServiceName + "-" + portStr
	err = consul.Register(registry.Registration{
		Name:      cfg.ServiceName,
		ID:        serviceID,
		Address:   cfg.Consul.ServiceAddress,
		Port:      port,
		HealthURL: "http://" + net.JoinHostPort(cfg.Consul.ServiceAddress, portStr) + "/healthz",
	})
	if err != nil {
		return nil, err
	}

	return func() { consul.Deregister(serviceID) }, nil
}
