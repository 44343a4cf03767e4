package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/ayush/employee-admin/internal/auth"
	"github.com/ayush/employee-admin/internal/config"
	"github.com/ayush/employee-admin/internal/employees"
	"github.com/ayush/employee-admin/internal/images"
	"github.com/ayush/employee-admin/internal/logging"
	"github.com/ayush/employee-admin/internal/server"
	"github.com/ayush/employee-admin/internal/store"
)

const appname = "employee-admin"

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsDevelopment() {
		displayAppname(appname)
	}
	ctx := logger.WithContext(context.Background())

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(ctx)
	mongoDB := mongoClient.Database(cfg.MongoDB)
	employeeStore := store.NewMongoStore(mongoDB)
	if err := employeeStore.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("mongo indexes")
	}

	// ── Credentials ──────────────────────────────────────────
	creds, closeCreds, err := store.OpenCredentials(ctx, cfg.CredentialBackend, mongoDB, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.CredentialBackend).Msg("credential store")
	}
	defer closeCreds()
	if cfg.CredentialBackend == "memory" {
		if err := store.SetPassword(ctx, creds, cfg.SeedUsername, cfg.SeedPassword); err != nil {
			logger.Fatal().Err(err).Msg("seed credential")
		}
		logger.Warn().Str("username", cfg.SeedUsername).Msg("memory credential store seeded; logins do not survive a restart")
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// ── Images ───────────────────────────────────────────────
	imageStorage, err := openImageStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.ImageBackend).Msg("image storage")
	}
	imageSvc := images.NewService(imageStorage)

	// ── Router ───────────────────────────────────────────────
	gate := auth.NewGate(creds, sessions, auth.NewTokenSigner(cfg.SessionSecret), cfg.SessionTTL)
	router := server.NewRouter(server.Options{
		Logger:         logger,
		Gate:           gate,
		Cookies:        auth.NewCookieHelper(cfg.CookieSecure, cfg.SessionTTL),
		Employees:      employees.NewService(employeeStore, imageSvc),
		Images:         imageSvc,
		LoginPath:      cfg.LoginPath,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		StaticDir:      cfg.StaticDir,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	waitForSignal()

	logger.Info().Msg("shutting down")
	if err := shutdown(srv); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func openImageStorage(ctx context.Context, cfg *config.Config) (images.Storage, error) {
	if cfg.ImageBackend == "minio" {
		s, err := store.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	disk, err := store.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("dir", disk.Dir()).Msg("storing images on disk")
	return disk, nil
}

func waitForSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(name string) {
	myFigure := figure.NewFigure(name, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
