package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/gophboard-server/internal/api/http/context"
	"github.com/dtroode/gophboard-server/internal/api/http/router"
	httpServer "github.com/dtroode/gophboard-server/internal/api/http/server"
	"github.com/dtroode/gophboard-server/internal/config"
	"github.com/dtroode/gophboard-server/internal/events"
	"github.com/dtroode/gophboard-server/internal/events/rabbitmq"
	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/password"
	"github.com/dtroode/gophboard-server/internal/repository/postgres"
	"github.com/dtroode/gophboard-server/internal/server"
	"github.com/dtroode/gophboard-server/internal/service"
	"github.com/dtroode/gophboard-server/internal/storage/disk"
	storage "github.com/dtroode/gophboard-server/internal/storage/minio"
	"github.com/dtroode/gophboard-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	postRepo := postgres.NewPostRepository(db)
	fileRepo := postgres.NewFileRepository(db)

	attachments, err := newAttachmentStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize attachment storage", "error", err, "backend", cfg.Upload.Backend)
	}

	publisher, closePublisher, err := newEventPublisher(cfg.Events, logger)
	if err != nil {
		logger.Fatal("failed to initialize event publisher", "error", err)
	}
	defer closePublisher.Close()

	sessions := service.NewSessions(token.NewJWT(cfg.JWT.Secret), sessionRepo, userRepo, logger)
	authService := service.NewAuth(userRepo, password.NewBcrypt(cfg.Bcrypt.Cost), sessions, logger)
	boardService := service.NewBoard(postRepo, fileRepo, attachments, publisher, logger)

	r := router.New(authService, boardService, httpctx.NewManager(), router.Options{
		SecureCookie:   cfg.HTTP.EnableHTTPS,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}, logger)
	handler, err := r.Register()
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}

	srv := httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newAttachmentStorage(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	if cfg.Upload.Backend == config.BackendMinio {
		client, err := storage.NewFromConfig(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dir, err := disk.New(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newEventPublisher(cfg config.Events, logger *logger.Logger) (model.EventPublisher, io.Closer, error) {
	if cfg.URL == "" {
		return events.NewNoop(logger), nopCloser{}, nil
	}

	publisher, err := rabbitmq.NewPublisher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher, nil
}
