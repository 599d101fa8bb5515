package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"taskClient/internal/config"
	"taskClient/internal/logger"
	"taskClient/internal/middleware"
	"taskClient/internal/stub/authsvc"
	"taskClient/internal/stub/tasksvc"
	"taskClient/internal/stub/tasksvc/inmemory"
	"taskClient/internal/stub/tasksvc/postgres"
	"taskClient/internal/stub/token"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "path to config file")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Development, cfg.Logging.Level); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	issuer, err := token.NewIssuer(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)
	if err != nil {
		return fmt.Errorf("выпуск токенов: %w", err)
	}

	repo, closeRepo, err := newTaskRepository(ctx, cfg.Stub)
	if err != nil {
		return err
	}
	defer closeRepo()

	authHandler := authsvc.NewHandler(authsvc.NewService(issuer))
	taskHandler := tasksvc.NewTaskHandler(tasksvc.NewTaskService(repo))

	authRouter := newRouter(cfg.Stub.RateLimit)
	authRouter.Mount("/auth", authHandler.Routes())

	tasksRouter := newRouter(cfg.Stub.RateLimit)
	tasksRouter.Mount("/tasks", taskHandler.Routes(issuer))

	servers := []*http.Server{
		{Addr: cfg.Stub.AuthAddr, Handler: authRouter, ReadHeaderTimeout: 5 * time.Second},
		{Addr: cfg.Stub.TasksAddr, Handler: tasksRouter, ReadHeaderTimeout: 5 * time.Second},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Server started", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("сервер %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("остановка %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func newRouter(rateLimit int) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimit(rateLimit))

	return r
}

// newTaskRepository хранилище задач заглушки: в памяти или PostgreSQL с миграцией
func newTaskRepository(ctx context.Context, cfg config.StubConfig) (tasksvc.TaskRepository, func(), error) {
	switch cfg.Repository.Type {
	case "inmemory", "":
		return inmemory.NewTaskStorage(), func() {}, nil
	case "postgres":
		storage, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("подключение к базе: %w", err)
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, fmt.Errorf("миграция: %w", err)
		}
		return storage, storage.Close, nil
	default:
		return nil, nil, fmt.Errorf("неизвестный тип репозитория %q", cfg.Repository.Type)
	}
}
