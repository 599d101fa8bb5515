package app

import (
	"context"
	"fmt"
	"net/http"
	"taskClient/internal/client"
	"taskClient/internal/config"
	"taskClient/internal/logger"
	"taskClient/internal/session"
	"taskClient/internal/session/inmemory"
	"taskClient/internal/session/sqlite"
	"taskClient/internal/view"
	"taskClient/internal/worker"
	"time"

	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	session   *session.Store
	http      *http.Client
	auth      *client.AuthClient
	tasks     *client.TaskClient
	guard     *view.Guard
	avatar    *view.AvatarState
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init собирает логгер, хранилище сессии, клиенты и общее состояние экранов
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	storage, err := newStorage(a.config.Session)
	if err != nil {
		return fmt.Errorf("хранилище сессии: %w", err)
	}
	a.session = session.New(storage)
	a.shutdowns = append(a.shutdowns, func() {
		if err := a.session.Close(); err != nil {
			logger.Warn("App: Ошибка закрытия хранилища сессии", zap.Error(err))
		}
	})

	a.http = client.NewHTTPClient()
	a.auth = client.NewAuthClient(a.config.Auth.BaseURL, a.http, a.session)
	a.tasks = client.NewTaskClient(a.config.Tasks.BaseURL, a.http, a.session)
	a.guard = view.NewGuard(a.session)
	a.avatar = view.NewAvatarState()

	logger.Info("App: Клиент инициализирован",
		zap.String("auth", a.config.Auth.BaseURL),
		zap.String("tasks", a.config.Tasks.BaseURL),
		zap.String("session_backend", a.config.Session.Backend))
	return nil
}

func newStorage(cfg config.SessionConfig) (session.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return inmemory.NewStorage(), nil
	case "sqlite", "":
		storage, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("неизвестный backend %q", cfg.Backend)
	}
}

// SeedAvatar один запрос профиля при старте, если сессия есть
func (a *App) SeedAvatar(ctx context.Context) {
	a.avatar.Seed(ctx, a.session, a.auth)
}

func (a *App) Session() *session.Store {
	return a.session
}

func (a *App) Guard() *view.Guard {
	return a.guard
}

func (a *App) Auth() *client.AuthClient {
	return a.auth
}

func (a *App) LoginView() *view.LoginView {
	return view.NewLoginView(a.auth)
}

func (a *App) RegisterView() *view.RegisterView {
	return view.NewRegisterView(a.auth)
}

func (a *App) ProfileView() *view.ProfileView {
	return view.NewProfileView(a.auth, a.avatar)
}

// TaskListView экран задач со временем в поясе часов
func (a *App) TaskListView() (*view.TaskListView, error) {
	v := view.NewTaskListView(a.tasks, a.session, a.avatar)
	if zone := a.config.Clock.Location; zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("загрузка часового пояса %q: %w", zone, err)
		}
		v.SetLocation(loc)
	}
	return v, nil
}

func (a *App) Clock(publish func(string)) (*worker.Clock, error) {
	return worker.NewClock(a.config.Clock.Interval, a.config.Clock.Location, publish)
}

// Shutdown вызывает функции завершения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
