package client

import (
	"context"
	"fmt"
	"net/http"
	"taskClient/internal/logger"
	"taskClient/internal/models/user"

	"go.uber.org/zap"
)

// SessionStore то, что клиент авторизации делает с локальной сессией
type SessionStore interface {
	TokenSource
	SetSession(ctx context.Context, token, username string) error
	ClearSession(ctx context.Context) error
}

type AuthClient struct {
	api     *api
	session SessionStore
}

func NewAuthClient(baseURL string, httpClient *http.Client, session SessionStore) *AuthClient {
	return &AuthClient{
		api:     newAPI(baseURL, httpClient, session),
		session: session,
	}
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (user.Session, error) {
	return c.authenticate(ctx, "/login", username, password, ErrInvalidCredentials)
}

func (c *AuthClient) Register(ctx context.Context, username, password string) (user.Session, error) {
	return c.authenticate(ctx, "/register", username, password, ErrUsernameTaken)
}

// authenticate единственный путь записи сессии
func (c *AuthClient) authenticate(ctx context.Context, path, username, password string, onFailure *Error) (user.Session, error) {
	var resp user.AuthResponse
	err := c.api.do(ctx, http.MethodPost, path, user.Credentials{Username: username, Password: password}, &resp)
	if err != nil {
		logger.Warn("Auth: Отказ сервиса авторизации", zap.String("path", path), zap.String("username", username), zap.Error(err))
		return user.Session{}, classifyAs(err, onFailure)
	}

	if resp.Token == "" {
		return user.Session{}, newError(ErrTransport, http.StatusOK, "empty token", nil)
	}
	if resp.Username == "" {
		resp.Username = username
	}

	if err := c.session.SetSession(ctx, resp.Token, resp.Username); err != nil {
		return user.Session{}, fmt.Errorf("сохранение сессии: %w", err)
	}

	logger.Info("Auth: Пользователь вошёл", zap.String("path", path), zap.String("username", resp.Username))
	return user.Session{Token: resp.Token, Username: resp.Username}, nil
}

func (c *AuthClient) GetProfile(ctx context.Context) (user.Profile, error) {
	var profile user.Profile
	if err := c.api.do(ctx, http.MethodGet, "/profile", nil, &profile); err != nil {
		return user.Profile{}, classify(err)
	}
	return profile, nil
}

// UpdateProfile полная замена профиля. Сессию не трогает.
func (c *AuthClient) UpdateProfile(ctx context.Context, profile user.Profile) (user.Profile, error) {
	var updated user.Profile
	if err := c.api.do(ctx, http.MethodPut, "/profile", profile, &updated); err != nil {
		return user.Profile{}, classify(err)
	}
	return updated, nil
}

// Logout только локальная очистка, без запроса к сервису
func (c *AuthClient) Logout(ctx context.Context) error {
	return c.session.ClearSession(ctx)
}
