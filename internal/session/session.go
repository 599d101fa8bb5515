package session

import (
	"context"
	"errors"
	"fmt"
	"taskClient/internal/logger"
	"taskClient/internal/models/user"

	"go.uber.org/zap"
)

const (
	TokenKey    = "token"
	UsernameKey = "username"
)

var ErrEmptySession = errors.New("token и username должны быть заданы вместе")

// Storage постоянное key/value хранилище клиента.
// SetMany обязан записывать все пары атомарно.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Store struct {
	storage Storage
}

func New(storage Storage) *Store {
	return &Store{storage: storage}
}

func (s *Store) SetSession(ctx context.Context, token, username string) error {
	if token == "" || username == "" {
		return ErrEmptySession
	}

	err := s.storage.SetMany(ctx, map[string]string{
		TokenKey:    token,
		UsernameKey: username,
	})
	if err != nil {
		logger.Error("Session: Не удалось сохранить сессию", err)
		return fmt.Errorf("сохранение сессии: %w", err)
	}

	logger.Info("Session: Сессия сохранена", zap.String("username", username))
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.storage.Delete(ctx, TokenKey, UsernameKey); err != nil {
		logger.Error("Session: Не удалось очистить сессию", err)
		return fmt.Errorf("очистка сессии: %w", err)
	}
	logger.Info("Session: Сессия очищена")
	return nil
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.CurrentToken(ctx)
	return ok
}

func (s *Store) CurrentToken(ctx context.Context) (string, bool) {
	return s.get(ctx, TokenKey)
}

func (s *Store) CurrentUsername(ctx context.Context) (string, bool) {
	return s.get(ctx, UsernameKey)
}

// Current возвращает обе части сессии одним вызовом
func (s *Store) Current(ctx context.Context) user.Session {
	token, _ := s.CurrentToken(ctx)
	username, _ := s.CurrentUsername(ctx)
	return user.Session{Token: token, Username: username}
}

func (s *Store) Close() error {
	return s.storage.Close()
}

// ошибка чтения считается отсутствием значения
func (s *Store) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		logger.Warn("Session: Ошибка чтения хранилища", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
