package view

import (
	"context"
	"sync"
	"taskClient/internal/logger"

	"go.uber.org/zap"
)

// AvatarState аватар, общий для профиля и шапки списка задач
type AvatarState struct {
	mtx sync.RWMutex
	url string
}

func NewAvatarState() *AvatarState {
	return &AvatarState{}
}

func (a *AvatarState) URL() string {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.url
}

func (a *AvatarState) Set(url string) {
	a.mtx.Lock()
	a.url = url
	a.mtx.Unlock()
}

// Seed один раз подтягивает аватар при старте, если сессия есть. Ошибки игнорируются.
func (a *AvatarState) Seed(ctx context.Context, session SessionReader, profiles ProfileService) {
	if !session.IsAuthenticated(ctx) {
		return
	}
	profile, err := profiles.GetProfile(ctx)
	if err != nil {
		logger.Warn("View: Не удалось получить аватар", zap.Error(err))
		return
	}
	a.Set(profile.AvatarURL)
}
