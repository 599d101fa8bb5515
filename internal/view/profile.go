package view

import (
	"context"
	"taskClient/internal/logger"
	"taskClient/internal/models/user"

	"go.uber.org/zap"
)

type ProfileView struct {
	Draft   user.Profile
	Loaded  bool
	Success string
	Error   string

	profiles ProfileService
	avatar   *AvatarState
}

func NewProfileView(profiles ProfileService, avatar *AvatarState) *ProfileView {
	return &ProfileView{profiles: profiles, avatar: avatar}
}

func (v *ProfileView) Load(ctx context.Context) error {
	v.Error = ""
	profile, err := v.profiles.GetProfile(ctx)
	if err != nil {
		logger.Warn("View: Профиль не загружен", zap.Error(err))
		v.Error = MsgProfileLoadFailed
		return err
	}
	v.Draft = profile
	v.Loaded = true
	v.avatar.Set(profile.AvatarURL)
	return nil
}

// Save отправляет черновик целиком. Сессия не меняется даже при смене имени.
func (v *ProfileView) Save(ctx context.Context) error {
	v.Success = ""
	v.Error = ""
	updated, err := v.profiles.UpdateProfile(ctx, v.Draft)
	if err != nil {
		logger.Warn("View: Профиль не сохранён", zap.Error(err))
		v.Error = MsgProfileSaveFailed
		return err
	}
	v.Draft = updated
	v.avatar.Set(updated.AvatarURL)
	v.Success = MsgProfileUpdated
	return nil
}
