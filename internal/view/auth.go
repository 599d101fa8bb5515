package view

import (
	"context"
	"errors"
	"taskClient/internal/client"
)

type LoginView struct {
	Username string
	Password string
	Error    string

	auth Authenticator
}

func NewLoginView(auth Authenticator) *LoginView {
	return &LoginView{auth: auth}
}

// Submit при успехе возвращает маршрут списка задач
func (v *LoginView) Submit(ctx context.Context) (Route, bool) {
	v.Error = ""
	if _, err := v.auth.Login(ctx, v.Username, v.Password); err != nil {
		v.Error = failureMessage(err, MsgInvalidCredentials)
		return RouteLogin, false
	}
	return RouteTasks, true
}

type RegisterView struct {
	Username        string
	Password        string
	ConfirmPassword string
	Error           string

	auth Authenticator
}

func NewRegisterView(auth Authenticator) *RegisterView {
	return &RegisterView{auth: auth}
}

// Submit не отправляет запрос, если пароли не совпадают
func (v *RegisterView) Submit(ctx context.Context) (Route, bool) {
	v.Error = ""
	if v.Password != v.ConfirmPassword {
		v.Error = MsgPasswordsMismatch
		return RouteRegister, false
	}
	if _, err := v.auth.Register(ctx, v.Username, v.Password); err != nil {
		v.Error = failureMessage(err, MsgUsernameTaken)
		return RouteRegister, false
	}
	return RouteTasks, true
}

// failureMessage недоступность сервиса показывается как есть, остальное как fallback
func failureMessage(err error, fallback string) string {
	if errors.Is(err, client.ErrTransport) {
		return client.Message(err)
	}
	return fallback
}
