// Package view модели экранов клиента: вход, регистрация, профиль и список задач.
// Экран хранит своё состояние и меняет его только по результату вызова сервиса.
package view

import (
	"context"
	"taskClient/internal/models/task"
	"taskClient/internal/models/user"
)

const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUsernameTaken      = "Username already exists"
	MsgPasswordsMismatch  = "Passwords do not match"
	MsgProfileLoadFailed  = "Failed to load profile"
	MsgProfileSaveFailed  = "Failed to update profile"
	MsgProfileUpdated     = "Profile updated!"
	MsgTaskAdded          = "Task added successfully!"
	MsgTitleRequired      = "Task title is required."
	MsgCreateFailed       = "Error creating task. Please try again."
	MsgNoTasks            = "No tasks yet. Add your first task!"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (user.Session, error)
	Register(ctx context.Context, username, password string) (user.Session, error)
	Logout(ctx context.Context) error
}

type ProfileService interface {
	GetProfile(ctx context.Context) (user.Profile, error)
	UpdateProfile(ctx context.Context, profile user.Profile) (user.Profile, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, username string) ([]task.Task, error)
	CreateTask(ctx context.Context, draft task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, id int64, full task.Task) (task.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type SessionReader interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUsername(ctx context.Context) (string, bool)
}
