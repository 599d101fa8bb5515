package view

import (
	"context"
	"taskClient/internal/models/task"
	"taskClient/internal/models/user"

	"github.com/stretchr/testify/mock"
)

// MockTaskService - мок клиента задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTasks(ctx context.Context, username string) ([]task.Task, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, draft task.Task) (task.Task, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, full task.Task) (task.Task, error) {
	args := m.Called(ctx, id, full)
	if fn, ok := args.Get(0).(func(context.Context, int64, task.Task) task.Task); ok {
		return fn(ctx, id, full), args.Error(1)
	}
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockAuth - мок клиента авторизации
type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Login(ctx context.Context, username, password string) (user.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(user.Session), args.Error(1)
}

func (m *MockAuth) Register(ctx context.Context, username, password string) (user.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(user.Session), args.Error(1)
}

func (m *MockAuth) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuth) GetProfile(ctx context.Context) (user.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.Profile), args.Error(1)
}

func (m *MockAuth) UpdateProfile(ctx context.Context, profile user.Profile) (user.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(user.Profile), args.Error(1)
}

var (
	_ TaskService    = (*MockTaskService)(nil)
	_ Authenticator  = (*MockAuth)(nil)
	_ ProfileService = (*MockAuth)(nil)
)

type fakeSession struct {
	username string
}

func (f fakeSession) IsAuthenticated(ctx context.Context) bool {
	return f.username != ""
}

func (f fakeSession) CurrentUsername(ctx context.Context) (string, bool) {
	return f.username, f.username != ""
}
