package tasksvc

import (
	"context"
	"errors"
	"taskClient/internal/models/task"
)

var ErrNotFound = errors.New("задача не найдена")

// TaskRepository хранилище задач. Create присваивает ID.
// ListByUsername возвращает задачи в порядке создания.
type TaskRepository interface {
	HealthCheck(ctx context.Context) error
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	ListByUsername(ctx context.Context, username string) ([]*task.Task, error)
	Delete(ctx context.Context, id int64) error
}
