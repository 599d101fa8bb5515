package tasksvc

import (
	"context"
	"errors"
	"fmt"
	"taskClient/internal/logger"
	"taskClient/internal/models/task"
	"taskClient/internal/stub/respond"
	"time"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

func newForbidden(username string) *respond.BusinessError {
	return &respond.BusinessError{
		Code:    "FORBIDDEN",
		Message: "tasks of another user",
		Details: map[string]any{"username": username},
	}
}

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) ListByUsername(ctx context.Context, caller, username string) ([]*task.Task, error) {
	if caller != username {
		logger.Warn("Service: Запрос чужих задач", zap.String("caller", caller), zap.String("username", username))
		return nil, newForbidden(username)
	}

	tasks, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, caller string, id int64) (*task.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, respond.NewNotFound("task", id)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	if existing.Username != caller {
		return nil, newForbidden(existing.Username)
	}
	return existing, nil
}

// CreateTask владелец всегда из токена, createdAt клиента сохраняется
func (s *TaskService) CreateTask(ctx context.Context, caller string, draft task.Task) (*task.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, respond.NewValidationError("title", "must not be empty")
	}

	created := draft.Clone()
	created.ID = 0
	created.Username = caller
	if created.CreatedAt == nil {
		now := s.now().UTC()
		created.CreatedAt = &now
	}
	s.normalizeCompletion(&created)

	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.Int64("task_id", created.ID), zap.String("username", caller))
	return &created, nil
}

// UpdateTask полная замена полей существующей задачи
func (s *TaskService) UpdateTask(ctx context.Context, caller string, id int64, full task.Task) (*task.Task, error) {
	if err := full.Validate(); err != nil {
		return nil, respond.NewValidationError("title", "must not be empty")
	}

	existing, err := s.GetTaskByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated := full.Clone()
	updated.ID = existing.ID
	updated.Username = existing.Username
	if updated.CreatedAt == nil {
		updated.CreatedAt = existing.CreatedAt
	}
	s.normalizeCompletion(&updated)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.NewNotFound("task", id)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return &updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, caller string, id int64) error {
	if _, err := s.GetTaskByID(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return respond.NewNotFound("task", id)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}

// completedAt есть только у выполненных задач
func (s *TaskService) normalizeCompletion(t *task.Task) {
	if !t.Completed {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		now := s.now().UTC()
		t.CompletedAt = &now
	}
}
