package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"taskClient/internal/logger"
	"taskClient/internal/models/task"

	"go.uber.org/zap"
)

type TaskClient struct {
	api *api
}

func NewTaskClient(baseURL string, httpClient *http.Client, tokens TokenSource) *TaskClient {
	return &TaskClient{api: newAPI(baseURL, httpClient, tokens)}
}

// ListTasks все задачи владельца в порядке сервиса, без фильтрации на клиенте
func (c *TaskClient) ListTasks(ctx context.Context, username string) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.api.do(ctx, http.MethodGet, "/user/"+url.PathEscape(username), nil, &tasks); err != nil {
		return nil, classify(err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// CreateTask пустой заголовок отклоняется до запроса
func (c *TaskClient) CreateTask(ctx context.Context, draft task.Task) (task.Task, error) {
	if err := draft.Validate(); err != nil {
		logger.Warn("Tasks: Ошибка валидации", zap.String("field", "title"), zap.String("error", "empty_field"))
		return task.Task{}, newError(ErrValidation, 0, "", err)
	}

	var created task.Task
	if err := c.api.do(ctx, http.MethodPost, "/", draft, &created); err != nil {
		return task.Task{}, classify(err)
	}
	return created, nil
}

// UpdateTask полная замена записи id
func (c *TaskClient) UpdateTask(ctx context.Context, id int64, full task.Task) (task.Task, error) {
	if err := full.Validate(); err != nil {
		logger.Warn("Tasks: Ошибка валидации", zap.String("field", "title"), zap.Int64("task_id", id))
		return task.Task{}, newError(ErrValidation, 0, "", err)
	}

	var updated task.Task
	if err := c.api.do(ctx, http.MethodPut, "/"+strconv.FormatInt(id, 10), full, &updated); err != nil {
		return task.Task{}, classify(err)
	}
	return updated, nil
}

func (c *TaskClient) DeleteTask(ctx context.Context, id int64) error {
	if err := c.api.do(ctx, http.MethodDelete, "/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return classify(err)
	}
	return nil
}
