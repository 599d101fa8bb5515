package view

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"taskClient/internal/client"
	"taskClient/internal/logger"
	"taskClient/internal/models/task"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNoSession = errors.New("нет активной сессии")
	ErrNoDraft   = errors.New("диалог редактирования закрыт")
)

// TaskListView экран списка задач. Список меняется только после
// подтверждения сервиса; часы пишутся из отдельной горутины.
type TaskListView struct {
	Username       string
	NewTitle       string
	NewDescription string
	Feedback       string
	Error          string

	tasks   []task.Task
	editing *task.Task

	clockMtx sync.RWMutex
	clock    string

	service  TaskService
	session  SessionReader
	avatar   *AvatarState
	location *time.Location
	now      func() time.Time
}

func NewTaskListView(service TaskService, session SessionReader, avatar *AvatarState) *TaskListView {
	return &TaskListView{
		tasks:   []task.Task{},
		service: service,
		session: session,
		avatar:  avatar,
		now:     time.Now,
	}
}

// Load заменяет список ответом сервиса для пользователя сессии
func (v *TaskListView) Load(ctx context.Context) error {
	username, ok := v.session.CurrentUsername(ctx)
	if !ok {
		return ErrNoSession
	}
	v.Username = username

	tasks, err := v.service.ListTasks(ctx, username)
	if err != nil {
		logger.Warn("View: Задачи не загружены", zap.String("username", username), zap.Error(err))
		v.Error = client.Message(err)
		return err
	}
	v.tasks = tasks
	return nil
}

func (v *TaskListView) Tasks() []task.Task {
	return slices.Clone(v.tasks)
}

func (v *TaskListView) Avatar() string {
	return v.avatar.URL()
}

func (v *TaskListView) Welcome() string {
	if v.Username == "" {
		return ""
	}
	return "Welcome, " + v.Username + "!"
}

// Create отправляет форму новой задачи; пустой заголовок не уходит в сеть
func (v *TaskListView) Create(ctx context.Context) error {
	v.Feedback = ""
	v.Error = ""

	if v.Username == "" || strings.TrimSpace(v.NewTitle) == "" {
		v.Error = MsgTitleRequired
		return task.ErrEmptyTitle
	}

	draft := task.NewDraft(v.NewTitle, v.NewDescription, v.Username, v.now())
	created, err := v.service.CreateTask(ctx, draft)
	if err != nil {
		logger.Warn("View: Задача не создана", zap.Error(err))
		v.Error = createFailure(err)
		return err
	}

	v.tasks = ApplyCreated(v.tasks, created)
	v.NewTitle = ""
	v.NewDescription = ""
	v.Feedback = MsgTaskAdded
	return nil
}

// Toggle переключает выполнение по последней известной записи
func (v *TaskListView) Toggle(ctx context.Context, id int64) error {
	v.Error = ""

	current, ok := find(v.tasks, id)
	if !ok {
		v.Error = client.ErrNotFound.Message
		return client.ErrNotFound
	}

	updated, err := v.service.UpdateTask(ctx, id, current.Toggled(v.now()))
	if err != nil {
		logger.Warn("View: Статус не изменён", zap.Int64("task_id", id), zap.Error(err))
		v.Error = client.Message(err)
		return err
	}
	v.tasks = ApplyUpdated(v.tasks, updated)
	return nil
}

// Delete убирает задачу из списка только после ответа сервиса
func (v *TaskListView) Delete(ctx context.Context, id int64) error {
	v.Error = ""

	if err := v.service.DeleteTask(ctx, id); err != nil {
		logger.Warn("View: Задача не удалена", zap.Int64("task_id", id), zap.Error(err))
		v.Error = client.Message(err)
		return err
	}
	v.tasks = ApplyDeleted(v.tasks, id)
	return nil
}

// StartEdit открывает диалог с копией задачи
func (v *TaskListView) StartEdit(id int64) error {
	current, ok := find(v.tasks, id)
	if !ok {
		return client.ErrNotFound
	}
	draft := current.Clone()
	v.editing = &draft
	return nil
}

func (v *TaskListView) EditDraft() (task.Task, bool) {
	if v.editing == nil {
		return task.Task{}, false
	}
	return v.editing.Clone(), true
}

func (v *TaskListView) ChangeDraft(options ...task.TaskOption) {
	if v.editing == nil {
		return
	}
	changed := v.editing.Apply(options...)
	v.editing = &changed
}

// SaveEdit при ошибке диалог остаётся открытым, список не меняется
func (v *TaskListView) SaveEdit(ctx context.Context) error {
	if v.editing == nil {
		return ErrNoDraft
	}
	v.Error = ""

	draft := *v.editing
	updated, err := v.service.UpdateTask(ctx, draft.ID, draft)
	if err != nil {
		logger.Warn("View: Правка не сохранена", zap.Int64("task_id", draft.ID), zap.Error(err))
		v.Error = client.Message(err)
		return err
	}
	v.tasks = ApplyUpdated(v.tasks, updated)
	v.editing = nil
	return nil
}

func (v *TaskListView) CancelEdit() {
	v.editing = nil
}

func (v *TaskListView) SetClock(now string) {
	v.clockMtx.Lock()
	v.clock = now
	v.clockMtx.Unlock()
}

func (v *TaskListView) Clock() string {
	v.clockMtx.RLock()
	defer v.clockMtx.RUnlock()
	return v.clock
}

// createFailure ответ сервиса показывается с префиксом Backend
func createFailure(err error) string {
	var clientErr *client.Error
	if !errors.As(err, &clientErr) {
		return MsgCreateFailed
	}

	switch {
	case clientErr.Status == 0 && clientErr.Code == client.CodeValidation:
		return MsgTitleRequired
	case clientErr.Status == 0:
		return MsgCreateFailed
	case clientErr.Detail != "":
		return "Backend: " + clientErr.Detail
	default:
		return "Backend: " + clientErr.Message
	}
}
