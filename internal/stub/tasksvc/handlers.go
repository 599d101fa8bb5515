package tasksvc

import (
	"encoding/json"
	"net/http"
	"strconv"
	"taskClient/internal/logger"
	"taskClient/internal/middleware"
	"taskClient/internal/models/task"
	"taskClient/internal/stub/respond"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService *TaskService
}

func NewTaskHandler(taskService *TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

// Routes маршруты сервиса задач; все, кроме /health, требуют токен
func (h *TaskHandler) Routes(tokens middleware.TokenParser) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Bearer(tokens))

		r.Get("/user/{username}", h.ListByUsername) // GET /user/{username}
		r.Post("/", h.PostTask)                     // POST /

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)       // GET /{id}
			r.Put("/", h.UpdateTaskByID)    // PUT /{id}
			r.Delete("/", h.DeleteTaskByID) // DELETE /{id}
		})
	})

	return r
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис нездоров", err)
		respond.WithFields(w, http.StatusServiceUnavailable,
			respond.ToPayload("service", "task-service"),
			respond.ToPayload("status", "unhealthy"))
		return
	}
	respond.WithFields(w, http.StatusOK,
		respond.ToPayload("service", "task-service"),
		respond.ToPayload("status", "ok"))
}

func (h *TaskHandler) ListByUsername(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	username := chi.URLParam(r, "username")

	tasks, err := h.TaskService.ListByUsername(r.Context(), middleware.GetUsername(r.Context()), username)
	if err != nil {
		respond.HandleError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.String("username", username),
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))
	respond.JSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	if !respond.CheckContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")))
		respond.Error(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var draft task.Task
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), middleware.GetUsername(r.Context()), draft)
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, created)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := h.TaskService.GetTaskByID(r.Context(), middleware.GetUsername(r.Context()), id)
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, found)
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var full task.Task
	if err := json.NewDecoder(r.Body).Decode(&full); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), middleware.GetUsername(r.Context()), id, full)
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), middleware.GetUsername(r.Context()), id); err != nil {
		respond.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", idParam))
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
