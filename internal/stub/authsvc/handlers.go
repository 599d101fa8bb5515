package authsvc

import (
	"encoding/json"
	"net/http"
	"taskClient/internal/logger"
	"taskClient/internal/middleware"
	"taskClient/internal/models/user"
	"taskClient/internal/stub/respond"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes маршруты сервиса авторизации относительно его базового пути
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register) // POST /register
	r.Post("/login", h.Login)       // POST /login
	r.Get("/validate", h.Validate)  // GET /validate?token=

	r.Group(func(r chi.Router) {
		r.Use(middleware.Bearer(h.svc.tokens))
		r.Get("/profile", h.GetProfile)    // GET /profile
		r.Put("/profile", h.UpdateProfile) // PUT /profile
	})

	return r
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (user.Credentials, bool) {
	var creds user.Credentials
	if !respond.CheckContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")))
		respond.Error(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return creds, false
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return creds, false
	}
	return creds, true
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Register(r.Context(), creds)
	if err != nil {
		respond.HandleError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь создан",
		zap.String("username", resp.Username),
		zap.Duration("ms", time.Since(start)))
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Login(r.Context(), creds)
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Validate(r.URL.Query().Get("token")))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), middleware.GetUsername(r.Context()))
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update user.Profile
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.svc.UpdateProfile(r.Context(), middleware.GetUsername(r.Context()), update)
	if err != nil {
		respond.HandleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}
