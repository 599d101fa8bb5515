package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"taskClient/internal/logger"

	"go.uber.org/zap"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewBusinessError(code string, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
}

func NewNotFound(resource string, id any) *BusinessError {
	return &BusinessError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %v not found", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("invalid field '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "UNAUTHORIZED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "FORBIDDEN":
		return http.StatusForbidden
	case "USERNAME_TAKEN":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type Payload struct {
	Key     string
	Payload any
}

func ToPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

// WithFields отвечает JSON-объектом, собранным из пар
func WithFields(w http.ResponseWriter, code int, payload ...Payload) {
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		storage[pl.Key] = pl.Payload
	}
	JSON(w, code, storage)
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("HTTP: Ошибка записи ответа", zap.Error(err))
	}
}

func Error(w http.ResponseWriter, code int, message string) {
	WithFields(w, code, ToPayload("error", http.StatusText(code)), ToPayload("message", message))
}

// HandleError отвечает по BusinessError, остальные ошибки считаются внутренними
func HandleError(w http.ResponseWriter, err error) {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		WithFields(w, statusCode,
			ToPayload("error", businessErr.Code),
			ToPayload("message", businessErr.Message),
			ToPayload("details", businessErr.Details),
		)
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err)
	Error(w, http.StatusInternalServerError, "internal server error")
}

func CheckContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}
