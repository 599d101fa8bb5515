package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"taskClient/internal/logger"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// TokenSource откуда клиент берёт bearer-токен для каждого запроса
type TokenSource interface {
	CurrentToken(ctx context.Context) (string, bool)
}

// NewHTTPClient http.Client без таймаута: запрос ждёт ответа или ошибки транспорта
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// responseError ответ сервиса с кодом вне 2xx
type responseError struct {
	status int
	detail string
}

func (e *responseError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("ответ сервиса %d", e.status)
	}
	return fmt.Sprintf("ответ сервиса %d: %s", e.status, e.detail)
}

type api struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func newAPI(baseURL string, httpClient *http.Client, tokens TokenSource) *api {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &api{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// do выполняет один JSON-запрос. in и out могут быть nil.
// Ошибки: *responseError для ответа вне 2xx, иначе ошибка транспорта или кодека.
func (a *api) do(ctx context.Context, method, path string, in, out any) error {
	url := a.baseURL + path
	start := time.Now()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("кодирование запроса: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	// без токена заголовок не отправляется, отказ остаётся за сервером
	if a.tokens != nil {
		if token, ok := a.tokens.CurrentToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := a.http.Do(req)
	if err != nil {
		logger.HttpResponseInfo(method, url, 0, start, zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	logger.HttpResponseInfo(method, url, resp.StatusCode, start, zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &responseError{status: resp.StatusCode, detail: readDetail(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("разбор ответа %s %s: %w", method, url, err)
	}
	return nil
}

// readDetail достаёт message или error из JSON-тела, иначе сам текст
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// classify переводит ошибку do в таксономию клиента по коду ответа
func classify(err error) error {
	if err == nil {
		return nil
	}

	var respErr *responseError
	if !errors.As(err, &respErr) {
		return newError(ErrTransport, 0, "", err)
	}

	switch respErr.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(ErrUnauthorized, respErr.status, respErr.detail, nil)
	case http.StatusNotFound:
		return newError(ErrNotFound, respErr.status, respErr.detail, nil)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return newError(ErrValidation, respErr.status, respErr.detail, nil)
	default:
		return newError(ErrTransport, respErr.status, respErr.detail, nil)
	}
}

// classifyAs для login/register: любой ответ сервиса с ошибкой это base
func classifyAs(err error, base *Error) error {
	if err == nil {
		return nil
	}
	var respErr *responseError
	if errors.As(err, &respErr) {
		return newError(base, respErr.status, respErr.detail, nil)
	}
	return newError(ErrTransport, 0, "", err)
}
