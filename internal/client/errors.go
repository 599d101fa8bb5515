package client

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUsernameTaken      Code = "USERNAME_TAKEN"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeTransport          Code = "TRANSPORT_ERROR"
)

// Error ошибка клиента. Message короткий текст для пользователя,
// Detail текст из тела ответа сервиса, если он был.
type Error struct {
	Code    Code
	Message string
	Status  int
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду, поэтому errors.Is(err, ErrNotFound) работает для любого статуса
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "Invalid username or password"}
	ErrUsernameTaken      = &Error{Code: CodeUsernameTaken, Message: "Username already exists"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "Session expired, please log in again"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "Task title is required."}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "Task not found"}
	ErrTransport          = &Error{Code: CodeTransport, Message: "Service unavailable. Please try again."}
)

func newError(base *Error, status int, detail string, err error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Status:  status,
		Detail:  detail,
		Err:     err,
	}
}

// Message короткий текст ошибки для показа пользователю
func Message(err error) string {
	if err == nil {
		return ""
	}
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return "Something went wrong. Please try again."
}
