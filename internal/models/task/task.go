package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrEmptyTitle = errors.New("task title is required")

// Task запись сервиса задач. ID == 0 означает, что задача ещё не создана.
type Task struct {
	ID          int64      `json:"id,omitempty" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	Username    string     `json:"username" db:"username"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" db:"created_at"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
}

// NewDraft собирает черновик новой задачи владельца username
func NewDraft(title, description, username string, now time.Time) Task {
	created := now.UTC()
	return Task{
		Title:       title,
		Description: description,
		Completed:   false,
		Username:    username,
		CreatedAt:   &created,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// WithCompleted возвращает копию с переключённым статусом.
// completedAt выставляется только вместе с completed и очищается при снятии.
func (t Task) WithCompleted(completed bool, now time.Time) Task {
	t.Completed = completed
	if completed {
		done := now.UTC()
		t.CompletedAt = &done
	} else {
		t.CompletedAt = nil
	}
	return t
}

// Toggled переворачивает completed
func (t Task) Toggled(now time.Time) Task {
	return t.WithCompleted(!t.Completed, now)
}

// Duration время выполнения, не меньше нуля. false если задача не завершена.
func (t Task) Duration() (time.Duration, bool) {
	if !t.Completed || t.CreatedAt == nil || t.CompletedAt == nil {
		return 0, false
	}
	d := t.CompletedAt.Sub(*t.CreatedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// FormatDuration печатает "1h 2m 3s"; часы и минуты опускаются, если равны нулю
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}

func (t Task) Clone() Task {
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		t.CreatedAt = &c
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}
