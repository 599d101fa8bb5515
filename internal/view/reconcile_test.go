package view

import (
	"taskClient/internal/models/task"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleList() []task.Task {
	return []task.Task{
		{ID: 1, Title: "one", Username: "alice"},
		{ID: 2, Title: "two", Username: "alice"},
		{ID: 3, Title: "three", Username: "alice"},
	}
}

// TestApplyCreated тестирует добавление в конец без изменения исходного среза
func TestApplyCreated(t *testing.T) {
	list := sampleList()
	out := ApplyCreated(list, task.Task{ID: 9, Title: "nine"})

	assert.Len(t, list, 3)
	assert.Len(t, out, 4)
	assert.Equal(t, int64(9), out[3].ID)
	assert.Equal(t, int64(1), out[0].ID)

	assert.Len(t, ApplyCreated(nil, task.Task{ID: 1}), 1)
}

// TestApplyUpdated тестирует замену по id и сохранение порядка
func TestApplyUpdated(t *testing.T) {
	list := sampleList()
	out := ApplyUpdated(list, task.Task{ID: 2, Title: "two v2", Completed: true})

	assert.Equal(t, "two", list[1].Title)
	assert.Equal(t, "two v2", out[1].Title)
	assert.True(t, out[1].Completed)
	assert.Equal(t, []int64{1, 2, 3}, ids(out))

	unchanged := ApplyUpdated(list, task.Task{ID: 42, Title: "ghost"})
	assert.Equal(t, list, unchanged)
}

// TestApplyDeleted тестирует удаление по id
func TestApplyDeleted(t *testing.T) {
	list := sampleList()
	out := ApplyDeleted(list, 2)

	assert.Len(t, list, 3)
	assert.Equal(t, []int64{1, 3}, ids(out))
	assert.Equal(t, []int64{1, 2, 3}, ids(ApplyDeleted(list, 42)))
}

func ids(list []task.Task) []int64 {
	out := make([]int64, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}
