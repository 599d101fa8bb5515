package view

import "taskClient/internal/models/task"

// Функции сверки списка после успешной записи. Входной срез не меняется,
// возвращается новый.

// ApplyCreated добавляет задачу в конец, порядок не пересортировывается
func ApplyCreated(list []task.Task, created task.Task) []task.Task {
	out := make([]task.Task, 0, len(list)+1)
	out = append(out, list...)
	return append(out, created)
}

// ApplyUpdated заменяет запись с тем же id ответом сервиса
func ApplyUpdated(list []task.Task, updated task.Task) []task.Task {
	out := make([]task.Task, len(list))
	for i, t := range list {
		if t.ID == updated.ID {
			out[i] = updated
			continue
		}
		out[i] = t
	}
	return out
}

func ApplyDeleted(list []task.Task, id int64) []task.Task {
	out := make([]task.Task, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func find(list []task.Task, id int64) (task.Task, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}
