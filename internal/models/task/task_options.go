package task

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

// Apply применяет опции к копии задачи, nil-опции пропускаются
func (t Task) Apply(options ...TaskOption) Task {
	t = t.Clone()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&t)
	}
	return t
}
