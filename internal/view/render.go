package view

import (
	"fmt"
	"io"
	"strings"
	"taskClient/internal/models/task"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// TimeLayout формат времени создания в строке задачи
const TimeLayout = "3:04:05 pm"

// SetLocation пояс для колонки Created, по умолчанию локальный
func (v *TaskListView) SetLocation(loc *time.Location) {
	v.location = loc
}

// Render печатает экран списка задач
func (v *TaskListView) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := "Todo List"
	if avatar := v.Avatar(); avatar != "" {
		header += "\t[" + avatar + "]"
	}
	fmt.Fprintln(tw, header)

	welcome := v.Welcome()
	if clock := v.Clock(); clock != "" {
		welcome += "\t● " + clock
	}
	if welcome != "" {
		fmt.Fprintln(tw, welcome)
	}
	if v.Feedback != "" {
		fmt.Fprintln(tw, v.Feedback)
	}
	if v.Error != "" {
		fmt.Fprintln(tw, "! "+v.Error)
	}
	fmt.Fprintln(tw)

	if len(v.tasks) == 0 {
		fmt.Fprintln(tw, MsgNoTasks)
		return tw.Flush()
	}

	fmt.Fprintln(tw, "#\tID\tDONE\tTITLE\tDESCRIPTION\tCREATED\tCOMPLETED IN")
	for i, t := range v.tasks {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			t.ID,
			checkbox(t.Completed),
			oneLine(t.Title),
			oneLine(t.Description),
			v.created(t),
			completedIn(t),
		)
	}
	return tw.Flush()
}

func (v *TaskListView) created(t task.Task) string {
	if t.CreatedAt == nil {
		return "-"
	}
	loc := v.location
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%s (%s)",
		t.CreatedAt.In(loc).Format(TimeLayout),
		humanize.RelTime(*t.CreatedAt, v.now(), "ago", "from now"))
}

func completedIn(t task.Task) string {
	d, ok := t.Duration()
	if !ok {
		return ""
	}
	return task.FormatDuration(d)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
