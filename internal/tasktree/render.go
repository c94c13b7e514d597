package tasktree

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Render output is always plain ANSI so it reads the same on any terminal
// and in tests; callers decide whether color is wanted at all.
var (
	ansi      = newANSIRenderer()
	doneStyle = ansi.NewStyle().Foreground(lipgloss.Color("2")).TabWidth(lipgloss.NoTabConversion)
	openStyle = ansi.NewStyle().Foreground(lipgloss.Color("1")).TabWidth(lipgloss.NoTabConversion)
)

func newANSIRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

// Render returns one display line per task, depth-first. Subtasks are
// indented with one tab per level. The tree is not modified.
func (t *Tree) Render(colored bool) []string {
	lines := make([]string, 0, len(t.Tasks))
	_ = t.Walk(func(id ID, task *Task) error {
		lines = append(lines, strings.Repeat("\t", len(id)-1)+FormatLine(id, task, colored))
		return nil
	})
	return lines
}

// FormatLine formats a single task as "<id>. [X] <contents>" without indentation.
func FormatLine(id ID, task *Task, colored bool) string {
	body := Checkbox(task.Done) + " " + task.Contents
	if colored {
		if task.Done {
			body = doneStyle.Render(body)
		} else {
			body = openStyle.Render(body)
		}
	}
	return id.String() + ". " + body
}

// Checkbox returns "[X]" for a done task and "[ ]" otherwise.
func Checkbox(done bool) string {
	if done {
		return "[X]"
	}
	return "[ ]"
}
