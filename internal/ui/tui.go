// Package ui provides the interactive terminal view of a task file.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/em-s-h/tsk/internal/tasktree"
)

// Store is the storage the TUI reads from and writes through.
// *todo.Store satisfies it.
type Store interface {
	Load() (*tasktree.Tree, error)
	Update(fn func(*tasktree.Tree) error) (*tasktree.Tree, error)
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	refresh  time.Duration
	position tasktree.Position
	title    string
}

// WithRefreshInterval sets how often the file is re-read to pick up changes
// made by other commands. Zero disables polling.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		c.refresh = d
	}
}

// WithAddPosition sets where new tasks are inserted.
func WithAddPosition(p tasktree.Position) TUIOption {
	return func(c *tuiConfig) {
		c.position = p
	}
}

// WithTitle replaces the header line, usually with the task file path.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		c.title = title
	}
}

// RunTUI starts the TUI on store.
func RunTUI(ctx context.Context, store Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(store, opts...)
	return runProgram(ctx, model)
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputAddSub
	inputEdit
)

type tuiModel struct {
	store        Store
	tree         *tasktree.Tree
	ids          []tasktree.ID
	cursor       int
	loadErr      error
	status       string
	showHelp     bool
	tickInterval time.Duration
	position     tasktree.Position
	title        string

	mode   inputMode
	buffer []rune
}

type tickMsg time.Time

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	doneLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	openLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

func newTUIModel(store Store, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		refresh:  2 * time.Second,
		position: tasktree.Top,
		title:    "tsk",
	}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		store:        store,
		tickInterval: c.refresh,
		position:     c.position,
		title:        c.title,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	case tickMsg:
		// Leave the tree alone while a line is being typed.
		if m.mode == inputNone {
			m.refresh()
		}
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "f5":
		m.refresh()
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.ids) > 0 {
			m.cursor = len(m.ids) - 1
		}
	case " ", "space", "x", "enter":
		m.toggle()
	case "K", "shift+up":
		m.shift(-1)
	case "J", "shift+down":
		m.shift(1)
	case "d", "delete":
		m.deleteSelected()
	case "c":
		m.clearDone()
	case "a":
		m.startInput(inputAdd, "")
	case "A":
		if m.selected() != nil {
			m.startInput(inputAddSub, "")
		}
	case "e":
		if id := m.selected(); id != nil {
			if task, err := m.tree.Get(id); err == nil {
				m.startInput(inputEdit, task.Contents)
			}
		}
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = inputNone
		m.buffer = nil
	case tea.KeyEnter:
		m.submitInput()
	case tea.KeyBackspace:
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
	case tea.KeySpace:
		m.buffer = append(m.buffer, ' ')
	case tea.KeyRunes:
		m.buffer = append(m.buffer, msg.Runes...)
	}
	return m, nil
}

func (m *tuiModel) startInput(mode inputMode, initial string) {
	m.mode = mode
	m.buffer = []rune(initial)
}

func (m *tuiModel) submitInput() {
	mode := m.mode
	text := strings.TrimSpace(string(m.buffer))
	m.mode = inputNone
	m.buffer = nil
	if text == "" {
		return
	}

	switch mode {
	case inputAdd:
		pos := m.position
		m.mutate(func(t *tasktree.Tree) error {
			return t.Add(text, pos, nil)
		}, func(t *tasktree.Tree) tasktree.ID {
			if pos == tasktree.Bottom {
				return tasktree.ID{t.Len()}
			}
			return tasktree.ID{1}
		})
	case inputAddSub:
		parent := m.selected()
		pos := m.position
		m.mutate(func(t *tasktree.Tree) error {
			return t.Add(text, pos, parent)
		}, func(t *tasktree.Tree) tasktree.ID {
			if pos == tasktree.Bottom {
				n, _ := t.ChildCount(parent)
				return parent.Child(n)
			}
			return parent.Child(1)
		})
	case inputEdit:
		id := m.selected()
		m.mutate(func(t *tasktree.Tree) error {
			return t.Edit(id, text)
		}, keep(id))
	}
}

func (m *tuiModel) toggle() {
	id := m.selected()
	if id == nil {
		return
	}
	task, err := m.tree.Get(id)
	if err != nil {
		return
	}
	done := !task.Done
	m.mutate(func(t *tasktree.Tree) error {
		return t.Mark([]tasktree.ID{id}, done)
	}, keep(id))
}

// shift swaps the selected task with its previous (-1) or next (+1) sibling.
func (m *tuiModel) shift(delta int) {
	id := m.selected()
	if id == nil {
		return
	}
	siblings, err := m.tree.ChildCount(id.Parent())
	if err != nil {
		return
	}
	n := id.Last() + delta
	if n < 1 || n > siblings {
		return
	}
	other := id.Parent().Child(n)
	m.mutate(func(t *tasktree.Tree) error {
		return t.Swap(id, other)
	}, keep(other))
}

func (m *tuiModel) deleteSelected() {
	id := m.selected()
	if id == nil {
		return
	}
	if m.mutate(func(t *tasktree.Tree) error {
		return t.Delete(id)
	}, keep(id)) {
		m.status = "Deleted " + id.String()
	}
}

func (m *tuiModel) clearDone() {
	var removed int
	if m.mutate(func(t *tasktree.Tree) error {
		removed = t.ClearDone()
		return nil
	}, func(*tasktree.Tree) tasktree.ID { return nil }) {
		m.status = fmt.Sprintf("Cleared %d done task(s)", removed)
	}
}

func keep(id tasktree.ID) func(*tasktree.Tree) tasktree.ID {
	return func(*tasktree.Tree) tasktree.ID { return id }
}

// mutate runs one operation through the store and moves the cursor to the id
// returned by follow, or keeps its index when that id is gone. It reports
// whether the operation was saved.
func (m *tuiModel) mutate(op func(*tasktree.Tree) error, follow func(*tasktree.Tree) tasktree.ID) bool {
	tree, err := m.store.Update(op)
	if err != nil {
		m.status = err.Error()
		return false
	}
	m.setTree(tree)
	if target := follow(tree); target != nil {
		for i, id := range m.ids {
			if id.Equal(target) {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
	return true
}

func (m *tuiModel) refresh() {
	tree, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.setTree(tree)
	m.clampCursor()
}

func (m *tuiModel) setTree(tree *tasktree.Tree) {
	m.tree = tree
	m.ids = tree.IDs()
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.ids) {
		m.cursor = len(m.ids) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() tasktree.ID {
	if m.cursor < 0 || m.cursor >= len(m.ids) {
		return nil
	}
	return m.ids[m.cursor]
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.title)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.tree == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.tree)
	writeTasks(&b, m.tree, m.ids, m.cursor)
	writePrompt(&b, m.mode, m.buffer)
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n\n")
	}
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tree *tasktree.Tree) {
	total, done := tree.Stats()
	b.WriteString(fmt.Sprintf("  %d tasks, %d done, %d open\n\n", total, done, total-done))
}

func writeTasks(b *strings.Builder, tree *tasktree.Tree, ids []tasktree.ID, cursor int) {
	if len(ids) == 0 {
		b.WriteString("  No tasks. Press a to add one.\n\n")
		return
	}
	for i, id := range ids {
		task, err := tree.Get(id)
		if err != nil {
			continue
		}
		line := tasktree.FormatLine(id, task, false)
		style := openLineStyle
		if task.Done {
			style = doneLineStyle
		}
		if i == cursor {
			style = cursorStyle
		}
		b.WriteString(strings.Repeat("  ", id.Depth()) + style.Render(line) + "\n")
	}
	b.WriteString("\n")
}

func writePrompt(b *strings.Builder, mode inputMode, buffer []rune) {
	var label string
	switch mode {
	case inputAdd:
		label = "New task"
	case inputAddSub:
		label = "New subtask"
	case inputEdit:
		label = "Edit task"
	default:
		return
	}
	b.WriteString(fmt.Sprintf("%s: %s_\n", label, string(buffer)))
	b.WriteString(faintStyle.Render("enter to save, esc to cancel") + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c       Quit\n")
	b.WriteString("  r, F5           Reload the task file\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  up/k, down/j    Move the cursor\n")
	b.WriteString("  g, G            First / last task\n")
	b.WriteString("  space, x        Toggle done\n")
	b.WriteString("  K, J            Move the task up / down among its siblings\n")
	b.WriteString("  a               Add a task\n")
	b.WriteString("  A               Add a subtask to the selected task\n")
	b.WriteString("  e               Edit the selected task\n")
	b.WriteString("  d               Delete the selected task\n")
	b.WriteString("  c               Clear done tasks\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	if interval <= 0 {
		b.WriteString(faintStyle.Render("Press h for help | q to quit") + "\n")
		return
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("Press h for help | q to quit | Reloading every %s", interval)) + "\n")
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
