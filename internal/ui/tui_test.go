package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/em-s-h/tsk/internal/tasktree"
	"github.com/em-s-h/tsk/internal/todo"
)

func newTestModel(t *testing.T, tree *tasktree.Tree) (*tuiModel, *todo.Store) {
	t.Helper()
	store := todo.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err := store.Save(tree); err != nil {
		t.Fatalf("save: %v", err)
	}
	m := newTUIModel(store, WithRefreshInterval(0))
	if cmd := m.Init(); cmd != nil {
		t.Errorf("Init with polling disabled returned a command")
	}
	return m, store
}

func sampleTree() *tasktree.Tree {
	return tasktree.New(
		tasktree.Task{Contents: "one", Children: []tasktree.Task{
			{Contents: "one.a"},
			{Contents: "one.b"},
		}},
		tasktree.Task{Contents: "two"},
	)
}

func press(m *tuiModel, keys ...string) {
	for _, k := range keys {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func send(m *tuiModel, types ...tea.KeyType) {
	for _, typ := range types {
		m.Update(tea.KeyMsg{Type: typ})
	}
}

func reload(t *testing.T, store *todo.Store) *tasktree.Tree {
	t.Helper()
	tree, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tree
}

func mustID(t *testing.T, s string) tasktree.ID {
	t.Helper()
	id, err := tasktree.ParseID(s)
	if err != nil {
		t.Fatalf("parse id %q: %v", s, err)
	}
	return id
}

func contents(t *testing.T, tree *tasktree.Tree, id string) string {
	t.Helper()
	task, err := tree.Get(mustID(t, id))
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return task.Contents
}

func TestInitLoadsTree(t *testing.T) {
	m, _ := newTestModel(t, sampleTree())
	if len(m.ids) != 4 {
		t.Fatalf("ids: got %d, want 4", len(m.ids))
	}
	if m.selected().String() != "1" {
		t.Errorf("cursor: got %s, want 1", m.selected())
	}
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t, sampleTree())

	press(m, "j", "j")
	if got := m.selected().String(); got != "1.2" {
		t.Errorf("after j j: got %s, want 1.2", got)
	}
	press(m, "G")
	if got := m.selected().String(); got != "2" {
		t.Errorf("after G: got %s, want 2", got)
	}
	press(m, "j")
	if got := m.selected().String(); got != "2" {
		t.Errorf("cursor moved past the end: got %s", got)
	}
	press(m, "k", "g", "k")
	if got := m.selected().String(); got != "1" {
		t.Errorf("after g k: got %s, want 1", got)
	}
}

func TestToggleMarksThroughStore(t *testing.T) {
	m, store := newTestModel(t, sampleTree())

	press(m, "x")
	tree := reload(t, store)
	for _, id := range []string{"1", "1.1", "1.2"} {
		task, _ := tree.Get(mustID(t, id))
		if !task.Done {
			t.Errorf("%s should be done after toggling its parent", id)
		}
	}

	press(m, "j", "x")
	tree = reload(t, store)
	first, _ := tree.Get(mustID(t, "1"))
	if first.Done {
		t.Errorf("parent should roll up to open when a child is reopened")
	}
}

func TestShiftSwapsSiblings(t *testing.T) {
	m, store := newTestModel(t, sampleTree())

	press(m, "J")
	tree := reload(t, store)
	if got := contents(t, tree, "1"); got != "two" {
		t.Errorf("root 1: got %q, want %q", got, "two")
	}
	if got := contents(t, tree, "2.1"); got != "one.a" {
		t.Errorf("children should move with their parent, got %q", got)
	}
	if got := m.selected().String(); got != "2" {
		t.Errorf("cursor should follow the task, got %s", got)
	}

	// The first sibling cannot move up.
	press(m, "g", "K")
	tree = reload(t, store)
	if got := contents(t, tree, "1"); got != "two" {
		t.Errorf("shift above the first sibling changed the tree: %q", got)
	}
}

func TestAddAndEdit(t *testing.T) {
	m, store := newTestModel(t, sampleTree())

	press(m, "a", "buy milk")
	send(m, tea.KeyEnter)
	tree := reload(t, store)
	if got := contents(t, tree, "1"); got != "buy milk" {
		t.Fatalf("add: got %q, want %q", got, "buy milk")
	}
	if m.selected().String() != "1" {
		t.Errorf("cursor should land on the new task, got %s", m.selected())
	}

	press(m, "e")
	send(m, tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace, tea.KeyBackspace)
	press(m, "eggs")
	send(m, tea.KeyEnter)
	tree = reload(t, store)
	if got := contents(t, tree, "1"); got != "buy eggs" {
		t.Errorf("edit: got %q, want %q", got, "buy eggs")
	}
}

func TestAddSubtaskReopensParent(t *testing.T) {
	tree := sampleTree()
	tree.Tasks[1].Done = true
	m, store := newTestModel(t, tree)

	press(m, "G", "A", "child")
	send(m, tea.KeyEnter)

	tree = reload(t, store)
	if got := contents(t, tree, "2.1"); got != "child" {
		t.Fatalf("subtask: got %q, want %q", got, "child")
	}
	parent, _ := tree.Get(mustID(t, "2"))
	if parent.Done {
		t.Errorf("parent should be reopened by a new subtask")
	}
	if got := m.selected().String(); got != "2.1" {
		t.Errorf("cursor: got %s, want 2.1", got)
	}
}

func TestAddBottom(t *testing.T) {
	store := todo.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err := store.Save(sampleTree()); err != nil {
		t.Fatalf("save: %v", err)
	}
	m := newTUIModel(store, WithRefreshInterval(0), WithAddPosition(tasktree.Bottom))
	m.Init()

	press(m, "a", "last")
	send(m, tea.KeyEnter)
	tree := reload(t, store)
	if got := contents(t, tree, "3"); got != "last" {
		t.Errorf("bottom add: got %q, want %q", got, "last")
	}
	if got := m.selected().String(); got != "3" {
		t.Errorf("cursor: got %s, want 3", got)
	}
}

func TestInputCancelAndBlank(t *testing.T) {
	m, store := newTestModel(t, sampleTree())

	press(m, "a", "nope")
	send(m, tea.KeyEsc)
	press(m, "a")
	send(m, tea.KeySpace, tea.KeyEnter)

	if m.mode != inputNone {
		t.Errorf("input mode should be closed")
	}
	if n := reload(t, store).Len(); n != 2 {
		t.Errorf("root tasks: got %d, want 2", n)
	}
}

func TestKeysAreTextWhileTyping(t *testing.T) {
	m, _ := newTestModel(t, sampleTree())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd != nil {
		t.Fatalf("a returned a command")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Errorf("q while typing should not quit")
	}
	if string(m.buffer) != "q" {
		t.Errorf("buffer: got %q, want %q", string(m.buffer), "q")
	}
}

func TestDeleteAndClear(t *testing.T) {
	tree := sampleTree()
	tree.Tasks[1].Done = true
	m, store := newTestModel(t, tree)

	press(m, "j", "d")
	tree = reload(t, store)
	first, _ := tree.Get(mustID(t, "1"))
	if len(first.Children) != 1 || first.Children[0].Contents != "one.b" {
		t.Errorf("delete 1.1: got %+v", first.Children)
	}
	if !strings.Contains(m.status, "Deleted 1.1") {
		t.Errorf("status: got %q", m.status)
	}

	press(m, "c")
	tree = reload(t, store)
	if tree.Len() != 1 {
		t.Errorf("clear: got %d root tasks, want 1", tree.Len())
	}
	if !strings.Contains(m.status, "Cleared 1") {
		t.Errorf("status: got %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, sampleTree())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q should quit")
	}
}

type failingStore struct {
	tree *tasktree.Tree
}

func (s *failingStore) Load() (*tasktree.Tree, error) {
	return s.tree, nil
}

func (s *failingStore) Update(func(*tasktree.Tree) error) (*tasktree.Tree, error) {
	return nil, errors.New("disk full")
}

func TestUpdateErrorIsShown(t *testing.T) {
	m := newTUIModel(&failingStore{tree: sampleTree()}, WithRefreshInterval(0))
	m.Init()

	press(m, "x")
	if m.status != "disk full" {
		t.Errorf("status: got %q, want %q", m.status, "disk full")
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("view should show the error")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, sampleTree())
	m.title = "tasks.json"

	view := m.View()
	for _, want := range []string{"tasks.json", "4 tasks, 0 done", "1. [ ] one", "1.2. [ ] one.b", "2. [ ] two"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	press(m, "a", "new")
	if !strings.Contains(m.View(), "New task: new_") {
		t.Errorf("view should show the prompt:\n%s", m.View())
	}
	send(m, tea.KeyEsc)

	press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help screen not shown")
	}
}

func TestViewLoadError(t *testing.T) {
	store := todo.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	m := newTUIModel(store, WithRefreshInterval(0))
	m.loadErr = errors.New("boom")
	if !strings.Contains(m.View(), "Error loading task file") {
		t.Errorf("view should report the load error")
	}
}

func TestIsTTY(t *testing.T) {
	var b strings.Builder
	if IsTTY(&b) {
		t.Errorf("a strings.Builder is not a TTY")
	}
}
