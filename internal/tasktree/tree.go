package tasktree

import (
	"sort"
)

// Position selects where Add places a new task among its siblings.
type Position int

const (
	Top Position = iota
	Bottom
)

// ParsePosition maps "top" / "bottom" (or "bot") to a Position.
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "top":
		return Top, true
	case "bottom", "bot":
		return Bottom, true
	}
	return Top, false
}

func (p Position) String() string {
	if p == Bottom {
		return "bottom"
	}
	return "top"
}

// Len returns the number of root-level tasks.
func (t *Tree) Len() int {
	return len(t.Tasks)
}

// Get resolves id to its task.
func (t *Tree) Get(id ID) (*Task, error) {
	list, idx, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	return &(*list)[idx], nil
}

// ChildCount returns how many tasks sit directly under parent. A nil parent
// counts the root list.
func (t *Tree) ChildCount(parent ID) (int, error) {
	if len(parent) == 0 {
		return len(t.Tasks), nil
	}
	task, err := t.Get(parent)
	if err != nil {
		return 0, err
	}
	return len(task.Children), nil
}

// Add inserts a new open task at the top or bottom of parent's children, or of
// the root list when parent is nil. The parent chain is reopened.
func (t *Tree) Add(content string, pos Position, parent ID) error {
	list := &t.Tasks
	if parent != nil {
		task, err := t.Get(parent)
		if err != nil {
			return err
		}
		list = &task.Children
	}

	task := Task{Contents: content}
	if pos == Top {
		*list = insertAt(*list, 0, task)
	} else {
		*list = append(*list, task)
	}

	if parent != nil {
		t.reopen(parent)
	}
	return nil
}

// Mark sets the done flag on every task in ids. Marking done cascades to all
// descendants. Every ancestor of a marked task is then recomputed from its
// direct children. Nothing changes unless every id resolves.
func (t *Tree) Mark(ids []ID, done bool) error {
	targets := make([]*Task, 0, len(ids))
	for _, id := range ids {
		task, err := t.Get(id)
		if err != nil {
			return err
		}
		targets = append(targets, task)
	}

	for _, task := range targets {
		task.Done = done
		if done {
			markAll(task.Children)
		}
	}

	// Deepest first, so a shared ancestor sees its children's final state.
	ordered := sortedUnique(ids)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	for _, id := range ordered {
		t.rollUp(id)
	}
	return nil
}

// Move takes the task at from out of its list and inserts it at the slot to.
// Slots are read before the removal. When from's list is on the path of to and
// the removal shifts that path, the shift is compensated. Moving a task to its
// own id is a no-op.
func (t *Tree) Move(from, to ID) error {
	srcList, srcIdx, err := t.lookup(from)
	if err != nil {
		return err
	}
	if from.Equal(to) {
		return nil
	}
	if to.HasPrefix(from) {
		return idError(to.String(), ErrInvalidMove)
	}
	if _, _, err := t.slot(to); err != nil {
		return err
	}

	dest := to.clone()
	depth := len(from) - 1
	if len(dest) > depth && dest[:depth].Equal(from[:depth]) && dest[depth] > from.Last() {
		dest[depth]--
	}

	node := (*srcList)[srcIdx]
	*srcList = removeAt(*srcList, srcIdx)

	dstList, dstIdx, err := t.slot(dest)
	if err != nil {
		*srcList = insertAt(*srcList, srcIdx, node)
		return err
	}
	*dstList = insertAt(*dstList, dstIdx, node)

	if !node.Done {
		t.reopen(dest.Parent())
	}
	return nil
}

// Swap exchanges the positions of two tasks; each keeps its own subtasks.
func (t *Tree) Swap(a, b ID) error {
	first, err := t.Get(a)
	if err != nil {
		return err
	}
	second, err := t.Get(b)
	if err != nil {
		return err
	}
	if a.Equal(b) {
		return nil
	}
	if a.HasPrefix(b) {
		return idError(a.String(), ErrInvalidMove)
	}
	if b.HasPrefix(a) {
		return idError(b.String(), ErrInvalidMove)
	}

	*first, *second = *second, *first

	if !first.Done {
		t.reopen(a.Parent())
	}
	if !second.Done {
		t.reopen(b.Parent())
	}
	return nil
}

// Append adds text to the end of a task's contents, separated by a space,
// and reopens the task and its ancestors.
func (t *Tree) Append(id ID, text string) error {
	task, err := t.Get(id)
	if err != nil {
		return err
	}
	task.Contents += " " + text
	t.reopen(id)
	return nil
}

// Edit replaces a task's contents and reopens the task and its ancestors.
func (t *Tree) Edit(id ID, content string) error {
	task, err := t.Get(id)
	if err != nil {
		return err
	}
	task.Contents = content
	t.reopen(id)
	return nil
}

// Delete removes a task with all of its subtasks.
func (t *Tree) Delete(id ID) error {
	list, idx, err := t.lookup(id)
	if err != nil {
		return err
	}
	*list = removeAt(*list, idx)
	return nil
}

// DeleteAll removes several tasks. All ids are read against the tree as it is
// before the call.
func (t *Tree) DeleteAll(ids []ID) error {
	for _, id := range ids {
		if _, _, err := t.lookup(id); err != nil {
			return err
		}
	}

	ordered := sortedUnique(ids)
	for i := len(ordered) - 1; i >= 0; i-- {
		// An ancestor listed earlier already took this one with it.
		if coveredBy(ordered[i], ordered[:i]) {
			continue
		}
		list, idx, err := t.lookup(ordered[i])
		if err != nil {
			return err
		}
		*list = removeAt(*list, idx)
	}
	return nil
}

// ClearDone removes every done task at every depth and returns how many
// tasks went away, subtasks included.
func (t *Tree) ClearDone() int {
	var removed int
	t.Tasks = clearDone(t.Tasks, &removed)
	return removed
}

func clearDone(tasks []Task, removed *int) []Task {
	kept := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Done {
			*removed += 1 + countTasks(task.Children)
			continue
		}
		task.Children = clearDone(task.Children, removed)
		kept = append(kept, task)
	}
	return kept
}

// Walk visits every task depth-first, parents before their children.
// Returning a non-nil error stops the walk.
func (t *Tree) Walk(fn func(id ID, task *Task) error) error {
	return walk(t.Tasks, nil, fn)
}

func walk(tasks []Task, parent ID, fn func(ID, *Task) error) error {
	for i := range tasks {
		id := parent.Child(i + 1)
		if err := fn(id, &tasks[i]); err != nil {
			return err
		}
		if err := walk(tasks[i].Children, id, fn); err != nil {
			return err
		}
	}
	return nil
}

// IDs lists every id in render order.
func (t *Tree) IDs() []ID {
	var ids []ID
	_ = t.Walk(func(id ID, _ *Task) error {
		ids = append(ids, id)
		return nil
	})
	return ids
}

// Stats counts all tasks and the done ones.
func (t *Tree) Stats() (total, done int) {
	_ = t.Walk(func(_ ID, task *Task) error {
		total++
		if task.Done {
			done++
		}
		return nil
	})
	return total, done
}

// lookup resolves id to the list holding it and its index there.
func (t *Tree) lookup(id ID) (*[]Task, int, error) {
	return t.resolve(id, false)
}

// slot resolves an insertion point; the last component may be one past the end.
func (t *Tree) slot(id ID) (*[]Task, int, error) {
	return t.resolve(id, true)
}

func (t *Tree) resolve(id ID, allowEnd bool) (*[]Task, int, error) {
	if len(id) == 0 {
		return nil, 0, idError("", ErrMalformedID)
	}
	for _, n := range id {
		if n < 1 {
			return nil, 0, idError(id.String(), ErrMalformedID)
		}
	}
	// The first slot of an empty root list is still a valid insertion point.
	if len(t.Tasks) == 0 && !(allowEnd && len(id) == 1) {
		return nil, 0, idError(id.String(), ErrEmptyTree)
	}

	list := &t.Tasks
	for _, n := range id[:len(id)-1] {
		if n > len(*list) {
			return nil, 0, idError(id.String(), ErrIDOutOfRange)
		}
		list = &(*list)[n-1].Children
	}

	last := id.Last()
	limit := len(*list)
	if allowEnd {
		limit++
	}
	if last > limit {
		return nil, 0, idError(id.String(), ErrIDOutOfRange)
	}
	return list, last - 1, nil
}

// reopen clears the done flag on id and every task above it.
func (t *Tree) reopen(id ID) {
	list := &t.Tasks
	for _, n := range id {
		if n < 1 || n > len(*list) {
			return
		}
		task := &(*list)[n-1]
		task.Done = false
		list = &task.Children
	}
}

// rollUp recomputes the ancestors of id, nearest first.
func (t *Tree) rollUp(id ID) {
	for depth := len(id) - 1; depth >= 1; depth-- {
		parent, err := t.Get(id[:depth])
		if err != nil {
			return
		}
		parent.Done = allDone(parent.Children)
	}
}

func markAll(tasks []Task) {
	for i := range tasks {
		tasks[i].Done = true
		markAll(tasks[i].Children)
	}
}

func allDone(tasks []Task) bool {
	for _, task := range tasks {
		if !task.Done {
			return false
		}
	}
	return true
}

func countTasks(tasks []Task) int {
	n := len(tasks)
	for _, task := range tasks {
		n += countTasks(task.Children)
	}
	return n
}

func insertAt(tasks []Task, idx int, task Task) []Task {
	tasks = append(tasks, Task{})
	copy(tasks[idx+1:], tasks[idx:])
	tasks[idx] = task
	return tasks
}

func removeAt(tasks []Task, idx int) []Task {
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	return append(out, tasks[idx+1:]...)
}

// sortedUnique returns ids in render order without duplicates.
func sortedUnique(ids []ID) []ID {
	out := make([]ID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Compare(out[j]) < 0
	})
	uniq := out[:0]
	for i, id := range out {
		if i > 0 && id.Equal(out[i-1]) {
			continue
		}
		uniq = append(uniq, id)
	}
	return uniq
}

func coveredBy(id ID, others []ID) bool {
	for _, other := range others {
		if len(other) < len(id) && id.HasPrefix(other) {
			return true
		}
	}
	return false
}
