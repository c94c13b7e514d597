package tasktree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlaceholderContents is the text of the task synthesized for a new task file.
const PlaceholderContents = "Create a new task file"

// Task is a node in the tree.
type Task struct {
	Contents string `json:"contents" yaml:"contents" toml:"contents"`
	Done     bool   `json:"done" yaml:"done" toml:"done"`
	Children []Task `json:"children" yaml:"children,omitempty" toml:"children,omitempty"`
}

// MarshalJSON always writes a children array, empty for a leaf.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	p := plain(t)
	if p.Children == nil {
		p.Children = []Task{}
	}
	return json.Marshal(p)
}

// UnmarshalJSON accepts "subtasks" as an older name for "children".
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		Subtasks []Task `json:"subtasks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	if t.Children == nil && aux.Subtasks != nil {
		t.Children = aux.Subtasks
	}
	return nil
}

// Tree is the root-level task list.
type Tree struct {
	Tasks []Task
}

// New returns a tree holding tasks.
func New(tasks ...Task) *Tree {
	return &Tree{Tasks: tasks}
}

// Placeholder returns the tree used when there is nothing to load.
func Placeholder() *Tree {
	return New(Task{Contents: PlaceholderContents, Done: true})
}

// Load parses the persisted representation: a JSON array of task records.
// An object with a "tasks" array is accepted as well. Empty input yields an
// empty tree.
func Load(data []byte) (*Tree, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return New(), nil
	}

	switch data[0] {
	case '[':
		var tasks []Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return New(tasks...), nil
	case '{':
		var wrapped struct {
			Tasks []Task `json:"tasks"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return New(wrapped.Tasks...), nil
	default:
		return nil, fmt.Errorf("decode tasks: expected a JSON array or object")
	}
}

// Serialize writes the tree as an indented JSON array.
func (t *Tree) Serialize() ([]byte, error) {
	tasks := t.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Equal reports whether two task lists have the same contents, flags and
// shape. Nil and empty child lists compare equal.
func Equal(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Contents != b[i].Contents || a[i].Done != b[i].Done {
			return false
		}
		if !Equal(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}
