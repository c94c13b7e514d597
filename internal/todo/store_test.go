package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/em-s-h/tsk/internal/tasktree"
)

func sampleTree() *tasktree.Tree {
	return tasktree.New(
		tasktree.Task{Contents: "write report", Children: []tasktree.Task{
			{Contents: "outline", Done: true},
			{Contents: "draft", Children: []tasktree.Task{{Contents: "intro"}}},
		}},
		tasktree.Task{Contents: "ship it", Done: true},
	)
}

func TestStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"tasks.json", "tasks.yaml", "tasks.yml", "tasks.toml", "tasks.txt"} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), name))
			require.NoError(t, store.Save(sampleTree()))

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.True(t, tasktree.Equal(sampleTree().Tasks, loaded.Tasks),
				"round trip changed the tree: %+v", loaded.Tasks)
		})
	}
}

func TestStoreJSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewStore(path)
	require.NoError(t, store.Save(tasktree.New(tasktree.Task{Contents: "a"})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"contents\": \"a\",\n    \"done\": false,\n    \"children\": []\n  }\n]\n", string(data))
}

func TestStoreTextLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store := NewStore(path)
	require.NoError(t, store.Save(sampleTree()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[ ] write report\n\t[X] outline\n\t[ ] draft\n\t\t[ ] intro\n[X] ship it\n", string(data))
}

func TestStoreConfiguredFormatWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.data")
	store := &Store{Path: path, Format: FormatYAML}
	require.NoError(t, store.Save(sampleTree()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "schema_version: 1\n"), "got %q", data)
}

func TestStorePlaceholder(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		tree, err := NewStore(filepath.Join(dir, "nested", "missing.json")).Load()
		require.NoError(t, err)
		assert.True(t, tasktree.Equal(tasktree.Placeholder().Tasks, tree.Tasks))
	})

	t.Run("blank file", func(t *testing.T) {
		path := filepath.Join(dir, "blank.json")
		require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))
		tree, err := NewStore(path).Load()
		require.NoError(t, err)
		assert.True(t, tasktree.Equal(tasktree.Placeholder().Tasks, tree.Tasks))
	})
}

func TestStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse task file")

	_, err = NewStore(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read task file")
}

func TestStoreUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewStore(path)

	tree, err := store.Update(func(tree *tasktree.Tree) error {
		return tree.Add("first", tasktree.Bottom, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len(), "placeholder plus the new task")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, tasktree.Equal(tree.Tasks, loaded.Tasks))
	assert.Equal(t, "first", loaded.Tasks[1].Contents)
}

func TestStoreUpdateFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewStore(path)
	require.NoError(t, store.Save(sampleTree()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Update(func(tree *tasktree.Tree) error {
		tree.Tasks = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	_, err = store.Update(func(tree *tasktree.Tree) error {
		return tree.Delete(tasktree.ID{9})
	})
	assert.ErrorIs(t, err, tasktree.ErrIDOutOfRange)
}

func TestStoreUpdateTextLineBreak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store := NewStore(path)
	require.NoError(t, store.Save(sampleTree()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.Update(func(tree *tasktree.Tree) error {
		return tree.Add("line one\nline two", tasktree.Bottom, nil)
	})
	require.ErrorIs(t, err, ErrLineBreak)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, tasktree.Equal(sampleTree().Tasks, loaded.Tasks))

	// A missing file stays missing.
	fresh := NewStore(filepath.Join(t.TempDir(), "new.txt"))
	_, err = fresh.Update(func(tree *tasktree.Tree) error {
		return tree.Add("a\r\nb", tasktree.Top, nil)
	})
	require.ErrorIs(t, err, ErrLineBreak)
	_, statErr := os.Stat(fresh.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStoreUpdateWithLock(t *testing.T) {
	dir := t.TempDir()
	store := &Store{Path: filepath.Join(dir, "tasks.json"), Lock: true}

	for i := 0; i < 3; i++ {
		_, err := store.Update(func(tree *tasktree.Tree) error {
			return tree.Add("task", tasktree.Bottom, nil)
		})
		require.NoError(t, err)
	}

	tree, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Len())
	assert.FileExists(t, store.LockPath())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp.", "temporary file left behind")
	}
}

func TestStoreValidateOnLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"contents":"a","done":"yes"}]`), 0o644))

		_, err := (&Store{Path: path, Validate: true}).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed validation")

		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "tasks.yaml")
		store := &Store{Path: path, Validate: true}
		require.NoError(t, store.Save(sampleTree()))
		_, err := store.Load()
		assert.NoError(t, err)
	})
}
