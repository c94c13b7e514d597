package idarg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/em-s-h/tsk/internal/tasktree"
)

// fixture has three root tasks; task 2 has three subtasks and 2.1 has one.
func fixture() *tasktree.Tree {
	return tasktree.New(
		tasktree.Task{Contents: "a"},
		tasktree.Task{Contents: "b", Children: []tasktree.Task{
			{Contents: "b1", Children: []tasktree.Task{{Contents: "b1x"}}},
			{Contents: "b2"},
			{Contents: "b3"},
		}},
		tasktree.Task{Contents: "c"},
	)
}

func TestParse(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"2", "2"},
		{" 2.1.1 ", "2.1.1"},
		{"-all", "1, 2, 3"},
		{"all", "1, 2, 3"},
		{"3,1", "1, 3"},
		{"1,1,1", "1"},
		{"2.1,3", "2.1, 2.3"},
		{"2.3,1", "2.1, 2.3"},
		{"2.1,3,2.2", "2.1, 2.2, 2.3"},
		{"1..3", "1, 2, 3"},
		{"2..2", "2"},
		{"2.1..3", "2.1, 2.2, 2.3"},
		{"2.2,1..3", "2.1, 2.2, 2.3"},
		{"1..2,3", "1, 2, 3"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			ids, err := Parse(tt.arg, fixture())
			require.NoError(t, err)
			assert.Equal(t, tt.want, String(ids))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		arg  string
		want error
	}{
		{"", tasktree.ErrMalformedID},
		{",", tasktree.ErrMalformedID},
		{"0", tasktree.ErrMalformedID},
		{"x", tasktree.ErrMalformedID},
		{"-1", tasktree.ErrMalformedID},
		{"1..", tasktree.ErrMalformedID},
		{"3..1", tasktree.ErrMalformedID},
		{"1..2.1", tasktree.ErrMalformedID},
		{"4", tasktree.ErrIDOutOfRange},
		{"1,4", tasktree.ErrIDOutOfRange},
		{"2.1,4", tasktree.ErrIDOutOfRange},
		{"1..4", tasktree.ErrIDOutOfRange},
		{"1.1", tasktree.ErrIDOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := Parse(tt.arg, fixture())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var idErr *tasktree.IDError
			assert.True(t, errors.As(err, &idErr), "error should carry the id: %v", err)
		})
	}
}

func TestParseEmptyTree(t *testing.T) {
	_, err := Parse("-all", tasktree.New())
	assert.ErrorIs(t, err, tasktree.ErrEmptyTree)

	_, err = Parse("1", tasktree.New())
	assert.ErrorIs(t, err, tasktree.ErrEmptyTree)
}

func TestParseOne(t *testing.T) {
	id, err := ParseOne("2.3", fixture())
	require.NoError(t, err)
	assert.Equal(t, "2.3", id.String())

	_, err = ParseOne("1,2", fixture())
	assert.ErrorIs(t, err, ErrWantOne)

	_, err = ParseOne("9", fixture())
	assert.ErrorIs(t, err, tasktree.ErrIDOutOfRange)
}
