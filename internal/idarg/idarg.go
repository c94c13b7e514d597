// Package idarg expands the id arguments accepted on the command line into
// task ids.
//
// Accepted forms:
//
//	-all, all      every root-level task
//	3, 1.2.4       a single id
//	1,3,5          several ids; undotted items after the first share its parent
//	1..3, 2.1..3   an inclusive range of siblings
//
// Ranges may appear as items of a list ("1..3,7").
package idarg

import (
	"errors"
	"sort"
	"strings"

	"github.com/em-s-h/tsk/internal/tasktree"
	"github.com/em-s-h/tsk/internal/utils"
)

// ErrWantOne is returned by ParseOne when the argument names several tasks.
var ErrWantOne = errors.New("expected a single id")

// Parse expands arg against tree. Every returned id resolves in tree; the
// result is sorted depth-first and holds no duplicates.
func Parse(arg string, tree *tasktree.Tree) ([]tasktree.ID, error) {
	arg = strings.TrimSpace(arg)
	if arg == "-all" || arg == "all" {
		if tree.Len() == 0 {
			return nil, &tasktree.IDError{ID: arg, Err: tasktree.ErrEmptyTree}
		}
		ids := make([]tasktree.ID, tree.Len())
		for i := range ids {
			ids[i] = tasktree.ID{i + 1}
		}
		return ids, nil
	}

	items := utils.SplitAndTrim(arg, ",")
	if len(items) == 0 {
		return nil, &tasktree.IDError{ID: arg, Err: tasktree.ErrMalformedID}
	}

	var ids []tasktree.ID
	var parent tasktree.ID
	for i, item := range items {
		expanded, err := expand(item, parent, i > 0)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			parent = expanded[0].Parent()
		}
		ids = append(ids, expanded...)
	}

	for _, id := range ids {
		if _, err := tree.Get(id); err != nil {
			return nil, err
		}
	}
	return sortUnique(ids), nil
}

// ParseOne parses an argument that must name exactly one task.
func ParseOne(arg string, tree *tasktree.Tree) (tasktree.ID, error) {
	ids, err := Parse(arg, tree)
	if err != nil {
		return nil, err
	}
	if len(ids) != 1 {
		return nil, &tasktree.IDError{ID: arg, Err: ErrWantOne}
	}
	return ids[0], nil
}

// expand turns one list item into ids. Undotted items inherit parent when
// inherit is set.
func expand(item string, parent tasktree.ID, inherit bool) ([]tasktree.ID, error) {
	start, end, isRange := strings.Cut(item, "..")

	first, err := tasktree.ParseID(start)
	if err != nil {
		return nil, err
	}
	if inherit && !strings.Contains(start, ".") && parent != nil {
		first = parent.Child(first.Last())
	}
	if !isRange {
		return []tasktree.ID{first}, nil
	}

	if strings.Contains(end, ".") {
		return nil, &tasktree.IDError{ID: item, Err: tasktree.ErrMalformedID}
	}
	last, err := tasktree.ParseID(end)
	if err != nil {
		return nil, &tasktree.IDError{ID: item, Err: tasktree.ErrMalformedID}
	}
	to := last.Last()
	if to < first.Last() {
		return nil, &tasktree.IDError{ID: item, Err: tasktree.ErrMalformedID}
	}

	base := first.Parent()
	ids := make([]tasktree.ID, 0, to-first.Last()+1)
	for n := first.Last(); n <= to; n++ {
		ids = append(ids, base.Child(n))
	}
	return ids, nil
}

func sortUnique(ids []tasktree.ID) []tasktree.ID {
	sorted := make([]tasktree.ID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})
	out := sorted[:0]
	for i, id := range sorted {
		if i > 0 && id.Equal(sorted[i-1]) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// String joins ids the way they are printed in messages.
func String(ids []tasktree.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
