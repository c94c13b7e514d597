package tasktree

import (
	"strconv"
	"strings"
)

// ID is a positional task id: 1-based indexes from the root down.
type ID []int

// ParseID parses a dotted id such as "2.1.4".
// Components must be positive integers; leading zeros are allowed.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, idError(s, ErrMalformedID)
	}

	parts := strings.Split(s, ".")
	id := make(ID, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, idError(s, ErrMalformedID)
		}
		for i := 0; i < len(part); i++ {
			if part[i] < '0' || part[i] > '9' {
				return nil, idError(s, ErrMalformedID)
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, idError(s, ErrMalformedID)
		}
		id = append(id, n)
	}
	return id, nil
}

// String formats the id in dotted form.
func (id ID) String() string {
	parts := make([]string, len(id))
	for i, n := range id {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Depth is the number of components.
func (id ID) Depth() int {
	return len(id)
}

// Parent returns the id of the enclosing task, or nil for a root-level id.
func (id ID) Parent() ID {
	if len(id) <= 1 {
		return nil
	}
	return append(ID(nil), id[:len(id)-1]...)
}

// Last returns the final component, or 0 for an empty id.
func (id ID) Last() int {
	if len(id) == 0 {
		return 0
	}
	return id[len(id)-1]
}

// Child returns the id of the n-th child of id.
func (id ID) Child(n int) ID {
	out := make(ID, len(id), len(id)+1)
	copy(out, id)
	return append(out, n)
}

// Equal compares ids component by component.
func (id ID) Equal(other ID) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix names id itself or one of its ancestors.
func (id ID) HasPrefix(prefix ID) bool {
	if len(prefix) > len(id) {
		return false
	}
	return id[:len(prefix)].Equal(prefix)
}

// Compare orders ids depth-first, the order Render prints them in.
func (id ID) Compare(other ID) int {
	for i := 0; i < len(id) && i < len(other); i++ {
		if id[i] != other[i] {
			if id[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(id) < len(other):
		return -1
	case len(id) > len(other):
		return 1
	}
	return 0
}

func (id ID) clone() ID {
	return append(ID(nil), id...)
}
