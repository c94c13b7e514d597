package todo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/em-s-h/tsk/internal/tasktree"
)

// ErrLineBreak is returned when task contents cannot be written one task per line.
var ErrLineBreak = errors.New("contents contain a line break")

// encodeText writes one task per line. Contents are written as they are, so
// a task holding a line break is rejected rather than split across lines.
func encodeText(tree *tasktree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	err := tree.Walk(func(id tasktree.ID, task *tasktree.Task) error {
		if strings.ContainsAny(task.Contents, "\r\n") {
			return fmt.Errorf("encode text: task %s: %w", id, ErrLineBreak)
		}
		buf.WriteString(strings.Repeat("\t", id.Depth()-1))
		buf.WriteString(tasktree.Checkbox(task.Done))
		buf.WriteByte(' ')
		buf.WriteString(task.Contents)
		buf.WriteByte('\n')
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeText reads the checkbox list format. Blank lines are skipped; a line
// may be indented at most one level deeper than the one before it. Trailing
// spaces belong to the contents.
func decodeText(data []byte) (*tasktree.Tree, error) {
	tree := tasktree.New()
	// stack[d] is the list that receives tasks at depth d.
	stack := []*[]tasktree.Task{&tree.Tasks}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		body := strings.TrimLeft(line, "\t")
		depth := len(line) - len(body)
		if depth >= len(stack) {
			return nil, fmt.Errorf("decode text: line %d: indented too deep", lineNo)
		}

		task, err := parseTextLine(body)
		if err != nil {
			return nil, fmt.Errorf("decode text: line %d: %w", lineNo, err)
		}

		list := stack[depth]
		*list = append(*list, task)
		stack = append(stack[:depth+1], &(*list)[len(*list)-1].Children)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return tree, nil
}

func parseTextLine(body string) (tasktree.Task, error) {
	if len(body) < 3 || body[0] != '[' || body[2] != ']' {
		return tasktree.Task{}, fmt.Errorf("expected \"[ ]\" or \"[X]\", got %q", body)
	}
	var done bool
	switch body[1] {
	case 'X', 'x':
		done = true
	case ' ':
	default:
		return tasktree.Task{}, fmt.Errorf("unknown checkbox %q", body[:3])
	}
	return tasktree.Task{
		Contents: strings.TrimPrefix(body[3:], " "),
		Done:     done,
	}, nil
}
