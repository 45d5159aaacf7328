package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	opFocus            = "focus"
	opChange           = "change"
	opBlur             = "blur"
	opSubmitError      = "submit-error"
	opClearSubmitError = "clear-submit-error"
	opReset            = "reset"
	opShow             = "show"
)

// step is one parsed script line.
type step struct {
	line  int
	op    string
	field string
	value string
}

// parseScript reads one event per line. A change value is the rest of the
// line after the field name and may contain spaces or be empty.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		op, rest, _ := strings.Cut(text, " ")
		rest = strings.TrimLeft(rest, " ")
		s := step{line: line, op: op}

		switch op {
		case opFocus, opBlur:
			if rest == "" || strings.Contains(rest, " ") {
				return nil, fmt.Errorf("script line %d: %s takes exactly one field", line, op)
			}
			s.field = rest
		case opChange:
			field, value, _ := strings.Cut(rest, " ")
			if field == "" {
				return nil, fmt.Errorf("script line %d: change needs a field", line)
			}
			s.field, s.value = field, value
		case opSubmitError, opClearSubmitError, opReset, opShow:
			if rest != "" {
				return nil, fmt.Errorf("script line %d: %s takes no arguments", line, op)
			}
		default:
			return nil, fmt.Errorf("script line %d: unknown event %q", line, op)
		}
		steps = append(steps, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}
