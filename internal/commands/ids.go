package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrIDRequired indicates no identifier was provided.
var ErrIDRequired = errors.New("id required")

// ParseID parses a single task or event identifier from args.
//
// Accepted forms, for prefix "task-":
//  1. 7        → "7"
//  2. task-7   → "7" (the row's element id)
//  3. #task-7  → "7" (a selector)
//
// More than one argument, or an identifier containing whitespace, is an error.
func ParseID(args []string, prefix string) (string, error) {
	if len(args) == 0 {
		return "", ErrIDRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}

	id := strings.TrimPrefix(args[0], "#")
	id = strings.TrimPrefix(id, prefix)
	if id == "" {
		return "", ErrIDRequired
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("invalid id: %q", args[0])
	}
	return id, nil
}
