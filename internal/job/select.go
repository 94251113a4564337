package job

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange is returned when a selection index does not address a
// job of the group.
var ErrIndexOutOfRange = errors.New("job index out of range")

// indexSentinel terminates an explicit index list and signals index mode.
const indexSentinel = ";"

// Select resolves a selection expression against a stage group and returns
// the selected descriptors as a new store, preserving the group's original
// ordering.
//
// Two expression forms exist:
//   - index mode: a list of 0-based indices separated by ';', ',' or
//     spaces, terminated by the ';' sentinel (e.g. "3;" or "0;2;4;");
//   - substring mode: any other non-empty pattern keeps the jobs whose name
//     contains it; the empty pattern keeps all jobs.
func Select(group *Store, pattern string) (*Store, error) {
	if !strings.HasSuffix(pattern, indexSentinel) {
		return selectSubstring(group, pattern), nil
	}
	return selectIndices(group, pattern)
}

func selectSubstring(group *Store, pattern string) *Store {
	out := &Store{byName: make(map[string]Descriptor)}
	for _, d := range group.Descriptors() {
		if pattern == "" || strings.Contains(d.Name, pattern) {
			out.Add(d) //nolint:errcheck // group guarantees unique names
		}
	}
	return out
}

func selectIndices(group *Store, pattern string) (*Store, error) {
	fields := strings.FieldsFunc(pattern, func(r rune) bool {
		return r == ';' || r == ',' || r == ' '
	})

	selected := make(map[int]bool, len(fields))
	for _, field := range fields {
		idx, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid job index %q: %w", field, err)
		}
		if idx < 0 || idx >= group.Len() {
			return nil, fmt.Errorf("%w: %d (group has %d jobs)", ErrIndexOutOfRange, idx, group.Len())
		}
		selected[idx] = true
	}

	out := &Store{byName: make(map[string]Descriptor)}
	for i, d := range group.Descriptors() {
		if selected[i] {
			out.Add(d) //nolint:errcheck
		}
	}
	return out, nil
}
