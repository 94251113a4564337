package job

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStage is returned when a stage identifier is not one of A/B/C
// (aliases: setup/run/wrapup).
var ErrInvalidStage = errors.New("invalid stage id")

// Stage group prefixes. A job belongs to the group whose prefix set matches
// the start of its name; names matching none of the prefixes are dropped
// from all groups.
var stagePrefixes = map[string][]string{
	"A": {"single_kmap", "tseries_boot"},
	"B": {"kmdl_boot"},
	"C": {"kmdl_Gx", "nkmap"},
}

// Partition is the three disjoint stage groups produced from one flat store.
// It is used for single-process staged execution; the full job list stays in
// the originating store for provenance.
type Partition struct {
	Setup  *Store // group A: bootstrap and setup jobs
	Run    *Store // group B: per-resampling compute jobs
	Wrapup *Store // group C: aggregation jobs
}

func matchesStage(name, stage string) bool {
	for _, prefix := range stagePrefixes[stage] {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Split classifies every descriptor of the store into its stage group,
// preserving insertion order. Splitting is deterministic and idempotent:
// each prefix-matching name lands in exactly one group.
func Split(s *Store) Partition {
	p := Partition{
		Setup:  &Store{byName: make(map[string]Descriptor)},
		Run:    &Store{byName: make(map[string]Descriptor)},
		Wrapup: &Store{byName: make(map[string]Descriptor)},
	}
	for _, d := range s.Descriptors() {
		switch {
		case matchesStage(d.Name, "A"):
			p.Setup.Add(d) //nolint:errcheck // source store already guarantees unique names
		case matchesStage(d.Name, "B"):
			p.Run.Add(d) //nolint:errcheck
		case matchesStage(d.Name, "C"):
			p.Wrapup.Add(d) //nolint:errcheck
		}
	}
	return p
}

// Stage resolves a stage identifier to its group. Accepted identifiers are
// "A"/"B"/"C" and the aliases "setup"/"run"/"wrapup".
func (p Partition) Stage(id string) (*Store, error) {
	switch strings.ToUpper(id) {
	case "A", "SETUP":
		return p.Setup, nil
	case "B", "RUN":
		return p.Run, nil
	case "C", "WRAPUP", "WRAP-UP":
		return p.Wrapup, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, id)
	}
}
