package matrix

import (
	"fmt"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// Fixture app identifiers, chosen solely by package manager.
const (
	FixtureYarn = "rn-fixture-yarn"
	FixtureNPM  = "rn-fixture-npm"
	FixturePNPM = "rn-fixture-pnpm"
)

// FixtureFor returns the fixture app identifier for a package manager.
func FixtureFor(pm pipeline.PackageManager) string {
	switch pm {
	case pipeline.NPM:
		return FixtureNPM
	case pipeline.PNPM:
		return FixturePNPM
	default:
		return FixtureYarn
	}
}

// Entry is one named, fixture-bound configuration selected for
// execution-based testing.
type Entry struct {
	// Name is unique within a matrix.
	Name string `json:"name"`

	// Config is the configuration that produced the entry.
	Config pipeline.Config `json:"config"`

	// Fixture identifies the sample app to replay commands against.
	Fixture string `json:"fixture"`
}

// Matrix is an ordered list of entries with globally unique names.
type Matrix []Entry

// Entry returns the entry at the given zero-based index, or an
// out-of-range error for indexes outside the matrix bounds.
func (m Matrix) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(m) {
		return Entry{}, fmt.Errorf("%w: index %d, matrix has %d entries", errors.ErrIndexOutOfRange, index, len(m))
	}
	return m[index], nil
}

// Validate checks that every entry name is unique within the matrix.
func (m Matrix) Validate() error {
	seen := make(map[string]struct{}, len(m))
	for _, entry := range m {
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("%w: %q", errors.ErrDuplicateEntryName, entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}
