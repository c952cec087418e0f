// Package matrix generates execution-test matrices from the pipeline
// configuration space.
//
// A matrix is an ordered list of named, fixture-bound configurations. The
// exhaustive generator collapses the configuration cross product through
// command signatures: two configurations with equal signatures exercise
// identical executable behavior in the test phase, so only the first is
// kept.
package matrix

import (
	"sort"
	"strings"

	"github.com/pipesmith/pipesmith/internal/extract"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// signatureDelimiter joins the canonicalized command pairs.
const signatureDelimiter = "|"

// Signature computes the canonical equivalence key of a configuration's
// test-phase behavior: each extracted test command becomes
// "category:trimmed-command", the pairs are sorted lexicographically and
// joined with a fixed delimiter.
//
// The signature depends only on axes that affect emitted test-phase
// commands (package manager, test kinds, the three test flags, caching).
// Axes that never touch the test job, storage type above all, leave it
// unchanged; the exhaustive generator's deduplication relies on this.
func Signature(cfg *pipeline.Config) string {
	commands := extract.TestCommands(cfg)
	parts := make([]string, 0, len(commands))
	for _, cmd := range commands {
		parts = append(parts, string(cmd.Category)+":"+strings.TrimSpace(cmd.Command))
	}
	sort.Strings(parts)
	return strings.Join(parts, signatureDelimiter)
}
