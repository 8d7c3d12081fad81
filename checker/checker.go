// Package checker implements the output-comparison policy: trim leading
// and trailing whitespace from both sides, then compare bytes exactly.
// Grounded on original_source/src/judge/checker.rs.
package checker

import (
	"strings"

	"github.com/codecourt/judge-engine/model"
)

// Check compares expected against actual under the trim policy described
// in spec.md §4.3. No interior whitespace normalization is performed.
func Check(expected, actual string) model.Verdict {
	if strings.TrimSpace(expected) == strings.TrimSpace(actual) {
		return model.VerdictAccepted
	}
	return model.VerdictWrongAnswer
}
