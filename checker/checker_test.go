package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codecourt/judge-engine/model"
)

func TestCheckExactMatch(t *testing.T) {
	assert.Equal(t, model.VerdictAccepted, Check("Hello, World!", "Hello, World!"))
}

func TestCheckTrimsSurroundingWhitespace(t *testing.T) {
	assert.Equal(t, model.VerdictAccepted, Check("3\n", "3\n\n"))
	assert.Equal(t, model.VerdictAccepted, Check("  3  ", "3"))
}

func TestCheckInteriorWhitespacePreserved(t *testing.T) {
	assert.Equal(t, model.VerdictWrongAnswer, Check("1 2 3", "1  2  3"))
}

func TestCheckMismatch(t *testing.T) {
	assert.Equal(t, model.VerdictWrongAnswer, Check("expected", "actual"))
}

func TestCheckCaseSensitive(t *testing.T) {
	assert.Equal(t, model.VerdictWrongAnswer, Check("Hello", "hello"))
}

func TestCheckIdempotent(t *testing.T) {
	// Checking a padded string against itself accepts, and repeating the
	// check gives the same verdict.
	a := "  result  \n"
	first := Check(a, a)
	second := Check(a, a)
	assert.Equal(t, first, second)
	assert.Equal(t, model.VerdictAccepted, first)
}
