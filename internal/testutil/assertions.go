package testutil

import (
	"testing"

	"github.com/etc-dev/etc/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
)

// AssertCommands asserts that runner saw exactly the given command lines, in order.
func AssertCommands(t testing.TB, runner *mocks.CommandRunner, expected ...string) {
	t.Helper()

	if len(expected) == 0 {
		assert.Empty(t, runner.CommandLines(), "expected no commands to run")
		return
	}
	assert.Equal(t, expected, runner.CommandLines())
}

// AssertNoCommandLike asserts that no recorded command line equals line.
func AssertNoCommandLike(t testing.TB, runner *mocks.CommandRunner, line string) {
	t.Helper()

	assert.NotContains(t, runner.CommandLines(), line)
}
