package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etc-dev/etc/internal/ports"
)

func TestLogger_RecordsEntries(t *testing.T) {
	logger := NewLogger()
	ctx := context.Background()

	logger.Trace(ctx, "trace")
	logger.Warn(ctx, "careful", ports.F("count", 2))

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ports.LevelTrace, entries[0].Level)
	assert.Equal(t, "careful", entries[1].Message)
	assert.Equal(t, 2, entries[1].Fields["count"])
	assert.Len(t, logger.EntriesAt(ports.LevelWarn), 1)
}

func TestLogger_WithSharesRecord(t *testing.T) {
	logger := NewLogger()

	child := logger.With(ports.F("run", "abc"))
	child.Info(context.Background(), "hello")

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].Fields["run"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(ports.LevelWarn)

	logger.Info(context.Background(), "hidden")
	logger.Error(context.Background(), "shown")

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0].Message)
}
