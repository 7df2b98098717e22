package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_HappyPath(t *testing.T) {
	l, err := newLifecycle("run-1")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, l.state())

	steps := []struct {
		event string
		want  State
	}{
		{EventLoad, StateLoading},
		{EventResolve, StateResolving},
		{EventExecute, StateExecuting},
		{EventSucceed, StateSucceeded},
	}
	for _, s := range steps {
		l.send(s.event)
		assert.Equal(t, s.want, l.state(), "after %s", s.event)
	}
	assert.NoError(t, l.err())
}

func TestLifecycle_FailRecordsError(t *testing.T) {
	l, err := newLifecycle("run-1")
	require.NoError(t, err)
	boom := errors.New("boom")

	l.send(EventLoad)
	l.fail(boom)

	assert.Equal(t, StateFailed, l.state())
	assert.Equal(t, boom, l.err())
}

func TestLifecycle_IgnoresOutOfOrderEvents(t *testing.T) {
	l, err := newLifecycle("run-1")
	require.NoError(t, err)

	l.send(EventExecute)
	assert.Equal(t, StateIdle, l.state())

	l.send(EventLoad)
	l.send(EventSucceed)
	assert.Equal(t, StateLoading, l.state())
}

func TestLifecycle_RestartClearsError(t *testing.T) {
	l, err := newLifecycle("run-1")
	require.NoError(t, err)

	l.send(EventLoad)
	l.fail(errors.New("boom"))
	l.send(EventLoad)

	assert.Equal(t, StateLoading, l.state())
	assert.NoError(t, l.err())
}
