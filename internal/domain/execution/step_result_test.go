package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/etc-dev/etc/internal/domain/compiler"
)

func TestStepResult(t *testing.T) {
	name := compiler.NewStepName("system-packages", 0)
	cause := errors.New("boom")

	result := NewStepResult(name, StatusFailed, 3, cause).WithDuration(2 * time.Second)

	assert.Equal(t, name, result.Name())
	assert.Equal(t, StatusFailed, result.Status())
	assert.Equal(t, 3, result.Code())
	assert.Equal(t, cause, result.Error())
	assert.Equal(t, 2*time.Second, result.Duration())
	assert.False(t, result.Success())
	assert.True(t, NewStepResult(name, StatusSucceeded, 0, nil).Success())
}

func TestResult_Failed(t *testing.T) {
	ok := Result{Steps: []StepResult{NewStepResult(compiler.NewStepName("a", 0), StatusSucceeded, 0, nil)}}
	_, found := ok.Failed()
	assert.False(t, found)
	assert.True(t, ok.Success())
}
