package guard_test

import (
	"errors"
	"testing"

	"formation/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used by
// the command types in this codebase to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type toggleStep struct {
		eventType string
		completed bool
		guard     guard.ConstructorGuard
	}

	var errToggleStepNotConstructed = errors.New("toggleStep must be created via newToggleStep")

	newToggleStep := func(eventType string, completed bool) (toggleStep, error) {
		if eventType == "" {
			return toggleStep{}, errors.New("eventType is required")
		}
		return toggleStep{
			eventType: eventType,
			completed: completed,
			guard:     guard.NewConstructorGuard(),
		}, nil
	}

	validateToggleStep := func(s toggleStep) error {
		return s.guard.Validate(errToggleStepNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		step, err := newToggleStep("LLC_FILED", true)

		require.NoError(t, err)
		require.NoError(t, validateToggleStep(step))
		assert.Equal(t, "LLC_FILED", step.eventType)
		assert.True(t, step.completed)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var step toggleStep // zero value

		err := validateToggleStep(step)

		require.Error(t, err)
		assert.Equal(t, errToggleStepNotConstructed, err)
	})
}
