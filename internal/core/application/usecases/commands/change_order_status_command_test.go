package commands_test

import (
	"testing"

	"formation/internal/core/application/usecases/commands"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_ValidInput(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()

	// Act
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, "CANCELLED", "admin@example.com", "customer request")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.Cancelled, cmd.NewStatus())
	assert.Equal(t, "admin@example.com", cmd.ChangedBy())
	assert.Equal(t, "customer request", cmd.Notes())
}

func TestNewChangeOrderStatusCommand_AllStatuses(t *testing.T) {
	testCases := []struct {
		status   string
		expected order.Status
	}{
		{status: "PENDING_PROCESSING", expected: order.PendingProcessing},
		{status: "PROCESSING", expected: order.Processing},
		{status: "COMPLETED", expected: order.Completed},
		{status: "CANCELLED", expected: order.Cancelled},
		{status: "REFUNDED", expected: order.Refunded},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), tc.status, "admin", "")

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd.NewStatus())
		})
	}
}

func TestNewChangeOrderStatusCommand_InvalidStatus(t *testing.T) {
	testCases := []struct {
		name   string
		status string
	}{
		{name: "empty string", status: ""},
		{name: "unknown value", status: "ARCHIVED"},
		{name: "lower case", status: "cancelled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), tc.status, "admin", "")

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestNewChangeOrderStatusCommand_EmptyChangedBy(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), "CANCELLED", "", "notes")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewChangeOrderStatusCommand_InvalidOrderID(t *testing.T) {
	var invalidID kernel.UUID // zero value

	_, err := commands.NewChangeOrderStatusCommand(invalidID, "CANCELLED", "admin", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestChangeOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ChangeOrderStatusCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
