package order_test

import (
	"math"
	"testing"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryOrder(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create order with valid parameters", func(t *testing.T) {
		o, err := order.NewDeliveryOrder(validID, 4, kernel.B, 17)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, uint32(4), o.Complexity())
		assert.Equal(t, kernel.B, o.Restaurant())
		assert.Equal(t, uint64(17), o.CreationTime())
	})

	t.Run("should aggregate every invalid parameter", func(t *testing.T) {
		var zeroID kernel.UUID

		o, err := order.NewDeliveryOrder(zeroID, 0, kernel.Unknown, 0)

		require.Error(t, err)
		assert.Zero(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "complexity")
		assert.Contains(t, err.Error(), "Unknown")
	})

	t.Run("complexity above the maximum is rejected", func(t *testing.T) {
		_, err := order.NewDeliveryOrder(validID, order.MaxComplexity+1, kernel.B, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = order.NewDeliveryOrder(validID, math.MaxUint32, kernel.B, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		o, err := order.NewDeliveryOrder(validID, order.MaxComplexity, kernel.B, 0)
		require.NoError(t, err)
		assert.Equal(t, order.MaxComplexity, o.Complexity())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.DeliveryOrder
		assert.Equal(t, order.ErrDeliveryOrderIsNotConstructed, o.Validate())
	})
}

func TestDeliveryOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, err := order.NewDeliveryOrder(id, 1, kernel.A, 0)
	require.NoError(t, err)
	b, err := order.NewDeliveryOrder(id, 9, kernel.H, 5)
	require.NoError(t, err)
	c, err := order.NewDeliveryOrder(kernel.NewUUID(), 1, kernel.A, 0)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b), "identity decides equality")
	assert.False(t, a.IsEqual(c))
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		apply   func(order.Status) (order.Status, error)
		want    order.Status
		wantErr string
	}{
		{"assign created", order.Created, order.Status.Assign, order.Assigned, ""},
		{"assign assigned", order.Assigned, order.Status.Assign, order.Unknown, "Assigned is not a valid status to assign"},
		{"requeue assigned", order.Assigned, order.Status.Requeue, order.Created, ""},
		{"requeue completed", order.Completed, order.Status.Requeue, order.Unknown, "Completed is not a valid status to requeue"},
		{"complete assigned", order.Assigned, order.Status.Complete, order.Completed, ""},
		{"complete created", order.Created, order.Status.Complete, order.Unknown, "Created is not a valid status to complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Created.Validate())
	require.NoError(t, order.Completed.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "Unknown", order.Status(99).String())
}
