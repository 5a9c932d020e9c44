package trade

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), uuid.New(), -6.2088, 106.8456)
	require.NoError(t, err)
	return o
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusWaitingPayment.CanTransitionTo(OrderStatusWaitingConfirmation))
	assert.True(t, OrderStatusWaitingPayment.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusWaitingPayment.CanTransitionTo(OrderStatusProcessed))

	assert.True(t, OrderStatusWaitingConfirmation.CanTransitionTo(OrderStatusProcessed))
	assert.True(t, OrderStatusWaitingConfirmation.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusWaitingConfirmation.CanTransitionTo(OrderStatusShipped))

	assert.True(t, OrderStatusProcessed.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusProcessed.CanTransitionTo(OrderStatusCancelled))

	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusWaitingPayment))
}

func TestNewOrder(t *testing.T) {
	t.Run("starts waiting for payment", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, OrderStatusWaitingPayment, o.Status)
		assert.True(t, strings.HasPrefix(o.InvoiceNumber, "INV/"))
		assert.True(t, o.TotalPrice.IsZero())
		assert.Empty(t, o.Items)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, uuid.New(), 0, 0)
		require.Error(t, err)

		_, err = NewOrder(uuid.New(), uuid.Nil, 0, 0)
		require.Error(t, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.AddItem(uuid.New(), 2, decimal.NewFromInt(150000)))
	require.NoError(t, o.AddItem(uuid.New(), 1, decimal.NewFromInt(80000)))

	assert.Len(t, o.Items, 2)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(380000)), "total is the sum of subtotals, got %s", o.TotalPrice)
	assert.True(t, o.Items[0].Subtotal.Equal(decimal.NewFromInt(300000)))

	t.Run("rejects invalid lines", func(t *testing.T) {
		assert.Error(t, o.AddItem(uuid.Nil, 1, decimal.NewFromInt(100)))
		assert.Error(t, o.AddItem(uuid.New(), 0, decimal.NewFromInt(100)))
		assert.Error(t, o.AddItem(uuid.New(), 1, decimal.NewFromInt(-100)))
	})
}

func TestOrder_PaymentLifecycle(t *testing.T) {
	t.Run("full path to shipped", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AttachPaymentProof("https://cdn.example.com/proof.jpg"))
		assert.Equal(t, OrderStatusWaitingConfirmation, o.Status)
		assert.Equal(t, "https://cdn.example.com/proof.jpg", o.PaymentProofImage)

		require.NoError(t, o.ConfirmPayment())
		assert.Equal(t, OrderStatusProcessed, o.Status)

		require.NoError(t, o.Ship())
		assert.Equal(t, OrderStatusShipped, o.Status)
	})

	t.Run("confirm requires waiting confirmation", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Error(t, o.ConfirmPayment(), "cannot confirm before proof is attached")
	})

	t.Run("cancel before processing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, OrderStatusCancelled, o.Status)

		assert.Error(t, o.AttachPaymentProof("https://cdn.example.com/proof.jpg"))
	})

	t.Run("processed orders cannot cancel", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachPaymentProof("proof.jpg"))
		require.NoError(t, o.ConfirmPayment())

		assert.Error(t, o.Cancel())
	})
}

func TestNewOrderItem(t *testing.T) {
	item, err := NewOrderItem(uuid.New(), uuid.New(), 3, decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(150000)))

	_, err = NewOrderItem(uuid.New(), uuid.Nil, 3, decimal.NewFromInt(50000))
	assert.Error(t, err)
}
