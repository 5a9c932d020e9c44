package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwshop/backend/internal/domain/shared"
)

func newTestTransferRequest(t *testing.T, quantity, previousStock int64) *Mutation {
	t.Helper()
	m, err := NewTransferRequest(
		uuid.New(), uuid.New(), uuid.New(),
		quantity, previousStock,
		uuid.New(), "test transfer", time.Now(),
	)
	require.NoError(t, err)
	return m
}

func TestNewTransferRequest(t *testing.T) {
	productID := uuid.New()
	sourceID := uuid.New()
	destID := uuid.New()
	adminID := uuid.New()

	t.Run("creates pending subtract mutation", func(t *testing.T) {
		m, err := NewTransferRequest(productID, sourceID, destID, 20, 50, adminID, "restock branch", time.Now())

		require.NoError(t, err)
		assert.Equal(t, MutationStatusPending, m.Status)
		assert.Equal(t, MutationTypeSubtract, m.MutationType)
		assert.Equal(t, int64(20), m.MutationQuantity)
		assert.Equal(t, int64(50), m.PreviousStock)
		assert.Equal(t, int64(50), m.Stock, "stock must not move until the request is processed")
		assert.True(t, m.IsManual)
		require.NotNil(t, m.AdminID)
		assert.Equal(t, adminID, *m.AdminID)
		assert.Equal(t, 1, m.Version)
	})

	t.Run("records creation event", func(t *testing.T) {
		m, err := NewTransferRequest(productID, sourceID, destID, 20, 50, adminID, "", time.Now())

		require.NoError(t, err)
		events := m.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMutationCreated, events[0].EventType())
	})

	t.Run("rejects same source and destination", func(t *testing.T) {
		_, err := NewTransferRequest(productID, sourceID, sourceID, 20, 50, adminID, "", time.Now())

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SAME_WAREHOUSE", domainErr.Code)
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		_, err := NewTransferRequest(productID, sourceID, destID, 60, 50, adminID, "", time.Now())

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewTransferRequest(productID, sourceID, destID, 0, 50, adminID, "", time.Now())
		require.Error(t, err)

		_, err = NewTransferRequest(productID, sourceID, destID, -5, 50, adminID, "", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewTransferRequest(uuid.Nil, sourceID, destID, 20, 50, adminID, "", time.Now())
		assert.Error(t, err)

		_, err = NewTransferRequest(productID, uuid.Nil, destID, 20, 50, adminID, "", time.Now())
		assert.Error(t, err)

		_, err = NewTransferRequest(productID, sourceID, destID, 20, 50, uuid.Nil, "", time.Now())
		assert.Error(t, err)
	})

	t.Run("backdates to the requested time", func(t *testing.T) {
		at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		m, err := NewTransferRequest(productID, sourceID, destID, 20, 50, adminID, "", at)

		require.NoError(t, err)
		assert.Equal(t, at, m.CreatedAt)
	})
}

func TestNewAppliedMutation(t *testing.T) {
	productID := uuid.New()
	warehouseID := uuid.New()
	otherID := uuid.New()
	adminID := uuid.New()

	t.Run("add commits immediately as success", func(t *testing.T) {
		m, err := NewAppliedMutation(productID, warehouseID, otherID, MutationTypeAdd, 30, 10, &adminID, false, "")

		require.NoError(t, err)
		assert.Equal(t, MutationStatusSuccess, m.Status)
		assert.Equal(t, int64(40), m.Stock)
		assert.True(t, m.IsBalanced())

		events := m.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMutationSucceeded, events[0].EventType())
	})

	t.Run("subtract commits immediately as success", func(t *testing.T) {
		m, err := NewAppliedMutation(productID, warehouseID, otherID, MutationTypeSubtract, 30, 50, nil, false, "")

		require.NoError(t, err)
		assert.Equal(t, MutationStatusSuccess, m.Status)
		assert.Equal(t, int64(20), m.Stock)
		assert.Nil(t, m.AdminID)
		assert.True(t, m.IsBalanced())
	})

	t.Run("subtract rejects insufficient stock", func(t *testing.T) {
		_, err := NewAppliedMutation(productID, warehouseID, otherID, MutationTypeSubtract, 30, 10, nil, false, "")

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects invalid mutation type", func(t *testing.T) {
		_, err := NewAppliedMutation(productID, warehouseID, otherID, MutationType("square"), 30, 10, nil, false, "")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MUTATION_TYPE", domainErr.Code)
	})
}

func TestMutation_StateMachine(t *testing.T) {
	t.Run("pending to processing to success", func(t *testing.T) {
		m := newTestTransferRequest(t, 20, 50)

		require.NoError(t, m.BeginProcessing())
		assert.Equal(t, MutationStatusProcessing, m.Status)
		assert.Equal(t, int64(50), m.Stock, "stock untouched until completion")

		require.NoError(t, m.Complete())
		assert.Equal(t, MutationStatusSuccess, m.Status)
		assert.Equal(t, int64(30), m.Stock)
		assert.True(t, m.IsBalanced())
	})

	t.Run("pending to cancelled", func(t *testing.T) {
		m := newTestTransferRequest(t, 20, 50)

		require.NoError(t, m.Cancel())
		assert.Equal(t, MutationStatusCancelled, m.Status)
		assert.Equal(t, int64(50), m.Stock)
	})

	t.Run("processing to failed keeps stock", func(t *testing.T) {
		m := newTestTransferRequest(t, 20, 50)
		require.NoError(t, m.BeginProcessing())

		require.NoError(t, m.Fail("stock drifted"))
		assert.Equal(t, MutationStatusFailed, m.Status)
		assert.Equal(t, int64(50), m.Stock)
		assert.Equal(t, "stock drifted", m.Description)
	})

	t.Run("terminal states admit no transitions", func(t *testing.T) {
		completed := newTestTransferRequest(t, 20, 50)
		require.NoError(t, completed.BeginProcessing())
		require.NoError(t, completed.Complete())

		assert.Error(t, completed.BeginProcessing())
		assert.Error(t, completed.Cancel())
		assert.Error(t, completed.Fail("too late"))

		cancelled := newTestTransferRequest(t, 20, 50)
		require.NoError(t, cancelled.Cancel())
		assert.Error(t, cancelled.BeginProcessing())
		assert.Error(t, cancelled.Cancel())
	})

	t.Run("cancel requires pending", func(t *testing.T) {
		m := newTestTransferRequest(t, 20, 50)
		require.NoError(t, m.BeginProcessing())

		err := m.Cancel()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("transitions bump the version", func(t *testing.T) {
		m := newTestTransferRequest(t, 20, 50)
		assert.Equal(t, 1, m.Version)

		require.NoError(t, m.BeginProcessing())
		assert.Equal(t, 2, m.Version)

		require.NoError(t, m.Complete())
		assert.Equal(t, 3, m.Version)
	})
}

func TestMutation_SignedQuantity(t *testing.T) {
	add, err := NewAppliedMutation(uuid.New(), uuid.New(), uuid.New(), MutationTypeAdd, 30, 0, nil, false, "")
	require.NoError(t, err)
	assert.Equal(t, int64(30), add.SignedQuantity())

	sub, err := NewAppliedMutation(uuid.New(), uuid.New(), uuid.New(), MutationTypeSubtract, 30, 40, nil, false, "")
	require.NoError(t, err)
	assert.Equal(t, int64(-30), sub.SignedQuantity())
}

func TestMutation_IsIntraWarehouse(t *testing.T) {
	warehouseID := uuid.New()

	intra, err := NewAppliedMutation(uuid.New(), warehouseID, warehouseID, MutationTypeSubtract, 5, 10, nil, false, "")
	require.NoError(t, err)
	assert.True(t, intra.IsIntraWarehouse())

	inter, err := NewAppliedMutation(uuid.New(), warehouseID, uuid.New(), MutationTypeAdd, 5, 10, nil, false, "")
	require.NoError(t, err)
	assert.False(t, inter.IsIntraWarehouse())
}

func TestMutationStatus(t *testing.T) {
	assert.True(t, MutationStatusSuccess.IsTerminal())
	assert.True(t, MutationStatusFailed.IsTerminal())
	assert.True(t, MutationStatusCancelled.IsTerminal())
	assert.False(t, MutationStatusPending.IsTerminal())
	assert.False(t, MutationStatusProcessing.IsTerminal())

	assert.True(t, MutationStatusPending.IsValid())
	assert.False(t, MutationStatus("done").IsValid())
}
