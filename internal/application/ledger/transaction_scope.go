package ledger

import (
	"context"

	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/partner"
	"github.com/mwshop/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Every mutation write and its journal mirror must go
// through a single Execute call so the pair can never diverge.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that
// participate in ledger transactions. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// MutationRepo returns the mutation repository scoped to the current transaction
	MutationRepo() ledger.MutationRepository
	// JournalRepo returns the journal repository scoped to the current transaction
	JournalRepo() ledger.JournalRepository
	// WarehouseRepo returns the warehouse repository scoped to the current transaction
	WarehouseRepo() partner.WarehouseRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	mutationRepo  ledger.MutationRepository
	journalRepo   ledger.JournalRepository
	warehouseRepo partner.WarehouseRepository
	orderRepo     trade.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	mutationRepo ledger.MutationRepository,
	journalRepo ledger.JournalRepository,
	warehouseRepo partner.WarehouseRepository,
	orderRepo trade.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		mutationRepo:  mutationRepo,
		journalRepo:   journalRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MutationRepo returns the mutation repository.
func (s *NoOpTransactionScope) MutationRepo() ledger.MutationRepository {
	return s.mutationRepo
}

// JournalRepo returns the journal repository.
func (s *NoOpTransactionScope) JournalRepo() ledger.JournalRepository {
	return s.journalRepo
}

// WarehouseRepo returns the warehouse repository.
func (s *NoOpTransactionScope) WarehouseRepo() partner.WarehouseRepository {
	return s.warehouseRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
