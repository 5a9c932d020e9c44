package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/catalog"
	"github.com/mwshop/backend/internal/domain/identity"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/shared"
)

// TransferService drives the manual transfer workflow: an admin at a source
// warehouse requests a transfer (recorded as a pending subtract mutation plus
// its journal mirror) and later settles it by processing or cancelling.
// Every write pairs the mutation with its journal row in one transaction.
type TransferService struct {
	scope          TransactionScope
	adminRepo      identity.AdminRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewTransferService creates a new TransferService
func NewTransferService(
	scope TransactionScope,
	adminRepo identity.AdminRepository,
	productRepo catalog.ProductRepository,
) *TransferService {
	return &TransferService{
		scope:       scope,
		adminRepo:   adminRepo,
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateManualMutation records an admin-initiated transfer request as a
// pending subtract mutation at the source warehouse. Stock is checked at
// creation time but not yet moved; the request is settled by ProcessMutation.
func (s *TransferService) CreateManualMutation(ctx context.Context, req CreateMutationRequest) (*MutationResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, req.AdminID)
	if err != nil {
		return nil, err
	}
	if !admin.CanOperateWarehouse(req.WarehouseID) {
		return nil, shared.NewDomainError("FORBIDDEN_WAREHOUSE", "Admin is not allowed to operate this warehouse")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active")
	}

	at := time.Now()
	if req.Date != nil {
		at = *req.Date
	}

	var created *ledger.Mutation
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.ensureWarehousePair(ctx, repos, req.WarehouseID, req.DestinationWarehouseID); err != nil {
			return err
		}

		dup, err := repos.MutationRepo().HasDuplicatePending(ctx, ledger.DuplicateKey{
			AdminID:                req.AdminID,
			WarehouseID:            req.WarehouseID,
			DestinationWarehouseID: req.DestinationWarehouseID,
			ProductID:              req.ProductID,
			Quantity:               req.Quantity,
		})
		if err != nil {
			return err
		}
		if dup {
			return shared.NewDomainError("DUPLICATE_REQUEST", "An identical transfer request is already pending")
		}

		stock, err := currentStock(ctx, repos.MutationRepo(), req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}

		m, err := ledger.NewTransferRequest(
			req.ProductID, req.WarehouseID, req.DestinationWarehouseID,
			req.Quantity, stock,
			req.AdminID, req.Description, at,
		)
		if err != nil {
			return err
		}
		if err := repos.MutationRepo().Save(ctx, m); err != nil {
			return err
		}
		if err := repos.JournalRepo().Save(ctx, ledger.NewJournal(m)); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)
	resp := toMutationResponse(created)
	return &resp, nil
}

// ProcessMutation settles a pending request. The process action re-reads the
// source stock inside the transaction: the request succeeds only when stock
// still covers the quantity and matches the snapshot taken at creation time.
// A failed re-validation is persisted as a failed mutation and reported to
// the caller as the underlying error. The cancel action withdraws the
// request without touching stock.
func (s *TransferService) ProcessMutation(ctx context.Context, req ProcessMutationRequest) (*MutationResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, req.AdminID)
	if err != nil {
		return nil, err
	}

	var (
		settled      *ledger.Mutation
		credit       *ledger.Mutation
		rejectReason error
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := repos.MutationRepo().FindPendingByID(ctx, req.MutationID)
		if err != nil {
			return err
		}
		if !admin.CanOperateWarehouse(m.WarehouseID) {
			return shared.NewDomainError("FORBIDDEN_WAREHOUSE", "Admin is not allowed to operate this warehouse")
		}

		journal, err := repos.JournalRepo().FindByMutationID(ctx, m.ID)
		if err != nil {
			return err
		}

		switch req.Action {
		case ProcessActionCancel:
			if err := m.Cancel(); err != nil {
				return err
			}
		case ProcessActionApprove:
			if err := m.BeginProcessing(); err != nil {
				return err
			}
			// Claim the request before re-validating. The version check makes
			// a concurrent processor lose here instead of double-applying.
			if err := repos.MutationRepo().SaveWithLock(ctx, m); err != nil {
				return err
			}

			stock, err := currentStock(ctx, repos.MutationRepo(), m.ProductID, m.WarehouseID)
			if err != nil {
				return err
			}
			switch {
			case stock < m.MutationQuantity:
				rejectReason = shared.ErrInsufficientStock
				if err := m.Fail(fmt.Sprintf("Insufficient stock: %d available, %d requested", stock, m.MutationQuantity)); err != nil {
					return err
				}
			case stock != m.PreviousStock:
				rejectReason = shared.ErrStockDrift
				if err := m.Fail(fmt.Sprintf("Stock drifted from %d to %d since the request was created", m.PreviousStock, stock)); err != nil {
					return err
				}
			default:
				if err := m.Complete(); err != nil {
					return err
				}
			}
		default:
			return shared.NewDomainError("INVALID_ACTION", "Unknown process action")
		}

		if err := repos.MutationRepo().SaveWithLock(ctx, m); err != nil {
			return err
		}
		if err := journal.SyncWith(m); err != nil {
			return err
		}
		if err := repos.JournalRepo().Save(ctx, journal); err != nil {
			return err
		}

		if m.Status == ledger.MutationStatusSuccess {
			c, err := s.creditDestination(ctx, repos, m)
			if err != nil {
				return err
			}
			credit = c
		}

		settled = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, settled, credit)
	if rejectReason != nil {
		return nil, rejectReason
	}

	resp := toMutationResponse(settled)
	return &resp, nil
}

// creditDestination writes the add leg of a completed transfer: a success
// mutation at the destination warehouse plus its journal mirror, committed in
// the same transaction as the source subtract.
func (s *TransferService) creditDestination(ctx context.Context, repos TransactionalRepositories, source *ledger.Mutation) (*ledger.Mutation, error) {
	destStock, err := currentStock(ctx, repos.MutationRepo(), source.ProductID, source.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}

	// The credit row references its own warehouse as destination, the same
	// shape intra-warehouse adjustments use.
	credit, err := ledger.NewAppliedMutation(
		source.ProductID, source.DestinationWarehouseID, source.DestinationWarehouseID,
		ledger.MutationTypeAdd,
		source.MutationQuantity, destStock,
		source.AdminID, source.IsManual,
		fmt.Sprintf("Transfer from warehouse %s", source.WarehouseID),
	)
	if err != nil {
		return nil, err
	}
	if err := repos.MutationRepo().Save(ctx, credit); err != nil {
		return nil, err
	}
	if err := repos.JournalRepo().Save(ctx, ledger.NewJournal(credit)); err != nil {
		return nil, err
	}
	return credit, nil
}

func (s *TransferService) ensureWarehousePair(ctx context.Context, repos TransactionalRepositories, sourceID, destinationID uuid.UUID) error {
	source, err := repos.WarehouseRepo().FindByID(ctx, sourceID)
	if err != nil {
		return err
	}
	if !source.IsActive() {
		return shared.NewDomainError("WAREHOUSE_INACTIVE", "Source warehouse is not active")
	}
	destination, err := repos.WarehouseRepo().FindByID(ctx, destinationID)
	if err != nil {
		return err
	}
	if !destination.IsActive() {
		return shared.NewDomainError("WAREHOUSE_INACTIVE", "Destination warehouse is not active")
	}
	return nil
}

// publishEvents drains and publishes aggregate events after the transaction
// has committed. Publish failures are swallowed: the ledger write is the
// system of record and listeners recover from the database.
func (s *TransferService) publishEvents(ctx context.Context, aggregates ...*ledger.Mutation) {
	if s.eventPublisher == nil {
		return
	}
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}
