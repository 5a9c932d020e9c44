package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/partner"
	"github.com/mwshop/backend/internal/domain/shared"
	"github.com/mwshop/backend/internal/domain/trade"
)

// ReplenishmentService covers order shortfalls automatically: when the
// warehouse fulfilling an order holds less than the ordered quantity, the
// shortfall is pulled from the geographically nearest warehouse that can
// donate it. Replenishment legs commit as success in one transaction and
// never pass through the pending workflow.
type ReplenishmentService struct {
	scope          TransactionScope
	locator        *partner.WarehouseLocator
	eventPublisher shared.EventPublisher
}

// NewReplenishmentService creates a new ReplenishmentService
func NewReplenishmentService(scope TransactionScope, locator *partner.WarehouseLocator) *ReplenishmentService {
	return &ReplenishmentService{
		scope:   scope,
		locator: locator,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReplenishmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// replenishmentLegs is the pair of applied mutations of one donor transfer
type replenishmentLegs struct {
	sourceAdd     *ledger.Mutation
	donorSubtract *ledger.Mutation
	donor         *partner.Warehouse
	distanceKm    float64
}

// AutoRequestStock tops up the order's warehouse for one product so it can
// cover the ordered quantity. A no-op when stock already suffices; returns
// NO_DONOR_WAREHOUSE when no other warehouse can cover the shortfall.
func (s *ReplenishmentService) AutoRequestStock(ctx context.Context, req RequestStockRequest) (*RequestStockResponse, error) {
	var (
		legs *replenishmentLegs
		resp *RequestStockResponse
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		item, err := repos.OrderRepo().FindItem(ctx, req.OrderID, req.ProductID)
		if err != nil {
			return err
		}

		source, err := repos.WarehouseRepo().FindByID(ctx, order.WarehouseID)
		if err != nil {
			return err
		}

		stock, err := currentStock(ctx, repos.MutationRepo(), item.ProductID, source.ID)
		if err != nil {
			return err
		}
		required := item.Quantity - stock
		resp = &RequestStockResponse{
			OrderID:   order.ID,
			ProductID: item.ProductID,
		}
		if required <= 0 {
			return nil
		}
		resp.RequiredQuantity = required

		legs, err = s.replenish(ctx, repos, item.ProductID, source, required)
		if err != nil {
			return err
		}

		donorID := legs.donor.ID
		resp.DonorWarehouseID = &donorID
		resp.DistanceKm = legs.distanceKm
		src := toMutationResponse(legs.sourceAdd)
		don := toMutationResponse(legs.donorSubtract)
		resp.SourceMutation = &src
		resp.DonorMutation = &don
		return nil
	})
	if err != nil {
		return nil, err
	}

	if legs != nil {
		s.publishEvents(ctx, legs.sourceAdd, legs.donorSubtract)
	}
	return resp, nil
}

// ConfirmPaymentProof verifies an order payment for one product line: the
// order moves to processed and the ordered quantity is subtracted from the
// fulfilling warehouse. When stock falls short, the shortfall is replenished
// first, inside the same transaction, so a failed replenishment rolls the
// status flip back too.
func (s *ReplenishmentService) ConfirmPaymentProof(ctx context.Context, orderID uuid.UUID, req ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	var (
		order     *trade.Order
		committed *ledger.Mutation
		legs      *replenishmentLegs
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		item, err := repos.OrderRepo().FindItem(ctx, orderID, req.ProductID)
		if err != nil {
			return err
		}
		source, err := repos.WarehouseRepo().FindByID(ctx, order.WarehouseID)
		if err != nil {
			return err
		}

		if err := order.ConfirmPayment(); err != nil {
			return err
		}

		stock, err := currentStock(ctx, repos.MutationRepo(), item.ProductID, source.ID)
		if err != nil {
			return err
		}
		if stock < item.Quantity {
			legs, err = s.replenish(ctx, repos, item.ProductID, source, item.Quantity-stock)
			if err != nil {
				return err
			}
			stock = legs.sourceAdd.Stock
		}

		committed, err = ledger.NewAppliedMutation(
			item.ProductID, source.ID, source.ID,
			ledger.MutationTypeSubtract,
			item.Quantity, stock,
			source.AdminID, false,
			fmt.Sprintf("Order %s", order.InvoiceNumber),
		)
		if err != nil {
			return err
		}
		if err := repos.MutationRepo().Save(ctx, committed); err != nil {
			return err
		}
		if err := repos.JournalRepo().Save(ctx, ledger.NewJournal(committed)); err != nil {
			return err
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if legs != nil {
		s.publishEvents(ctx, legs.sourceAdd, legs.donorSubtract)
	}
	s.publishEvents(ctx, committed)

	resp := &ConfirmPaymentResponse{
		Order:    toOrderResponse(order),
		Mutation: toMutationResponse(committed),
	}
	if legs != nil {
		r := toMutationResponse(legs.sourceAdd)
		resp.Replenishment = &r
	}
	return resp, nil
}

// replenish finds the nearest donor holding at least required units and
// writes both transfer legs: a subtract at the donor and an add at the
// source, each mirrored into the journal. Both legs commit as success.
func (s *ReplenishmentService) replenish(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, source *partner.Warehouse, required int64) (*replenishmentLegs, error) {
	actives, err := repos.WarehouseRepo().FindActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]partner.StockedWarehouse, 0, len(actives))
	for i := range actives {
		w := &actives[i]
		if w.ID == source.ID {
			continue
		}
		stock, err := currentStock(ctx, repos.MutationRepo(), productID, w.ID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, partner.StockedWarehouse{Warehouse: w, Stock: stock})
	}

	donor := s.locator.Nearest(
		source.Address.Latitude, source.Address.Longitude,
		candidates, required, source.ID,
	)
	if donor == nil {
		return nil, shared.ErrNoDonorWarehouse
	}

	donorSubtract, err := ledger.NewAppliedMutation(
		productID, donor.Warehouse.ID, source.ID,
		ledger.MutationTypeSubtract,
		required, donor.Stock,
		donor.Warehouse.AdminID, false,
		fmt.Sprintf("Auto replenishment to warehouse %s", source.Code),
	)
	if err != nil {
		return nil, err
	}

	sourceStock, err := currentStock(ctx, repos.MutationRepo(), productID, source.ID)
	if err != nil {
		return nil, err
	}
	sourceAdd, err := ledger.NewAppliedMutation(
		productID, source.ID, donor.Warehouse.ID,
		ledger.MutationTypeAdd,
		required, sourceStock,
		source.AdminID, false,
		fmt.Sprintf("Auto replenishment from warehouse %s", donor.Warehouse.Code),
	)
	if err != nil {
		return nil, err
	}

	for _, m := range []*ledger.Mutation{donorSubtract, sourceAdd} {
		if err := repos.MutationRepo().Save(ctx, m); err != nil {
			return nil, err
		}
		if err := repos.JournalRepo().Save(ctx, ledger.NewJournal(m)); err != nil {
			return nil, err
		}
	}

	return &replenishmentLegs{
		sourceAdd:     sourceAdd,
		donorSubtract: donorSubtract,
		donor:         donor.Warehouse,
		distanceKm:    donor.Distance,
	}, nil
}

func (s *ReplenishmentService) publishEvents(ctx context.Context, aggregates ...*ledger.Mutation) {
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
