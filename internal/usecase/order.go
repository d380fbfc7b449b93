package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

// Ledger operation outcomes reported to LedgerRecorder.
const (
	OutcomeCreated  = "created"
	OutcomeMerged   = "merged"
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// FlowerLookup resolves catalog entries by name. GetByName may answer from a
// cache; Current always reads the catalog store.
type FlowerLookup interface {
	GetByName(ctx context.Context, name string) (*model.Flower, error)
	Current(ctx context.Context, name string) (*model.Flower, error)
}

// LedgerRecorder receives one event per ledger mutation.
type LedgerRecorder interface {
	RecordOrderOperation(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOrderOperation(string, string) {}

// OrderChanges carries the optional fields of an order update as received from a caller.
type OrderChanges struct {
	Status   *string
	Quantity *int
}

// OrderLedger owns order records of authenticated users. Every operation is
// scoped to the acting user; orders of other users behave as absent.
type OrderLedger struct {
	orders   repository.OrderRepository
	flowers  FlowerLookup
	recorder LedgerRecorder
}

// NewOrderLedger constructs OrderLedger. recorder may be nil.
func NewOrderLedger(orders repository.OrderRepository, flowers FlowerLookup, recorder LedgerRecorder) *OrderLedger {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &OrderLedger{orders: orders, flowers: flowers, recorder: recorder}
}

// List returns the user's orders with their flowers joined.
func (l *OrderLedger) List(ctx context.Context, user *model.User) ([]model.Order, error) {
	return l.orders.ListByUser(ctx, user.ID)
}

// Create places an order for quantity units of the named flower. A repeat
// purchase of a flower the user already ordered adds one unit to the
// existing order instead. Amounts are always priced from the catalog store,
// never from the cache.
func (l *OrderLedger) Create(ctx context.Context, user *model.User, flowerName string, quantity int) (err error) {
	outcome := OutcomeCreated
	defer func() { l.recorder.RecordOrderOperation("create", outcomeOf(err, outcome)) }()

	if err := validateInput(purchase{FlowerName: flowerName, Quantity: quantity}); err != nil {
		if errors.Is(err, domainErrors.ErrValidation) && flowerName == "" {
			return domainErrors.ErrNotFound
		}
		return err
	}

	flower, err := l.flowers.GetByName(ctx, flowerName)
	if err != nil {
		return err
	}

	existing, err := l.orders.GetByFlower(ctx, user.ID, flower.ID)
	switch {
	case err == nil:
		outcome = OutcomeMerged
		return l.merge(ctx, existing)
	case !errors.Is(err, domainErrors.ErrNotFound):
		return err
	}

	current, err := l.flowers.Current(ctx, flowerName)
	if err != nil {
		return err
	}
	_, err = l.orders.Create(ctx, user.ID, current.ID, quantity, current.PriceFor(quantity))
	if errors.Is(err, domainErrors.ErrConflict) {
		// A concurrent request created the order first.
		existing, err = l.orders.GetByFlower(ctx, user.ID, current.ID)
		if err != nil {
			return err
		}
		outcome = OutcomeMerged
		return l.merge(ctx, existing)
	}
	return err
}

// merge prices the order with the flower joined from the store.
func (l *OrderLedger) merge(ctx context.Context, order *model.Order) error {
	order.Quantity++
	order.Amount = order.Flower.PriceFor(order.Quantity)
	return l.orders.Update(ctx, *order)
}

// Update changes status and/or quantity of an owned order. Both fields are
// validated before anything is written; amount follows quantity.
func (l *OrderLedger) Update(ctx context.Context, user *model.User, orderID int64, changes OrderChanges) (err error) {
	defer func() { l.recorder.RecordOrderOperation("update", outcomeOf(err, OutcomeOK)) }()

	order, err := l.orders.GetByID(ctx, user.ID, orderID)
	if err != nil {
		return err
	}

	patch, err := parseChanges(changes)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Quantity != nil {
		order.Quantity = *patch.Quantity
		order.Amount = order.Flower.PriceFor(order.Quantity)
	}
	return l.orders.Update(ctx, *order)
}

// Delete removes an owned order. Deleting an absent order reports ErrNotFound.
func (l *OrderLedger) Delete(ctx context.Context, user *model.User, orderID int64) (err error) {
	defer func() { l.recorder.RecordOrderOperation("delete", outcomeOf(err, OutcomeOK)) }()
	return l.orders.Delete(ctx, user.ID, orderID)
}

// parseChanges treats an empty status string as absent.
func parseChanges(changes OrderChanges) (model.OrderPatch, error) {
	var patch model.OrderPatch

	if changes.Status != nil && *changes.Status != "" {
		status, ok := model.ParseOrderStatus(*changes.Status)
		if !ok {
			return patch, domainErrors.NewValidationError("status", "must be one of Pending, Completed, Failed")
		}
		patch.Status = &status
	}

	if changes.Quantity != nil {
		if *changes.Quantity <= 0 {
			return patch, domainErrors.NewValidationError("quantity", "must be greater than 0")
		}
		quantity := *changes.Quantity
		patch.Quantity = &quantity
	}

	return patch, nil
}

func outcomeOf(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, domainErrors.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domainErrors.ErrValidation):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
