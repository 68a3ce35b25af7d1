package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/events"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/money"
	"allocation-tracker/internal/repository"
	"allocation-tracker/utils"
)

// Action is an admin request to move a cycle to another status
type Action string

const (
	ActionOpen    Action = "OPEN"
	ActionClose   Action = "CLOSE"
	ActionReopen  Action = "REOPEN"
	ActionArchive Action = "ARCHIVE"
)

type transition struct {
	from models.CycleStatus
	to   models.CycleStatus
}

var transitions = map[Action]transition{
	ActionOpen:    {from: models.CycleDraft, to: models.CycleOpen},
	ActionClose:   {from: models.CycleOpen, to: models.CycleClosed},
	ActionReopen:  {from: models.CycleClosed, to: models.CycleOpen},
	ActionArchive: {from: models.CycleClosed, to: models.CycleArchived},
}

// LifecycleService drives cycle status transitions and item maintenance for administrators
type LifecycleService struct {
	store     repository.Store
	publisher events.Publisher
	now       func() time.Time
}

// NewLifecycleService creates a new LifecycleService instance. publisher may be nil.
func NewLifecycleService(store repository.Store, publisher events.Publisher) *LifecycleService {
	return &LifecycleService{store: store, publisher: publisher, now: time.Now}
}

// CreateCycle stores a new cycle in DRAFT
func (s *LifecycleService) CreateCycle(ctx context.Context, in models.CycleInput) (models.Cycle, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Cycle{}, allocationerrors.Validation("name is required")
	}
	if !models.ValidQuantity(in.MaxItemsPerUser) {
		return models.Cycle{}, allocationerrors.Validation(fmt.Sprintf("maxItemsPerUser must be between 1 and %d", models.MaxQuantity))
	}

	cycle := models.Cycle{
		ID:              utils.GenerateID(),
		Name:            name,
		Status:          models.CycleDraft,
		MaxItemsPerUser: in.MaxItemsPerUser,
		OpenAt:          in.OpenAt,
		CloseAt:         in.CloseAt,
		CreatedAt:       s.now().UTC(),
	}
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		return tx.InsertCycle(ctx, cycle)
	})
	if err != nil {
		return models.Cycle{}, fmt.Errorf("lifecycle: failed to create cycle: %w", err)
	}
	return cycle, nil
}

// ListCycles returns every cycle, newest first
func (s *LifecycleService) ListCycles(ctx context.Context) ([]models.Cycle, error) {
	cycles, err := s.store.ListCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: failed to list cycles: %w", err)
	}
	return cycles, nil
}

// GetCycle returns one cycle by id
func (s *LifecycleService) GetCycle(ctx context.Context, cycleID string) (models.Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, cycleID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Cycle{}, cycleNotFound(cycleID)
	}
	if err != nil {
		return models.Cycle{}, fmt.Errorf("lifecycle: failed to get cycle %s: %w", cycleID, err)
	}
	return cycle, nil
}

// Transition applies action to the cycle under its row lock and announces the new status.
// Reopening keeps every allocation made before the close.
func (s *LifecycleService) Transition(ctx context.Context, cycleID string, action Action) (models.Cycle, error) {
	t, ok := transitions[Action(strings.ToUpper(string(action)))]
	if !ok {
		return models.Cycle{}, allocationerrors.Validation(fmt.Sprintf("unknown action %q", action))
	}

	var updated models.Cycle
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		cycle, err := tx.LockCycle(ctx, cycleID)
		if errors.Is(err, repository.ErrNotFound) {
			return cycleNotFound(cycleID)
		}
		if err != nil {
			return err
		}
		if cycle.Status != t.from {
			return allocationerrors.Newf(allocationerrors.ErrConflict, allocationerrors.ReasonInvalidTransition,
				"Cannot %s a cycle in %s", strings.ToLower(string(action)), cycle.Status)
		}

		now := s.now().UTC()
		switch t.to {
		case models.CycleOpen:
			cycle.OpenAt = &now
			cycle.CloseAt = nil
		case models.CycleClosed:
			cycle.CloseAt = &now
		}
		cycle.Status = t.to
		updated = cycle
		return tx.UpdateCycle(ctx, cycle)
	})
	if err != nil {
		return models.Cycle{}, wrap("transition cycle "+cycleID, err)
	}

	utils.Info("lifecycle: cycle status changed", map[string]any{
		"cycle_id": updated.ID,
		"action":   string(action),
		"status":   string(updated.Status),
	})
	if s.publisher != nil {
		s.publisher.Publish(events.NewCycleStatus(updated))
	}
	return updated, nil
}

// ListItems returns the items of a cycle in creation order
func (s *LifecycleService) ListItems(ctx context.Context, cycleID string) ([]models.Item, error) {
	if _, err := s.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: failed to list items for cycle %s: %w", cycleID, err)
	}
	return items, nil
}

// CreateItem adds an item to a DRAFT cycle
func (s *LifecycleService) CreateItem(ctx context.Context, cycleID string, in models.ItemInput) (models.Item, error) {
	item, err := s.newItem(cycleID, in)
	if err != nil {
		return models.Item{}, err
	}

	err = s.store.WithinTx(ctx, func(tx repository.Tx) error {
		if err := lockDraftCycle(ctx, tx, cycleID, "Can only add items while cycle is DRAFT"); err != nil {
			return err
		}
		return tx.InsertItem(ctx, item)
	})
	if err != nil {
		return models.Item{}, wrap("create item", err)
	}
	return item, nil
}

// UpdateItem applies patch to an item of a DRAFT cycle. totalQty can never drop below the allocated quantity.
func (s *LifecycleService) UpdateItem(ctx context.Context, itemID string, patch models.ItemPatch) (models.Item, error) {
	var updated models.Item
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if err := lockDraftCycle(ctx, tx, item.CycleID, "Can only edit items while cycle is DRAFT"); err != nil {
			return err
		}
		if err := applyPatch(&item, patch); err != nil {
			return err
		}

		err = tx.UpdateItem(ctx, item)
		if errors.Is(err, repository.ErrGuardFailed) {
			return totalBelowAllocated()
		}
		updated = item
		return err
	})
	if err != nil {
		return models.Item{}, wrap("update item "+itemID, err)
	}
	return updated, nil
}

// DeleteItem removes an item that has no bids. Items with bids are never deleted, whatever the cycle status.
func (s *LifecycleService) DeleteItem(ctx context.Context, itemID string) error {
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		n, err := tx.CountItemBids(ctx, itemID)
		if err != nil {
			return err
		}
		if n > 0 {
			return itemHasBids()
		}
		if err := lockDraftCycle(ctx, tx, item.CycleID, "Can only delete items while cycle is DRAFT"); err != nil {
			return err
		}

		err = tx.DeleteItem(ctx, itemID)
		if errors.Is(err, repository.ErrReferenced) {
			return itemHasBids()
		}
		return err
	})
	return wrap("delete item "+itemID, err)
}

func (s *LifecycleService) newItem(cycleID string, in models.ItemInput) (models.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Item{}, allocationerrors.Validation("name is required")
	}
	price, err := money.RoundPrice(in.Price)
	if err != nil {
		return models.Item{}, allocationerrors.Validation("price must not be negative")
	}
	if !models.ValidQuantity(in.TotalQty) {
		return models.Item{}, qtyOutOfRange("totalQty")
	}
	if in.MaxQtyPerUser != nil && !models.ValidQuantity(*in.MaxQtyPerUser) {
		return models.Item{}, qtyOutOfRange("maxQtyPerUser")
	}

	return models.Item{
		ID:            utils.GenerateID(),
		CycleID:       cycleID,
		Name:          name,
		Description:   trimmedOrNil(in.Description),
		Price:         price,
		TotalQty:      in.TotalQty,
		MaxQtyPerUser: in.MaxQtyPerUser,
		CreatedAt:     s.now().UTC(),
	}, nil
}

func applyPatch(item *models.Item, patch models.ItemPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return allocationerrors.Validation("name must not be empty")
		}
		item.Name = name
	}
	if patch.Description != nil {
		item.Description = trimmedOrNil(patch.Description)
	}
	if patch.Price != nil {
		price, err := money.RoundPrice(*patch.Price)
		if err != nil {
			return allocationerrors.Validation("price must not be negative")
		}
		item.Price = price
	}
	if patch.TotalQty != nil {
		if !models.ValidQuantity(*patch.TotalQty) {
			return qtyOutOfRange("totalQty")
		}
		if *patch.TotalQty < item.AllocatedQty {
			return totalBelowAllocated()
		}
		item.TotalQty = *patch.TotalQty
	}
	switch {
	case patch.ClearMaxQtyPerUser:
		item.MaxQtyPerUser = nil
	case patch.MaxQtyPerUser != nil:
		if !models.ValidQuantity(*patch.MaxQtyPerUser) {
			return qtyOutOfRange("maxQtyPerUser")
		}
		v := *patch.MaxQtyPerUser
		item.MaxQtyPerUser = &v
	}
	return nil
}

func qtyOutOfRange(field string) error {
	return allocationerrors.Validation(fmt.Sprintf("%s must be between 1 and %d", field, models.MaxQuantity))
}

// lockItem follows the allocation lock order: items are locked before their cycle
func lockItem(ctx context.Context, tx repository.Tx, itemID string) (models.Item, error) {
	locked, err := tx.LockItems(ctx, []string{itemID})
	if err != nil {
		return models.Item{}, err
	}
	if len(locked) == 0 {
		return models.Item{}, allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonItemNotFound, "Item %s not found", itemID)
	}
	return locked[0], nil
}

func lockDraftCycle(ctx context.Context, tx repository.Tx, cycleID, message string) error {
	cycle, err := tx.LockCycle(ctx, cycleID)
	if errors.Is(err, repository.ErrNotFound) {
		return cycleNotFound(cycleID)
	}
	if err != nil {
		return err
	}
	if cycle.Status != models.CycleDraft {
		return allocationerrors.New(allocationerrors.ErrConflict, allocationerrors.ReasonCycleNotDraft, message)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cycleNotFound(cycleID string) error {
	return allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonCycleNotFound, "Cycle %s not found", cycleID)
}

func itemHasBids() error {
	return allocationerrors.New(allocationerrors.ErrConflict, allocationerrors.ReasonItemHasBids, "Cannot delete item with bids")
}

func totalBelowAllocated() error {
	return allocationerrors.New(allocationerrors.ErrConflict, allocationerrors.ReasonTotalBelowAllocated,
		"totalQty cannot be less than already allocated quantity")
}

// wrap keeps classified rejections as they are and adds layer context to storage failures
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *allocationerrors.Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, repository.ErrTransient) {
		return allocationerrors.New(allocationerrors.ErrTransientFailure, allocationerrors.ReasonTransientFailure,
			"The change could not be completed right now, please retry")
	}
	return fmt.Errorf("lifecycle: failed to %s: %w", op, err)
}
