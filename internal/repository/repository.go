package repository

import (
	"context"
	"errors"

	model "allocation-tracker/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// Storage-level errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("idempotency key already recorded")
	ErrGuardFailed  = errors.New("conditional update guard rejected the write")
	ErrReferenced   = errors.New("record is still referenced")
	ErrTransient    = errors.New("transient storage failure")
)

// Reader holds the unlocked reads. Results are snapshots and must never authorize a write.
type Reader interface {
	GetCycle(ctx context.Context, id string) (model.Cycle, error)
	ListCycles(ctx context.Context) ([]model.Cycle, error)
	ListCyclesByStatus(ctx context.Context, status model.CycleStatus) ([]model.Cycle, error)
	GetItem(ctx context.Context, id string) (model.Item, error)
	GetItems(ctx context.Context, ids []string) ([]model.Item, error)
	ListItems(ctx context.Context, cycleID string) ([]model.Item, error)
	ListBidsByCycle(ctx context.Context, cycleID string) ([]model.Bid, error)
	ListBidsByUser(ctx context.Context, userID, cycleID string) ([]model.Bid, error)
}

// Store is the durable inventory of cycles, items, bids and idempotency records
type Store interface {
	Reader
	// WithinTx runs fn in a single transaction. A nil return commits, anything else rolls back.
	// Transient failures (deadlock, serialization, lock timeout) are reported wrapping ErrTransient.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of writes and locking reads available inside a transaction
type Tx interface {
	// InsertIdempotency returns ErrDuplicateKey when the key already exists
	InsertIdempotency(ctx context.Context, rec model.IdempotencyRecord) error
	// LockItems locks the existing items among ids in ascending id order; unknown ids are omitted
	LockItems(ctx context.Context, ids []string) ([]model.Item, error)
	LockCycle(ctx context.Context, id string) (model.Cycle, error)
	// LockUserBids locks the user's bids in the cycle in ascending item id order
	LockUserBids(ctx context.Context, userID, cycleID string) ([]model.Bid, error)
	// IncrementAllocated adds qty to allocatedQty only if the result stays within totalQty,
	// returning ErrGuardFailed otherwise
	IncrementAllocated(ctx context.Context, itemID string, qty int) (model.Item, error)
	// UpsertBid creates the bid or adds its qty to the existing (user, item, cycle) row
	UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error)

	InsertCycle(ctx context.Context, cycle model.Cycle) error
	UpdateCycle(ctx context.Context, cycle model.Cycle) error
	InsertItem(ctx context.Context, item model.Item) error
	// UpdateItem returns ErrGuardFailed if item.TotalQty is below the stored allocatedQty
	UpdateItem(ctx context.Context, item model.Item) error
	DeleteItem(ctx context.Context, id string) error
	CountItemBids(ctx context.Context, itemID string) (int, error)
}
