package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	model "allocation-tracker/internal/models"
)

type bidKey struct {
	userID  string
	itemID  string
	cycleID string
}

type memState struct {
	cycles      map[string]model.Cycle
	items       map[string]model.Item
	bids        map[bidKey]model.Bid
	idempotency map[string]model.IdempotencyRecord
}

func newMemState() *memState {
	return &memState{
		cycles:      make(map[string]model.Cycle),
		items:       make(map[string]model.Item),
		bids:        make(map[bidKey]model.Bid),
		idempotency: make(map[string]model.IdempotencyRecord),
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		cycles:      make(map[string]model.Cycle, len(s.cycles)),
		items:       make(map[string]model.Item, len(s.items)),
		bids:        make(map[bidKey]model.Bid, len(s.bids)),
		idempotency: make(map[string]model.IdempotencyRecord, len(s.idempotency)),
	}
	for k, v := range s.cycles {
		c.cycles[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.bids {
		c.bids[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// MemoryRepo is a concurrency-safe in-memory Store for a single process.
// Transactions run one at a time against a copy of the state that replaces it on commit.
type MemoryRepo struct {
	mu    sync.RWMutex
	state *memState

	failMu    sync.Mutex
	failNextN int
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{state: newMemState()}
}

// WithinTx runs fn against a private copy of the state and publishes it only if fn succeeds
func (r *MemoryRepo) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := r.state.clone()
	if err := fn(&memTx{state: work}); err != nil {
		return err
	}

	if r.consumeFailure() {
		return fmt.Errorf("memory commit: %w", ErrTransient)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.state = work
	return nil
}

// FailNextCommits makes the next n transactions roll back with ErrTransient after fn ran.
// This method is intended for tests only.
func (r *MemoryRepo) FailNextCommits(n int) {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	r.failNextN = n
}

func (r *MemoryRepo) consumeFailure() bool {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	if r.failNextN > 0 {
		r.failNextN--
		return true
	}
	return false
}

// AddCycle stores a cycle directly. This method is intended for tests and seeding only.
func (r *MemoryRepo) AddCycle(cycle model.Cycle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.cycles[cycle.ID] = cycle
}

// AddItem stores an item directly. This method is intended for tests and seeding only.
func (r *MemoryRepo) AddItem(item model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.items[item.ID] = item
}

// AddBid stores a bid directly. This method is intended for tests only.
func (r *MemoryRepo) AddBid(bid model.Bid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.bids[bidKey{userID: bid.UserID, itemID: bid.ItemID, cycleID: bid.CycleID}] = bid
}

func (r *MemoryRepo) GetCycle(ctx context.Context, id string) (model.Cycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.state.cycles[id]
	if !ok {
		return model.Cycle{}, fmt.Errorf("get cycle %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (r *MemoryRepo) ListCycles(ctx context.Context) ([]model.Cycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cycles := make([]model.Cycle, 0, len(r.state.cycles))
	for _, c := range r.state.cycles {
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool {
		if cycles[i].CreatedAt.Equal(cycles[j].CreatedAt) {
			return cycles[i].ID > cycles[j].ID
		}
		return cycles[i].CreatedAt.After(cycles[j].CreatedAt)
	})
	return cycles, nil
}

func (r *MemoryRepo) ListCyclesByStatus(ctx context.Context, status model.CycleStatus) ([]model.Cycle, error) {
	all, _ := r.ListCycles(ctx)
	cycles := make([]model.Cycle, 0, len(all))
	for _, c := range all {
		if c.Status == status {
			cycles = append(cycles, c)
		}
	}
	return cycles, nil
}

func (r *MemoryRepo) GetItem(ctx context.Context, id string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.state.items[id]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", id, ErrNotFound)
	}
	return item, nil
}

func (r *MemoryRepo) GetItems(ctx context.Context, ids []string) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.itemsByID(ids), nil
}

func (r *MemoryRepo) ListItems(ctx context.Context, cycleID string) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0)
	for _, it := range r.state.items {
		if it.CycleID == cycleID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *MemoryRepo) ListBidsByCycle(ctx context.Context, cycleID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]model.Bid, 0)
	for _, b := range r.state.bids {
		if b.CycleID == cycleID {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].ID < bids[j].ID
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	return bids, nil
}

// ListBidsByUser returns the user's bids, newest first. An empty cycleID matches every cycle.
func (r *MemoryRepo) ListBidsByUser(ctx context.Context, userID, cycleID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := make([]model.Bid, 0)
	for _, b := range r.state.bids {
		if b.UserID == userID && (cycleID == "" || b.CycleID == cycleID) {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].ID > bids[j].ID
		}
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})
	return bids, nil
}

func (s *memState) itemsByID(ids []string) []model.Item {
	seen := make(map[string]struct{}, len(ids))
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if it, ok := s.items[id]; ok {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// memTx mutates a private copy of the state; the repo write lock is held for its whole lifetime
type memTx struct {
	state *memState
}

func (t *memTx) InsertIdempotency(ctx context.Context, rec model.IdempotencyRecord) error {
	if _, exists := t.state.idempotency[rec.Key]; exists {
		return fmt.Errorf("insert idempotency key %s: %w", rec.Key, ErrDuplicateKey)
	}
	t.state.idempotency[rec.Key] = rec
	return nil
}

func (t *memTx) LockItems(ctx context.Context, ids []string) ([]model.Item, error) {
	return t.state.itemsByID(ids), nil
}

func (t *memTx) LockCycle(ctx context.Context, id string) (model.Cycle, error) {
	c, ok := t.state.cycles[id]
	if !ok {
		return model.Cycle{}, fmt.Errorf("lock cycle %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (t *memTx) LockUserBids(ctx context.Context, userID, cycleID string) ([]model.Bid, error) {
	bids := make([]model.Bid, 0)
	for k, b := range t.state.bids {
		if k.userID == userID && k.cycleID == cycleID {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].ItemID < bids[j].ItemID })
	return bids, nil
}

func (t *memTx) IncrementAllocated(ctx context.Context, itemID string, qty int) (model.Item, error) {
	item, ok := t.state.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("increment item %s: %w", itemID, ErrNotFound)
	}
	if qty < 1 || qty > item.Remaining() {
		return item, fmt.Errorf("increment item %s by %d: %w", itemID, qty, ErrGuardFailed)
	}
	item.AllocatedQty += qty
	t.state.items[itemID] = item
	return item, nil
}

func (t *memTx) UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	key := bidKey{userID: bid.UserID, itemID: bid.ItemID, cycleID: bid.CycleID}
	if existing, ok := t.state.bids[key]; ok {
		existing.Qty += bid.Qty
		t.state.bids[key] = existing
		return existing, nil
	}
	t.state.bids[key] = bid
	return bid, nil
}

func (t *memTx) InsertCycle(ctx context.Context, cycle model.Cycle) error {
	t.state.cycles[cycle.ID] = cycle
	return nil
}

func (t *memTx) UpdateCycle(ctx context.Context, cycle model.Cycle) error {
	if _, ok := t.state.cycles[cycle.ID]; !ok {
		return fmt.Errorf("update cycle %s: %w", cycle.ID, ErrNotFound)
	}
	t.state.cycles[cycle.ID] = cycle
	return nil
}

func (t *memTx) InsertItem(ctx context.Context, item model.Item) error {
	if _, ok := t.state.cycles[item.CycleID]; !ok {
		return fmt.Errorf("insert item into cycle %s: %w", item.CycleID, ErrNotFound)
	}
	t.state.items[item.ID] = item
	return nil
}

func (t *memTx) UpdateItem(ctx context.Context, item model.Item) error {
	stored, ok := t.state.items[item.ID]
	if !ok {
		return fmt.Errorf("update item %s: %w", item.ID, ErrNotFound)
	}
	if item.TotalQty < stored.AllocatedQty {
		return fmt.Errorf("update item %s total %d below allocated %d: %w", item.ID, item.TotalQty, stored.AllocatedQty, ErrGuardFailed)
	}
	item.AllocatedQty = stored.AllocatedQty
	t.state.items[item.ID] = item
	return nil
}

func (t *memTx) DeleteItem(ctx context.Context, id string) error {
	if _, ok := t.state.items[id]; !ok {
		return fmt.Errorf("delete item %s: %w", id, ErrNotFound)
	}
	for k := range t.state.bids {
		if k.itemID == id {
			return fmt.Errorf("delete item %s: %w", id, ErrReferenced)
		}
	}
	delete(t.state.items, id)
	return nil
}

func (t *memTx) CountItemBids(ctx context.Context, itemID string) (int, error) {
	n := 0
	for k := range t.state.bids {
		if k.itemID == itemID {
			n++
		}
	}
	return n, nil
}
