package allocation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/events"
	"allocation-tracker/internal/metrics"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/quota"
	"allocation-tracker/internal/repository"
	"allocation-tracker/utils"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 25 * time.Millisecond
)

// AllocationService commits claim batches against limited inventory
type AllocationService struct {
	store       repository.Store
	publisher   events.Publisher
	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
}

// Option configures an AllocationService
type Option func(*AllocationService)

// WithRetry sets the total number of attempts for a batch hitting transient storage failures
// and the base delay between attempts
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(s *AllocationService) {
		if maxAttempts >= 1 {
			s.maxAttempts = maxAttempts
		}
		s.backoff = backoff
	}
}

// WithClock replaces the clock used to stamp records
func WithClock(now func() time.Time) Option {
	return func(s *AllocationService) { s.now = now }
}

// NewAllocationService creates a new AllocationService instance. publisher may be nil.
func NewAllocationService(store repository.Store, publisher events.Publisher, opts ...Option) *AllocationService {
	s := &AllocationService{
		store:       store,
		publisher:   publisher,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitClaims applies a claim batch for userID atomically: either every selection is allocated and
// recorded, or nothing changes
func (s *AllocationService) SubmitClaims(ctx context.Context, userID string, batch models.ClaimBatch) (models.ClaimResult, error) {
	start := time.Now()
	result, err := s.submit(ctx, userID, batch)
	metrics.RecordClaim(outcome(err), time.Since(start))
	return result, err
}

func (s *AllocationService) submit(ctx context.Context, userID string, batch models.ClaimBatch) (models.ClaimResult, error) {
	if err := validateBatch(userID, batch); err != nil {
		return models.ClaimResult{}, err
	}

	ids := uniqueSortedIDs(batch.Selections)
	cycleID, err := s.resolveCycle(ctx, ids, batch.Selections[0].ItemID)
	if err != nil {
		return models.ClaimResult{}, err
	}

	var result models.ClaimResult
	for attempt := 1; ; attempt++ {
		result, err = s.commit(ctx, userID, cycleID, ids, batch)
		if !errors.Is(err, repository.ErrTransient) {
			break
		}
		if attempt >= s.maxAttempts {
			utils.Warn("service: claim batch retries exhausted", map[string]any{
				"user_id":  userID,
				"cycle_id": cycleID,
				"attempts": attempt,
				"error":    err.Error(),
			})
			return models.ClaimResult{}, allocationerrors.New(allocationerrors.ErrTransientFailure, allocationerrors.ReasonTransientFailure,
				"The allocation could not be completed right now, please retry")
		}

		metrics.RecordRetry()
		select {
		case <-ctx.Done():
			return models.ClaimResult{}, fmt.Errorf("service: claim batch aborted during retry: %w", ctx.Err())
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
	if err != nil {
		return models.ClaimResult{}, translate(err)
	}

	s.publish(events.NewItemsUpdated(result.CycleID, result.Items))
	s.publish(events.NewQuotaUpdated(result.CycleID, userID, result.ClaimedInCycle, result.MaxItemsPerUser))
	return result, nil
}

// resolveCycle is an unlocked lookup that rejects unknown items before any transaction starts
// and picks the cycle the batch targets
func (s *AllocationService) resolveCycle(ctx context.Context, ids []string, firstItemID string) (string, error) {
	known, err := s.store.GetItems(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("service: resolve items: %w", err)
	}

	byID := make(map[string]models.Item, len(known))
	for _, it := range known {
		byID[it.ID] = it
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return "", allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonItemNotFound, "Item %s not found", id)
		}
	}
	return byID[firstItemID].CycleID, nil
}

// commit runs one attempt of the allocation transaction. Lock order is fixed: items by ascending id,
// then the cycle, then the user's bids in that cycle.
func (s *AllocationService) commit(ctx context.Context, userID, cycleID string, ids []string, batch models.ClaimBatch) (models.ClaimResult, error) {
	var result models.ClaimResult

	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		now := s.now().UTC()
		if err := tx.InsertIdempotency(ctx, models.IdempotencyRecord{Key: batch.IdempotencyKey, UserID: userID, CreatedAt: now}); err != nil {
			return err
		}

		locked, err := tx.LockItems(ctx, ids)
		if err != nil {
			return err
		}
		cycle, err := tx.LockCycle(ctx, cycleID)
		if errors.Is(err, repository.ErrNotFound) {
			return allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonCycleNotFound, "Cycle %s not found", cycleID)
		}
		if err != nil {
			return err
		}
		existing, err := tx.LockUserBids(ctx, userID, cycleID)
		if err != nil {
			return err
		}

		items := make(map[string]models.Item, len(locked))
		for _, it := range locked {
			items[it.ID] = it
		}
		if err := quota.Evaluate(quota.Input{Cycle: cycle, Items: items, ExistingBids: existing, Selections: batch.Selections}); err != nil {
			return err
		}

		requested, order := quota.Requested(batch.Selections)
		sort.Strings(order)

		result = models.ClaimResult{CycleID: cycle.ID, MaxItemsPerUser: cycle.MaxItemsPerUser}
		for _, id := range order {
			updated, err := tx.IncrementAllocated(ctx, id, requested[id])
			if errors.Is(err, repository.ErrGuardFailed) {
				return quota.StockUnavailable(items[id])
			}
			if err != nil {
				return err
			}
			result.Items = append(result.Items, updated.Snapshot())
		}

		for _, id := range order {
			bid, err := tx.UpsertBid(ctx, models.Bid{
				ID:        utils.GenerateID(),
				UserID:    userID,
				ItemID:    id,
				CycleID:   cycle.ID,
				Qty:       requested[id],
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
			result.Bids = append(result.Bids, bid)
		}

		for _, b := range existing {
			result.ClaimedInCycle += b.Qty
		}
		for _, id := range order {
			result.ClaimedInCycle += requested[id]
		}
		return nil
	})

	return result, err
}

func (s *AllocationService) publish(ev events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

// ListUserBids returns the user's bids joined with item and cycle summaries, newest first.
// An empty cycleID lists every cycle.
func (s *AllocationService) ListUserBids(ctx context.Context, userID, cycleID string) ([]models.BidView, error) {
	if userID == "" {
		return nil, allocationerrors.Validation("missing user identity")
	}

	bids, err := s.store.ListBidsByUser(ctx, userID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for user %s: %w", userID, err)
	}
	if len(bids) == 0 {
		return []models.BidView{}, nil
	}

	itemIDs := make([]string, 0, len(bids))
	for _, b := range bids {
		itemIDs = append(itemIDs, b.ItemID)
	}
	items, err := s.store.GetItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load bid items: %w", err)
	}
	itemsByID := make(map[string]models.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}

	cycles := make(map[string]models.Cycle)
	views := make([]models.BidView, 0, len(bids))
	for _, b := range bids {
		c, ok := cycles[b.CycleID]
		if !ok {
			c, err = s.store.GetCycle(ctx, b.CycleID)
			if err != nil {
				return nil, fmt.Errorf("service: failed to load cycle %s: %w", b.CycleID, err)
			}
			cycles[b.CycleID] = c
		}
		it := itemsByID[b.ItemID]
		views = append(views, models.BidView{
			ID:        b.ID,
			Qty:       b.Qty,
			CreatedAt: b.CreatedAt,
			Item:      models.ItemSummary{ID: b.ItemID, Name: it.Name, Price: it.Price},
			Cycle:     models.CycleSummary{ID: c.ID, Name: c.Name, Status: c.Status},
		})
	}
	return views, nil
}

// OpenCatalog returns every OPEN cycle with its items. Quantities are display snapshots.
func (s *AllocationService) OpenCatalog(ctx context.Context) ([]models.CycleCatalog, error) {
	cycles, err := s.store.ListCyclesByStatus(ctx, models.CycleOpen)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list open cycles: %w", err)
	}

	catalog := make([]models.CycleCatalog, 0, len(cycles))
	for _, c := range cycles {
		items, err := s.store.ListItems(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("service: failed to list items for cycle %s: %w", c.ID, err)
		}
		catalog = append(catalog, models.CycleCatalog{Cycle: c, Items: items})
	}
	return catalog, nil
}

// validateBatch checks the request shape. Only the upper quantity bound is checked here; the rest is left to the quota rules.
func validateBatch(userID string, batch models.ClaimBatch) error {
	if userID == "" {
		return allocationerrors.Validation("missing user identity")
	}
	if !utils.IsUUID(batch.IdempotencyKey) {
		return allocationerrors.Validation("idempotencyKey must be a UUID")
	}
	if len(batch.Selections) == 0 {
		return allocationerrors.Validation("at least one selection is required")
	}
	for i, sel := range batch.Selections {
		if sel.ItemID == "" {
			return allocationerrors.Validation(fmt.Sprintf("selection %d is missing itemId", i))
		}
		if sel.Qty > models.MaxQuantity {
			return allocationerrors.Newf(allocationerrors.ErrValidation, allocationerrors.ReasonInvalidQuantity,
				"Quantity for item %s must not exceed %d", sel.ItemID, models.MaxQuantity)
		}
	}
	return nil
}

func uniqueSortedIDs(selections []models.Selection) []string {
	_, ids := quota.Requested(selections)
	sort.Strings(ids)
	return ids
}

// translate maps storage errors onto the rejection taxonomy; unclassified errors stay internal
func translate(err error) error {
	var classified *allocationerrors.Error
	switch {
	case errors.As(err, &classified):
		return err
	case errors.Is(err, repository.ErrDuplicateKey):
		return allocationerrors.New(allocationerrors.ErrDuplicateSubmission, allocationerrors.ReasonDuplicateRequest,
			"Duplicate request: this submission was already received")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("service: claim batch aborted: %w", err)
	default:
		return fmt.Errorf("service: failed to commit claim batch: %w", err)
	}
}

func outcome(err error) string {
	if err == nil {
		return "committed"
	}
	if reason := allocationerrors.ReasonOf(err); reason != "" {
		return string(reason)
	}
	return "error"
}
