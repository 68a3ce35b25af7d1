package quota

import (
	"math"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/models"
)

// Input is the allocation state a claim batch is evaluated against
type Input struct {
	Cycle models.Cycle
	// Items holds the referenced items keyed by id
	Items map[string]models.Item
	// ExistingBids are the user's bids in Cycle
	ExistingBids []models.Bid
	Selections   []models.Selection
}

// Evaluate checks a claim batch against the cycle and quota rules and returns the first violated rule
// as an *allocationerrors.Error, or nil when the batch is admissible.
//
// Rules run in a fixed order: cycle open, positive quantities, items in the cycle, per-item user cap,
// remaining stock, per-cycle user cap. The stock rule is only authoritative when Items were read under lock.
func Evaluate(in Input) error {
	if in.Cycle.Status != models.CycleOpen {
		return allocationerrors.Newf(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonCycleNotOpen,
			"Cycle %q is not open", in.Cycle.Name)
	}

	for _, sel := range in.Selections {
		if !models.ValidQuantity(sel.Qty) {
			return allocationerrors.Newf(allocationerrors.ErrValidation, allocationerrors.ReasonInvalidQuantity,
				"Quantity for item %s must be a whole number between 1 and %d", sel.ItemID, models.MaxQuantity)
		}
	}

	for _, sel := range in.Selections {
		item, ok := in.Items[sel.ItemID]
		if !ok {
			return allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonItemNotFound,
				"Item %s not found", sel.ItemID)
		}
		if item.CycleID != in.Cycle.ID {
			return allocationerrors.Newf(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonMixedCycle,
				"Item %q does not belong to cycle %q", item.Name, in.Cycle.Name)
		}
	}

	requested, order := Requested(in.Selections)
	existing := make(map[string]int, len(in.ExistingBids))
	existingTotal := 0
	for _, b := range in.ExistingBids {
		existing[b.ItemID] = addQty(existing[b.ItemID], b.Qty)
		existingTotal = addQty(existingTotal, b.Qty)
	}

	for _, id := range order {
		item := in.Items[id]
		if item.MaxQtyPerUser == nil {
			continue
		}
		if requested[id] > *item.MaxQtyPerUser-existing[id] {
			return allocationerrors.Newf(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonItemCapExceeded,
				"Exceeds per-user limit for %q (max %d, already claimed %d)", item.Name, *item.MaxQtyPerUser, existing[id])
		}
	}

	for _, id := range order {
		item := in.Items[id]
		if requested[id] > item.Remaining() {
			return StockUnavailable(item)
		}
	}

	batchTotal := 0
	for _, id := range order {
		batchTotal = addQty(batchTotal, requested[id])
	}
	if batchTotal > in.Cycle.MaxItemsPerUser-existingTotal {
		return allocationerrors.Newf(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonCycleCapExceeded,
			"Exceeds cycle limit of %d items per user (already claimed %d)", in.Cycle.MaxItemsPerUser, existingTotal)
	}

	return nil
}

// StockUnavailable is the rejection reported when an item cannot cover a requested quantity
func StockUnavailable(item models.Item) error {
	return allocationerrors.Newf(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonStockUnavailable,
		"Insufficient stock for %q (%d remaining)", item.Name, item.Remaining())
}

// Requested sums selection quantities per item and returns the item ids in first-seen order
func Requested(selections []models.Selection) (map[string]int, []string) {
	totals := make(map[string]int, len(selections))
	order := make([]string, 0, len(selections))
	for _, sel := range selections {
		if _, seen := totals[sel.ItemID]; !seen {
			order = append(order, sel.ItemID)
		}
		totals[sel.ItemID] = addQty(totals[sel.ItemID], sel.Qty)
	}
	return totals, order
}

// addQty saturates at math.MaxInt instead of wrapping
func addQty(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
