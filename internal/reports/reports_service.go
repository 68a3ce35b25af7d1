package reports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/repository"
	"allocation-tracker/utils"

	"github.com/shopspring/decimal"
)

const defaultDeadlineDays = 5

// ReportsService builds the results of finished cycles and dispatches winner payloads
type ReportsService struct {
	store        repository.Reader
	publisher    WinnerPublisher
	deadlineDays int
	now          func() time.Time
}

// NewReportsService creates a new ReportsService. deadlineDays below 1 falls back to 5 days.
func NewReportsService(store repository.Reader, publisher WinnerPublisher, deadlineDays int) *ReportsService {
	if deadlineDays < 1 {
		deadlineDays = defaultDeadlineDays
	}
	if publisher == nil {
		publisher = LogPublisher{}
	}
	return &ReportsService{store: store, publisher: publisher, deadlineDays: deadlineDays, now: time.Now}
}

// Results aggregates the allocations of a CLOSED or ARCHIVED cycle per item and per user.
// The export endpoint serves the same dataset.
func (s *ReportsService) Results(ctx context.Context, cycleID string) (models.CycleResults, error) {
	cycle, items, bids, err := s.load(ctx, cycleID, "Results only available after cycle is closed")
	if err != nil {
		return models.CycleResults{}, err
	}

	itemNames := make(map[string]string, len(items))
	bidsByItem := make(map[string][]models.ResultBid, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	for _, b := range bids {
		bidsByItem[b.ItemID] = append(bidsByItem[b.ItemID], models.ResultBid{ID: b.ID, UserID: b.UserID, Qty: b.Qty, CreatedAt: b.CreatedAt})
	}

	results := models.CycleResults{
		Cycle: models.CycleSummary{ID: cycle.ID, Name: cycle.Name, Status: cycle.Status},
		Items: make([]models.ItemResult, 0, len(items)),
		Users: []models.UserResult{},
	}
	for _, it := range items {
		itemBids := bidsByItem[it.ID]
		if itemBids == nil {
			itemBids = []models.ResultBid{}
		}
		results.Items = append(results.Items, models.ItemResult{
			ID:            it.ID,
			Name:          it.Name,
			Price:         it.Price,
			TotalQty:      it.TotalQty,
			AllocatedQty:  it.AllocatedQty,
			PercentFilled: percentFilled(it),
			UserCount:     len(itemBids),
			Bids:          itemBids,
		})
	}

	index := make(map[string]int)
	for _, b := range bids {
		i, ok := index[b.UserID]
		if !ok {
			i = len(results.Users)
			index[b.UserID] = i
			results.Users = append(results.Users, models.UserResult{UserID: b.UserID})
		}
		u := &results.Users[i]
		u.TotalQty += b.Qty
		u.Items = append(u.Items, models.UserItemResult{ItemID: b.ItemID, ItemName: itemNames[b.ItemID], Qty: b.Qty})
	}
	sort.SliceStable(results.Users, func(i, j int) bool {
		return results.Users[i].TotalQty > results.Users[j].TotalQty
	})
	return results, nil
}

// Winners returns one payment summary per user holding allocations in the cycle
func (s *ReportsService) Winners(ctx context.Context, cycleID string) ([]models.WinnerSummary, time.Time, error) {
	cycle, items, bids, err := s.load(ctx, cycleID, "Cycle must be CLOSED or ARCHIVED")
	if err != nil {
		return nil, time.Time{}, err
	}
	deadline := s.deadline(cycle)

	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	index := make(map[string]int)
	winners := make([]models.WinnerSummary, 0)
	for _, b := range bids {
		i, ok := index[b.UserID]
		if !ok {
			i = len(winners)
			index[b.UserID] = i
			winners = append(winners, models.WinnerSummary{
				CycleID:         cycle.ID,
				CycleName:       cycle.Name,
				UserID:          b.UserID,
				TotalValue:      decimal.Zero,
				PaymentDeadline: deadline,
			})
		}
		it := byID[b.ItemID]
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(b.Qty)))

		w := &winners[i]
		w.Lines = append(w.Lines, models.WinnerLine{ItemID: b.ItemID, Item: it.Name, Qty: b.Qty, Price: it.Price, LineTotal: lineTotal})
		w.TotalQty += b.Qty
		w.TotalValue = w.TotalValue.Add(lineTotal)
	}
	return winners, deadline, nil
}

// NotifyWinners publishes every winner summary with routing key winners.<cycleId>.
// A failed publish is counted and logged; the remaining winners are still notified.
func (s *ReportsService) NotifyWinners(ctx context.Context, cycleID string) (models.NotifyReport, error) {
	winners, deadline, err := s.Winners(ctx, cycleID)
	if err != nil {
		return models.NotifyReport{}, err
	}

	report := models.NotifyReport{TotalUsers: len(winners), Deadline: deadline}
	key := "winners." + cycleID
	for _, w := range winners {
		if err := s.publisher.PublishJSON(ctx, key, w); err != nil {
			report.Failed++
			utils.Error("reports: failed to publish winner", map[string]any{
				"cycle_id": cycleID,
				"user_id":  w.UserID,
				"error":    err.Error(),
			})
			continue
		}
		report.Sent++
	}

	utils.Info("reports: winners notified", map[string]any{
		"cycle_id": cycleID,
		"sent":     report.Sent,
		"failed":   report.Failed,
	})
	return report, nil
}

func (s *ReportsService) load(ctx context.Context, cycleID, unavailable string) (models.Cycle, []models.Item, []models.Bid, error) {
	cycle, err := s.store.GetCycle(ctx, cycleID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Cycle{}, nil, nil, allocationerrors.Newf(allocationerrors.ErrNotFound, allocationerrors.ReasonCycleNotFound, "Cycle %s not found", cycleID)
	}
	if err != nil {
		return models.Cycle{}, nil, nil, fmt.Errorf("reports: failed to get cycle %s: %w", cycleID, err)
	}
	if !cycle.Status.HasResults() {
		return models.Cycle{}, nil, nil, allocationerrors.New(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonResultsUnavailable, unavailable)
	}

	items, err := s.store.ListItems(ctx, cycleID)
	if err != nil {
		return models.Cycle{}, nil, nil, fmt.Errorf("reports: failed to list items for cycle %s: %w", cycleID, err)
	}
	bids, err := s.store.ListBidsByCycle(ctx, cycleID)
	if err != nil {
		return models.Cycle{}, nil, nil, fmt.Errorf("reports: failed to list bids for cycle %s: %w", cycleID, err)
	}
	return cycle, items, bids, nil
}

func (s *ReportsService) deadline(cycle models.Cycle) time.Time {
	base := s.now().UTC()
	if cycle.CloseAt != nil {
		base = cycle.CloseAt.UTC()
	}
	return base.AddDate(0, 0, s.deadlineDays)
}

func percentFilled(it models.Item) float64 {
	if it.TotalQty <= 0 {
		return 0
	}
	return math.Round(float64(it.AllocatedQty)*10000/float64(it.TotalQty)) / 100
}
