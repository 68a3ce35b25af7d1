package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/events"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	events []events.Event
}

func (p *capturePublisher) Publish(ev events.Event) {
	p.events = append(p.events, ev)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newService(t *testing.T) (*LifecycleService, *repository.MemoryRepo, *capturePublisher) {
	t.Helper()
	repo := repository.NewMemoryRepo()
	pub := &capturePublisher{}
	svc := NewLifecycleService(repo, pub)
	clock := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { clock = clock.Add(time.Second); return clock }
	return svc, repo, pub
}

func seedCycle(repo *repository.MemoryRepo, id string, status models.CycleStatus) {
	repo.AddCycle(models.Cycle{ID: id, Name: "cycle " + id, Status: status, MaxItemsPerUser: 3, CreatedAt: time.Now().UTC()})
}

func requireKind(t *testing.T, err error, kind error, reason allocationerrors.Reason) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	require.Equal(t, reason, allocationerrors.ReasonOf(err))
}

func TestLifecycleService_CreateCycle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     models.CycleInput
		expectErr bool
	}{
		{name: "valid", input: models.CycleInput{Name: " October ", MaxItemsPerUser: 3}},
		{name: "missing_name", input: models.CycleInput{Name: "  ", MaxItemsPerUser: 3}, expectErr: true},
		{name: "zero_cap", input: models.CycleInput{Name: "October", MaxItemsPerUser: 0}, expectErr: true},
		{name: "cap_above_max", input: models.CycleInput{Name: "October", MaxItemsPerUser: models.MaxQuantity + 1}, expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)

			cycle, err := svc.CreateCycle(context.Background(), tc.input)
			if tc.expectErr {
				requireKind(t, err, allocationerrors.ErrValidation, allocationerrors.ReasonInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "October", cycle.Name)
			require.Equal(t, models.CycleDraft, cycle.Status)
			require.NotEmpty(t, cycle.ID)

			stored, err := repo.GetCycle(context.Background(), cycle.ID)
			require.NoError(t, err)
			require.Equal(t, cycle, stored)
		})
	}
}

func TestLifecycleService_ListAndGetCycles(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.CreateCycle(ctx, models.CycleInput{Name: "first", MaxItemsPerUser: 1})
	require.NoError(t, err)
	second, err := svc.CreateCycle(ctx, models.CycleInput{Name: "second", MaxItemsPerUser: 1})
	require.NoError(t, err)

	cycles, err := svc.ListCycles(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{second.ID, first.ID}, []string{cycles[0].ID, cycles[1].ID})

	got, err := svc.GetCycle(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)

	_, err = svc.GetCycle(ctx, "missing")
	requireKind(t, err, allocationerrors.ErrNotFound, allocationerrors.ReasonCycleNotFound)
}

func TestLifecycleService_Transition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    models.CycleStatus
		action  Action
		want    models.CycleStatus
		wantErr bool
	}{
		{from: models.CycleDraft, action: ActionOpen, want: models.CycleOpen},
		{from: models.CycleOpen, action: ActionClose, want: models.CycleClosed},
		{from: models.CycleClosed, action: ActionReopen, want: models.CycleOpen},
		{from: models.CycleClosed, action: ActionArchive, want: models.CycleArchived},
		{from: models.CycleDraft, action: ActionClose, wantErr: true},
		{from: models.CycleDraft, action: ActionArchive, wantErr: true},
		{from: models.CycleOpen, action: ActionOpen, wantErr: true},
		{from: models.CycleOpen, action: ActionArchive, wantErr: true},
		{from: models.CycleClosed, action: ActionClose, wantErr: true},
		{from: models.CycleArchived, action: ActionReopen, wantErr: true},
		{from: models.CycleArchived, action: ActionOpen, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"_"+string(tc.action), func(t *testing.T) {
			t.Parallel()
			svc, repo, pub := newService(t)
			seedCycle(repo, "c1", tc.from)

			cycle, err := svc.Transition(context.Background(), "c1", tc.action)
			if tc.wantErr {
				requireKind(t, err, allocationerrors.ErrConflict, allocationerrors.ReasonInvalidTransition)
				stored, _ := repo.GetCycle(context.Background(), "c1")
				require.Equal(t, tc.from, stored.Status)
				require.Empty(t, pub.events)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, cycle.Status)
			require.Len(t, pub.events, 1)
			require.Equal(t, events.TypeCycleStatus, pub.events[0].Type)
			require.Equal(t, "c1", pub.events[0].CycleID)
		})
	}
}

func TestLifecycleService_Transition_UnknownActionAndCycle(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(t)
	seedCycle(repo, "c1", models.CycleDraft)

	_, err := svc.Transition(context.Background(), "c1", Action("PAUSE"))
	requireKind(t, err, allocationerrors.ErrValidation, allocationerrors.ReasonInvalidInput)

	_, err = svc.Transition(context.Background(), "nope", ActionOpen)
	requireKind(t, err, allocationerrors.ErrNotFound, allocationerrors.ReasonCycleNotFound)

	// action names are case-insensitive
	cycle, err := svc.Transition(context.Background(), "c1", Action("open"))
	require.NoError(t, err)
	require.Equal(t, models.CycleOpen, cycle.Status)
}

func TestLifecycleService_ReopenPreservesAllocations(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService(t)
	ctx := context.Background()
	seedCycle(repo, "c1", models.CycleDraft)
	repo.AddItem(models.Item{ID: "A", CycleID: "c1", Name: "A", TotalQty: 5})

	opened, err := svc.Transition(ctx, "c1", ActionOpen)
	require.NoError(t, err)
	require.NotNil(t, opened.OpenAt)
	require.Nil(t, opened.CloseAt)

	repo.AddItem(models.Item{ID: "A", CycleID: "c1", Name: "A", TotalQty: 5, AllocatedQty: 2})
	repo.AddBid(models.Bid{ID: "b1", UserID: "u1", ItemID: "A", CycleID: "c1", Qty: 2})

	closed, err := svc.Transition(ctx, "c1", ActionClose)
	require.NoError(t, err)
	require.NotNil(t, closed.CloseAt)

	reopened, err := svc.Transition(ctx, "c1", ActionReopen)
	require.NoError(t, err)
	require.Equal(t, models.CycleOpen, reopened.Status)
	require.Nil(t, reopened.CloseAt)
	require.True(t, reopened.OpenAt.After(*opened.OpenAt))

	item, err := repo.GetItem(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, 2, item.AllocatedQty)
	bids, err := repo.ListBidsByCycle(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestLifecycleService_CreateItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     models.CycleStatus
		cycleID    string
		input      models.ItemInput
		wantKind   error
		wantReason allocationerrors.Reason
	}{
		{name: "valid", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", Price: decimal.RequireFromString("20001.294"), TotalQty: 4, MaxQtyPerUser: intPtr(1)}},
		{name: "open_cycle", status: models.CycleOpen, input: models.ItemInput{Name: "Laptop", TotalQty: 4}, wantKind: allocationerrors.ErrConflict, wantReason: allocationerrors.ReasonCycleNotDraft},
		{name: "unknown_cycle", status: models.CycleDraft, cycleID: "nope", input: models.ItemInput{Name: "Laptop", TotalQty: 4}, wantKind: allocationerrors.ErrNotFound, wantReason: allocationerrors.ReasonCycleNotFound},
		{name: "missing_name", status: models.CycleDraft, input: models.ItemInput{TotalQty: 4}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
		{name: "negative_price", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", Price: decimal.NewFromInt(-1), TotalQty: 4}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
		{name: "zero_total", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", TotalQty: 0}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
		{name: "zero_cap", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", TotalQty: 1, MaxQtyPerUser: intPtr(0)}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
		{name: "total_above_max", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", TotalQty: models.MaxQuantity + 1}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
		{name: "cap_above_max", status: models.CycleDraft, input: models.ItemInput{Name: "Laptop", TotalQty: 1, MaxQtyPerUser: intPtr(models.MaxQuantity + 1)}, wantKind: allocationerrors.ErrValidation, wantReason: allocationerrors.ReasonInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			seedCycle(repo, "c1", tc.status)
			cycleID := tc.cycleID
			if cycleID == "" {
				cycleID = "c1"
			}

			item, err := svc.CreateItem(context.Background(), cycleID, tc.input)
			if tc.wantKind != nil {
				requireKind(t, err, tc.wantKind, tc.wantReason)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "20001.3", item.Price.String())
			require.Equal(t, 0, item.AllocatedQty)

			items, err := svc.ListItems(context.Background(), "c1")
			require.NoError(t, err)
			require.Len(t, items, 1)
			require.Equal(t, item.ID, items[0].ID)
		})
	}
}

func TestLifecycleService_UpdateItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     models.CycleStatus
		allocated  int
		patch      models.ItemPatch
		wantKind   error
		wantReason allocationerrors.Reason
		check      func(t *testing.T, it models.Item)
	}{
		{
			name:   "rename_and_reprice",
			status: models.CycleDraft,
			patch:  models.ItemPatch{Name: strPtr("Monitor"), Price: decPtr("19.996")},
			check: func(t *testing.T, it models.Item) {
				require.Equal(t, "Monitor", it.Name)
				require.Equal(t, "20", it.Price.String())
			},
		},
		{
			name:   "clear_cap",
			status: models.CycleDraft,
			patch:  models.ItemPatch{ClearMaxQtyPerUser: true},
			check:  func(t *testing.T, it models.Item) { require.Nil(t, it.MaxQtyPerUser) },
		},
		{
			name:   "set_cap",
			status: models.CycleDraft,
			patch:  models.ItemPatch{MaxQtyPerUser: intPtr(4)},
			check:  func(t *testing.T, it models.Item) { require.Equal(t, 4, *it.MaxQtyPerUser) },
		},
		{
			name:       "total_above_max",
			status:     models.CycleDraft,
			patch:      models.ItemPatch{TotalQty: intPtr(models.MaxQuantity + 1)},
			wantKind:   allocationerrors.ErrValidation,
			wantReason: allocationerrors.ReasonInvalidInput,
		},
		{
			name:       "cap_above_max",
			status:     models.CycleDraft,
			patch:      models.ItemPatch{MaxQtyPerUser: intPtr(models.MaxQuantity + 1)},
			wantKind:   allocationerrors.ErrValidation,
			wantReason: allocationerrors.ReasonInvalidInput,
		},
		{
			name:       "total_below_allocated",
			status:     models.CycleDraft,
			allocated:  3,
			patch:      models.ItemPatch{TotalQty: intPtr(2)},
			wantKind:   allocationerrors.ErrConflict,
			wantReason: allocationerrors.ReasonTotalBelowAllocated,
		},
		{
			name:      "total_equal_to_allocated",
			status:    models.CycleDraft,
			allocated: 3,
			patch:     models.ItemPatch{TotalQty: intPtr(3)},
			check:     func(t *testing.T, it models.Item) { require.Equal(t, 3, it.TotalQty) },
		},
		{
			name:       "open_cycle",
			status:     models.CycleOpen,
			patch:      models.ItemPatch{Name: strPtr("Monitor")},
			wantKind:   allocationerrors.ErrConflict,
			wantReason: allocationerrors.ReasonCycleNotDraft,
		},
		{
			name:       "empty_name",
			status:     models.CycleDraft,
			patch:      models.ItemPatch{Name: strPtr(" ")},
			wantKind:   allocationerrors.ErrValidation,
			wantReason: allocationerrors.ReasonInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			seedCycle(repo, "c1", tc.status)
			repo.AddItem(models.Item{ID: "A", CycleID: "c1", Name: "Laptop", TotalQty: 5, AllocatedQty: tc.allocated, MaxQtyPerUser: intPtr(2)})

			updated, err := svc.UpdateItem(context.Background(), "A", tc.patch)
			if tc.wantKind != nil {
				requireKind(t, err, tc.wantKind, tc.wantReason)
				return
			}
			require.NoError(t, err)
			tc.check(t, updated)

			stored, err := repo.GetItem(context.Background(), "A")
			require.NoError(t, err)
			require.Equal(t, updated, stored)
		})
	}
}

func TestLifecycleService_DeleteItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     models.CycleStatus
		withBid    bool
		itemID     string
		wantKind   error
		wantReason allocationerrors.Reason
	}{
		{name: "draft_without_bids", status: models.CycleDraft},
		{name: "bids_in_draft", status: models.CycleDraft, withBid: true, wantKind: allocationerrors.ErrConflict, wantReason: allocationerrors.ReasonItemHasBids},
		{name: "bids_in_closed", status: models.CycleClosed, withBid: true, wantKind: allocationerrors.ErrConflict, wantReason: allocationerrors.ReasonItemHasBids},
		{name: "open_without_bids", status: models.CycleOpen, wantKind: allocationerrors.ErrConflict, wantReason: allocationerrors.ReasonCycleNotDraft},
		{name: "unknown_item", status: models.CycleDraft, itemID: "nope", wantKind: allocationerrors.ErrNotFound, wantReason: allocationerrors.ReasonItemNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			seedCycle(repo, "c1", tc.status)
			repo.AddItem(models.Item{ID: "A", CycleID: "c1", Name: "Laptop", TotalQty: 5})
			if tc.withBid {
				repo.AddBid(models.Bid{ID: "b1", UserID: "u1", ItemID: "A", CycleID: "c1", Qty: 1})
			}
			itemID := tc.itemID
			if itemID == "" {
				itemID = "A"
			}

			err := svc.DeleteItem(context.Background(), itemID)
			if tc.wantKind != nil {
				requireKind(t, err, tc.wantKind, tc.wantReason)
				_, getErr := repo.GetItem(context.Background(), "A")
				require.NoError(t, getErr)
				return
			}
			require.NoError(t, err)
			_, err = repo.GetItem(context.Background(), "A")
			require.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestLifecycleService_StorageFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		mockSetup   func(store *repository.MockStore)
		call        func(svc *LifecycleService) error
		expectedErr error
	}{
		{
			name: "transient_transition",
			mockSetup: func(store *repository.MockStore) {
				store.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(repository.ErrTransient)
			},
			call: func(svc *LifecycleService) error {
				_, err := svc.Transition(context.Background(), "c1", ActionOpen)
				return err
			},
			expectedErr: allocationerrors.ErrTransientFailure,
		},
		{
			name: "list_cycles_failure",
			mockSetup: func(store *repository.MockStore) {
				store.EXPECT().ListCycles(gomock.Any()).Return(nil, errors.New("db down"))
			},
			call: func(svc *LifecycleService) error {
				_, err := svc.ListCycles(context.Background())
				return err
			},
		},
		{
			name: "delete_referenced_race",
			mockSetup: func(store *repository.MockStore) {
				store.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(repository.Tx) error) error {
						tx := repository.NewMockTx(ctrl)
						tx.EXPECT().LockItems(gomock.Any(), []string{"A"}).Return([]models.Item{{ID: "A", CycleID: "c1"}}, nil)
						tx.EXPECT().CountItemBids(gomock.Any(), "A").Return(0, nil)
						tx.EXPECT().LockCycle(gomock.Any(), "c1").Return(models.Cycle{ID: "c1", Status: models.CycleDraft}, nil)
						tx.EXPECT().DeleteItem(gomock.Any(), "A").Return(repository.ErrReferenced)
						return fn(tx)
					})
			},
			call: func(svc *LifecycleService) error {
				return svc.DeleteItem(context.Background(), "A")
			},
			expectedErr: allocationerrors.ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := repository.NewMockStore(ctrl)
			tc.mockSetup(store)
			err := tc.call(NewLifecycleService(store, nil))
			require.Error(t, err)
			if tc.expectedErr != nil {
				require.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
				return
			}
			_, classified := allocationerrors.MessageOf(err)
			require.False(t, classified)
		})
	}
}
