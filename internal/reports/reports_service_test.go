package reports

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/repository"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	keys     []string
	payloads []models.WinnerSummary
	failFor  map[string]bool
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	w := v.(models.WinnerSummary)
	if p.failFor[w.UserID] {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, w)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var closedAt = time.Date(2026, 6, 30, 17, 0, 0, 0, time.UTC)

func seededStore(status models.CycleStatus) *repository.MemoryRepo {
	repo := repository.NewMemoryRepo()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	cycle := models.Cycle{ID: "c1", Name: "June", Status: status, MaxItemsPerUser: 5, CreatedAt: base}
	if status.HasResults() {
		cycle.CloseAt = &closedAt
	}
	repo.AddCycle(cycle)
	repo.AddItem(models.Item{ID: "laptop", CycleID: "c1", Name: "Laptop", Price: decimal.RequireFromString("1200.50"), TotalQty: 4, AllocatedQty: 3, CreatedAt: base})
	repo.AddItem(models.Item{ID: "mouse", CycleID: "c1", Name: "Mouse", Price: decimal.RequireFromString("15"), TotalQty: 3, AllocatedQty: 1, CreatedAt: base.Add(time.Minute)})
	repo.AddItem(models.Item{ID: "desk", CycleID: "c1", Name: "Desk", Price: decimal.RequireFromString("80"), TotalQty: 2, CreatedAt: base.Add(2 * time.Minute)})
	repo.AddBid(models.Bid{ID: "b1", UserID: "alice", ItemID: "laptop", CycleID: "c1", Qty: 1, CreatedAt: base.Add(time.Hour)})
	repo.AddBid(models.Bid{ID: "b2", UserID: "bob", ItemID: "laptop", CycleID: "c1", Qty: 2, CreatedAt: base.Add(2 * time.Hour)})
	repo.AddBid(models.Bid{ID: "b3", UserID: "alice", ItemID: "mouse", CycleID: "c1", Qty: 1, CreatedAt: base.Add(3 * time.Hour)})
	return repo
}

func TestReportsService_Results(t *testing.T) {
	t.Parallel()

	svc := NewReportsService(seededStore(models.CycleClosed), nil, 5)

	res, err := svc.Results(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, models.CycleSummary{ID: "c1", Name: "June", Status: models.CycleClosed}, res.Cycle)

	require.Len(t, res.Items, 3)
	require.Equal(t, []string{"laptop", "mouse", "desk"}, []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID})
	require.Equal(t, 2, res.Items[0].UserCount)
	require.Equal(t, 75.0, res.Items[0].PercentFilled)
	require.Equal(t, 33.33, res.Items[1].PercentFilled)
	require.Equal(t, 0, res.Items[2].UserCount)
	require.NotNil(t, res.Items[2].Bids)

	require.Len(t, res.Users, 2)
	// equal totals keep first-bid order
	require.Equal(t, "alice", res.Users[0].UserID)
	require.Equal(t, 2, res.Users[0].TotalQty)
	require.Equal(t, []models.UserItemResult{{ItemID: "laptop", ItemName: "Laptop", Qty: 1}, {ItemID: "mouse", ItemName: "Mouse", Qty: 1}}, res.Users[0].Items)
	require.Equal(t, "bob", res.Users[1].UserID)
}

func TestReportsService_Results_SortsUsersByTotal(t *testing.T) {
	t.Parallel()

	repo := seededStore(models.CycleArchived)
	repo.AddBid(models.Bid{ID: "b4", UserID: "carol", ItemID: "desk", CycleID: "c1", Qty: 2, CreatedAt: time.Now()})
	repo.AddBid(models.Bid{ID: "b5", UserID: "carol", ItemID: "mouse", CycleID: "c1", Qty: 1, CreatedAt: time.Now()})

	res, err := NewReportsService(repo, nil, 5).Results(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "carol", res.Users[0].UserID)
	require.Equal(t, 3, res.Users[0].TotalQty)
}

func TestReportsService_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     models.CycleStatus
		cycleID    string
		wantKind   error
		wantReason allocationerrors.Reason
	}{
		{name: "draft", status: models.CycleDraft, cycleID: "c1", wantKind: allocationerrors.ErrPolicyViolation, wantReason: allocationerrors.ReasonResultsUnavailable},
		{name: "open", status: models.CycleOpen, cycleID: "c1", wantKind: allocationerrors.ErrPolicyViolation, wantReason: allocationerrors.ReasonResultsUnavailable},
		{name: "missing", status: models.CycleClosed, cycleID: "nope", wantKind: allocationerrors.ErrNotFound, wantReason: allocationerrors.ReasonCycleNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pub := &recordingPublisher{}
			svc := NewReportsService(seededStore(tc.status), pub, 5)

			_, err := svc.Results(context.Background(), tc.cycleID)
			require.ErrorIs(t, err, tc.wantKind)
			require.Equal(t, tc.wantReason, allocationerrors.ReasonOf(err))

			_, err = svc.NotifyWinners(context.Background(), tc.cycleID)
			require.ErrorIs(t, err, tc.wantKind)
			require.Empty(t, pub.payloads)
		})
	}
}

func TestReportsService_Winners(t *testing.T) {
	t.Parallel()

	svc := NewReportsService(seededStore(models.CycleClosed), nil, 5)

	winners, deadline, err := svc.Winners(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, closedAt.AddDate(0, 0, 5), deadline)
	require.Len(t, winners, 2)

	alice := winners[0]
	require.Equal(t, "alice", alice.UserID)
	require.Equal(t, "June", alice.CycleName)
	require.Equal(t, 2, alice.TotalQty)
	require.True(t, decimal.RequireFromString("1215.50").Equal(alice.TotalValue), alice.TotalValue.String())
	require.Equal(t, deadline, alice.PaymentDeadline)

	bob := winners[1]
	require.Len(t, bob.Lines, 1)
	require.True(t, decimal.RequireFromString("2401").Equal(bob.Lines[0].LineTotal))
}

func TestReportsService_Winners_DeadlineFromNowWithoutCloseAt(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	repo.AddCycle(models.Cycle{ID: "c1", Name: "June", Status: models.CycleClosed, MaxItemsPerUser: 1})
	svc := NewReportsService(repo, nil, 0)
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	winners, deadline, err := svc.Winners(context.Background(), "c1")
	require.NoError(t, err)
	require.Empty(t, winners)
	require.Equal(t, now.AddDate(0, 0, defaultDeadlineDays), deadline)
}

func TestReportsService_NotifyWinners(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{failFor: map[string]bool{"bob": true}}
	svc := NewReportsService(seededStore(models.CycleClosed), pub, 3)

	report, err := svc.NotifyWinners(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, models.NotifyReport{Sent: 1, Failed: 1, TotalUsers: 2, Deadline: closedAt.AddDate(0, 0, 3)}, report)
	require.Equal(t, []string{"winners.c1"}, pub.keys)
	require.Equal(t, "alice", pub.payloads[0].UserID)
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_PublishJSON(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "allocation"}

	err := p.PublishJSON(context.Background(), "winners.c1", models.WinnerSummary{UserID: "alice", TotalQty: 2})
	require.NoError(t, err)
	require.Equal(t, "allocation", ch.exchange)
	require.Equal(t, "winners.c1", ch.key)
	require.Equal(t, "application/json", ch.msg.ContentType)
	require.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	require.NotEmpty(t, ch.msg.MessageId)

	var decoded models.WinnerSummary
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	require.Equal(t, "alice", decoded.UserID)

	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}

func TestLogPublisher(t *testing.T) {
	t.Parallel()

	var p WinnerPublisher = LogPublisher{}
	require.NoError(t, p.PublishJSON(context.Background(), "winners.c1", map[string]int{"qty": 1}))
	require.Error(t, p.PublishJSON(context.Background(), "winners.c1", make(chan int)))
	require.NoError(t, p.Close())
}
