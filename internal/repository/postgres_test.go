package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	model "allocation-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newPostgresRepo connects to POSTGRES_TEST_DSN, applies migrations and returns a store.
// The test is skipped when the variable is unset.
func newPostgresRepo(t *testing.T) *PostgresRepo {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	require.NoError(t, RunMigrations(dsn))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewPostgresRepo(pool, 2*time.Second)
}

func seedPostgres(t *testing.T, repo *PostgresRepo, total int) (model.Cycle, model.Item) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	cycle := model.Cycle{ID: uuid.NewString(), Name: "pg cycle", Status: model.CycleOpen, MaxItemsPerUser: 100, CreatedAt: now}
	item := model.Item{ID: uuid.NewString(), CycleID: cycle.ID, Name: "pg item", Price: decimal.RequireFromString("12.50"), TotalQty: total, CreatedAt: now}

	require.NoError(t, repo.WithinTx(ctx, func(tx Tx) error {
		if err := tx.InsertCycle(ctx, cycle); err != nil {
			return err
		}
		return tx.InsertItem(ctx, item)
	}))
	return cycle, item
}

func TestPostgresRepo_GuardedIncrementAndUpsert(t *testing.T) {
	repo := newPostgresRepo(t)
	cycle, item := seedPostgres(t, repo, 2)
	ctx := context.Background()
	userID := uuid.NewString()

	claim := func(key string, qty int) error {
		return repo.WithinTx(ctx, func(tx Tx) error {
			if err := tx.InsertIdempotency(ctx, model.IdempotencyRecord{Key: key, UserID: userID, CreatedAt: time.Now().UTC()}); err != nil {
				return err
			}
			if _, err := tx.LockItems(ctx, []string{item.ID}); err != nil {
				return err
			}
			if _, err := tx.IncrementAllocated(ctx, item.ID, qty); err != nil {
				return err
			}
			_, err := tx.UpsertBid(ctx, model.Bid{ID: uuid.NewString(), UserID: userID, ItemID: item.ID, CycleID: cycle.ID, Qty: qty, CreatedAt: time.Now().UTC()})
			return err
		})
	}

	k1 := uuid.NewString()
	require.NoError(t, claim(k1, 1))
	require.ErrorIs(t, claim(k1, 1), ErrDuplicateKey)
	require.NoError(t, claim(uuid.NewString(), 1))
	require.ErrorIs(t, claim(uuid.NewString(), 1), ErrGuardFailed)

	stored, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.AllocatedQty)
	require.True(t, stored.Price.Equal(decimal.RequireFromString("12.5")))

	bids, err := repo.ListBidsByUser(ctx, userID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, 2, bids[0].Qty)
}

func TestPostgresRepo_ConcurrentLastUnit(t *testing.T) {
	repo := newPostgresRepo(t)
	_, item := seedPostgres(t, repo, 1)
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, rejected int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.WithinTx(ctx, func(tx Tx) error {
				if _, err := tx.LockItems(ctx, []string{item.ID}); err != nil {
					return err
				}
				_, err := tx.IncrementAllocated(ctx, item.ID, 1)
				return err
			})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, ErrGuardFailed):
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), ok)
	require.Equal(t, int32(19), rejected)
}
