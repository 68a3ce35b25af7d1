package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	model "allocation-tracker/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// SQLSTATE codes the store reacts to
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

const (
	cycleColumns = "id, name, status, max_items_per_user, open_at, close_at, created_at"
	itemColumns  = "id, cycle_id, name, description, price, total_qty, allocated_qty, max_qty_per_user, created_at"
	bidColumns   = "id, user_id, item_id, cycle_id, qty, created_at"
)

// PostgresRepo is the Store backed by PostgreSQL row locks and conditional updates
type PostgresRepo struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// Connect opens a pgx pool and verifies it with a ping
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// NewPostgresRepo creates a store on an existing pool. lockTimeout bounds every lock wait inside a transaction.
func NewPostgresRepo(pool *pgxpool.Pool, lockTimeout time.Duration) *PostgresRepo {
	return &PostgresRepo{pool: pool, lockTimeout: lockTimeout}
}

func (r *PostgresRepo) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify(ctx, fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())); err != nil {
			return classify(ctx, fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	if err := fn(&pgTx{tx: tx}); err != nil {
		return classify(ctx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(ctx, fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// classify maps retryable SQLSTATEs onto ErrTransient and leaves everything else untouched
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	return err
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (model.Cycle, error) {
	var c model.Cycle
	var status string
	err := row.Scan(&c.ID, &c.Name, &status, &c.MaxItemsPerUser, &c.OpenAt, &c.CloseAt, &c.CreatedAt)
	c.Status = model.CycleStatus(status)
	return c, err
}

func scanItem(row rowScanner) (model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.CycleID, &it.Name, &it.Description, &it.Price, &it.TotalQty, &it.AllocatedQty, &it.MaxQtyPerUser, &it.CreatedAt)
	return it, err
}

func scanBid(row rowScanner) (model.Bid, error) {
	var b model.Bid
	err := row.Scan(&b.ID, &b.UserID, &b.ItemID, &b.CycleID, &b.Qty, &b.CreatedAt)
	return b, err
}

func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func getCycle(ctx context.Context, q querier, id string, suffix string) (model.Cycle, error) {
	c, err := scanCycle(q.QueryRow(ctx, "SELECT "+cycleColumns+" FROM cycles WHERE id = $1"+suffix, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Cycle{}, fmt.Errorf("get cycle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Cycle{}, fmt.Errorf("get cycle %s: %w", id, err)
	}
	return c, nil
}

func (r *PostgresRepo) GetCycle(ctx context.Context, id string) (model.Cycle, error) {
	return getCycle(ctx, r.pool, id, "")
}

func (r *PostgresRepo) ListCycles(ctx context.Context) ([]model.Cycle, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+cycleColumns+" FROM cycles ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return collect(rows, scanCycle)
}

func (r *PostgresRepo) ListCyclesByStatus(ctx context.Context, status model.CycleStatus) ([]model.Cycle, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+cycleColumns+" FROM cycles WHERE status = $1 ORDER BY created_at DESC, id DESC", string(status))
	if err != nil {
		return nil, fmt.Errorf("list cycles with status %s: %w", status, err)
	}
	return collect(rows, scanCycle)
}

func (r *PostgresRepo) GetItem(ctx context.Context, id string) (model.Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, "SELECT "+itemColumns+" FROM items WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Item{}, fmt.Errorf("get item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

func (r *PostgresRepo) GetItems(ctx context.Context, ids []string) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ANY($1::text[]) ORDER BY id", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	return collect(rows, scanItem)
}

func (r *PostgresRepo) ListItems(ctx context.Context, cycleID string) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+itemColumns+" FROM items WHERE cycle_id = $1 ORDER BY created_at, id", cycleID)
	if err != nil {
		return nil, fmt.Errorf("list items of cycle %s: %w", cycleID, err)
	}
	return collect(rows, scanItem)
}

func (r *PostgresRepo) ListBidsByCycle(ctx context.Context, cycleID string) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+bidColumns+" FROM bids WHERE cycle_id = $1 ORDER BY created_at, id", cycleID)
	if err != nil {
		return nil, fmt.Errorf("list bids of cycle %s: %w", cycleID, err)
	}
	return collect(rows, scanBid)
}

func (r *PostgresRepo) ListBidsByUser(ctx context.Context, userID, cycleID string) ([]model.Bid, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+bidColumns+" FROM bids WHERE user_id = $1 AND ($2 = '' OR cycle_id = $2) ORDER BY created_at DESC, id DESC",
		userID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("list bids of user %s: %w", userID, err)
	}
	return collect(rows, scanBid)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertIdempotency(ctx context.Context, rec model.IdempotencyRecord) error {
	_, err := t.tx.Exec(ctx, "INSERT INTO idempotency_keys (key, user_id, created_at) VALUES ($1, $2, $3)",
		rec.Key, rec.UserID, rec.CreatedAt)
	if isPgCode(err, pgUniqueViolation) {
		return fmt.Errorf("insert idempotency key %s: %w", rec.Key, ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("insert idempotency key %s: %w", rec.Key, err)
	}
	return nil
}

func (t *pgTx) LockItems(ctx context.Context, ids []string) ([]model.Item, error) {
	rows, err := t.tx.Query(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("lock items: %w", err)
	}
	return collect(rows, scanItem)
}

func (t *pgTx) LockCycle(ctx context.Context, id string) (model.Cycle, error) {
	return getCycle(ctx, t.tx, id, " FOR UPDATE")
}

func (t *pgTx) LockUserBids(ctx context.Context, userID, cycleID string) ([]model.Bid, error) {
	rows, err := t.tx.Query(ctx,
		"SELECT "+bidColumns+" FROM bids WHERE user_id = $1 AND cycle_id = $2 ORDER BY item_id FOR UPDATE", userID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("lock bids of user %s: %w", userID, err)
	}
	return collect(rows, scanBid)
}

func (t *pgTx) IncrementAllocated(ctx context.Context, itemID string, qty int) (model.Item, error) {
	it, err := scanItem(t.tx.QueryRow(ctx,
		"UPDATE items SET allocated_qty = allocated_qty + $2 WHERE id = $1 AND $2 > 0 AND allocated_qty + $2 <= total_qty RETURNING "+itemColumns,
		itemID, qty))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Item{}, fmt.Errorf("increment item %s by %d: %w", itemID, qty, ErrGuardFailed)
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("increment item %s: %w", itemID, err)
	}
	return it, nil
}

func (t *pgTx) UpsertBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	b, err := scanBid(t.tx.QueryRow(ctx, `
		INSERT INTO bids (id, user_id, item_id, cycle_id, qty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, item_id, cycle_id) DO UPDATE SET qty = bids.qty + EXCLUDED.qty, updated_at = now()
		RETURNING `+bidColumns,
		bid.ID, bid.UserID, bid.ItemID, bid.CycleID, bid.Qty, bid.CreatedAt))
	if err != nil {
		return model.Bid{}, fmt.Errorf("upsert bid for item %s: %w", bid.ItemID, err)
	}
	return b, nil
}

func (t *pgTx) InsertCycle(ctx context.Context, c model.Cycle) error {
	_, err := t.tx.Exec(ctx,
		"INSERT INTO cycles ("+cycleColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		c.ID, c.Name, string(c.Status), c.MaxItemsPerUser, c.OpenAt, c.CloseAt, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cycle %s: %w", c.ID, err)
	}
	return nil
}

func (t *pgTx) UpdateCycle(ctx context.Context, c model.Cycle) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE cycles SET name = $2, status = $3, max_items_per_user = $4, open_at = $5, close_at = $6 WHERE id = $1",
		c.ID, c.Name, string(c.Status), c.MaxItemsPerUser, c.OpenAt, c.CloseAt)
	if err != nil {
		return fmt.Errorf("update cycle %s: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update cycle %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (t *pgTx) InsertItem(ctx context.Context, it model.Item) error {
	_, err := t.tx.Exec(ctx,
		"INSERT INTO items ("+itemColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		it.ID, it.CycleID, it.Name, it.Description, it.Price, it.TotalQty, it.AllocatedQty, it.MaxQtyPerUser, it.CreatedAt)
	if isPgCode(err, pgForeignKeyViolation) {
		return fmt.Errorf("insert item into cycle %s: %w", it.CycleID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert item %s: %w", it.ID, err)
	}
	return nil
}

func (t *pgTx) UpdateItem(ctx context.Context, it model.Item) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE items SET name = $2, description = $3, price = $4, total_qty = $5, max_qty_per_user = $6
		WHERE id = $1 AND $5 >= allocated_qty`,
		it.ID, it.Name, it.Description, it.Price, it.TotalQty, it.MaxQtyPerUser)
	if err != nil {
		return fmt.Errorf("update item %s: %w", it.ID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)", it.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update item %s: %w", it.ID, err)
	}
	if !exists {
		return fmt.Errorf("update item %s: %w", it.ID, ErrNotFound)
	}
	return fmt.Errorf("update item %s total %d: %w", it.ID, it.TotalQty, ErrGuardFailed)
}

func (t *pgTx) DeleteItem(ctx context.Context, id string) error {
	tag, err := t.tx.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if isPgCode(err, pgForeignKeyViolation) {
		return fmt.Errorf("delete item %s: %w", id, ErrReferenced)
	}
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete item %s: %w", id, ErrNotFound)
	}
	return nil
}

func (t *pgTx) CountItemBids(ctx context.Context, itemID string) (int, error) {
	var n int
	if err := t.tx.QueryRow(ctx, "SELECT count(*) FROM bids WHERE item_id = $1", itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bids of item %s: %w", itemID, err)
	}
	return n, nil
}
