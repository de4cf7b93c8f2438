package bookitems

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/filter"
	"library-backend/internal/platform/paging"
)

// Repository is what the service needs outside a transition.
type Repository interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
	GetItem(ctx context.Context, id string) (*BookItem, error)
	ListItems(ctx context.Context, f ItemFilter, w paging.Window) ([]BookItem, int64, error)
	InsertItem(ctx context.Context, m *BookItem) error
	SoftDelete(ctx context.Context, id string, now time.Time) (int64, error)
	ListHistory(ctx context.Context, itemID string, w paging.Window) ([]HistoryRecord, int64, error)
}

// TxRepository is the part used inside one transition-and-append transaction.
// Mark* return the affected row count of the conditional write.
type TxRepository interface {
	MarkBorrowed(ctx context.Context, id, userID string, now, due time.Time) (int64, error)
	MarkReturned(ctx context.Context, id, userID string, now time.Time) (int64, error)
	AppendHistory(ctx context.Context, rec *HistoryRecord) error
	GetItem(ctx context.Context, id string) (*BookItem, error)
}

var dialect = goqu.Dialect("mysql")

var itemColumns = []any{
	"id", "book_id", "status", "user_id", "borrowed_at", "returned_at",
	"due_date", "created_at", "updated_at", "deleted_at",
}

var historyColumns = []any{"id", "book_item_id", "user_id", "action", "action_at"}

// ItemSort: API名 -> カラム
var ItemSort = paging.SortSpec{
	Fields: map[string]string{
		"id":         "id",
		"bookId":     "book_id",
		"status":     "status",
		"borrowedAt": "borrowed_at",
		"returnedAt": "returned_at",
		"dueDate":    "due_date",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
	},
	Default:    []string{"created_at"},
	TieBreaker: "id",
}

var HistorySort = paging.SortSpec{
	Fields:     map[string]string{"actionAt": "action_at", "action": "action"},
	Default:    []string{"action_at"},
	TieBreaker: "id",
}

type Store struct {
	db *sqlx.DB
	q  db.DBTX
}

func NewStore(conn *sqlx.DB) *Store { return &Store{db: conn, q: conn} }

// WithinTx runs fn in one transaction. fn sees a Store bound to the tx.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &Store{db: s.db, q: tx})
	})
}

// ---------- conditional transitions ----------

// AVAILABLE かつ未削除の行だけを BORROWED にする。競合時は 0 行。
const borrowSQL = `
UPDATE book_items
SET user_id = ?, status = 'BORROWED', borrowed_at = ?, returned_at = NULL, due_date = ?, updated_at = ?
WHERE id = ? AND status = 'AVAILABLE' AND deleted_at IS NULL`

// 借り手本人の BORROWED 行だけを戻す。user_id はクリアし、直前の借り手は履歴に残る。
const returnSQL = `
UPDATE book_items
SET status = 'AVAILABLE', returned_at = ?, user_id = NULL, updated_at = ?
WHERE id = ? AND user_id = ? AND status = 'BORROWED' AND deleted_at IS NULL`

func (s *Store) MarkBorrowed(ctx context.Context, id, userID string, now, due time.Time) (int64, error) {
	res, err := s.q.ExecContext(ctx, borrowSQL, userID, now, due, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) MarkReturned(ctx context.Context, id, userID string, now time.Time) (int64, error) {
	res, err := s.q.ExecContext(ctx, returnSQL, now, now, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AppendHistory は INSERT のみ。更新・削除のメソッドは持たない。
func (s *Store) AppendHistory(ctx context.Context, rec *HistoryRecord) error {
	const q = `
INSERT INTO book_item_history (id, book_item_id, user_id, action, action_at)
VALUES (?, ?, ?, ?, ?)`
	_, err := s.q.ExecContext(ctx, q, rec.ID, rec.BookItemID, rec.UserID, rec.Action, rec.ActionAt)
	return err
}

// ---------- reads / catalogue ----------

// GetItem returns the row even when soft-deleted; callers decide.
func (s *Store) GetItem(ctx context.Context, id string) (*BookItem, error) {
	q, args, err := dialect.From("book_items").Select(itemColumns...).
		Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var m BookItem
	if err := s.q.GetContext(ctx, &m, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("book item not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertItem(ctx context.Context, m *BookItem) error {
	const q = `
INSERT INTO book_items (id, book_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`
	_, err := s.q.ExecContext(ctx, q, m.ID, m.BookID, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if apperr.IsForeignKey(err) {
			return apperr.ErrNotFound("book not found")
		}
		return err
	}
	return nil
}

// SoftDelete は貸出中の行を消さない。0 行なら呼び出し側で原因を判定する。
func (s *Store) SoftDelete(ctx context.Context, id string, now time.Time) (int64, error) {
	const q = `
UPDATE book_items SET deleted_at = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL AND status <> 'BORROWED'`
	res, err := s.q.ExecContext(ctx, q, now, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func itemPredicate(f ItemFilter) filter.Builder {
	return filter.New().
		IsNull("deleted_at").
		Equal("status", filter.Text(f.Status)).
		Equal("id", f.ID).
		Equal("book_id", f.BookID).
		Range("borrowed_at", f.From, f.To)
}

// ListItems returns one window and the size of the whole filtered set.
func (s *Store) ListItems(ctx context.Context, f ItemFilter, w paging.Window) ([]BookItem, int64, error) {
	base := itemPredicate(f).Apply(dialect.From("book_items"))

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.q.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []BookItem{}, 0, nil
	}

	listSQL, listArgs, err := w.Apply(base.Select(itemColumns...)).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	items := make([]BookItem, 0, w.Size)
	if err := s.q.SelectContext(ctx, &items, listSQL, listArgs...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListHistory(ctx context.Context, itemID string, w paging.Window) ([]HistoryRecord, int64, error) {
	base := dialect.From("book_item_history").Where(goqu.C("book_item_id").Eq(itemID))

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.q.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	listSQL, listArgs, err := w.Apply(base.Select(historyColumns...)).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	recs := make([]HistoryRecord, 0, w.Size)
	if err := s.q.SelectContext(ctx, &recs, listSQL, listArgs...); err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
