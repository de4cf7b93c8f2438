package bookitems

import (
	"context"
	"sort"
	"sync"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/paging"
)

// memRepo is an in-memory Repository. Each Mark* call is atomic under mu,
// which is the same guarantee a row-level conditional UPDATE gives.
type memRepo struct {
	mu      sync.Mutex
	items   map[string]*BookItem
	history []HistoryRecord
	// nil なら全ユーザーを既知として扱う
	users      map[string]bool
	failAppend error
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]*BookItem{}}
}

func (r *memRepo) put(m BookItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := m
	r.items[m.ID] = &cp
}

func (r *memRepo) snapshot(id string) BookItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.items[id]
}

func (r *memRepo) historyFor(id string) []HistoryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []HistoryRecord
	for _, h := range r.history {
		if h.BookItemID == id {
			out = append(out, h)
		}
	}
	return out
}

func (r *memRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	tx := &memTx{repo: r}
	if err := fn(ctx, tx); err != nil {
		r.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepo) GetItem(ctx context.Context, id string) (*BookItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound("book item not found")
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) InsertItem(ctx context.Context, m *BookItem) error {
	r.put(*m)
	return nil
}

func (r *memRepo) SoftDelete(ctx context.Context, id string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.DeletedAt.Valid || m.Status == StatusBorrowed {
		return 0, nil
	}
	m.DeletedAt.Time, m.DeletedAt.Valid = now, true
	m.UpdatedAt = now
	return 1, nil
}

func (r *memRepo) ListItems(ctx context.Context, f ItemFilter, w paging.Window) ([]BookItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []BookItem
	for _, m := range r.items {
		if matches(m, f) {
			all = append(all, *m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, w), int64(len(all)), nil
}

func (r *memRepo) ListHistory(ctx context.Context, itemID string, w paging.Window) ([]HistoryRecord, int64, error) {
	recs := r.historyFor(itemID)
	return window(recs, w), int64(len(recs)), nil
}

func matches(m *BookItem, f ItemFilter) bool {
	if m.DeletedAt.Valid {
		return false
	}
	if f.Status != nil && m.Status != *f.Status {
		return false
	}
	if f.ID != nil && m.ID != *f.ID {
		return false
	}
	if f.BookID != nil && m.BookID != *f.BookID {
		return false
	}
	if f.From != nil && (!m.BorrowedAt.Valid || m.BorrowedAt.Time.Before(*f.From)) {
		return false
	}
	if f.To != nil && (!m.BorrowedAt.Valid || m.BorrowedAt.Time.After(*f.To)) {
		return false
	}
	return true
}

func window[T any](all []T, w paging.Window) []T {
	off := int(w.Offset())
	if off >= len(all) {
		return nil
	}
	end := off + w.Size
	if end > len(all) {
		end = len(all)
	}
	return all[off:end]
}

type memTx struct {
	repo *memRepo
	undo []func()
}

func (t *memTx) MarkBorrowed(ctx context.Context, id, userID string, now, due time.Time) (int64, error) {
	r := t.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users != nil && !r.users[userID] {
		return 0, &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	}
	m, ok := r.items[id]
	if !ok || m.Status != StatusAvailable || m.DeletedAt.Valid {
		return 0, nil
	}
	prev := *m
	m.UserID.String, m.UserID.Valid = userID, true
	m.Status = StatusBorrowed
	m.BorrowedAt.Time, m.BorrowedAt.Valid = now, true
	m.ReturnedAt.Valid = false
	m.DueDate.Time, m.DueDate.Valid = due, true
	m.UpdatedAt = now
	t.undo = append(t.undo, func() { *r.items[id] = prev })
	return 1, nil
}

func (t *memTx) MarkReturned(ctx context.Context, id, userID string, now time.Time) (int64, error) {
	r := t.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.Status != StatusBorrowed || m.DeletedAt.Valid || !m.UserID.Valid || m.UserID.String != userID {
		return 0, nil
	}
	prev := *m
	m.Status = StatusAvailable
	m.ReturnedAt.Time, m.ReturnedAt.Valid = now, true
	m.UserID.Valid = false
	m.UpdatedAt = now
	t.undo = append(t.undo, func() { *r.items[id] = prev })
	return 1, nil
}

func (t *memTx) AppendHistory(ctx context.Context, rec *HistoryRecord) error {
	r := t.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend != nil {
		return r.failAppend
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.history = append(r.history, *rec)
	id := rec.ID
	t.undo = append(t.undo, func() {
		for i := range r.history {
			if r.history[i].ID == id {
				r.history = append(r.history[:i], r.history[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (t *memTx) GetItem(ctx context.Context, id string) (*BookItem, error) {
	return t.repo.GetItem(ctx, id)
}
