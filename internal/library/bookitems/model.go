package bookitems

import (
	"database/sql"
	"time"
)

// Status は book_items.status に保存される値そのもの。
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBorrowed  Status = "BORROWED"
	// LOST / DAMAGED は遷移対象外だが保存値としては有効
	StatusLost    Status = "LOST"
	StatusDamaged Status = "DAMAGED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusBorrowed, StatusLost, StatusDamaged:
		return Status(s), true
	}
	return "", false
}

type Action string

const (
	ActionBorrow Action = "BORROW"
	ActionReturn Action = "RETURN"
)

// BookItem is one physical copy of a book.
type BookItem struct {
	ID         string         `db:"id"`
	BookID     string         `db:"book_id"`
	Status     Status         `db:"status"`
	UserID     sql.NullString `db:"user_id"`
	BorrowedAt sql.NullTime   `db:"borrowed_at"`
	ReturnedAt sql.NullTime   `db:"returned_at"`
	DueDate    sql.NullTime   `db:"due_date"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  sql.NullTime   `db:"deleted_at"`
}

// HistoryRecord is written once per successful transition and never changed.
type HistoryRecord struct {
	ID         string    `db:"id"`
	BookItemID string    `db:"book_item_id"`
	UserID     string    `db:"user_id"`
	Action     Action    `db:"action"`
	ActionAt   time.Time `db:"action_at"`
}

// ItemFilter: nil は条件なし
type ItemFilter struct {
	Status *Status
	ID     *string
	BookID *string
	From   *time.Time // borrowed_at >= From
	To     *time.Time // borrowed_at <= To
}
