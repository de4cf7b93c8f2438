package bookitems

import (
	"time"

	"library-backend/internal/platform/paging"
)

type CreateItemRequest struct {
	BookID string `json:"bookId"`
}

// BorrowRequest の Status は遷移先。BORROWED 以外は受け付けない。
type BorrowRequest struct {
	UserID  string     `json:"userId"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

type ReturnRequest struct {
	UserID string `json:"userId"`
}

// ListQuery is the parsed form of GET /book-items.
type ListQuery struct {
	Filter ItemFilter
	Page   paging.Request
}

type BookItemResponse struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	Status     Status     `json:"status"`
	UserID     *string    `json:"userId,omitempty"`
	BorrowedAt *time.Time `json:"borrowedAt,omitempty"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type HistoryResponse struct {
	ID         string    `json:"id"`
	BookItemID string    `json:"bookItemId"`
	UserID     string    `json:"userId"`
	Action     Action    `json:"action"`
	ActionAt   time.Time `json:"actionAt"`
}

func toItemResponse(m *BookItem) BookItemResponse {
	r := BookItemResponse{
		ID:        m.ID,
		BookID:    m.BookID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.UserID.Valid {
		v := m.UserID.String
		r.UserID = &v
	}
	if m.BorrowedAt.Valid {
		t := m.BorrowedAt.Time
		r.BorrowedAt = &t
	}
	if m.ReturnedAt.Valid {
		t := m.ReturnedAt.Time
		r.ReturnedAt = &t
	}
	if m.DueDate.Valid {
		t := m.DueDate.Time
		r.DueDate = &t
	}
	return r
}

func toHistoryResponse(h *HistoryRecord) HistoryResponse {
	return HistoryResponse{
		ID:         h.ID,
		BookItemID: h.BookItemID,
		UserID:     h.UserID,
		Action:     h.Action,
		ActionAt:   h.ActionAt,
	}
}
