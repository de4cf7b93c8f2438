package bookitems

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/logging"
	"library-backend/internal/platform/metrics"
	"library-backend/internal/platform/paging"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service本体 =====

const defaultLoanDays = 14

type Service struct {
	repo     Repository
	history  *HistoryRecorder
	clock    Clock
	id       IDGen
	log      logrus.FieldLogger
	loanDays int
}

func NewService(repo Repository, log logrus.FieldLogger, loanDays int) *Service {
	if loanDays <= 0 {
		loanDays = defaultLoanDays
	}
	id := ulidGen{}
	return &Service{
		repo:     repo,
		history:  NewHistoryRecorder(id),
		clock:    realClock{},
		id:       id,
		log:      log,
		loanDays: loanDays,
	}
}

// 蔵書（現物）登録。AVAILABLE・借り手なしで作る
func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*BookItemResponse, error) {
	bookID := strings.TrimSpace(req.BookID)
	if bookID == "" {
		return nil, apperr.ErrMissing("bookId")
	}
	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	m := &BookItem{
		ID:        id,
		BookID:    bookID,
		Status:    StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertItem(ctx, m); err != nil {
		return nil, err
	}
	resp := toItemResponse(m)
	return &resp, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*BookItemResponse, error) {
	if id == "" {
		return nil, apperr.ErrMissing("id")
	}
	m, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.DeletedAt.Valid {
		return nil, apperr.ErrNotFound("book item not found")
	}
	resp := toItemResponse(m)
	return &resp, nil
}

func (s *Service) ListItems(ctx context.Context, q ListQuery) (paging.Page[BookItemResponse], error) {
	w := paging.Translate(q.Page, ItemSort)
	if f := q.Filter; f.From != nil && f.To != nil && f.From.After(*f.To) {
		return paging.Page[BookItemResponse]{}, apperr.ErrInvalid("startDate must not be after endDate")
	}
	items, total, err := s.repo.ListItems(ctx, q.Filter, w)
	if err != nil {
		return paging.Page[BookItemResponse]{}, err
	}
	out := make([]BookItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return paging.NewPage(w, total, out), nil
}

// 論理削除。貸出中は消せない
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return apperr.ErrMissing("id")
	}
	n, err := s.repo.SoftDelete(ctx, id, s.clock.Now())
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	m, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if m.DeletedAt.Valid {
		return apperr.ErrNotFound("book item not found")
	}
	return apperr.ErrConflict("book item is borrowed and cannot be deleted")
}

func (s *Service) ListHistory(ctx context.Context, itemID string, p paging.Request) (paging.Page[HistoryResponse], error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return paging.Page[HistoryResponse]{}, err
	}
	w := paging.Translate(p, HistorySort)
	recs, total, err := s.repo.ListHistory(ctx, itemID, w)
	if err != nil {
		return paging.Page[HistoryResponse]{}, err
	}
	out := make([]HistoryResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toHistoryResponse(&recs[i]))
	}
	return paging.NewPage(w, total, out), nil
}

// ===== 貸出 / 返却 =====

// Borrow moves an AVAILABLE item to BORROWED for userID. The conditional
// update is the only serialisation point: of two concurrent borrowers exactly
// one sees an affected row, the other gets a conflict.
func (s *Service) Borrow(ctx context.Context, itemID string, req BorrowRequest) (resp *BookItemResponse, err error) {
	defer func() { metrics.RecordTransition("borrow", outcome(err)) }()

	userID := strings.TrimSpace(req.UserID)
	switch {
	case itemID == "":
		return nil, apperr.ErrMissing("id")
	case userID == "":
		return nil, apperr.ErrMissing("userId")
	case req.Status == "":
		return nil, apperr.ErrMissing("status")
	}
	if st, ok := ParseStatus(req.Status); !ok || st != StatusBorrowed {
		return nil, apperr.ErrInvalid(fmt.Sprintf("status %q cannot be requested on borrow", req.Status))
	}

	now := s.clock.Now()
	due := now.AddDate(0, 0, s.loanDays)
	if req.DueDate != nil {
		if !req.DueDate.After(now) {
			return nil, apperr.ErrInvalid("dueDate must be in the future")
		}
		due = req.DueDate.UTC()
	}

	var item *BookItem
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx TxRepository) error {
		n, err := tx.MarkBorrowed(ctx, itemID, userID, now, due)
		if err != nil {
			if apperr.IsForeignKey(err) {
				return apperr.ErrNotFound("user not found")
			}
			return err
		}
		if n != 1 {
			return classify(ctx, tx, itemID, ActionBorrow)
		}
		if _, err := s.history.Record(ctx, tx, itemID, userID, ActionBorrow, now); err != nil {
			s.logAppendFailure(ctx, itemID, userID, ActionBorrow, err)
			return err
		}
		item, err = tx.GetItem(ctx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	r := toItemResponse(item)
	return &r, nil
}

// Return gives the item back. Only the current borrower can do it.
func (s *Service) Return(ctx context.Context, itemID string, req ReturnRequest) (resp *BookItemResponse, err error) {
	defer func() { metrics.RecordTransition("return", outcome(err)) }()

	userID := strings.TrimSpace(req.UserID)
	switch {
	case itemID == "":
		return nil, apperr.ErrMissing("id")
	case userID == "":
		return nil, apperr.ErrMissing("userId")
	}

	now := s.clock.Now()

	var item *BookItem
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx TxRepository) error {
		n, err := tx.MarkReturned(ctx, itemID, userID, now)
		if err != nil {
			return err
		}
		if n != 1 {
			return classify(ctx, tx, itemID, ActionReturn)
		}
		if _, err := s.history.Record(ctx, tx, itemID, userID, ActionReturn, now); err != nil {
			s.logAppendFailure(ctx, itemID, userID, ActionReturn, err)
			return err
		}
		item, err = tx.GetItem(ctx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	r := toItemResponse(item)
	return &r, nil
}

// classify explains a zero-row transition. Missing or soft-deleted items are
// not found; anything else is a conflict with the current state.
func classify(ctx context.Context, tx TxRepository, itemID string, action Action) error {
	m, err := tx.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if m.DeletedAt.Valid {
		return apperr.ErrNotFound("book item not found")
	}
	switch action {
	case ActionBorrow:
		return apperr.ErrConflict(fmt.Sprintf("book item is not available (status %s)", m.Status))
	default:
		if m.Status != StatusBorrowed {
			return apperr.ErrConflict(fmt.Sprintf("book item is not borrowed (status %s)", m.Status))
		}
		return apperr.ErrConflict("book item is borrowed by another user")
	}
}

// 更新成功後に履歴追加が失敗した場合。Tx ごとロールバックされる
func (s *Service) logAppendFailure(ctx context.Context, itemID, userID string, action Action, err error) {
	logging.FromContext(ctx, s.log).WithError(err).WithFields(logrus.Fields{
		"book_item_id": itemID,
		"user_id":      userID,
		"action":       action,
	}).Error("history append failed after transition; rolling back")
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var api *apperr.APIError
	if !errors.As(err, &api) {
		return "error"
	}
	switch api.Code {
	case apperr.CodeConflict:
		return "conflict"
	case apperr.CodeNotFound:
		return "not_found"
	case apperr.CodeMissingParameter, apperr.CodeInvalidArgument:
		return "invalid"
	}
	return "error"
}
