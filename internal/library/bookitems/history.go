package bookitems

import (
	"context"
	"time"
)

// HistoryRecorder appends one record per confirmed transition. It is only
// handed a TxRepository, so the append commits or rolls back together with
// the conditional update that triggered it.
type HistoryRecorder struct {
	id IDGen
}

func NewHistoryRecorder(id IDGen) *HistoryRecorder { return &HistoryRecorder{id: id} }

func (h *HistoryRecorder) Record(ctx context.Context, tx TxRepository, itemID, userID string, action Action, at time.Time) (*HistoryRecord, error) {
	id, err := h.id.New()
	if err != nil {
		return nil, err
	}
	rec := &HistoryRecord{
		ID:         id,
		BookItemID: itemID,
		UserID:     userID,
		Action:     action,
		ActionAt:   at,
	}
	if err := tx.AppendHistory(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
