// Package quota enforces the daily per-apiId recipient ceiling against the
// durable send history.
package quota

import (
	"context"
	"time"

	"github.com/smsinvite/invite-service/internal/domain"
	inviteRepo "github.com/smsinvite/invite-service/internal/repository/invite"
)

type Tracker struct {
	storage inviteRepo.Repository
	limit   int
	now     func() time.Time
}

func NewTracker(storage inviteRepo.Repository, limit int) *Tracker {
	if limit <= 0 {
		limit = domain.DefaultDailySendLimit
	}
	return &Tracker{
		storage: storage,
		limit:   limit,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Used by tests to pin the day window.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// CheckAndReserve verifies that sending to requested more recipients keeps
// the apiID within the daily limit for the current UTC day. Totals of
// exactly the limit are allowed. It returns the usage counted at check
// time; a *domain.QuotaExceededError means the batch must be rejected,
// while any other error is an infrastructure failure.
//
// The check and the subsequent log writes are not one atomic unit: two
// concurrent submissions for the same apiID can both pass and jointly
// exceed the limit. Closing that race would require a serializable
// transaction around the count and the inserts.
func (t *Tracker) CheckAndReserve(ctx context.Context, apiID, requested int) (int, error) {
	usage, err := t.storage.CountSentToday(ctx, apiID, t.now().UTC())
	if err != nil {
		return 0, err
	}

	if usage+requested > t.limit {
		return usage, &domain.QuotaExceededError{
			Limit:        t.limit,
			CurrentUsage: usage,
			Requested:    requested,
		}
	}

	return usage, nil
}
