package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/smsinvite/invite-service/internal/carrier"
	"github.com/smsinvite/invite-service/internal/domain"
	"github.com/smsinvite/invite-service/internal/quota"
	inviteRepo "github.com/smsinvite/invite-service/internal/repository/invite"
	"github.com/smsinvite/invite-service/internal/validation"
)

// Dispatcher orchestrates one invite submission: validation, quota check,
// message persistence, per-recipient carrier sends and the send log.
type Dispatcher struct {
	storage inviteRepo.Repository
	tracker *quota.Tracker
	carrier carrier.Carrier
	logger  *slog.Logger
	now     func() time.Time
}

func NewDispatcher(storage inviteRepo.Repository, tracker *quota.Tracker, sink carrier.Carrier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		storage: storage,
		tracker: tracker,
		carrier: sink,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// SubmitInvite sends message to every phone in the batch and returns one
// result per phone, in input order. Validation and quota failures abort
// before anything is written; a carrier failure for one recipient never
// aborts the rest of the batch.
func (d *Dispatcher) SubmitInvite(ctx context.Context, apiID int, phones []string, message string) ([]domain.RecipientResult, error) {
	if err := validation.ValidatePhones(phones); err != nil {
		return nil, err
	}
	if err := validation.ValidateMessage(message); err != nil {
		return nil, err
	}

	usage, err := d.tracker.CheckAndReserve(ctx, apiID, len(phones))
	if err != nil {
		return nil, err
	}

	messageID, err := d.storage.SaveMessage(ctx, apiID, message)
	if err != nil {
		return nil, err
	}

	logger := d.logger.With(slog.Int("apiId", apiID), slog.Int("dbMessageId", messageID))
	logger.Info("dispatching invite message",
		slog.Int("recipients", len(phones)),
		slog.Int("sentToday", usage))

	// Once a send has been attempted its log entry must be written even if
	// the caller has disconnected, so log appends ignore cancellation.
	logCtx := context.WithoutCancel(ctx)

	results := make([]domain.RecipientResult, 0, len(phones))
	for _, phone := range phones {
		result := domain.RecipientResult{Phone: phone, Sent: true}

		receiptID, sendErr := d.carrier.Send(ctx, phone, message)
		if sendErr != nil {
			result.Sent = false
			result.Reason = sendErr.Error()
			logger.Error("carrier send failed", "phone", phone, "error", sendErr.Error())
		}

		// The log records attempts, not confirmed deliveries, so the entry
		// is appended regardless of the carrier outcome.
		sentAt := d.now().UTC()
		if err := d.storage.AppendLogEntry(logCtx, messageID, phone, sentAt); err != nil {
			logger.Error("failed to append send log entry", "phone", phone, "error", err.Error())
			return results, err
		}

		if sendErr == nil {
			if err := d.storage.CacheReceipt(logCtx, receiptID, phone, sentAt); err != nil {
				logger.Error("failed to cache carrier receipt", "receiptId", receiptID, "error", err.Error())
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// GetSendLog returns the recorded delivery attempts for one invite message,
// newest first.
func (d *Dispatcher) GetSendLog(ctx context.Context, messageID int) ([]domain.SendLogEntry, error) {
	return d.storage.ListLogEntries(ctx, messageID)
}
