package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smsinvite/invite-service/internal/cache"
	"github.com/smsinvite/invite-service/internal/domain"
	"gorm.io/gorm"
)

// fkViolation is the postgres error code for foreign key violations.
const fkViolation = "23503"

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == fkViolation
}

// utcDayWindow returns the half-open UTC calendar day [start, end)
// containing asOf. Quota counting is pinned to UTC days.
func utcDayWindow(asOf time.Time) (start, end time.Time) {
	start = asOf.UTC().Truncate(24 * time.Hour)
	return start, start.Add(24 * time.Hour)
}

type Repository interface {
	SaveMessage(ctx context.Context, apiID int, message string) (int, error)
	AppendLogEntry(ctx context.Context, messageID int, phone string, sentAt time.Time) error
	CountSentToday(ctx context.Context, apiID int, asOf time.Time) (int, error)
	ListLogEntries(ctx context.Context, messageID int) ([]domain.SendLogEntry, error)
	CacheReceipt(ctx context.Context, receiptID, phone string, sentAt time.Time) error
}

type repo struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewInviteRepository(db *gorm.DB, cache cache.Cache) Repository {
	return &repo{db: db, cache: cache}
}

// SaveMessage inserts one invite message definition and returns its
// generated id.
func (r *repo) SaveMessage(ctx context.Context, apiID int, message string) (int, error) {
	msg := domain.InviteMessage{
		ApiID:   apiID,
		Message: message,
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return 0, &domain.StorageError{Op: "save message", Err: err}
	}

	return msg.ID, nil
}

// AppendLogEntry inserts one send log row for a delivery attempt. Appending
// against a nonexistent message id fails with domain.ErrMessageNotFound.
func (r *repo) AppendLogEntry(ctx context.Context, messageID int, phone string, sentAt time.Time) error {
	entry := domain.SendLogEntry{
		SendDateTime:    sentAt.UTC(),
		Phone:           phone,
		InviteMessageID: messageID,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if isFKViolation(err) {
			return domain.ErrMessageNotFound
		}
		return &domain.StorageError{Op: "append log entry", Err: err}
	}

	return nil
}

// CountSentToday returns how many send log rows exist for the given apiID
// within the UTC calendar day containing asOf. The count always reflects
// durable state; quota decisions must never be served from cache.
func (r *repo) CountSentToday(ctx context.Context, apiID int, asOf time.Time) (int, error) {
	dayStart, dayEnd := utcDayWindow(asOf)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SendLogEntry{}).
		Joins("JOIN invite_messages ON invite_messages.id = invite_messages_log.invite_message_id").
		Where("invite_messages.api_id = ?", apiID).
		Where("invite_messages_log.send_datetime >= ? AND invite_messages_log.send_datetime < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, &domain.StorageError{Op: "count sent today", Err: err}
	}

	return int(count), nil
}

// ListLogEntries returns the delivery attempts recorded for one message,
// newest first.
func (r *repo) ListLogEntries(ctx context.Context, messageID int) ([]domain.SendLogEntry, error) {
	var entries []domain.SendLogEntry
	err := r.db.WithContext(ctx).
		Where("invite_message_id = ?", messageID).
		Order("send_datetime DESC").
		Find(&entries).Error
	if err != nil {
		return nil, &domain.StorageError{Op: "list log entries", Err: err}
	}

	return entries, nil
}

// CacheReceipt mirrors a carrier delivery receipt into the cache so recent
// receipts can be inspected without touching the send log.
func (r *repo) CacheReceipt(ctx context.Context, receiptID, phone string, sentAt time.Time) error {
	key := fmt.Sprintf("sent_receipt:%s", receiptID)

	value := map[string]any{
		"receiptId": receiptID,
		"phone":     phone,
		"sentAt":    sentAt,
	}

	jsonVal, _ := json.Marshal(value)
	// Expire after 24 hours to keep memory clean
	return r.cache.Set(ctx, key, string(jsonVal), 24*time.Hour)
}
