package domain

import (
	"time"
)

// DefaultDailySendLimit is the maximum number of recipients a single apiId
// may send to within one UTC calendar day.
const DefaultDailySendLimit = 128

// MaxMessageLength is the single-part GSM message limit.
const MaxMessageLength = 160

// PhoneLength is the national phone number format length, digits only.
const PhoneLength = 11

// InviteMessage is a message definition owned by one apiId and intended for
// a batch of recipients. Rows are immutable once written.
type InviteMessage struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	ApiID   int    `gorm:"column:api_id;not null;index:idx_invite_messages_api_id" json:"apiId"`
	Message string `gorm:"type:varchar(160);not null" json:"message"`
}

func (InviteMessage) TableName() string {
	return "invite_messages"
}

// SendLogEntry records one attempt to deliver an invite message to one
// phone number. SendDateTime is the moment the attempt was recorded, not a
// carrier-confirmed delivery time.
type SendLogEntry struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	SendDateTime    time.Time `gorm:"column:send_datetime;not null;index:idx_invite_messages_log_send_datetime,sort:desc" json:"sendDateTime"`
	Phone           string    `gorm:"type:char(11);not null" json:"phone"`
	InviteMessageID int       `gorm:"column:invite_message_id;not null" json:"inviteMessageId"`

	InviteMessage InviteMessage `gorm:"foreignKey:InviteMessageID" json:"-"`
}

func (SendLogEntry) TableName() string {
	return "invite_messages_log"
}

// RecipientResult is the outcome of one delivery attempt, returned to the
// caller in the same order the phones were submitted.
type RecipientResult struct {
	Phone  string `json:"phone"`
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}
