package models

import "time"

// NotificationKind classifies stored notifications.
type NotificationKind string

const (
	NotifyPaymentConfirmed NotificationKind = "payment_confirmed"
	NotifyPaymentFailed    NotificationKind = "payment_failed"
	NotifyStatusChanged    NotificationKind = "status_changed"
	NotifyResultsReady     NotificationKind = "results_ready"
	NotifyBookingExpired   NotificationKind = "booking_expired"
	NotifyRefundDue        NotificationKind = "refund_due"
)

// Notification represents a message delivered to a user's inbox. Push
// delivery via FCM is best effort; the stored row is the durable copy the
// clients poll.
type Notification struct {
	BaseModel
	UserID       string           `gorm:"size:36;index" json:"userId"`
	TestRecordID string           `gorm:"size:36;index" json:"testRecordId,omitempty"`
	Kind         NotificationKind `gorm:"size:30" json:"kind"`
	Title        string           `gorm:"size:255" json:"title"`
	Body         string           `gorm:"type:text" json:"body"`
	IsRead       bool             `gorm:"default:false" json:"isRead"`
	ReadAt       *time.Time       `json:"readAt,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
