package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"sti-clinic-server/internal/config"
	"sti-clinic-server/internal/models"
	"sti-clinic-server/internal/sti"
	"sti-clinic-server/internal/utils"

	"gorm.io/gorm"
)

// ExpirySweeper cancels bookings whose payment window lapsed. It replaces
// the old fire-and-forget interval timer with an explicit start/stop
// lifecycle: Run blocks until its context is cancelled.
type ExpirySweeper struct {
	DB            *gorm.DB
	PaymentWindow time.Duration
	Interval      time.Duration
}

// NewExpirySweeper builds a sweeper from the configured windows.
func NewExpirySweeper(db *gorm.DB, cfg *config.Config) *ExpirySweeper {
	return &ExpirySweeper{
		DB:            db,
		PaymentWindow: time.Duration(cfg.PaymentWindowHours) * time.Hour,
		Interval:      time.Duration(cfg.ExpirySweepMinutes) * time.Minute,
	}
}

// Run sweeps once at startup, then on every tick until ctx is cancelled.
func (w *ExpirySweeper) Run(ctx context.Context) {
	log.Printf("expiry sweeper running, interval=%s window=%s", w.Interval, w.PaymentWindow)

	w.sweep(time.Now())

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("expiry sweeper stopped")
			return
		case now := <-ticker.C:
			w.sweep(now)
		}
	}
}

// Expired reports whether an unpaid scheduled record has outlived the
// payment window.
func Expired(record *models.TestRecord, now time.Time, window time.Duration) bool {
	if record.IsPaid || record.Status != sti.StatusScheduled {
		return false
	}
	return now.Sub(record.CreatedAt) > window
}

func (w *ExpirySweeper) sweep(now time.Time) {
	cutoff := now.Add(-w.PaymentWindow)

	var stale []models.TestRecord
	err := w.DB.Preload("Customer").
		Where("is_paid = ? AND status = ? AND created_at < ?", false, sti.StatusScheduled, cutoff).
		Find(&stale).Error
	if err != nil {
		log.Printf("[Sweep] query error: %v", err)
		return
	}

	for i := range stale {
		record := &stale[i]
		if !Expired(record, now, w.PaymentWindow) {
			continue
		}

		record.ApplyStatus(sti.StatusCancelled, now)
		if err := w.DB.Save(record).Error; err != nil {
			log.Printf("[Sweep] failed to cancel %s: %v", record.OrderNo, err)
			continue
		}
		log.Printf("[Sweep] cancelled unpaid booking %s", record.OrderNo)

		notification := models.Notification{
			UserID:       record.CustomerID,
			TestRecordID: record.ID,
			Kind:         models.NotifyBookingExpired,
			Title:        "Booking expired",
			Body:         fmt.Sprintf("Your %s booking was cancelled because payment was not received in time.", record.Package.Name()),
		}
		if err := w.DB.Create(&notification).Error; err != nil {
			log.Printf("[Sweep] failed to store notification for %s: %v", record.ID, err)
		}

		if record.Customer.FCMToken != "" {
			go utils.SendPush(record.Customer.FCMToken, notification.Title, notification.Body, map[string]string{
				"testId": record.ID,
				"type":   string(models.NotifyBookingExpired),
			})
		}
	}
}
