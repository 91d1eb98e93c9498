package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sti-clinic-server/internal/models"
	"sti-clinic-server/internal/sti"
)

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	fresh := &models.TestRecord{Status: sti.StatusScheduled}
	fresh.CreatedAt = now.Add(-time.Hour)
	assert.False(t, Expired(fresh, now, window))

	stale := &models.TestRecord{Status: sti.StatusScheduled}
	stale.CreatedAt = now.Add(-25 * time.Hour)
	assert.True(t, Expired(stale, now, window))

	// Paid records never expire, whatever their age.
	paid := &models.TestRecord{Status: sti.StatusScheduled, IsPaid: true}
	paid.CreatedAt = now.Add(-48 * time.Hour)
	assert.False(t, Expired(paid, now, window))

	// Only Scheduled records are subject to the payment window.
	processing := &models.TestRecord{Status: sti.StatusProcessing}
	processing.CreatedAt = now.Add(-48 * time.Hour)
	assert.False(t, Expired(processing, now, window))

	cancelled := &models.TestRecord{Status: sti.StatusCancelled}
	cancelled.CreatedAt = now.Add(-48 * time.Hour)
	assert.False(t, Expired(cancelled, now, window))
}
