package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"sti-clinic-server/internal/models"
	"sti-clinic-server/internal/sti"
	"sti-clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler handles payment gateway callbacks.
type PaymentHandler struct {
	DB *gorm.DB
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// MidtransNotification captures the fields of the gateway's webhook body
// this server acts on.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
}

// HandleNotification processes a midtrans webhook. Settlement marks the
// record paid; denial, cancellation or expiry cancels an unpaid booking.
// The response must be 200 so the gateway stops retrying.
func (h *PaymentHandler) HandleNotification(c *gin.Context) {
	var notification MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.BadRequest(c, "Invalid JSON")
		return
	}

	paid := false
	failed := false
	switch notification.TransactionStatus {
	case "capture":
		paid = notification.FraudStatus == "accept"
	case "settlement":
		paid = true
	case "deny", "cancel", "expire":
		failed = true
	}

	log.Printf("[Webhook] midtrans notification - OrderID: %s, TransactionStatus: %s, FraudStatus: %s",
		notification.OrderID, notification.TransactionStatus, notification.FraudStatus)

	var record models.TestRecord
	if err := h.DB.Preload("Customer").Where("order_no = ?", notification.OrderID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Webhook] order not found: %s", notification.OrderID)
			utils.NotFound(c, "Order not found")
			return
		}
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	switch resolvePaymentAction(&record, paid, failed) {
	case paymentConfirm:
		record.IsPaid = true
		if err := h.DB.Save(&record).Error; err != nil {
			utils.InternalServerError(c, "Failed to update payment state: "+err.Error())
			return
		}
		h.notify(&record, models.NotifyPaymentConfirmed,
			"Payment received",
			"Thank you! Your payment was confirmed. Visit the clinic in your booked time slot for sample collection.")

	case paymentCancel:
		// The gateway gave up on this transaction; release the slot.
		record.ApplyStatus(sti.StatusCancelled, time.Now())
		if err := h.DB.Save(&record).Error; err != nil {
			utils.InternalServerError(c, "Failed to cancel unpaid record: "+err.Error())
			return
		}
		h.notify(&record, models.NotifyPaymentFailed,
			"Payment failed",
			"Your booking was cancelled because the payment failed or expired. You can book again at any time.")

	case paymentRefund:
		log.Printf("[Webhook] settlement for terminal order %s, flagging refund", record.OrderNo)
		h.notify(&record, models.NotifyRefundDue,
			"Payment received for a cancelled booking",
			"Your booking was already cancelled when the payment settled. The clinic will refund the full amount.")
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type paymentAction int

const (
	paymentNone paymentAction = iota
	paymentConfirm
	paymentCancel
	paymentRefund
)

// resolvePaymentAction maps a webhook outcome onto the record's current
// state. A settlement that arrives after the booking reached a terminal
// status must never mark it paid; the money goes back instead.
func resolvePaymentAction(record *models.TestRecord, paid, failed bool) paymentAction {
	switch {
	case record.IsPaid:
		return paymentNone
	case paid && record.Status.IsTerminal():
		return paymentRefund
	case paid:
		return paymentConfirm
	case failed && !record.Status.IsTerminal():
		return paymentCancel
	}
	return paymentNone
}

func (h *PaymentHandler) notify(record *models.TestRecord, kind models.NotificationKind, title, body string) {
	notification := models.Notification{
		UserID:       record.CustomerID,
		TestRecordID: record.ID,
		Kind:         kind,
		Title:        title,
		Body:         body,
	}
	if err := h.DB.Create(&notification).Error; err != nil {
		log.Printf("[Webhook] failed to store notification for %s: %v", record.ID, err)
	}

	if record.Customer.FCMToken != "" {
		go utils.SendPush(record.Customer.FCMToken, title, body, map[string]string{
			"testId": record.ID,
			"type":   string(kind),
		})
	}
}
