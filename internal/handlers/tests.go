package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"sti-clinic-server/internal/config"
	"sti-clinic-server/internal/middleware"
	"sti-clinic-server/internal/models"
	"sti-clinic-server/internal/sti"
	"sti-clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

// TestHandler handles STI test booking and management requests.
type TestHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(db *gorm.DB, cfg *config.Config) *TestHandler {
	return &TestHandler{DB: db, Cfg: cfg}
}

// BookTestRequest represents the request body for booking a test.
// Enum fields arrive as the integer wire codes. Package and slot are
// pointers so an omitted field is distinguishable from code 0.
type BookTestRequest struct {
	Package      *int   `json:"package"`
	ParameterIDs []int  `json:"parameterIds"`
	Targeted     bool   `json:"targeted"`
	ScheduleDate string `json:"scheduleDate"`
	Slot         *int   `json:"slot"`
	Notes        string `json:"notes"`
	Anonymous    bool   `json:"anonymous"`
}

// TestRecordResponse decorates a record with the denormalized customer
// summary and the soft completeness flag the management surface uses.
type TestRecordResponse struct {
	models.TestRecord
	ParameterIDs  []sti.TestParameter     `json:"parameterIds"`
	Customer      *models.CustomerSummary `json:"customer,omitempty"`
	FullyResulted bool                    `json:"fullyResulted"`
}

func (h *TestHandler) recordResponse(rec *models.TestRecord) TestRecordResponse {
	resp := TestRecordResponse{
		TestRecord:    *rec,
		ParameterIDs:  rec.ParameterSet(),
		FullyResulted: rec.FullyResulted(),
	}
	if rec.Customer.ID != "" && !rec.Anonymous {
		summary := rec.Customer.Summary()
		resp.Customer = &summary
	}
	return resp
}

func (h *TestHandler) existingBookings(customerID string) ([]sti.ExistingBooking, error) {
	var records []models.TestRecord
	if err := h.DB.Where("customer_id = ?", customerID).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]sti.ExistingBooking, len(records))
	for i, r := range records {
		out[i] = sti.ExistingBooking{
			Date:      r.ScheduleDate,
			Slot:      r.Slot,
			Cancelled: r.Status == sti.StatusCancelled,
		}
	}
	return out, nil
}

// BookTest handles creating a new test booking for the authenticated
// customer. The record is created at Scheduled/unpaid and a payment
// transaction is opened for the derived total price.
func (h *TestHandler) BookTest(c *gin.Context) {
	customerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req BookTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	input := sti.BookingInput{
		Targeted:  req.Targeted,
		Date:      req.ScheduleDate,
		Notes:     req.Notes,
		Anonymous: req.Anonymous,
	}
	if req.Package != nil {
		p := sti.TestPackage(*req.Package)
		input.Package = &p
	}
	if req.Slot != nil {
		s := sti.TimeSlot(*req.Slot)
		input.Slot = &s
	}
	for _, id := range req.ParameterIDs {
		input.Parameters = append(input.Parameters, sti.TestParameter(id))
	}

	existing, err := h.existingBookings(customerID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load existing bookings: "+err.Error())
		return
	}

	createReq, err := sti.AssembleBooking(input, time.Now(), existing)
	if err != nil {
		var verr *sti.ValidationError
		if errors.As(err, &verr) {
			utils.BadRequest(c, verr.Error())
		} else {
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	var customer models.User
	if err := h.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load customer: "+err.Error())
		return
	}

	record := models.TestRecord{
		CustomerID:   customerID,
		Package:      createReq.Package,
		Status:       sti.StatusScheduled,
		ScheduleDate: createReq.ScheduleDate,
		Slot:         createReq.Slot,
		TotalPrice:   createReq.TotalPrice,
		IsPaid:       false,
		Anonymous:    createReq.Anonymous,
		Notes:        createReq.Notes,
		OrderNo:      fmt.Sprintf("STI-%d", time.Now().UnixNano()),
	}
	record.SetParameterSet(createReq.Parameters)

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create test record: "+err.Error())
		return
	}

	// Open a Snap transaction so the customer can pay right away. The
	// webhook flips isPaid once the gateway confirms settlement.
	snapToken, redirectURL, err := h.createPayment(&record, &customer)
	if err != nil {
		log.Printf("[Booking] payment gateway error for %s: %v", record.OrderNo, err)
	}

	resp := gin.H{
		"test":       h.recordResponse(&record),
		"orderNo":    record.OrderNo,
		"totalPrice": record.TotalPrice,
	}
	if snapToken != "" {
		resp["snapToken"] = snapToken
		resp["redirectUrl"] = redirectURL
	}

	utils.Created(c, "Test booked successfully, awaiting payment", resp)
}

func (h *TestHandler) createPayment(record *models.TestRecord, customer *models.User) (string, string, error) {
	if h.Cfg.Midtrans.ServerKey == "" {
		return "", "", nil
	}

	env := midtrans.Sandbox
	if h.Cfg.Midtrans.Production {
		env = midtrans.Production
	}

	var s snap.Client
	s.New(h.Cfg.Midtrans.ServerKey, env)

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  record.OrderNo,
			GrossAmt: record.TotalPrice,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.FirstName,
			LName: customer.LastName,
			Email: customer.Email,
			Phone: customer.PhoneNumber,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fmt.Sprintf("PKG-%d", int(record.Package)),
				Name:  record.Package.Name(),
				Price: record.TotalPrice,
				Qty:   1,
			},
		},
	}

	snapResp, errSnap := s.CreateTransaction(req)
	if errSnap != nil {
		return "", "", fmt.Errorf("snap transaction: %s", errSnap.GetMessage())
	}
	return snapResp.Token, snapResp.RedirectURL, nil
}

// GetSlotAvailability reports which of the four daily windows are still
// bookable for the authenticated customer on a given date. Availability is
// recomputed from the customer's bookings on every call, never stored.
func (h *TestHandler) GetSlotAvailability(c *gin.Context) {
	customerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dateStr := c.Query("date")
	date, err := time.ParseInLocation(sti.ScheduleDateLayout, dateStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	existing, err := h.existingBookings(customerID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load existing bookings: "+err.Error())
		return
	}

	avail := sti.SlotAvailability(date, time.Now(), existing)
	slots := make([]gin.H, 0, len(avail))
	for _, s := range sti.AllSlots() {
		slots = append(slots, gin.H{
			"slot":      int(s),
			"label":     s.Label(),
			"available": avail[s],
		})
	}

	utils.Success(c, "Slot availability computed", gin.H{"date": dateStr, "slots": slots})
}

// GetTests handles listing test records. Customers see their own, the
// management roles see everything. Newest first by schedule date.
func (h *TestHandler) GetTests(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Results").Preload("Customer").Order("schedule_date desc")

	var records []models.TestRecord
	var err error
	if userRole.Privileged() {
		err = query.Find(&records).Error
	} else {
		err = query.Where("customer_id = ?", userID).Find(&records).Error
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch tests: "+err.Error())
		return
	}

	responses := make([]TestRecordResponse, len(records))
	for i := range records {
		responses[i] = h.recordResponse(&records[i])
	}

	utils.Success(c, "Tests fetched successfully", responses)
}

// GetTestByID handles fetching a single test record with its results and
// customer summary. Accessible by the owning customer or management roles.
func (h *TestHandler) GetTestByID(c *gin.Context) {
	testID := c.Param("id")

	var record models.TestRecord
	if err := h.DB.Preload("Results").Preload("Customer").First(&record, "id = ?", testID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if !userRole.Privileged() && userID != record.CustomerID {
		utils.Forbidden(c, "You are not authorized to view this test record")
		return
	}

	utils.Success(c, "Test record fetched successfully", h.recordResponse(&record))
}

// UpdateStatusRequest carries the requested target status as its integer
// wire code.
type UpdateStatusRequest struct {
	NewStatus *int `json:"newStatus" binding:"required"`
}

// UpdateTestStatus handles a guard-checked status transition. Management
// roles drive the forward lifecycle; customers may only cancel their own
// non-terminal bookings. The transition guard has the final say and its
// denial reason is returned verbatim.
func (h *TestHandler) UpdateTestStatus(c *gin.Context) {
	testID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewStatus == nil {
		utils.BadRequest(c, "newStatus is required")
		return
	}
	target := sti.TestStatus(*req.NewStatus)
	if !target.Valid() {
		utils.BadRequest(c, "Unknown status code")
		return
	}

	var record models.TestRecord
	if err := h.DB.Preload("Customer").First(&record, "id = ?", testID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if !userRole.Privileged() {
		if userID != record.CustomerID {
			utils.Forbidden(c, "You are not authorized to update this test record")
			return
		}
		if target != sti.StatusCancelled {
			utils.Forbidden(c, "Customers can only cancel their own bookings")
			return
		}
	}

	// Guard evaluation runs against an immutable snapshot of the record.
	state := record.TransitionState()
	decision := sti.CheckTransition(state, target)
	if !decision.Allowed {
		utils.Conflict(c, sti.DenialError(state, target, decision).Error())
		return
	}

	record.ApplyStatus(target, time.Now())

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update test status: "+err.Error())
		return
	}

	h.notifyStatusChange(&record)

	utils.Success(c, "Test status updated successfully", h.recordResponse(&record))
}

func (h *TestHandler) notifyStatusChange(record *models.TestRecord) {
	kind := models.NotifyStatusChanged
	title := "Test status updated"
	body := fmt.Sprintf("Your %s booking is now: %s", record.Package.Name(), record.Status.Label())
	if record.Status == sti.StatusCompleted {
		kind = models.NotifyResultsReady
		title = "Your results are ready"
		body = fmt.Sprintf("Results for your %s are available in your dashboard.", record.Package.Name())
	}

	notification := models.Notification{
		UserID:       record.CustomerID,
		TestRecordID: record.ID,
		Kind:         kind,
		Title:        title,
		Body:         body,
	}
	if err := h.DB.Create(&notification).Error; err != nil {
		log.Printf("[Notify] failed to store notification for %s: %v", record.ID, err)
		return
	}

	if record.Customer.FCMToken != "" {
		go utils.SendPush(record.Customer.FCMToken, title, body, map[string]string{
			"testId": record.ID,
			"type":   string(kind),
		})
	}
}
