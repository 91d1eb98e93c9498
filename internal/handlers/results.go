package handlers

import (
	"errors"
	"time"

	"sti-clinic-server/internal/middleware"
	"sti-clinic-server/internal/models"
	"sti-clinic-server/internal/sti"
	"sti-clinic-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResultHandler handles result entry on test records.
type ResultHandler struct {
	DB *gorm.DB
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(db *gorm.DB) *ResultHandler {
	return &ResultHandler{DB: db}
}

// UpsertResultRequest carries one parameter's outcome as integer wire
// codes. Comments are optional.
type UpsertResultRequest struct {
	ParameterID *int   `json:"parameterId" binding:"required"`
	Outcome     *int   `json:"outcome" binding:"required"`
	Comments    string `json:"comments"`
}

// UpsertResult attaches or updates the result for one parameter of a test
// record. Upsert semantics keyed on the parameter id keep the record at
// one result per parameter; ProcessedAt is stamped on every write.
func (h *ResultHandler) UpsertResult(c *gin.Context) {
	testID := c.Param("id")

	var req UpsertResultRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ParameterID == nil || req.Outcome == nil {
		utils.BadRequest(c, "parameterId and outcome are required")
		return
	}

	param := sti.TestParameter(*req.ParameterID)
	outcome := sti.OutcomeValue(*req.Outcome)
	if !param.Valid() {
		utils.BadRequest(c, "Unknown parameter code")
		return
	}
	if !outcome.Valid() {
		utils.BadRequest(c, "Unknown outcome code")
		return
	}

	var record models.TestRecord
	if err := h.DB.Preload("Results").First(&record, "id = ?", testID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	staffID, _ := middleware.GetUserIDFromContext(c)
	now := time.Now()

	// Validate against the record's parameter set through the core's
	// upsert before touching the store.
	if _, err := sti.UpsertResult(record.DomainResults(), record.ParameterSet(), sti.Result{
		Parameter: param,
		Outcome:   outcome,
		Comments:  req.Comments,
		StaffID:   staffID,
	}, now); err != nil {
		var perr *sti.InvalidParameterError
		if errors.As(err, &perr) {
			utils.UnprocessableEntity(c, perr.Error())
		} else {
			utils.InternalServerError(c, err.Error())
		}
		return
	}

	var result models.TestResult
	err := h.DB.Where("test_record_id = ? AND parameter = ?", record.ID, param).First(&result).Error
	switch {
	case err == nil:
		result.Outcome = outcome
		result.Comments = req.Comments
		result.StaffID = staffID
		result.ProcessedAt = &now
		if err := h.DB.Save(&result).Error; err != nil {
			utils.InternalServerError(c, "Failed to update result: "+err.Error())
			return
		}
	case err == gorm.ErrRecordNotFound:
		result = models.TestResult{
			TestRecordID: record.ID,
			Parameter:    param,
			Outcome:      outcome,
			Comments:     req.Comments,
			StaffID:      staffID,
			ProcessedAt:  &now,
		}
		if err := h.DB.Create(&result).Error; err != nil {
			utils.InternalServerError(c, "Failed to create result: "+err.Error())
			return
		}
	default:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	// Reload results so the completeness flag reflects this write.
	if err := h.DB.Preload("Results").First(&record, "id = ?", record.ID).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "Result saved successfully", gin.H{
		"result":        result,
		"fullyResulted": record.FullyResulted(),
	})
}
