package models

import (
	"time"

	"sti-clinic-server/internal/sti"
)

// TestRecord is the aggregate for one booked STI test. Enum columns carry
// the integer codes of the sti package, which double as the wire format.
// The parameter set is persisted as comma-joined codes, the representation
// the existing clients already use.
type TestRecord struct {
	BaseModel
	CustomerID   string          `gorm:"size:36;index" json:"customerId"`
	Package      sti.TestPackage `gorm:"not null" json:"package"`
	ParamSet     string          `gorm:"size:64;not null" json:"-"`
	Status       sti.TestStatus  `gorm:"default:0;index" json:"status"`
	ScheduleDate time.Time       `gorm:"index" json:"scheduleDate"`
	Slot         sti.TimeSlot    `gorm:"not null" json:"slot"`
	TotalPrice   int64           `gorm:"not null" json:"totalPrice"`
	IsPaid       bool            `gorm:"default:false" json:"isPaid"`
	Anonymous    bool            `gorm:"default:false" json:"anonymous"`
	Notes        string          `gorm:"type:text" json:"notes"`
	OrderNo      string          `gorm:"uniqueIndex;size:50" json:"orderNo"`

	SampleTakenAt *time.Time `json:"sampleTakenAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	// Relations
	Customer User         `gorm:"foreignKey:CustomerID" json:"-"`
	Results  []TestResult `gorm:"foreignKey:TestRecordID" json:"results,omitempty"`
}

// TestResult is one parameter's outcome within a test record. The unique
// index on (record, parameter) backs the one-result-per-parameter
// invariant at the storage layer; the handlers enforce it with upsert
// semantics on top.
type TestResult struct {
	BaseModel
	TestRecordID string            `gorm:"size:36;uniqueIndex:idx_record_param" json:"testRecordId"`
	Parameter    sti.TestParameter `gorm:"uniqueIndex:idx_record_param" json:"parameter"`
	Outcome      sti.OutcomeValue  `gorm:"default:2" json:"outcome"`
	Comments     string            `gorm:"type:text" json:"comments"`
	StaffID      string            `gorm:"size:36" json:"staffId"`
	ProcessedAt  *time.Time        `json:"processedAt,omitempty"`

	Staff User `gorm:"foreignKey:StaffID" json:"-"`
}

// ParameterSet decodes the record's stored parameter codes.
func (r *TestRecord) ParameterSet() []sti.TestParameter {
	return sti.DecodeParameters(r.ParamSet)
}

// SetParameterSet stores the given parameter set.
func (r *TestRecord) SetParameterSet(set []sti.TestParameter) {
	r.ParamSet = sti.EncodeParameters(set)
}

// TransitionState snapshots the fields the transition guard evaluates.
func (r *TestRecord) TransitionState() sti.TransitionState {
	return sti.TransitionState{
		Status:        r.Status,
		IsPaid:        r.IsPaid,
		SampleTakenAt: r.SampleTakenAt,
	}
}

// ApplyStatus moves the record to target and stamps the collection or
// completion time when reaching those statuses for the first time. Stamps
// are written at most once; re-entering a status never overwrites one.
// Callers must have confirmed the transition through the guard first.
func (r *TestRecord) ApplyStatus(target sti.TestStatus, now time.Time) {
	r.Status = target
	if target == sti.StatusSampleTaken && r.SampleTakenAt == nil {
		t := now
		r.SampleTakenAt = &t
	}
	if target == sti.StatusCompleted && r.CompletedAt == nil {
		t := now
		r.CompletedAt = &t
	}
}

// DomainResults converts the stored results into the core's value form.
func (r *TestRecord) DomainResults() []sti.Result {
	out := make([]sti.Result, 0, len(r.Results))
	for _, res := range r.Results {
		dr := sti.Result{
			Parameter: res.Parameter,
			Outcome:   res.Outcome,
			Comments:  res.Comments,
			StaffID:   res.StaffID,
		}
		if res.ProcessedAt != nil {
			dr.ProcessedAt = *res.ProcessedAt
		}
		out = append(out, dr)
	}
	return out
}

// FullyResulted reports whether every parameter in the record's set has an
// entered result.
func (r *TestRecord) FullyResulted() bool {
	return sti.FullyResulted(r.ParameterSet(), r.DomainResults())
}
