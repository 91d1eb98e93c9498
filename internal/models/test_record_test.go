package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sti-clinic-server/internal/sti"
)

func TestApplyStatus_StampsAreIdempotent(t *testing.T) {
	rec := &TestRecord{Status: sti.StatusScheduled, IsPaid: true}
	rec.SetParameterSet(sti.BasicParameters())

	first := time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)
	rec.ApplyStatus(sti.StatusSampleTaken, first)
	require.NotNil(t, rec.SampleTakenAt)
	assert.Equal(t, first, *rec.SampleTakenAt)

	// Re-stamping later must not move an existing timestamp.
	later := first.Add(3 * time.Hour)
	rec.ApplyStatus(sti.StatusSampleTaken, later)
	assert.Equal(t, first, *rec.SampleTakenAt)

	rec.ApplyStatus(sti.StatusProcessing, later)
	assert.Nil(t, rec.CompletedAt)

	done := later.Add(24 * time.Hour)
	rec.ApplyStatus(sti.StatusCompleted, done)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, done, *rec.CompletedAt)

	rec.ApplyStatus(sti.StatusCompleted, done.Add(time.Hour))
	assert.Equal(t, done, *rec.CompletedAt)
}

func TestTransitionStateSnapshot(t *testing.T) {
	sampled := time.Now()
	rec := &TestRecord{Status: sti.StatusSampleTaken, IsPaid: true, SampleTakenAt: &sampled}

	st := rec.TransitionState()
	assert.Equal(t, sti.StatusSampleTaken, st.Status)
	assert.True(t, st.IsPaid)
	assert.Equal(t, &sampled, st.SampleTakenAt)
}

func TestParameterSetRoundTrip(t *testing.T) {
	rec := &TestRecord{}
	rec.SetParameterSet([]sti.TestParameter{sti.ParamHIV, sti.ParamHPV})

	assert.Equal(t, "3,9", rec.ParamSet)
	assert.Equal(t, []sti.TestParameter{sti.ParamHIV, sti.ParamHPV}, rec.ParameterSet())
}

func TestFullyResultedOnRecord(t *testing.T) {
	now := time.Now()
	rec := &TestRecord{}
	rec.SetParameterSet(sti.BasicParameters())

	rec.Results = []TestResult{
		{Parameter: sti.ParamChlamydia, Outcome: sti.OutcomeNegative, ProcessedAt: &now},
		{Parameter: sti.ParamGonorrhea, Outcome: sti.OutcomeUndetermined, ProcessedAt: &now},
	}
	assert.False(t, rec.FullyResulted())

	rec.Results = append(rec.Results, TestResult{Parameter: sti.ParamSyphilis, Outcome: sti.OutcomePositive, ProcessedAt: &now})
	assert.True(t, rec.FullyResulted())
}
