package sti

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceOf_FixedPackages(t *testing.T) {
	// Fixed prices regardless of whatever parameter list tags along.
	assert.Equal(t, int64(300000), PriceOf(PackageBasic, nil, false))
	assert.Equal(t, int64(300000), PriceOf(PackageBasic, AllParameters(), true))
	assert.Equal(t, int64(550000), PriceOf(PackageComprehensive, nil, false))
	assert.Equal(t, int64(550000), PriceOf(PackageComprehensive, []TestParameter{ParamHIV}, true))
}

func TestPriceOf_CustomTargetedBundle(t *testing.T) {
	bundle := []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis}
	assert.Equal(t, PriceTargetedBundle, PriceOf(PackageCustom, bundle, true))

	// Single parameter outside targeted mode prices at its unit rate.
	assert.Equal(t, ParamHIV.UnitPrice(), PriceOf(PackageCustom, []TestParameter{ParamHIV}, false))

	// Four parameters exceed the bundle even in targeted mode.
	four := []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis, ParamHIV}
	var sum int64
	for _, p := range four {
		sum += p.UnitPrice()
	}
	assert.Equal(t, sum, PriceOf(PackageCustom, four, true))
}

func TestPriceOf_CustomPerParameterSum(t *testing.T) {
	params := []TestParameter{ParamHerpes, ParamHPV}
	assert.Equal(t, ParamHerpes.UnitPrice()+ParamHPV.UnitPrice(), PriceOf(PackageCustom, params, false))
}

func TestPriceOf_EmptyCustomSelection(t *testing.T) {
	assert.Equal(t, int64(0), PriceOf(PackageCustom, nil, false))
	assert.Equal(t, int64(0), PriceOf(PackageCustom, nil, true))
}

func TestParametersFor(t *testing.T) {
	chosen := []TestParameter{ParamHIV, ParamHPV}

	assert.Equal(t, BasicParameters(), ParametersFor(PackageBasic, chosen))
	assert.Len(t, ParametersFor(PackageComprehensive, chosen), 10)
	assert.Equal(t, chosen, ParametersFor(PackageCustom, chosen))
}

func TestParametersFor_CustomCollapsesRepeats(t *testing.T) {
	repeated := []TestParameter{ParamHPV, ParamHPV, ParamHIV, ParamHPV}
	assert.Equal(t, []TestParameter{ParamHPV, ParamHIV}, ParametersFor(PackageCustom, repeated))
}

func TestParameterCodec(t *testing.T) {
	set := []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis}
	assert.Equal(t, "0,1,2", EncodeParameters(set))
	assert.Equal(t, set, DecodeParameters("0,1,2"))

	// Unknown codes and junk are dropped, empty input decodes to nothing.
	assert.Equal(t, []TestParameter{ParamHIV}, DecodeParameters("3,42,x"))
	assert.Nil(t, DecodeParameters(""))
}

func TestEnumTablesAreTotal(t *testing.T) {
	for _, p := range AllParameters() {
		assert.NotEmpty(t, p.Name())
		assert.Positive(t, p.UnitPrice())
	}
	for s := StatusScheduled; s <= StatusCancelled; s++ {
		assert.NotEmpty(t, s.Label())
		assert.NotEmpty(t, s.Color())
	}
	for _, o := range []OutcomeValue{OutcomeNegative, OutcomePositive, OutcomeUndetermined} {
		assert.NotEmpty(t, o.Label())
		assert.NotEmpty(t, o.Color())
	}
	for _, s := range AllSlots() {
		assert.NotEmpty(t, s.Label())
		assert.Greater(t, s.EndHour(), s.StartHour())
	}
}
