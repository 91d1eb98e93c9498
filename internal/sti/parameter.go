package sti

import (
	"sort"
	"strconv"
	"strings"
)

// TestParameter identifies one of the ten pathogens a test can screen for.
// The numeric codes are part of the wire format shared with clients.
type TestParameter int

const (
	ParamChlamydia            TestParameter = 0
	ParamGonorrhea            TestParameter = 1
	ParamSyphilis             TestParameter = 2
	ParamHIV                  TestParameter = 3
	ParamHerpes               TestParameter = 4
	ParamHepatitisB           TestParameter = 5
	ParamHepatitisC           TestParameter = 6
	ParamTrichomonas          TestParameter = 7
	ParamMycoplasmaGenitalium TestParameter = 8
	ParamHPV                  TestParameter = 9
)

type parameterInfo struct {
	name      string
	unitPrice int64
}

var parameterTable = map[TestParameter]parameterInfo{
	ParamChlamydia:            {"Chlamydia", 150000},
	ParamGonorrhea:            {"Gonorrhea", 150000},
	ParamSyphilis:             {"Syphilis", 120000},
	ParamHIV:                  {"HIV", 100000},
	ParamHerpes:               {"Herpes (HSV)", 180000},
	ParamHepatitisB:           {"Hepatitis B", 130000},
	ParamHepatitisC:           {"Hepatitis C", 130000},
	ParamTrichomonas:          {"Trichomonas", 140000},
	ParamMycoplasmaGenitalium: {"Mycoplasma Genitalium", 200000},
	ParamHPV:                  {"HPV", 250000},
}

// Valid reports whether p is one of the ten defined parameters.
func (p TestParameter) Valid() bool {
	_, ok := parameterTable[p]
	return ok
}

// Name returns the display name of the parameter.
func (p TestParameter) Name() string {
	return parameterTable[p].name
}

// UnitPrice returns the per-parameter price used for Custom package costing.
func (p TestParameter) UnitPrice() int64 {
	return parameterTable[p].unitPrice
}

// AllParameters returns the full parameter set in code order.
func AllParameters() []TestParameter {
	out := make([]TestParameter, 0, len(parameterTable))
	for p := range parameterTable {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BasicParameters returns the fixed set screened by the Basic package.
func BasicParameters() []TestParameter {
	return []TestParameter{ParamChlamydia, ParamGonorrhea, ParamSyphilis}
}

// ContainsParameter reports whether p is a member of set.
func ContainsParameter(set []TestParameter, p TestParameter) bool {
	for _, m := range set {
		if m == p {
			return true
		}
	}
	return false
}

// EncodeParameters renders a parameter set as comma-joined integer codes,
// the storage/wire representation inherited from the existing system.
func EncodeParameters(set []TestParameter) string {
	parts := make([]string, len(set))
	for i, p := range set {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}

// DecodeParameters parses the comma-joined representation produced by
// EncodeParameters. Unknown or malformed codes are skipped.
func DecodeParameters(s string) []TestParameter {
	if s == "" {
		return nil
	}
	var out []TestParameter
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		p := TestParameter(n)
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}
