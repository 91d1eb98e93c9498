package sti

// TestPackage represents the bookable STI test packages.
type TestPackage int

const (
	PackageBasic         TestPackage = 0
	PackageComprehensive TestPackage = 1
	PackageCustom        TestPackage = 2
)

// Fixed package prices. Custom is priced per parameter, or at the flat
// targeted-bundle rate when the caller books at most three parameters in
// targeted mode.
const (
	PriceBasic          int64 = 300000
	PriceComprehensive  int64 = 550000
	PriceTargetedBundle int64 = 330000
)

// TargetedBundleMax is the largest parameter set the targeted bundle covers.
const TargetedBundleMax = 3

var packageNames = map[TestPackage]string{
	PackageBasic:         "Basic Screening",
	PackageComprehensive: "Comprehensive Screening",
	PackageCustom:        "Custom Selection",
}

// Valid reports whether p is one of the three defined packages.
func (p TestPackage) Valid() bool {
	_, ok := packageNames[p]
	return ok
}

// Name returns the display name of the package.
func (p TestPackage) Name() string {
	return packageNames[p]
}

// ParametersFor resolves the parameter set a booking of package p screens
// for. Basic and Comprehensive ignore selected and use their fixed sets;
// Custom uses the caller's selection with repeats collapsed, so a parameter
// is never billed or resulted more than once.
func ParametersFor(p TestPackage, selected []TestParameter) []TestParameter {
	switch p {
	case PackageBasic:
		return BasicParameters()
	case PackageComprehensive:
		return AllParameters()
	default:
		return dedupeParameters(selected)
	}
}

func dedupeParameters(selected []TestParameter) []TestParameter {
	seen := make(map[TestParameter]bool, len(selected))
	out := make([]TestParameter, 0, len(selected))
	for _, p := range selected {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// PriceOf computes the total price of a booking. Basic and Comprehensive
// carry fixed prices regardless of params. Custom returns the flat targeted
// bundle price when targeted is set and the selection fits the bundle,
// otherwise the sum of the selected parameters' unit prices. An empty Custom
// selection prices at 0; callers must treat that as an incomplete booking.
func PriceOf(p TestPackage, params []TestParameter, targeted bool) int64 {
	switch p {
	case PackageBasic:
		return PriceBasic
	case PackageComprehensive:
		return PriceComprehensive
	}
	if len(params) == 0 {
		return 0
	}
	if targeted && len(params) <= TargetedBundleMax {
		return PriceTargetedBundle
	}
	var total int64
	for _, param := range params {
		total += param.UnitPrice()
	}
	return total
}
