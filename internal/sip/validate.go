package sip

const (
	// surplusWarningCeiling triggers a non-blocking warning: amounts above it
	// are usually data-entry mistakes but are still computable.
	surplusWarningCeiling = 1_000_000

	minReturnRate = 0.0
	maxReturnRate = 30.0
)

// Validation reports parameter problems without raising. Errors block the
// calculation; Warnings annotate it. Valid is true iff Errors is empty.
type Validation struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateParams checks calculation inputs. Callers decide whether to
// proceed on warnings; an invalid result should not be fed to Calculate.
func ValidateParams(p Params) Validation {
	var v Validation

	if p.MonthlySurplus <= 0 {
		v.Errors = append(v.Errors, "Monthly surplus must be greater than 0")
	}
	if p.MonthlySurplus > surplusWarningCeiling {
		v.Warnings = append(v.Warnings, "Monthly surplus seems unusually high. Please verify the amount.")
	}
	if p.ExpectedReturnRate != nil {
		if *p.ExpectedReturnRate < minReturnRate || *p.ExpectedReturnRate > maxReturnRate {
			v.Errors = append(v.Errors, "Expected return rate should be between 0% and 30%")
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}
