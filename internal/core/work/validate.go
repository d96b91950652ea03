package work

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation marks row-level validation failures. Callers use
// errors.Is to distinguish them from storage errors: a validation failure
// skips one row or aborts one operation, a storage failure may be fatal.
var ErrValidation = errors.New("validation failed")

// Fields carries the scalar values checked by the save-time invariants.
type Fields struct {
	Name            string
	Description     string
	TermMonths      int
	ProgressPercent float64
	ContractAmount  decimal.Decimal
	WorkforceCount  *int
}

// Validate enforces the invariants every persist must satisfy. A violation
// aborts the save; the previously persisted state stays intact.
func Validate(f Fields) error {
	if f.TermMonths < 0 {
		return fmt.Errorf("%w: term_months %d must be non-negative", ErrValidation, f.TermMonths)
	}
	if f.ProgressPercent < 0 || f.ProgressPercent > 100 {
		return fmt.Errorf("%w: progress_percent %v must be between 0 and 100", ErrValidation, f.ProgressPercent)
	}
	if f.ContractAmount.IsNegative() {
		return fmt.Errorf("%w: contract_amount %s must be non-negative", ErrValidation, f.ContractAmount)
	}
	if f.WorkforceCount != nil && *f.WorkforceCount < 0 {
		return fmt.Errorf("%w: workforce_count %d must be non-negative", ErrValidation, *f.WorkforceCount)
	}
	if f.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if f.Description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	return nil
}
