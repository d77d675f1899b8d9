package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInversion is matched by every *InversionError via errors.Is
var ErrInversion = errors.New("numerical inversion failed")

// InversionError represents a failure to invert after-tax spend into a gross withdrawal
type InversionError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *InversionError) Error() string {
	if e.Cause != nil {
		return "numerical inversion: " + e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return "numerical inversion: " + e.Operation + ": " + e.Message
}

func (e *InversionError) Unwrap() error {
	return e.Cause
}

func (e *InversionError) Is(target error) bool {
	return target == ErrInversion
}

// InversionOptions configures the bisection
type InversionOptions struct {
	Precision     decimal.Decimal // Stop once the bracket is no wider than this
	MaxIterations int             // Halvings allowed before giving up
}

// DefaultInversionOptions returns one-cent precision with a generous iteration cap
func DefaultInversionOptions() InversionOptions {
	return InversionOptions{
		Precision:     decimal.NewFromFloat(0.01),
		MaxIterations: 200,
	}
}

var two = decimal.NewFromInt(2)

// InvertGrossWithdrawal finds the gross amount G in [target, 2*target] with
// afterTax(G) == target to within opts.Precision, by bisection.
// afterTax must be non-decreasing in gross, which holds for any schedule whose
// marginal rates stay below 100%.
func InvertGrossWithdrawal(target decimal.Decimal, afterTax func(gross decimal.Decimal) decimal.Decimal, opts InversionOptions) (decimal.Decimal, error) {
	if opts.Precision.LessThanOrEqual(decimal.Zero) {
		opts.Precision = DefaultInversionOptions().Precision
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultInversionOptions().MaxIterations
	}
	if target.LessThan(decimal.Zero) {
		return decimal.Zero, &InversionError{
			Operation: "invert_gross_withdrawal",
			Message:   fmt.Sprintf("target after-tax amount %s is negative", target.StringFixed(2)),
		}
	}

	low := target
	high := target.Mul(two)

	// Taxes above 50% on average would put the answer beyond the doubled bound.
	if afterTax(high).LessThan(target) {
		return decimal.Zero, &InversionError{
			Operation: "invert_gross_withdrawal",
			Message:   fmt.Sprintf("upper bound %s nets less than target %s", high.StringFixed(2), target.StringFixed(2)),
		}
	}

	iterations := 0
	for high.Sub(low).GreaterThan(opts.Precision) {
		if iterations >= opts.MaxIterations {
			return decimal.Zero, &InversionError{
				Operation: "invert_gross_withdrawal",
				Message:   fmt.Sprintf("did not converge after %d iterations", opts.MaxIterations),
			}
		}
		iterations++

		mid := low.Add(high).Div(two)
		if afterTax(mid).GreaterThan(target) {
			high = mid
		} else {
			low = mid
		}
	}
	return low.Add(high).Div(two), nil
}
