package pricing

import "errors"

var (
	ErrInvalidCost         = errors.New("invalid_cost")
	ErrInvalidExchangeRate = errors.New("invalid_exchange_rate")
	ErrInvalidShipping     = errors.New("invalid_shipping")
	ErrInvalidDeclared     = errors.New("invalid_declared")
	ErrInvalidDutyRate     = errors.New("invalid_duty_rate")
	ErrInvalidVATRate      = errors.New("invalid_vat_rate")
	ErrInvalidMarkup       = errors.New("invalid_markup")
	ErrInvalidCarrierFee   = errors.New("invalid_carrier_fee")
	ErrInvalidHandlingFee  = errors.New("invalid_handling_fee")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
)

// IsValidationError reports whether err came from Fields.Build.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidCost,
		ErrInvalidExchangeRate,
		ErrInvalidShipping,
		ErrInvalidDeclared,
		ErrInvalidDutyRate,
		ErrInvalidVATRate,
		ErrInvalidMarkup,
		ErrInvalidCarrierFee,
		ErrInvalidHandlingFee,
		ErrInvalidQuantity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
