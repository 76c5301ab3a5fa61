// Package money handles fixed-point monetary amounts. Amounts are stored
// and computed as integer minor units (cents) so balance folds never drift;
// decimal strings appear only at the API boundary.
package money

import (
	"github.com/shopspring/decimal"

	commonerrors "github.com/splitroom/backend/internal/common/errors"
)

// Amount is a monetary value in minor units. Negative values are valid for
// derived balances; recorded transfers are always positive.
type Amount int64

// Parse converts a two-decimal string ("50.00", "0.01") to minor units.
// More than two fraction digits is rejected rather than rounded.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, commonerrors.ErrInvalidAmount.WithCause(err)
	}

	if d.Exponent() < -2 {
		return 0, commonerrors.ErrInvalidAmount
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, commonerrors.ErrInvalidAmount
	}

	if !minor.BigInt().IsInt64() {
		return 0, commonerrors.ErrInvalidAmount
	}

	return Amount(minor.IntPart()), nil
}

// String renders the amount as a signed two-decimal string.
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}

func (a Amount) Minor() int64 {
	return int64(a)
}

func (a Amount) IsPositive() bool {
	return a > 0
}

// Validate checks a transfer amount against the positivity rule and the
// configured ceiling.
func Validate(a Amount, ceilingMinor int64) error {
	if a <= 0 {
		return commonerrors.ErrAmountNotPositive
	}
	if int64(a) > ceilingMinor {
		return commonerrors.ErrAmountTooLarge
	}
	return nil
}
