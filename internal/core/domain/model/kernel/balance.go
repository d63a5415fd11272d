package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrBalanceUnderflow is returned when a subtraction would go below zero.
var ErrBalanceUnderflow = errs.NewResourceExhaustedError("balance would become negative")

// Balance is an unsigned amount in the smallest currency unit.
// Amounts of 18 decimal tokens exceed 64 bits, so the value is held with
// arbitrary precision. The zero value is a valid zero balance.
type Balance struct {
	value decimal.Decimal
}

// NewBalance creates a balance from a 64 bit amount.
func NewBalance(amount uint64) Balance {
	return Balance{value: decimal.NewFromUint64(amount)}
}

// ZeroBalance returns an empty balance.
func ZeroBalance() Balance {
	return Balance{}
}

// BalanceFromDecimal validates that d is a non-negative integer.
func BalanceFromDecimal(d decimal.Decimal) (Balance, error) {
	if d.IsNegative() {
		return Balance{}, errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%s is negative", d))
	}
	if !d.Equal(d.Truncate(0)) {
		return Balance{}, errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%s is not an integer", d))
	}
	return Balance{value: d}, nil
}

// BalanceFromString parses a decimal integer string such as "50000000000000000000".
func BalanceFromString(s string) (Balance, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Balance{}, errs.NewValueIsInvalidErrorWithCause("balance", err)
	}
	return BalanceFromDecimal(d)
}

// SumBalances adds all amounts.
func SumBalances(amounts ...Balance) Balance {
	total := Balance{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (b Balance) Add(other Balance) Balance {
	return Balance{value: b.value.Add(other.value)}
}

// Sub returns b - other, failing with ErrBalanceUnderflow when other > b.
func (b Balance) Sub(other Balance) (Balance, error) {
	if b.LessThan(other) {
		return Balance{}, ErrBalanceUnderflow
	}
	return Balance{value: b.value.Sub(other.value)}, nil
}

func (b Balance) LessThan(other Balance) bool {
	return b.value.LessThan(other.value)
}

func (b Balance) IsZero() bool {
	return b.value.IsZero()
}

func (b Balance) IsEqual(other Balance) bool {
	return b.value.Equal(other.value)
}

// Decimal exposes the amount for persistence adapters.
func (b Balance) Decimal() decimal.Decimal {
	return b.value
}

func (b Balance) String() string {
	return b.value.String()
}

// MarshalJSON renders the amount as a JSON string to keep full precision.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.value.String() + `"`), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("balance", err)
	}
	parsed, err := BalanceFromDecimal(d)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
