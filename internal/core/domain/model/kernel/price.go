package kernel

import (
	"strings"

	"marketplace/internal/pkg/errs"
)

// ErrCurrencyIsRequired is returned for an empty currency tag.
var ErrCurrencyIsRequired = errs.NewValueIsRequiredError("currency")

// Currency tags the price list entry a payment uses, e.g. "DBIO" or "USDT".
type Currency string

// NewCurrency normalises the tag to upper case.
func NewCurrency(raw string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	if c == "" {
		return ErrCurrencyIsRequired
	}
	return nil
}

func (c Currency) String() string {
	return string(c)
}

// Price is one named component of a service price, e.g. "testing_price".
type Price struct {
	Component string  `json:"component"`
	Value     Balance `json:"value"`
}

// SumPrices totals the values of all components.
func SumPrices(prices []Price) Balance {
	total := Balance{}
	for _, p := range prices {
		total = total.Add(p.Value)
	}
	return total
}
