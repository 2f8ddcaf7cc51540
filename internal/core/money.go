// Package core holds the operations table model, monetary parsing and the
// error taxonomy shared by the report pipelines.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary cell. The bank export writes amounts with
// either a dot or a comma decimal separator and sometimes groups thousands
// with plain or non-breaking spaces; all of these are accepted. Signed
// values are allowed, negative being an expense.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// Round2 rounds to two decimal places, half to even.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Money is a decimal that marshals as a bare JSON number, the shape the
// report artifacts use for every monetary field.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{d} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}
