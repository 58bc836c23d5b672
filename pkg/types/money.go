package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is the platform-wide fixed-point monetary amount with two fraction
// digits. Intermediate arithmetic keeps full decimal precision; rounding to
// two digits happens only at the boundaries (construction, storage, JSON).
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a decimal, rounding half-up to two digits.
func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MoneyFromString parses a decimal string into a Money.
func MoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

// MustMoney parses a decimal string and panics on failure. Test helper.
func MustMoney(value string) Money {
	m, err := MoneyFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// MarshalJSON renders the amount as a two-digit string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number payload.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value implements driver.Valuer for database writes.
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan implements sql.Scanner for database reads.
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String returns the two-digit fixed representation.
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
