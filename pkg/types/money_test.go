package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"7.5075", "7.51"},
		{"7.5049", "7.50"},
		{"28.3305", "28.33"},
		{"45", "45.00"},
		{"0.005", "0.01"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, NewMoney(d).String(), "input %s", tc.in)
	}
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("45.00")
	require.NoError(t, err)
	assert.True(t, m.Equal(MustMoney("45")))

	_, err = MoneyFromString("not a number")
	assert.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(MustMoney("45.5"))
	require.NoError(t, err)
	assert.Equal(t, `"45.50"`, string(b))

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"35.00"`), &fromString))
	assert.True(t, fromString.Equal(MustMoney("35.00")))

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`35`), &fromNumber))
	assert.True(t, fromNumber.Equal(MustMoney("35.00")))
}

func TestMoneySQLRoundTrip(t *testing.T) {
	value, err := MustMoney("120.00").Value()
	require.NoError(t, err)

	var scanned Money
	require.NoError(t, scanned.Scan(value))
	assert.True(t, scanned.Equal(MustMoney("120.00")))
}
