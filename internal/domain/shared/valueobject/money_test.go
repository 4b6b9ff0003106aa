package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, s string) Money {
	t.Helper()
	m, err := NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(450.00), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(450.00)))
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid decimal string", func(t *testing.T) {
		m, err := NewMoneyFromString("486.00", EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.Equal(t, "486.00", m.StringFixed(2))
	})

	t.Run("garbage string rejected", func(t *testing.T) {
		_, err := NewMoneyFromString("four hundred", USD)
		assert.Error(t, err)
	})
}

func TestUSDConstructors(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromInt(200))
	assert.Equal(t, USD, m.Currency())

	fromString := usd(t, "200")
	assert.True(t, m.Equals(fromString))

	_, err := NewMoneyUSDFromString("12.3.4")
	assert.Error(t, err)
}

func TestZero(t *testing.T) {
	assert.True(t, Zero(GBP).IsZero())
	assert.Equal(t, GBP, Zero(GBP).Currency())

	z := ZeroUSD()
	assert.True(t, z.IsZero())
	assert.Equal(t, DefaultCurrency, z.Currency())
}

func TestSignPredicates(t *testing.T) {
	credit := usd(t, "36.00")
	refund := usd(t, "-36.00")
	zero := ZeroUSD()

	assert.True(t, credit.IsPositive())
	assert.False(t, credit.IsNegative())

	assert.True(t, refund.IsNegative())
	assert.False(t, refund.IsPositive())

	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, zero.IsZero())
}

func TestAddAndSubtract(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		base := usd(t, "450.00")
		tax := usd(t, "36.00")

		total, err := base.Add(tax)
		require.NoError(t, err)
		assert.Equal(t, "486.00", total.StringFixed(2))

		balance, err := total.Subtract(usd(t, "200.00"))
		require.NoError(t, err)
		assert.Equal(t, "286.00", balance.StringFixed(2))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		eur, err := NewMoneyFromString("100", EUR)
		require.NoError(t, err)

		_, err = usd(t, "100").Add(eur)
		assert.ErrorContains(t, err, "different currencies")

		_, err = usd(t, "100").Subtract(eur)
		assert.ErrorContains(t, err, "different currencies")
	})
}

func TestMustVariantsPanicOnMismatch(t *testing.T) {
	eur, err := NewMoneyFromString("50", EUR)
	require.NoError(t, err)

	sum := usd(t, "100").MustAdd(usd(t, "50"))
	assert.Equal(t, "150.00", sum.StringFixed(2))

	assert.Panics(t, func() { usd(t, "100").MustAdd(eur) })
	assert.Panics(t, func() { usd(t, "100").MustSubtract(eur) })
}

func TestEquals(t *testing.T) {
	assert.True(t, usd(t, "1.5").Equals(usd(t, "1.50")))
	assert.False(t, usd(t, "1.5").Equals(usd(t, "1.51")))

	eur, err := NewMoneyFromString("1.50", EUR)
	require.NoError(t, err)
	assert.False(t, usd(t, "1.50").Equals(eur))
}

func TestComparisons(t *testing.T) {
	paid := usd(t, "200.00")
	total := usd(t, "486.00")

	lt, err := paid.LessThan(total)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := total.GreaterThan(paid)
	require.NoError(t, err)
	assert.True(t, gt)

	gte, err := total.GreaterThanOrEqual(usd(t, "486.00"))
	require.NoError(t, err)
	assert.True(t, gte)

	eur, err := NewMoneyFromString("100", EUR)
	require.NoError(t, err)
	_, err = paid.LessThan(eur)
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	m, err := NewMoneyUSDFromString("100.456")
	require.NoError(t, err)
	assert.Equal(t, "100.46", m.Round(2).StringFixed(2))
}

func TestStringForms(t *testing.T) {
	m := usd(t, "123.4")
	assert.Equal(t, "123.4", m.String())
	assert.Equal(t, "123.40", m.StringFixed(2))
}

func TestJSONRoundTrip(t *testing.T) {
	t.Run("marshals as fixed two decimal string", func(t *testing.T) {
		data, err := json.Marshal(usd(t, "99.9"))
		require.NoError(t, err)
		assert.Equal(t, `"99.90"`, string(data))
	})

	t.Run("unmarshals quoted decimal", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`"123.45"`), &m))
		assert.True(t, m.Equals(usd(t, "123.45")))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`"lots"`), &m))
	})
}

func TestScan(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("123.45"))
		assert.True(t, m.Equals(usd(t, "123.45")))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan([]byte("99.99")))
		assert.Equal(t, "99.99", m.StringFixed(2))
	})

	t.Run("numeric driver values", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(float64(12.5)))
		assert.Equal(t, "12.50", m.StringFixed(2))

		var n Money
		require.NoError(t, n.Scan(int64(7)))
		assert.Equal(t, "7.00", n.StringFixed(2))
	})

	t.Run("nil becomes zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(struct{}{}))
	})
}

func TestValue(t *testing.T) {
	val, err := usd(t, "123.45").Value()
	require.NoError(t, err)
	assert.Equal(t, "123.45", val)
}
