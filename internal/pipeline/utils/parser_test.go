package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("iso layout", func(t *testing.T) {
		got := ParseDate("2026-03-15")
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("us layout", func(t *testing.T) {
		got := ParseDate("03/15/2026")
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("timestamp truncated to date part", func(t *testing.T) {
		got := ParseDate("2026-03-15 00:00:00")
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparsable yields zero time", func(t *testing.T) {
		assert.True(t, ParseDate("not a date").IsZero())
		assert.True(t, ParseDate("").IsZero())
	})
}

func TestParseMoney(t *testing.T) {
	t.Run("currency formatting stripped", func(t *testing.T) {
		got, err := ParseMoney("$1,234.50")
		require.NoError(t, err)
		assert.Equal(t, 1234.50, got)
	})

	t.Run("plain numeric", func(t *testing.T) {
		got, err := ParseMoney("5000")
		require.NoError(t, err)
		assert.Equal(t, 5000.0, got)
	})

	t.Run("empty is zero", func(t *testing.T) {
		got, err := ParseMoney("")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("garbage errors, lenient form returns zero", func(t *testing.T) {
		_, err := ParseMoney("abc")
		require.Error(t, err)
		assert.Equal(t, 0.0, MoneyValue("abc"))
	})
}

func TestNormalizeNAICS(t *testing.T) {
	assert.Equal(t, "541512", NormalizeNAICS("541512"))
	assert.Equal(t, "541512", NormalizeNAICS("5415129999"))
	assert.Equal(t, "541512", NormalizeNAICS("  541512  "))
	assert.Equal(t, "5415", NormalizeNAICS("5415"))
	assert.Equal(t, "", NormalizeNAICS(""))
}

func TestMonthsRemaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("whole months floored", func(t *testing.T) {
		months, ok := MonthsRemaining(now.AddDate(0, 0, 90), now)
		require.True(t, ok)
		assert.Equal(t, 3, months)

		months, ok = MonthsRemaining(now.AddDate(0, 0, 89), now)
		require.True(t, ok)
		assert.Equal(t, 2, months)
	})

	t.Run("expired goes negative", func(t *testing.T) {
		months, ok := MonthsRemaining(now.AddDate(0, 0, -31), now)
		require.True(t, ok)
		assert.Equal(t, -2, months)
	})

	t.Run("zero expiration reports no data", func(t *testing.T) {
		_, ok := MonthsRemaining(time.Time{}, now)
		assert.False(t, ok)
	})
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 1, ParseIntDefault("1", 0))
	assert.Equal(t, 1, ParseIntDefault("1.0", 0))
	assert.Equal(t, 0, ParseIntDefault("0", 5))
	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("n/a", 5))
}
