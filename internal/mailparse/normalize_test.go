package mailparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentalincome-backend/internal/mailparse"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC)

	t.Run("SameDateInAllFormats", func(t *testing.T) {
		for _, raw := range []string{"21/01/2025", "21-01-2025", "January 21, 2025"} {
			got, ok := mailparse.ParseDate(raw)
			assert.True(t, ok, "should parse %q", raw)
			assert.True(t, want.Equal(got), "%q should normalize to %s, got %s", raw, want, got)
		}
	})

	t.Run("ISOFormat", func(t *testing.T) {
		got, ok := mailparse.ParseDate("2025-01-21")
		assert.True(t, ok)
		assert.True(t, want.Equal(got))
	})

	t.Run("DayFirstWinsOverUSFormat", func(t *testing.T) {
		got, ok := mailparse.ParseDate("02/03/2025")
		assert.True(t, ok)
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 2, got.Day())
	})

	t.Run("Garbage", func(t *testing.T) {
		_, ok := mailparse.ParseDate("not a date")
		assert.False(t, ok)

		_, ok = mailparse.ParseDate("")
		assert.False(t, ok)
	})
}

func TestParseMonthNameDate(t *testing.T) {
	got, ok := mailparse.ParseMonthNameDate("January 15, 2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), got)

	// Falls back to the generic layouts
	got, ok = mailparse.ParseMonthNameDate("15/01/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseAmountCents(t *testing.T) {
	t.Run("SymbolsAndSeparatorsStripped", func(t *testing.T) {
		a, ok := mailparse.ParseAmountCents("€1,234.50")
		assert.True(t, ok)
		b, ok2 := mailparse.ParseAmountCents("1234.50")
		assert.True(t, ok2)
		assert.Equal(t, int64(123450), a)
		assert.Equal(t, a, b)
	})

	t.Run("PlainAmount", func(t *testing.T) {
		cents, ok := mailparse.ParseAmountCents("450.00")
		assert.True(t, ok)
		assert.Equal(t, int64(45000), cents)
	})

	t.Run("DollarAndPound", func(t *testing.T) {
		cents, ok := mailparse.ParseAmountCents("$99.99")
		assert.True(t, ok)
		assert.Equal(t, int64(9999), cents)

		cents, ok = mailparse.ParseAmountCents("£1,000")
		assert.True(t, ok)
		assert.Equal(t, int64(100000), cents)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, ok := mailparse.ParseAmountCents("free")
		assert.False(t, ok)

		_, ok = mailparse.ParseAmountCents("")
		assert.False(t, ok)

		_, ok = mailparse.ParseAmountCents("-12.00")
		assert.False(t, ok)
	})
}
