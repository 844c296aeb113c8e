package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("should parse whole number amounts", func(t *testing.T) {
		cents, err := ParseAmount("10")
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), cents)
	})

	t.Run("should parse amounts with one decimal place", func(t *testing.T) {
		cents, err := ParseAmount("10.5")
		assert.NoError(t, err)
		assert.Equal(t, int64(1050), cents)
	})

	t.Run("should parse amounts with two decimal places", func(t *testing.T) {
		cents, err := ParseAmount("12.34")
		assert.NoError(t, err)
		assert.Equal(t, int64(1234), cents)
	})

	t.Run("should parse zero", func(t *testing.T) {
		cents, err := ParseAmount("0")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), cents)
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		cents, err := ParseAmount("  3.99 ")
		assert.NoError(t, err)
		assert.Equal(t, int64(399), cents)
	})

	t.Run("should reject empty values", func(t *testing.T) {
		_, err := ParseAmount("")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := ParseAmount("-5.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("should reject more than two decimal places", func(t *testing.T) {
		_, err := ParseAmount("1.234")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject non-numeric values", func(t *testing.T) {
		_, err := ParseAmount("abc")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject multiple decimal points", func(t *testing.T) {
		_, err := ParseAmount("1.2.3")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestFormatCents(t *testing.T) {
	t.Run("should format cents with two decimal places", func(t *testing.T) {
		assert.Equal(t, "10.15", FormatCents(1015))
	})

	t.Run("should format amounts under one dollar", func(t *testing.T) {
		assert.Equal(t, "0.05", FormatCents(5))
		assert.Equal(t, "0.50", FormatCents(50))
	})

	t.Run("should format zero", func(t *testing.T) {
		assert.Equal(t, "0.00", FormatCents(0))
	})

	t.Run("should format negative amounts", func(t *testing.T) {
		assert.Equal(t, "-7.00", FormatCents(-700))
		assert.Equal(t, "-0.01", FormatCents(-1))
	})

	t.Run("should round-trip with ParseAmount", func(t *testing.T) {
		cents, err := ParseAmount(FormatCents(123456))
		assert.NoError(t, err)
		assert.Equal(t, int64(123456), cents)
	})
}

func TestSplitRevenue(t *testing.T) {
	t.Run("should split evenly divisible amounts 70/30", func(t *testing.T) {
		readerEarnings, platformFee := SplitRevenue(2000)
		assert.Equal(t, int64(1400), readerEarnings)
		assert.Equal(t, int64(600), platformFee)
	})

	t.Run("should floor the reader share and give the remainder to the platform", func(t *testing.T) {
		// 70% of 1001 is 700.7, floored to 700
		readerEarnings, platformFee := SplitRevenue(1001)
		assert.Equal(t, int64(700), readerEarnings)
		assert.Equal(t, int64(301), platformFee)
	})

	t.Run("should always sum to the total", func(t *testing.T) {
		for _, total := range []int64{0, 1, 3, 99, 100, 999, 1001, 123457} {
			readerEarnings, platformFee := SplitRevenue(total)
			assert.Equal(t, total, readerEarnings+platformFee, "total %d", total)
			assert.GreaterOrEqual(t, platformFee, int64(0))
			assert.GreaterOrEqual(t, readerEarnings, int64(0))
		}
	})

	t.Run("should split zero as zero", func(t *testing.T) {
		readerEarnings, platformFee := SplitRevenue(0)
		assert.Equal(t, int64(0), readerEarnings)
		assert.Equal(t, int64(0), platformFee)
	})
}
