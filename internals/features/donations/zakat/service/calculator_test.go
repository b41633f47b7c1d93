package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFixedInput(t *testing.T) {
	res := Calculate(Input{
		Wealth:             10000,
		GoldGrams:          100,
		GoldPricePerGram:   60,
		SilverGrams:        1000,
		SilverPricePerGram: 0.8,
		BusinessGoods:      4000,
		Agriculture:        2000,
	})

	assert.Equal(t, Breakdown{Wealth: 250, Gold: 150, Silver: 20, Business: 100, Agriculture: 100}, res.Breakdown)
	assert.Equal(t, 620.0, res.Total)
	assert.Equal(t, 20800.0, res.ZakatableAssets)
	assert.Equal(t, 5100.0, res.NisabValue)
	assert.Equal(t, "gold", res.NisabBasis)
	assert.True(t, res.MeetsNisab)
}

func TestNisabIsReportedOnly(t *testing.T) {
	res := Calculate(Input{Wealth: 1000, SilverPricePerGram: 2})

	assert.Equal(t, 25.0, res.Total)
	assert.Equal(t, 1190.0, res.NisabValue)
	assert.Equal(t, "silver", res.NisabBasis)
	assert.False(t, res.MeetsNisab)
}

func TestCalculateZeroInput(t *testing.T) {
	res := Calculate(Input{})
	assert.Zero(t, res.Total)
	assert.Zero(t, res.NisabValue)
	assert.Empty(t, res.NisabBasis)
	assert.False(t, res.MeetsNisab)
}
