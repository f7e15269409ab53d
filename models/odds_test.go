package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmericanToDecimal(t *testing.T) {
	assert.InDelta(t, 2.50, AmericanToDecimal(150), 0.001)
	assert.InDelta(t, 1.50, AmericanToDecimal(-200), 0.001)
	assert.InDelta(t, 2.00, AmericanToDecimal(100), 0.001)
	assert.InDelta(t, 1.909, AmericanToDecimal(-110), 0.001)
}

func TestDecimalToAmerican(t *testing.T) {
	assert.InDelta(t, 150, DecimalToAmerican(2.50), 0.001)
	assert.InDelta(t, -200, DecimalToAmerican(1.50), 0.001)

	// 2.00 is even money and sits on the positive side.
	assert.InDelta(t, 100, DecimalToAmerican(2.00), 0.001)
	assert.InDelta(t, -110, DecimalToAmerican(1.909090909), 0.01)

	// Decimal odds at or below 1.00 have no payout; no division blow-up.
	assert.Equal(t, 0.0, DecimalToAmerican(1.00))
	assert.Equal(t, 0.0, DecimalToAmerican(0.25))
}

func TestConversionRoundTrip(t *testing.T) {
	for _, american := range []float64{-350, -110, -105, 100, 120, 425} {
		assert.InDelta(t, american, DecimalToAmerican(AmericanToDecimal(american)), 0.01)
	}
}

func TestFormatAmerican(t *testing.T) {
	assert.Equal(t, "+150", FormatAmerican(150))
	assert.Equal(t, "-110", FormatAmerican(-110))
	assert.Equal(t, "+100", FormatAmerican(100))
}

func TestMarketDisplayName(t *testing.T) {
	assert.Equal(t, "Moneyline", MarketDisplayName(MarketH2H))
	assert.Equal(t, "Receptions", MarketDisplayName(MarketPlayerReceptions))

	// Unknown markets fall back to the raw key.
	assert.Equal(t, "player_sacks", MarketDisplayName(MarketType("player_sacks")))
}
