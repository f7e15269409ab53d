package models

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts an american price (+150, -200) to decimal
// odds (2.50, 1.50).
func AmericanToDecimal(american float64) float64 {
	if american > 0 {
		return american/100 + 1
	}
	return 100/math.Abs(american) + 1
}

// DecimalToAmerican converts decimal odds to an american price. Decimal
// 2.00 is the even-money boundary and maps to +100. Decimal odds at or
// below 1.00 carry no payout and map to 0.
func DecimalToAmerican(decimal float64) float64 {
	if decimal <= 1.0 {
		return 0
	}
	if decimal >= 2.0 {
		return (decimal - 1) * 100
	}
	return -100 / (decimal - 1)
}

// FormatAmerican renders an american price the way books display it:
// a leading plus for positive prices, bare minus otherwise.
func FormatAmerican(price float64) string {
	if price > 0 {
		return fmt.Sprintf("+%d", int(math.Round(price)))
	}
	return fmt.Sprintf("%d", int(math.Round(price)))
}

var marketDisplayNames = map[MarketType]string{
	MarketH2H:              "Moneyline",
	MarketSpreads:          "Point Spread",
	MarketTotals:           "Over/Under",
	MarketPlayerPassTDs:    "Passing Touchdowns",
	MarketPlayerPassYards:  "Passing Yards",
	MarketPlayerRushYards:  "Rushing Yards",
	MarketPlayerRecYards:   "Receiving Yards",
	MarketPlayerReceptions: "Receptions",
	MarketPlayerAnytimeTD:  "Anytime Touchdown",
}

func MarketDisplayName(m MarketType) string {
	if name, ok := marketDisplayNames[m]; ok {
		return name
	}
	return string(m)
}
