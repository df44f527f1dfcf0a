package loyalty

import "math"

// Earnings is what a single purchase yields. The customer earns at the
// rate of the tier they held before the purchase.
type Earnings struct {
	Points   int64   `json:"points"`
	Cashback float64 `json:"cashback"`
	Tickets  int64   `json:"tickets"`
}

// EarningsFor computes the benefits of a purchase made while holding
// the given tier. Points and tickets round down, cashback rounds to
// cents.
func EarningsFor(t Tier, amount float64) Earnings {
	if amount <= 0 {
		return Earnings{}
	}
	return Earnings{
		Points:   int64(math.Floor(amount * EarnRate * t.Multiplier)),
		Cashback: Round2(amount * t.CashbackPercent),
		Tickets:  int64(math.Floor(amount/TicketUnit)) * t.TicketsPerUnit,
	}
}

// Round2 rounds a currency amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
