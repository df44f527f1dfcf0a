package loyalty

import "math"

// PointsPerReal is the redemption exchange rate: R$ 1 of discount costs
// 20 points. It is also used to express the gap to the next tier in
// points for display.
const PointsPerReal = 20

// EarnRate is the base points earned per R$ 1 spent, before the tier
// multiplier is applied.
const EarnRate = 1

// TicketUnit is the purchase amount that yields one batch of
// sweepstakes tickets.
const TicketUnit = 50.0

// FreeShippingCost is the fixed point price of a free-shipping coupon.
const FreeShippingCost = 300

// Tier is one band of the loyalty ladder. MinSpend is inclusive; the
// band extends to the next band's MinSpend, and the top band is open.
type Tier struct {
	Label           string
	MinSpend        float64
	Multiplier      float64
	CashbackPercent float64
	TicketsPerUnit  int64
}

// tiers is the single authoritative ladder, ordered by MinSpend. All
// accrual, decay and pricing decisions go through this table.
var tiers = []Tier{
	{Label: "Bronze", MinSpend: 0, Multiplier: 2, CashbackPercent: 0.005, TicketsPerUnit: 1},
	{Label: "Prata", MinSpend: 200, Multiplier: 4, CashbackPercent: 0.01, TicketsPerUnit: 2},
	{Label: "Ouro", MinSpend: 400, Multiplier: 8, CashbackPercent: 0.02, TicketsPerUnit: 3},
	{Label: "Rei do Cupim", MinSpend: 700, Multiplier: 14, CashbackPercent: 0.03, TicketsPerUnit: 4},
}

// Tiers returns a copy of the ladder, lowest band first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Lowest returns the bottom band.
func Lowest() Tier {
	return tiers[0]
}

// TierFor maps a qualifying spend to its band: the band with the
// greatest MinSpend <= value. Negative values clamp to the bottom band.
func TierFor(qualifyingSpend float64) Tier {
	current := tiers[0]
	for _, t := range tiers[1:] {
		if qualifyingSpend >= t.MinSpend {
			current = t
		}
	}
	return current
}

// ByLabel resolves a stored tier label back to its band. Unknown
// labels fall back to the bottom band.
func ByLabel(label string) Tier {
	for _, t := range tiers {
		if t.Label == label {
			return t
		}
	}
	return tiers[0]
}

// Next returns the band above t, or t itself when t is the top band.
func Next(t Tier) (Tier, bool) {
	for i, cand := range tiers {
		if cand.Label == t.Label && i+1 < len(tiers) {
			return tiers[i+1], true
		}
	}
	return t, false
}

// DemoteOne returns the band one step below t, never below the bottom.
func DemoteOne(t Tier) Tier {
	for i, cand := range tiers {
		if cand.Label == t.Label {
			if i == 0 {
				return tiers[0]
			}
			return tiers[i-1]
		}
	}
	return tiers[0]
}

// Progress reports how far along the current band a qualifying spend
// is, as an integer percentage clamped to [0,100]. The top band always
// reports 100.
func Progress(qualifyingSpend float64) int {
	current := TierFor(qualifyingSpend)
	next, ok := Next(current)
	if !ok {
		return 100
	}

	span := next.MinSpend - current.MinSpend
	pct := int(math.Floor(100 * (qualifyingSpend - current.MinSpend) / span))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// PointsToNext expresses the remaining gap to the next band in points.
// Zero means the customer is already at the top band.
func PointsToNext(qualifyingSpend float64) int64 {
	current := TierFor(qualifyingSpend)
	next, ok := Next(current)
	if !ok {
		return 0
	}
	return int64(math.Ceil((next.MinSpend - qualifyingSpend) * PointsPerReal))
}

// ProductPrice picks the per-tier price column for a catalog product.
func ProductPrice(t Tier, bronze, prata, ouro, rei int64) int64 {
	switch t.Label {
	case "Prata":
		return prata
	case "Ouro":
		return ouro
	case "Rei do Cupim":
		return rei
	default:
		return bronze
	}
}
