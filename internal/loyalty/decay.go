package loyalty

import "fmt"

// Inactivity thresholds, in days since the last purchase.
const (
	HalfLossDays = 30
	FullLossDays = 60

	// NeverPurchasedDays stands in for customers without any purchase
	// on record, forcing them past the full-loss threshold.
	NeverPurchasedDays = 9999
)

// Snapshot is the decay-relevant view of a customer's balances.
type Snapshot struct {
	Points          int64   `json:"points"`
	QualifyingSpend float64 `json:"qualifying_spend"`
	Cashback        float64 `json:"cashback"`
	Tickets         int64   `json:"tickets"`
	Tier            string  `json:"tier"`
}

// Empty reports whether there is nothing left to decay.
func (s Snapshot) Empty() bool {
	return s.Points == 0 && s.Cashback == 0 && s.Tickets == 0
}

// ApplyDecay applies the inactivity rules to a snapshot and returns
// the post-decay snapshot, whether anything changed, and a
// human-readable reason.
//
// At FullLossDays everything is zeroed and the customer returns to the
// bottom band. At HalfLossDays balances halve (integers round down,
// cash rounds to cents) and the tier drops exactly one band; the tier
// recomputed from the halved qualifying spend wins if it is lower
// still. Below HalfLossDays nothing changes.
func ApplyDecay(daysSincePurchase int, cur Snapshot) (Snapshot, bool, string) {
	switch {
	case daysSincePurchase >= FullLossDays:
		next := Snapshot{Tier: Lowest().Label}
		reason := fmt.Sprintf("%d dias sem compra (>= %d: perde 100%% e volta ao %s)",
			daysSincePurchase, FullLossDays, Lowest().Label)
		return next, true, reason

	case daysSincePurchase >= HalfLossDays:
		next := Snapshot{
			Points:          cur.Points / 2,
			QualifyingSpend: Round2(cur.QualifyingSpend / 2),
			Cashback:        Round2(cur.Cashback / 2),
			Tickets:         cur.Tickets / 2,
		}

		demoted := DemoteOne(ByLabel(cur.Tier))
		recomputed := TierFor(next.QualifyingSpend)
		if recomputed.MinSpend < demoted.MinSpend {
			next.Tier = recomputed.Label
		} else {
			next.Tier = demoted.Label
		}

		reason := fmt.Sprintf("%d dias sem compra (>= %d: perde 50%% e desce 1 nível)",
			daysSincePurchase, HalfLossDays)
		return next, true, reason

	default:
		return cur, false, ""
	}
}
