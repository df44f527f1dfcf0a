package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDecayNoChange(t *testing.T) {
	cur := Snapshot{Points: 500, QualifyingSpend: 300, Cashback: 12.50, Tickets: 3, Tier: "Prata"}

	next, changed, reason := ApplyDecay(29, cur)

	assert.False(t, changed)
	assert.Empty(t, reason)
	assert.Equal(t, cur, next)
}

func TestApplyDecayHalfLoss(t *testing.T) {
	// 45 days inactive under the 30/60 rule: balances halve, tier
	// drops exactly one band.
	cur := Snapshot{Points: 501, QualifyingSpend: 450, Cashback: 10.50, Tickets: 5, Tier: "Ouro"}

	next, changed, reason := ApplyDecay(45, cur)

	require.True(t, changed)
	assert.Contains(t, reason, "45 dias")
	assert.Equal(t, int64(250), next.Points)
	assert.Equal(t, 225.0, next.QualifyingSpend)
	assert.Equal(t, 5.25, next.Cashback)
	assert.Equal(t, int64(2), next.Tickets)
	assert.Equal(t, "Prata", next.Tier)
}

func TestApplyDecayHalfLossRecomputedTierWins(t *testing.T) {
	// Halving 250 of qualifying spend lands at 125, which no longer
	// supports Prata; the recomputed Bronze wins over the one-step
	// demotion target.
	cur := Snapshot{Points: 100, QualifyingSpend: 250, Cashback: 0, Tickets: 0, Tier: "Ouro"}

	next, changed, _ := ApplyDecay(30, cur)

	require.True(t, changed)
	assert.Equal(t, "Bronze", next.Tier)
}

func TestApplyDecayHalfLossNeverSkipsWhenSpendSupportsIt(t *testing.T) {
	// 900 halves to 450, which still supports Ouro, so the one-step
	// demotion from Rei do Cupim stands.
	cur := Snapshot{Points: 2000, QualifyingSpend: 900, Cashback: 50, Tickets: 10, Tier: "Rei do Cupim"}

	next, changed, _ := ApplyDecay(31, cur)

	require.True(t, changed)
	assert.Equal(t, "Ouro", next.Tier)
}

func TestApplyDecayHalfLossAtBronzeStaysBronze(t *testing.T) {
	cur := Snapshot{Points: 80, QualifyingSpend: 40, Cashback: 1, Tickets: 1, Tier: "Bronze"}

	next, changed, _ := ApplyDecay(40, cur)

	require.True(t, changed)
	assert.Equal(t, "Bronze", next.Tier)
	assert.Equal(t, int64(40), next.Points)
}

func TestApplyDecayFullLoss(t *testing.T) {
	cur := Snapshot{Points: 9999, QualifyingSpend: 5000, Cashback: 123.45, Tickets: 42, Tier: "Rei do Cupim"}

	next, changed, reason := ApplyDecay(60, cur)

	require.True(t, changed)
	assert.Contains(t, reason, "100%")
	assert.Equal(t, Snapshot{Tier: "Bronze"}, next)
}

func TestApplyDecayNeverPurchased(t *testing.T) {
	cur := Snapshot{Points: 200, QualifyingSpend: 0, Cashback: 0, Tickets: 0, Tier: "Bronze"}

	next, changed, _ := ApplyDecay(NeverPurchasedDays, cur)

	require.True(t, changed)
	assert.Equal(t, int64(0), next.Points)
	assert.Equal(t, "Bronze", next.Tier)
}

func TestApplyDecayNeverNegative(t *testing.T) {
	snapshots := []Snapshot{
		{Points: 1, Cashback: 0.01, Tickets: 1, QualifyingSpend: 0.5, Tier: "Bronze"},
		{},
		{Points: 3, Tier: "Prata"},
	}
	for _, cur := range snapshots {
		for _, days := range []int{30, 59, 60, NeverPurchasedDays} {
			next, _, _ := ApplyDecay(days, cur)
			assert.GreaterOrEqual(t, next.Points, int64(0))
			assert.GreaterOrEqual(t, next.Cashback, 0.0)
			assert.GreaterOrEqual(t, next.Tickets, int64(0))
			assert.GreaterOrEqual(t, next.QualifyingSpend, 0.0)
		}
	}
}
