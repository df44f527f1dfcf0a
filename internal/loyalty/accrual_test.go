package loyalty

import "testing"

func TestEarningsFor(t *testing.T) {
	tests := []struct {
		name         string
		tier         string
		amount       float64
		wantPoints   int64
		wantCashback float64
		wantTickets  int64
	}{
		{name: "bronze 50", tier: "Bronze", amount: 50, wantPoints: 100, wantCashback: 0.25, wantTickets: 1},
		{name: "bronze below ticket unit", tier: "Bronze", amount: 49.90, wantPoints: 99, wantCashback: 0.25, wantTickets: 0},
		{name: "prata 100", tier: "Prata", amount: 100, wantPoints: 400, wantCashback: 1.00, wantTickets: 4},
		{name: "ouro 75", tier: "Ouro", amount: 75, wantPoints: 600, wantCashback: 1.50, wantTickets: 3},
		{name: "rei 120", tier: "Rei do Cupim", amount: 120, wantPoints: 1680, wantCashback: 3.60, wantTickets: 8},
		{name: "zero amount", tier: "Bronze", amount: 0},
		{name: "negative amount", tier: "Ouro", amount: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EarningsFor(ByLabel(tt.tier), tt.amount)
			if got.Points != tt.wantPoints {
				t.Fatalf("points = %d, want %d", got.Points, tt.wantPoints)
			}
			if got.Cashback != tt.wantCashback {
				t.Fatalf("cashback = %v, want %v", got.Cashback, tt.wantCashback)
			}
			if got.Tickets != tt.wantTickets {
				t.Fatalf("tickets = %d, want %d", got.Tickets, tt.wantTickets)
			}
		})
	}
}

func TestEarningsNeverNegative(t *testing.T) {
	for _, tier := range Tiers() {
		for _, amount := range []float64{0.01, 1, 49.99, 50, 123.45, 10000} {
			got := EarningsFor(tier, amount)
			if got.Points < 0 || got.Cashback < 0 || got.Tickets < 0 {
				t.Fatalf("negative earnings for tier %q amount %v: %+v", tier.Label, amount, got)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.005, want: 0.01},
		{in: 1.004, want: 1.0},
		{in: 2.678, want: 2.68},
		{in: 10, want: 10},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Fatalf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
