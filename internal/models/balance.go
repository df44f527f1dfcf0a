package models

// PointsBalance keeps the spendable point total and the lifetime
// qualifying spend used for tier computation. QualifyingSpend only
// moves down under inactivity decay, never from redemptions, so a
// customer's tier does not regress when they spend points.
type PointsBalance struct {
	BaseModel
	Phone           string  `gorm:"uniqueIndex;size:20" json:"phone"`
	Total           int64   `json:"total"`
	QualifyingSpend float64 `json:"qualifying_spend"`
	Tier            string  `json:"tier"`
}

// CashbackBalance holds the customer's cashback in currency, rounded
// to two decimals on every write.
type CashbackBalance struct {
	BaseModel
	Phone string  `gorm:"uniqueIndex;size:20" json:"phone"`
	Saldo float64 `json:"saldo"`
}

// TicketsBalance counts sweepstakes entries.
type TicketsBalance struct {
	BaseModel
	Phone    string `gorm:"uniqueIndex;size:20" json:"phone"`
	Quantity int64  `json:"quantity"`
}

// PointsJournal is an append-only ledger of point movements outside the
// regular accrual path (wheel wins, manual adjustments).
type PointsJournal struct {
	BaseModel
	Phone       string `gorm:"index;size:20" json:"phone"`
	Kind        string `json:"kind"`
	Points      int64  `json:"points"`
	Origin      string `json:"origin"`
	Description string `json:"description"`
}
