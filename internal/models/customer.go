package models

import (
	"time"
)

// Customer is a loyalty-program member, keyed by phone number.
// Phone is the natural key used by the POS webhook and the cashier
// terminal; it is stored digits-only, 11 characters (DDD + number).
type Customer struct {
	BaseModel
	Phone        string     `gorm:"uniqueIndex;size:20" json:"phone"`
	Name         string     `json:"name"`
	BirthDate    *time.Time `json:"birth_date"`
	PINHash      string     `json:"-"`
	SignupOrigin string     `json:"signup_origin"`
	LastPurchase *time.Time `json:"last_purchase"`
}

// Sale records a purchase event received from the POS. The unique index
// on ExternalID is what makes webhook delivery idempotent: a redelivered
// order hits the constraint and is ignored.
type Sale struct {
	BaseModel
	ExternalID string    `gorm:"uniqueIndex;size:64" json:"external_id"`
	Phone      string    `gorm:"index;size:20" json:"phone"`
	Amount     float64   `json:"amount"`
	Source     string    `json:"source"`
	SoldAt     time.Time `json:"sold_at"`
}
