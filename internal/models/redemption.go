package models

import (
	"time"

	"github.com/google/uuid"
)

// Reward types accepted by the redemption endpoint.
const (
	RewardPointsDiscount = "pontos"
	RewardCashbackDebit  = "cashback"
	RewardFreeShipping   = "frete"
	RewardProductItem    = "produto"
)

// Redemption is a single-use coupon issued after the corresponding
// balance was debited. UsedAt is set at most once; the conditional
// update in RedemptionService guarantees exactly one consumer wins.
type Redemption struct {
	BaseModel
	Code       string     `gorm:"uniqueIndex;size:64" json:"code"`
	Phone      string     `gorm:"index;size:20" json:"phone"`
	RewardType string     `json:"reward_type"`
	FaceValue  float64    `json:"face_value"`
	PointsCost int64      `json:"points_cost"`
	ProductID  *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	UsedAt     *time.Time `json:"used_at"`
}

// RewardProduct is a catalog item redeemable for points. The price a
// customer pays depends on their current tier, one column per band.
type RewardProduct struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `gorm:"index" json:"active"`
	PriceBronze int64  `json:"price_bronze"`
	PricePrata  int64  `json:"price_prata"`
	PriceOuro   int64  `json:"price_ouro"`
	PriceRei    int64  `json:"price_rei"`
}
