package models

// Wheel prize types.
const (
	WheelPrizePoints  = "pontos"
	WheelPrizeItem    = "fisico"
	WheelPrizeNothing = "nada"
)

// WheelPrize is one slot on the prize wheel. Weight is the base
// probability weight; the spin service shifts weights per bracket.
type WheelPrize struct {
	BaseModel
	Label       string `json:"label"`
	Type        string `json:"type"`
	Emoji       string `json:"emoji"`
	Weight      int    `json:"weight"`
	PointsValue int64  `json:"points_value"`
	Active      bool   `gorm:"index" json:"active"`
}
