package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

// staffBrackets maps the waiter's code to a luck bracket. The code on
// the table card depends on the bill, so bigger spenders get better
// odds.
var staffBrackets = map[string]string{
	"1111": "bronze",
	"2222": "prata",
	"3333": "ouro",
}

// WheelService runs the prize wheel.
type WheelService struct {
	db       *gorm.DB
	telegram *TelegramService
	rng      func(n int) int
}

func NewWheelService(db *gorm.DB, telegram *TelegramService) *WheelService {
	return &WheelService{db: db, telegram: telegram, rng: rand.Intn}
}

// SpinResult is what the wheel landed on.
type SpinResult struct {
	Prize   models.WheelPrize `json:"prize"`
	Bracket string            `json:"bracket"`
	Message string            `json:"message"`
}

// Spin validates the staff code, draws a prize weighted by bracket and
// credits point prizes to the customer.
func (s *WheelService) Spin(ctx context.Context, phone, staffCode string) (*SpinResult, error) {
	bracket, ok := staffBrackets[staffCode]
	if !ok {
		return nil, ErrInvalidStaffCode
	}

	var prizes []models.WheelPrize
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&prizes).Error; err != nil {
		return nil, err
	}

	urn := buildUrn(prizes, bracket)
	if len(urn) == 0 {
		return nil, ErrWheelMisconfig
	}

	prize := urn[s.rng(len(urn))]

	// The grand physical prize is display only; a zero-weight draw can
	// only come from a misconfigured row, so downgrade it to "nothing".
	if prize.Weight == 0 {
		prize = fallbackPrize(prizes)
	}

	result := &SpinResult{Prize: prize, Bracket: bracket}

	switch prize.Type {
	case models.WheelPrizePoints:
		if err := s.creditWin(ctx, phone, prize, bracket); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("%d pontos creditados!", prize.PointsValue)
	case models.WheelPrizeItem:
		result.Message = "Mostre esta tela ao garçom!"
		if s.telegram != nil {
			go s.telegram.NotifyWheelWin(phone, prize.Label)
		}
	default:
		result.Message = "Não foi dessa vez!"
	}

	return result, nil
}

// buildUrn expands prizes into a weighted pool, shifting odds per
// bracket: higher brackets see less "nothing" and more points.
func buildUrn(prizes []models.WheelPrize, bracket string) []models.WheelPrize {
	var urn []models.WheelPrize
	for _, prize := range prizes {
		weight := prize.Weight

		switch bracket {
		case "prata":
			if prize.Type == models.WheelPrizeNothing {
				weight -= 10
			}
			if prize.Type == models.WheelPrizePoints {
				weight += 10
			}
		case "ouro":
			if prize.Type == models.WheelPrizeNothing {
				weight -= 20
			}
			if prize.Type == models.WheelPrizePoints {
				weight += 20
			}
			if prize.Type == models.WheelPrizeItem {
				weight += 5
			}
		}
		if weight < 0 {
			weight = 0
		}

		for i := 0; i < weight; i++ {
			urn = append(urn, prize)
		}
	}
	return urn
}

func fallbackPrize(prizes []models.WheelPrize) models.WheelPrize {
	for _, prize := range prizes {
		if prize.Type == models.WheelPrizeNothing {
			return prize
		}
	}
	if len(prizes) > 0 {
		return prizes[0]
	}
	return models.WheelPrize{Type: models.WheelPrizeNothing, Label: "Nada"}
}

func (s *WheelService) creditWin(ctx context.Context, phone string, prize models.WheelPrize, bracket string) error {
	phone = utils.NormalizePhone(phone)
	if len(phone) < 10 {
		// Anonymous spin, nothing to credit.
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		points, err := lockPointsBalance(tx, phone)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.PointsBalance{}).Where("phone = ?", phone).
			Update("total", points.Total+prize.PointsValue).Error; err != nil {
			return err
		}

		entry := models.PointsJournal{
			Phone:       phone,
			Kind:        "entrada",
			Points:      prize.PointsValue,
			Origin:      "roleta",
			Description: fmt.Sprintf("Ganhou na roleta (faixa %s)", bracket),
		}
		if err := tx.Create(&entry).Error; err != nil {
			log.Printf("[Roleta] failed to journal win for %s: %v", phone, err)
		}
		return nil
	})
}
