package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/loyalty"
	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

// AccrualService turns POS purchase events into points, cashback and
// sweepstakes tickets. All balance writes for one purchase happen in a
// single transaction with the points row locked, so concurrent events
// for the same phone serialize instead of clobbering each other.
type AccrualService struct {
	db    *gorm.DB
	clock Clock
}

func NewAccrualService(db *gorm.DB, clock Clock) *AccrualService {
	return &AccrualService{db: db, clock: clock}
}

// AccrualInput is a purchase event as delivered by the POS webhook.
type AccrualInput struct {
	Phone        string
	CustomerName string
	Amount       float64
	ExternalID   string
	Source       string
}

// AccrualResult reports what a purchase earned. Skipped and Duplicate
// outcomes are not errors: the webhook caller must receive 200 for
// them or the POS will retry forever.
type AccrualResult struct {
	Phone           string           `json:"phone"`
	Skipped         bool             `json:"skipped,omitempty"`
	SkipReason      string           `json:"skip_reason,omitempty"`
	Duplicate       bool             `json:"duplicate,omitempty"`
	Earned          loyalty.Earnings `json:"earned"`
	QualifyingSpend float64          `json:"qualifying_spend"`
	PreviousTier    string           `json:"previous_tier,omitempty"`
	NewTier         string           `json:"new_tier,omitempty"`
	TierChanged     bool             `json:"tier_changed"`
}

// Accrue processes one purchase event.
func (s *AccrualService) Accrue(ctx context.Context, in AccrualInput) (*AccrualResult, error) {
	phone := utils.NormalizePhone(in.Phone)

	// Orders without a usable phone (masked marketplace numbers) are
	// acknowledged and dropped, matching the POS contract.
	if len(phone) < 10 {
		return &AccrualResult{Skipped: true, SkipReason: "telefone ausente ou mascarado"}, nil
	}

	if in.Amount <= 0 {
		return &AccrualResult{Phone: phone, Skipped: true, SkipReason: "valor zerado"}, nil
	}

	result := &AccrualResult{Phone: phone}
	now := s.clock.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale := models.Sale{
			ExternalID: in.ExternalID,
			Phone:      phone,
			Amount:     in.Amount,
			Source:     in.Source,
			SoldAt:     now,
		}
		// Savepoint keeps the outer transaction usable when the unique
		// index rejects a redelivered order.
		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&sale).Error
		})
		if err != nil {
			if isDuplicateKey(err) {
				result.Duplicate = true
				return nil
			}
			return err
		}

		var customer models.Customer
		err = tx.Where("phone = ?", phone).First(&customer).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			name := in.CustomerName
			if name == "" {
				name = "Cliente POS"
			}
			customer = models.Customer{
				Phone:        phone,
				Name:         name,
				SignupOrigin: "POS_AUTO",
				LastPurchase: &now,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&models.Customer{}).Where("phone = ?", phone).
				Update("last_purchase", now).Error; err != nil {
				return err
			}
		}

		points, err := lockPointsBalance(tx, phone)
		if err != nil {
			return err
		}

		// Earn rate follows the tier held before this purchase.
		preTier := loyalty.TierFor(points.QualifyingSpend)
		earned := loyalty.EarningsFor(preTier, in.Amount)

		newSpend := points.QualifyingSpend + in.Amount
		newTier := loyalty.TierFor(newSpend)

		if err := tx.Model(&models.PointsBalance{}).Where("phone = ?", phone).
			Updates(map[string]any{
				"total":            points.Total + earned.Points,
				"qualifying_spend": newSpend,
				"tier":             newTier.Label,
			}).Error; err != nil {
			return err
		}

		if err := addCashback(tx, phone, earned.Cashback); err != nil {
			return err
		}
		if earned.Tickets > 0 {
			if err := addTickets(tx, phone, earned.Tickets); err != nil {
				return err
			}
		}

		result.Earned = earned
		result.QualifyingSpend = newSpend
		result.PreviousTier = preTier.Label
		result.NewTier = newTier.Label
		result.TierChanged = preTier.Label != newTier.Label
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.TierChanged {
		log.Printf("[Accrual] %s promoted %s -> %s", phone, result.PreviousTier, result.NewTier)
	}

	return result, nil
}

// lockPointsBalance reads the points row FOR UPDATE, creating it first
// for customers that never earned before.
func lockPointsBalance(tx *gorm.DB, phone string) (*models.PointsBalance, error) {
	var points models.PointsBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&points).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		points = models.PointsBalance{Phone: phone, Tier: loyalty.Lowest().Label}
		if err := tx.Create(&points).Error; err != nil {
			return nil, err
		}
		return &points, nil
	}
	if err != nil {
		return nil, err
	}
	return &points, nil
}

func addCashback(tx *gorm.DB, phone string, amount float64) error {
	var cb models.CashbackBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&cb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.CashbackBalance{Phone: phone, Saldo: loyalty.Round2(amount)}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.CashbackBalance{}).Where("phone = ?", phone).
		Update("saldo", loyalty.Round2(cb.Saldo+amount)).Error
}

func addTickets(tx *gorm.DB, phone string, quantity int64) error {
	var tk models.TicketsBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&tk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.TicketsBalance{Phone: phone, Quantity: quantity}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.TicketsBalance{}).Where("phone = ?", phone).
		Update("quantity", tk.Quantity+quantity).Error
}
