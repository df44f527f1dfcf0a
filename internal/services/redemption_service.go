package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/loyalty"
	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

// couponRetries bounds code regeneration when the random suffix
// collides with an existing coupon.
const couponRetries = 5

// RedemptionService implements the coupon protocol: PIN check, daily
// limit, cost resolution, atomic debit + coupon insert, and the
// cashier-side inspect/consume calls.
type RedemptionService struct {
	db       *gorm.DB
	clock    Clock
	telegram *TelegramService
}

func NewRedemptionService(db *gorm.DB, clock Clock, telegram *TelegramService) *RedemptionService {
	return &RedemptionService{db: db, clock: clock, telegram: telegram}
}

// RedeemInput is a redemption attempt from the customer app.
type RedeemInput struct {
	Phone      string
	PIN        string
	RewardType string
	// Value is the requested currency amount for points-discount and
	// cashback-debit rewards. Ignored for the other types.
	Value float64
	// ProductID selects the catalog item for product rewards.
	ProductID string
}

// RedeemResult returns the issued coupon plus a fresh balance snapshot
// re-read after the debit committed.
type RedeemResult struct {
	Code       string       `json:"code"`
	RewardType string       `json:"reward_type"`
	PointsCost int64        `json:"points_cost,omitempty"`
	FaceValue  float64      `json:"face_value,omitempty"`
	Balance    *BalanceView `json:"balance"`
}

// Redeem runs the full protocol for one attempt.
func (s *RedemptionService) Redeem(ctx context.Context, in RedeemInput) (*RedeemResult, error) {
	phone := utils.NormalizePhone(in.Phone)
	if len(phone) != utils.PhoneLength {
		return nil, ErrCustomerNotFound
	}

	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if !utils.CheckPIN(customer.PINHash, in.PIN) {
		return nil, ErrInvalidPIN
	}

	result := &RedeemResult{RewardType: in.RewardType}
	now := s.clock.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize redemptions per customer before counting. Without
		// the row lock two concurrent attempts both see zero coupons
		// for today and both pass the limit.
		if _, err := lockPointsBalance(tx, phone); err != nil {
			return err
		}

		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		var todays int64
		if err := tx.Model(&models.Redemption{}).
			Where("phone = ? AND created_at >= ?", phone, midnight).
			Count(&todays).Error; err != nil {
			return err
		}
		if todays > 0 {
			return ErrDailyLimit
		}

		redemption := models.Redemption{Phone: phone, RewardType: in.RewardType}

		switch in.RewardType {
		case models.RewardPointsDiscount:
			cost := int64(math.Round(in.Value * loyalty.PointsPerReal))
			if err := debitPoints(tx, phone, cost); err != nil {
				return err
			}
			redemption.PointsCost = cost
			redemption.FaceValue = in.Value

		case models.RewardFreeShipping:
			if err := debitPoints(tx, phone, loyalty.FreeShippingCost); err != nil {
				return err
			}
			redemption.PointsCost = loyalty.FreeShippingCost

		case models.RewardCashbackDebit:
			if err := debitCashback(tx, phone, in.Value); err != nil {
				return err
			}
			redemption.FaceValue = in.Value

		case models.RewardProductItem:
			productID, err := uuid.Parse(in.ProductID)
			if err != nil {
				return ErrProductNotFound
			}
			var product models.RewardProduct
			if err := tx.Where("id = ? AND active = ?", productID, true).
				First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			var points models.PointsBalance
			if err := tx.Where("phone = ?", phone).First(&points).Error; err != nil {
				return err
			}
			tier := loyalty.TierFor(points.QualifyingSpend)
			cost := loyalty.ProductPrice(tier,
				product.PriceBronze, product.PricePrata, product.PriceOuro, product.PriceRei)

			if err := debitPoints(tx, phone, cost); err != nil {
				return err
			}
			redemption.PointsCost = cost
			redemption.ProductID = &product.ID

		default:
			return ErrUnknownRewardType
		}

		code, err := insertCoupon(tx, &redemption)
		if err != nil {
			return err
		}

		result.Code = code
		result.PointsCost = redemption.PointsCost
		result.FaceValue = redemption.FaceValue
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Snapshot re-read outside the transaction so the response shows
	// whatever is committed now, concurrent changes included.
	balance, err := loadBalanceView(s.db.WithContext(ctx), phone)
	if err != nil {
		return nil, err
	}
	result.Balance = balance

	if s.telegram != nil {
		go s.telegram.NotifyRedemption(phone, result.Code, in.RewardType)
	}

	return result, nil
}

// CouponInfo describes a coupon to the cashier terminal.
type CouponInfo struct {
	Code        string     `json:"code"`
	Phone       string     `json:"phone"`
	RewardType  string     `json:"reward_type"`
	FaceValue   float64    `json:"face_value,omitempty"`
	PointsCost  int64      `json:"points_cost,omitempty"`
	Description string     `json:"description"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// Inspect returns the coupon's benefit without consuming it.
func (s *RedemptionService) Inspect(ctx context.Context, code, phone string) (*CouponInfo, error) {
	redemption, err := s.findCoupon(ctx, code, phone)
	if err != nil {
		return nil, err
	}
	if redemption.UsedAt != nil {
		return nil, &CouponUsedError{UsedAt: redemption.UsedAt.Format(time.RFC3339)}
	}
	return s.describe(ctx, redemption), nil
}

// Consume marks the coupon used. The guard is a conditional UPDATE on
// used_at IS NULL: of two concurrent consumers exactly one flips the
// row, the other sees zero rows affected and gets the already-used
// rejection.
func (s *RedemptionService) Consume(ctx context.Context, code, phone string) (*CouponInfo, error) {
	redemption, err := s.findCoupon(ctx, code, phone)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	res := s.db.WithContext(ctx).Model(&models.Redemption{}).
		Where("id = ? AND used_at IS NULL", redemption.ID).
		Update("used_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race; re-read for the real usage timestamp.
		var current models.Redemption
		if err := s.db.WithContext(ctx).First(&current, "id = ?", redemption.ID).Error; err != nil {
			return nil, err
		}
		usedAt := "desconhecido"
		if current.UsedAt != nil {
			usedAt = current.UsedAt.Format(time.RFC3339)
		}
		return nil, &CouponUsedError{UsedAt: usedAt}
	}

	redemption.UsedAt = &now
	log.Printf("[Resgate] coupon %s consumed for %s", redemption.Code, redemption.Phone)
	return s.describe(ctx, redemption), nil
}

func (s *RedemptionService) findCoupon(ctx context.Context, code, phone string) (*models.Redemption, error) {
	phone = utils.NormalizePhone(phone)

	var redemption models.Redemption
	err := s.db.WithContext(ctx).
		Where("code = ? AND phone = ?", normalizeCode(code), phone).
		First(&redemption).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *RedemptionService) describe(ctx context.Context, r *models.Redemption) *CouponInfo {
	info := &CouponInfo{
		Code:       r.Code,
		Phone:      r.Phone,
		RewardType: r.RewardType,
		FaceValue:  r.FaceValue,
		PointsCost: r.PointsCost,
		UsedAt:     r.UsedAt,
	}

	switch r.RewardType {
	case models.RewardPointsDiscount:
		info.Description = fmt.Sprintf("Desconto de R$ %.2f (pago com %d pontos)", r.FaceValue, r.PointsCost)
	case models.RewardCashbackDebit:
		info.Description = fmt.Sprintf("Desconto de R$ %.2f (cashback)", r.FaceValue)
	case models.RewardFreeShipping:
		info.Description = "Frete grátis"
	case models.RewardProductItem:
		name := "produto do catálogo"
		if r.ProductID != nil {
			var product models.RewardProduct
			if err := s.db.WithContext(ctx).First(&product, "id = ?", *r.ProductID).Error; err == nil {
				name = product.Name
			}
		}
		info.Description = fmt.Sprintf("Resgate de produto: %s (%d pontos)", name, r.PointsCost)
	default:
		info.Description = "Benefício de fidelidade"
	}

	return info
}

func insertCoupon(tx *gorm.DB, redemption *models.Redemption) (string, error) {
	for attempt := 0; attempt < couponRetries; attempt++ {
		code, err := utils.GenerateCouponCode(redemption.RewardType)
		if err != nil {
			return "", err
		}
		redemption.Code = code
		redemption.BaseModel = models.BaseModel{}

		// Savepoint so a code collision does not abort the outer
		// transaction holding the balance debit.
		err = tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(redemption).Error
		})
		if err == nil {
			return code, nil
		}
		if !isDuplicateKey(err) {
			return "", err
		}
	}
	return "", errors.New("não foi possível gerar um código de cupom único")
}

func debitPoints(tx *gorm.DB, phone string, cost int64) error {
	var points models.PointsBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&points).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &InsufficientBalanceError{Kind: "pontos", Needed: float64(cost)}
	}
	if err != nil {
		return err
	}
	if points.Total < cost {
		return &InsufficientBalanceError{Kind: "pontos", Needed: float64(cost), Available: float64(points.Total)}
	}
	return tx.Model(&models.PointsBalance{}).Where("phone = ?", phone).
		Update("total", points.Total-cost).Error
}

func debitCashback(tx *gorm.DB, phone string, amount float64) error {
	var cb models.CashbackBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&cb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &InsufficientBalanceError{Kind: "cashback", Needed: amount}
	}
	if err != nil {
		return err
	}
	if cb.Saldo < amount {
		return &InsufficientBalanceError{Kind: "cashback", Needed: amount, Available: cb.Saldo}
	}
	return tx.Model(&models.CashbackBalance{}).Where("phone = ?", phone).
		Update("saldo", loyalty.Round2(cb.Saldo-amount)).Error
}
