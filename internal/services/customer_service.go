package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/loyalty"
	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

// SignupBonus is credited when the customer shares their birth date on
// signup, so the restaurant can run birthday campaigns.
const SignupBonus = 200

// CustomerService handles signup, PIN reset and balance lookups.
type CustomerService struct {
	db    *gorm.DB
	clock Clock
}

func NewCustomerService(db *gorm.DB, clock Clock) *CustomerService {
	return &CustomerService{db: db, clock: clock}
}

// SignupInput is the signup form payload.
type SignupInput struct {
	Name      string
	Phone     string
	PIN       string
	BirthDate *time.Time
	Origin    string
}

// SignupResult reports the created account and any signup bonus.
type SignupResult struct {
	Phone       string `json:"phone"`
	BonusPoints int64  `json:"bonus_points"`
	Existing    bool   `json:"existing"`
}

// Signup creates the customer and their three zeroed balance rows. A
// phone that already signed up is tolerated, not an error: the webhook
// may have auto-created the customer before they found the form.
func (s *CustomerService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	phone := utils.NormalizePhone(in.Phone)
	result := &SignupResult{Phone: phone}

	var bonus int64
	if in.BirthDate != nil {
		bonus = SignupBonus
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		origin := in.Origin
		if origin == "" {
			origin = "FORM"
		}
		customer := models.Customer{
			Phone:        phone,
			Name:         in.Name,
			BirthDate:    in.BirthDate,
			PINHash:      utils.HashPIN(in.PIN),
			SignupOrigin: origin,
		}
		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&customer).Error
		})
		if err != nil {
			if !isDuplicateKey(err) {
				return err
			}
			result.Existing = true

			var existing models.Customer
			if err := tx.Where("phone = ?", phone).First(&existing).Error; err != nil {
				return err
			}
			// Only a webhook-originated stub (no PIN yet) may be
			// completed with form data. An account that already has a
			// PIN keeps it: anyone can post this form, and the only
			// reset path is the birth-date-verified one.
			if existing.PINHash == "" {
				if err := tx.Model(&models.Customer{}).Where("phone = ?", phone).
					Updates(map[string]any{
						"name":       in.Name,
						"birth_date": in.BirthDate,
						"pin_hash":   utils.HashPIN(in.PIN),
					}).Error; err != nil {
					return err
				}
			}
		}

		var points models.PointsBalance
		err = tx.Where("phone = ?", phone).First(&points).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&models.PointsBalance{
				Phone:           phone,
				Total:           bonus,
				QualifyingSpend: 0,
				Tier:            loyalty.Lowest().Label,
			}).Error; err != nil {
				return err
			}
			result.BonusPoints = bonus
		} else if err != nil {
			return err
		}

		var cb models.CashbackBalance
		err = tx.Where("phone = ?", phone).First(&cb).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&models.CashbackBalance{Phone: phone}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var tk models.TicketsBalance
		err = tx.Where("phone = ?", phone).First(&tk).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&models.TicketsBalance{Phone: phone}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ResetPIN sets a new PIN after verifying the birth date second factor.
func (s *CustomerService) ResetPIN(ctx context.Context, phone, birthDate, newPIN string) error {
	phone = utils.NormalizePhone(phone)

	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	if customer.BirthDate == nil || customer.BirthDate.Format("2006-01-02") != birthDate {
		return ErrBirthDateMismatch
	}

	return s.db.WithContext(ctx).Model(&models.Customer{}).
		Where("phone = ?", phone).
		Update("pin_hash", utils.HashPIN(newPIN)).Error
}

// BalanceView is the display snapshot of a customer's standing.
type BalanceView struct {
	Phone           string  `json:"phone"`
	Tier            string  `json:"tier"`
	NextTier        string  `json:"next_tier,omitempty"`
	Progress        int     `json:"progress"`
	PointsToNext    int64   `json:"points_to_next"`
	Points          int64   `json:"points"`
	QualifyingSpend float64 `json:"qualifying_spend"`
	Cashback        float64 `json:"cashback"`
	Tickets         int64   `json:"tickets"`
}

// Lookup returns the balance snapshot for a phone.
func (s *CustomerService) Lookup(ctx context.Context, phone string) (*BalanceView, error) {
	phone = utils.NormalizePhone(phone)
	if len(phone) < 10 {
		return nil, ErrCustomerNotFound
	}
	return loadBalanceView(s.db.WithContext(ctx), phone)
}

func loadBalanceView(db *gorm.DB, phone string) (*BalanceView, error) {
	var points models.PointsBalance
	if err := db.Where("phone = ?", phone).First(&points).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	tier := loyalty.TierFor(points.QualifyingSpend)
	view := &BalanceView{
		Phone:           phone,
		Tier:            tier.Label,
		Progress:        loyalty.Progress(points.QualifyingSpend),
		PointsToNext:    loyalty.PointsToNext(points.QualifyingSpend),
		Points:          points.Total,
		QualifyingSpend: points.QualifyingSpend,
	}
	if next, ok := loyalty.Next(tier); ok {
		view.NextTier = next.Label
	}

	var cb models.CashbackBalance
	if err := db.Where("phone = ?", phone).First(&cb).Error; err == nil {
		view.Cashback = cb.Saldo
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var tk models.TicketsBalance
	if err := db.Where("phone = ?", phone).First(&tk).Error; err == nil {
		view.Tickets = tk.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return view, nil
}
