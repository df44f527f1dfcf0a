package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/loyalty"
	"github.com/example/reidocupim/internal/models"
)

// DecayService runs the scheduled inactivity sweep: customers who
// stopped buying lose part or all of their balances and drop tiers.
type DecayService struct {
	db    *gorm.DB
	clock Clock
}

func NewDecayService(db *gorm.DB, clock Clock) *DecayService {
	return &DecayService{db: db, clock: clock}
}

// DecayChange records one affected customer, before and after.
type DecayChange struct {
	Phone        string           `json:"phone"`
	DaysInactive int              `json:"days_inactive"`
	Reason       string           `json:"reason"`
	PreviousTier string           `json:"previous_tier"`
	NewTier      string           `json:"new_tier"`
	TierDropped  bool             `json:"tier_dropped"`
	Before       loyalty.Snapshot `json:"before"`
	After        loyalty.Snapshot `json:"after"`
}

// DecayError is a per-customer failure that did not stop the sweep.
type DecayError struct {
	Phone string `json:"phone"`
	Error string `json:"error"`
}

// DecayReport summarizes one sweep.
type DecayReport struct {
	RanAt          time.Time     `json:"ran_at"`
	TotalCustomers int           `json:"total_customers"`
	Affected       []DecayChange `json:"affected"`
	Errors         []DecayError  `json:"errors,omitempty"`
}

// Run applies the inactivity rules to every customer. One customer's
// failure is recorded and the loop moves on.
func (s *DecayService) Run(ctx context.Context) (*DecayReport, error) {
	now := s.clock.Now()
	report := &DecayReport{RanAt: now, Affected: []DecayChange{}}

	var customers []models.Customer
	if err := s.db.WithContext(ctx).
		Select("phone", "last_purchase").Find(&customers).Error; err != nil {
		return nil, err
	}
	report.TotalCustomers = len(customers)

	for _, customer := range customers {
		change, err := s.decayOne(ctx, customer, now)
		if err != nil {
			report.Errors = append(report.Errors, DecayError{Phone: customer.Phone, Error: err.Error()})
			continue
		}
		if change != nil {
			report.Affected = append(report.Affected, *change)
		}
	}

	return report, nil
}

func (s *DecayService) decayOne(ctx context.Context, customer models.Customer, now time.Time) (*DecayChange, error) {
	days := loyalty.NeverPurchasedDays
	if customer.LastPurchase != nil {
		days = int(now.Sub(*customer.LastPurchase).Hours() / 24)
	}
	if days < loyalty.HalfLossDays {
		return nil, nil
	}

	var change *DecayChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := loadSnapshot(tx, customer.Phone)
		if err != nil {
			return err
		}
		if before.Empty() {
			return nil
		}

		after, changed, reason := loyalty.ApplyDecay(days, before)
		if !changed {
			return nil
		}

		if err := writeSnapshot(tx, customer.Phone, after); err != nil {
			return err
		}

		change = &DecayChange{
			Phone:        customer.Phone,
			DaysInactive: days,
			Reason:       reason,
			PreviousTier: before.Tier,
			NewTier:      after.Tier,
			TierDropped:  before.Tier != after.Tier,
			Before:       before,
			After:        after,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// loadSnapshot gathers the three balance rows under row locks. Missing
// rows read as zero.
func loadSnapshot(tx *gorm.DB, phone string) (loyalty.Snapshot, error) {
	snap := loyalty.Snapshot{Tier: loyalty.Lowest().Label}

	var points models.PointsBalance
	err := forUpdate(tx).
		Where("phone = ?", phone).First(&points).Error
	switch {
	case err == nil:
		snap.Points = points.Total
		snap.QualifyingSpend = points.QualifyingSpend
		if points.Tier != "" {
			snap.Tier = points.Tier
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return snap, err
	}

	var cb models.CashbackBalance
	err = forUpdate(tx).
		Where("phone = ?", phone).First(&cb).Error
	switch {
	case err == nil:
		snap.Cashback = cb.Saldo
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return snap, err
	}

	var tk models.TicketsBalance
	err = forUpdate(tx).
		Where("phone = ?", phone).First(&tk).Error
	switch {
	case err == nil:
		snap.Tickets = tk.Quantity
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return snap, err
	}

	return snap, nil
}

func writeSnapshot(tx *gorm.DB, phone string, snap loyalty.Snapshot) error {
	if err := tx.Model(&models.PointsBalance{}).Where("phone = ?", phone).
		Updates(map[string]any{
			"total":            snap.Points,
			"qualifying_spend": snap.QualifyingSpend,
			"tier":             snap.Tier,
		}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.CashbackBalance{}).Where("phone = ?", phone).
		Update("saldo", snap.Cashback).Error; err != nil {
		return err
	}
	return tx.Model(&models.TicketsBalance{}).Where("phone = ?", phone).
		Update("quantity", snap.Tickets).Error
}
