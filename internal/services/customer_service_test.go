package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

func TestSignupDuplicateKeepsExistingAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db, SystemClock())

	birth := time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Signup(context.Background(), SignupInput{
		Name:      "Maria Souza",
		Phone:     "11988887777",
		PIN:       "1234",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	// A second form post for the same phone must not touch the PIN,
	// name or birth date already on file.
	res, err := svc.Signup(context.Background(), SignupInput{
		Name:  "Outro Nome",
		Phone: "11988887777",
		PIN:   "9999",
	})
	require.NoError(t, err)
	assert.True(t, res.Existing)
	assert.Zero(t, res.BonusPoints)

	var customer models.Customer
	require.NoError(t, db.Where("phone = ?", "11988887777").First(&customer).Error)
	assert.True(t, utils.CheckPIN(customer.PINHash, "1234"))
	assert.False(t, utils.CheckPIN(customer.PINHash, "9999"))
	assert.Equal(t, "Maria Souza", customer.Name)
	require.NotNil(t, customer.BirthDate)
	assert.Equal(t, "1990-05-10", customer.BirthDate.Format("2006-01-02"))
}

func TestSignupCompletesWebhookStub(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db, SystemClock())

	// The POS webhook creates customers with no PIN; the form later
	// fills in what it lacked.
	require.NoError(t, db.Create(&models.Customer{
		Phone:        "11988887777",
		SignupOrigin: "POS_AUTO",
	}).Error)

	birth := time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC)
	res, err := svc.Signup(context.Background(), SignupInput{
		Name:      "Carlos Lima",
		Phone:     "11988887777",
		PIN:       "4321",
		BirthDate: &birth,
	})
	require.NoError(t, err)
	assert.True(t, res.Existing)

	var customer models.Customer
	require.NoError(t, db.Where("phone = ?", "11988887777").First(&customer).Error)
	assert.Equal(t, "Carlos Lima", customer.Name)
	assert.True(t, utils.CheckPIN(customer.PINHash, "4321"))
	require.NotNil(t, customer.BirthDate)

	var points models.PointsBalance
	require.NoError(t, db.Where("phone = ?", "11988887777").First(&points).Error)
	assert.Equal(t, int64(SignupBonus), points.Total)
}

func TestSignupBonusRequiresBirthDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db, SystemClock())

	res, err := svc.Signup(context.Background(), SignupInput{
		Name:  "Ana Prado",
		Phone: "11977776666",
		PIN:   "1234",
	})
	require.NoError(t, err)
	assert.Zero(t, res.BonusPoints)

	var points models.PointsBalance
	require.NoError(t, db.Where("phone = ?", "11977776666").First(&points).Error)
	assert.Zero(t, points.Total)
}
