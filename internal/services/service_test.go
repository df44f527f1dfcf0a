package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/reidocupim/internal/models"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// TranslateError maps the driver's unique-violation errors onto
// gorm.ErrDuplicatedKey, same as the Postgres driver in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or each pooled connection gets its own empty
	// in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Sale{},
		&models.PointsBalance{},
		&models.CashbackBalance{},
		&models.TicketsBalance{},
		&models.PointsJournal{},
		&models.Redemption{},
		&models.RewardProduct{},
		&models.WheelPrize{},
		&models.AdminUser{},
	))
	return db
}
