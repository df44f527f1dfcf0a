package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestInsufficientBalanceError(t *testing.T) {
	err := &InsufficientBalanceError{Kind: "pontos", Needed: 2000, Available: 80}

	assert.Equal(t, 1920.0, err.Shortfall())
	assert.Contains(t, err.Error(), "pontos insuficiente")
	assert.Contains(t, err.Error(), "2000.00")
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_sales_external_id" (SQLSTATE 23505)`)))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
}
