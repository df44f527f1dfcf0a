package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/reidocupim/internal/models"
)

func prize(label, kind string, weight int) models.WheelPrize {
	return models.WheelPrize{Label: label, Type: kind, Weight: weight}
}

func countByLabel(urn []models.WheelPrize) map[string]int {
	counts := map[string]int{}
	for _, p := range urn {
		counts[p.Label]++
	}
	return counts
}

func TestBuildUrnBronzeKeepsBaseWeights(t *testing.T) {
	prizes := []models.WheelPrize{
		prize("Nada", models.WheelPrizeNothing, 50),
		prize("100 pontos", models.WheelPrizePoints, 30),
		prize("Brinde", models.WheelPrizeItem, 20),
	}

	counts := countByLabel(buildUrn(prizes, "bronze"))

	assert.Equal(t, 50, counts["Nada"])
	assert.Equal(t, 30, counts["100 pontos"])
	assert.Equal(t, 20, counts["Brinde"])
}

func TestBuildUrnOuroShiftsOdds(t *testing.T) {
	prizes := []models.WheelPrize{
		prize("Nada", models.WheelPrizeNothing, 50),
		prize("100 pontos", models.WheelPrizePoints, 30),
		prize("Brinde", models.WheelPrizeItem, 20),
	}

	counts := countByLabel(buildUrn(prizes, "ouro"))

	assert.Equal(t, 30, counts["Nada"])
	assert.Equal(t, 50, counts["100 pontos"])
	assert.Equal(t, 25, counts["Brinde"])
}

func TestBuildUrnWeightNeverNegative(t *testing.T) {
	prizes := []models.WheelPrize{
		prize("Nada", models.WheelPrizeNothing, 5),
	}

	urn := buildUrn(prizes, "ouro")

	assert.Empty(t, urn)
}

func TestBuildUrnGrandPrizeExcluded(t *testing.T) {
	// A zero-weight physical prize is display only and must never be
	// drawable in any bracket except ouro's +5 shift, which is why the
	// spin path double-checks Weight == 0 on the drawn prize.
	prizes := []models.WheelPrize{
		prize("PS5", models.WheelPrizeItem, 0),
		prize("Nada", models.WheelPrizeNothing, 10),
	}

	counts := countByLabel(buildUrn(prizes, "bronze"))
	assert.Zero(t, counts["PS5"])
}

func TestFallbackPrizePrefersNothing(t *testing.T) {
	prizes := []models.WheelPrize{
		prize("PS5", models.WheelPrizeItem, 0),
		prize("Nada", models.WheelPrizeNothing, 10),
	}

	assert.Equal(t, "Nada", fallbackPrize(prizes).Label)
	assert.Equal(t, models.WheelPrizeNothing, fallbackPrize(nil).Type)
}
