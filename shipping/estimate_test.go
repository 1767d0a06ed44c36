package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalWeightDefaultsMissingWeightToOneKg(t *testing.T) {
	items := []EstimateItem{
		{Weight: 0.5, Quantity: 2},
		{Weight: 0, Quantity: 3}, // unspecified → 1kg each
	}
	assert.Equal(t, 4.0, TotalWeight(items))
}

func TestEstimateOptions(t *testing.T) {
	opts := EstimateOptions(4)
	require.Len(t, opts, 2)

	regular, express := opts[0], opts[1]
	assert.Equal(t, "regular", regular.Courier)
	assert.Equal(t, 18000.0, regular.Cost) // 10000 + 2000×4
	assert.Equal(t, 3, regular.EstimatedDays)

	assert.Equal(t, "express", express.Courier)
	assert.Equal(t, 23000.0, express.Cost)
	assert.Equal(t, 1, express.EstimatedDays)
}

func TestEstimateOptionsMinimumOneKg(t *testing.T) {
	opts := EstimateOptions(0.2)
	assert.Equal(t, 12000.0, opts[0].Cost) // billed as 1kg
}
