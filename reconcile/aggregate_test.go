package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invertedv/chfs"
)

func TestAggregate(t *testing.T) {
	miss := chfs.Missing()

	debt := [][]float64{
		{1000, 0, 500, miss},
		{5000, miss, miss, miss},
	}
	asset := [][]float64{
		{20000, 0, 0, miss},
		{miss, miss, miss, miss},
	}
	vehicleAdj := []float64{0, miss, 0, 0}

	tot := Aggregate(debt, asset, vehicleAdj)

	// missing components count as zero
	assert.Equal(t, []float64{6000, 0, 500, 0}, tot.Debt)
	assert.Equal(t, []float64{20000, 0, 0, 0}, tot.Assets)

	// ratio: ordinary, both-zero, debt-over-nothing, both-zero
	assert.InDelta(t, 0.3, tot.Ratio[0], 1e-9)
	assert.Equal(t, 0.0, tot.Ratio[1])
	assert.True(t, chfs.IsMissing(tot.Ratio[2]))
	assert.Equal(t, 0.0, tot.Ratio[3])
}

func TestAggregate_VehicleAdjustment(t *testing.T) {
	debt := [][]float64{{0, 0}}
	asset := [][]float64{{50000, 10000}}

	// the double-counted vehicle comes off once; assets floor at zero
	tot := Aggregate(debt, asset, []float64{20000, 50000})
	assert.Equal(t, []float64{30000, 0}, tot.Assets)
}

func TestAggregate_AssetsNeverNegative(t *testing.T) {
	adj := []float64{1e6, 1e7, chfs.Missing()}
	tot := Aggregate([][]float64{{0, 0, 0}}, [][]float64{{100, 0, 100}}, adj)

	for _, a := range tot.Assets {
		assert.GreaterOrEqual(t, a, 0.0)
	}
}
