package cardinality

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
)

func hashOf(s string) uint64 {
	return xxhash.Sum64String(s)
}

func TestNewEstimatorClampsPrecision(t *testing.T) {
	assert.Equal(t, 4, NewEstimator(0).precision)
	assert.Equal(t, 4, NewEstimator(3).precision)
	assert.Equal(t, 16, NewEstimator(20).precision)
	assert.Equal(t, 10, NewEstimator(10).precision)
}

func TestEstimateEmptyIsZero(t *testing.T) {
	e := NewEstimator(8)
	assert.InDelta(t, 0, e.Estimate(), 0.001)
}

func TestResetClearsRegisters(t *testing.T) {
	e := NewEstimator(8)
	for i := 0; i < 100; i++ {
		e.Add(hashOf(string(rune(i))))
	}
	assert.Greater(t, e.Estimate(), 0.0)
	e.Reset()
	assert.InDelta(t, 0, e.Estimate(), 0.001)
}

func TestEstimateApproximatesDistinctCount(t *testing.T) {
	e := NewEstimator(12)
	const n = 5000
	for i := 0; i < n; i++ {
		e.Add(hashOf(string(rune(i)) + "-distinct"))
	}
	got := e.Estimate()
	// HyperLogLog at precision 12 (4096 registers) typically lands within a
	// few percent of the true count; allow a generous 15% tolerance.
	assert.InEpsilon(t, float64(n), got, 0.15)
}

func TestEstimateAllDuplicatesIsNearOne(t *testing.T) {
	e := NewEstimator(10)
	h := hashOf("same-value")
	for i := 0; i < 1000; i++ {
		e.Add(h)
	}
	assert.InDelta(t, 1, e.Estimate(), 1)
}

func TestAddAllResetsBeforeFolding(t *testing.T) {
	e := NewEstimator(10)
	e.AddAll([]uint64{hashOf("a"), hashOf("b"), hashOf("c")})
	first := e.Estimate()
	e.AddAll([]uint64{hashOf("a")})
	second := e.Estimate()
	assert.Less(t, second, first, "AddAll must reset the sketch, not accumulate across calls")
}

func TestEstimateHashesConvenienceFunction(t *testing.T) {
	hashes := []uint64{hashOf("a"), hashOf("b"), hashOf("c"), hashOf("a")}
	got := EstimateHashes(hashes, 10)
	assert.InDelta(t, 3, got, 1.5)
}
