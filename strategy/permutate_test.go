package strategy

import (
	"context"
	"testing"

	"github.com/kdump/gev"
	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/genotype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutateEnumeratesEveryBinaryChromosomeExactlyOnce(t *testing.T) {
	g := genotype.NewBinary(4)
	seen := make(map[string]bool)
	fn := fitness.FuncFitness[bool](func(genes []bool) *int64 {
		key := make([]byte, len(genes))
		var n int64
		for i, gene := range genes {
			if gene {
				key[i] = '1'
				n++
			} else {
				key[i] = '0'
			}
		}
		seen[string(key)] = true
		return &n
	})

	strat, err := NewPermutateBuilder[bool](g, fn).WithBatchSize(3).Build()
	require.NoError(t, err)

	res, err := strat.Call(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exhausted", res.Stopped)
	assert.Equal(t, int64(4), *res.BestFitnessScore, "all-true is the best of every 4-bit chromosome")
	assert.Len(t, seen, 16, "Permutate must visit every one of the 2^4 chromosomes exactly once")
}

func TestPermutateBuildRejectsUncountableGenotype(t *testing.T) {
	g := genotype.NewRange(genotype.RangeConfig[float64]{Size: 2, Min: 0, Max: 1, Policy: genotype.PolicyRandom})
	fn := fitness.FuncFitness[float64](func(genes []float64) *int64 { var z int64; return &z })

	_, err := NewPermutateBuilder[float64](g, fn).Build()
	require.Error(t, err)
	var cfgErr *gev.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPermutateProgressReflectsIndexAdvancement(t *testing.T) {
	g := genotype.NewBinary(2)
	fn := fitness.FuncFitness[bool](func(genes []bool) *int64 { var z int64; return &z })
	strat, err := NewPermutateBuilder[bool](g, fn).WithBatchSize(1).Build()
	require.NoError(t, err)

	_, err = strat.Call(context.Background())
	require.NoError(t, err)

	current, total := strat.Progress()
	assert.Equal(t, total, current, "after exhausting the space, the index must equal the total")
	assert.Equal(t, int64(4), total.Int64())
}
