package genotype

import (
	"math/big"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueRandomGenesIsAPermutation(t *testing.T) {
	u := NewUnique([]int{1, 2, 3, 4, 5})
	rng := rand.New(rand.NewSource(1))
	genes := u.RandomGenes(rng)
	sorted := append([]int(nil), genes...)
	sort.Ints(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sorted)
}

func TestUniqueRandomAlleleAtPanics(t *testing.T) {
	u := NewUnique([]int{1, 2, 3})
	assert.Panics(t, func() { u.RandomAlleleAt(0, rand.New(rand.NewSource(1))) })
}

func TestUniqueMutateGeneAtSwapsWithoutSelf(t *testing.T) {
	u := NewUnique([]int{1, 2, 3, 4})
	genes := []int{1, 2, 3, 4}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		before := append([]int(nil), genes...)
		u.MutateGeneAt(genes, 1, 0, rng)
		sorted := append([]int(nil), genes...)
		sort.Ints(sorted)
		assert.Equal(t, []int{1, 2, 3, 4}, sorted, "mutation must preserve the permutation invariant")
		assert.NotEqual(t, before, genes, "a swap that picked the same position would be a no-op; over many trials some must differ")
	}
}

func TestUniqueCrossoverCapabilityIsNone(t *testing.T) {
	u := NewUnique([]int{1, 2, 3})
	assert.Equal(t, CrossoverNone, u.CrossoverCapability())
}

func TestUniqueNeighboursCountMatchesPairCount(t *testing.T) {
	u := NewUnique([]int{1, 2, 3, 4})
	genes := []int{1, 2, 3, 4}
	neighbours := u.Neighbours(genes, 0, nil)
	assert.Len(t, neighbours, 6) // C(4,2)
	for _, n := range neighbours {
		sorted := append([]int(nil), n...)
		sort.Ints(sorted)
		assert.Equal(t, []int{1, 2, 3, 4}, sorted)
	}
}

func TestUniqueChromosomePermutationsSizeIsFactorial(t *testing.T) {
	u := NewUnique([]int{1, 2, 3, 4, 5})
	size, ok := u.ChromosomePermutationsSize()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(120), size)
}

func TestUniqueEnumerateAtEnumeratesAllPermutationsExactlyOnce(t *testing.T) {
	u := NewUnique([]int{1, 2, 3, 4})
	total, _ := u.ChromosomePermutationsSize()
	seen := make(map[string]bool)
	for i := int64(0); i < total.Int64(); i++ {
		genes := u.EnumerateAt(big.NewInt(i))
		sorted := append([]int(nil), genes...)
		sort.Ints(sorted)
		assert.Equal(t, []int{1, 2, 3, 4}, sorted)
		key := ""
		for _, g := range genes {
			key += string(rune('0' + g))
		}
		assert.False(t, seen[key], "EnumerateAt(%d) produced a permutation already seen", i)
		seen[key] = true
	}
	assert.Len(t, seen, int(total.Int64()))
}

func TestUniqueEnumerateAtZeroIsIdentityOrder(t *testing.T) {
	u := NewUnique([]string{"a", "b", "c"})
	genes := u.EnumerateAt(big.NewInt(0))
	assert.Equal(t, []string{"a", "b", "c"}, genes)
}
