package genotype

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiListRandomGenesRespectsPerPositionAlphabets(t *testing.T) {
	m := NewMultiList([][]int{{1, 2}, {10, 20, 30}, {100}})
	rng := rand.New(rand.NewSource(1))
	genes := m.RandomGenes(rng)
	require.Len(t, genes, 3)
	assert.Contains(t, []int{1, 2}, genes[0])
	assert.Contains(t, []int{10, 20, 30}, genes[1])
	assert.Equal(t, 100, genes[2])
}

func TestMultiListMutateGeneAtSingleAlleleAlphabetIsANoop(t *testing.T) {
	m := NewMultiList([][]int{{1, 2}, {7}})
	genes := []int{1, 7}
	m.MutateGeneAt(genes, 1, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, 7, genes[1])
}

func TestMultiListChromosomePermutationsSize(t *testing.T) {
	m := NewMultiList([][]int{{1, 2}, {1, 2, 3}})
	size, ok := m.ChromosomePermutationsSize()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(6), size)
}

func TestMultiListEnumerateAtDistinct(t *testing.T) {
	m := NewMultiList([][]int{{1, 2}, {10, 20, 30}})
	total, _ := m.ChromosomePermutationsSize()
	seen := make(map[[2]int]bool)
	for i := int64(0); i < total.Int64(); i++ {
		genes := m.EnumerateAt(big.NewInt(i))
		key := [2]int{genes[0], genes[1]}
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Len(t, seen, int(total.Int64()))
}
