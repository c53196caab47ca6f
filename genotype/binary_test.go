package genotype

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRandomGenesRespectsSize(t *testing.T) {
	b := NewBinary(10)
	rng := rand.New(rand.NewSource(1))
	genes := b.RandomGenes(rng)
	assert.Len(t, genes, 10)
}

func TestBinaryMutateGeneAtFlipsExactlyOnePosition(t *testing.T) {
	b := NewBinary(5)
	genes := []bool{false, false, false, false, false}
	b.MutateGeneAt(genes, 2, 0, nil)
	assert.Equal(t, []bool{false, false, true, false, false}, genes)
}

func TestBinaryNeighboursCoversEveryPosition(t *testing.T) {
	b := NewBinary(4)
	genes := []bool{true, false, true, false}
	neighbours := b.Neighbours(genes, 0, nil)
	require.Len(t, neighbours, 4)
	for i, n := range neighbours {
		for j := range genes {
			if j == i {
				assert.Equal(t, !genes[j], n[j])
			} else {
				assert.Equal(t, genes[j], n[j])
			}
		}
	}
}

func TestBinaryChromosomePermutationsSize(t *testing.T) {
	b := NewBinary(8)
	size, ok := b.ChromosomePermutationsSize()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(256), size)
}

func TestBinaryEnumerateAtRoundTripsEveryIndex(t *testing.T) {
	b := NewBinary(4)
	total, _ := b.ChromosomePermutationsSize()
	seen := make(map[string]bool)
	for i := int64(0); i < total.Int64(); i++ {
		genes := b.EnumerateAt(big.NewInt(i))
		key := ""
		for _, g := range genes {
			if g {
				key += "1"
			} else {
				key += "0"
			}
		}
		assert.False(t, seen[key], "EnumerateAt must produce distinct chromosomes for distinct indices")
		seen[key] = true
	}
	assert.Len(t, seen, int(total.Int64()))
}

func TestBinaryEnumerateAtZeroIsAllFalse(t *testing.T) {
	b := NewBinary(4)
	genes := b.EnumerateAt(big.NewInt(0))
	assert.Equal(t, []bool{false, false, false, false}, genes)
}

func TestBinaryEnumerateAtMaxIsAllTrue(t *testing.T) {
	b := NewBinary(4)
	genes := b.EnumerateAt(big.NewInt(15))
	assert.Equal(t, []bool{true, true, true, true}, genes)
}

func TestBinarySeedGenesRoundTrip(t *testing.T) {
	b := NewBinary(3).WithSeedGenes([][]bool{{true, false, true}})
	assert.Equal(t, [][]bool{{true, false, true}}, b.SeedGenes())
}

func TestBinaryScaleLevelsIsZero(t *testing.T) {
	assert.Equal(t, 0, NewBinary(3).ScaleLevels())
}
