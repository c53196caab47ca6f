package operator

import (
	"math/rand"
	"testing"

	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/population"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneCrossoverLegalForEveryCapability(t *testing.T) {
	var c CloneCrossover[int]
	assert.True(t, c.Legal(genotype.CrossoverNone))
	assert.True(t, c.Legal(genotype.CrossoverBoth))
}

func TestCloneCrossoverProducesRequestedOffspringCount(t *testing.T) {
	g := genotype.NewRange(genotype.RangeConfig[int]{Size: 3, Min: 0, Max: 9, Policy: genotype.PolicyRandom})
	pop := population.New[int]()
	pop.Chromosomes = append(pop.Chromosomes, pop.Acquire([]int{1, 2, 3}))
	var c CloneCrossover[int]
	rng := rand.New(rand.NewSource(1))

	c.Apply(pop, g, 4, 0.5, 0.8, rng)

	assert.Len(t, pop.Chromosomes, 1+2) // offspringCount(0.5, 4) = 2
	for _, off := range pop.Chromosomes[1:] {
		assert.True(t, off.IsOffspring)
		assert.Equal(t, 0, off.Age)
		assert.Equal(t, []int{1, 2, 3}, off.Genes)
	}
}

func TestRejuvenateCrossoverLegalForEveryCapability(t *testing.T) {
	var c RejuvenateCrossover[bool]
	assert.True(t, c.Legal(genotype.CrossoverNone))
}

func TestRejuvenateCrossoverProducesFreshRandomGenes(t *testing.T) {
	g := genotype.NewBinary(5)
	pop := population.New[bool]()
	var c RejuvenateCrossover[bool]
	rng := rand.New(rand.NewSource(2))

	c.Apply(pop, g, 3, 1.0, 1.0, rng)

	require.Len(t, pop.Chromosomes, 3)
	for _, off := range pop.Chromosomes {
		assert.Len(t, off.Genes, 5)
		assert.True(t, off.IsOffspring)
	}
}

func TestSinglePointCrossoverIllegalForNoneCapability(t *testing.T) {
	var c SinglePointCrossover[int]
	assert.False(t, c.Legal(genotype.CrossoverNone))
	assert.True(t, c.Legal(genotype.CrossoverPoints))
	assert.True(t, c.Legal(genotype.CrossoverBoth))
}

func TestSinglePointCrossoverSplicesTwoParents(t *testing.T) {
	g := genotype.NewBinary(6)
	pop := population.New[bool]()
	pop.Chromosomes = append(pop.Chromosomes,
		pop.Acquire([]bool{false, false, false, false, false, false}),
		pop.Acquire([]bool{true, true, true, true, true, true}),
	)
	var c SinglePointCrossover[bool]
	rng := rand.New(rand.NewSource(3))

	c.Apply(pop, g, 10, 1.0, 1.0, rng)

	require.Len(t, pop.Chromosomes, 12)
	for _, off := range pop.Chromosomes[2:] {
		assert.Len(t, off.Genes, 6)
	}
}

func TestSingleGeneCrossoverIllegalForPointsOnlyCapability(t *testing.T) {
	var c SingleGeneCrossover[int]
	assert.False(t, c.Legal(genotype.CrossoverNone))
	assert.False(t, c.Legal(genotype.CrossoverPoints))
	assert.True(t, c.Legal(genotype.CrossoverIndices))
	assert.True(t, c.Legal(genotype.CrossoverBoth))
}

func TestSingleGeneCrossoverExchangesAtMostOneGene(t *testing.T) {
	g := genotype.NewBinary(6)
	pop := population.New[bool]()
	allFalse := make([]bool, 6)
	allTrue := make([]bool, 6)
	for i := range allTrue {
		allTrue[i] = true
	}
	pop.Chromosomes = append(pop.Chromosomes, pop.Acquire(allFalse), pop.Acquire(allTrue))
	var c SingleGeneCrossover[bool]
	rng := rand.New(rand.NewSource(4))

	c.Apply(pop, g, 1, 1.0, 1.0, rng)

	require.Len(t, pop.Chromosomes, 3)
	diffs := 0
	for _, gene := range pop.Chromosomes[2].Genes {
		if gene {
			diffs++
		}
	}
	if diffs > 3 {
		// the offspring was cloned from the all-true parent
		diffs = 6 - diffs
	}
	assert.LessOrEqual(t, diffs, 1, "SingleGeneCrossover must exchange at most one gene from the other parent")
}

func TestUniformCrossoverMixesGenesFromBothParents(t *testing.T) {
	g := genotype.NewBinary(20)
	pop := population.New[bool]()
	allFalse := make([]bool, 20)
	allTrue := make([]bool, 20)
	for i := range allTrue {
		allTrue[i] = true
	}
	pop.Chromosomes = append(pop.Chromosomes, pop.Acquire(allFalse), pop.Acquire(allTrue))
	var c UniformCrossover[bool]
	rng := rand.New(rand.NewSource(9))

	c.Apply(pop, g, 1, 1.0, 1.0, rng)

	require.Len(t, pop.Chromosomes, 3)
	off := pop.Chromosomes[2]
	trues, falses := 0, 0
	for _, gene := range off.Genes {
		if gene {
			trues++
		} else {
			falses++
		}
	}
	assert.Greater(t, trues, 0)
	assert.Greater(t, falses, 0)
}

func TestCutPointRestrictsToSubRangeBoundariesForMultiUnique(t *testing.T) {
	g := genotype.NewMultiUnique([][]int{{1, 2, 3}, {4, 5}})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		cut := cutPoint[int](g, g.GenesSize(), rng)
		assert.Equal(t, 3, cut, "the only interior boundary for two sub-ranges of size 3 and 2 is at index 3")
	}
}
