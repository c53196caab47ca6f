package genotype

import (
	"math/big"
	"math/rand"
)

// MultiUnique is the concatenation of K independently-permuted
// sub-alphabets: each sub-range is itself a permutation. Point-level
// crossover is legal as long as cuts align to sub-range boundaries (see
// SubRanged); gene-level exchange is not, since swapping a single gene
// across sub-ranges (or within one, without its partner) would break the
// permutation invariant.
type MultiUnique[T comparable] struct {
	subAlphabets [][]T
	boundaries   []int
	seeds        [][]T
}

// NewMultiUnique builds a MultiUnique genotype from K sub-alphabets.
// genes_size = sum of their lengths.
func NewMultiUnique[T comparable](subAlphabets [][]T) *MultiUnique[T] {
	cloned := make([][]T, len(subAlphabets))
	boundaries := make([]int, len(subAlphabets)+1)
	offset := 0
	for i, a := range subAlphabets {
		cloned[i] = cloneSlice(a)
		boundaries[i] = offset
		offset += len(a)
	}
	boundaries[len(subAlphabets)] = offset
	return &MultiUnique[T]{subAlphabets: cloned, boundaries: boundaries}
}

// WithSeedGenes returns a copy of m carrying the given seed sequences.
func (m *MultiUnique[T]) WithSeedGenes(seeds [][]T) *MultiUnique[T] {
	nm := *m
	nm.seeds = seeds
	return &nm
}

// SubRangeBoundaries returns the sorted boundary indices, including 0 and
// genes_size, delimiting each permuted sub-range.
func (m *MultiUnique[T]) SubRangeBoundaries() []int { return m.boundaries }

func (m *MultiUnique[T]) GenesSize() int { return m.boundaries[len(m.boundaries)-1] }

func (m *MultiUnique[T]) RandomGenes(rng *rand.Rand) []T {
	genes := make([]T, 0, m.GenesSize())
	for _, a := range m.subAlphabets {
		sub := cloneSlice(a)
		rng.Shuffle(len(sub), func(i, j int) { sub[i], sub[j] = sub[j], sub[i] })
		genes = append(genes, sub...)
	}
	return genes
}

func (m *MultiUnique[T]) RandomAlleleAt(_ int, _ *rand.Rand) T {
	panic("genotype: RandomAlleleAt is not meaningful for MultiUnique genotypes")
}

// subRangeOf returns the [start, end) bounds of the sub-range containing
// position i.
func (m *MultiUnique[T]) subRangeOf(i int) (int, int) {
	for k := 0; k < len(m.boundaries)-1; k++ {
		if i >= m.boundaries[k] && i < m.boundaries[k+1] {
			return m.boundaries[k], m.boundaries[k+1]
		}
	}
	return 0, 0
}

// MutateGeneAt swaps genes[i] with a uniformly random other position within
// the same sub-range.
func (m *MultiUnique[T]) MutateGeneAt(genes []T, i int, _ int, rng *rand.Rand) {
	start, end := m.subRangeOf(i)
	if end-start < 2 {
		return
	}
	j := start + rng.Intn(end-start-1)
	if j >= i {
		j++
	}
	genes[i], genes[j] = genes[j], genes[i]
}

func (m *MultiUnique[T]) CrossoverCapability() CrossoverCapability { return CrossoverPoints }

func (m *MultiUnique[T]) Neighbours(genes []T, _ int, _ *rand.Rand) [][]T {
	out := make([][]T, 0)
	for k := 0; k < len(m.boundaries)-1; k++ {
		start, end := m.boundaries[k], m.boundaries[k+1]
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				c := cloneSlice(genes)
				c[i], c[j] = c[j], c[i]
				out = append(out, c)
			}
		}
	}
	return out
}

func (m *MultiUnique[T]) ChromosomePermutationsSize() (*big.Int, bool) {
	total := big.NewInt(1)
	for _, a := range m.subAlphabets {
		total.Mul(total, factorial(len(a)))
	}
	return total, true
}

func (m *MultiUnique[T]) NeighbouringPopulationSize(_ []T) *big.Int {
	total := int64(0)
	for _, a := range m.subAlphabets {
		total += pairCount(len(a))
	}
	return big.NewInt(total)
}

func (m *MultiUnique[T]) SeedGenes() [][]T { return m.seeds }

func (m *MultiUnique[T]) ScaleLevels() int { return 0 }

// EnumerateAt decodes index as a mixed-radix number over each sub-range's
// factorial(len(sub)) digit, most-significant sub-range first, then decodes
// each digit into that sub-range's permutation.
func (m *MultiUnique[T]) EnumerateAt(index *big.Int) []T {
	digits := make([]*big.Int, len(m.subAlphabets))
	idx := new(big.Int).Set(index)
	for k := len(m.subAlphabets) - 1; k >= 0; k-- {
		f := factorial(len(m.subAlphabets[k]))
		q, r := new(big.Int), new(big.Int)
		q.DivMod(idx, f, r)
		digits[k] = r
		idx = q
	}
	genes := make([]T, 0, m.GenesSize())
	for k, a := range m.subAlphabets {
		genes = append(genes, permutationAt(a, digits[k])...)
	}
	return genes
}
