package genotype

import (
	"math/big"
	"math/rand"
)

// MultiList draws gene i from its own per-position alphabet: gene i ∈
// alphabet_i.
type MultiList[T comparable] struct {
	alphabets [][]T
	seeds     [][]T
}

// NewMultiList builds a MultiList genotype; genes_size = len(alphabets).
func NewMultiList[T comparable](alphabets [][]T) *MultiList[T] {
	cloned := make([][]T, len(alphabets))
	for i, a := range alphabets {
		cloned[i] = cloneSlice(a)
	}
	return &MultiList[T]{alphabets: cloned}
}

// WithSeedGenes returns a copy of m carrying the given seed sequences.
func (m *MultiList[T]) WithSeedGenes(seeds [][]T) *MultiList[T] {
	nm := *m
	nm.seeds = seeds
	return &nm
}

func (m *MultiList[T]) GenesSize() int { return len(m.alphabets) }

func (m *MultiList[T]) RandomGenes(rng *rand.Rand) []T {
	genes := make([]T, len(m.alphabets))
	for i := range genes {
		genes[i] = m.RandomAlleleAt(i, rng)
	}
	return genes
}

func (m *MultiList[T]) RandomAlleleAt(i int, rng *rand.Rand) T {
	a := m.alphabets[i]
	return a[rng.Intn(len(a))]
}

func (m *MultiList[T]) MutateGeneAt(genes []T, i int, _ int, rng *rand.Rand) {
	a := m.alphabets[i]
	if len(a) <= 1 {
		genes[i] = a[0]
		return
	}
	current := genes[i]
	for {
		candidate := a[rng.Intn(len(a))]
		if candidate != current {
			genes[i] = candidate
			return
		}
	}
}

func (m *MultiList[T]) CrossoverCapability() CrossoverCapability { return CrossoverBoth }

func (m *MultiList[T]) Neighbours(genes []T, _ int, _ *rand.Rand) [][]T {
	out := make([][]T, 0)
	for i, a := range m.alphabets {
		for _, allele := range a {
			if allele == genes[i] {
				continue
			}
			n := cloneSlice(genes)
			n[i] = allele
			out = append(out, n)
		}
	}
	return out
}

func (m *MultiList[T]) ChromosomePermutationsSize() (*big.Int, bool) {
	total := big.NewInt(1)
	for _, a := range m.alphabets {
		total.Mul(total, big.NewInt(int64(len(a))))
	}
	return total, true
}

func (m *MultiList[T]) NeighbouringPopulationSize(_ []T) *big.Int {
	total := int64(0)
	for _, a := range m.alphabets {
		total += int64(len(a) - 1)
	}
	return big.NewInt(total)
}

func (m *MultiList[T]) SeedGenes() [][]T { return m.seeds }

func (m *MultiList[T]) ScaleLevels() int { return 0 }

// EnumerateAt decodes index as a mixed-radix number, base len(alphabets[i])
// per position, with position 0 as the most-significant digit.
func (m *MultiList[T]) EnumerateAt(index *big.Int) []T {
	genes := make([]T, len(m.alphabets))
	idx := new(big.Int).Set(index)
	rem := new(big.Int)
	for i := len(m.alphabets) - 1; i >= 0; i-- {
		base := big.NewInt(int64(len(m.alphabets[i])))
		idx.DivMod(idx, base, rem)
		genes[i] = m.alphabets[i][rem.Int64()]
	}
	return genes
}
