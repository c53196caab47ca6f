package genotype

import (
	"math/big"
	"math/rand"
)

// Unique is a permutation genotype: genes_size = |alphabet| and every gene
// value appears exactly once. Only Clone/Rejuvenate crossover is legal;
// mutation is a swap between two positions.
type Unique[T comparable] struct {
	alphabet []T
	seeds    [][]T
}

// NewUnique builds a Unique genotype over alphabet.
func NewUnique[T comparable](alphabet []T) *Unique[T] {
	return &Unique[T]{alphabet: cloneSlice(alphabet)}
}

// WithSeedGenes returns a copy of u carrying the given seed permutations.
func (u *Unique[T]) WithSeedGenes(seeds [][]T) *Unique[T] {
	nu := *u
	nu.seeds = seeds
	return &nu
}

func (u *Unique[T]) GenesSize() int { return len(u.alphabet) }

func (u *Unique[T]) RandomGenes(rng *rand.Rand) []T {
	genes := cloneSlice(u.alphabet)
	rng.Shuffle(len(genes), func(i, j int) { genes[i], genes[j] = genes[j], genes[i] })
	return genes
}

func (u *Unique[T]) RandomAlleleAt(_ int, _ *rand.Rand) T {
	panic("genotype: RandomAlleleAt is not meaningful for Unique genotypes")
}

// MutateGeneAt swaps genes[i] with a uniformly random other position.
func (u *Unique[T]) MutateGeneAt(genes []T, i int, _ int, rng *rand.Rand) {
	if len(genes) < 2 {
		return
	}
	j := rng.Intn(len(genes) - 1)
	if j >= i {
		j++
	}
	genes[i], genes[j] = genes[j], genes[i]
}

func (u *Unique[T]) CrossoverCapability() CrossoverCapability { return CrossoverNone }

func (u *Unique[T]) Neighbours(genes []T, _ int, _ *rand.Rand) [][]T {
	n := len(genes)
	out := make([][]T, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := cloneSlice(genes)
			c[i], c[j] = c[j], c[i]
			out = append(out, c)
		}
	}
	return out
}

func (u *Unique[T]) ChromosomePermutationsSize() (*big.Int, bool) {
	return factorial(len(u.alphabet)), true
}

func (u *Unique[T]) NeighbouringPopulationSize(genes []T) *big.Int {
	return big.NewInt(pairCount(len(genes)))
}

func (u *Unique[T]) SeedGenes() [][]T { return u.seeds }

func (u *Unique[T]) ScaleLevels() int { return 0 }

// EnumerateAt decodes index (0 <= index < |alphabet|!) into the index-th
// permutation of the alphabet, via the factorial number system.
func (u *Unique[T]) EnumerateAt(index *big.Int) []T {
	return permutationAt(u.alphabet, index)
}
