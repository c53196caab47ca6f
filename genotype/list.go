package genotype

import (
	"math/big"
	"math/rand"
)

// List draws every gene from one shared alphabet, with no per-position or
// uniqueness constraint.
type List[T comparable] struct {
	size     int
	alphabet []T
	seeds    [][]T
}

// NewList builds a List genotype of size genes drawing from alphabet.
func NewList[T comparable](size int, alphabet []T) *List[T] {
	return &List[T]{size: size, alphabet: cloneSlice(alphabet)}
}

// WithSeedGenes returns a copy of l carrying the given seed sequences.
func (l *List[T]) WithSeedGenes(seeds [][]T) *List[T] {
	nl := *l
	nl.seeds = seeds
	return &nl
}

func (l *List[T]) GenesSize() int { return l.size }

func (l *List[T]) RandomGenes(rng *rand.Rand) []T {
	genes := make([]T, l.size)
	for i := range genes {
		genes[i] = l.RandomAlleleAt(i, rng)
	}
	return genes
}

func (l *List[T]) RandomAlleleAt(_ int, rng *rand.Rand) T {
	return l.alphabet[rng.Intn(len(l.alphabet))]
}

func (l *List[T]) MutateGeneAt(genes []T, i int, _ int, rng *rand.Rand) {
	if len(l.alphabet) <= 1 {
		genes[i] = l.alphabet[0]
		return
	}
	current := genes[i]
	for {
		candidate := l.alphabet[rng.Intn(len(l.alphabet))]
		if candidate != current {
			genes[i] = candidate
			return
		}
	}
}

func (l *List[T]) CrossoverCapability() CrossoverCapability { return CrossoverBoth }

func (l *List[T]) Neighbours(genes []T, _ int, _ *rand.Rand) [][]T {
	out := make([][]T, 0, len(genes)*(len(l.alphabet)-1))
	for i := range genes {
		for _, allele := range l.alphabet {
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

func (l *List[T]) ChromosomePermutationsSize() (*big.Int, bool) {
	return new(big.Int).Exp(big.NewInt(int64(len(l.alphabet))), big.NewInt(int64(l.size)), nil), true
}

func (l *List[T]) NeighbouringPopulationSize(genes []T) *big.Int {
	return big.NewInt(int64(len(genes) * (len(l.alphabet) - 1)))
}

func (l *List[T]) SeedGenes() [][]T { return l.seeds }

func (l *List[T]) ScaleLevels() int { return 0 }

// EnumerateAt decodes index as a mixed-radix number, base len(alphabet),
// most-significant position first.
func (l *List[T]) EnumerateAt(index *big.Int) []T {
	genes := make([]T, l.size)
	base := big.NewInt(int64(len(l.alphabet)))
	idx := new(big.Int).Set(index)
	rem := new(big.Int)
	for i := l.size - 1; i >= 0; i-- {
		idx.DivMod(idx, base, rem)
		genes[i] = l.alphabet[rem.Int64()]
	}
	return genes
}
