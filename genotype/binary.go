package genotype

import (
	"math/big"
	"math/rand"
)

// Binary is a fixed-length bit-string genotype: each gene is an independent
// boolean with no structural invariant beyond its length.
type Binary struct {
	size  int
	seeds [][]bool
}

// NewBinary builds a Binary genotype with the given gene count.
func NewBinary(size int) *Binary {
	return &Binary{size: size}
}

// WithSeedGenes returns a copy of b carrying the given seed sequences.
func (b *Binary) WithSeedGenes(seeds [][]bool) *Binary {
	nb := *b
	nb.seeds = seeds
	return &nb
}

func (b *Binary) GenesSize() int { return b.size }

func (b *Binary) RandomGenes(rng *rand.Rand) []bool {
	genes := make([]bool, b.size)
	for i := range genes {
		genes[i] = rng.Intn(2) == 1
	}
	return genes
}

func (b *Binary) MutateGeneAt(genes []bool, i int, _ int, _ *rand.Rand) {
	genes[i] = !genes[i]
}

func (b *Binary) RandomAlleleAt(_ int, rng *rand.Rand) bool {
	return rng.Intn(2) == 1
}

func (b *Binary) CrossoverCapability() CrossoverCapability { return CrossoverBoth }

func (b *Binary) Neighbours(genes []bool, _ int, _ *rand.Rand) [][]bool {
	out := make([][]bool, 0, len(genes))
	for i := range genes {
		n := cloneSlice(genes)
		n[i] = !n[i]
		out = append(out, n)
	}
	return out
}

func (b *Binary) ChromosomePermutationsSize() (*big.Int, bool) {
	return new(big.Int).Lsh(big.NewInt(1), uint(b.size)), true
}

func (b *Binary) NeighbouringPopulationSize(genes []bool) *big.Int {
	return big.NewInt(int64(len(genes)))
}

func (b *Binary) SeedGenes() [][]bool { return b.seeds }

func (b *Binary) ScaleLevels() int { return 0 }

// EnumerateAt decodes index (0 <= index < 2^size) into its bit pattern,
// most-significant gene first, for Permutate's canonical enumeration order.
func (b *Binary) EnumerateAt(index *big.Int) []bool {
	genes := make([]bool, b.size)
	idx := new(big.Int).Set(index)
	one := big.NewInt(1)
	bit := new(big.Int)
	for i := b.size - 1; i >= 0; i-- {
		bit.And(idx, one)
		genes[i] = bit.Sign() != 0
		idx.Rsh(idx, 1)
	}
	return genes
}
