package genotype

import (
	"math/big"
	"math/rand"
)

// Range is a numeric genotype with shared inclusive bounds across all
// positions: every gene ∈ [min, max]. Its single MutationPolicy governs how
// MutateGeneAt and Neighbours perturb a gene.
type Range[T Numeric] struct {
	size          int
	min, max      T
	policy        MutationPolicy
	relativeDelta T   // consulted when policy == PolicyRelative
	scaleLadder   []T // consulted when policy == PolicyScaled; shrinking deltas
	seeds         [][]T
}

// RangeConfig parameterizes NewRange.
type RangeConfig[T Numeric] struct {
	Size          int
	Min, Max      T
	Policy        MutationPolicy
	RelativeDelta T
	ScaleLadder   []T
}

// NewRange builds a Range genotype from cfg.
func NewRange[T Numeric](cfg RangeConfig[T]) *Range[T] {
	return &Range[T]{
		size:          cfg.Size,
		min:           cfg.Min,
		max:           cfg.Max,
		policy:        cfg.Policy,
		relativeDelta: cfg.RelativeDelta,
		scaleLadder:   cloneSlice(cfg.ScaleLadder),
	}
}

// WithSeedGenes returns a copy of r carrying the given seed sequences.
func (r *Range[T]) WithSeedGenes(seeds [][]T) *Range[T] {
	nr := *r
	nr.seeds = seeds
	return &nr
}

func (r *Range[T]) GenesSize() int { return r.size }

func (r *Range[T]) RandomGenes(rng *rand.Rand) []T {
	genes := make([]T, r.size)
	for i := range genes {
		genes[i] = randInRange(r.min, r.max, rng)
	}
	return genes
}

func (r *Range[T]) RandomAlleleAt(_ int, rng *rand.Rand) T {
	return randInRange(r.min, r.max, rng)
}

func (r *Range[T]) MutateGeneAt(genes []T, i int, scaleIndex int, rng *rand.Rand) {
	genes[i] = numericMutate(genes[i], r.min, r.max, r.policy, r.relativeDelta, r.scaleLadder, scaleIndex, rng)
}

func (r *Range[T]) CrossoverCapability() CrossoverCapability { return CrossoverBoth }

func (r *Range[T]) Neighbours(genes []T, scaleIndex int, rng *rand.Rand) [][]T {
	out := make([][]T, 0, len(genes)*2)
	for i := range genes {
		for _, alt := range numericAlternatives(genes[i], r.min, r.max, r.policy, r.relativeDelta, r.scaleLadder, scaleIndex, rng) {
			n := cloneSlice(genes)
			n[i] = alt
			out = append(out, n)
		}
	}
	return out
}

func (r *Range[T]) ChromosomePermutationsSize() (*big.Int, bool) {
	if !numericIsCountable(r.policy) {
		return nil, false
	}
	span := big.NewInt(int64(r.max) - int64(r.min) + 1)
	return new(big.Int).Exp(span, big.NewInt(int64(r.size)), nil), true
}

func (r *Range[T]) NeighbouringPopulationSize(genes []T) *big.Int {
	return big.NewInt(int64(len(genes)) * numericNeighbourCount(r.min, r.max, r.policy))
}

func (r *Range[T]) SeedGenes() [][]T { return r.seeds }

func (r *Range[T]) ScaleLevels() int {
	if r.policy == PolicyScaled {
		return len(r.scaleLadder)
	}
	return 0
}

// EnumerateAt decodes index as a mixed-radix number, base (max-min+1), most-
// significant position first. Only meaningful when ChromosomePermutationsSize
// reports countable (PolicyDiscrete).
func (r *Range[T]) EnumerateAt(index *big.Int) []T {
	genes := make([]T, r.size)
	span := big.NewInt(int64(r.max) - int64(r.min) + 1)
	idx := new(big.Int).Set(index)
	rem := new(big.Int)
	for i := r.size - 1; i >= 0; i-- {
		idx.DivMod(idx, span, rem)
		genes[i] = r.min + T(rem.Int64())
	}
	return genes
}
