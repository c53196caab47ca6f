// Package genotype describes search spaces: the shape of a chromosome's gene
// sequence and the rules for sampling, mutating and enumerating neighbours of
// it while preserving whatever structural invariant that shape requires.
package genotype

import (
	"math/big"
	"math/rand"
)

// CrossoverCapability advertises which recombination styles are legal for a
// genotype. Uniqueness-preserving variants restrict what a crossover
// operator may do; see the per-operator requirement in package operator.
type CrossoverCapability int

const (
	// CrossoverNone means only whole-chromosome operators (Clone,
	// Rejuvenate) are legal; gene-level and point-level exchange would
	// break the structural invariant.
	CrossoverNone CrossoverCapability = iota
	// CrossoverIndices allows gene-level exchange (SingleGene, MultiGene,
	// Uniform) at arbitrary positions.
	CrossoverIndices
	// CrossoverPoints allows point-level exchange (SinglePoint,
	// MultiPoint), with cuts restricted to SubRanged boundaries when the
	// genotype implements SubRanged.
	CrossoverPoints
	// CrossoverBoth allows both styles.
	CrossoverBoth
)

// AllowsIndices reports whether gene-level (index) crossover is legal.
func (c CrossoverCapability) AllowsIndices() bool {
	return c == CrossoverIndices || c == CrossoverBoth
}

// AllowsPoints reports whether point-level crossover is legal.
func (c CrossoverCapability) AllowsPoints() bool {
	return c == CrossoverPoints || c == CrossoverBoth
}

// MutationPolicy selects how a numeric gene is perturbed. Only Range and
// MultiRange genotypes carry a mutation policy; the other variants ignore it.
type MutationPolicy int

const (
	// PolicyRandom samples uniformly within the gene's bounds.
	PolicyRandom MutationPolicy = iota
	// PolicyRelative steps by a fixed delta, in a random sign, clamped to bounds.
	PolicyRelative
	// PolicyScaled steps by a delta drawn from a shrinking ladder indexed
	// by the strategy's current scale_index.
	PolicyScaled
	// PolicyDiscrete treats the gene as integer-valued; mutation draws
	// a uniformly random integer within bounds, which may equal the
	// current value.
	PolicyDiscrete
)

// Genotype is implemented by every search-space descriptor. T is the allele
// type held in a chromosome's gene slice (bool, an integer kind, a float
// kind, or string, depending on variant).
//
// Genotypes are immutable after construction: there is no setter that
// changes genes_size, bounds or alphabets once built. WithSeedGenes-style
// constructors on each concrete variant return a new value.
type Genotype[T any] interface {
	// GenesSize returns the fixed gene-sequence length for this run.
	GenesSize() int

	// RandomGenes returns a gene sequence satisfying the structural invariant.
	RandomGenes(rng *rand.Rand) []T

	// MutateGeneAt mutates genes in place around position i, preserving
	// the structural invariant. For Unique/MultiUnique this is a swap
	// with another position; scaleIndex is only consulted by numeric
	// genotypes under PolicyScaled.
	MutateGeneAt(genes []T, i int, scaleIndex int, rng *rand.Rand)

	// RandomAlleleAt draws a fresh allele for position i. Not meaningful
	// for Unique/MultiUnique (panics).
	RandomAlleleAt(i int, rng *rand.Rand) T

	// CrossoverCapability advertises which recombination styles are legal.
	CrossoverCapability() CrossoverCapability

	// Neighbours returns every gene vector reachable by perturbing exactly
	// one position of genes, per the per-variant neighbour rules of
	// SPEC_FULL.md/spec.md §4.1. Its length must equal
	// NeighbouringPopulationSize(genes).
	Neighbours(genes []T, scaleIndex int, rng *rand.Rand) [][]T

	// ChromosomePermutationsSize returns the exact size of the enumerable
	// space, or (nil, false) when the space is uncountable (continuous
	// numeric ranges without a discrete policy).
	ChromosomePermutationsSize() (*big.Int, bool)

	// NeighbouringPopulationSize returns the steepest-ascent neighbourhood
	// cost estimate for a given gene vector.
	NeighbouringPopulationSize(genes []T) *big.Int

	// SeedGenes returns the ordered seed gene sequences configured at
	// construction, consumed cyclically before random sampling during
	// population initialization. May be empty.
	SeedGenes() [][]T

	// ScaleLevels returns the number of rungs in the mutation-step ladder
	// for genotypes carrying a PolicyScaled gene, or 0 if none do.
	ScaleLevels() int
}

// SubRanged is implemented by genotypes whose gene vector is partitioned
// into independently-permuted sub-ranges (MultiUnique). Point-level
// crossover must cut only at these boundaries to preserve each sub-range's
// uniqueness.
type SubRanged interface {
	// SubRangeBoundaries returns the sorted boundary indices, including 0
	// and genes_size, delimiting each sub-range.
	SubRangeBoundaries() []int
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
