// Package chromosome defines the candidate-solution type the rest of the
// engine operates on: a gene sequence plus the metadata (fitness, age,
// content hash) that the fitness pipeline, operators and strategies need.
package chromosome

// Chromosome owns one candidate solution: an ordered gene sequence of fixed
// length plus run metadata. Whenever Genes changes, FitnessScore is cleared
// and GenesHash is recomputed — callers must go through SetGenes (or
// MutateAt, Swap) rather than mutating Genes directly, or the cache-key
// invariant in SPEC_FULL.md §3 is violated.
type Chromosome[T any] struct {
	Genes        []T
	FitnessScore *int64
	GenesHash    uint64
	Age          int
	IsOffspring  bool
}

// New builds a chromosome owning genes, with a freshly-computed hash and no
// fitness score.
func New[T any](genes []T) *Chromosome[T] {
	return &Chromosome[T]{
		Genes:     genes,
		GenesHash: Hash(genes),
	}
}

// Clone returns a deep copy: a fresh gene slice, same metadata.
func (c *Chromosome[T]) Clone() *Chromosome[T] {
	genes := make([]T, len(c.Genes))
	copy(genes, c.Genes)
	var score *int64
	if c.FitnessScore != nil {
		v := *c.FitnessScore
		score = &v
	}
	return &Chromosome[T]{
		Genes:        genes,
		FitnessScore: score,
		GenesHash:    c.GenesHash,
		Age:          c.Age,
		IsOffspring:  c.IsOffspring,
	}
}

// SetGenes replaces the gene sequence in place, reusing the existing slice's
// backing array when it has enough capacity (the recycling contract of
// SPEC_FULL.md/spec.md §4.3), clears the fitness score and recomputes the
// hash.
func (c *Chromosome[T]) SetGenes(genes []T) {
	if cap(c.Genes) >= len(genes) {
		c.Genes = c.Genes[:len(genes)]
		copy(c.Genes, genes)
	} else {
		c.Genes = append(c.Genes[:0], genes...)
	}
	c.FitnessScore = nil
	c.GenesHash = Hash(c.Genes)
}

// MutateAt applies mutate to the gene at position i and recomputes
// downstream metadata. mutate is expected to write genes[i] in place (the
// shape genotype.Genotype.MutateGeneAt already has).
func (c *Chromosome[T]) MutateAt(i int, mutate func(genes []T, i int)) {
	mutate(c.Genes, i)
	c.FitnessScore = nil
	c.GenesHash = Hash(c.Genes)
}

// Touch clears the fitness score and recomputes the genes hash. Operators
// that mutate c.Genes directly (in place, across several positions) call
// this once afterward instead of going through SetGenes/MutateAt.
func (c *Chromosome[T]) Touch() {
	c.FitnessScore = nil
	c.GenesHash = Hash(c.Genes)
}

// IsValid reports whether the chromosome carries a usable fitness score.
func (c *Chromosome[T]) IsValid() bool { return c.FitnessScore != nil }

// Reset clears transient per-generation state (fitness, age, offspring
// flag) ahead of being placed in a Population's recycling reservoir. The
// Genes slice's allocation is retained, not cleared, so the next Acquire can
// overwrite it without a fresh allocation.
func (c *Chromosome[T]) Reset() {
	c.FitnessScore = nil
	c.Age = 0
	c.IsOffspring = false
}
