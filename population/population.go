// Package population owns the active chromosome set and the recycling
// reservoir that lets the engine reuse gene-slice allocations across
// generations instead of letting the allocator churn on every selection and
// crossover.
package population

import "github.com/kdump/gev/chromosome"

// Population owns the active chromosome set for one strategy run, plus a
// reservoir of retired chromosomes whose gene-slice allocation is retained
// for reuse. See spec.md §4.3 for the full recycling contract.
type Population[T any] struct {
	Chromosomes []*chromosome.Chromosome[T]
	Recycled    []*chromosome.Chromosome[T]
}

// New returns an empty population.
func New[T any]() *Population[T] {
	return &Population[T]{}
}

// Acquire returns a chromosome carrying genes: a recycled chromosome with
// its Genes allocation overwritten if the reservoir is non-empty, or a
// fresh allocation otherwise.
func (p *Population[T]) Acquire(genes []T) *chromosome.Chromosome[T] {
	if n := len(p.Recycled); n > 0 {
		c := p.Recycled[n-1]
		p.Recycled = p.Recycled[:n-1]
		c.SetGenes(genes)
		c.Age = 0
		c.IsOffspring = false
		return c
	}
	return chromosome.New(genes)
}

// Recycle moves c into the reservoir: its transient state (fitness score,
// age, offspring flag) is cleared but its Genes allocation is retained.
func (p *Population[T]) Recycle(c *chromosome.Chromosome[T]) {
	c.Reset()
	p.Recycled = append(p.Recycled, c)
}

// RecycleAll recycles every chromosome in cs. cs may be a slice detached
// from p.Chromosomes (e.g. the losing half of a selection partition) —
// recycling a detached slice here is what prevents it from being silently
// dropped and leaking its allocation.
func (p *Population[T]) RecycleAll(cs []*chromosome.Chromosome[T]) {
	for _, c := range cs {
		p.Recycle(c)
	}
}

// Len returns the size of the active chromosome set.
func (p *Population[T]) Len() int { return len(p.Chromosomes) }

// Hashes returns the GenesHash of every active chromosome, in order. Used by
// the cardinality estimator and by MassDeduplication.
func (p *Population[T]) Hashes() []uint64 {
	out := make([]uint64, len(p.Chromosomes))
	for i, c := range p.Chromosomes {
		out[i] = c.GenesHash
	}
	return out
}
