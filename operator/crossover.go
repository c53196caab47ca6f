package operator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/population"
)

// Crossover recombines (or clones, or replaces) survivors into new
// offspring, expanding the population by selectionRate × targetSize
// chromosomes tagged IsOffspring = true, Age = 0 (spec.md §4.4).
type Crossover[T any] interface {
	// Legal reports whether this operator may run against a genotype
	// advertising cap. The engine checks this once at build time
	// (spec.md §7 OperatorIncompatibility) and never mid-loop.
	Legal(cap genotype.CrossoverCapability) bool
	Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand)
}

func offspringCount(selectionRate float64, targetSize int) int {
	n := int(math.Round(selectionRate * float64(targetSize)))
	if n < 0 {
		n = 0
	}
	return n
}

func pickParent[T any](pool []*chromosome.Chromosome[T], rng *rand.Rand) *chromosome.Chromosome[T] {
	return pool[rng.Intn(len(pool))]
}

func pickTwoParents[T any](pool []*chromosome.Chromosome[T], rng *rand.Rand) (*chromosome.Chromosome[T], *chromosome.Chromosome[T]) {
	p1 := pickParent(pool, rng)
	if len(pool) == 1 {
		return p1, p1
	}
	p2 := pickParent(pool, rng)
	for p2 == p1 {
		p2 = pickParent(pool, rng)
	}
	return p1, p2
}

// cutPoint returns a random interior index in [1, size-1], or, when g
// partitions its gene vector into sub-ranges (MultiUnique), a boundary
// between two of them — so the cut preserves each sub-range's permutation
// invariant.
func cutPoint[T any](g genotype.Genotype[T], size int, rng *rand.Rand) int {
	if sr, ok := g.(genotype.SubRanged); ok {
		bounds := sr.SubRangeBoundaries()
		interior := bounds[1 : len(bounds)-1]
		if len(interior) == 0 {
			return size
		}
		return interior[rng.Intn(len(interior))]
	}
	if size <= 1 {
		return size
	}
	return 1 + rng.Intn(size-1)
}

func cutPoints[T any](g genotype.Genotype[T], size, n int, rng *rand.Rand) []int {
	if sr, ok := g.(genotype.SubRanged); ok {
		bounds := sr.SubRangeBoundaries()
		interior := append([]int(nil), bounds[1:len(bounds)-1]...)
		rng.Shuffle(len(interior), func(i, j int) { interior[i], interior[j] = interior[j], interior[i] })
		if n > len(interior) {
			n = len(interior)
		}
		picked := append([]int(nil), interior[:n]...)
		sort.Ints(picked)
		return picked
	}
	if size <= 1 {
		return nil
	}
	seen := make(map[int]bool, n)
	picked := make([]int, 0, n)
	for len(picked) < n && len(picked) < size-1 {
		c := 1 + rng.Intn(size-1)
		if seen[c] {
			continue
		}
		seen[c] = true
		picked = append(picked, c)
	}
	sort.Ints(picked)
	return picked
}

func emit[T any](pop *population.Population[T], genes []T) *chromosome.Chromosome[T] {
	c := pop.Acquire(genes)
	c.IsOffspring = true
	c.Age = 0
	return c
}

// CloneCrossover copies one random parent verbatim. Legal for every
// genotype, including Unique/MultiUnique.
type CloneCrossover[T any] struct{}

func (CloneCrossover[T]) Legal(genotype.CrossoverCapability) bool { return true }

func (CloneCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		parent := pickParent(pool, rng)
		genes := make([]T, len(parent.Genes))
		copy(genes, parent.Genes)
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}

// RejuvenateCrossover produces fresh, independently random offspring rather
// than recombining parents. Legal for every genotype.
type RejuvenateCrossover[T any] struct{}

func (RejuvenateCrossover[T]) Legal(genotype.CrossoverCapability) bool { return true }

func (RejuvenateCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	for i := 0; i < n; i++ {
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, g.RandomGenes(rng)))
	}
}

// SinglePointCrossover swaps the tails of two parents at one random cut.
// Illegal for Unique; legal for MultiUnique only because cutPoint restricts
// to sub-range boundaries.
type SinglePointCrossover[T any] struct{}

func (SinglePointCrossover[T]) Legal(cap genotype.CrossoverCapability) bool { return cap.AllowsPoints() }

func (SinglePointCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	size := g.GenesSize()
	for i := 0; i < n; i++ {
		p1, p2 := pickTwoParents(pool, rng)
		var genes []T
		if rng.Float64() < crossoverRate {
			cut := cutPoint(g, size, rng)
			genes = make([]T, size)
			copy(genes[:cut], p1.Genes[:cut])
			copy(genes[cut:], p2.Genes[cut:])
		} else {
			genes = make([]T, size)
			copy(genes, p1.Genes)
		}
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}

// MultiPointCrossover cuts at several random points (or sub-range
// boundaries) and alternates segments between the two parents.
type MultiPointCrossover[T any] struct {
	Points int
}

func (MultiPointCrossover[T]) Legal(cap genotype.CrossoverCapability) bool { return cap.AllowsPoints() }

func (c MultiPointCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	points := c.Points
	if points < 1 {
		points = 1
	}
	size := g.GenesSize()
	for i := 0; i < n; i++ {
		p1, p2 := pickTwoParents(pool, rng)
		genes := make([]T, size)
		if rng.Float64() < crossoverRate {
			cuts := cutPoints(g, size, points, rng)
			from1 := true
			prev := 0
			for _, cut := range append(cuts, size) {
				if from1 {
					copy(genes[prev:cut], p1.Genes[prev:cut])
				} else {
					copy(genes[prev:cut], p2.Genes[prev:cut])
				}
				from1 = !from1
				prev = cut
			}
		} else {
			copy(genes, p1.Genes)
		}
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}

// SingleGeneCrossover exchanges exactly one random gene between two
// parents. Illegal for Unique and MultiUnique: swapping a lone gene across
// permutations would duplicate an allele.
type SingleGeneCrossover[T any] struct{}

func (SingleGeneCrossover[T]) Legal(cap genotype.CrossoverCapability) bool {
	return cap.AllowsIndices()
}

func (SingleGeneCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	size := g.GenesSize()
	for i := 0; i < n; i++ {
		p1, p2 := pickTwoParents(pool, rng)
		genes := make([]T, size)
		copy(genes, p1.Genes)
		if rng.Float64() < crossoverRate && size > 0 {
			idx := rng.Intn(size)
			genes[idx] = p2.Genes[idx]
		}
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}

// MultiGeneCrossover exchanges GeneCount random genes (positions sampled
// without replacement) between two parents.
type MultiGeneCrossover[T any] struct {
	GeneCount int
}

func (MultiGeneCrossover[T]) Legal(cap genotype.CrossoverCapability) bool {
	return cap.AllowsIndices()
}

func (c MultiGeneCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	size := g.GenesSize()
	k := c.GeneCount
	if k > size {
		k = size
	}
	for i := 0; i < n; i++ {
		p1, p2 := pickTwoParents(pool, rng)
		genes := make([]T, size)
		copy(genes, p1.Genes)
		if rng.Float64() < crossoverRate {
			idxs := rng.Perm(size)[:k]
			for _, idx := range idxs {
				genes[idx] = p2.Genes[idx]
			}
		}
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}

// UniformCrossover takes each gene independently from either parent with
// p=0.5.
type UniformCrossover[T any] struct{}

func (UniformCrossover[T]) Legal(cap genotype.CrossoverCapability) bool {
	return cap.AllowsIndices()
}

func (UniformCrossover[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], targetSize int, selectionRate, crossoverRate float64, rng *rand.Rand) {
	n := offspringCount(selectionRate, targetSize)
	pool := pop.Chromosomes
	if len(pool) == 0 {
		return
	}
	size := g.GenesSize()
	for i := 0; i < n; i++ {
		p1, p2 := pickTwoParents(pool, rng)
		genes := make([]T, size)
		if rng.Float64() < crossoverRate {
			for j := 0; j < size; j++ {
				if rng.Intn(2) == 0 {
					genes[j] = p1.Genes[j]
				} else {
					genes[j] = p2.Genes[j]
				}
			}
		} else {
			copy(genes, p1.Genes)
		}
		pop.Chromosomes = append(pop.Chromosomes, emit(pop, genes))
	}
}
