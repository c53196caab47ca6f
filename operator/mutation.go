package operator

import (
	"math"
	"math/rand"

	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/population"
)

// Mutator perturbs a (post-crossover) population in place. scaleIndex is
// forwarded to numeric genotypes under PolicyScaled; cardinality is the
// population's current diversity estimate (spec.md §4.9), consulted only by
// the Dynamic variants.
type Mutator[T any] interface {
	Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, cardinality float64, rng *rand.Rand)
}

func randomDistinctIndices(size, n int, rng *rand.Rand) []int {
	if n > size {
		n = size
	}
	return rng.Perm(size)[:n]
}

// SingleGeneMutation mutates exactly one random gene with probability Rate.
type SingleGeneMutation[T any] struct {
	Rate float64
}

func (m *SingleGeneMutation[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, _ float64, rng *rand.Rand) {
	for _, c := range pop.Chromosomes {
		if rng.Float64() >= m.Rate {
			continue
		}
		i := rng.Intn(g.GenesSize())
		c.MutateAt(i, func(genes []T, idx int) { g.MutateGeneAt(genes, idx, scaleIndex, rng) })
	}
}

// MultiGeneMutation mutates between 1 and NMax genes (positions sampled
// without replacement) with probability Rate.
type MultiGeneMutation[T any] struct {
	NMax int
	Rate float64
}

func (m *MultiGeneMutation[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, _ float64, rng *rand.Rand) {
	size := g.GenesSize()
	for _, c := range pop.Chromosomes {
		if rng.Float64() >= m.Rate {
			continue
		}
		nMax := m.NMax
		if nMax < 1 {
			nMax = 1
		}
		n := 1 + rng.Intn(nMax)
		for _, idx := range randomDistinctIndices(size, n, rng) {
			g.MutateGeneAt(c.Genes, idx, scaleIndex, rng)
		}
		c.Touch()
	}
}

// MultiGeneRangeMutation mutates a count of genes sampled uniformly from
// [A, B], with probability Rate.
type MultiGeneRangeMutation[T any] struct {
	A, B int
	Rate float64
}

func (m *MultiGeneRangeMutation[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, _ float64, rng *rand.Rand) {
	size := g.GenesSize()
	lo, hi := m.A, m.B
	if lo < 1 {
		lo = 1
	}
	if hi > size {
		hi = size
	}
	if hi < lo {
		hi = lo
	}
	for _, c := range pop.Chromosomes {
		if rng.Float64() >= m.Rate {
			continue
		}
		n := lo
		if hi > lo {
			n = lo + rng.Intn(hi-lo+1)
		}
		for _, idx := range randomDistinctIndices(size, n, rng) {
			g.MutateGeneAt(c.Genes, idx, scaleIndex, rng)
		}
		c.Touch()
	}
}

// SingleGeneDynamicMutation adapts its mutation probability by ±Step each
// generation to drive the population's measured cardinality toward
// TargetCardinality, then mutates one random gene per chromosome at that
// probability.
type SingleGeneDynamicMutation[T any] struct {
	Step              float64
	TargetCardinality float64
	Rate              float64
}

// NewSingleGeneDynamicMutation builds a dynamic single-gene mutator starting
// at initialRate.
func NewSingleGeneDynamicMutation[T any](initialRate, step, targetCardinality float64) *SingleGeneDynamicMutation[T] {
	return &SingleGeneDynamicMutation[T]{Rate: initialRate, Step: step, TargetCardinality: targetCardinality}
}

func (m *SingleGeneDynamicMutation[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, cardinality float64, rng *rand.Rand) {
	m.adapt(cardinality)
	for _, c := range pop.Chromosomes {
		if rng.Float64() >= m.Rate {
			continue
		}
		i := rng.Intn(g.GenesSize())
		c.MutateAt(i, func(genes []T, idx int) { g.MutateGeneAt(genes, idx, scaleIndex, rng) })
	}
}

func (m *SingleGeneDynamicMutation[T]) adapt(cardinality float64) {
	switch {
	case cardinality < m.TargetCardinality:
		m.Rate += m.Step
	case cardinality > m.TargetCardinality:
		m.Rate -= m.Step
	}
	m.Rate = clamp01(m.Rate)
}

// MultiGeneDynamicMutation adapts both its mutation probability and its gene
// count by ±Step each generation to drive cardinality toward
// TargetCardinality.
type MultiGeneDynamicMutation[T any] struct {
	NMax              int
	Step              float64
	TargetCardinality float64
	Rate              float64

	current float64 // current gene count, adapted gradually; initialized on first Apply
}

// NewMultiGeneDynamicMutation builds a dynamic multi-gene mutator starting
// at initialRate and half of nMax genes per mutation.
func NewMultiGeneDynamicMutation[T any](nMax int, initialRate, step, targetCardinality float64) *MultiGeneDynamicMutation[T] {
	return &MultiGeneDynamicMutation[T]{
		NMax:              nMax,
		Rate:              initialRate,
		Step:              step,
		TargetCardinality: targetCardinality,
		current:           math.Max(1, float64(nMax)/2),
	}
}

func (m *MultiGeneDynamicMutation[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], scaleIndex int, cardinality float64, rng *rand.Rand) {
	size := g.GenesSize()
	var direction float64
	switch {
	case cardinality < m.TargetCardinality:
		direction = 1
	case cardinality > m.TargetCardinality:
		direction = -1
	}
	m.Rate = clamp01(m.Rate + direction*m.Step)
	nMax := m.NMax
	if nMax < 1 {
		nMax = 1
	}
	m.current += direction * m.Step * float64(nMax)
	if m.current < 1 {
		m.current = 1
	}
	if m.current > float64(nMax) {
		m.current = float64(nMax)
	}
	n := int(math.Round(m.current))

	for _, c := range pop.Chromosomes {
		if rng.Float64() >= m.Rate {
			continue
		}
		for _, idx := range randomDistinctIndices(size, n, rng) {
			g.MutateGeneAt(c.Genes, idx, scaleIndex, rng)
		}
		c.Touch()
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
