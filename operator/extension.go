package operator

import (
	"math"
	"math/rand"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/population"
)

// Extension is a diversity-rescue operator. It triggers only when the
// strategy's measured cardinality is at or below Threshold(); elitismRate is
// the strategy's globally configured elitism rate, consulted by operators
// that don't carry their own (MassGenesis).
type Extension[T any] interface {
	Threshold() float64
	Apply(pop *population.Population[T], g genotype.Genotype[T], elitismRate float64, ordering fitness.Ordering, rng *rand.Rand)
}

// MassExtinction keeps a SurvivalRate fraction plus ElitismRate elites and
// recycles the rest; crossover re-expands the population next generation.
type MassExtinction[T any] struct {
	CardinalityThreshold float64
	SurvivalRate         float64
	ElitismRate          float64
}

func (e *MassExtinction[T]) Threshold() float64 { return e.CardinalityThreshold }

func (e *MassExtinction[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], _ float64, ordering fitness.Ordering, rng *rand.Rand) {
	all := append([]*chromosome.Chromosome[T](nil), pop.Chromosomes...)
	sortBest(all, ordering)
	survivorCount := clampCount(e.SurvivalRate, len(all), len(all))
	eliteCount := clampCount(e.ElitismRate, len(all), len(all))
	keepCount := survivorCount
	if eliteCount > keepCount {
		keepCount = eliteCount
	}
	kept := append([]*chromosome.Chromosome[T](nil), all[:keepCount]...)
	losers := all[keepCount:]
	pop.Chromosomes = kept
	pop.RecycleAll(losers)
}

// MassGenesis replaces every non-elite chromosome with a fresh random one.
type MassGenesis[T any] struct {
	CardinalityThreshold float64
}

func (e *MassGenesis[T]) Threshold() float64 { return e.CardinalityThreshold }

func (e *MassGenesis[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], elitismRate float64, ordering fitness.Ordering, rng *rand.Rand) {
	all := append([]*chromosome.Chromosome[T](nil), pop.Chromosomes...)
	sortBest(all, ordering)
	eliteCount := clampCount(elitismRate, len(all), len(all))
	for i := eliteCount; i < len(all); i++ {
		all[i].SetGenes(g.RandomGenes(rng))
		all[i].Age = 0
	}
	pop.Chromosomes = all
}

// MassDegeneration applies Rounds of random mutation to every non-elite
// chromosome to forcibly spread them out.
type MassDegeneration[T any] struct {
	CardinalityThreshold float64
	Rounds               int
	ElitismRate          float64
}

func (e *MassDegeneration[T]) Threshold() float64 { return e.CardinalityThreshold }

func (e *MassDegeneration[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], _ float64, ordering fitness.Ordering, rng *rand.Rand) {
	all := append([]*chromosome.Chromosome[T](nil), pop.Chromosomes...)
	sortBest(all, ordering)
	eliteCount := clampCount(e.ElitismRate, len(all), len(all))
	size := g.GenesSize()
	for i := eliteCount; i < len(all); i++ {
		c := all[i]
		for r := 0; r < e.Rounds; r++ {
			idx := rng.Intn(size)
			g.MutateGeneAt(c.Genes, idx, 0, rng)
		}
		c.Touch()
	}
	pop.Chromosomes = all
}

// MassDeduplication replaces every chromosome whose genes_hash duplicates an
// already-kept one with a fresh random chromosome.
type MassDeduplication[T any] struct {
	CardinalityThreshold float64
}

func (e *MassDeduplication[T]) Threshold() float64 { return e.CardinalityThreshold }

func (e *MassDeduplication[T]) Apply(pop *population.Population[T], g genotype.Genotype[T], _ float64, _ fitness.Ordering, rng *rand.Rand) {
	seen := make(map[uint64]bool, len(pop.Chromosomes))
	for _, c := range pop.Chromosomes {
		if seen[c.GenesHash] {
			c.SetGenes(g.RandomGenes(rng))
			c.Age = 0
			continue
		}
		seen[c.GenesHash] = true
	}
}

// NoopExtension never triggers and does nothing; it is the baseline when no
// diversity rescue is configured.
type NoopExtension[T any] struct{}

func (NoopExtension[T]) Threshold() float64 { return math.Inf(-1) }

func (NoopExtension[T]) Apply(*population.Population[T], genotype.Genotype[T], float64, fitness.Ordering, *rand.Rand) {
}
