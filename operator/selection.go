package operator

import (
	"math/rand"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/population"
)

// Selector truncates a population down to its surviving set ahead of
// crossover's expansion, recycling every chromosome it drops so the
// recycling reservoir of spec.md §4.3 never leaks an allocation.
//
// None-scored chromosomes rank worst regardless of ordering and are never
// selected ahead of a Some-scored one (spec.md §8 property 7).
type Selector[T any] interface {
	Select(pop *population.Population[T], targetSize int, replacementRate, elitismRate float64, ordering fitness.Ordering, rng *rand.Rand)
}

// survivorPlan computes how many chromosomes survive selection in total and
// how many of those are unconditional elites.
func survivorPlan(targetSize int, replacementRate, elitismRate float64, total int) (survivors, elites int) {
	survivors = clampCount(replacementRate, targetSize, total)
	elites = clampCount(elitismRate, targetSize, survivors)
	return survivors, elites
}

// EliteSelector sorts the population by fitness, keeps the elite fraction
// unconditionally, then fills the remaining survivor slots with the
// top-ranked offspring and parents in proportion to their pool sizes.
type EliteSelector[T any] struct{}

func (s *EliteSelector[T]) Select(pop *population.Population[T], targetSize int, replacementRate, elitismRate float64, ordering fitness.Ordering, rng *rand.Rand) {
	all := append([]*chromosome.Chromosome[T](nil), pop.Chromosomes...)
	sortBest(all, ordering)

	survivors, eliteCount := survivorPlan(targetSize, replacementRate, elitismRate, len(all))
	kept := make([]*chromosome.Chromosome[T], 0, survivors)
	if eliteCount > len(all) {
		eliteCount = len(all)
	}
	kept = append(kept, all[:eliteCount]...)

	rest := all[eliteCount:]
	offspring, parents := splitByOffspring(rest)
	remaining := survivors - len(kept)
	nOff, nPar := proportional(remaining, len(offspring), len(parents))
	if nOff > len(offspring) {
		nOff = len(offspring)
	}
	if nPar > len(parents) {
		nPar = len(parents)
	}
	kept = append(kept, offspring[:nOff]...)
	kept = append(kept, parents[:nPar]...)

	keptSet := membership(kept)
	losers := complement(all, keptSet)

	pop.Chromosomes = kept
	pop.RecycleAll(losers)
}

// TournamentSelector repeats, replacement_rate × target_population_size
// times, sampling tournament_size chromosomes uniformly from the candidate
// pool and keeping the best — run independently over the offspring and
// parent pools after elites are reserved.
type TournamentSelector[T any] struct {
	TournamentSize int
}

func (s *TournamentSelector[T]) Select(pop *population.Population[T], targetSize int, replacementRate, elitismRate float64, ordering fitness.Ordering, rng *rand.Rand) {
	all := append([]*chromosome.Chromosome[T](nil), pop.Chromosomes...)
	sortBest(all, ordering)

	survivors, eliteCount := survivorPlan(targetSize, replacementRate, elitismRate, len(all))
	if eliteCount > len(all) {
		eliteCount = len(all)
	}
	kept := make([]*chromosome.Chromosome[T], 0, survivors)
	kept = append(kept, all[:eliteCount]...)

	rest := all[eliteCount:]
	offspring, parents := splitByOffspring(rest)
	remaining := survivors - len(kept)
	nOff, nPar := proportional(remaining, len(offspring), len(parents))

	tSize := s.TournamentSize
	if tSize < 2 {
		tSize = 2
	}

	pickedOff, _ := tournamentPick(offspring, nOff, tSize, ordering, rng)
	pickedPar, _ := tournamentPick(parents, nPar, tSize, ordering, rng)
	kept = append(kept, pickedOff...)
	kept = append(kept, pickedPar...)

	keptSet := membership(kept)
	losers := complement(all, keptSet)

	pop.Chromosomes = kept
	pop.RecycleAll(losers)
}

// tournamentPick draws n winners from pool without letting a chromosome win
// twice: each round samples tSize contenders from what's left, keeps the
// best, and removes it from the pool before the next round.
func tournamentPick[T any](pool []*chromosome.Chromosome[T], n, tSize int, ordering fitness.Ordering, rng *rand.Rand) (picked, remaining []*chromosome.Chromosome[T]) {
	remaining = append([]*chromosome.Chromosome[T](nil), pool...)
	picked = make([]*chromosome.Chromosome[T], 0, n)
	for len(picked) < n && len(remaining) > 0 {
		size := tSize
		if size > len(remaining) {
			size = len(remaining)
		}
		bestIdx := rng.Intn(len(remaining))
		for k := 1; k < size; k++ {
			idx := rng.Intn(len(remaining))
			if fitness.Better(ordering, remaining[idx].FitnessScore, remaining[bestIdx].FitnessScore) {
				bestIdx = idx
			}
		}
		picked = append(picked, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return picked, remaining
}
