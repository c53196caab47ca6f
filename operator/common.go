// Package operator implements the pluggable selection, crossover, mutation
// and extension operators that an Evolve or HillClimb strategy composes.
package operator

import (
	"math"
	"sort"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
)

func sortBest[T any](cs []*chromosome.Chromosome[T], ordering fitness.Ordering) {
	sort.SliceStable(cs, func(i, j int) bool {
		return fitness.Better(ordering, cs[i].FitnessScore, cs[j].FitnessScore)
	})
}

func clampCount(rate float64, target, max int) int {
	n := int(math.Round(rate * float64(target)))
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	return n
}

// splitByOffspring partitions cs into the offspring born this generation
// (age == 0, tagged by crossover) and the older parents, preserving order.
func splitByOffspring[T any](cs []*chromosome.Chromosome[T]) (offspring, parents []*chromosome.Chromosome[T]) {
	for _, c := range cs {
		if c.IsOffspring {
			offspring = append(offspring, c)
		} else {
			parents = append(parents, c)
		}
	}
	return offspring, parents
}

// proportional splits total between two pools in proportion to their sizes.
func proportional(total, a, b int) (int, int) {
	if a+b == 0 {
		return 0, 0
	}
	na := total * a / (a + b)
	nb := total - na
	return na, nb
}

// membership builds a pointer-identity set, used to compute the complement
// of a kept slice against the full population.
func membership[T any](cs []*chromosome.Chromosome[T]) map[*chromosome.Chromosome[T]]bool {
	set := make(map[*chromosome.Chromosome[T]]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}

func complement[T any](all []*chromosome.Chromosome[T], kept map[*chromosome.Chromosome[T]]bool) []*chromosome.Chromosome[T] {
	out := make([]*chromosome.Chromosome[T], 0, len(all)-len(kept))
	for _, c := range all {
		if !kept[c] {
			out = append(out, c)
		}
	}
	return out
}
