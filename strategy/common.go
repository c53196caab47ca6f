// Package strategy implements the three search strategies of the engine —
// Evolve (generational loop), HillClimb (local search) and Permutate
// (exhaustive enumeration) — each assembled through a fluent builder and
// each exposing the same Result/Reporter/stop-condition contract.
package strategy

import (
	"time"

	"github.com/google/uuid"
	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	gonumstat "gonum.org/v1/gonum/stat"
)

// StopConfig names the conditions under which Evolve and HillClimb halt. At
// least one field must be set (enforced at Build()).
type StopConfig struct {
	TargetFitnessScore *int64
	MaxStaleGenerations *int
	MaxGenerations      *int
}

func (s StopConfig) configured() bool {
	return s.TargetFitnessScore != nil || s.MaxStaleGenerations != nil || s.MaxGenerations != nil
}

// evaluate reports whether any configured condition has fired, and its name.
func (s StopConfig) evaluate(ordering fitness.Ordering, best *int64, generation, stale int) (bool, string) {
	if s.TargetFitnessScore != nil && best != nil {
		reached := *best >= *s.TargetFitnessScore
		if ordering == fitness.Minimize {
			reached = *best <= *s.TargetFitnessScore
		}
		if reached {
			return true, "target_fitness_score"
		}
	}
	if s.MaxStaleGenerations != nil && stale >= *s.MaxStaleGenerations {
		return true, "max_stale_generations"
	}
	if s.MaxGenerations != nil && generation >= *s.MaxGenerations {
		return true, "max_generations"
	}
	return false, ""
}

// Snapshot is delivered to a Reporter once per generation/iteration. It has
// no effect on the run; it's a synchronous diagnostic channel only.
type Snapshot struct {
	RunID            uuid.UUID
	Strategy         string
	Generation       int
	BestFitness      *int64
	MeanFitness      float64
	StdDevFitness    float64
	Cardinality      float64
	StaleGenerations int
	Elapsed          time.Duration
}

// Reporter observes per-generation progress. No effect on semantics.
type Reporter func(Snapshot)

// Result is what a strategy's Call returns: the best chromosome found, or an
// EmptyResult-equivalent state if every chromosome in the final population
// scored None.
type Result[T any] struct {
	BestGenes        []T
	BestFitnessScore *int64
	Stopped          string
	Generations      int
}

// HasSolution reports whether any chromosome ever scored.
func (r Result[T]) HasSolution() bool { return r.BestFitnessScore != nil }

// scoreStats computes the mean and standard deviation of every Some-scored
// chromosome's fitness, for the Snapshot the Reporter receives.
func scoreStats[T any](cs []*chromosome.Chromosome[T]) (mean, stddev float64) {
	scores := make([]float64, 0, len(cs))
	for _, c := range cs {
		if c.FitnessScore != nil {
			scores = append(scores, float64(*c.FitnessScore))
		}
	}
	if len(scores) == 0 {
		return 0, 0
	}
	return gonumstat.MeanStdDev(scores, nil)
}

// updateBest compares candidate against best under ordering, adopting it
// when strictly better, or when equal and replaceOnEqual is set. It returns
// the (possibly unchanged) best and whether it changed.
func updateBest[T any](best *chromosome.Chromosome[T], candidate *chromosome.Chromosome[T], ordering fitness.Ordering, replaceOnEqual bool) (*chromosome.Chromosome[T], bool) {
	if candidate.FitnessScore == nil {
		return best, false
	}
	if best == nil || best.FitnessScore == nil {
		return candidate.Clone(), true
	}
	if fitness.Better(ordering, candidate.FitnessScore, best.FitnessScore) {
		return candidate.Clone(), true
	}
	if replaceOnEqual && fitness.Equal(candidate.FitnessScore, best.FitnessScore) {
		return candidate.Clone(), true
	}
	return best, false
}
