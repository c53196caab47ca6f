package strategy

import (
	"testing"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/stretchr/testify/assert"
)

func scoredChromosome(v int64) *chromosome.Chromosome[int] {
	c := chromosome.New([]int{int(v)})
	c.FitnessScore = &v
	return c
}

func TestStopConfigConfigured(t *testing.T) {
	assert.False(t, StopConfig{}.configured())
	n := 5
	assert.True(t, StopConfig{MaxGenerations: &n}.configured())
}

func TestStopConfigEvaluateTargetFitnessScoreMaximize(t *testing.T) {
	target := int64(10)
	s := StopConfig{TargetFitnessScore: &target}
	best := int64(10)
	ok, reason := s.evaluate(fitness.Maximize, &best, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, "target_fitness_score", reason)

	low := int64(5)
	ok, _ = s.evaluate(fitness.Maximize, &low, 1, 0)
	assert.False(t, ok)
}

func TestStopConfigEvaluateTargetFitnessScoreMinimize(t *testing.T) {
	target := int64(10)
	s := StopConfig{TargetFitnessScore: &target}
	best := int64(5)
	ok, reason := s.evaluate(fitness.Minimize, &best, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, "target_fitness_score", reason)
}

func TestStopConfigEvaluateMaxStaleGenerations(t *testing.T) {
	n := 3
	s := StopConfig{MaxStaleGenerations: &n}
	ok, reason := s.evaluate(fitness.Maximize, nil, 1, 3)
	assert.True(t, ok)
	assert.Equal(t, "max_stale_generations", reason)
}

func TestStopConfigEvaluateMaxGenerations(t *testing.T) {
	n := 10
	s := StopConfig{MaxGenerations: &n}
	ok, reason := s.evaluate(fitness.Maximize, nil, 10, 0)
	assert.True(t, ok)
	assert.Equal(t, "max_generations", reason)
}

func TestStopConfigEvaluateNoConditionFires(t *testing.T) {
	n := 100
	s := StopConfig{MaxGenerations: &n}
	ok, reason := s.evaluate(fitness.Maximize, nil, 1, 0)
	assert.False(t, ok)
	assert.Equal(t, "", reason)
}

func TestScoreStatsIgnoresUnscoredChromosomes(t *testing.T) {
	cs := []*chromosome.Chromosome[int]{
		scoredChromosome(10),
		scoredChromosome(20),
		chromosome.New([]int{0}),
	}
	mean, stddev := scoreStats(cs)
	assert.InDelta(t, 15.0, mean, 1e-9)
	assert.Greater(t, stddev, 0.0)
}

func TestScoreStatsEmptyIsZero(t *testing.T) {
	mean, stddev := scoreStats[int](nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, stddev)
}

func TestUpdateBestAdoptsFirstScoredCandidate(t *testing.T) {
	best, changed := updateBest[int](nil, scoredChromosome(5), fitness.Maximize, false)
	require := assert.New(t)
	require.True(changed)
	require.Equal(int64(5), *best.FitnessScore)
}

func TestUpdateBestIgnoresUnscoredCandidate(t *testing.T) {
	current := scoredChromosome(5)
	unscored := chromosome.New([]int{0})
	best, changed := updateBest(current, unscored, fitness.Maximize, false)
	assert.False(t, changed)
	assert.Same(t, current, best)
}

func TestUpdateBestAdoptsStrictlyBetterCandidate(t *testing.T) {
	current := scoredChromosome(5)
	better := scoredChromosome(10)
	best, changed := updateBest(current, better, fitness.Maximize, false)
	assert.True(t, changed)
	assert.Equal(t, int64(10), *best.FitnessScore)
}

func TestUpdateBestKeepsEqualCandidateUnlessReplaceOnEqual(t *testing.T) {
	current := scoredChromosome(5)
	equal := scoredChromosome(5)

	best, changed := updateBest(current, equal, fitness.Maximize, false)
	assert.False(t, changed)
	assert.Same(t, current, best)

	best, changed = updateBest(current, equal, fitness.Maximize, true)
	assert.True(t, changed)
	assert.NotSame(t, current, best)
	assert.Equal(t, int64(5), *best.FitnessScore)
}

func TestResultHasSolution(t *testing.T) {
	assert.False(t, Result[int]{}.HasSolution())
	v := int64(1)
	assert.True(t, Result[int]{BestFitnessScore: &v}.HasSolution())
}
