package operator

import (
	"testing"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/stretchr/testify/assert"
)

func scored(v int64) *chromosome.Chromosome[int] {
	c := chromosome.New([]int{int(v)})
	c.FitnessScore = &v
	return c
}

func TestSortBestMaximizeOrdersDescending(t *testing.T) {
	cs := []*chromosome.Chromosome[int]{scored(1), scored(3), scored(2)}
	sortBest(cs, fitness.Maximize)
	assert.Equal(t, []int64{3, 2, 1}, scores(cs))
}

func TestSortBestMinimizeOrdersAscending(t *testing.T) {
	cs := []*chromosome.Chromosome[int]{scored(3), scored(1), scored(2)}
	sortBest(cs, fitness.Minimize)
	assert.Equal(t, []int64{1, 2, 3}, scores(cs))
}

func scores(cs []*chromosome.Chromosome[int]) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = *c.FitnessScore
	}
	return out
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 5, clampCount(0.5, 10, 100))
	assert.Equal(t, 0, clampCount(0, 10, 100))
	assert.Equal(t, 1, clampCount(1, 10, 1))
	assert.Equal(t, 0, clampCount(-1, 10, 100))
}

func TestSplitByOffspring(t *testing.T) {
	offspring := chromosome.New([]int{1})
	offspring.IsOffspring = true
	parent := chromosome.New([]int{2})

	off, par := splitByOffspring([]*chromosome.Chromosome[int]{offspring, parent})
	assert.Equal(t, []*chromosome.Chromosome[int]{offspring}, off)
	assert.Equal(t, []*chromosome.Chromosome[int]{parent}, par)
}

func TestProportional(t *testing.T) {
	a, b := proportional(10, 3, 1)
	assert.Equal(t, 7, a)
	assert.Equal(t, 3, b)

	a, b = proportional(10, 0, 0)
	assert.Equal(t, 0, a)
	assert.Equal(t, 0, b)
}

func TestComplement(t *testing.T) {
	c1 := chromosome.New([]int{1})
	c2 := chromosome.New([]int{2})
	c3 := chromosome.New([]int{3})
	all := []*chromosome.Chromosome[int]{c1, c2, c3}
	kept := membership([]*chromosome.Chromosome[int]{c2})
	assert.Equal(t, []*chromosome.Chromosome[int]{c1, c3}, complement(all, kept))
}
