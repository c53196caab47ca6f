package fitness

import (
	"context"

	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/population"
	"golang.org/x/sync/errgroup"
)

// Pipeline evaluates every chromosome in a population that lacks a score,
// optionally caching by genes_hash and optionally parallelizing across a
// fixed worker pool. Evaluation order is irrelevant: each chromosome's score
// depends only on its own genes.
type Pipeline[T any] struct {
	Fn      Fitness[T]
	Cache   *Cache
	Workers int
}

// NewPipeline builds a pipeline. workers <= 1 evaluates sequentially on the
// caller's goroutine.
func NewPipeline[T any](fn Fitness[T], cache *Cache, workers int) *Pipeline[T] {
	return &Pipeline[T]{Fn: fn, Cache: cache, Workers: workers}
}

// Evaluate scores every chromosome in pop with a nil FitnessScore. After it
// returns (nil error), every chromosome carries either a score or a
// deliberate None — never a stale value left over from a prior generation.
func (p *Pipeline[T]) Evaluate(ctx context.Context, pop *population.Population[T]) error {
	pending := make([]*chromosome.Chromosome[T], 0, len(pop.Chromosomes))
	for _, c := range pop.Chromosomes {
		if c.FitnessScore == nil {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}
	if workers <= 1 {
		for _, c := range pending {
			p.score(p.Fn, c)
		}
		return nil
	}

	jobs := make(chan *chromosome.Chromosome[T])
	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		worker := cloneOf(p.Fn)
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				case c, ok := <-jobs:
					if !ok {
						return nil
					}
					p.score(worker, c)
				}
			}
		})
	}

feed:
	for _, c := range pending {
		select {
		case jobs <- c:
		case <-gCtx.Done():
			break feed
		}
	}
	close(jobs)
	return g.Wait()
}

func (p *Pipeline[T]) score(fn Fitness[T], c *chromosome.Chromosome[T]) {
	if v, ok := p.Cache.Get(c.GenesHash); ok {
		score := v
		c.FitnessScore = &score
		return
	}
	result := fn.Calculate(c.Genes)
	if result == nil {
		c.FitnessScore = nil
		return
	}
	score := *result
	c.FitnessScore = &score
	p.Cache.Put(c.GenesHash, score)
}
