package strategy

import (
	"context"
	"math/big"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/kdump/gev"
	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/population"
	"github.com/sirupsen/logrus"
)

// enumerator is implemented by every genotype variant for the index-th
// chromosome of its countable space, in canonical order. Kept separate from
// genotype.Genotype (rather than folded into it) because it's only
// meaningful when ChromosomePermutationsSize reports countable — every
// built-in variant implements it regardless.
type enumerator[T any] interface {
	EnumerateAt(index *big.Int) []T
}

// Permutate enumerates the Cartesian product of a countable genotype's
// search space in canonical order, evaluating each chromosome lazily in
// batches, and returns the best seen. Build one with NewPermutateBuilder.
type Permutate[T any] struct {
	genotype   genotype.Genotype[T]
	enumerable enumerator[T]
	pipeline   *fitness.Pipeline[T]
	ordering   fitness.Ordering
	total      *big.Int
	batchSize  int
	reporter   Reporter
	logger     *logrus.Entry

	index *big.Int
	best  *chromosome.Chromosome[T]
}

// Progress returns the current enumeration index and the total countable
// space size, both as copies safe for the caller to retain.
func (p *Permutate[T]) Progress() (current, total *big.Int) {
	return new(big.Int).Set(p.index), new(big.Int).Set(p.total)
}

// Call enumerates every chromosome exactly once and returns the best.
func (p *Permutate[T]) Call(ctx context.Context) (Result[T], error) {
	start := time.Now()
	runID := uuid.New()
	p.index = big.NewInt(0)
	one := big.NewInt(1)

	batch := make([]*chromosome.Chromosome[T], 0, p.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		pop := &population.Population[T]{Chromosomes: batch}
		if err := p.pipeline.Evaluate(ctx, pop); err != nil {
			return err
		}
		for _, c := range batch {
			p.best, _ = updateBest(p.best, c, p.ordering, false)
		}
		batch = batch[:0]
		if p.reporter != nil {
			mean, stddev := scoreStats(pop.Chromosomes)
			p.reporter(Snapshot{
				RunID:         runID,
				Strategy:      "permutate",
				Generation:    int(new(big.Int).Quo(p.index, big.NewInt(int64(p.batchSize))).Int64()),
				BestFitness:   p.bestScore(),
				MeanFitness:   mean,
				StdDevFitness: stddev,
				Elapsed:       time.Since(start),
			})
		}
		return nil
	}

	for p.index.Cmp(p.total) < 0 {
		select {
		case <-ctx.Done():
			return p.result(), ctx.Err()
		default:
		}
		genes := p.enumerable.EnumerateAt(p.index)
		batch = append(batch, chromosome.New(genes))
		p.index.Add(p.index, one)
		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return Result[T]{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return Result[T]{}, err
	}
	p.logger.WithField("run_id", runID).Infof("permutate: exhausted %s chromosomes", p.total.String())
	return p.result(), nil
}

func (p *Permutate[T]) bestScore() *int64 {
	if p.best == nil {
		return nil
	}
	return p.best.FitnessScore
}

func (p *Permutate[T]) result() Result[T] {
	r := Result[T]{Stopped: "exhausted"}
	if p.best != nil {
		r.BestGenes = append([]T(nil), p.best.Genes...)
		r.BestFitnessScore = p.best.FitnessScore
	}
	return r
}

// PermutateBuilder assembles a Permutate strategy.
type PermutateBuilder[T any] struct {
	genotype         genotype.Genotype[T]
	fitnessFn        fitness.Fitness[T]
	ordering         fitness.Ordering
	parFitness       bool
	fitnessCacheSize int
	batchSize        int
	reporter         Reporter
	logger           *logrus.Entry
}

// NewPermutateBuilder starts a builder defaulting to Maximize, a 1024-entry
// cache and 64-chromosome evaluation batches.
func NewPermutateBuilder[T any](g genotype.Genotype[T], fn fitness.Fitness[T]) *PermutateBuilder[T] {
	return &PermutateBuilder[T]{
		genotype:         g,
		fitnessFn:        fn,
		ordering:         fitness.Maximize,
		fitnessCacheSize: 1024,
		batchSize:        64,
	}
}

func (b *PermutateBuilder[T]) WithFitnessOrdering(o fitness.Ordering) *PermutateBuilder[T] {
	b.ordering = o
	return b
}
func (b *PermutateBuilder[T]) WithParFitness(v bool) *PermutateBuilder[T] {
	b.parFitness = v
	return b
}
func (b *PermutateBuilder[T]) WithFitnessCache(size int) *PermutateBuilder[T] {
	b.fitnessCacheSize = size
	return b
}
func (b *PermutateBuilder[T]) WithBatchSize(n int) *PermutateBuilder[T] {
	b.batchSize = n
	return b
}
func (b *PermutateBuilder[T]) WithReporter(r Reporter) *PermutateBuilder[T] {
	b.reporter = r
	return b
}
func (b *PermutateBuilder[T]) WithLogger(l *logrus.Entry) *PermutateBuilder[T] {
	b.logger = l
	return b
}

// Build validates countability and constructs the strategy.
func (b *PermutateBuilder[T]) Build() (*Permutate[T], error) {
	total, ok := b.genotype.ChromosomePermutationsSize()
	if !ok {
		return nil, gev.NewConfigurationError("genotype", "search space is not countable; Permutate requires a finite chromosome_permutations_size")
	}
	enumerable, ok := any(b.genotype).(enumerator[T])
	if !ok {
		return nil, gev.NewConfigurationError("genotype", "genotype does not implement the enumeration Permutate requires")
	}
	if b.fitnessCacheSize < 1 {
		return nil, gev.NewConfigurationError("fitness_cache", "size must be >= 1")
	}
	cache, err := fitness.NewCache(b.fitnessCacheSize)
	if err != nil {
		return nil, gev.NewConfigurationError("fitness_cache", err.Error())
	}
	workers := 1
	if b.parFitness {
		workers = runtime.GOMAXPROCS(0)
	}
	batchSize := b.batchSize
	if batchSize < 1 {
		batchSize = 1
	}
	logger := b.logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Permutate[T]{
		genotype:   b.genotype,
		enumerable: enumerable,
		pipeline:   fitness.NewPipeline[T](b.fitnessFn, cache, workers),
		ordering:   b.ordering,
		total:      total,
		batchSize:  batchSize,
		reporter:   b.reporter,
		logger:     logger,
	}, nil
}
