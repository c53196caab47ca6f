package strategy

import (
	"context"
	"math/rand"
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

// HillClimbVariant selects between the two local-search strategies of
// spec.md §4.10.
type HillClimbVariant int

const (
	// Stochastic samples one random neighbor per iteration and adopts it if
	// it's an improvement.
	Stochastic HillClimbVariant = iota
	// SteepestAscent evaluates the full neighborhood every iteration
	// (optionally in parallel) and adopts the best neighbor if it's an
	// improvement.
	SteepestAscent
)

// HillClimb is a local-search strategy that repeatedly moves from the
// current best chromosome to a neighbor, per Variant. Build one with
// NewHillClimbBuilder.
type HillClimb[T any] struct {
	genotype genotype.Genotype[T]
	pipeline *fitness.Pipeline[T]
	variant  HillClimbVariant

	ordering              fitness.Ordering
	stop                  StopConfig
	replaceOnEqualFitness bool
	reporter              Reporter
	logger                *logrus.Entry

	rng        *rand.Rand
	current    *chromosome.Chromosome[T]
	generation int
	stale      int
	scaleIndex int
}

// Call runs iterations until a stop condition fires.
func (h *HillClimb[T]) Call(ctx context.Context) (Result[T], error) {
	start := time.Now()
	runID := uuid.New()

	genes := h.genotype.RandomGenes(h.rng)
	if seeds := h.genotype.SeedGenes(); len(seeds) > 0 {
		genes = append([]T(nil), seeds[0]...)
	}
	h.current = chromosome.New(genes)
	if err := h.evaluateOne(ctx, h.current); err != nil {
		return Result[T]{}, err
	}

	stopped := ""
	for {
		select {
		case <-ctx.Done():
			return h.result(stopped), ctx.Err()
		default:
		}

		var err error
		switch h.variant {
		case SteepestAscent:
			err = h.stepSteepest(ctx)
		default:
			err = h.stepStochastic(ctx)
		}
		if err != nil {
			return Result[T]{}, err
		}
		h.generation++

		ok, reason := h.stop.evaluate(h.ordering, h.current.FitnessScore, h.generation, h.stale)
		h.report(runID, start)
		if ok {
			stopped = reason
			break
		}
	}
	h.logger.WithField("run_id", runID).Infof("hillclimb: stopped (%s) after %d iterations", stopped, h.generation)
	return h.result(stopped), nil
}

func (h *HillClimb[T]) evaluateOne(ctx context.Context, c *chromosome.Chromosome[T]) error {
	scratch := &population.Population[T]{Chromosomes: []*chromosome.Chromosome[T]{c}}
	return h.pipeline.Evaluate(ctx, scratch)
}

func (h *HillClimb[T]) stepStochastic(ctx context.Context) error {
	neighbours := h.genotype.Neighbours(h.current.Genes, h.scaleIndex, h.rng)
	if len(neighbours) == 0 {
		h.stale++
		return nil
	}
	pick := neighbours[h.rng.Intn(len(neighbours))]
	candidate := chromosome.New(pick)
	if err := h.evaluateOne(ctx, candidate); err != nil {
		return err
	}
	h.adopt(candidate)
	return nil
}

func (h *HillClimb[T]) stepSteepest(ctx context.Context) error {
	neighbours := h.genotype.Neighbours(h.current.Genes, h.scaleIndex, h.rng)
	if len(neighbours) == 0 {
		h.stale++
		return nil
	}
	candidates := make([]*chromosome.Chromosome[T], len(neighbours))
	for i, n := range neighbours {
		candidates[i] = chromosome.New(n)
	}
	scratch := &population.Population[T]{Chromosomes: candidates}
	if err := h.pipeline.Evaluate(ctx, scratch); err != nil {
		return err
	}

	var best *chromosome.Chromosome[T]
	for _, c := range candidates {
		if best == nil || fitness.Better(h.ordering, c.FitnessScore, best.FitnessScore) {
			best = c
		}
	}
	h.adopt(best)
	return nil
}

func (h *HillClimb[T]) adopt(candidate *chromosome.Chromosome[T]) {
	next, improved := updateBest(h.current, candidate, h.ordering, h.replaceOnEqualFitness)
	h.current = next
	if improved {
		h.stale = 0
	} else {
		h.stale++
	}
	if levels := h.genotype.ScaleLevels(); levels > 0 && h.stop.MaxStaleGenerations != nil {
		threshold := *h.stop.MaxStaleGenerations / levels
		if threshold < 1 {
			threshold = 1
		}
		if h.stale > 0 && h.stale%threshold == 0 {
			h.scaleIndex = (h.scaleIndex + 1) % levels
			h.stale = 0
		}
	}
}

func (h *HillClimb[T]) report(runID uuid.UUID, start time.Time) {
	if h.reporter == nil {
		return
	}
	h.reporter(Snapshot{
		RunID:            runID,
		Strategy:         "hillclimb",
		Generation:       h.generation,
		BestFitness:      h.current.FitnessScore,
		Cardinality:      1,
		StaleGenerations: h.stale,
		Elapsed:          time.Since(start),
	})
}

func (h *HillClimb[T]) result(stopped string) Result[T] {
	return Result[T]{
		BestGenes:        append([]T(nil), h.current.Genes...),
		BestFitnessScore: h.current.FitnessScore,
		Stopped:          stopped,
		Generations:      h.generation,
	}
}

// HillClimbBuilder assembles a HillClimb strategy.
type HillClimbBuilder[T any] struct {
	genotype  genotype.Genotype[T]
	fitnessFn fitness.Fitness[T]
	variant   HillClimbVariant

	ordering              fitness.Ordering
	stop                  StopConfig
	replaceOnEqualFitness bool
	parFitness            bool
	fitnessCacheSize      int
	rngSeed               *int64
	reporter              Reporter
	logger                *logrus.Entry
}

// NewHillClimbBuilder starts a builder defaulting to Stochastic and Maximize.
func NewHillClimbBuilder[T any](g genotype.Genotype[T], fn fitness.Fitness[T]) *HillClimbBuilder[T] {
	return &HillClimbBuilder[T]{
		genotype:         g,
		fitnessFn:        fn,
		variant:          Stochastic,
		ordering:         fitness.Maximize,
		fitnessCacheSize: 1024,
	}
}

func (b *HillClimbBuilder[T]) WithVariant(v HillClimbVariant) *HillClimbBuilder[T] {
	b.variant = v
	return b
}
func (b *HillClimbBuilder[T]) WithFitnessOrdering(o fitness.Ordering) *HillClimbBuilder[T] {
	b.ordering = o
	return b
}
func (b *HillClimbBuilder[T]) WithStopCondition(opts ...StopOption) *HillClimbBuilder[T] {
	for _, opt := range opts {
		opt(&b.stop)
	}
	return b
}
func (b *HillClimbBuilder[T]) WithReplaceOnEqualFitness(v bool) *HillClimbBuilder[T] {
	b.replaceOnEqualFitness = v
	return b
}
func (b *HillClimbBuilder[T]) WithParFitness(v bool) *HillClimbBuilder[T] {
	b.parFitness = v
	return b
}
func (b *HillClimbBuilder[T]) WithFitnessCache(size int) *HillClimbBuilder[T] {
	b.fitnessCacheSize = size
	return b
}
func (b *HillClimbBuilder[T]) WithRngSeed(seed int64) *HillClimbBuilder[T] {
	b.rngSeed = &seed
	return b
}
func (b *HillClimbBuilder[T]) WithReporter(r Reporter) *HillClimbBuilder[T] {
	b.reporter = r
	return b
}
func (b *HillClimbBuilder[T]) WithLogger(l *logrus.Entry) *HillClimbBuilder[T] {
	b.logger = l
	return b
}

// Build validates the configuration and constructs the strategy.
func (b *HillClimbBuilder[T]) Build() (*HillClimb[T], error) {
	if b.genotype.GenesSize() < 1 {
		return nil, gev.NewConfigurationError("genes_size", "must be >= 1")
	}
	if !b.stop.configured() {
		return nil, gev.NewConfigurationError("stop_condition", "at least one of target_fitness_score, max_stale_generations, max_generations must be set")
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
	var seed int64
	if b.rngSeed != nil {
		seed = *b.rngSeed
	} else {
		seed = time.Now().UnixNano()
	}
	logger := b.logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &HillClimb[T]{
		genotype:              b.genotype,
		pipeline:              fitness.NewPipeline[T](b.fitnessFn, cache, workers),
		variant:               b.variant,
		ordering:              b.ordering,
		stop:                  b.stop,
		replaceOnEqualFitness: b.replaceOnEqualFitness,
		reporter:              b.reporter,
		logger:                logger,
		rng:                   rand.New(rand.NewSource(seed)),
	}, nil
}
