package strategy

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/kdump/gev"
	"github.com/kdump/gev/chromosome"
	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/internal/rnd"
	"github.com/kdump/gev/operator"
	"github.com/kdump/gev/population"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Evolve is the generational loop: select → crossover → mutate → extension
// → fitness → stop-condition check, repeated until a configured condition
// fires. Build one with NewEvolveBuilder.
type Evolve[T any] struct {
	genotype  genotype.Genotype[T]
	pipeline  *fitness.Pipeline[T]
	selector  operator.Selector[T]
	crossover operator.Crossover[T]
	mutator   operator.Mutator[T]
	extension operator.Extension[T]

	targetPopulationSize  int
	replacementRate       float64
	elitismRate           float64
	selectionRate         float64
	crossoverRate         float64
	ordering              fitness.Ordering
	stop                  StopConfig
	replaceOnEqualFitness bool
	maxChromosomeAge      *int
	reporter              Reporter
	logger                *logrus.Entry

	rng        *rand.Rand
	card       *cardinalityEstimator
	pop        *population.Population[T]
	best       *chromosome.Chromosome[T]
	generation int
	stale      int
	scaleIndex int
}

// Call runs generations until a stop condition fires and returns the best
// chromosome ever seen. ctx cancellation is observed between generations and
// inside parallel fitness evaluation.
func (e *Evolve[T]) Call(ctx context.Context) (Result[T], error) {
	start := time.Now()
	runID := uuid.New()

	if err := e.initialize(ctx); err != nil {
		return Result[T]{}, err
	}
	e.logger.WithField("run_id", runID).Debug("evolve: population initialized")

	stopped := ""
	for {
		select {
		case <-ctx.Done():
			return e.result(stopped), ctx.Err()
		default:
		}

		e.runGeneration(ctx)

		ok, reason := e.stop.evaluate(e.ordering, e.bestScore(), e.generation, e.stale)
		e.report(runID, start)
		if ok {
			stopped = reason
			break
		}
	}
	e.logger.WithField("run_id", runID).Infof("evolve: stopped (%s) after %d generations", stopped, e.generation)
	return e.result(stopped), nil
}

func (e *Evolve[T]) bestScore() *int64 {
	if e.best == nil {
		return nil
	}
	return e.best.FitnessScore
}

func (e *Evolve[T]) result(stopped string) Result[T] {
	r := Result[T]{Stopped: stopped, Generations: e.generation}
	if e.best != nil {
		r.BestGenes = append([]T(nil), e.best.Genes...)
		r.BestFitnessScore = e.best.FitnessScore
	}
	return r
}

func (e *Evolve[T]) report(runID uuid.UUID, start time.Time) {
	if e.reporter == nil {
		return
	}
	mean, stddev := scoreStats(e.pop.Chromosomes)
	e.reporter(Snapshot{
		RunID:            runID,
		Strategy:         "evolve",
		Generation:       e.generation,
		BestFitness:      e.bestScore(),
		MeanFitness:      mean,
		StdDevFitness:    stddev,
		Cardinality:      e.card.Estimate(e.pop.Hashes()),
		StaleGenerations: e.stale,
		Elapsed:          time.Since(start),
	})
}

func (e *Evolve[T]) initialize(ctx context.Context) error {
	e.pop = population.New[T]()
	seeds := e.genotype.SeedGenes()
	for i := 0; i < e.targetPopulationSize; i++ {
		var genes []T
		if len(seeds) > 0 {
			genes = append([]T(nil), seeds[i%len(seeds)]...)
		} else {
			genes = e.genotype.RandomGenes(e.rng)
		}
		e.pop.Chromosomes = append(e.pop.Chromosomes, e.pop.Acquire(genes))
	}
	if err := e.pipeline.Evaluate(ctx, e.pop); err != nil {
		return err
	}
	e.updateBest()
	return nil
}

func (e *Evolve[T]) updateBest() {
	changed := false
	for _, c := range e.pop.Chromosomes {
		var did bool
		e.best, did = updateBest(e.best, c, e.ordering, e.replaceOnEqualFitness)
		changed = changed || did
	}
	if changed {
		e.stale = 0
	} else {
		e.stale++
	}
}

func (e *Evolve[T]) runGeneration(ctx context.Context) {
	e.generation++

	e.selector.Select(e.pop, e.targetPopulationSize, e.replacementRate, e.elitismRate, e.ordering, e.rng)
	e.crossover.Apply(e.pop, e.genotype, e.targetPopulationSize, e.selectionRate, e.crossoverRate, e.rng)
	e.mutator.Apply(e.pop, e.genotype, e.scaleIndex, e.card.Estimate(e.pop.Hashes()), e.rng)

	cardinality := e.card.Estimate(e.pop.Hashes())
	if cardinality <= e.extension.Threshold() {
		e.extension.Apply(e.pop, e.genotype, e.elitismRate, e.ordering, e.rng)
	}

	_ = e.pipeline.Evaluate(ctx, e.pop)

	for _, c := range e.pop.Chromosomes {
		// Offspring born this generation start at age 0 and lose the tag so
		// they age normally, and count as parents, from next generation on.
		if c.IsOffspring {
			c.IsOffspring = false
			continue
		}
		c.Age++
	}
	if e.maxChromosomeAge != nil {
		kept := e.pop.Chromosomes[:0]
		var aged []*chromosome.Chromosome[T]
		for _, c := range e.pop.Chromosomes {
			if c.Age > *e.maxChromosomeAge {
				aged = append(aged, c)
				continue
			}
			kept = append(kept, c)
		}
		e.pop.Chromosomes = kept
		e.pop.RecycleAll(aged)
	}

	e.updateBest()

	if levels := e.genotype.ScaleLevels(); levels > 0 && e.stop.MaxStaleGenerations != nil {
		threshold := *e.stop.MaxStaleGenerations / levels
		if threshold < 1 {
			threshold = 1
		}
		if e.stale > 0 && e.stale%threshold == 0 {
			e.scaleIndex = (e.scaleIndex + 1) % levels
			e.stale = 0
		}
	}
}

// EvolveBuilder assembles an Evolve strategy through the fluent builder
// contract of spec.md §6.
type EvolveBuilder[T any] struct {
	genotype  genotype.Genotype[T]
	fitnessFn fitness.Fitness[T]

	targetPopulationSize int
	selector             operator.Selector[T]
	crossover            operator.Crossover[T]
	mutator              operator.Mutator[T]
	extension            operator.Extension[T]

	ordering              fitness.Ordering
	stop                  StopConfig
	replacementRate       float64
	elitismRate           float64
	selectionRate         float64
	crossoverRate         float64
	parFitness            bool
	fitnessCacheSize      int
	rngSeed               *int64
	replaceOnEqualFitness bool
	maxChromosomeAge      *int
	reporter              Reporter
	logger                *logrus.Entry
}

// NewEvolveBuilder starts a builder with the teacher's defaults generalized:
// Maximize ordering, full replacement, half-population offspring expansion,
// crossover rate 0.8, a 1024-entry fitness cache.
func NewEvolveBuilder[T any](g genotype.Genotype[T], fn fitness.Fitness[T]) *EvolveBuilder[T] {
	return &EvolveBuilder[T]{
		genotype:         g,
		fitnessFn:        fn,
		ordering:         fitness.Maximize,
		replacementRate:  1.0,
		elitismRate:      0.02,
		selectionRate:    0.5,
		crossoverRate:    0.8,
		fitnessCacheSize: 1024,
	}
}

func (b *EvolveBuilder[T]) WithTargetPopulationSize(n int) *EvolveBuilder[T] {
	b.targetPopulationSize = n
	return b
}
func (b *EvolveBuilder[T]) WithSelect(s operator.Selector[T]) *EvolveBuilder[T] {
	b.selector = s
	return b
}
func (b *EvolveBuilder[T]) WithCrossover(c operator.Crossover[T]) *EvolveBuilder[T] {
	b.crossover = c
	return b
}
func (b *EvolveBuilder[T]) WithMutate(m operator.Mutator[T]) *EvolveBuilder[T] {
	b.mutator = m
	return b
}
func (b *EvolveBuilder[T]) WithExtension(e operator.Extension[T]) *EvolveBuilder[T] {
	b.extension = e
	return b
}
func (b *EvolveBuilder[T]) WithFitnessOrdering(o fitness.Ordering) *EvolveBuilder[T] {
	b.ordering = o
	return b
}
func (b *EvolveBuilder[T]) WithStopCondition(opts ...StopOption) *EvolveBuilder[T] {
	for _, opt := range opts {
		opt(&b.stop)
	}
	return b
}
func (b *EvolveBuilder[T]) WithReplacementRate(r float64) *EvolveBuilder[T] {
	b.replacementRate = r
	return b
}
func (b *EvolveBuilder[T]) WithElitismRate(r float64) *EvolveBuilder[T] {
	b.elitismRate = r
	return b
}
func (b *EvolveBuilder[T]) WithSelectionRate(r float64) *EvolveBuilder[T] {
	b.selectionRate = r
	return b
}
func (b *EvolveBuilder[T]) WithCrossoverRate(r float64) *EvolveBuilder[T] {
	b.crossoverRate = r
	return b
}
func (b *EvolveBuilder[T]) WithParFitness(v bool) *EvolveBuilder[T] {
	b.parFitness = v
	return b
}
func (b *EvolveBuilder[T]) WithFitnessCache(size int) *EvolveBuilder[T] {
	b.fitnessCacheSize = size
	return b
}
func (b *EvolveBuilder[T]) WithRngSeed(seed int64) *EvolveBuilder[T] {
	b.rngSeed = &seed
	return b
}
func (b *EvolveBuilder[T]) WithReplaceOnEqualFitness(v bool) *EvolveBuilder[T] {
	b.replaceOnEqualFitness = v
	return b
}
func (b *EvolveBuilder[T]) WithMaxChromosomeAge(n int) *EvolveBuilder[T] {
	b.maxChromosomeAge = &n
	return b
}
func (b *EvolveBuilder[T]) WithReporter(r Reporter) *EvolveBuilder[T] {
	b.reporter = r
	return b
}
func (b *EvolveBuilder[T]) WithLogger(l *logrus.Entry) *EvolveBuilder[T] {
	b.logger = l
	return b
}

// StopOption configures one stop condition; at least one must be applied.
type StopOption func(*StopConfig)

func TargetFitnessScore(v int64) StopOption {
	return func(s *StopConfig) { s.TargetFitnessScore = &v }
}
func MaxStaleGenerations(n int) StopOption {
	return func(s *StopConfig) { s.MaxStaleGenerations = &n }
}
func MaxGenerations(n int) StopOption {
	return func(s *StopConfig) { s.MaxGenerations = &n }
}

func rateValid(r float64) bool { return r >= 0 && r <= 1 }

// Build validates the accumulated configuration and fails fast with a
// ConfigurationError or OperatorIncompatibility (spec.md §7), never during
// the loop itself.
func (b *EvolveBuilder[T]) Build() (*Evolve[T], error) {
	if b.targetPopulationSize < 1 {
		return nil, gev.NewConfigurationError("target_population_size", "must be >= 1")
	}
	if b.genotype.GenesSize() < 1 {
		return nil, gev.NewConfigurationError("genes_size", "must be >= 1")
	}
	if !b.stop.configured() {
		return nil, gev.NewConfigurationError("stop_condition", "at least one of target_fitness_score, max_stale_generations, max_generations must be set")
	}
	for name, r := range map[string]float64{
		"replacement_rate": b.replacementRate,
		"elitism_rate":      b.elitismRate,
		"selection_rate":    b.selectionRate,
		"crossover_rate":    b.crossoverRate,
	} {
		if !rateValid(r) {
			return nil, gev.NewConfigurationError(name, "must be within [0, 1]")
		}
	}
	if b.fitnessCacheSize < 1 {
		return nil, gev.NewConfigurationError("fitness_cache", "size must be >= 1")
	}
	if b.selector == nil {
		b.selector = &operator.TournamentSelector[T]{TournamentSize: 2}
	}
	if ts, ok := b.selector.(*operator.TournamentSelector[T]); ok && ts.TournamentSize < 2 {
		return nil, gev.NewConfigurationError("tournament_size", "must be >= 2")
	}
	if b.crossover == nil {
		b.crossover = operator.CloneCrossover[T]{}
	}
	if !b.crossover.Legal(b.genotype.CrossoverCapability()) {
		return nil, gev.NewOperatorIncompatibility(fmt.Sprintf("%T", b.crossover), fmt.Sprintf("%T", b.genotype))
	}
	if b.mutator == nil {
		b.mutator = &operator.SingleGeneMutation[T]{Rate: 0.01}
	}
	if b.extension == nil {
		b.extension = operator.NoopExtension[T]{}
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

	return &Evolve[T]{
		genotype:              b.genotype,
		pipeline:              fitness.NewPipeline[T](b.fitnessFn, cache, workers),
		selector:              b.selector,
		crossover:             b.crossover,
		mutator:               b.mutator,
		extension:             b.extension,
		targetPopulationSize:  b.targetPopulationSize,
		replacementRate:       b.replacementRate,
		elitismRate:           b.elitismRate,
		selectionRate:         b.selectionRate,
		crossoverRate:         b.crossoverRate,
		ordering:              b.ordering,
		stop:                  b.stop,
		replaceOnEqualFitness: b.replaceOnEqualFitness,
		maxChromosomeAge:      b.maxChromosomeAge,
		reporter:              b.reporter,
		logger:                logger,
		rng:                   rand.New(rand.NewSource(seed)),
		card:                  newCardinalityEstimator(),
	}, nil
}

// seedSource returns the generator that per-run seeds are derived from: one
// seeded with the builder's configured rng_seed when set, so that repeated
// calls with the same configuration reproduce the same sequence of per-run
// seeds, or a time-seeded one when no seed was configured.
func (b *EvolveBuilder[T]) seedSource() *rand.Rand {
	if b.rngSeed != nil {
		return rand.New(rand.NewSource(*b.rngSeed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// CallRepeatedly runs n independent evolutions from RNG seeds derived off the
// builder's configured seed (or the clock, if none was set), sequentially,
// and returns the best result by fitness ordering.
func (b *EvolveBuilder[T]) CallRepeatedly(ctx context.Context, n int) (Result[T], error) {
	seed := b.seedSource()
	var best Result[T]
	for i := 0; i < n; i++ {
		bi := *b
		bi.rngSeed = ptrInt64(rnd.Derive(seed).Int63())
		strat, err := bi.Build()
		if err != nil {
			return Result[T]{}, err
		}
		res, err := strat.Call(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		if i == 0 || fitness.Better(b.ordering, res.BestFitnessScore, best.BestFitnessScore) {
			best = res
		}
	}
	return best, nil
}

// CallParRepeatedly is CallRepeatedly parallelized across an errgroup worker
// pool sized to the host's logical CPUs.
func (b *EvolveBuilder[T]) CallParRepeatedly(ctx context.Context, n int) (Result[T], error) {
	seed := b.seedSource()
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rnd.Derive(seed).Int63()
	}
	results := make([]Result[T], n)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			bi := *b
			bi.rngSeed = &seeds[i]
			strat, err := bi.Build()
			if err != nil {
				return err
			}
			res, err := strat.Call(gCtx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[T]{}, err
	}
	best := results[0]
	for _, r := range results[1:] {
		if fitness.Better(b.ordering, r.BestFitnessScore, best.BestFitnessScore) {
			best = r
		}
	}
	return best, nil
}

// CallSpeciated runs n evolutions, then seeds one final evolution with the
// best genes from each ("species"), and returns that final run's result.
func (b *EvolveBuilder[T]) CallSpeciated(ctx context.Context, n int) (Result[T], error) {
	seed := b.seedSource()
	species := make([][]T, 0, n)
	for i := 0; i < n; i++ {
		bi := *b
		bi.rngSeed = ptrInt64(rnd.Derive(seed).Int63())
		strat, err := bi.Build()
		if err != nil {
			return Result[T]{}, err
		}
		res, err := strat.Call(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		if res.HasSolution() {
			species = append(species, res.BestGenes)
		}
	}
	final := *b
	final.genotype = seededGenotype[T]{Genotype: b.genotype, seeds: species}
	strat, err := final.Build()
	if err != nil {
		return Result[T]{}, err
	}
	return strat.Call(ctx)
}

func ptrInt64(v int64) *int64 { return &v }

// seededGenotype overrides SeedGenes with an explicit set, for
// CallSpeciated's final run — every other method delegates to the wrapped
// genotype.
type seededGenotype[T any] struct {
	genotype.Genotype[T]
	seeds [][]T
}

func (s seededGenotype[T]) SeedGenes() [][]T { return s.seeds }
