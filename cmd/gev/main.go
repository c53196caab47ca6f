package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/kdump/gev/fitness"
	"github.com/kdump/gev/genotype"
	"github.com/kdump/gev/strategy"
)

func main() {
	example := flag.String("example", "onemax", "The example to run (onemax, nqueens or knapsack)")
	flag.Parse()

	switch *example {
	case "onemax":
		runOneMax()
	case "nqueens":
		runNQueens()
	case "knapsack":
		runKnapsack()
	default:
		log.Fatalf("Unknown example: %s", *example)
	}
}

// runOneMax maximizes the count of true genes in a 20-bit chromosome, using
// the generational Evolve strategy.
func runOneMax() {
	g := genotype.NewBinary(20)
	fn := fitness.FuncFitness[bool](func(genes []bool) *int64 {
		var score int64
		for _, gene := range genes {
			if gene {
				score++
			}
		}
		return &score
	})

	strat, err := strategy.NewEvolveBuilder[bool](g, fn).
		WithTargetPopulationSize(100).
		WithStopCondition(strategy.TargetFitnessScore(20), strategy.MaxStaleGenerations(50)).
		Build()
	if err != nil {
		log.Fatalf("failed to build evolve strategy: %v", err)
	}

	res, err := strat.Call(context.Background())
	if err != nil {
		log.Fatalf("failed to run evolve strategy: %v", err)
	}
	fmt.Printf("one-max: stopped=%s generations=%d best_fitness=%v\n", res.Stopped, res.Generations, *res.BestFitnessScore)
}

// runNQueens searches for a non-attacking placement of 8 queens, one per
// column, using SteepestAscent hill-climbing over a Unique genotype.
func runNQueens() {
	const n = 8
	columns := make([]int, n)
	for i := range columns {
		columns[i] = i
	}
	g := genotype.NewUnique[int](columns)

	fn := fitness.FuncFitness[int](func(genes []int) *int64 {
		var conflicts int64
		for i := 0; i < len(genes); i++ {
			for j := i + 1; j < len(genes); j++ {
				if abs(genes[i]-genes[j]) == j-i {
					conflicts++
				}
			}
		}
		score := -conflicts
		return &score
	})

	strat, err := strategy.NewHillClimbBuilder[int](g, fn).
		WithVariant(strategy.SteepestAscent).
		WithStopCondition(strategy.TargetFitnessScore(0), strategy.MaxStaleGenerations(200)).
		Build()
	if err != nil {
		log.Fatalf("failed to build hillclimb strategy: %v", err)
	}

	res, err := strat.Call(context.Background())
	if err != nil {
		log.Fatalf("failed to run hillclimb strategy: %v", err)
	}
	fmt.Printf("n-queens: stopped=%s generations=%d best_fitness=%v placement=%v\n",
		res.Stopped, res.Generations, *res.BestFitnessScore, res.BestGenes)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// runKnapsack maximizes carried value under a weight budget, penalizing
// over-budget chromosomes, using the generational Evolve strategy.
func runKnapsack() {
	weights := []int64{2, 3, 4, 5, 9, 7, 1, 6}
	values := []int64{3, 4, 5, 8, 10, 9, 2, 7}
	const budget = int64(20)

	g := genotype.NewBinary(len(weights))
	fn := fitness.FuncFitness[bool](func(genes []bool) *int64 {
		var weight, value int64
		for i, gene := range genes {
			if gene {
				weight += weights[i]
				value += values[i]
			}
		}
		if weight > budget {
			value -= (weight - budget) * 10
		}
		return &value
	})

	strat, err := strategy.NewEvolveBuilder[bool](g, fn).
		WithTargetPopulationSize(150).
		WithElitismRate(0.05).
		WithStopCondition(strategy.MaxStaleGenerations(100), strategy.MaxGenerations(500)).
		Build()
	if err != nil {
		log.Fatalf("failed to build evolve strategy: %v", err)
	}

	res, err := strat.Call(context.Background())
	if err != nil {
		log.Fatalf("failed to run evolve strategy: %v", err)
	}
	fmt.Printf("knapsack: stopped=%s generations=%d best_value=%v selection=%v\n",
		res.Stopped, res.Generations, *res.BestFitnessScore, res.BestGenes)
}
