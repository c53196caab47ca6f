package genotype

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Numeric bounds the allele type of Range and MultiRange genotypes to
// anything orderable and arithmetic: Go's built-in integer and floating
// kinds.
type Numeric interface {
	constraints.Integer | constraints.Float
}

func isFloatKind[T Numeric](v T) bool {
	switch any(v).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// randInRange draws a uniform sample in [min, max], inclusive on both ends
// for integer kinds and within the interval for float kinds.
func randInRange[T Numeric](min, max T, rng *rand.Rand) T {
	if isFloatKind(min) {
		lo, hi := float64(min), float64(max)
		if hi <= lo {
			return min
		}
		return T(lo + rng.Float64()*(hi-lo))
	}
	lo, hi := int64(min), int64(max)
	if hi <= lo {
		return min
	}
	return T(lo + rng.Int63n(hi-lo+1))
}

func clampNumeric[T Numeric](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// numericMutate draws the single next value for a numeric gene under the
// given mutation policy.
func numericMutate[T Numeric](current, min, max T, policy MutationPolicy, relativeDelta T, scaleLadder []T, scaleIndex int, rng *rand.Rand) T {
	switch policy {
	case PolicyRandom, PolicyDiscrete:
		return randInRange(min, max, rng)
	case PolicyRelative:
		d := relativeDelta
		if rng.Intn(2) == 0 {
			d = -d
		}
		return clampNumeric(current+d, min, max)
	case PolicyScaled:
		d := scaledDelta(scaleLadder, scaleIndex)
		if rng.Intn(2) == 0 {
			d = -d
		}
		return clampNumeric(current+d, min, max)
	default:
		return current
	}
}

func scaledDelta[T Numeric](ladder []T, scaleIndex int) T {
	if len(ladder) == 0 {
		var zero T
		return zero
	}
	idx := scaleIndex
	if idx >= len(ladder) {
		idx = len(ladder) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return ladder[idx]
}

// numericAlternatives returns the full set of neighbour values for one
// numeric gene under the given policy: 2 random draws for Random, ±delta for
// Relative/Scaled, every other integer in bounds for Discrete.
func numericAlternatives[T Numeric](current, min, max T, policy MutationPolicy, relativeDelta T, scaleLadder []T, scaleIndex int, rng *rand.Rand) []T {
	switch policy {
	case PolicyRandom:
		return []T{randInRange(min, max, rng), randInRange(min, max, rng)}
	case PolicyRelative:
		return []T{clampNumeric(current+relativeDelta, min, max), clampNumeric(current-relativeDelta, min, max)}
	case PolicyScaled:
		d := scaledDelta(scaleLadder, scaleIndex)
		return []T{clampNumeric(current+d, min, max), clampNumeric(current-d, min, max)}
	case PolicyDiscrete:
		lo, hi := int64(min), int64(max)
		out := make([]T, 0, hi-lo)
		for v := lo; v <= hi; v++ {
			tv := T(v)
			if tv == current {
				continue
			}
			out = append(out, tv)
		}
		return out
	default:
		return nil
	}
}

// numericNeighbourCount returns len(numericAlternatives(...)) without
// generating it, for NeighbouringPopulationSize.
func numericNeighbourCount[T Numeric](min, max T, policy MutationPolicy) int64 {
	switch policy {
	case PolicyRandom, PolicyRelative, PolicyScaled:
		return 2
	case PolicyDiscrete:
		return int64(max) - int64(min)
	default:
		return 0
	}
}

// numericIsCountable reports whether the policy yields a finite, countable
// space (only PolicyDiscrete does; continuous ranges never terminate
// enumeration).
func numericIsCountable(policy MutationPolicy) bool {
	return policy == PolicyDiscrete
}
