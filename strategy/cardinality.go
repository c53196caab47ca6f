package strategy

import "github.com/kdump/gev/cardinality"

// cardinalityEstimator wraps a cardinality.Estimator with the one-shot,
// reset-then-measure usage every strategy needs once per generation.
type cardinalityEstimator struct {
	sketch *cardinality.Estimator
}

func newCardinalityEstimator() *cardinalityEstimator {
	return &cardinalityEstimator{sketch: cardinality.NewEstimator(8)}
}

// Estimate resets the sketch, folds in hashes, and returns the estimate.
func (c *cardinalityEstimator) Estimate(hashes []uint64) float64 {
	c.sketch.AddAll(hashes)
	return c.sketch.Estimate()
}
