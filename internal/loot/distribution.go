package loot

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Distribution draws item quality strictly inside (0,1).
// The zero value is the uniform distribution.
type Distribution struct {
	Kind   string
	Mean   float64
	StdDev float64
}

// Uniform returns the uniform quality distribution.
func Uniform() Distribution {
	return Distribution{Kind: KindUniform}
}

// Normal returns a normal quality distribution truncated to (0,1).
func Normal(mean, stdDev float64) Distribution {
	return Distribution{Kind: KindNormal, Mean: mean, StdDev: stdDev}
}

// Validate checks the distribution parameters.
func (d Distribution) Validate() error {
	switch d.Kind {
	case "", KindUniform:
		return nil
	case KindNormal:
		if math.IsNaN(d.Mean) || math.IsInf(d.Mean, 0) {
			return fmt.Errorf("%s: %v", ErrMsgInvalidMean, d.Mean)
		}
		if math.IsNaN(d.StdDev) || math.IsInf(d.StdDev, 0) || d.StdDev < 0 {
			return fmt.Errorf("%s: %v", ErrMsgInvalidStdDev, d.StdDev)
		}
		return nil
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownDistribution, d.Kind)
	}
}

// Sample draws one quality value.
func (d Distribution) Sample(rng *rand.Rand) float32 {
	if d.Kind == KindNormal {
		return d.sampleNormal(rng)
	}
	return sampleUniform(rng)
}

// sampleUniform rejects values that land on either bound after narrowing.
func sampleUniform(rng *rand.Rand) float32 {
	for {
		q := float32(rng.Float64())
		if q > 0 && q < 1 {
			return q
		}
	}
}

func (d Distribution) sampleNormal(rng *rand.Rand) float32 {
	var v float64
	for range MaxNormalAttempts {
		v = rng.NormFloat64()*d.StdDev + d.Mean
		if q := float32(v); q > 0 && q < 1 {
			return q
		}
	}
	return clampQuality(v)
}

func clampQuality(v float64) float32 {
	q := float32(v)
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}
