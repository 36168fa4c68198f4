package loot

import "math"

// baseValues maps rarity tier to the value of a quality-neutral item.
var baseValues = [...]float64{0.2, 4, 30, 230, 800, 8400}

// BaseValue returns the base value for a rarity tier, 0 for unknown tiers.
func BaseValue(tier uint8) float64 {
	if int(tier) >= len(baseValues) {
		return 0
	}
	return baseValues[tier]
}

// QualityMultiplier maps a quality in [0,1] onto the value multiplier curve.
// The curve is flat through the middle and climbs steeply near 1.
func QualityMultiplier(quality float64) float64 {
	s := sigmoid(18*(quality-0.02)) + sigmoid(12*(quality-0.98))
	v := (math.Pow(s, 1.6)-0.18)*0.8 +
		math.Pow(quality, 1.6)*0.2 +
		math.Pow(quality, 3.5)*0.15 +
		math.Pow(quality, 10)*1.8
	return v * 1.2
}

// ItemValue is the value of an item of the given tier and quality.
func ItemValue(tier uint8, quality float32) float32 {
	return float32(BaseValue(tier) * QualityMultiplier(float64(quality)))
}

func sigmoid(x float64) float64 {
	e := math.Exp(x)
	return e / (1 + e)
}
