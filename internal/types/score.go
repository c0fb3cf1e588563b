package types

import "math"

// Score bounds
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// ClampScore rounds v to two decimals and clamps it to [MinScore, MaxScore]. NaN
// becomes MinScore.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return MinScore
	}
	v = math.Round(v*100) / 100
	return math.Max(MinScore, math.Min(MaxScore, v))
}
