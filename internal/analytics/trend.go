package analytics

// Trend is a coarse direction label for an ordered score series.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

const (
	// MinTrendPoints is the shortest series that gets a direction.
	MinTrendPoints = 3
	// TrendSlopeThreshold is the calibrated per-step slope separating
	// improving/declining from stable. Do not tune.
	TrendSlopeThreshold = 0.3
)

// Slope returns the ordinary least-squares slope of scores against their
// index (0..n-1). ok is false for fewer than two points or a zero denominator.
func Slope(scores []float64) (slope float64, ok bool) {
	n := float64(len(scores))
	if len(scores) < 2 {
		return 0, false
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, false
	}
	return (n*sumXY - sumX*sumY) / denominator, true
}

// ClassifyTrend labels a chronologically ascending score series.
func ClassifyTrend(scores []float64) Trend {
	if len(scores) < MinTrendPoints {
		return TrendInsufficientData
	}

	slope, ok := Slope(scores)
	if !ok {
		return TrendStable
	}

	switch {
	case slope > TrendSlopeThreshold:
		return TrendImproving
	case slope < -TrendSlopeThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}
