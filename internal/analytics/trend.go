package analytics

import "edu_analytics_backend/internal/model"

// TrendBand is the slope tolerance, in points per attempt, inside which a
// series is considered stable.
const TrendBand = 2.0

// TrendResult is the outcome of fitting a line to a score sequence.
type TrendResult struct {
	Trend      model.Trend `json:"trend"`
	Slope      float64     `json:"slope"`
	Confidence float64     `json:"confidence"`
}

// AnalyzeTrend fits an ordinary least squares line of score against index and
// classifies its slope. Scores must be in chronological order.
func AnalyzeTrend(scores []float64) TrendResult {
	n := len(scores)
	if n < 2 || isConstant(scores) {
		return TrendResult{Trend: model.TrendStable}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	return TrendResult{
		Trend:      classifySlope(slope),
		Slope:      slope,
		Confidence: rSquared(scores, slope, intercept, sumY/fn),
	}
}

func classifySlope(slope float64) model.Trend {
	switch {
	case slope > TrendBand:
		return model.TrendImproving
	case slope < -TrendBand:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// rSquared returns 1 - SSres/SStot clamped to [0,1], or 0 for a constant series.
func rSquared(scores []float64, slope, intercept, mean float64) float64 {
	var ssRes, ssTot float64
	for i, y := range scores {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - mean) * (y - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return clamp(1-ssRes/ssTot, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// isConstant 序列无方差时斜率为 0
func isConstant(scores []float64) bool {
	for _, s := range scores[1:] {
		if s != scores[0] {
			return false
		}
	}
	return true
}
