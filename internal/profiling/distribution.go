package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"autodash/domain/profile"
)

// Minimum sample size before distribution shape is worth reporting
const distributionMinSamples = 8

const normalityAlpha = 0.05

// DistributionAnalyzer describes the shape of numeric columns: skewness,
// excess kurtosis, and a Jarque-Bera normality check.
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Analyze computes distribution shape statistics for a numeric series.
// Returns false for series too small or too degenerate to characterize.
func (da *DistributionAnalyzer) Analyze(series []float64) (profile.DistributionStats, bool) {
	if len(series) < distributionMinSamples {
		return profile.DistributionStats{}, false
	}

	data := stats.Float64Data(series)
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return profile.DistributionStats{}, false
	}

	skewness := standardizedMoment(series, mean, stdDev, 3)
	kurtosis := standardizedMoment(series, mean, stdDev, 4) - 3 // excess kurtosis

	// Jarque-Bera statistic follows chi-squared with 2 degrees of freedom
	n := float64(len(series))
	jb := n / 6 * (skewness*skewness + kurtosis*kurtosis/4)
	pValue := 1 - distuv.ChiSquared{K: 2}.CDF(jb)

	return profile.DistributionStats{
		Skewness: profile.Float(skewness),
		Kurtosis: profile.Float(kurtosis),
		Normal:   pValue > normalityAlpha,
		PValue:   pValue,
	}, true
}

func standardizedMoment(series []float64, mean, stdDev float64, power int) float64 {
	sum := 0.0
	for _, v := range series {
		sum += math.Pow((v-mean)/stdDev, float64(power))
	}
	return sum / float64(len(series))
}
