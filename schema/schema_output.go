package schema

// Label values for a result percentage.
const (
	ExcellentValue = "Excellent"
	GoodValue      = "Good"
	FairValue      = "Fair"
	PoorValue      = "Poor"
)

// GetPlainLabel returns a plain text label describing how close an option
// came to the maximum possible score.
func GetPlainLabel(percentage float64) string {
	switch {
	case percentage >= 80:
		return ExcellentValue
	case percentage >= 60:
		return GoodValue
	case percentage >= 40:
		return FairValue
	default:
		return PoorValue
	}
}

// EnrichResults adds rank and label to a list of ranked results.
func EnrichResults(results []Result) []RankedResult {
	output := make([]RankedResult, len(results))
	for i, r := range results {
		output[i] = RankedResult{
			Rank:   i + 1,
			Label:  GetPlainLabel(r.Percentage),
			Result: r,
		}
	}
	return output
}
