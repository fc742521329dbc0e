package core

import (
	"errors"
	"math"

	"github.com/huangsam/decider/schema"
)

// ErrEmptyInput is returned when results are requested for a matrix
// without options or without criteria.
var ErrEmptyInput = errors.New("add options and criteria first")

// CalculateResults scores every option and ranks the results.
func CalculateResults(m *Matrix) ([]schema.Result, error) {
	if !m.Ready() {
		return nil, ErrEmptyInput
	}
	results := ScoreAll(m)
	RankResults(results)
	return results, nil
}

// ScoreAll scores every option in option order without ranking.
// An empty matrix yields an empty slice.
func ScoreAll(m *Matrix) []schema.Result {
	results := make([]schema.Result, 0, len(m.options))
	for _, o := range m.options {
		results = append(results, ScoreOption(m, o))
	}
	return results
}

// ScoreOption computes the weighted score of one option.
// Missing ratings and weights count as 0.
func ScoreOption(m *Matrix, option schema.Option) schema.Result {
	name := option.Name
	if name == "" {
		name = schema.UnnamedOption
	}
	res := schema.Result{
		OptionID:  option.ID,
		Name:      name,
		Breakdown: make([]schema.BreakdownItem, 0, len(m.criteria)),
	}
	for _, c := range m.criteria {
		rating := m.ratings[option.ID][c.ID]
		weight := m.weights[c.ID]
		score := rating * weight
		res.TotalScore += score
		res.MaxPossibleScore += schema.MaxRating * weight
		res.Breakdown = append(res.Breakdown, schema.BreakdownItem{
			CriterionID: c.ID,
			Criterion:   c.Name,
			Rating:      rating,
			Weight:      weight,
			Score:       score,
		})
	}
	res.Percentage = percentage(res.TotalScore, res.MaxPossibleScore)
	return res
}

// percentage returns total/max as a percent rounded to one decimal, or 0 when max is 0.
func percentage(total, max float64) float64 {
	if max == 0 {
		return 0
	}
	p := math.Round(total/max*1000) / 10
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// Label describes a percentage as Excellent, Good, Fair or Poor.
func Label(percentage float64) string {
	return schema.GetPlainLabel(percentage)
}
