package schema

// BreakdownItem is the contribution of a single criterion to an option's score.
type BreakdownItem struct {
	CriterionID string  `json:"criterion_id"`
	Criterion   string  `json:"criterion"`
	Rating      float64 `json:"rating"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
}

// Result is the computed outcome for one option.
type Result struct {
	OptionID         string          `json:"option_id"`
	Name             string          `json:"name"`
	TotalScore       float64         `json:"total_score"`
	MaxPossibleScore float64         `json:"max_possible_score"`
	Percentage       float64         `json:"percentage"` // rounded to one decimal
	Breakdown        []BreakdownItem `json:"breakdown"`
}

// RankedResult decorates a result with its rank and label for output.
type RankedResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Result
}

// ExportMeta describes how an export should be offered for download.
type ExportMeta struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
}
