package schema

// CriterionView is a criterion column as a renderer sees it.
type CriterionView struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// CellView is one rating cell of the grid.
type CellView struct {
	CriterionID string  `json:"criterion_id"`
	Value       float64 `json:"value"`  // value to display
	Stored      bool    `json:"stored"` // false when Value is the display default
}

// RowView is one option row of the grid.
type RowView struct {
	OptionID string     `json:"option_id"`
	Name     string     `json:"name"`
	Cells    []CellView `json:"cells"`
}

// MatrixView is the declarative view-model of a matrix.
// Renderers consume it instead of reaching into the state.
type MatrixView struct {
	Options  []Option        `json:"options"`
	Criteria []CriterionView `json:"criteria"`
	Rows     []RowView       `json:"rows"`
	Ready    bool            `json:"ready"` // results can be calculated
}
