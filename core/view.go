package core

import "github.com/huangsam/decider/schema"

// BuildView derives the renderer view-model from a matrix.
// A missing rating is displayed as the default rating and marked as not stored.
func BuildView(m *Matrix) schema.MatrixView {
	view := schema.MatrixView{
		Options:  m.Options(),
		Criteria: make([]schema.CriterionView, 0, len(m.criteria)),
		Rows:     make([]schema.RowView, 0, len(m.options)),
		Ready:    m.Ready(),
	}
	for _, c := range m.criteria {
		view.Criteria = append(view.Criteria, schema.CriterionView{
			ID:     c.ID,
			Name:   c.Name,
			Weight: m.weights[c.ID],
		})
	}
	for _, o := range m.options {
		row := schema.RowView{
			OptionID: o.ID,
			Name:     o.Name,
			Cells:    make([]schema.CellView, 0, len(m.criteria)),
		}
		for _, c := range m.criteria {
			v, ok := m.Rating(o.ID, c.ID)
			if !ok {
				v = schema.DefaultRating
			}
			row.Cells = append(row.Cells, schema.CellView{CriterionID: c.ID, Value: v, Stored: ok})
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
