package core

import (
	"slices"
	"strconv"

	"github.com/huangsam/decider/schema"
)

// Matrix is the in-memory state of a decision matrix.
// It has no side effects; persistence and rendering live in Session.
type Matrix struct {
	options  []schema.Option
	criteria []schema.Criterion
	ratings  schema.Ratings
	weights  schema.Weights
	newID    IDGenerator
}

// MatrixOption configures a Matrix.
type MatrixOption func(*Matrix)

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(gen IDGenerator) MatrixOption {
	return func(m *Matrix) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewMatrix returns an empty matrix.
func NewMatrix(opts ...MatrixOption) *Matrix {
	m := &Matrix{
		ratings: schema.Ratings{},
		weights: schema.Weights{},
		newID:   NewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddOption appends an option with an empty rating row and returns its id.
func (m *Matrix) AddOption(name string) string {
	id := m.newID()
	m.options = append(m.options, schema.Option{ID: id, Name: name})
	m.ratings[id] = map[string]float64{}
	return id
}

// RemoveOption drops an option and its rating row. Unknown ids are ignored.
func (m *Matrix) RemoveOption(id string) {
	m.options = slices.DeleteFunc(m.options, func(o schema.Option) bool { return o.ID == id })
	delete(m.ratings, id)
}

// AddCriterion appends a criterion with the given weight and rates every
// existing option at the default rating for it.
func (m *Matrix) AddCriterion(name string, weight float64) string {
	id := m.newID()
	m.criteria = append(m.criteria, schema.Criterion{ID: id, Name: name})
	m.weights[id] = weight
	for _, o := range m.options {
		row, ok := m.ratings[o.ID]
		if !ok {
			row = map[string]float64{}
			m.ratings[o.ID] = row
		}
		row[id] = schema.DefaultRating
	}
	return id
}

// AddDefaultCriterion appends a criterion with the default weight.
func (m *Matrix) AddDefaultCriterion(name string) string {
	return m.AddCriterion(name, schema.DefaultWeight)
}

// RemoveCriterion drops a criterion, its weight and its entry in every rating row.
func (m *Matrix) RemoveCriterion(id string) {
	m.criteria = slices.DeleteFunc(m.criteria, func(c schema.Criterion) bool { return c.ID == id })
	delete(m.weights, id)
	for _, row := range m.ratings {
		delete(row, id)
	}
}

// UpdateOptionName renames an option and reports whether it exists.
func (m *Matrix) UpdateOptionName(id, name string) bool {
	for i := range m.options {
		if m.options[i].ID == id {
			m.options[i].Name = name
			return true
		}
	}
	return false
}

// UpdateCriterionName renames a criterion and reports whether it exists.
func (m *Matrix) UpdateCriterionName(id, name string) bool {
	for i := range m.criteria {
		if m.criteria[i].ID == id {
			m.criteria[i].Name = name
			return true
		}
	}
	return false
}

// UpdateWeight sets a weight from raw user input.
func (m *Matrix) UpdateWeight(criterionID, raw string) {
	m.SetWeight(criterionID, CoerceNumber(raw))
}

// UpdateRating sets a rating from raw user input.
func (m *Matrix) UpdateRating(optionID, criterionID, raw string) {
	m.SetRating(optionID, criterionID, CoerceNumber(raw))
}

// SetWeight sets a weight.
func (m *Matrix) SetWeight(criterionID string, weight float64) {
	m.weights[criterionID] = weight
}

// SetRating sets a rating, creating the rating row when absent.
func (m *Matrix) SetRating(optionID, criterionID string, rating float64) {
	row, ok := m.ratings[optionID]
	if !ok {
		row = map[string]float64{}
		m.ratings[optionID] = row
	}
	row[criterionID] = rating
}

// Rating returns a stored rating and whether it exists.
func (m *Matrix) Rating(optionID, criterionID string) (float64, bool) {
	v, ok := m.ratings[optionID][criterionID]
	return v, ok
}

// Weight returns a stored weight and whether it exists.
func (m *Matrix) Weight(criterionID string) (float64, bool) {
	w, ok := m.weights[criterionID]
	return w, ok
}

// Options returns a copy of the options in insertion order.
func (m *Matrix) Options() []schema.Option {
	return slices.Clone(m.options)
}

// Criteria returns a copy of the criteria in insertion order.
func (m *Matrix) Criteria() []schema.Criterion {
	return slices.Clone(m.criteria)
}

// Empty reports whether the matrix has neither options nor criteria.
func (m *Matrix) Empty() bool {
	return len(m.options) == 0 && len(m.criteria) == 0
}

// Ready reports whether results can be calculated.
func (m *Matrix) Ready() bool {
	return len(m.options) > 0 && len(m.criteria) > 0
}

// Snapshot returns a deep copy of the matrix in its persisted layout.
func (m *Matrix) Snapshot() schema.State {
	p := schema.State{
		Options:  m.options,
		Criteria: m.criteria,
		Ratings:  m.ratings,
		Weights:  m.weights,
	}.Partial()
	return schema.State{
		Options:  p.Options,
		Criteria: p.Criteria,
		Ratings:  p.Ratings,
		Weights:  p.Weights,
	}
}

// Apply replaces each field present in p and leaves the others untouched.
func (m *Matrix) Apply(p schema.PartialState) {
	if p.Options != nil {
		m.options = slices.Clone(p.Options)
	}
	if p.Criteria != nil {
		m.criteria = slices.Clone(p.Criteria)
	}
	if p.Ratings != nil {
		m.ratings = make(schema.Ratings, len(p.Ratings))
		for optionID, row := range p.Ratings {
			m.ratings[optionID] = make(map[string]float64, len(row))
			for criterionID, v := range row {
				m.ratings[optionID][criterionID] = v
			}
		}
	}
	if p.Weights != nil {
		m.weights = make(schema.Weights, len(p.Weights))
		for criterionID, w := range p.Weights {
			m.weights[criterionID] = w
		}
	}
}

// Prune drops rating rows, rating cells and weights whose ids no longer
// name an option or criterion.
func (m *Matrix) Prune() {
	optionIDs := make(map[string]bool, len(m.options))
	for _, o := range m.options {
		optionIDs[o.ID] = true
	}
	criterionIDs := make(map[string]bool, len(m.criteria))
	for _, c := range m.criteria {
		criterionIDs[c.ID] = true
	}
	for optionID, row := range m.ratings {
		if !optionIDs[optionID] {
			delete(m.ratings, optionID)
			continue
		}
		for criterionID := range row {
			if !criterionIDs[criterionID] {
				delete(row, criterionID)
			}
		}
	}
	for criterionID := range m.weights {
		if !criterionIDs[criterionID] {
			delete(m.weights, criterionID)
		}
	}
}

// Clear empties the matrix.
func (m *Matrix) Clear() {
	m.options = nil
	m.criteria = nil
	m.ratings = schema.Ratings{}
	m.weights = schema.Weights{}
}

// SeedDefaults adds the default options first and the default criteria second,
// so every default pair ends up rated.
func (m *Matrix) SeedDefaults() {
	for _, name := range schema.DefaultOptionNames {
		m.AddOption(name)
	}
	for _, name := range schema.DefaultCriterionNames {
		m.AddDefaultCriterion(name)
	}
}

// OptionIndex resolves an option reference, either an id or a 1-based position.
func (m *Matrix) OptionIndex(ref string) (int, bool) {
	return resolveRef(ref, len(m.options), func(i int) string { return m.options[i].ID })
}

// CriterionIndex resolves a criterion reference, either an id or a 1-based position.
func (m *Matrix) CriterionIndex(ref string) (int, bool) {
	return resolveRef(ref, len(m.criteria), func(i int) string { return m.criteria[i].ID })
}

// resolveRef prefers an exact id match over a position.
func resolveRef(ref string, n int, idAt func(int) string) (int, bool) {
	for i := range n {
		if idAt(i) == ref {
			return i, true
		}
	}
	pos, err := strconv.Atoi(ref)
	if err != nil || pos < 1 || pos > n {
		return -1, false
	}
	return pos - 1, true
}
