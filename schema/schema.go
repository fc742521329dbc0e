// Package schema has the models and constants shared by all parts of decider.
package schema

// Option is one of the choices being compared.
type Option struct {
	ID   string `json:"id"`   // Opaque identifier fixed at creation
	Name string `json:"name"` // Display name, may be empty
}

// Criterion is one of the weighted dimensions options are rated on.
type Criterion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ratings maps option id to criterion id to rating.
type Ratings map[string]map[string]float64

// Weights maps criterion id to weight.
type Weights map[string]float64

// State is the persisted layout of a decision matrix.
// It is shared verbatim by the URL fragment, the local store and the JSON export,
// so the field order and tags must not change.
type State struct {
	Options  []Option    `json:"options"`
	Criteria []Criterion `json:"criteria"`
	Ratings  Ratings     `json:"ratings"`
	Weights  Weights     `json:"weights"`
}

// PartialState is the outcome of a permissive decode.
// A field is present when it is non-nil; a present array or object
// decodes to a non-nil value even when it is empty.
type PartialState struct {
	Options  []Option
	Criteria []Criterion
	Ratings  Ratings
	Weights  Weights
}

// Empty reports whether no field was recognized.
func (p PartialState) Empty() bool {
	return p.Options == nil && p.Criteria == nil && p.Ratings == nil && p.Weights == nil
}

// Partial converts a full state into a partial state with every field present.
func (s State) Partial() PartialState {
	p := PartialState{
		Options:  append(make([]Option, 0, len(s.Options)), s.Options...),
		Criteria: append(make([]Criterion, 0, len(s.Criteria)), s.Criteria...),
		Ratings:  make(Ratings, len(s.Ratings)),
		Weights:  make(Weights, len(s.Weights)),
	}
	for optionID, row := range s.Ratings {
		p.Ratings[optionID] = make(map[string]float64, len(row))
		for criterionID, v := range row {
			p.Ratings[optionID][criterionID] = v
		}
	}
	for criterionID, w := range s.Weights {
		p.Weights[criterionID] = w
	}
	return p
}
