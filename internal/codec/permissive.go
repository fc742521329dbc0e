package codec

import (
	"fmt"
	"math"

	"github.com/huangsam/decider/schema"
	"github.com/tidwall/gjson"
)

// parsePartial keeps every field of the payload that has the expected shape
// and ignores the rest.
func parsePartial(text string) (schema.PartialState, error) {
	if !gjson.Valid(text) {
		return schema.PartialState{}, fmt.Errorf("%w: invalid json", ErrMalformedPersistedData)
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return schema.PartialState{}, fmt.Errorf("%w: top level is not an object", ErrMalformedPersistedData)
	}

	var p schema.PartialState
	if r := root.Get("options"); r.IsArray() {
		p.Options = []schema.Option{}
		for _, item := range r.Array() {
			if id, name, ok := parseItem(item); ok {
				p.Options = append(p.Options, schema.Option{ID: id, Name: name})
			}
		}
	}
	if r := root.Get("criteria"); r.IsArray() {
		p.Criteria = []schema.Criterion{}
		for _, item := range r.Array() {
			if id, name, ok := parseItem(item); ok {
				p.Criteria = append(p.Criteria, schema.Criterion{ID: id, Name: name})
			}
		}
	}
	if r := root.Get("ratings"); r.IsObject() {
		p.Ratings = schema.Ratings{}
		r.ForEach(func(optionID, row gjson.Result) bool {
			if row.IsObject() {
				p.Ratings[optionID.String()] = numericLeaves(row)
			}
			return true
		})
	}
	if r := root.Get("weights"); r.IsObject() {
		p.Weights = numericLeaves(r)
	}
	return p, nil
}

// parseItem reads an {"id", "name"} object. Items without a string id are dropped.
func parseItem(item gjson.Result) (id, name string, ok bool) {
	if !item.IsObject() {
		return "", "", false
	}
	idField := item.Get("id")
	if idField.Type != gjson.String {
		return "", "", false
	}
	if nameField := item.Get("name"); nameField.Type == gjson.String {
		name = nameField.String()
	}
	return idField.String(), name, true
}

// numericLeaves collects the number-valued members of an object.
// Numbers too large to represent become 0.
func numericLeaves(obj gjson.Result) map[string]float64 {
	out := map[string]float64{}
	obj.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			v := value.Float()
			if math.IsInf(v, 0) || math.IsNaN(v) {
				v = 0
			}
			out[key.String()] = v
		}
		return true
	})
	return out
}
