// Package codec encodes matrix state for URL fragments and the local store.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/decider/schema"
)

// ErrMalformedPersistedData is returned when a fragment or stored blob cannot be decoded.
var ErrMalformedPersistedData = errors.New("malformed persisted data")

// EncodeState encodes a state as base64(encodeURIComponent(JSON)).
// The output is deterministic: struct fields keep their order and map keys are sorted.
func EncodeState(s schema.State) (string, error) {
	raw, err := marshalState(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(EncodeURIComponent(raw))), nil
}

// DecodeState reverses EncodeState. A leading '#' is ignored.
func DecodeState(fragment string) (schema.PartialState, error) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	decoded, err := base64.StdEncoding.DecodeString(fragment)
	if err != nil {
		var rawErr error
		decoded, rawErr = base64.RawStdEncoding.DecodeString(fragment)
		if rawErr != nil {
			return schema.PartialState{}, fmt.Errorf("%w: base64: %v", ErrMalformedPersistedData, err)
		}
	}
	text, err := DecodeURIComponent(string(decoded))
	if err != nil {
		return schema.PartialState{}, fmt.Errorf("%w: uri: %v", ErrMalformedPersistedData, err)
	}
	return parsePartial(text)
}

// MarshalLocal encodes a state as compact JSON for the local store.
func MarshalLocal(s schema.State) (string, error) {
	return marshalState(s)
}

// UnmarshalLocal decodes a local store blob permissively.
func UnmarshalLocal(text string) (schema.PartialState, error) {
	return parsePartial(text)
}

// marshalState writes JSON the way a browser's JSON.stringify would, without HTML escaping.
func marshalState(s schema.State) (string, error) {
	s = normalize(s)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// normalize replaces nil collections so they encode as [] and {} instead of null.
func normalize(s schema.State) schema.State {
	if s.Options == nil {
		s.Options = []schema.Option{}
	}
	if s.Criteria == nil {
		s.Criteria = []schema.Criterion{}
	}
	if s.Ratings == nil {
		s.Ratings = schema.Ratings{}
	}
	if s.Weights == nil {
		s.Weights = schema.Weights{}
	}
	return s
}
