package core

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// idPrefix marks generated identifiers so they never look like positions.
const idPrefix = "id_"

// idRandomChars is the number of random hex characters kept from a UUID (48 bits).
const idRandomChars = 12

// IDGenerator produces unique opaque identifiers for options and criteria.
type IDGenerator func() string

// NewID returns a fresh identifier such as "id_3f9a1c0b7d2e".
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return idPrefix + raw[:idRandomChars]
}

// SequentialIDs returns a deterministic generator ("id_1", "id_2", ...), used by tests
// and by callers that need reproducible output.
func SequentialIDs() IDGenerator {
	var n int
	return func() string {
		n++
		return idPrefix + strconv.Itoa(n)
	}
}
