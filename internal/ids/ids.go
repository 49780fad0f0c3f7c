// Package ids generates entity identifiers.
package ids

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// numericAlphabet has no zero so ids never look like padded numbers
const numericAlphabet = "123456789"

const numericLength = 6

// Generator produces ids for new entities
type Generator interface {
	// UUID returns a random version 4 UUID, used for projects
	UUID() string
	// Short returns a 6-character numeric id, used for tags, users and tasks
	Short() string
}

// Random is the production generator
type Random struct{}

func (Random) UUID() string { return uuid.NewString() }

func (Random) Short() string {
	id, err := gonanoid.Generate(numericAlphabet, numericLength)
	if err != nil {
		// Generate only fails when crypto/rand does; fall back to uuid digits
		return fallbackShort()
	}
	return id
}

func fallbackShort() string {
	u := uuid.New()
	out := make([]byte, numericLength)
	for i := range out {
		out[i] = numericAlphabet[int(u[i])%len(numericAlphabet)]
	}
	return string(out)
}
