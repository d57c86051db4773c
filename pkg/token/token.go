// Package token mints the 24 character identifiers that tag manifest objects.
package token

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Length is the number of characters in an identifier token
const Length = 24

var tokenPattern = regexp.MustCompile(`^[0-9A-F]{24}$`)

// Generator mints identifier tokens
type Generator interface {
	Next() string
}

// uuidGenerator derives tokens from random UUIDs
type uuidGenerator struct{}

// NewUUID returns a generator that takes a random UUID, strips the dashes,
// upper-cases it and keeps the first 24 characters.
func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) Next() string {
	return FromUUID(uuid.New())
}

// FromUUID converts a UUID to a token
func FromUUID(u uuid.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
	return hex[:Length]
}

// Sequence is a deterministic generator, mostly for tests.
// Tokens are prefix followed by a zero padded counter.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
	issued []string
}

// NewSequence returns a Sequence whose tokens start with prefix.
// The prefix must be upper-case hex and shorter than Length.
func NewSequence(prefix string) *Sequence {
	if len(prefix) >= Length {
		prefix = prefix[:Length-1]
	}
	return &Sequence{prefix: strings.ToUpper(prefix)}
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	width := Length - len(s.prefix)
	tok := fmt.Sprintf("%s%0*X", s.prefix, width, s.n)
	s.issued = append(s.issued, tok)
	return tok
}

// Issued returns the tokens minted so far, in order
func (s *Sequence) Issued() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.issued...)
}

// Valid reports whether tok has the shape of an identifier token
func Valid(tok string) bool {
	return tokenPattern.MatchString(tok)
}
