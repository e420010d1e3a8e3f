package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const DefaultLength = 12

var (
	ErrInvalidLength            = errors.New("password length must be a positive integer")
	ErrNoCharacterClassSelected = errors.New("at least one character set must be selected")
)

// GenerationRequest describes a single password to generate.
type GenerationRequest struct {
	Length  int
	Classes []CharacterClass
}

// Generator draws passwords from an entropy source.
type Generator struct {
	source io.Reader
}

// NewGenerator returns a Generator reading from source. A nil source means crypto/rand.
func NewGenerator(source io.Reader) *Generator {
	if source == nil {
		source = rand.Reader
	}
	return &Generator{source: source}
}

var defaultGenerator = NewGenerator(nil)

// Generate creates a cryptographically secure random password using crypto/rand.
func Generate(req GenerationRequest) (string, error) {
	return defaultGenerator.Generate(req)
}

// Generate creates a password of exactly req.Length characters. Every position is
// drawn independently and uniformly from the union alphabet of req.Classes.
func (g *Generator) Generate(req GenerationRequest) (string, error) {
	if req.Length < 1 {
		return "", ErrInvalidLength
	}

	pool := Alphabet(req.Classes...)
	if pool == "" {
		return "", ErrNoCharacterClassSelected
	}

	result := make([]byte, req.Length)
	for i := range result {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		result[i] = ch
	}

	return string(result), nil
}

// randChar picks a uniformly random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := rand.Int(g.source, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
