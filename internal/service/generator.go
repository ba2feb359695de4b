package service

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// shareCodeAlphabet is the fixed 36-character alphabet share codes are
	// drawn from, giving 36^6 possible values at the default length.
	shareCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// DefaultShareCodeLength is the code length used unless configured
	// otherwise.
	DefaultShareCodeLength = 6
)

// CodeGenerator produces random share code candidates. Candidates are not
// cryptographically secured; guessability is acceptable because codes are
// time-boxed and point at content the owner already chose to share.
type CodeGenerator struct {
	length int
}

func NewCodeGenerator(length int) *CodeGenerator {
	if length <= 0 {
		length = DefaultShareCodeLength
	}

	return &CodeGenerator{
		length: length,
	}
}

// Generate returns a fresh candidate with each character drawn uniformly from
// the alphabet. Collision checking against stored codes is the caller's job.
func (g *CodeGenerator) Generate() (string, error) {
	const op = "service.CodeGenerator.Generate"

	code, err := gonanoid.Generate(shareCodeAlphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate code: %w", op, err)
	}

	return code, nil
}
