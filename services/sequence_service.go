package services

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberSource is the read side the generator needs: scan the numbers
// already persisted under a scheme and check a single candidate.
type NumberSource interface {
	NumbersLike(pattern string) ([]string, error)
	NumberExists(number string) (bool, error)
}

const defaultMaxAttempts = 10

// SequenceGenerator mints identifiers of the form PREFIX-SCOPE-NNNN by
// scanning what is already persisted and incrementing past the maximum.
// There is no lock and no database-side counter, so the existence
// re-check narrows the race window between concurrent callers but does
// not close it; the caller persists the returned value afterwards.
type SequenceGenerator struct {
	Source      NumberSource
	MaxAttempts int
}

func NewSequenceGenerator(source NumberSource) *SequenceGenerator {
	return &SequenceGenerator{Source: source, MaxAttempts: defaultMaxAttempts}
}

// NextNumber returns the next free number for (prefix, scopeKey),
// e.g. NextNumber("SPLV", "2025") -> "SPLV-2025-0004".
func (g *SequenceGenerator) NextNumber(prefix, scopeKey string) (string, error) {
	scope := prefix + "-" + scopeKey + "-"

	existing, err := g.Source.NumbersLike(scope + "%")
	if err != nil {
		return "", err
	}

	max := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, scope) {
			continue
		}
		seq, err := strconv.Atoi(number[len(scope):])
		if err != nil {
			// Malformed rows are skipped, not fatal.
			continue
		}
		if seq > max {
			max = seq
		}
	}

	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	candidate := max + 1
	for i := 0; i < attempts; i++ {
		number := fmt.Sprintf("%s%04d", scope, candidate)
		taken, err := g.Source.NumberExists(number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
		// Someone else committed this number between the scan and
		// the check. Move past it.
		candidate++
	}

	return "", fmt.Errorf("%w: scheme %s%s", ErrExhaustedRetries, scope, "NNNN")
}
