// Package secrets keeps passwords and tokens out of history files and logs.
package secrets

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultReplacement is appended to partially masked values.
const DefaultReplacement = "***"

// MaskStrategy hides a sensitive value.
type MaskStrategy interface {
	Mask(value string) string
	Name() string
}

// PartialMaskStrategy shows the first few characters.
type PartialMaskStrategy struct {
	showChars   int
	replacement string
}

// NewPartialMaskStrategy creates a partial mask strategy.
func NewPartialMaskStrategy(showChars int, replacement string) *PartialMaskStrategy {
	if replacement == "" {
		replacement = DefaultReplacement
	}
	return &PartialMaskStrategy{showChars: showChars, replacement: replacement}
}

// Mask implements MaskStrategy.
func (s *PartialMaskStrategy) Mask(value string) string {
	if len(value) <= s.showChars {
		return s.replacement
	}
	return value[:s.showChars] + s.replacement
}

// Name implements MaskStrategy.
func (s *PartialMaskStrategy) Name() string { return "partial" }

// FullMaskStrategy replaces the whole value.
type FullMaskStrategy struct {
	replacement string
}

// NewFullMaskStrategy creates a full mask strategy.
func NewFullMaskStrategy(replacement string) *FullMaskStrategy {
	if replacement == "" {
		replacement = DefaultReplacement
	}
	return &FullMaskStrategy{replacement: replacement}
}

// Mask implements MaskStrategy.
func (s *FullMaskStrategy) Mask(string) string { return s.replacement }

// Name implements MaskStrategy.
func (s *FullMaskStrategy) Name() string { return "full" }

// HashMaskStrategy replaces the value with a short SHA-256 digest, so two
// log lines can be correlated without revealing the value.
type HashMaskStrategy struct{}

// NewHashMaskStrategy creates a hash mask strategy.
func NewHashMaskStrategy() *HashMaskStrategy {
	return &HashMaskStrategy{}
}

// Mask implements MaskStrategy.
func (s *HashMaskStrategy) Mask(value string) string {
	sum := sha256.Sum256([]byte(value))
	return "sha256:" + hex.EncodeToString(sum[:])[:16]
}

// Name implements MaskStrategy.
func (s *HashMaskStrategy) Name() string { return "hash" }

// StrategyByName returns the named strategy, defaulting to partial.
func StrategyByName(name string) MaskStrategy {
	switch name {
	case "full":
		return NewFullMaskStrategy("")
	case "hash":
		return NewHashMaskStrategy()
	default:
		return NewPartialMaskStrategy(6, "")
	}
}

// MaskToken shows only the first six characters of a token.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	return NewPartialMaskStrategy(6, "").Mask(token)
}
