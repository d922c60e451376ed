package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmmshn/pyrho/internal/apperr"
)

type keyKind int

const (
	kindBool keyKind = iota
	kindEnum
)

type keySpec struct {
	kind    keyKind
	allowed []string
}

// OutputFormats lists the values accepted by the output key.
var OutputFormats = []string{"text", "json", "plain"}

var keys = map[string]keySpec{
	"verbose": {kind: kindBool},
	"output":  {kind: kindEnum, allowed: OutputFormats},
}

// NormalizeKey converts hyphenated flag names to their key equivalents.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// ValidKeys returns all settable config keys in sorted order.
func ValidKeys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidateKey returns ErrUnknownKey (wrapped) if key is not a config key.
// Hyphenated spellings are accepted.
func ValidateKey(key string) error {
	if _, ok := keys[NormalizeKey(key)]; !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(ValidKeys(), ", "))
	}
	return nil
}

// ParseValue converts raw into the typed value stored for key.
func ParseValue(key, raw string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	spec := keys[NormalizeKey(key)]
	switch spec.kind {
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false, got %q", apperr.ErrInvalidInput, key, raw)
		}
		return b, nil
	case kindEnum:
		for _, a := range spec.allowed {
			if raw == a {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("%w: %s must be one of %s, got %q",
			apperr.ErrInvalidInput, key, strings.Join(spec.allowed, ", "), raw)
	default:
		return raw, nil
	}
}

// KeyCompletions returns the candidate values for key, or nil for free-form keys.
func KeyCompletions(key string) []string {
	spec, ok := keys[NormalizeKey(key)]
	if !ok {
		return nil
	}
	switch spec.kind {
	case kindBool:
		return []string{"true", "false"}
	case kindEnum:
		return append([]string(nil), spec.allowed...)
	default:
		return nil
	}
}
