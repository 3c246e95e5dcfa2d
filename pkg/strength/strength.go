// Package strength scores passwords against a fixed set of character-class
// rules and maps the resulting score to a strength label.
package strength

import (
	"fmt"
	"strings"
)

// Strength is the label derived from a report score.
type Strength int

const (
	// VeryWeak is the zero value. No score threshold maps to it, so Evaluate
	// never returns it.
	VeryWeak Strength = iota
	Weak
	Moderate
	Strong
	VeryStrong
)

const (
	veryStrongMinScore = 6
	strongMinScore     = 4
	moderateMinScore   = 2
)

var labels = map[Strength]string{
	VeryWeak:   "Very Weak",
	Weak:       "Weak",
	Moderate:   "Moderate",
	Strong:     "Strong",
	VeryStrong: "Very Strong",
}

// FromScore returns the strength label for a score. Scores are not clamped,
// anything below the moderate threshold is Weak.
func FromScore(score int) Strength {
	switch {
	case score >= veryStrongMinScore:
		return VeryStrong
	case score >= strongMinScore:
		return Strong
	case score >= moderateMinScore:
		return Moderate
	default:
		return Weak
	}
}

func (s Strength) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

// MarshalText encodes the strength as its label.
func (s Strength) MarshalText() ([]byte, error) {
	if _, ok := labels[s]; !ok {
		return nil, fmt.Errorf("invalid strength: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (s *Strength) UnmarshalText(b []byte) error {
	v, err := ParseStrength(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStrength parses a label, ignoring case and surrounding whitespace.
func ParseStrength(label string) (Strength, error) {
	label = strings.TrimSpace(label)
	for s, l := range labels {
		if strings.EqualFold(l, label) {
			return s, nil
		}
	}
	return VeryWeak, fmt.Errorf("unknown strength label: %q", label)
}
