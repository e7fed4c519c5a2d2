// Package scale parses 12-tone scale specifications and resolves each step
// against 12-tone equal temperament.
package scale

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoteNames is the chromatic cycle starting at C.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	// StepsPerOctave is the number of degrees in a chromatic scale.
	StepsPerOctave = 12
	// CentsPerOctave assumes a 2:1 octave.
	CentsPerOctave = 1200.0
	// CentsPerStep is one equal-tempered semitone.
	CentsPerStep = 100.0
)

// UnsetToken in a step specification means "leave this step unretuned".
const UnsetToken = "x"

// ErrRelativeUnsetRoot is returned when from-each-other mode is used with an
// unset first step; there is nothing to accumulate the later deltas onto.
var ErrRelativeUnsetRoot = errors.New("first step must be set when steps are relative to each other")

// Step is one degree of the scale: cents from the root, or unset.
type Step struct {
	Cents float64
	Set   bool
}

// ParseStep parses a single step token: a plain number, a ratio "a:b" or
// "a/b", or the unset sentinel. Ratios are returned as their quotient; use
// RatioToCents to convert.
func ParseStep(token string) (Step, error) {
	if token == UnsetToken {
		return Step{}, nil
	}
	parts := strings.Split(strings.ReplaceAll(token, "/", ":"), ":")
	var value float64
	switch len(parts) {
	case 1:
		v, err := parseFinite(parts[0])
		if err != nil {
			return Step{}, fmt.Errorf("%q is not a valid number or ratio", token)
		}
		value = v
	case 2:
		num, err := parseFinite(parts[0])
		if err != nil {
			return Step{}, fmt.Errorf("%q is not a valid number or ratio", token)
		}
		denom, err := parseFinite(parts[1])
		if err != nil {
			return Step{}, fmt.Errorf("%q is not a valid number or ratio", token)
		}
		if denom == 0 {
			return Step{}, fmt.Errorf("%q divides by zero", token)
		}
		value = num / denom
	default:
		return Step{}, fmt.Errorf("%q is not a valid number or ratio", token)
	}
	if math.IsInf(value, 0) { // a ratio of finite parts can still overflow
		return Step{}, fmt.Errorf("%q is not a valid number or ratio", token)
	}
	return Step{Cents: value, Set: true}, nil
}

// parseFinite parses a base-10 number, rejecting the inf/nan spellings
// ParseFloat tolerates; the step grammar is digits only and a non-finite
// value would never leave the offset search loop.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}

// RatioToCents converts a frequency ratio to cents. The ratio must be
// positive; anything else has no logarithm and is an input error.
func RatioToCents(ratio float64) (float64, error) {
	if ratio <= 0 {
		return 0, fmt.Errorf("ratio %v is not positive", ratio)
	}
	return CentsPerOctave * math.Log2(ratio), nil
}

// ParseSteps parses the 12 step tokens of a scale. When inputCents is false
// the tokens are frequency ratios and are converted to cents. When
// fromEachOther is set each token is the interval from the previous step and
// the values are accumulated into cents from the root.
func ParseSteps(tokens []string, inputCents, fromEachOther bool) ([StepsPerOctave]Step, error) {
	var steps [StepsPerOctave]Step
	if len(tokens) != StepsPerOctave {
		return steps, fmt.Errorf("want %d scale steps, got %d", StepsPerOctave, len(tokens))
	}
	for i, token := range tokens {
		step, err := ParseStep(token)
		if err != nil {
			return steps, err
		}
		if step.Set && !inputCents {
			cents, err := RatioToCents(step.Cents)
			if err != nil {
				return steps, fmt.Errorf("step %q: %w", token, err)
			}
			step.Cents = cents
		}
		steps[i] = step
	}
	if fromEachOther {
		return FromEachOther(steps)
	}
	return steps, nil
}

// FromEachOther converts a scale of successive deltas into cents from the
// root by running sum. Unset steps stay unset and do not advance the sum.
func FromEachOther(steps [StepsPerOctave]Step) ([StepsPerOctave]Step, error) {
	var out [StepsPerOctave]Step
	if !steps[0].Set {
		return out, ErrRelativeUnsetRoot
	}
	out[0] = steps[0]
	last := steps[0].Cents
	for i := 1; i < StepsPerOctave; i++ {
		if !steps[i].Set {
			continue
		}
		last += steps[i].Cents
		out[i] = Step{Cents: last, Set: true}
	}
	return out, nil
}

// Rotate returns the note-name cycle rotated to start at the given note.
// Rotation relabels scale indices against note names; it never changes
// cents values.
func Rotate(startingNote string) ([StepsPerOctave]string, error) {
	var names [StepsPerOctave]string
	start := -1
	for i, n := range NoteNames {
		if strings.EqualFold(n, startingNote) {
			start = i
			break
		}
	}
	if start < 0 {
		return names, fmt.Errorf("unknown note name %q", startingNote)
	}
	for i := range names {
		names[i] = NoteNames[(start+i)%StepsPerOctave]
	}
	return names, nil
}
