package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStep(t *testing.T) {
	for _, tc := range []struct {
		token string
		want  float64
		set   bool
	}{
		{token: "x", want: 0, set: false},
		{token: "1", want: 1, set: true},
		{token: "1.5", want: 1.5, set: true},
		{token: "-50", want: -50, set: true},
		{token: "+700.25", want: 700.25, set: true},
		{token: "3:2", want: 1.5, set: true},
		{token: "3/2", want: 1.5, set: true},
		{token: "81/80", want: 1.0125, set: true},
	} {
		step, err := ParseStep(tc.token)
		assert.NoError(t, err, tc.token)
		assert.Equal(t, tc.set, step.Set, tc.token)
		if tc.set {
			assert.InDelta(t, tc.want, step.Cents, 1e-12, tc.token)
		}
	}
}

func TestParseStepErrors(t *testing.T) {
	for _, token := range []string{"", "abc", "1:2:3", "3:", "3:0", "1..2"} {
		_, err := ParseStep(token)
		assert.Error(t, err, token)
	}
}

// ParseFloat tolerates inf/nan spellings, but the step grammar is digits
// only; a non-finite value here would make the offset search loop forever.
func TestParseStepRejectsNonFinite(t *testing.T) {
	for _, token := range []string{"inf", "+Inf", "-inf", "nan", "NaN", "inf:1", "1:inf", "1e309", "1e308:1e-308"} {
		_, err := ParseStep(token)
		assert.Error(t, err, token)
	}
}

func TestRatioToCents(t *testing.T) {
	cents, err := RatioToCents(2)
	assert.NoError(t, err)
	assert.InDelta(t, 1200, cents, 1e-9)

	cents, err = RatioToCents(1)
	assert.NoError(t, err)
	assert.InDelta(t, 0, cents, 1e-9)

	cents, err = RatioToCents(1.5)
	assert.NoError(t, err)
	assert.InDelta(t, 701.955, cents, 1e-3)

	_, err = RatioToCents(0)
	assert.Error(t, err)
	_, err = RatioToCents(-1.5)
	assert.Error(t, err)
}

func TestFromEachOther(t *testing.T) {
	var steps [StepsPerOctave]Step
	for i := range steps {
		steps[i] = Step{Cents: 100, Set: true}
	}
	out, err := FromEachOther(steps)
	assert.NoError(t, err)
	for i := range out {
		assert.InDelta(t, float64(100*(i+1)), out[i].Cents, 1e-9)
	}
}

func TestFromEachOtherUnsetRoot(t *testing.T) {
	var steps [StepsPerOctave]Step
	steps[1] = Step{Cents: 100, Set: true}
	_, err := FromEachOther(steps)
	assert.ErrorIs(t, err, ErrRelativeUnsetRoot)
}

func TestFromEachOtherSkipsUnset(t *testing.T) {
	var steps [StepsPerOctave]Step
	steps[0] = Step{Cents: 100, Set: true}
	steps[2] = Step{Cents: 50, Set: true}
	out, err := FromEachOther(steps)
	assert.NoError(t, err)
	assert.False(t, out[1].Set)
	assert.InDelta(t, 150, out[2].Cents, 1e-9)
}

func TestParseSteps(t *testing.T) {
	tokens := []string{"1", "x", "9/8", "x", "5/4", "4/3", "x", "3/2", "x", "5/3", "x", "15/8"}
	steps, err := ParseSteps(tokens, false, false)
	assert.NoError(t, err)
	assert.True(t, steps[0].Set)
	assert.InDelta(t, 0, steps[0].Cents, 1e-9)
	assert.False(t, steps[1].Set)
	assert.InDelta(t, 203.91, steps[2].Cents, 1e-2)
	assert.InDelta(t, 701.955, steps[7].Cents, 1e-3)
}

func TestParseStepsNonPositiveRatio(t *testing.T) {
	tokens := []string{"-3:2", "x", "x", "x", "x", "x", "x", "x", "x", "x", "x", "x"}
	_, err := ParseSteps(tokens, false, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "-3:2")
}

func TestParseStepsWrongCount(t *testing.T) {
	_, err := ParseSteps([]string{"1", "2"}, true, false)
	assert.Error(t, err)
}

func TestRotate(t *testing.T) {
	names, err := Rotate("C")
	assert.NoError(t, err)
	assert.Equal(t, NoteNames, names)

	names, err = Rotate("D")
	assert.NoError(t, err)
	assert.Equal(t, "D", names[0])
	assert.Equal(t, "C", names[10])
	assert.Equal(t, "C#", names[11])

	names, err = Rotate("a#")
	assert.NoError(t, err)
	assert.Equal(t, "A#", names[0])

	_, err = Rotate("H")
	assert.Error(t, err)
}
