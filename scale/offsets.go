package scale

// Offset is a step's canonical deviation from equal temperament: a whole
// number of semitones plus a fractional cents offset in [0, 100).
type Offset struct {
	Steps int
	Cents float64
	Set   bool
}

// eqTemperament is the 12-tone equal-tempered reference, 100 cents per step.
var eqTemperament = [StepsPerOctave]float64{
	0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100,
}

// Resolve computes each step's offset from the equal-tempered reference.
// It walks the reference table one semitone at a time until the remaining
// cents land in [0, 100), wrapping across octave boundaries: moving forward
// past B continues at C one octave up, and symmetrically backward. The walk
// strictly shrinks the distance to the target interval, so it terminates
// for any finite input. Unset steps stay unset.
func Resolve(steps [StepsPerOctave]Step) [StepsPerOctave]Offset {
	var offsets [StepsPerOctave]Offset
	for i, step := range steps {
		if !step.Set {
			continue
		}
		curStep := i
		curNote := step.Cents
		stepOffset := 0
		delta := curNote - eqTemperament[curStep]
		for delta < 0 || delta >= CentsPerStep {
			sign := 1
			if delta < 0 {
				sign = -1
			}
			curStep += sign
			stepOffset += sign
			if curStep < 0 || curStep >= StepsPerOctave {
				curStep -= sign * StepsPerOctave
				curNote -= float64(sign) * CentsPerOctave
			}
			delta = curNote - eqTemperament[curStep]
		}
		offsets[i] = Offset{Steps: stepOffset, Cents: delta, Set: true}
	}
	return offsets
}
