package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mts-dumper/mts"
	"mts-dumper/scale"
)

func singleMessage() []mts.Message {
	return []mts.Message{{
		DeviceID: 0x7F,
		Program:  0,
		Tunings:  []mts.Tuning{{Note: 60, Semitone: 60, MSB: 0, LSB: 0}},
	}}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "F0 7F 7F 08 02 00 01 3C 3C 00 00 F7", Hex(singleMessage()))
}

func TestHexMultipleMessages(t *testing.T) {
	messages := append(singleMessage(), singleMessage()...)
	out := Hex(messages)
	parts := strings.Split(out, "\n\n")
	assert.Len(t, parts, 2)
	assert.Equal(t, parts[0], parts[1])
}

func TestHexEmpty(t *testing.T) {
	assert.Equal(t, "", Hex(nil))
}

func TestPretty(t *testing.T) {
	out := Pretty(singleMessage())
	lines := strings.Split(out, "\n")
	// Framing, five header fields, one tuple line, closing byte.
	assert.Len(t, lines, 7)
	assert.Contains(t, lines[0], "F0 7F")
	assert.Contains(t, lines[1], "7F")
	assert.Contains(t, lines[2], "08 02")
	assert.Contains(t, lines[5], "3C 3C 00 00")
	assert.Contains(t, lines[6], "F7")
}

func TestCentsTable(t *testing.T) {
	var steps [scale.StepsPerOctave]scale.Step
	steps[0] = scale.Step{Cents: 0, Set: true}
	steps[4] = scale.Step{Cents: 350, Set: true}
	offsets := scale.Resolve(steps)

	out := CentsTable(scale.NoteNames, steps, offsets)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], " 1 (C  4):"), lines[0])
	assert.Contains(t, lines[0], "=  C  4 +")

	// 350 cents resolves to D#4 + 50 cents.
	assert.True(t, strings.HasPrefix(lines[1], " 5 (E  4):"), lines[1])
	assert.Contains(t, lines[1], "=  D# 4 +")
	assert.Contains(t, lines[1], "50.0000 cents")
}

func TestCentsTableOctaveCrossing(t *testing.T) {
	var steps [scale.StepsPerOctave]scale.Step
	steps[11] = scale.Step{Cents: 1250, Set: true} // resolves past B into the next octave
	offsets := scale.Resolve(steps)

	out := CentsTable(scale.NoteNames, steps, offsets)
	assert.Contains(t, out, "=  C  5 +")
}
