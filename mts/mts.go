// Package mts builds MIDI Tuning Standard realtime SysEx messages from
// resolved scale offsets.
package mts

import (
	"errors"
	"fmt"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"

	"mts-dumper/scale"
)

const (
	// MaxNote is the highest addressable MIDI note.
	MaxNote = 0x7F
	// MaxNotesPerMessage is the protocol cap; the tuple count is a single
	// data byte.
	MaxNotesPerMessage = 0x7F
	// HeaderBytes is the fixed per-message overhead: F0 7F id 08 02 tt ll
	// plus the closing F7.
	HeaderBytes = 8
	// BytesPerNote is one kk xx yy zz tuple.
	BytesPerNote = 4

	realtimeID       = 0x7F // universal realtime SysEx
	subIDTuning      = 0x08 // MIDI tuning standard
	subIDNoteChange  = 0x02 // single-note tuning change
	maxCentsOffset   = 100.0
	centsToMIDIRatio = (1 << 7) / maxCentsOffset
)

// ErrRange marks a note whose retuned semitone or cents offset falls outside
// the legal MIDI range. The batcher drops such notes and carries on.
var ErrRange = errors.New("tuning out of MIDI range")

// ErrInternal marks an encoder post-condition violation. Unreachable for
// inputs that pass the range checks, but checked rather than assumed.
var ErrInternal = errors.New("tuning offset data exceeded maximum MIDI value")

// Tuning retunes one MIDI note: the target semitone plus a 14-bit
// fractional part in 100/16384-cent units, split across two data bytes.
type Tuning struct {
	Note     uint8
	Semitone uint8
	MSB      uint8
	LSB      uint8
}

// NoteTuning encodes a single note's offset into a protocol tuple.
// The cents offset maps onto the 14-bit fixed-point scale: the MSB is in
// 1/128-semitone units and the LSB in 1/16384-semitone units.
func NoteTuning(noteID int, off scale.Offset) (Tuning, error) {
	semitone := noteID + off.Steps
	if semitone < 0 || semitone > MaxNote {
		return Tuning{}, fmt.Errorf("%w: note %d retunes to semitone %d", ErrRange, noteID, semitone)
	}
	// Positive membership so NaN fails the range check too.
	if !(off.Cents >= 0 && off.Cents < maxCentsOffset) {
		return Tuning{}, fmt.Errorf("%w: note %d cents offset %v", ErrRange, noteID, off.Cents)
	}

	midiOffset := off.Cents * centsToMIDIRatio
	msb := int(math.Floor(midiOffset))
	lsb := int(math.Round((midiOffset - float64(msb)) * (1 << 7)))

	for _, b := range []int{semitone, msb, lsb} {
		if b < 0 || b > 0x7F {
			return Tuning{}, fmt.Errorf("%w: note %d encoded as (%d, %d, %d)", ErrInternal, noteID, semitone, msb, lsb)
		}
	}
	return Tuning{
		Note:     uint8(noteID),
		Semitone: uint8(semitone),
		MSB:      uint8(msb),
		LSB:      uint8(lsb),
	}, nil
}

// Message is one realtime single-note tuning change, addressed to a device
// and a tuning program and carrying 1-127 note tuples.
type Message struct {
	DeviceID uint8
	Program  uint8
	Tunings  []Tuning
}

// payload is everything between the F0/F7 framing bytes.
func (m Message) payload() []byte {
	b := make([]byte, 0, HeaderBytes-2+BytesPerNote*len(m.Tunings))
	b = append(b, realtimeID, m.DeviceID&0x7F, subIDTuning, subIDNoteChange)
	b = append(b, m.Program&0x7F, byte(len(m.Tunings)))
	for _, t := range m.Tunings {
		b = append(b, t.Note, t.Semitone, t.MSB, t.LSB)
	}
	return b
}

// SysEx wraps the payload in F0 ... F7 framing.
func (m Message) SysEx() gomidi.Message {
	return gomidi.SysEx(m.payload())
}

// Bytes returns the full wire encoding:
//
//	F0 7F <device> 08 02 <program> <count> [kk xx yy zz]*count F7
func (m Message) Bytes() []byte {
	return m.SysEx().Bytes()
}

// Len is the wire length in bytes.
func (m Message) Len() int {
	return HeaderBytes + BytesPerNote*len(m.Tunings)
}
