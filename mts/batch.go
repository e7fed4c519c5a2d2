package mts

import (
	"errors"
	"fmt"

	"mts-dumper/scale"
)

// ReferenceNote anchors the rotated note-name cycle to an absolute MIDI
// note id: middle C.
const (
	ReferenceNote = 60
	ReferenceName = "C"
)

// Config describes one batching run.
type Config struct {
	// Names is the note-name cycle (possibly rotated) the 12-entry offset
	// table was written against.
	Names [scale.StepsPerOctave]string

	DeviceID uint8
	Program  uint8

	// Low, High is the closed range of MIDI notes to retune.
	Low  int
	High int

	// NotesPerMessage caps the tuple count of a single message; larger
	// runs are split. Use NotesPerMessageForBytes to derive it from a
	// byte budget.
	NotesPerMessage int

	// OnSkip, when set, is called for every note dropped by a range
	// error. The run continues without the note either way.
	OnSkip func(note int, err error)
}

// Skip records a note dropped from a batch and why.
type Skip struct {
	Note int
	Err  error
}

// Batch is the result of one run: the split messages plus the notes that
// were dropped.
type Batch struct {
	Messages []Message
	Skipped  []Skip
}

// Tunings concatenates the tuples of all messages, in order.
func (b Batch) Tunings() []Tuning {
	var all []Tuning
	for _, m := range b.Messages {
		all = append(all, m.Tunings...)
	}
	return all
}

// NotesPerMessageForBytes converts a wire-byte budget into a per-message
// note cap.
func NotesPerMessageForBytes(byteLimit int) int {
	return (byteLimit - HeaderBytes) / BytesPerNote
}

// Build applies the 12-entry offset table cyclically across the note range
// and packs the encoded tuples into size-bounded messages. The table is
// aligned so that entry 0 lands on the cycle's starting note: the lookup
// index for a note is (note + alignment) mod 12, where the alignment puts
// the reference note (middle C) on its position in the rotated cycle.
//
// Unset table entries leave their notes untouched and emit nothing. Notes
// that fail encoding with a range error are dropped and recorded; any other
// encoding failure aborts the run.
func Build(offsets [scale.StepsPerOctave]scale.Offset, cfg Config) (Batch, error) {
	if err := cfg.validate(); err != nil {
		return Batch{}, err
	}

	refIdx := -1
	for i, n := range cfg.Names {
		if n == ReferenceName {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return Batch{}, fmt.Errorf("note cycle %v does not contain %s", cfg.Names, ReferenceName)
	}
	alignment := (ReferenceNote + refIdx) % scale.StepsPerOctave

	var batch Batch
	var tunings []Tuning
	for note := cfg.Low; note <= cfg.High; note++ {
		off := offsets[(note+alignment)%scale.StepsPerOctave]
		if !off.Set {
			continue
		}
		t, err := NoteTuning(note, off)
		if err != nil {
			if !errors.Is(err, ErrRange) {
				return Batch{}, err
			}
			batch.Skipped = append(batch.Skipped, Skip{Note: note, Err: err})
			if cfg.OnSkip != nil {
				cfg.OnSkip(note, err)
			}
			continue
		}
		tunings = append(tunings, t)
	}

	// The tuple count is a single data byte; a run that cannot be split
	// under that cap is a configuration error, not something to truncate.
	if len(tunings) > MaxNotesPerMessage && cfg.NotesPerMessage > MaxNotesPerMessage {
		return Batch{}, fmt.Errorf("%d notes to tune cannot fit in one message; lower notes-per-message to split", len(tunings))
	}

	batch.Messages = split(tunings, min(cfg.NotesPerMessage, MaxNotesPerMessage), cfg.DeviceID, cfg.Program)
	return batch, nil
}

// split partitions tuples into consecutive messages of at most perMessage
// tuples each; the last message may be smaller. No message is ever empty.
func split(tunings []Tuning, perMessage int, deviceID, program uint8) []Message {
	var messages []Message
	for len(tunings) > 0 {
		n := min(len(tunings), perMessage)
		messages = append(messages, Message{
			DeviceID: deviceID,
			Program:  program,
			Tunings:  tunings[:n:n],
		})
		tunings = tunings[n:]
	}
	return messages
}

func (cfg Config) validate() error {
	if cfg.Low < 0 || cfg.High > MaxNote || cfg.Low > cfg.High {
		return fmt.Errorf("tuning range [%d, %d] is not a valid MIDI note range", cfg.Low, cfg.High)
	}
	if cfg.DeviceID > 0x7F {
		return fmt.Errorf("device id %d exceeds 127", cfg.DeviceID)
	}
	if cfg.Program > 0x7F {
		return fmt.Errorf("tuning program %d exceeds 127", cfg.Program)
	}
	if cfg.NotesPerMessage < 1 {
		return fmt.Errorf("notes per message %d must be positive", cfg.NotesPerMessage)
	}
	return nil
}
