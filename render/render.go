// Package render turns tuning messages into printable text: hex dumps and
// the cents diagnostic table.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mts-dumper/mts"
	"mts-dumper/scale"
)

// BaseOctave is the octave of the reference note in diagnostic output
// (middle C is C4).
const BaseOctave = 4

var (
	frameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c678dd")).Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#61afef"))
)

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

// Hex renders messages as flat copy-pasteable dumps, one message per line,
// messages separated by a blank line.
func Hex(messages []mts.Message) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = hexBytes(m.Bytes())
	}
	return strings.Join(lines, "\n\n")
}

// Pretty renders messages with the header fields and each note tuple on
// their own lines, framing and header bytes styled for the terminal.
func Pretty(messages []mts.Message) string {
	rendered := make([]string, len(messages))
	for i, m := range messages {
		var out strings.Builder
		out.WriteString(frameStyle.Render("F0 7F"))
		out.WriteString("\n" + metaStyle.Render(fmt.Sprintf("%02X", m.DeviceID)))
		out.WriteString("\n" + metaStyle.Render("08 02"))
		out.WriteString("\n" + metaStyle.Render(fmt.Sprintf("%02X", m.Program)))
		out.WriteString("\n" + metaStyle.Render(fmt.Sprintf("%02X", len(m.Tunings))))
		for _, t := range m.Tunings {
			out.WriteString("\n" + hexBytes([]byte{t.Note, t.Semitone, t.MSB, t.LSB}))
		}
		out.WriteString("\n" + frameStyle.Render("F7"))
		rendered[i] = out.String()
	}
	return strings.Join(rendered, "\n\n")
}

// CentsTable renders the print-cents diagnostic: one line per set step,
// showing its cents from the root and its decomposition into an
// equal-tempered note plus the sub-semitone offset.
func CentsTable(names [scale.StepsPerOctave]string, steps [scale.StepsPerOctave]scale.Step, offsets [scale.StepsPerOctave]scale.Offset) string {
	var out strings.Builder
	for i := range steps {
		if !offsets[i].Set {
			continue
		}
		shifted := i + offsets[i].Steps
		baseNote := names[mod(shifted, scale.StepsPerOctave)]
		octave := BaseOctave + floorDiv(shifted, scale.StepsPerOctave)
		fmt.Fprintf(&out, "%2d (%-2s%2d): \t %15.4f  =  %-2s%2d + %15.4f cents\n",
			i+1, names[i], BaseOctave, steps[i].Cents, baseNote, octave, offsets[i].Cents)
	}
	return out.String()
}

// mod is the always-non-negative remainder.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
