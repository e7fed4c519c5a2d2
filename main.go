// mts-dumper converts a 12-tone scale, given as ratios or cents, into MIDI
// Tuning Standard realtime SysEx messages and prints them as a hex dump.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mts-dumper/config"
	"mts-dumper/debug"
	"mts-dumper/mts"
	"mts-dumper/render"
	"mts-dumper/scale"
	"mts-dumper/tui"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mts-dumper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var (
		showVersion   = flag.Bool("version", false, "print version and exit")
		printCents    = flag.Bool("print-cents", false, "print the scale's cents relative to root alongside the hex dump")
		inputCents    = flag.Bool("input-cents", false, "treat steps as cents rather than frequency ratios")
		fromEachOther = flag.Bool("from-each-other", false, "treat steps as relative to each other rather than to the root")
		startingNote  = flag.String("starting-note", cfg.StartingNote, "note the scale starts with")
		deviceID      = flag.Int("device-id", cfg.DeviceID, "target device id; 127 means all devices")
		tuningBank    = flag.Int("tuning-bank", cfg.TuningProgram, "tuning program to store the message under")
		tuningRange   = flag.String("tuning-range", "0:127", "range of notes to tune, as LOW:HIGH")
		notesPerMsg   = flag.Int("notes-per-message", cfg.NotesPerMessage, "split messages exceeding this many notes")
		bytesPerMsg   = flag.Int("bytes-per-message", 0, "split messages exceeding this many bytes; overrides -notes-per-message")
		prettyPrint   = flag.Bool("pretty-print", cfg.PrettyPrint, "formatted output, harder to copy-paste or pipe")
		interactive   = flag.Bool("interactive", false, "edit the scale in a terminal UI with a live hex preview")
		saveDefaults  = flag.Bool("save-defaults", false, "save device id, tuning bank and formatting flags as defaults")
		debugLog      = flag.Bool("debug", false, "log per-note diagnostics to ~/.config/mts-dumper/debug.log")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("mts-dumper version %s\n", version)
		return nil
	}

	if *debugLog {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	if *deviceID < 0 || *deviceID > 127 {
		return fmt.Errorf("device id %d outside [0, 127]", *deviceID)
	}
	if *tuningBank < 0 || *tuningBank > 127 {
		return fmt.Errorf("tuning bank %d outside [0, 127]", *tuningBank)
	}

	cfg.DeviceID = *deviceID
	cfg.TuningProgram = *tuningBank
	cfg.StartingNote = *startingNote
	cfg.NotesPerMessage = *notesPerMsg
	cfg.PrettyPrint = *prettyPrint
	if *saveDefaults {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save defaults: %w", err)
		}
	}

	if *interactive {
		p := tea.NewProgram(tui.NewModel(cfg), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	tokens := flag.Args()
	if len(tokens) != scale.StepsPerOctave {
		return fmt.Errorf("want %d scale steps, got %d (use %q for steps to leave unretuned)",
			scale.StepsPerOctave, len(tokens), scale.UnsetToken)
	}

	steps, err := scale.ParseSteps(tokens, *inputCents, *fromEachOther)
	if err != nil {
		return err
	}

	names, err := scale.Rotate(cfg.StartingNote)
	if err != nil {
		return err
	}

	offsets := scale.Resolve(steps)

	if *printCents {
		fmt.Printf("\n\n%s\n\n", render.CentsTable(names, steps, offsets))
	}

	low, high, err := parseRange(*tuningRange)
	if err != nil {
		return err
	}

	perMessage := cfg.NotesPerMessage
	if *bytesPerMsg > 0 {
		perMessage = mts.NotesPerMessageForBytes(*bytesPerMsg)
	}

	batch, err := mts.Build(offsets, mts.Config{
		Names:           names,
		DeviceID:        uint8(cfg.DeviceID),
		Program:         uint8(cfg.TuningProgram),
		Low:             low,
		High:            high,
		NotesPerMessage: perMessage,
		OnSkip: func(note int, err error) {
			debug.Log("batch", "note %d skipped: %v", note, err)
		},
	})
	if err != nil {
		return err
	}

	if cfg.PrettyPrint {
		fmt.Printf("\n%s\n\n", render.Pretty(batch.Messages))
	} else {
		fmt.Println(render.Hex(batch.Messages))
	}

	if n := len(batch.Skipped); n > 0 {
		fmt.Fprintf(os.Stderr, "mts-dumper: %d notes out of range, left untuned (run with -debug for details)\n", n)
	}
	return nil
}

// parseRange parses a LOW:HIGH closed note range.
func parseRange(s string) (low, high int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("tuning range %q is not of the form LOW:HIGH", s)
	}
	if low, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("tuning range %q is not of the form LOW:HIGH", s)
	}
	if high, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("tuning range %q is not of the form LOW:HIGH", s)
	}
	return low, high, nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: mts-dumper [flags] STEP1 ... STEP12

Converts a 12-tone chromatic scale into MIDI 1.0 MTS-compatible realtime
SysEx messages and prints them as a copy-pasteable hex dump. Steps are
frequency ratios by default (a, a:b or a/b), or cents with -input-cents.
Enter %q instead of a step to leave that note unretuned.

Flags:
`, scale.UnsetToken)
	flag.PrintDefaults()
}
