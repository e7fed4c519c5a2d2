package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mts-dumper/config"
	"mts-dumper/mts"
	"mts-dumper/render"
	"mts-dumper/scale"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c678dd")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5c07b")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c75"))
)

// stepChars are the characters a step token may contain.
const stepChars = "0123456789.+-:/x"

// Model is an interactive editor for the 12 scale steps with a live hex
// preview of the resulting tuning messages.
type Model struct {
	cfg    *config.Config
	tokens [scale.StepsPerOctave]string
	cursor int

	inputCents    bool
	fromEachOther bool

	preview string
	errMsg  string

	quitting bool
}

// NewModel starts with a plain 1:1 scale (every step unretuned by ratio).
func NewModel(cfg *config.Config) Model {
	m := Model{cfg: cfg}
	for i := range m.tokens {
		m.tokens[i] = scale.UnsetToken
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "shift+tab":
		m.cursor = (m.cursor + scale.StepsPerOctave - 1) % scale.StepsPerOctave

	case "down", "tab", "enter":
		m.cursor = (m.cursor + 1) % scale.StepsPerOctave

	case "backspace":
		if t := m.tokens[m.cursor]; t != "" {
			m.tokens[m.cursor] = t[:len(t)-1]
		}
		m.recompute()

	case "ctrl+u":
		m.inputCents = !m.inputCents
		m.recompute()

	case "ctrl+e":
		m.fromEachOther = !m.fromEachOther
		m.recompute()

	default:
		if len(key) == 1 && strings.ContainsAny(key, stepChars) {
			m.tokens[m.cursor] += key
			m.recompute()
		}
	}

	return m, nil
}

// recompute runs the whole pipeline on the current tokens and caches the
// hex preview or the first error.
func (m *Model) recompute() {
	m.preview, m.errMsg = "", ""

	tokens := make([]string, scale.StepsPerOctave)
	for i, t := range m.tokens {
		if t == "" {
			t = scale.UnsetToken
		}
		tokens[i] = t
	}

	steps, err := scale.ParseSteps(tokens, m.inputCents, m.fromEachOther)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	names, err := scale.Rotate(m.cfg.StartingNote)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	batch, err := mts.Build(scale.Resolve(steps), mts.Config{
		Names:           names,
		DeviceID:        uint8(m.cfg.DeviceID),
		Program:         uint8(m.cfg.TuningProgram),
		Low:             0,
		High:            mts.MaxNote,
		NotesPerMessage: m.cfg.NotesPerMessage,
	})
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.preview = render.Hex(batch.Messages)
	if n := len(batch.Skipped); n > 0 {
		m.preview += fmt.Sprintf("\n\n%d notes out of range, skipped", n)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	units := "ratios"
	if m.inputCents {
		units = "cents"
	}
	relative := "root"
	if m.fromEachOther {
		relative = "previous step"
	}

	var out strings.Builder
	out.WriteString(headerStyle.Render("mts-dumper"))
	out.WriteString(dimStyle.Render(fmt.Sprintf("  input: %s, relative to %s", units, relative)))
	out.WriteString("\n\n")

	names, err := scale.Rotate(m.cfg.StartingNote)
	if err != nil {
		names = scale.NoteNames
	}
	for i, t := range m.tokens {
		line := fmt.Sprintf("%-2s  %s", names[i], t)
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
	if m.errMsg != "" {
		out.WriteString(errorStyle.Render(m.errMsg))
	} else {
		out.WriteString(m.preview)
	}
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("tab/arrows:step  type:edit  ctrl+u:cents/ratios  ctrl+e:relative  esc:quit"))

	return out.String()
}
