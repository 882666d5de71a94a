package main

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"rxpanel-go/services/panel/internal/display"
)

type styles struct {
	freq    lipgloss.Style
	source  lipgloss.Style
	marker  lipgloss.Style
	field   lipgloss.Style
	active  lipgloss.Style
	battery lipgloss.Style
	status  lipgloss.Style
	fault   lipgloss.Style
	frame   lipgloss.Style
}

func newStyles() styles {
	return styles{
		freq:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(15)),
		source:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		marker:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		field:   lipgloss.NewStyle().Width(fieldWidth).Foreground(lipgloss.ANSIColor(7)),
		active:  lipgloss.NewStyle().Width(fieldWidth).Bold(true).Foreground(lipgloss.ANSIColor(0)).Background(lipgloss.ANSIColor(3)),
		battery: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		status:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		fault:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)).Padding(0, 1),
		frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.ANSIColor(8)).Padding(0, 1),
	}
}

const fieldWidth = 10

// view draws frames as a styled box in a terminal.
type view struct {
	mu sync.Mutex
	w  io.Writer
	st styles
}

func newView(w io.Writer) *view { return &view{w: w, st: newStyles()} }

func (v *view) Show(f display.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, err := io.WriteString(v.w, "\x1b[H"+v.render(f)+"\n")
	return err
}

func (v *view) render(f display.Frame) string {
	rows := []string{v.st.freq.Render(f.Frequency) + " " + v.st.source.Render(f.Source)}
	if f.Marker >= 0 {
		rows = append(rows, strings.Repeat(" ", f.Marker)+v.st.marker.Render("^"))
	} else {
		rows = append(rows, "")
	}
	for i := 0; i < len(f.Fields); i += 2 {
		cells := []string{v.cell(f.Fields[i])}
		if i+1 < len(f.Fields) {
			cells = append(cells, " ", v.cell(f.Fields[i+1]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	tail := v.st.battery.Render("BAT " + f.Battery)
	if f.Status != "" {
		tail += " " + v.st.status.Render(f.Status)
	}
	rows = append(rows, tail)
	return v.st.frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (v *view) cell(fl display.Field) string {
	pad := fieldWidth - len(fl.Label) - len(fl.Value)
	if pad < 1 {
		pad = 1
	}
	text := fl.Label + strings.Repeat(" ", pad) + fl.Value
	if fl.Active {
		return v.st.active.Render(text)
	}
	return v.st.field.Render(text)
}

func (v *view) Fault(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = io.WriteString(v.w, v.st.fault.Render("FAULT "+msg)+"\n")
}
