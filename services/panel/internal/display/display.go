// Package display lays out panel frames as text and draws them on the
// status screen or a diagnostic console.
package display

import (
	"strings"
)

// Field is one editable setting. Active marks the field the control shaft
// currently edits.
type Field struct {
	Label  string
	Value  string
	Active bool
}

// Frame is a full-screen redraw.
type Frame struct {
	Frequency string // e.g. " 98.000 MHz"
	Marker    int    // column in Frequency of the active tuning digit, -1 for none
	Source    string
	Fields    []Field
	Battery   string
	Status    string
}

// Sink accepts full-frame redraws and fatal messages.
type Sink interface {
	Show(Frame) error
	Fault(msg string)
}

const cellWidth = 9

// Lines lays the frame out for a 21-column text screen.
func (f Frame) Lines() []string {
	lines := make([]string, 0, 8)
	lines = append(lines, f.Frequency+" "+f.Source)
	if f.Marker >= 0 {
		lines = append(lines, strings.Repeat(" ", f.Marker)+"^")
	} else {
		lines = append(lines, "")
	}
	for i := 0; i < len(f.Fields); i += 2 {
		row := cell(f.Fields[i])
		if i+1 < len(f.Fields) {
			row += " " + cell(f.Fields[i+1])
		}
		lines = append(lines, row)
	}
	tail := "BAT " + f.Battery
	if f.Status != "" {
		tail += " " + f.Status
	}
	return append(lines, tail)
}

func (f Frame) String() string { return strings.Join(f.Lines(), "\n") }

func cell(fl Field) string {
	var b strings.Builder
	if fl.Active {
		b.WriteByte('>')
	} else {
		b.WriteByte(' ')
	}
	b.WriteString(fl.Label)
	pad := cellWidth - 1 - len(fl.Label) - len(fl.Value)
	for ; pad > 0; pad-- {
		b.WriteByte(' ')
	}
	b.WriteString(fl.Value)
	return b.String()
}
