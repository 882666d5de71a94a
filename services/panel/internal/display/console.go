package display

import (
	"io"
	"sync"
)

// Console writes frames as plain text, for a UART or a terminal. Identical
// consecutive frames are suppressed.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) Show(f Frame) error {
	s := f.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == c.last {
		return nil
	}
	c.last = s
	_, err := io.WriteString(c.w, "\x1b[2J\x1b[H"+s+"\r\n")
	return err
}

func (c *Console) Fault(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = ""
	_, _ = io.WriteString(c.w, "FAULT: "+msg+"\r\n")
}

// Tee fans frames out to several sinks. Show returns the first error.
type Tee []Sink

func (t Tee) Show(f Frame) error {
	var first error
	for _, s := range t {
		if err := s.Show(f); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t Tee) Fault(msg string) {
	for _, s := range t {
		s.Fault(msg)
	}
}
