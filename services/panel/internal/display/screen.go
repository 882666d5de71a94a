package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Canvas is a buffered monochrome display such as the ssd1306.
type Canvas interface {
	drivers.Displayer
	ClearBuffer()
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

const (
	lineHeight = 9
	charWidth  = 6
)

// Screen draws frames on a Canvas with a small fixed-pitch font. The active
// field is drawn inverted.
type Screen struct {
	dev  Canvas
	font *tinyfont.Font
}

func NewScreen(dev Canvas) *Screen {
	return &Screen{dev: dev, font: &proggy.TinySZ8pt7b}
}

func (s *Screen) Show(f Frame) error {
	s.dev.ClearBuffer()
	for i, ln := range f.Lines() {
		y := int16((i + 1) * lineHeight)
		tinyfont.WriteLine(s.dev, s.font, 0, y-2, ln, white)
	}
	// Invert the cell of the active field.
	for i, fl := range f.Fields {
		if !fl.Active {
			continue
		}
		row := 2 + i/2
		col := (i % 2) * (cellWidth + 1)
		s.invert(int16(col*charWidth), int16(row*lineHeight), cellWidth*charWidth, lineHeight)
	}
	return s.dev.Display()
}

func (s *Screen) Fault(msg string) {
	s.dev.ClearBuffer()
	tinyfont.WriteLine(s.dev, s.font, 0, lineHeight-2, "FAULT", white)
	tinyfont.WriteLine(s.dev, s.font, 0, 2*lineHeight-2, msg, white)
	_ = s.dev.Display()
}

type pixelReader interface {
	GetPixel(x, y int16) bool
}

func (s *Screen) invert(x, y, w, h int16) {
	pr, ok := s.dev.(pixelReader)
	if !ok {
		return
	}
	sw, sh := s.dev.Size()
	for yy := y; yy < y+h && yy < sh; yy++ {
		for xx := x; xx < x+w && xx < sw; xx++ {
			if pr.GetPixel(xx, yy) {
				s.dev.SetPixel(xx, yy, black)
			} else {
				s.dev.SetPixel(xx, yy, white)
			}
		}
	}
}
