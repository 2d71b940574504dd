package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(3, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(0, 1, ColorBlue)
	fb.SetPixel(2, 3, Color{}) // transparent

	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, scr.Bounds())

	cell := scr.CellAt(0, 0)
	if cell == nil {
		t.Fatal("CellAt(0, 0) = nil")
	}
	if cell.Content != "▀" {
		t.Errorf("Content = %q, want ▀", cell.Content)
	}
	if cell.Style.Fg != ColorRed {
		t.Errorf("Fg = %v, want red", cell.Style.Fg)
	}
	if cell.Style.Bg != ColorBlue {
		t.Errorf("Bg = %v, want blue", cell.Style.Bg)
	}

	if bg := scr.CellAt(2, 1).Style.Bg; bg != nil {
		t.Errorf("transparent pixel Bg = %v, want nil", bg)
	}
}
