package breeze

import (
	"fmt"
	"testing"
)

// recordingSurface is a Surface that logs draw calls and measures text at a
// fixed 7px per byte and 1.2 line height.
type recordingSurface struct {
	frames   int
	calls    []string
	depth    int
	fill     Color
	dpi      float32
	size     [2]int
	images   map[int][]byte
	imgSize  map[int][2]int
	nextID   int
	rejectAt int // CreateImageRGBA fails for this id when positive
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{images: make(map[int][]byte), imgSize: make(map[int][2]int)}
}

func (s *recordingSurface) log(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *recordingSurface) BeginFrame(w, h int, dpi float32) {
	s.frames++
	s.calls = s.calls[:0]
	s.size = [2]int{w, h}
	s.dpi = dpi
}
func (s *recordingSurface) EndFrame() {}
func (s *recordingSurface) Save()     { s.depth++ }
func (s *recordingSurface) Restore()  { s.depth-- }

func (s *recordingSurface) BeginPath()                          { s.log("begin") }
func (s *recordingSurface) MoveTo(x, y float32)                 { s.log("move %v,%v", x, y) }
func (s *recordingSurface) LineTo(x, y float32)                 { s.log("line %v,%v", x, y) }
func (s *recordingSurface) BezierTo(_, _, _, _, x, y float32)   { s.log("bezier %v,%v", x, y) }
func (s *recordingSurface) QuadTo(_, _, x, y float32)           { s.log("quad %v,%v", x, y) }
func (s *recordingSurface) ArcTo(_, _, x2, y2, r float32)       { s.log("arcto %v,%v r%v", x2, y2, r) }
func (s *recordingSurface) Arc(cx, cy, r, _, _ float32, _ bool) { s.log("arc %v,%v r%v", cx, cy, r) }
func (s *recordingSurface) Rect(x, y, w, h float32)             { s.log("rect %v,%v %vx%v", x, y, w, h) }
func (s *recordingSurface) RoundedRect(x, y, w, h, r float32) {
	s.log("rrect %v,%v %vx%v r%v", x, y, w, h, r)
}
func (s *recordingSurface) Ellipse(cx, cy, rx, ry float32) { s.log("ellipse %v,%v", cx, cy) }
func (s *recordingSurface) Circle(cx, cy, r float32)       { s.log("circle %v,%v r%v", cx, cy, r) }
func (s *recordingSurface) ClosePath()                     { s.log("close") }
func (s *recordingSurface) Fill()                          { s.log("fill %v", s.fill) }
func (s *recordingSurface) Stroke()                        { s.log("stroke") }
func (s *recordingSurface) FillColor(c Color)              { s.fill = c }
func (s *recordingSurface) FillPaint(p Paint)              { s.log("paint %d %v,%v", p.Kind, p.Box.X, p.Box.Y) }
func (s *recordingSurface) StrokeColor(Color)              {}
func (s *recordingSurface) StrokeWidth(float32)            {}
func (s *recordingSurface) GlobalAlpha(float32)            {}
func (s *recordingSurface) Translate(x, y float32)         { s.log("translate %v,%v", x, y) }
func (s *recordingSurface) Scissor(x, y, w, h float32)     { s.log("scissor %v,%v %vx%v", x, y, w, h) }
func (s *recordingSurface) IntersectScissor(x, y, w, h float32) {
	s.log("iscissor %v,%v %vx%v", x, y, w, h)
}
func (s *recordingSurface) ResetScissor()                          {}
func (s *recordingSurface) FontFace(string)                        {}
func (s *recordingSurface) FontSize(float32)                       {}
func (s *recordingSurface) Text(x, y float32, str string)          { s.log("text %v,%v %s", x, y, str) }
func (s *recordingSurface) TextBox(x, y, _ float32, str string)    { s.log("textbox %v,%v %s", x, y, str) }
func (s *recordingSurface) MeasureText(_ string, size float32, str string) (float32, float32) {
	return float32(len(str)) * 7, size * 1.2
}
func (s *recordingSurface) MeasureTextBox(_ string, size float32, str string, maxWidth float32) (float32, float32) {
	w := float32(len(str)) * 7
	lines := float32(1)
	if maxWidth > 0 && w > maxWidth {
		lines = float32(int((w + maxWidth - 1) / maxWidth))
		w = maxWidth
	}
	return w, lines * size * 1.2
}

func (s *recordingSurface) CreateImageRGBA(w, h int, pix []byte) int {
	id := s.nextID
	s.nextID++
	if s.rejectAt > 0 && id == s.rejectAt {
		return InvalidImageID
	}
	s.images[id] = append([]byte(nil), pix...)
	s.imgSize[id] = [2]int{w, h}
	return id
}

func (s *recordingSurface) DeleteImage(id int) {
	delete(s.images, id)
	delete(s.imgSize, id)
}

func (s *recordingSurface) ImageSize(id int) (int, int, bool) {
	sz, ok := s.imgSize[id]
	return sz[0], sz[1], ok
}

func (s *recordingSurface) has(call string) bool {
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

var _ Surface = (*recordingSurface)(nil)
var _ Surface = (*EbitenSurface)(nil)

func TestCanvasAddsOffset(t *testing.T) {
	s := newRecordingSurface()
	c := NewCanvas(s).WithOffset(10, 20).WithOffset(1, 2)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.Rect(5, 5, 3, 4)
	c.Text(1, 1, "hi")
	for _, want := range []string{"move 11,22", "rect 16,27 3x4", "text 12,23 hi"} {
		if !s.has(want) {
			t.Errorf("missing %q in %v", want, s.calls)
		}
	}
}

func TestCanvasFillPaintTranslated(t *testing.T) {
	s := newRecordingSurface()
	c := NewCanvas(s).WithOffset(10, 20)
	c.FillPaint(ImagePattern(1, 2, 3, 4, 0, 1))
	if !s.has("paint 4 11,22") {
		t.Errorf("paint not translated: %v", s.calls)
	}
}

func TestCanvasTransactionBalances(t *testing.T) {
	s := newRecordingSurface()
	c := NewCanvas(s)
	c.Transaction(func() {
		if s.depth != 1 {
			t.Errorf("depth inside = %d, want 1", s.depth)
		}
	})
	if s.depth != 0 {
		t.Errorf("depth after = %d, want 0", s.depth)
	}
}

func TestDrawImageSkipsInvalid(t *testing.T) {
	s := newRecordingSurface()
	NewCanvas(s).DrawImage(InvalidImage, 0, 0, 10, 10, 1)
	if len(s.calls) != 0 {
		t.Errorf("invalid image drew %v", s.calls)
	}
}

func TestPaintColorAt(t *testing.T) {
	lin := LinearGradient(0, 0, 100, 0, ColorBlack, ColorWhite)
	if got := lin.colorAt(50, 7); !approx(got.R, 0.5, 0.001) {
		t.Errorf("linear midpoint R = %v, want 0.5", got.R)
	}
	if got := lin.colorAt(-10, 0); got != ColorBlack {
		t.Errorf("linear before start = %v, want black", got)
	}
	rad := RadialGradient(0, 0, 10, 20, ColorBlack, ColorWhite)
	if got := rad.colorAt(15, 0); !approx(got.R, 0.5, 0.001) {
		t.Errorf("radial midpoint R = %v, want 0.5", got.R)
	}
	box := BoxGradient(0, 0, 100, 100, 0, 10, ColorBlack, ColorWhite)
	if got := box.colorAt(50, 50); got != ColorBlack {
		t.Errorf("box center = %v, want black", got)
	}
	if got := box.colorAt(150, 50); got != ColorWhite {
		t.Errorf("box far outside = %v, want white", got)
	}
}
