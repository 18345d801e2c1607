package breeze

import (
	"image"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is a drawing backend with a path-and-paint API. Coordinates are
// absolute logical pixels; Canvas adds widget offsets before calling in.
type Surface interface {
	TextMeasurer

	// BeginFrame clears the target and resets all state.
	BeginFrame(width, height int, dpiScale float32)
	EndFrame()

	Save()
	Restore()

	BeginPath()
	MoveTo(x, y float32)
	LineTo(x, y float32)
	BezierTo(c1x, c1y, c2x, c2y, x, y float32)
	QuadTo(cx, cy, x, y float32)
	ArcTo(x1, y1, x2, y2, radius float32)
	Arc(cx, cy, r, a0, a1 float32, clockwise bool)
	Rect(x, y, w, h float32)
	RoundedRect(x, y, w, h, r float32)
	Ellipse(cx, cy, rx, ry float32)
	Circle(cx, cy, r float32)
	ClosePath()
	Fill()
	Stroke()

	FillColor(c Color)
	FillPaint(p Paint)
	StrokeColor(c Color)
	StrokeWidth(w float32)
	GlobalAlpha(a float32)
	Translate(x, y float32)

	Scissor(x, y, w, h float32)
	IntersectScissor(x, y, w, h float32)
	ResetScissor()

	FontFace(family string)
	FontSize(size float32)
	Text(x, y float32, s string)
	TextBox(x, y, breakWidth float32, s string)

	// CreateImageRGBA uploads premultiplied RGBA pixels and returns an image
	// id, or InvalidImageID.
	CreateImageRGBA(w, h int, pix []byte) int
	DeleteImage(id int)
	ImageSize(id int) (w, h int, ok bool)
}

type surfaceState struct {
	fill        Color
	paint       Paint
	stroke      Color
	strokeWidth float32
	alpha       float32
	tx, ty      float32
	scissor     image.Rectangle
	scissored   bool
	family      string
	size        float32
}

func defaultSurfaceState() surfaceState {
	return surfaceState{
		fill:        ColorWhite,
		stroke:      ColorBlack,
		strokeWidth: 1,
		alpha:       1,
		family:      DefaultFontFamily,
		size:        14,
	}
}

// EbitenSurface draws onto an *ebiten.Image with the vector and text/v2
// packages. Set the target with SetTarget before BeginFrame.
type EbitenSurface struct {
	fonts  *Fonts
	target *ebiten.Image
	scale  float32

	path  vector.Path
	state surfaceState
	stack []surfaceState

	images    map[int]*ebiten.Image
	nextImage int

	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

// NewEbitenSurface creates a surface that measures and draws text with fonts.
func NewEbitenSurface(fonts *Fonts) *EbitenSurface {
	white := ebiten.NewImage(3, 3)
	white.Fill(ColorWhite.toRGBA())
	return &EbitenSurface{
		fonts:  fonts,
		scale:  1,
		state:  defaultSurfaceState(),
		images: make(map[int]*ebiten.Image),
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetTarget sets the image subsequent frames draw into.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Target returns the current target image.
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.target
}

// Fonts returns the font registry.
func (s *EbitenSurface) Fonts() *Fonts {
	return s.fonts
}

func (s *EbitenSurface) BeginFrame(width, height int, dpiScale float32) {
	if dpiScale <= 0 {
		dpiScale = 1
	}
	s.scale = dpiScale
	s.state = defaultSurfaceState()
	s.stack = s.stack[:0]
	s.path = vector.Path{}
	if s.target != nil {
		s.target.Clear()
	}
}

func (s *EbitenSurface) EndFrame() {
	if len(s.stack) != 0 {
		debugf("surface: %d unbalanced Save calls at end of frame", len(s.stack))
		s.stack = s.stack[:0]
	}
}

func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		debugf("surface: Restore without Save")
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// pt maps a logical point to target pixels.
func (s *EbitenSurface) pt(x, y float32) (float32, float32) {
	return (x + s.state.tx) * s.scale, (y + s.state.ty) * s.scale
}

func (s *EbitenSurface) BeginPath() {
	s.path = vector.Path{}
}

func (s *EbitenSurface) MoveTo(x, y float32) {
	s.path.MoveTo(s.pt(x, y))
}

func (s *EbitenSurface) LineTo(x, y float32) {
	s.path.LineTo(s.pt(x, y))
}

func (s *EbitenSurface) BezierTo(c1x, c1y, c2x, c2y, x, y float32) {
	ax, ay := s.pt(c1x, c1y)
	bx, by := s.pt(c2x, c2y)
	ex, ey := s.pt(x, y)
	s.path.CubicTo(ax, ay, bx, by, ex, ey)
}

func (s *EbitenSurface) QuadTo(cx, cy, x, y float32) {
	ax, ay := s.pt(cx, cy)
	ex, ey := s.pt(x, y)
	s.path.QuadTo(ax, ay, ex, ey)
}

func (s *EbitenSurface) ArcTo(x1, y1, x2, y2, radius float32) {
	ax, ay := s.pt(x1, y1)
	bx, by := s.pt(x2, y2)
	s.path.ArcTo(ax, ay, bx, by, radius*s.scale)
}

func (s *EbitenSurface) Arc(cx, cy, r, a0, a1 float32, clockwise bool) {
	px, py := s.pt(cx, cy)
	dir := vector.CounterClockwise
	if clockwise {
		dir = vector.Clockwise
	}
	s.path.Arc(px, py, r*s.scale, a0, a1, dir)
}

func (s *EbitenSurface) Rect(x, y, w, h float32) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.path.Close()
}

func (s *EbitenSurface) RoundedRect(x, y, w, h, r float32) {
	r = min(r, w/2, h/2)
	if r <= 0 {
		s.Rect(x, y, w, h)
		return
	}
	s.MoveTo(x+r, y)
	s.ArcTo(x+w, y, x+w, y+h, r)
	s.ArcTo(x+w, y+h, x, y+h, r)
	s.ArcTo(x, y+h, x, y, r)
	s.ArcTo(x, y, x+w, y, r)
	s.path.Close()
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847493

func (s *EbitenSurface) Ellipse(cx, cy, rx, ry float32) {
	kx, ky := rx*kappa, ry*kappa
	s.MoveTo(cx-rx, cy)
	s.BezierTo(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry)
	s.BezierTo(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy)
	s.BezierTo(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry)
	s.BezierTo(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy)
	s.path.Close()
}

func (s *EbitenSurface) Circle(cx, cy, r float32) {
	s.Ellipse(cx, cy, r, r)
}

func (s *EbitenSurface) ClosePath() {
	s.path.Close()
}

// dst returns the target clipped to the scissor.
func (s *EbitenSurface) dst() *ebiten.Image {
	if !s.state.scissored {
		return s.target
	}
	return s.target.SubImage(s.state.scissor).(*ebiten.Image)
}

func (s *EbitenSurface) Fill() {
	if s.target == nil {
		return
	}
	if s.state.paint.Kind != PaintSolid {
		s.fillPaint()
		return
	}
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(s.state.fill.WithAlpha(s.state.alpha).toRGBA())
	vector.FillPath(s.dst(), &s.path, nil, op)
}

// fillPaint rasterizes the path as triangles and colors each vertex from
// the paint. Gradients are exact along straight edges.
func (s *EbitenSurface) fillPaint() {
	p := s.state.paint
	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	src := s.white
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}

	if p.Kind == PaintImage {
		img, ok := s.images[p.ImageID]
		if !ok || p.Box.Width == 0 || p.Box.Height == 0 {
			return
		}
		src = img
		op.Address = ebiten.AddressRepeat
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		a := p.Alpha * s.state.alpha
		for i := range s.vs {
			v := &s.vs[i]
			v.SrcX = (v.DstX - p.Box.X) / p.Box.Width * float32(iw)
			v.SrcY = (v.DstY - p.Box.Y) / p.Box.Height * float32(ih)
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = a, a, a, a
		}
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		s.dst().DrawTriangles(s.vs, s.is, src, op)
		return
	}

	for i := range s.vs {
		v := &s.vs[i]
		col := p.colorAt(v.DstX, v.DstY).WithAlpha(s.state.alpha)
		v.SrcX, v.SrcY = 1.5, 1.5
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = col.R, col.G, col.B, col.A
	}
	s.dst().DrawTriangles(s.vs, s.is, src, op)
}

// colorAt evaluates a gradient paint at a target pixel.
func (p Paint) colorAt(x, y float32) Color {
	var t float32
	switch p.Kind {
	case PaintLinear:
		dx, dy := p.X1-p.X0, p.Y1-p.Y0
		l2 := dx*dx + dy*dy
		if l2 > 0 {
			t = ((x-p.X0)*dx + (y-p.Y0)*dy) / l2
		}
	case PaintRadial:
		d := float32(math.Hypot(float64(x-p.X0), float64(y-p.Y0)))
		if p.R1 > p.R0 {
			t = (d - p.R0) / (p.R1 - p.R0)
		}
	case PaintBox:
		// Distance outside the rounded inner box, over the feather.
		hw, hh := p.Box.Width/2, p.Box.Height/2
		cx, cy := p.Box.X+hw, p.Box.Y+hh
		qx := float32(math.Abs(float64(x-cx))) - (hw - p.R0)
		qy := float32(math.Abs(float64(y-cy))) - (hh - p.R0)
		d := float32(math.Hypot(float64(max(qx, 0)), float64(max(qy, 0)))) + min(max(qx, qy), 0) - p.R0
		if p.R1 > 0 {
			t = (d + p.R1/2) / p.R1
		} else if d > 0 {
			t = 1
		}
	}
	return p.Inner.Lerp(p.Outer, clamp01(t))
}

func (s *EbitenSurface) Stroke() {
	if s.target == nil {
		return
	}
	sop := &vector.StrokeOptions{
		Width:    s.state.strokeWidth * s.scale,
		LineJoin: vector.LineJoinRound,
	}
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(s.state.stroke.WithAlpha(s.state.alpha).toRGBA())
	vector.StrokePath(s.dst(), &s.path, sop, op)
}

func (s *EbitenSurface) FillColor(c Color) {
	s.state.fill = c
	s.state.paint = Paint{}
}

// FillPaint sets a paint given in logical coordinates.
func (s *EbitenSurface) FillPaint(p Paint) {
	x0, y0 := s.pt(p.X0, p.Y0)
	x1, y1 := s.pt(p.X1, p.Y1)
	bx, by := s.pt(p.Box.X, p.Box.Y)
	p.X0, p.Y0, p.X1, p.Y1 = x0, y0, x1, y1
	p.Box = Rect{bx, by, p.Box.Width * s.scale, p.Box.Height * s.scale}
	p.R0 *= s.scale
	p.R1 *= s.scale
	s.state.paint = p
}

func (s *EbitenSurface) StrokeColor(c Color)   { s.state.stroke = c }
func (s *EbitenSurface) StrokeWidth(w float32) { s.state.strokeWidth = w }
func (s *EbitenSurface) GlobalAlpha(a float32) { s.state.alpha = a }

func (s *EbitenSurface) Translate(x, y float32) {
	s.state.tx += x
	s.state.ty += y
}

func (s *EbitenSurface) scissorRect(x, y, w, h float32) image.Rectangle {
	x0, y0 := s.pt(x, y)
	x1, y1 := s.pt(x+w, y+h)
	return image.Rect(
		int(math.Floor(float64(x0))), int(math.Floor(float64(y0))),
		int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1))),
	)
}

func (s *EbitenSurface) Scissor(x, y, w, h float32) {
	s.state.scissor = s.scissorRect(x, y, max(w, 0), max(h, 0))
	s.state.scissored = true
}

func (s *EbitenSurface) IntersectScissor(x, y, w, h float32) {
	r := s.scissorRect(x, y, max(w, 0), max(h, 0))
	if s.state.scissored {
		r = r.Intersect(s.state.scissor)
	}
	s.state.scissor = r
	s.state.scissored = true
}

func (s *EbitenSurface) ResetScissor() {
	s.state.scissored = false
	s.state.scissor = image.Rectangle{}
}

func (s *EbitenSurface) FontFace(family string) { s.state.family = family }
func (s *EbitenSurface) FontSize(size float32)  { s.state.size = size }

// deviceFace returns the current face sized for the target's pixel density.
func (s *EbitenSurface) deviceFace() *text.GoTextFace {
	return s.fonts.Face(s.state.family, s.state.size*s.scale)
}

func (s *EbitenSurface) drawText(x, y float32, str string, face *text.GoTextFace) {
	if s.target == nil || str == "" {
		return
	}
	px, py := s.pt(x, y)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(px), float64(py))
	op.ColorScale.ScaleWithColor(s.state.fill.WithAlpha(s.state.alpha).toRGBA())
	op.LineSpacing = lineHeight(face)
	text.Draw(s.dst(), str, face, op)
}

func (s *EbitenSurface) Text(x, y float32, str string) {
	s.drawText(x, y, str, s.deviceFace())
}

func (s *EbitenSurface) TextBox(x, y, breakWidth float32, str string) {
	face := s.deviceFace()
	lines := wrapLines(face, str, float64(breakWidth*s.scale))
	s.drawText(x, y, strings.Join(lines, "\n"), face)
}

func (s *EbitenSurface) MeasureText(family string, size float32, str string) (w, h float32) {
	return s.fonts.MeasureText(family, size, str)
}

func (s *EbitenSurface) MeasureTextBox(family string, size float32, str string, maxWidth float32) (w, h float32) {
	return s.fonts.MeasureTextBox(family, size, str, maxWidth)
}

func (s *EbitenSurface) CreateImageRGBA(w, h int, pix []byte) int {
	if w <= 0 || h <= 0 || len(pix) < 4*w*h {
		return InvalidImageID
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(pix[:4*w*h])
	id := s.nextImage
	s.nextImage++
	s.images[id] = img
	return id
}

func (s *EbitenSurface) DeleteImage(id int) {
	if img, ok := s.images[id]; ok {
		img.Deallocate()
		delete(s.images, id)
	}
}

func (s *EbitenSurface) ImageSize(id int) (w, h int, ok bool) {
	img, ok := s.images[id]
	if !ok {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}
