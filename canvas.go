package breeze

// PaintKind selects how a Paint colors a fill.
type PaintKind uint8

const (
	PaintSolid PaintKind = iota
	PaintLinear
	PaintBox
	PaintRadial
	PaintImage
)

// Paint is a fill style richer than a solid color. Build one with
// LinearGradient, BoxGradient, RadialGradient or ImagePattern.
type Paint struct {
	Kind PaintKind

	// Linear: start (X0,Y0) and end (X1,Y1).
	// Radial: center (X0,Y0).
	X0, Y0, X1, Y1 float32
	// Radial: inner and outer radius. Box: corner radius and feather.
	R0, R1 float32
	// Box: the inner rectangle. Image: where one copy of the image lands.
	Box Rect

	Inner, Outer Color

	ImageID int
	Alpha   float32
}

// LinearGradient fades from inner at (sx,sy) to outer at (ex,ey).
func LinearGradient(sx, sy, ex, ey float32, inner, outer Color) Paint {
	return Paint{Kind: PaintLinear, X0: sx, Y0: sy, X1: ex, Y1: ey, Inner: inner, Outer: outer}
}

// BoxGradient fades from inner inside the rounded rectangle to outer over
// feather pixels. Useful for drop shadows.
func BoxGradient(x, y, w, h, radius, feather float32, inner, outer Color) Paint {
	return Paint{Kind: PaintBox, Box: Rect{x, y, w, h}, R0: radius, R1: feather, Inner: inner, Outer: outer}
}

// RadialGradient fades from inner at radius inr to outer at radius outr
// around (cx,cy).
func RadialGradient(cx, cy, inr, outr float32, inner, outer Color) Paint {
	return Paint{Kind: PaintRadial, X0: cx, Y0: cy, R0: inr, R1: outr, Inner: inner, Outer: outer}
}

// ImagePattern tiles the image so one copy covers (x,y,w,h).
func ImagePattern(x, y, w, h float32, imageID int, alpha float32) Paint {
	return Paint{Kind: PaintImage, Box: Rect{x, y, w, h}, ImageID: imageID, Alpha: alpha}
}

func (p Paint) translated(dx, dy float32) Paint {
	p.X0 += dx
	p.Y0 += dy
	p.X1 += dx
	p.Y1 += dy
	p.Box.X += dx
	p.Box.Y += dy
	return p
}

// Canvas is what widgets draw on. It forwards to a Surface and adds its
// offset to every coordinate, so a widget draws in its parent's space
// without translating anything itself.
type Canvas struct {
	OffsetX, OffsetY float32

	s Surface
}

// NewCanvas creates a Canvas at the origin of s.
func NewCanvas(s Surface) *Canvas {
	return &Canvas{s: s}
}

// Surface returns the backend.
func (c *Canvas) Surface() Surface { return c.s }

// WithOffset returns a Canvas translated by (x, y).
func (c *Canvas) WithOffset(x, y float32) *Canvas {
	return &Canvas{OffsetX: c.OffsetX + x, OffsetY: c.OffsetY + y, s: c.s}
}

// Save pushes the drawing state.
func (c *Canvas) Save() { c.s.Save() }

// Restore pops the drawing state.
func (c *Canvas) Restore() { c.s.Restore() }

// Transaction runs fn between Save and Restore.
func (c *Canvas) Transaction(fn func()) {
	c.s.Save()
	defer c.s.Restore()
	fn()
}

func (c *Canvas) BeginPath()          { c.s.BeginPath() }
func (c *Canvas) ClosePath()          { c.s.ClosePath() }
func (c *Canvas) Fill()               { c.s.Fill() }
func (c *Canvas) Stroke()             { c.s.Stroke() }
func (c *Canvas) FillColor(col Color) { c.s.FillColor(col) }

// FillPaint sets a gradient or image fill positioned in canvas space.
func (c *Canvas) FillPaint(p Paint) { c.s.FillPaint(p.translated(c.OffsetX, c.OffsetY)) }

func (c *Canvas) StrokeColor(col Color) { c.s.StrokeColor(col) }
func (c *Canvas) StrokeWidth(w float32) { c.s.StrokeWidth(w) }
func (c *Canvas) GlobalAlpha(a float32) { c.s.GlobalAlpha(a) }

// Translate moves the origin of the surface state. Unlike WithOffset it is
// undone by Restore.
func (c *Canvas) Translate(x, y float32) { c.s.Translate(x, y) }

func (c *Canvas) MoveTo(x, y float32) { c.s.MoveTo(x+c.OffsetX, y+c.OffsetY) }
func (c *Canvas) LineTo(x, y float32) { c.s.LineTo(x+c.OffsetX, y+c.OffsetY) }

func (c *Canvas) BezierTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.s.BezierTo(c1x+c.OffsetX, c1y+c.OffsetY, c2x+c.OffsetX, c2y+c.OffsetY, x+c.OffsetX, y+c.OffsetY)
}

func (c *Canvas) QuadTo(cx, cy, x, y float32) {
	c.s.QuadTo(cx+c.OffsetX, cy+c.OffsetY, x+c.OffsetX, y+c.OffsetY)
}

func (c *Canvas) ArcTo(x1, y1, x2, y2, radius float32) {
	c.s.ArcTo(x1+c.OffsetX, y1+c.OffsetY, x2+c.OffsetX, y2+c.OffsetY, radius)
}

// Arc adds an arc around (cx,cy) from angle a0 to a1 in radians.
func (c *Canvas) Arc(cx, cy, r, a0, a1 float32, clockwise bool) {
	c.s.Arc(cx+c.OffsetX, cy+c.OffsetY, r, a0, a1, clockwise)
}

func (c *Canvas) Rect(x, y, w, h float32) { c.s.Rect(x+c.OffsetX, y+c.OffsetY, w, h) }

func (c *Canvas) RoundedRect(x, y, w, h, r float32) {
	c.s.RoundedRect(x+c.OffsetX, y+c.OffsetY, w, h, r)
}

func (c *Canvas) Ellipse(cx, cy, rx, ry float32) { c.s.Ellipse(cx+c.OffsetX, cy+c.OffsetY, rx, ry) }
func (c *Canvas) Circle(cx, cy, r float32)       { c.s.Circle(cx+c.OffsetX, cy+c.OffsetY, r) }

func (c *Canvas) Scissor(x, y, w, h float32) { c.s.Scissor(x+c.OffsetX, y+c.OffsetY, w, h) }

func (c *Canvas) IntersectScissor(x, y, w, h float32) {
	c.s.IntersectScissor(x+c.OffsetX, y+c.OffsetY, w, h)
}

func (c *Canvas) ResetScissor() { c.s.ResetScissor() }

func (c *Canvas) FontFace(family string) { c.s.FontFace(family) }
func (c *Canvas) FontSize(size float32)  { c.s.FontSize(size) }

// Text draws s with its top-left corner at (x, y).
func (c *Canvas) Text(x, y float32, s string) { c.s.Text(x+c.OffsetX, y+c.OffsetY, s) }

// TextBox draws s wrapped at breakWidth.
func (c *Canvas) TextBox(x, y, breakWidth float32, s string) {
	c.s.TextBox(x+c.OffsetX, y+c.OffsetY, breakWidth, s)
}

// --- Shape helpers ---

// FillRect fills a rectangle with the current fill style.
func (c *Canvas) FillRect(x, y, w, h float32) {
	c.BeginPath()
	c.Rect(x, y, w, h)
	c.Fill()
}

// FillRoundedRect fills a rounded rectangle with the current fill style.
func (c *Canvas) FillRoundedRect(x, y, w, h, r float32) {
	c.BeginPath()
	c.RoundedRect(x, y, w, h, r)
	c.Fill()
}

// StrokeRect outlines a rectangle with the current stroke style.
func (c *Canvas) StrokeRect(x, y, w, h float32) {
	c.BeginPath()
	c.Rect(x, y, w, h)
	c.Stroke()
}

// FillCircle fills a circle with the current fill style.
func (c *Canvas) FillCircle(cx, cy, r float32) {
	c.BeginPath()
	c.Circle(cx, cy, r)
	c.Fill()
}

// DrawImage draws img stretched over (x,y,w,h). Invalid images draw nothing.
func (c *Canvas) DrawImage(img Image, x, y, w, h, alpha float32) {
	if !img.Valid() {
		return
	}
	c.FillPaint(ImagePattern(x, y, w, h, img.ID, alpha))
	c.FillRect(x, y, w, h)
}
