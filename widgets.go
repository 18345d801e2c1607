package breeze

// Padding surrounds its children with space and sizes itself to the largest
// child plus the padding.
type Padding struct {
	Node

	PaddingLeft, PaddingRight, PaddingTop, PaddingBottom *AnimatedFloat
}

// NewPadding creates a Padding with zero padding on every side.
func NewPadding(name string) *Padding {
	p := &Padding{}
	p.initPadding(p, KindPadding, name)
	return p
}

func (p *Padding) initPadding(self Widget, kind Kind, name string) {
	p.Init(self, kind, name)
	p.PaddingLeft = p.Anim(0, DefaultDuration, EaseMutation, "padding-left")
	p.PaddingRight = p.Anim(0, DefaultDuration, EaseMutation, "padding-right")
	p.PaddingTop = p.Anim(0, DefaultDuration, EaseMutation, "padding-top")
	p.PaddingBottom = p.Anim(0, DefaultDuration, EaseMutation, "padding-bottom")
}

// SetPadding sets all four paddings without animating.
func (p *Padding) SetPadding(top, right, bottom, left float32) {
	p.PaddingTop.ResetTo(top)
	p.PaddingRight.ResetTo(right)
	p.PaddingBottom.ResetTo(bottom)
	p.PaddingLeft.ResetTo(left)
}

// Update updates the children inside the padding, then sizes p around them.
func (p *Padding) Update(ctx *UpdateContext) {
	p.UpdateSelf(ctx)
	p.UpdateChildren(ctx.offsetBy(p.PaddingLeft, p.PaddingTop).withChildOffset(&p.Node))
	p.recordOffset(ctx)

	var maxW, maxH float32
	for _, child := range p.children {
		maxW = max(maxW, child.MeasureWidth(ctx))
		maxH = max(maxH, child.MeasureHeight(ctx))
	}
	p.Width.AnimateTo(maxW + p.PaddingLeft.Dest() + p.PaddingRight.Dest())
	p.Height.AnimateTo(maxH + p.PaddingTop.Dest() + p.PaddingBottom.Dest())
}

// Render draws the children inside the padding.
func (p *Padding) Render(c *Canvas) {
	p.checkRenderOffset(c)
	p.RenderChildren(c.WithOffset(p.X.Value()+p.PaddingLeft.Value(), p.Y.Value()+p.PaddingTop.Value()))
}

// RectWidget fills a rounded rectangle with Color. Opacity ranges from 0 to
// 255 and replaces the color's alpha.
type RectWidget struct {
	Node

	Color   Color
	Opacity *AnimatedFloat
	Radius  *AnimatedFloat
}

// NewRectWidget creates a transparent RectWidget whose opacity tweens
// linearly.
func NewRectWidget(name string) *RectWidget {
	r := &RectWidget{}
	r.Init(r, KindRect, name)
	r.Opacity = r.Anim(0, DefaultDuration, EaseLinear, "opacity")
	r.Radius = r.Anim(0, 0, EaseMutation, "radius")
	return r
}

// Render fills the rectangle, then draws the children on top.
func (r *RectWidget) Render(c *Canvas) {
	col := r.Color
	col.A = r.Opacity.Value() / 255
	c.FillColor(col)
	c.FillRoundedRect(r.X.Value(), r.Y.Value(), r.Width.Value(), r.Height.Value(), r.Radius.Value())
	r.Node.Render(c)
}

// Button colors.
var (
	ButtonBackground        = Color{0.3, 0.3, 0.3, 0.6}
	ButtonBackgroundHovered = Color{0.35, 0.35, 0.35, 0.7}
	ButtonBackgroundActive  = Color{0.3, 0.3, 0.3, 0.7}
	ButtonLabelColor        = Color{1, 1, 1, 0.95}
)

const (
	buttonRadius      float32 = 6
	buttonBorderWidth float32 = 1
)

// Button is a padded, rounded box that reports clicks. The background
// follows the pointer state; each edge has its own border color and corners
// blend the two edges they join.
type Button struct {
	Padding

	Background AnimatedColor

	BorderTop, BorderRight, BorderBottom, BorderLeft AnimatedColor

	// OnClick is called during update when a click lands on the button.
	OnClick func(ctx *UpdateContext)
	// UpdateColors replaces the default background state colors.
	UpdateColors func(b *Button, active, hovered bool)
}

// NewButton creates a button with a text label. An empty label creates a
// button with no children.
func NewButton(label string) *Button {
	b := &Button{}
	b.initPadding(b, KindButton, "button")
	b.SetPadding(10, 20, 10, 22)
	b.Background = NewAnimatedColor(&b.Node, Color{40.0 / 255, 40.0 / 255, 40.0 / 255, 0.6}, "bg")
	b.BorderTop = NewAnimatedColor(&b.Node, Color{1, 1, 1, 0.12}, "border-top")
	b.BorderRight = NewAnimatedColor(&b.Node, Color{1, 1, 1, 0.04}, "border-right")
	b.BorderBottom = NewAnimatedColor(&b.Node, Color{1, 1, 1, 0.02}, "border-bottom")
	b.BorderLeft = NewAnimatedColor(&b.Node, Color{1, 1, 1, 0.04}, "border-left")
	if label != "" {
		t := NewText(label)
		t.Color.ResetTo(ButtonLabelColor)
		b.AddChild(t)
	}
	return b
}

// Label returns the first text child, or nil.
func (b *Button) Label() *Text {
	for _, child := range b.children {
		if t := child.AsText(); t != nil {
			return t
		}
	}
	return nil
}

// Update lays out the padding, handles a click, and updates the colors.
func (b *Button) Update(ctx *UpdateContext) {
	b.Padding.Update(ctx)

	if ctx.MouseClickedOnHit(b) {
		if b.OnClick != nil {
			b.OnClick(ctx)
		}
		emitWidgetEvent(ctx, WidgetEvent{Type: EventClick, NodeID: b.ID, Name: b.Name, X: ctx.MouseX, Y: ctx.MouseY})
	}

	active, hovered := ctx.MouseDownOn(b, true), ctx.Hovered(b, true)
	if b.UpdateColors != nil {
		b.UpdateColors(b, active, hovered)
		return
	}
	b.defaultColors(active, hovered)
}

func (b *Button) defaultColors(active, hovered bool) {
	switch {
	case active:
		b.Background.AnimateTo(ButtonBackgroundActive)
	case hovered:
		b.Background.AnimateTo(ButtonBackgroundHovered)
	default:
		b.Background.AnimateTo(ButtonBackground)
	}
}

// Render draws the background, the borders, then the label.
func (b *Button) Render(c *Canvas) {
	x, y := b.X.Value(), b.Y.Value()
	w, h := b.Width.Value(), b.Height.Value()
	const r, bw = buttonRadius, buttonBorderWidth
	const half = bw / 2

	c.FillColor(b.Background.Color())
	c.FillRoundedRect(x, y, w, h, r)

	edge := func(col Color, x0, y0, x1, y1 float32) {
		c.BeginPath()
		c.StrokeWidth(bw)
		c.StrokeColor(col)
		c.MoveTo(x0, y0)
		c.LineTo(x1, y1)
		c.Stroke()
	}
	edge(b.BorderTop.Color(), x+r, y+half, x+w-r, y+half)
	edge(b.BorderRight.Color(), x+w-half, y+r, x+w-half, y+h-r)
	edge(b.BorderBottom.Color(), x+w-r, y+h-half, x+r, y+h-half)
	edge(b.BorderLeft.Color(), x+half, y+h-r, x+half, y+r)

	corner := func(col Color, x0, y0, x1, y1, x2, y2 float32) {
		c.BeginPath()
		c.StrokeWidth(bw)
		c.StrokeColor(col)
		c.MoveTo(x0, y0)
		c.ArcTo(x1, y1, x2, y2, r-half)
		c.Stroke()
	}
	corner(b.BorderRight.Blend(b.BorderTop, 0.5), x+w-r, y+half, x+w-half, y+half, x+w-half, y+r)
	corner(b.BorderBottom.Blend(b.BorderRight, 0.5), x+w-half, y+h-r, x+w-half, y+h-half, x+w-r, y+h-half)
	corner(b.BorderLeft.Blend(b.BorderBottom, 0.5), x+r, y+h-half, x+half, y+h-half, x+half, y+h-r)
	corner(b.BorderTop.Blend(b.BorderLeft, 0.5), x+half, y+r, x+half, y+half, x+r, y+half)

	b.Padding.Render(c)
}
