package breeze

// Flex lays its children out in a row or column. Every layout write goes
// through AnimateTo, so changes to the child list animate when the children
// use a timed easing.
type Flex struct {
	Node

	Gap        float32
	Horizontal bool
	// AutoSize sizes the container to its content. See shouldAutoSize for
	// how a stretching parent overrides it.
	AutoSize bool
	// Reverse lays children out last to first.
	Reverse        bool
	AlignItems     Align
	JustifyContent Justify

	PaddingLeft, PaddingRight, PaddingTop, PaddingBottom *AnimatedFloat

	order   []Widget
	measure []Vec2
}

// NewFlex creates a vertical, auto-sizing flex container.
func NewFlex(name string) *Flex {
	f := &Flex{AutoSize: true}
	f.Init(f, KindFlex, name)
	f.PaddingLeft = f.Anim(0, DefaultDuration, EaseMutation, "padding-left")
	f.PaddingRight = f.Anim(0, DefaultDuration, EaseMutation, "padding-right")
	f.PaddingTop = f.Anim(0, DefaultDuration, EaseMutation, "padding-top")
	f.PaddingBottom = f.Anim(0, DefaultDuration, EaseMutation, "padding-bottom")
	return f
}

// NewRow creates a horizontal flex container.
func NewRow(name string) *Flex {
	f := NewFlex(name)
	f.Horizontal = true
	return f
}

// SetPadding sets all four paddings without animating.
func (f *Flex) SetPadding(top, right, bottom, left float32) {
	f.PaddingTop.ResetTo(top)
	f.PaddingRight.ResetTo(right)
	f.PaddingBottom.ResetTo(bottom)
	f.PaddingLeft.ResetTo(left)
}

// AsFlex implements Widget.
func (f *Flex) AsFlex() *Flex { return f }

// Update updates the children, then lays them out.
func (f *Flex) Update(ctx *UpdateContext) {
	f.Node.Update(ctx)
	f.layout(ctx.withChildOffset(&f.Node))
}

// shouldAutoSize decides whether the axis selected by mainAxis is sized to
// content. A Flex inside a stretching Flex parent leaves the axis the parent
// stretches alone unless it has no grow weight and the parent does not
// stretch.
func (f *Flex) shouldAutoSize(mainAxis bool) bool {
	if !f.AutoSize {
		return false
	}
	if f.parent == nil {
		return true
	}
	pf := f.parent.AsFlex()
	if pf == nil {
		return true
	}
	if pf.AlignItems != AlignStretch && f.FlexGrow == 0 {
		return true
	}
	return f.Horizontal != mainAxis
}

func isSpacer(w Widget) bool {
	return w.Base().Kind == KindSpacer
}

// mainSize returns the main-axis component of a measured size.
func (f *Flex) mainSize(v Vec2) float32 {
	if f.Horizontal {
		return v.X
	}
	return v.Y
}

func (f *Flex) layout(ctx *UpdateContext) {
	padL, padR := f.PaddingLeft.Value(), f.PaddingRight.Value()
	padT, padB := f.PaddingTop.Value(), f.PaddingBottom.Value()

	f.order = append(f.order[:0], f.children...)
	if f.Reverse {
		for i, j := 0, len(f.order)-1; i < j; i, j = i+1, j-1 {
			f.order[i], f.order[j] = f.order[j], f.order[i]
		}
	}
	children := f.order
	n := len(children)

	// Pass 1: measure.
	f.measure = f.measure[:0]
	var maxCross, fixed, totalGrow float32
	spacers := 0
	for _, child := range children {
		m := Vec2{child.MeasureWidth(ctx), child.MeasureHeight(ctx)}
		f.measure = append(f.measure, m)
		if f.Horizontal {
			maxCross = max(maxCross, m.Y)
		} else {
			maxCross = max(maxCross, m.X)
		}
		if isSpacer(child) {
			spacers++
			continue
		}
		fixed += f.mainSize(m)
		totalGrow += child.Base().FlexGrow
	}

	var gaps float32
	if n > 1 {
		gaps = float32(n-1) * f.Gap
	}

	var spacerSize float32
	if spacers > 0 && !f.shouldAutoSize(true) {
		var available float32
		if f.Horizontal {
			available = f.Width.Dest() - padL - padR
		} else {
			available = f.Height.Dest() - padT - padB
		}
		spacerSize = max(0, (available-fixed-gaps)/float32(spacers))
	}
	content := fixed + gaps + float32(spacers)*spacerSize

	if f.shouldAutoSize(f.Horizontal) {
		w := maxCross
		if f.Horizontal {
			w = content
		}
		f.Width.AnimateTo(roundPx(w + padL + padR))
	}
	if f.shouldAutoSize(!f.Horizontal) {
		h := content
		if f.Horizontal {
			h = maxCross
		}
		f.Height.AnimateTo(roundPx(h + padT + padB))
	}

	innerW := f.Width.Dest() - padL - padR
	innerH := f.Height.Dest() - padT - padB

	// Pass 2: cross-axis alignment.
	for i, child := range children {
		cb := child.Base()
		if isSpacer(child) {
			if f.Horizontal {
				cb.Width.AnimateTo(spacerSize)
			} else {
				cb.Height.AnimateTo(spacerSize)
			}
			continue
		}
		m := f.measure[i]
		if f.Horizontal {
			switch f.AlignItems {
			case AlignCenter:
				cb.Y.AnimateTo(roundPx(padT + (innerH-m.Y)/2))
			case AlignEnd:
				cb.Y.AnimateTo(roundPx(padT + innerH - m.Y))
			case AlignStretch:
				cb.Height.AnimateTo(roundPx(innerH))
				cb.Y.AnimateTo(roundPx(padT))
			default:
				cb.Y.AnimateTo(roundPx(padT))
			}
			continue
		}
		switch f.AlignItems {
		case AlignCenter:
			cb.X.AnimateTo(roundPx(padL + (innerW-m.X)/2))
		case AlignEnd:
			cb.X.AnimateTo(roundPx(padL + innerW - m.X))
		case AlignStretch:
			cb.Width.AnimateTo(roundPx(innerW))
			if t := child.AsText(); t != nil {
				t.SetWrapWidth(innerW)
			}
			cb.X.AnimateTo(roundPx(padL))
		default:
			cb.X.AnimateTo(roundPx(padL))
		}
	}

	// Pass 3: main-axis distribution.
	inner := innerH
	pos := padT
	if f.Horizontal {
		inner = innerW
		pos = padL
	}
	remaining := inner - content
	offset, gap := justifyOffsets(f.JustifyContent, remaining, f.Gap, n)
	pos += offset

	var growSpace float32
	if totalGrow > 0 && remaining > 0 {
		growSpace = remaining
	}

	for i, child := range children {
		cb := child.Base()
		mainPos, mainSize := cb.Y, cb.Height
		if f.Horizontal {
			mainPos, mainSize = cb.X, cb.Width
		}
		mainPos.AnimateTo(roundPx(pos))

		base := f.mainSize(f.measure[i])
		if isSpacer(child) {
			base = spacerSize
		}
		var extra float32
		if cb.FlexGrow > 0 && totalGrow > 0 {
			extra = cb.FlexGrow / totalGrow * growSpace
			mainSize.AnimateTo(roundPx(base + extra))
		}
		pos += base + extra + gap
	}
	clear(f.order)
}

// justifyOffsets returns the leading offset and the effective gap for n
// children with remaining free space along the main axis.
func justifyOffsets(j Justify, remaining, gap float32, n int) (offset, effectiveGap float32) {
	effectiveGap = gap
	if n == 0 {
		return 0, effectiveGap
	}
	switch j {
	case JustifyEnd:
		offset = remaining
	case JustifyCenter:
		offset = remaining / 2
	case JustifySpaceBetween:
		if n > 1 {
			effectiveGap += remaining / float32(n-1)
		}
	case JustifySpaceAround:
		effectiveGap += remaining / float32(n)
		offset = effectiveGap / 2
	case JustifySpaceEvenly:
		effectiveGap += remaining / float32(n+1)
		offset = effectiveGap
	}
	return offset, effectiveGap
}

// MeasureWidth returns the destination width when not auto-sizing, otherwise
// the width of the content plus horizontal padding.
func (f *Flex) MeasureWidth(ctx *UpdateContext) float32 {
	if !f.AutoSize {
		return f.Width.Dest()
	}
	var w float32
	if f.Horizontal {
		for _, child := range f.children {
			w += child.MeasureWidth(ctx)
		}
		w += f.gapTotal()
	} else {
		for _, child := range f.children {
			w = max(w, child.MeasureWidth(ctx))
		}
	}
	return w + f.PaddingLeft.Value() + f.PaddingRight.Value()
}

// MeasureHeight returns the destination height when not auto-sizing,
// otherwise the height of the content plus vertical padding.
func (f *Flex) MeasureHeight(ctx *UpdateContext) float32 {
	if !f.AutoSize {
		return f.Height.Dest()
	}
	var h float32
	if f.Horizontal {
		for _, child := range f.children {
			h = max(h, child.MeasureHeight(ctx))
		}
	} else {
		for _, child := range f.children {
			h += child.MeasureHeight(ctx)
		}
		h += f.gapTotal()
	}
	return h + f.PaddingTop.Value() + f.PaddingBottom.Value()
}

func (f *Flex) gapTotal() float32 {
	if len(f.children) < 2 {
		return 0
	}
	return float32(len(f.children)-1) * f.Gap
}

// Spacer takes an equal share of the main-axis space its Flex parent has
// left over. It only has an effect when the parent does not auto-size its
// main axis.
type Spacer struct {
	Node
}

// NewSpacer creates a Spacer.
func NewSpacer() *Spacer {
	s := &Spacer{}
	s.Init(s, KindSpacer, "spacer")
	return s
}
