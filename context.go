package breeze

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// frameState is shared by every UpdateContext derived during one frame.
type frameState struct {
	needRepaint bool
	claims      []*Node
	// deferring queues AfterAnimate callbacks until the driver drains them
	// after the pass. Set only on driver frames.
	deferring bool
	deferred  []func()
}

// UpdateContext carries per-frame input and the accumulated offset of the
// parent being updated. Derive child contexts with WithOffset; the repaint
// flag and the hit-claim list are shared by every derived context.
type UpdateContext struct {
	// DeltaTime is the time since the previous frame in milliseconds.
	DeltaTime float32

	// MouseX and MouseY are window-local and DPI-corrected.
	MouseX, MouseY float32

	MouseDown         bool
	RightMouseDown    bool
	MouseClicked      bool // left button released this frame
	RightMouseClicked bool // right button released this frame
	MouseUp           bool

	// ScrollY is the wheel delta accumulated since the previous frame.
	ScrollY float32

	Screen ScreenInfo

	// OffsetX and OffsetY are the absolute destination-space position of the
	// parent of the widget being updated.
	OffsetX, OffsetY float32

	// Measurer measures text. Nil means text widgets keep their size.
	Measurer TextMeasurer

	drawX, drawY float32
	frame        *frameState
	driver       *Driver
}

// NewUpdateContext returns a root context for one frame with no input.
// Driver builds its own contexts; this is for driving a tree by hand.
// AfterAnimate callbacks fire as soon as their animation settles.
func NewUpdateContext(dt float32) *UpdateContext {
	return &UpdateContext{DeltaTime: dt, frame: &frameState{}}
}

// WithOffset returns a child context translated by (x, y).
func (c *UpdateContext) WithOffset(x, y float32) *UpdateContext {
	cp := *c
	cp.OffsetX += x
	cp.OffsetY += y
	cp.drawX += x
	cp.drawY += y
	return &cp
}

// withChildOffset translates by n's destination position for the children
// of n, tracking n's current position for render diagnostics.
func (c *UpdateContext) withChildOffset(n *Node) *UpdateContext {
	return c.offsetBy(n.X, n.Y)
}

// offsetBy translates by the destinations of x and y, and the render
// diagnostics by their current values.
func (c *UpdateContext) offsetBy(x, y *AnimatedFloat) *UpdateContext {
	cp := *c
	cp.OffsetX += x.Dest()
	cp.OffsetY += y.Dest()
	cp.drawX += x.Value()
	cp.drawY += y.Value()
	return &cp
}

// WithResetOffset returns a context at the origin.
func (c *UpdateContext) WithResetOffset() *UpdateContext {
	cp := *c
	cp.OffsetX, cp.OffsetY = 0, 0
	cp.drawX, cp.drawY = 0, 0
	return &cp
}

// Within returns a context positioned where w was last updated, so that
// hover queries on w can be made from outside its update.
func (c *UpdateContext) Within(w Widget) *UpdateContext {
	cp := *c
	cp.OffsetX, cp.OffsetY = w.Base().LastOffset()
	return &cp
}

// RequestRepaint marks the current frame as needing a redraw.
func (c *UpdateContext) RequestRepaint() {
	c.frame.needRepaint = true
}

// NeedRepaint reports whether anything requested a redraw this frame.
func (c *UpdateContext) NeedRepaint() bool {
	return c.frame.needRepaint
}

// Driver returns the driver running this frame, or nil.
func (c *UpdateContext) Driver() *Driver {
	return c.driver
}

func (c *UpdateContext) deferHook() func(func()) {
	if c.frame == nil || !c.frame.deferring {
		return nil
	}
	return c.deferCall
}

func (c *UpdateContext) deferCall(fn func()) {
	c.frame.deferred = append(c.frame.deferred, fn)
}

// runDeferred runs callbacks queued during the update pass. Callbacks queued
// while running are run too.
func (c *UpdateContext) runDeferred() {
	for len(c.frame.deferred) > 0 {
		batch := c.frame.deferred
		c.frame.deferred = nil
		for _, fn := range batch {
			fn()
		}
	}
}

// --- Hover and click claim protocol ---

// Hovered reports whether the pointer is over w. With hittest set, a widget
// that lies off the path of an existing hit claim is not hovered.
// c must be the context w is updated with.
func (c *UpdateContext) Hovered(w Widget, hittest bool) bool {
	if !w.CheckHit(c) {
		return false
	}
	if hittest && len(c.frame.claims) > 0 {
		return c.onClaimPath(w.Base())
	}
	return true
}

// onClaimPath reports whether n is a claimant, an ancestor of one, or a
// descendant of one.
func (c *UpdateContext) onClaimPath(n *Node) bool {
	for _, claimant := range c.frame.claims {
		if isAncestor(n, claimant) || isAncestor(claimant, n) {
			return true
		}
	}
	return false
}

// HoveredHit reports Hovered with hit testing and, when true, claims the hit
// for w.
func (c *UpdateContext) HoveredHit(w Widget) bool {
	if !c.Hovered(w, true) {
		return false
	}
	c.ClaimHit(w)
	return true
}

// MouseClickedOn reports a left click released over w.
func (c *UpdateContext) MouseClickedOn(w Widget, hittest bool) bool {
	return c.MouseClicked && c.Hovered(w, hittest)
}

// MouseDownOn reports the left button held over w.
func (c *UpdateContext) MouseDownOn(w Widget, hittest bool) bool {
	return c.MouseDown && c.Hovered(w, hittest)
}

// MouseClickedOnHit reports MouseClickedOn with hit testing and, when true,
// claims the hit for w.
func (c *UpdateContext) MouseClickedOnHit(w Widget) bool {
	if !c.MouseClickedOn(w, true) {
		return false
	}
	c.ClaimHit(w)
	return true
}

// ClaimHit records w as having consumed the pointer event this frame.
// Later hit-tested hover queries succeed only on w's ancestor/descendant line.
func (c *UpdateContext) ClaimHit(w Widget) {
	c.frame.claims = append(c.frame.claims, w.Base())
}

// Claims returns the widgets that claimed a hit this frame.
func (c *UpdateContext) Claims() []*Node {
	return c.frame.claims
}

// --- Keyboard ---

// KeyPressed reports a press or auto-repeat of key this frame.
func (c *UpdateContext) KeyPressed(key ebiten.Key) bool {
	if c.driver == nil {
		return false
	}
	return c.driver.keyState(key)&keyPressedMask != 0
}

// KeyReleased reports a release of key this frame.
func (c *UpdateContext) KeyReleased(key ebiten.Key) bool {
	if c.driver == nil {
		return false
	}
	return c.driver.keyState(key)&KeyReleased != 0
}

// KeyDown reports whether key is currently held.
func (c *UpdateContext) KeyDown(key ebiten.Key) bool {
	if c.driver == nil {
		return false
	}
	return c.driver.host.KeyDown(key)
}

// StopKeyPropagation consumes key so widgets updated later this frame do not
// see it.
func (c *UpdateContext) StopKeyPropagation(key ebiten.Key) {
	if c.driver == nil {
		return
	}
	c.driver.consumeKey(key)
}

// HoverInfo describes w's hover state for diagnostics.
func (c *UpdateContext) HoverInfo(w Widget) string {
	n := w.Base()
	var b strings.Builder
	fmt.Fprintf(&b, "%q (%d): hovered=%v hit=%v box=(%v,%v %vx%v) mouse=(%v,%v) offset=(%v,%v) claims=[",
		n.Name, n.ID, c.Hovered(w, false), c.Hovered(w, true),
		n.X.Dest(), n.Y.Dest(), n.Width.Dest(), n.Height.Dest(),
		c.MouseX, c.MouseY, c.OffsetX, c.OffsetY)
	for i, cl := range c.frame.claims {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", cl.Name)
	}
	b.WriteString("]")
	return b.String()
}
