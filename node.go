package breeze

import (
	"slices"
	"sync/atomic"
)

// Widget is the capability set every tree element provides. Concrete
// widgets embed Node, which supplies defaults for everything but lets the
// embedding type override Update, Render, measurement and hit testing.
type Widget interface {
	// Base returns the embedded Node.
	Base() *Node
	Update(ctx *UpdateContext)
	Render(c *Canvas)
	MeasureWidth(ctx *UpdateContext) float32
	MeasureHeight(ctx *UpdateContext) float32
	CheckHit(ctx *UpdateContext) bool

	// AsFlex returns the flex container behind this widget, or nil.
	AsFlex() *Flex
	// AsText returns the text widget behind this widget, or nil.
	AsText() *Text
}

// noClip is the visible extent used when a parent does not clip.
const noClip float32 = 1e5

// nodeIDCounter is atomic because nodes may be built inside tasks posted
// from other goroutines before being handed to the loop.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// DyingTime is a countdown in milliseconds after which the parent drops the
// node from its children.
type DyingTime struct {
	time    float32
	active  bool
	lastHas bool
	changed bool
}

// Set starts (or restarts) the countdown.
func (d *DyingTime) Set(ms float32) {
	d.time = ms
	d.active = true
}

// Clear cancels the countdown.
func (d *DyingTime) Clear() {
	d.active = false
	d.time = 0
}

// Active reports whether a countdown is running.
func (d *DyingTime) Active() bool { return d.active }

// Remaining returns the milliseconds left.
func (d *DyingTime) Remaining() float32 { return d.time }

// Expired reports whether the countdown ran out.
func (d *DyingTime) Expired() bool { return d.active && d.time <= 0 }

// Changed reports whether the countdown was started or cleared since the
// previous update.
func (d *DyingTime) Changed() bool {
	return d.lastHas != d.active || d.changed
}

func (d *DyingTime) update(dt float32) {
	if d.active && d.time > 0 {
		d.time -= dt
	}
	if d.lastHas != d.active {
		d.changed = true
		d.lastHas = d.active
	} else {
		d.changed = false
	}
}

// Node is the base tree element. Its X, Y, Width and Height animations are
// the source of truth for geometry: layout and hit testing use their
// destinations, drawing uses their current values.
//
// Children are owned by their parent. The parent link is a back-reference
// only and is cleared when the child is detached.
type Node struct {
	ID   uint32
	Name string
	Kind Kind

	X, Y, Width, Height *AnimatedFloat

	// FlexGrow is this node's share of leftover space inside a Flex.
	FlexGrow float32
	// ClipChildren skips children that fall entirely outside this node.
	ClipChildren bool
	// NeedsRepaint forces a repaint on the next update.
	NeedsRepaint bool
	// Dying removes the node from its parent once it runs out.
	Dying DyingTime

	self          Widget
	parent        Widget
	children      []Widget
	childrenDirty bool
	anims         []*AnimatedFloat
	driver        *Driver
	disposed      bool

	lastOffsetX, lastOffsetY float32
	debugOffset              [2]float32
	debugUpdated             bool
}

// NewNode creates a plain node with no visual output. Use it as a positioned
// group for other widgets.
func NewNode(name string) *Node {
	n := &Node{}
	n.Init(n, KindWidget, name)
	return n
}

// Init prepares an embedded Node. self must be the widget that embeds n so
// children can link back to it. Widgets defined outside this package call
// Init from their constructor.
func (n *Node) Init(self Widget, kind Kind, name string) {
	n.ID = nextNodeID()
	n.Name = name
	n.Kind = kind
	n.self = self
	n.X = n.Anim(0, DefaultDuration, EaseMutation, "x")
	n.Y = n.Anim(0, DefaultDuration, EaseMutation, "y")
	n.Width = n.Anim(0, DefaultDuration, EaseMutation, "width")
	n.Height = n.Anim(0, DefaultDuration, EaseMutation, "height")
}

// Anim creates an AnimatedFloat owned by n. It is advanced during n's update
// and its changes request a repaint.
func (n *Node) Anim(dest, duration float32, easing Easing, name string) *AnimatedFloat {
	a := NewAnimatedFloat(dest, duration, easing)
	a.Name = name
	n.anims = append(n.anims, a)
	return a
}

// Animations returns every AnimatedFloat owned by n.
func (n *Node) Animations() []*AnimatedFloat {
	return n.anims
}

// SetEasing applies easing and duration to the geometry animations.
func (n *Node) SetEasing(e Easing, duration float32) {
	for _, a := range []*AnimatedFloat{n.X, n.Y, n.Width, n.Height} {
		a.SetEasing(e)
		a.SetDuration(duration)
	}
}

// Bounds returns the destination-space rectangle relative to the parent.
func (n *Node) Bounds() Rect {
	return Rect{n.X.Dest(), n.Y.Dest(), n.Width.Dest(), n.Height.Dest()}
}

// Base implements Widget.
func (n *Node) Base() *Node { return n }

// AsFlex implements Widget.
func (n *Node) AsFlex() *Flex { return nil }

// AsText implements Widget.
func (n *Node) AsText() *Text { return nil }

// Driver returns the driver that last updated this node.
func (n *Node) Driver() *Driver { return n.driver }

// LastOffset returns the absolute offset n was last updated with.
func (n *Node) LastOffset() (x, y float32) {
	return n.lastOffsetX, n.lastOffsetY
}

// --- Update / render ---

// Update advances n's animations and countdown, then updates its children
// offset by n's destination position.
func (n *Node) Update(ctx *UpdateContext) {
	n.UpdateSelf(ctx)
	n.UpdateChildren(ctx.withChildOffset(n))
	n.recordOffset(ctx)
}

// UpdateSelf performs the per-node part of Update without touching children.
func (n *Node) UpdateSelf(ctx *UpdateContext) {
	n.driver = ctx.driver

	hook := ctx.deferHook()
	for _, a := range n.anims {
		a.deferHook = hook
		a.Update(ctx.DeltaTime)
		a.deferHook = nil
		if a.Updated() {
			ctx.RequestRepaint()
		}
	}

	if n.NeedsRepaint {
		ctx.RequestRepaint()
		n.NeedsRepaint = false
	}

	n.Dying.update(ctx.DeltaTime)
}

// UpdateChildren updates the child list with ctx as-is and drops children
// whose dying countdown has run out. The pass stops early if a child
// adds, removes or reparents any of this node's children.
func (n *Node) UpdateChildren(ctx *UpdateContext) {
	n.childrenDirty = false
	for i, child := range n.children {
		if child == nil {
			continue
		}
		cb := child.Base()
		if cb.Dying.Expired() {
			cb.parent = nil
			n.children[i] = nil
			continue
		}
		cb.parent = n.self
		child.Update(ctx)
		if n.childrenDirty {
			break
		}
	}
	n.children = slices.DeleteFunc(n.children, func(w Widget) bool { return w == nil })
}

func (n *Node) recordOffset(ctx *UpdateContext) {
	if globalDebug && n.debugUpdated {
		debugUpdateTwice(n, ctx)
	}
	n.debugOffset = [2]float32{ctx.drawX, ctx.drawY}
	n.debugUpdated = true
	n.lastOffsetX = ctx.OffsetX
	n.lastOffsetY = ctx.OffsetY
}

// Render draws n's children offset by n's current position.
func (n *Node) Render(c *Canvas) {
	n.checkRenderOffset(c)
	n.RenderChildren(c.WithOffset(n.X.Value(), n.Y.Value()))
}

func (n *Node) checkRenderOffset(c *Canvas) {
	if globalDebug {
		debugCheckRenderOffset(n, c)
	}
	n.debugUpdated = false
}

// RenderChildren draws every child inside its own save/restore scope.
func (n *Node) RenderChildren(c *Canvas) {
	for _, child := range n.children {
		n.renderChild(c, child)
	}
}

func (n *Node) renderChild(c *Canvas, w Widget) {
	if w == nil {
		return
	}
	cb := w.Base()
	visibleW, visibleH := noClip, noClip
	if n.ClipChildren {
		visibleW = max(min(cb.Width.Value(), n.Width.Value()-cb.X.Value()), 0)
		visibleH = max(min(cb.Height.Value(), n.Height.Value()-cb.Y.Value()), 0)
	}
	if visibleW > 0 && visibleH > 0 {
		c.Save()
		w.Render(c)
		c.Restore()
	}
}

// MeasureWidth returns the destination width.
func (n *Node) MeasureWidth(ctx *UpdateContext) float32 { return n.Width.Dest() }

// MeasureHeight returns the destination height.
func (n *Node) MeasureHeight(ctx *UpdateContext) float32 { return n.Height.Dest() }

// CheckHit reports whether the pointer lies inside n's destination box
// translated by the context offset. Edges count as inside.
func (n *Node) CheckHit(ctx *UpdateContext) bool {
	r := n.Bounds()
	r.X += ctx.OffsetX
	r.Y += ctx.OffsetY
	return r.Contains(ctx.MouseX, ctx.MouseY)
}

// --- Tree manipulation ---

// AddChild appends child to n's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of n (cycle).
func (n *Node) AddChild(child Widget) {
	n.insertChild(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child Widget, index int) {
	if index < 0 || index > len(n.children) {
		panic("breeze: child index out of range")
	}
	n.insertChild(child, index)
}

func (n *Node) insertChild(child Widget, index int) {
	if child == nil {
		panic("breeze: cannot add nil child")
	}
	cb := child.Base()
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(cb, "AddChild (child)")
	}
	if isAncestor(cb, n) {
		panic("breeze: adding child would create a cycle")
	}
	if cb.parent != nil {
		p := cb.parent.Base()
		p.removeChildByPtr(cb)
		if p == n && index > len(n.children) {
			index = len(n.children)
		}
	}
	cb.parent = n.self
	n.children = slices.Insert(n.children, index, child)
	n.childrenDirty = true
	if globalDebug {
		debugCheckTreeDepth(cb)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from n. A removal during n's update pass stops
// the pass after the current child.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child Widget) {
	cb := child.Base()
	if cb.parent == nil || cb.parent.Base() != n {
		panic("breeze: child's parent is not this node")
	}
	n.removeChildByPtr(cb)
	cb.parent = nil
	n.childrenDirty = true
}

// RemoveFromParent detaches n from its parent.
// No-op if n has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.Base().RemoveChild(n.self)
}

// RemoveChildren detaches all children from n.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		if child != nil {
			child.Base().parent = nil
		}
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenDirty = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []Widget {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) Widget {
	return n.children[index]
}

// Parent returns the parent widget, or nil for a detached node.
func (n *Node) Parent() Widget {
	return n.parent
}

// Self returns the widget that embeds n.
func (n *Node) Self() Widget {
	return n.self
}

// FindParent returns the nearest ancestor of the given kind, or nil.
func (n *Node) FindParent(kind Kind) Widget {
	for p := n.parent; p != nil; p = p.Base().parent {
		if p.Base().Kind == kind {
			return p
		}
	}
	return nil
}

// --- Focus ---

// SetFocus claims (true) or releases (false) keyboard focus. Releasing is a
// no-op unless n holds focus. Requires that n has been updated by a Driver.
func (n *Node) SetFocus(focused bool) {
	if n.driver == nil {
		return
	}
	if focused {
		n.driver.setFocused(n)
		return
	}
	if n.driver.FocusedNode() == n {
		n.driver.setFocused(nil)
	}
}

// Focused reports whether n holds keyboard focus.
func (n *Node) Focused() bool {
	return n.driver != nil && n.driver.FocusedNode() == n
}

// FocusWithin reports whether n or any descendant holds keyboard focus.
func (n *Node) FocusWithin() bool {
	if n.Focused() {
		return true
	}
	for _, child := range n.children {
		if child != nil && child.Base().FocusWithin() {
			return true
		}
	}
	return false
}

// --- Disposal ---

// Dispose removes n from its parent, marks it as disposed, and recursively
// disposes all descendants. A disposed node loses focus.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if n.driver != nil && n.driver.FocusedNode() == n {
		n.driver.setFocused(nil)
	}
	n.disposed = true
	for _, child := range n.children {
		if child == nil {
			continue
		}
		cb := child.Base()
		cb.parent = nil
		cb.dispose()
	}
	n.children = nil
	n.parent = nil
	n.driver = nil
	for _, a := range n.anims {
		a.BeforeAnimate = nil
		a.AfterAnimate = nil
	}
}

// IsDisposed returns true if n has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; {
		if p == candidate {
			return true
		}
		if p.parent == nil {
			return false
		}
		p = p.parent.Base()
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing its parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c != nil && c.Base() == child {
			n.children = slices.Delete(n.children, i, i+1)
			n.childrenDirty = true
			return
		}
	}
}
