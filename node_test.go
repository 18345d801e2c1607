package breeze

import (
	"testing"
)

// probe is a widget that counts updates and can run a hook before updating
// its children.
type probe struct {
	Node
	updates  int
	onUpdate func(ctx *UpdateContext)
}

func newProbe(name string) *probe {
	p := &probe{}
	p.Init(p, KindWidget, name)
	return p
}

func (p *probe) Update(ctx *UpdateContext) {
	p.updates++
	if p.onUpdate != nil {
		p.onUpdate(ctx)
	}
	p.Node.Update(ctx)
}

func childNames(n *Node) []string {
	var names []string
	for _, c := range n.Children() {
		names = append(names, c.Base().Name)
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.Kind != KindWidget {
		t.Errorf("Kind = %v, want KindWidget", n.Kind)
	}
	if n.Self() != Widget(n) {
		t.Error("Self should be the node itself")
	}
	if n.X.Easing() != EaseMutation || n.Width.Duration() != DefaultDuration {
		t.Errorf("geometry easing = %v/%v, want mutation/%v", n.X.Easing(), n.Width.Duration(), DefaultDuration)
	}
	if len(n.Animations()) != 4 {
		t.Errorf("Animations = %d, want 4", len(n.Animations()))
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

func TestEmbeddedSelf(t *testing.T) {
	p := newProbe("p")
	root := NewNode("root")
	root.AddChild(p)
	if p.Parent() != Widget(root) {
		t.Error("parent should be root")
	}
	if root.ChildAt(0) != Widget(p) {
		t.Error("child should be the embedding widget, not its Node")
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a)
	root.AddChild(b)
	if got := childNames(root); !equalNames(got, []string{"a", "b"}) {
		t.Errorf("children = %v", got)
	}
	if a.Parent() != Widget(root) {
		t.Error("a.Parent should be root")
	}
}

func TestAddChildAt(t *testing.T) {
	root := NewNode("root")
	root.AddChild(NewNode("a"))
	root.AddChild(NewNode("c"))
	root.AddChildAt(NewNode("b"), 1)
	if got := childNames(root); !equalNames(got, []string{"a", "b", "c"}) {
		t.Errorf("children = %v", got)
	}
}

func TestAddChildAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewNode("root").AddChildAt(NewNode("a"), 1)
}

func TestAddChildReparents(t *testing.T) {
	p1, p2 := NewNode("p1"), NewNode("p2")
	c := NewNode("c")
	p1.AddChild(c)
	p2.AddChild(c)
	if p1.NumChildren() != 0 {
		t.Errorf("p1 children = %d, want 0", p1.NumChildren())
	}
	if c.Parent() != Widget(p2) {
		t.Error("c should belong to p2")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddSelfPanics(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a node to itself")
		}
	}()
	a.AddChild(a)
}

func TestAddNilChildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewNode("a").AddChild(nil)
}

func TestRemoveChild(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	root.AddChild(a)
	root.RemoveChild(a)
	if root.NumChildren() != 0 {
		t.Errorf("children = %d, want 0", root.NumChildren())
	}
	if a.Parent() != nil {
		t.Error("parent should be cleared")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	root, other := NewNode("root"), NewNode("other")
	a := NewNode("a")
	other.AddChild(a)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	root.RemoveChild(a)
}

func TestRemoveFromParent(t *testing.T) {
	root := NewNode("root")
	p := newProbe("p")
	root.AddChild(p)
	p.RemoveFromParent()
	if root.NumChildren() != 0 || p.Parent() != nil {
		t.Error("RemoveFromParent did not detach")
	}
	p.RemoveFromParent() // no-op
}

func TestRemoveChildren(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a)
	root.AddChild(b)
	root.RemoveChildren()
	if root.NumChildren() != 0 {
		t.Errorf("children = %d, want 0", root.NumChildren())
	}
	if a.Parent() != nil || b.Parent() != nil {
		t.Error("parents should be cleared")
	}
	if a.IsDisposed() {
		t.Error("RemoveChildren must not dispose")
	}
}

func TestFindParent(t *testing.T) {
	f := NewFlex("flex")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	f.AddChild(mid)
	mid.AddChild(leaf)
	if got := leaf.FindParent(KindFlex); got != Widget(f) {
		t.Errorf("FindParent(KindFlex) = %v, want flex", got)
	}
	if got := leaf.FindParent(KindButton); got != nil {
		t.Errorf("FindParent(KindButton) = %v, want nil", got)
	}
}

// --- Update ---

func TestUpdateOffsetsChildrenByDestination(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	parent.X.SetEasing(EaseLinear)
	parent.X.SetDuration(1000)
	parent.X.AnimateTo(100)
	child := NewNode("child")
	child.Width.ResetTo(10)
	child.Height.ResetTo(10)
	root.AddChild(parent)
	parent.AddChild(child)

	ctx := NewUpdateContext(16)
	ctx.MouseX, ctx.MouseY = 105, 5
	root.Update(ctx)

	x, _ := child.LastOffset()
	if x != 100 {
		t.Errorf("child offset = %v, want 100 (destination, not %v)", x, parent.X.Value())
	}
}

func TestUpdateRequestsRepaintOnChange(t *testing.T) {
	n := NewNode("n")
	ctx := NewUpdateContext(16)
	n.Update(ctx)
	if ctx.NeedRepaint() {
		t.Error("idle node should not request a repaint")
	}

	n.Width.AnimateTo(20)
	ctx = NewUpdateContext(16)
	n.Update(ctx)
	if !ctx.NeedRepaint() {
		t.Error("animated node should request a repaint")
	}

	n.NeedsRepaint = true
	ctx = NewUpdateContext(16)
	n.Update(ctx)
	if !ctx.NeedRepaint() || n.NeedsRepaint {
		t.Error("NeedsRepaint should request once and reset")
	}
}

func TestDyingChildPruned(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a)
	root.AddChild(b)
	a.Dying.Set(100)

	root.Update(NewUpdateContext(60))
	root.Update(NewUpdateContext(60))
	if root.NumChildren() != 2 {
		t.Fatalf("children = %d before expiry was observed, want 2", root.NumChildren())
	}
	if !a.Dying.Expired() {
		t.Fatalf("Dying should have expired, remaining %v", a.Dying.Remaining())
	}

	root.Update(NewUpdateContext(60))
	if got := childNames(root); !equalNames(got, []string{"b"}) {
		t.Errorf("children = %v, want [b]", got)
	}
	if a.Parent() != nil {
		t.Error("pruned child should be detached")
	}
}

func TestDyingClearedSurvives(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	root.AddChild(a)
	a.Dying.Set(10)
	a.Dying.Clear()
	for i := 0; i < 3; i++ {
		root.Update(NewUpdateContext(60))
	}
	if root.NumChildren() != 1 {
		t.Error("child with cleared countdown was pruned")
	}
}

func TestDyingChanged(t *testing.T) {
	n := NewNode("n")
	n.Dying.Set(100)
	n.Update(NewUpdateContext(16))
	if !n.Dying.Changed() {
		t.Error("Changed should be true the update after Set")
	}
	n.Update(NewUpdateContext(16))
	if n.Dying.Changed() {
		t.Error("Changed should be false once observed")
	}
}

func TestRemovalDuringUpdateStopsPass(t *testing.T) {
	root := NewNode("root")
	a, b, c := newProbe("a"), newProbe("b"), newProbe("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	a.onUpdate = func(*UpdateContext) {
		if b.Parent() != nil {
			root.RemoveChild(b)
		}
	}

	root.Update(NewUpdateContext(16))
	if c.updates != 0 {
		t.Errorf("c updated %d times in the aborted pass, want 0", c.updates)
	}
	if b.updates != 0 {
		t.Errorf("removed b was updated")
	}

	root.Update(NewUpdateContext(16))
	if c.updates != 1 {
		t.Errorf("c updates = %d on the next pass, want 1", c.updates)
	}
}

func TestInsertDuringUpdateStopsPass(t *testing.T) {
	root := NewNode("root")
	root.children = make([]Widget, 0, 8) // room to insert in place
	a, b, late := newProbe("a"), newProbe("b"), newProbe("late")
	root.AddChild(a)
	root.AddChild(b)
	a.onUpdate = func(*UpdateContext) {
		if late.Parent() == nil {
			root.AddChildAt(late, 0)
		}
	}

	root.Update(NewUpdateContext(16))
	if a.updates != 1 || b.updates != 0 || late.updates != 0 {
		t.Errorf("updates a=%d b=%d late=%d, want 1 0 0", a.updates, b.updates, late.updates)
	}

	root.Update(NewUpdateContext(16))
	if a.updates != 2 || b.updates != 1 || late.updates != 1 {
		t.Errorf("updates a=%d b=%d late=%d, want 2 1 1", a.updates, b.updates, late.updates)
	}
}

func TestReparentDuringUpdateStopsBothPasses(t *testing.T) {
	root := NewNode("root")
	left, right := NewNode("left"), NewNode("right")
	root.AddChild(left)
	root.AddChild(right)
	a, b, c := newProbe("a"), newProbe("b"), newProbe("c")
	left.AddChild(a)
	left.AddChild(b)
	left.AddChild(c)
	a.onUpdate = func(*UpdateContext) {
		if b.Parent() == Widget(left) {
			right.AddChild(b)
		}
	}

	root.Update(NewUpdateContext(16))
	if c.updates != 0 {
		t.Errorf("c updated %d times after its sibling moved, want 0", c.updates)
	}
	if b.updates != 1 {
		t.Errorf("b updates = %d, want 1 (once, under its new parent)", b.updates)
	}
	if !equalNames(childNames(left), []string{"a", "c"}) || !equalNames(childNames(right), []string{"b"}) {
		t.Errorf("left=%v right=%v", childNames(left), childNames(right))
	}
}

func TestAddChildOutsidePassKeepsNextPassWhole(t *testing.T) {
	root := NewNode("root")
	a, b := newProbe("a"), newProbe("b")
	root.AddChild(a)
	root.AddChild(b)
	root.Update(NewUpdateContext(16))
	if a.updates != 1 || b.updates != 1 {
		t.Errorf("updates a=%d b=%d, want 1 1", a.updates, b.updates)
	}
}

func TestChildAddedDuringUpdateRunsNextPass(t *testing.T) {
	root := NewNode("root")
	late := newProbe("late")
	a := newProbe("a")
	a.onUpdate = func(*UpdateContext) {
		if late.Parent() == nil {
			root.AddChild(late)
		}
	}
	root.AddChild(a)
	root.Update(NewUpdateContext(16))
	root.Update(NewUpdateContext(16))
	if late.updates == 0 {
		t.Error("late child never updated")
	}
}

// --- Focus ---

func TestFocus(t *testing.T) {
	d, _ := newTestDriver(t)
	a, b := NewNode("a"), NewNode("b")
	d.Root().AddChild(a)
	d.Root().AddChild(b)
	d.Frame(16)

	var changes [][2]*Node
	d.OnFocusChanged = func(old, new *Node) { changes = append(changes, [2]*Node{old, new}) }

	a.SetFocus(true)
	if !a.Focused() || d.FocusedNode() != a {
		t.Fatal("a should hold focus")
	}
	b.SetFocus(true)
	if a.Focused() || !b.Focused() {
		t.Error("focus should move to b")
	}
	a.SetFocus(false) // not focused, no-op
	if !b.Focused() {
		t.Error("releasing an unfocused node must not clear focus")
	}
	b.SetFocus(false)
	if d.FocusedNode() != nil {
		t.Error("focus should be cleared")
	}

	want := [][2]*Node{{nil, a}, {a, b}, {b, nil}}
	if len(changes) != len(want) {
		t.Fatalf("OnFocusChanged calls = %d, want %d", len(changes), len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestFocusWithin(t *testing.T) {
	d, _ := newTestDriver(t)
	outer, inner := NewNode("outer"), NewNode("inner")
	d.Root().AddChild(outer)
	outer.AddChild(inner)
	d.Frame(16)

	inner.SetFocus(true)
	if !outer.FocusWithin() {
		t.Error("outer should report focus within")
	}
	if outer.Focused() {
		t.Error("outer itself is not focused")
	}
}

func TestFocusRequiresDriver(t *testing.T) {
	n := NewNode("n")
	n.SetFocus(true)
	if n.Focused() {
		t.Error("a node never updated by a driver cannot take focus")
	}
}

func TestDisposeDropsFocus(t *testing.T) {
	d, _ := newTestDriver(t)
	a := NewNode("a")
	d.Root().AddChild(a)
	d.Frame(16)
	a.SetFocus(true)

	a.Dispose()
	if d.FocusedNode() != nil {
		t.Error("disposed node should not hold focus")
	}
	if !a.IsDisposed() || d.Root().NumChildren() != 0 {
		t.Error("Dispose should detach and mark the node")
	}
}

// --- Dispose ---

func TestDisposeRecursive(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.AddChild(a)
	a.AddChild(b)
	a.Dispose()
	if !b.IsDisposed() {
		t.Error("descendants should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	a.Dispose() // idempotent
}
