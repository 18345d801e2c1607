// Package breeze is a small retained-mode widget toolkit for [Ebitengine],
// built for overlay windows such as menus, trays and launchers.
//
// Breeze keeps a tree of widgets, updates it once per frame, and repaints
// only when something changed: a property is still animating, a widget asked
// for a repaint, or the repaint timeout elapsed. Every geometric property is
// an [AnimatedFloat], so layout changes tween instead of jumping.
//
// # Quick start
//
// [NewEbitenApp] creates the window, fonts and [Driver]; [Run] blocks until
// the window closes:
//
//	d, err := breeze.NewEbitenApp(breeze.DefaultWindowConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	col := breeze.NewFlex("menu")
//	col.AddChild(breeze.NewButton("Open"))
//	d.Root().AddChild(col)
//	breeze.Run(d)
//
// For tests and offscreen tools, drive a tree with a [HeadlessHost] and call
// [Driver.Frame] directly.
//
// # Widgets
//
// Every element embeds [Node] and implements [Widget]. Nodes form a tree
// rooted at [Driver.Root]; a child's position is relative to its parent.
// The built-in widgets are [Flex] (row or column layout with grow weights,
// alignment and justification), [Spacer], [Text], [Padding], [RectWidget]
// and [Button].
//
// Custom widgets embed Node, call [Node.Init] with themselves, and override
// the methods they need:
//
//	type badge struct{ breeze.Node }
//
//	func (b *badge) Render(c *breeze.Canvas) {
//		c.FillColor(breeze.ColorWhite)
//		c.FillCircle(b.X.Value(), b.Y.Value(), 4)
//		b.Node.Render(c)
//	}
//
// # Animation
//
// Layout and hit testing read an AnimatedFloat's destination; drawing reads
// its current value. [EaseMutation] snaps on the next update, while the
// timed easings interpolate with [gween] curves.
//
// # Input
//
// Widgets query pointer and keyboard state through [UpdateContext]. A widget
// that consumes a click claims the hit, after which only widgets on that
// widget's ancestor or descendant line are reported as hovered for the rest
// of the frame.
//
// Widget events can be forwarded into a [Donburi] world with the breeze/ecs
// adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package breeze
