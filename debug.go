package breeze

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Driver debug flag so that node
// operations (which lack a Driver pointer) can check it cheaply. Only valid
// with a single Driver; multiple Drivers with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[breeze] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("breeze debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := Widget(n.self); p != nil; p = p.Base().parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// debugUpdateTwice warns when a node is updated again before being rendered.
// This is legitimate for flex measurement passes, so it is only reported
// when the offset changed in between.
func debugUpdateTwice(n *Node, ctx *UpdateContext) {
	if n.debugOffset != [2]float32{ctx.drawX, ctx.drawY} {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] warning: node %q (%d) updated twice at different offsets (%v,%v) then (%v,%v)\n",
			n.Name, n.ID, n.debugOffset[0], n.debugOffset[1], ctx.drawX, ctx.drawY)
	}
}

// debugCheckRenderOffset reports a render whose canvas offset differs from
// the one recorded by the preceding update, or a render with no update.
func debugCheckRenderOffset(n *Node, c *Canvas) {
	if !n.debugUpdated {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] warning: node %q (%d) rendered without an update\n", n.Name, n.ID)
		return
	}
	if n.debugOffset != [2]float32{c.OffsetX, c.OffsetY} {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] warning: node %q (%d) update offset (%v,%v) differs from render offset (%v,%v)\n",
			n.Name, n.ID, n.debugOffset[0], n.debugOffset[1], c.OffsetX, c.OffsetY)
	}
}
