package breeze

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultRepaintTimeout is the longest the driver goes without repainting.
const DefaultRepaintTimeout = time.Second

var (
	// ErrHostInit wraps any failure to create the window or graphics context.
	ErrHostInit = errors.New("breeze: host init failed")
	// ErrClosed is returned by Run after the driver has been closed.
	ErrClosed = errors.New("breeze: driver closed")
)

// KeyStates holds the edges recorded for every key during one frame.
type KeyStates [ebiten.KeyMax + 1]KeyState

// EventType identifies the kind of WidgetEvent.
type EventType uint8

const (
	EventClick EventType = iota // a button was clicked
	EventFocus                  // a node gained keyboard focus
	EventBlur                   // a node lost keyboard focus
)

func (t EventType) String() string {
	switch t {
	case EventClick:
		return "click"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// WidgetEvent is published to the driver's EventSink.
type WidgetEvent struct {
	Type   EventType
	NodeID uint32
	Name   string
	X, Y   float32
}

// EventSink receives widget events, for example to forward them into an ECS
// world. See the ecs subpackage.
type EventSink interface {
	EmitEvent(event WidgetEvent)
}

func emitWidgetEvent(ctx *UpdateContext, ev WidgetEvent) {
	if ctx.driver != nil {
		ctx.driver.emit(ev)
	}
}

// Driver owns a widget tree and runs it one frame at a time: drain posted
// tasks, snapshot input, update the tree, then repaint if anything changed
// or the repaint timeout elapsed.
//
// The tree must only be touched from the goroutine calling Frame (or
// Update/Draw). Other goroutines reach it through PostLoopTask.
type Driver struct {
	// RepaintTimeout forces a repaint when this much time passed since the
	// last one.
	RepaintTimeout time.Duration

	// OnWindowFocusChanged is called when the window gains or loses focus.
	OnWindowFocusChanged func(focused bool)
	// OnFocusChanged is called when keyboard focus moves between nodes.
	// Either argument may be nil.
	OnFocusChanged func(old, new *Node)

	// ScreenshotDir is where screenshots are written.
	ScreenshotDir string

	root     *Node
	host     Host
	surface  Surface
	canvas   *Canvas
	measurer TextMeasurer
	config   WindowConfig

	lastRepaint   time.Time
	lastFrame     time.Time
	pendingRender bool
	forceRepaint  atomic.Bool

	wasDown, wasRightDown bool

	scrollMu sync.Mutex
	scroll   float32

	keys    FlipBuffer[KeyStates]
	focused weak.Pointer[Node]

	loopTasks TaskQueue
	mainTasks TaskQueue

	fps   FPSCounter
	sink  EventSink
	debug bool

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	hidden bool
	closed atomic.Bool
}

// NewDriver initializes host with cfg and returns a driver with an empty
// root. surface may be nil for a driver that never draws. Text is measured
// with surface when it implements TextMeasurer.
func NewDriver(host Host, surface Surface, cfg WindowConfig) (*Driver, error) {
	if err := host.Init(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostInit, err)
	}
	d := &Driver{
		RepaintTimeout: cfg.RepaintTimeout(),
		ScreenshotDir:  cfg.ScreenshotDir,
		root:           NewNode("root"),
		host:           host,
		surface:        surface,
		config:         cfg,
		lastFrame:      host.Now(),
	}
	if surface != nil {
		d.canvas = NewCanvas(surface)
		d.measurer = surface
	}
	d.root.driver = d
	d.SetDebugMode(cfg.Debug)
	return d, nil
}

// Root returns the root node. Add widgets to it.
func (d *Driver) Root() *Node { return d.root }

// Host returns the platform host.
func (d *Driver) Host() Host { return d.host }

// Surface returns the drawing surface, or nil.
func (d *Driver) Surface() Surface { return d.surface }

// Config returns the window configuration the driver was created with.
func (d *Driver) Config() WindowConfig { return d.config }

// SetMeasurer overrides the text measurer used during update.
func (d *Driver) SetMeasurer(m TextMeasurer) { d.measurer = m }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, diagnostics are printed to stderr, and the frame rate is
// logged once per second.
func (d *Driver) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
}

// SetEventSink sets where widget events are published. Nil disables
// publishing.
func (d *Driver) SetEventSink(sink EventSink) {
	d.sink = sink
}

func (d *Driver) emit(ev WidgetEvent) {
	if d.sink != nil {
		d.sink.EmitEvent(ev)
	}
}

// RequestRepaint forces a repaint on the next frame. Safe from any goroutine.
func (d *Driver) RequestRepaint() {
	d.forceRepaint.Store(true)
}

// FPS returns the number of repainted frames during the last full second.
func (d *Driver) FPS() int { return d.fps.FPS() }

// --- Tasks ---

// PostLoopTask runs fn at the start of the next frame on the loop goroutine.
func (d *Driver) PostLoopTask(fn func()) { d.loopTasks.Post(fn) }

// PostMainTask runs fn on the host's event goroutine.
func (d *Driver) PostMainTask(fn func()) { d.mainTasks.Post(fn) }

// LoopTasks returns the queue drained at the start of every frame.
func (d *Driver) LoopTasks() *TaskQueue { return &d.loopTasks }

// MainTasks returns the queue the host drains between frames.
func (d *Driver) MainTasks() *TaskQueue { return &d.mainTasks }

// --- Input recording (any goroutine) ---

// RecordKey ORs state into key's entry for the frame being recorded.
func (d *Driver) RecordKey(key ebiten.Key, state KeyState) {
	if key < 0 || key > ebiten.KeyMax {
		return
	}
	back, unlock := d.keys.LockBack()
	back[key] |= state
	unlock()
}

// AddScroll accumulates wheel movement until the next frame reads it.
func (d *Driver) AddScroll(dy float32) {
	d.scrollMu.Lock()
	d.scroll += dy
	d.scrollMu.Unlock()
}

func (d *Driver) takeScroll() float32 {
	d.scrollMu.Lock()
	defer d.scrollMu.Unlock()
	s := d.scroll
	d.scroll = 0
	return s
}

func (d *Driver) keyState(key ebiten.Key) KeyState {
	if key < 0 || key > ebiten.KeyMax {
		return KeyNone
	}
	return d.keys.Front()[key]
}

func (d *Driver) consumeKey(key ebiten.Key) {
	if key < 0 || key > ebiten.KeyMax {
		return
	}
	front, unlock := d.keys.LockFront()
	front[key] = KeyNone
	unlock()
}

// --- Focus ---

// FocusedNode returns the node holding keyboard focus, or nil. A node that
// was disposed or collected does not hold focus.
func (d *Driver) FocusedNode() *Node {
	n := d.focused.Value()
	if n == nil || n.disposed {
		return nil
	}
	return n
}

func (d *Driver) setFocused(n *Node) {
	old := d.FocusedNode()
	if old == n {
		return
	}
	if n == nil {
		d.focused = weak.Pointer[Node]{}
	} else {
		d.focused = weak.Make(n)
	}
	if old != nil {
		d.emit(WidgetEvent{Type: EventBlur, NodeID: old.ID, Name: old.Name})
	}
	if n != nil {
		d.emit(WidgetEvent{Type: EventFocus, NodeID: n.ID, Name: n.Name})
	}
	if d.OnFocusChanged != nil {
		d.OnFocusChanged(old, n)
	}
	d.RequestRepaint()
}

// windowFocusChanged is called by hosts.
func (d *Driver) windowFocusChanged(focused bool) {
	if d.OnWindowFocusChanged != nil {
		d.OnWindowFocusChanged(focused)
	}
}

// --- Window lifecycle ---

// Show shows the window and resumes frames after HideAsClose.
func (d *Driver) Show() {
	d.hidden = false
	d.host.Show()
	d.RequestRepaint()
}

// Hide hides the window. Frames keep running.
func (d *Driver) Hide() { d.host.Hide() }

// HideAsClose hides the window, drops every widget, and pauses frames until
// Show. Use it for windows that are reopened often.
func (d *Driver) HideAsClose() {
	d.PostLoopTask(func() {
		d.hidden = true
		d.host.Resize(0, 0)
		d.host.Hide()
		d.root.RemoveChildren()
	})
}

// Close closes the window. The host stops the loop.
func (d *Driver) Close() {
	d.closed.Store(true)
	d.host.Close()
}

// Closed reports whether Close was called.
func (d *Driver) Closed() bool { return d.closed.Load() }

// Resize resizes the window in logical pixels.
func (d *Driver) Resize(w, h int) { d.host.Resize(w, h) }

// SetPosition moves the window.
func (d *Driver) SetPosition(x, y int) { d.host.SetPosition(x, y) }

// Focus brings the window to the front.
func (d *Driver) Focus() { d.host.Focus() }

// --- Frame ---

// Frame runs one update and, if needed, one repaint. dt is in milliseconds;
// pass a negative dt to measure it from the host clock. It reports whether
// the frame was repainted.
func (d *Driver) Frame(dt float32) bool {
	if !d.Update(dt) {
		return false
	}
	d.Draw()
	return true
}

// Update runs the update half of a frame and reports whether Draw should
// repaint. Hosts that separate update and draw call the two halves.
func (d *Driver) Update(dt float32) bool {
	d.loopTasks.Drain()
	if d.hidden || d.closed.Load() {
		return false
	}
	if d.testRunner != nil {
		d.testRunner.step(d)
	}

	now := d.host.Now()
	if dt < 0 {
		dt = float32(now.Sub(d.lastFrame).Seconds() * 1000)
	}
	d.lastFrame = now

	ctx := d.snapshot(dt)
	d.root.driver = d
	d.root.Update(ctx)
	d.keys.Flip(KeyStates{})
	ctx.runDeferred()

	if d.fps.Tick(dt) {
		debugf("FPS: %d", d.fps.FPS())
	}

	need := ctx.NeedRepaint() || d.forceRepaint.Swap(false) ||
		now.Sub(d.lastRepaint) > d.RepaintTimeout
	if need {
		d.lastRepaint = now
		d.pendingRender = true
	}
	return need
}

// Draw repaints the tree if the last Update asked for it.
func (d *Driver) Draw() {
	if !d.pendingRender {
		return
	}
	d.pendingRender = false
	if d.surface == nil {
		return
	}
	d.fps.CountFrame()
	screen := d.host.Screen()
	w, h := d.host.Size()
	d.surface.BeginFrame(w, h, screen.DPIScale)
	d.root.Render(d.canvas)
	d.surface.EndFrame()
}

// snapshot builds the frame context from host input and injected events.
func (d *Driver) snapshot(dt float32) *UpdateContext {
	in := d.host.Input()
	if ev, ok := d.nextInjected(); ok {
		in = ev.apply(in)
		if ev.key != nil {
			d.RecordKey(ev.key.key, ev.key.state)
		}
		if ev.scroll != 0 {
			d.AddScroll(ev.scroll)
		}
	}

	ctx := &UpdateContext{
		DeltaTime:         dt,
		MouseX:            in.MouseX,
		MouseY:            in.MouseY,
		MouseDown:         in.MouseDown,
		RightMouseDown:    in.RightMouseDown,
		MouseClicked:      !in.MouseDown && d.wasDown,
		RightMouseClicked: !in.RightMouseDown && d.wasRightDown,
		MouseUp:           !in.MouseDown && d.wasDown,
		ScrollY:           d.takeScroll(),
		Screen:            d.host.Screen(),
		Measurer:          d.measurer,
		frame:             &frameState{deferring: true},
		driver:            d,
	}
	d.wasDown = in.MouseDown
	d.wasRightDown = in.RightMouseDown
	return ctx
}
