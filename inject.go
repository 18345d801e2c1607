package breeze

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKey struct {
	key   ebiten.Key
	state KeyState
}

// syntheticEvent is one frame of injected input. Window-local logical
// coordinates are used, the same space UpdateContext reports the mouse in.
type syntheticEvent struct {
	pointer   bool
	x, y      float32
	down      bool
	rightDown bool
	key       *syntheticKey
	scroll    float32
}

// apply replaces the host's pointer state when the event carries one.
func (e syntheticEvent) apply(in InputState) InputState {
	if !e.pointer {
		return in
	}
	return InputState{MouseX: e.x, MouseY: e.y, MouseDown: e.down, RightMouseDown: e.rightDown}
}

// InjectPress queues a left-button press at (x, y). Injected events are
// consumed one per frame, in order, and override real pointer input for
// that frame.
func (d *Driver) InjectPress(x, y float32) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{pointer: true, x: x, y: y, down: true})
}

// InjectMove queues a pointer move to (x, y) with the left button held.
// Use it between InjectPress and InjectRelease to simulate a drag.
func (d *Driver) InjectMove(x, y float32) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{pointer: true, x: x, y: y, down: true})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (d *Driver) InjectHover(x, y float32) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{pointer: true, x: x, y: y})
}

// InjectRelease queues a left-button release at (x, y).
func (d *Driver) InjectRelease(x, y float32) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{pointer: true, x: x, y: y})
}

// InjectRightClick queues a right-button press and release at (x, y).
func (d *Driver) InjectRightClick(x, y float32) {
	d.injectQueue = append(d.injectQueue,
		syntheticEvent{pointer: true, x: x, y: y, rightDown: true},
		syntheticEvent{pointer: true, x: x, y: y},
	)
}

// InjectClick queues a press followed by a release at the same point. The
// click is reported on the second frame.
func (d *Driver) InjectClick(x, y float32) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves,
// and a release at (toX, toY). frames is at least 2.
func (d *Driver) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectRelease(toX, toY)
}

// InjectKey queues a key edge. It becomes visible to widgets the frame
// after it is consumed, like real key input.
func (d *Driver) InjectKey(key ebiten.Key, state KeyState) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{key: &syntheticKey{key: key, state: state}})
}

// InjectScroll queues wheel movement.
func (d *Driver) InjectScroll(dy float32) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{scroll: dy})
}

// Injecting reports whether injected events are still queued.
func (d *Driver) Injecting() bool {
	return len(d.injectQueue) > 0
}

func (d *Driver) nextInjected() (syntheticEvent, bool) {
	if len(d.injectQueue) == 0 {
		return syntheticEvent{}, false
	}
	ev := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	return ev, true
}
