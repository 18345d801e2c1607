package breeze

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is the tween length in milliseconds used when none is given.
const DefaultDuration float32 = 200

// resetProgress is the largest float32 below 1. ResetTo parks progress here
// so a reset value is never mistaken for a finished tween boundary.
var resetProgress = math.Nextafter32(1, 0)

// easeOutRoot is 1 - sqrt(1 - t) in gween's (t, begin, change, duration) form.
func easeOutRoot(t, b, c, d float32) float32 {
	p := t / d
	return c*(1-float32(math.Sqrt(float64(1-p)))) + b
}

// tweenFunc maps an Easing to the curve used for interpolation. EaseInOut is
// gween's InOutSine, which equals 0.5·sin(tπ − π/2) + 0.5.
func tweenFunc(e Easing) ease.TweenFunc {
	switch e {
	case EaseIn:
		return ease.InQuad
	case EaseOut:
		return easeOutRoot
	case EaseInOut:
		return ease.InOutSine
	default:
		return ease.Linear
	}
}

// AnimatedFloat is a float property that moves toward a destination over
// time. Layout and hit testing read Dest; drawing reads Value.
//
// Mutate it only with AnimateTo or ResetTo, and advance it once per frame with
// Update. Nodes advance their registered animations automatically.
type AnimatedFloat struct {
	Name string

	// BeforeAnimate fires from AnimateTo with the new destination.
	BeforeAnimate func(dest float32)
	// AfterAnimate fires from Update when the value lands on the destination.
	AfterAnimate func(dest float32)

	easing      Easing
	progress    float32
	duration    float32
	value       float32
	from        float32
	destination float32
	delay       float32
	delayTimer  float32
	updated     bool

	tween     *gween.Tween // unit-interval tween for the current from/dest pair
	inHook    bool         // BeforeAnimate is running
	deferHook func(func()) // set during a node update pass
}

// NewAnimatedFloat creates an AnimatedFloat resting at dest.
func NewAnimatedFloat(dest, duration float32, easing Easing) *AnimatedFloat {
	return &AnimatedFloat{
		easing:      easing,
		progress:    1,
		duration:    duration,
		value:       dest,
		from:        dest,
		destination: dest,
		updated:     true,
	}
}

// AnimateTo starts a tween from the current value to dest. It is a no-op when
// dest already equals the destination.
func (a *AnimatedFloat) AnimateTo(dest float32) {
	if a.destination == dest {
		return
	}
	a.from = a.value
	a.destination = dest
	a.progress = 0
	a.delayTimer = 0
	a.tween = nil

	// A hook that re-targets its own property does not re-enter itself.
	if a.BeforeAnimate != nil && !a.inHook {
		a.inHook = true
		a.BeforeAnimate(dest)
		a.inHook = false
	}
}

// ResetTo jumps to v immediately with no tween.
func (a *AnimatedFloat) ResetTo(v float32) {
	if a.value != v {
		a.updated = true
	}
	a.value = v
	a.from = v
	a.destination = v
	a.progress = resetProgress
	a.delayTimer = 0
	a.tween = nil
}

// Update advances the animation by dt milliseconds.
func (a *AnimatedFloat) Update(dt float32) {
	if a.easing == EaseMutation {
		if a.destination != a.value || a.progress != 1 {
			a.value = a.destination
			a.progress = 1
			a.fireAfter()
			a.updated = true
		} else {
			a.updated = false
		}
		return
	}

	if a.delayTimer < a.delay {
		a.delayTimer += dt
		a.updated = false
		return
	}

	a.progress += dt / a.duration

	if a.progress < 0 {
		a.updated = false
		return
	}

	if a.progress >= 1 {
		a.progress = 1
		if a.value != a.destination {
			a.value = a.destination
			a.updated = true
			a.fireAfter()
		} else {
			a.updated = false
		}
		return
	}

	if a.tween == nil {
		a.tween = gween.New(a.from, a.destination, 1, tweenFunc(a.easing))
	}
	a.value, _ = a.tween.Set(a.progress)
	a.updated = true
}

func (a *AnimatedFloat) fireAfter() {
	if a.AfterAnimate == nil {
		return
	}
	if a.deferHook != nil {
		fn, dest := a.AfterAnimate, a.destination
		a.deferHook(func() { fn(dest) })
		return
	}
	a.AfterAnimate(a.destination)
}

// Value returns the current, possibly mid-tween, value.
func (a *AnimatedFloat) Value() float32 { return a.value }

// Progress returns the fraction of the current tween that has elapsed.
func (a *AnimatedFloat) Progress() float32 { return a.progress }

// Dest returns the destination.
func (a *AnimatedFloat) Dest() float32 { return a.destination }

// Updated reports whether the last Update changed the value.
func (a *AnimatedFloat) Updated() bool { return a.updated }

// Easing returns the configured easing.
func (a *AnimatedFloat) Easing() Easing { return a.easing }

// Duration returns the tween length in milliseconds.
func (a *AnimatedFloat) Duration() float32 { return a.duration }

// SetDuration sets the tween length in milliseconds.
func (a *AnimatedFloat) SetDuration(ms float32) {
	a.duration = ms
}

// SetEasing sets the easing used by subsequent updates.
func (a *AnimatedFloat) SetEasing(e Easing) {
	a.easing = e
	a.tween = nil
}

// SetDelay sets how long a new tween waits before moving, and restarts the
// delay timer.
func (a *AnimatedFloat) SetDelay(ms float32) {
	a.delay = ms
	a.delayTimer = 0
}

// AnimatedColor groups four AnimatedFloats as RGBA.
type AnimatedColor struct {
	R, G, B, A *AnimatedFloat
}

// NewAnimatedColor creates an AnimatedColor whose channels are registered on
// n, so the node advances them during its update. n may be nil, in which
// case the caller must Update the channels itself.
func NewAnimatedColor(n *Node, c Color, namePrefix string) AnimatedColor {
	mk := func(v float32, ch string) *AnimatedFloat {
		if n != nil {
			return n.Anim(v, DefaultDuration, EaseMutation, namePrefix+"."+ch)
		}
		af := NewAnimatedFloat(v, DefaultDuration, EaseMutation)
		af.Name = namePrefix + "." + ch
		return af
	}
	return AnimatedColor{
		R: mk(c.R, "r"),
		G: mk(c.G, "g"),
		B: mk(c.B, "b"),
		A: mk(c.A, "a"),
	}
}

// Color returns the current color.
func (c AnimatedColor) Color() Color {
	return Color{c.R.Value(), c.G.Value(), c.B.Value(), c.A.Value()}
}

// Dest returns the destination color.
func (c AnimatedColor) Dest() Color {
	return Color{c.R.Dest(), c.G.Dest(), c.B.Dest(), c.A.Dest()}
}

// AnimateTo tweens every channel toward col.
func (c AnimatedColor) AnimateTo(col Color) {
	c.R.AnimateTo(col.R)
	c.G.AnimateTo(col.G)
	c.B.AnimateTo(col.B)
	c.A.AnimateTo(col.A)
}

// ResetTo snaps every channel to col.
func (c AnimatedColor) ResetTo(col Color) {
	c.R.ResetTo(col.R)
	c.G.ResetTo(col.G)
	c.B.ResetTo(col.B)
	c.A.ResetTo(col.A)
}

// Blend mixes the current values of c and other.
func (c AnimatedColor) Blend(other AnimatedColor, factor float32) Color {
	return c.Color().Lerp(other.Color(), factor)
}

// SetDuration sets the duration on all four channels.
func (c AnimatedColor) SetDuration(ms float32) {
	for _, ch := range c.channels() {
		ch.SetDuration(ms)
	}
}

// SetEasing sets the easing on all four channels.
func (c AnimatedColor) SetEasing(e Easing) {
	for _, ch := range c.channels() {
		ch.SetEasing(e)
	}
}

// Update advances all four channels. Not needed when the channels are
// registered on a node.
func (c AnimatedColor) Update(dt float32) {
	for _, ch := range c.channels() {
		ch.Update(dt)
	}
}

// Updated reports whether any channel changed during the last update.
func (c AnimatedColor) Updated() bool {
	return c.R.Updated() || c.G.Updated() || c.B.Updated() || c.A.Updated()
}

func (c AnimatedColor) channels() [4]*AnimatedFloat {
	return [4]*AnimatedFloat{c.R, c.G, c.B, c.A}
}
