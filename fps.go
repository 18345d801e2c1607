package breeze

import "strconv"

// FPSCounter counts repainted frames over one-second windows.
type FPSCounter struct {
	elapsed float32
	frames  int
	fps     int
}

// Tick advances the counter by dt milliseconds. It reports true when a
// window closed and FPS changed.
func (c *FPSCounter) Tick(dt float32) bool {
	c.elapsed += dt
	if c.elapsed < 1000 {
		return false
	}
	c.fps = c.frames
	c.frames = 0
	c.elapsed = 0
	return true
}

// CountFrame records one repaint.
func (c *FPSCounter) CountFrame() { c.frames++ }

// FPS returns the repaint count of the last full window.
func (c *FPSCounter) FPS() int { return c.fps }

// FPSText is a Text showing the driver's repaint rate. Since the driver
// only repaints on change, the rate also shows how idle the tree is.
type FPSText struct {
	*Text
	last int
}

// NewFPSText creates a small FPS label.
func NewFPSText() *FPSText {
	f := &FPSText{Text: NewText("FPS: 0"), last: -1}
	f.Name = "fps"
	f.FontSize = 12
	f.self = f
	return f
}

// Update refreshes the label when the rate changes.
func (f *FPSText) Update(ctx *UpdateContext) {
	if d := ctx.Driver(); d != nil {
		if fps := d.FPS(); fps != f.last {
			f.last = fps
			f.Text.Text = "FPS: " + strconv.Itoa(fps)
			ctx.RequestRepaint()
		}
	}
	f.Text.Update(ctx)
}
