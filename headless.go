package breeze

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// HeadlessHost is a Host with no window. Input and the clock are set by the
// caller, which makes it suitable for tests and offscreen tools.
type HeadlessHost struct {
	// InitErr is returned from Init when set.
	InitErr error

	Width, Height int
	Pointer       InputState
	Keys          map[ebiten.Key]bool
	Info          ScreenInfo

	Visible  bool
	IsClosed bool
	Focused  bool
	X, Y     int

	clock time.Time
}

// NewHeadlessHost creates a host whose clock starts at a fixed instant.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{
		Keys:  make(map[ebiten.Key]bool),
		Info:  ScreenInfo{Width: 1920, Height: 1080, DPIScale: 1},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Advance moves the clock forward.
func (h *HeadlessHost) Advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

// MoveMouse sets the pointer position.
func (h *HeadlessHost) MoveMouse(x, y float32) {
	h.Pointer.MouseX, h.Pointer.MouseY = x, y
}

func (h *HeadlessHost) Init(cfg WindowConfig) error {
	if h.InitErr != nil {
		return h.InitErr
	}
	h.Width, h.Height = cfg.Width, cfg.Height
	h.Visible = true
	return nil
}

func (h *HeadlessHost) Show()                       { h.Visible = true }
func (h *HeadlessHost) Hide()                       { h.Visible = false }
func (h *HeadlessHost) Close()                      { h.IsClosed = true }
func (h *HeadlessHost) Resize(w, height int)        { h.Width, h.Height = w, height }
func (h *HeadlessHost) SetPosition(x, y int)        { h.X, h.Y = x, y }
func (h *HeadlessHost) Focus()                      { h.Focused = true }
func (h *HeadlessHost) Size() (int, int)            { return h.Width, h.Height }
func (h *HeadlessHost) Input() InputState           { return h.Pointer }
func (h *HeadlessHost) KeyDown(key ebiten.Key) bool { return h.Keys[key] }
func (h *HeadlessHost) Screen() ScreenInfo          { return h.Info }
func (h *HeadlessHost) Now() time.Time              { return h.clock }
