package breeze

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the pointer state a host reports for one frame. Positions
// are window-local logical pixels.
type InputState struct {
	MouseX, MouseY float32
	MouseDown      bool
	RightMouseDown bool
}

// Host is the platform window a Driver runs in.
type Host interface {
	// Init creates the window. Errors are fatal to this host.
	Init(cfg WindowConfig) error
	Show()
	Hide()
	Close()
	Resize(w, h int)
	SetPosition(x, y int)
	Focus()
	// Size returns the window size in logical pixels.
	Size() (w, h int)
	Input() InputState
	KeyDown(key ebiten.Key) bool
	// Screen describes the monitor nearest to the window.
	Screen() ScreenInfo
	Now() time.Time
}

// Key repeat timing in ticks, matching common desktop defaults at 60 TPS.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// EbitenHost runs a Driver inside Ebitengine's game loop. It implements
// ebiten.Game: Update runs the update half of a frame and Draw repaints only
// when the driver asks, leaving the previous frame on screen otherwise.
type EbitenHost struct {
	driver  *Driver
	surface *EbitenSurface
	cfg     WindowConfig

	closed     bool
	focused    bool
	keysBuf    []ebiten.Key
	lastLayout [2]int
}

// NewEbitenHost creates a host. Call NewEbitenApp for the usual wiring.
func NewEbitenHost() *EbitenHost {
	return &EbitenHost{}
}

// NewEbitenApp creates the fonts, surface, host and driver for one window.
func NewEbitenApp(cfg WindowConfig) (*Driver, error) {
	fonts, err := NewFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostInit, err)
	}
	h := NewEbitenHost()
	h.surface = NewEbitenSurface(fonts)
	d, err := NewDriver(h, h.surface, cfg)
	if err != nil {
		return nil, err
	}
	h.driver = d
	return d, nil
}

// Run starts the game loop for a driver created by NewEbitenApp and blocks
// until the window closes.
func Run(d *Driver) error {
	h, ok := d.host.(*EbitenHost)
	if !ok {
		return fmt.Errorf("%w: Run needs an EbitenHost, got %T", ErrHostInit, d.host)
	}
	if d.Closed() {
		return ErrClosed
	}
	op := &ebiten.RunGameOptions{
		ScreenTransparent: h.cfg.Transparent,
		InitUnfocused:     h.cfg.NoActivate,
		SkipTaskbar:       h.cfg.NoActivate,
	}
	if err := ebiten.RunGameWithOptions(h, op); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (h *EbitenHost) Init(cfg WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	h.cfg = cfg
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowDecorated(cfg.Decorated)
	ebiten.SetWindowFloating(cfg.Topmost || cfg.Transparent)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetScreenClearedEveryFrame(false)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return nil
}

func (h *EbitenHost) Show()                { ebiten.RestoreWindow() }
func (h *EbitenHost) Hide()                { ebiten.MinimizeWindow() }
func (h *EbitenHost) Close()               { h.closed = true }
func (h *EbitenHost) Focus()               { ebiten.RestoreWindow() }
func (h *EbitenHost) SetPosition(x, y int) { ebiten.SetWindowPosition(x, y) }
func (h *EbitenHost) Size() (w, h2 int)    { return ebiten.WindowSize() }
func (h *EbitenHost) Now() time.Time       { return time.Now() }

func (h *EbitenHost) Resize(w, height int) {
	if w <= 0 || height <= 0 {
		return
	}
	ebiten.SetWindowSize(w, height)
}

func (h *EbitenHost) Screen() ScreenInfo {
	m := ebiten.Monitor()
	if m == nil {
		return ScreenInfo{DPIScale: 1}
	}
	w, hh := m.Size()
	return ScreenInfo{Width: w, Height: hh, DPIScale: float32(m.DeviceScaleFactor())}
}

func (h *EbitenHost) Input() InputState {
	cx, cy := ebiten.CursorPosition()
	scale := h.Screen().DPIScale
	return InputState{
		MouseX:         float32(cx) / scale,
		MouseY:         float32(cy) / scale,
		MouseDown:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		RightMouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
}

func (h *EbitenHost) KeyDown(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// recordKeys feeds this tick's key edges into the driver.
func (h *EbitenHost) recordKeys() {
	h.keysBuf = inpututil.AppendJustPressedKeys(h.keysBuf[:0])
	for _, k := range h.keysBuf {
		h.driver.RecordKey(k, KeyPressed)
	}
	h.keysBuf = inpututil.AppendJustReleasedKeys(h.keysBuf[:0])
	for _, k := range h.keysBuf {
		h.driver.RecordKey(k, KeyReleased)
	}
	h.keysBuf = inpututil.AppendPressedKeys(h.keysBuf[:0])
	for _, k := range h.keysBuf {
		d := inpututil.KeyPressDuration(k)
		if d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0 {
			h.driver.RecordKey(k, KeyRepeated)
		}
	}
}

// Update implements ebiten.Game.
func (h *EbitenHost) Update() error {
	h.driver.mainTasks.Drain()
	if h.closed {
		return ebiten.Termination
	}

	if f := ebiten.IsFocused(); f != h.focused {
		h.focused = f
		h.driver.windowFocusChanged(f)
	}
	h.recordKeys()
	if _, dy := ebiten.Wheel(); dy != 0 {
		h.driver.AddScroll(float32(dy))
	}

	h.driver.Update(-1)
	return nil
}

// Draw implements ebiten.Game.
func (h *EbitenHost) Draw(screen *ebiten.Image) {
	h.surface.SetTarget(screen)
	h.driver.Draw()
	h.driver.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The screen is sized in device pixels so
// text and paths are rasterized at full resolution.
func (h *EbitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := h.Screen().DPIScale
	w, ht := int(float32(outsideWidth)*scale), int(float32(outsideHeight)*scale)
	if [2]int{w, ht} != h.lastLayout {
		h.lastLayout = [2]int{w, ht}
		if h.driver != nil {
			h.driver.RequestRepaint()
		}
	}
	return w, ht
}
