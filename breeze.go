package breeze

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// RGBA returns a Color from components in [0, 1].
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Lerp interpolates between c and other. factor 0 returns c, 1 returns other.
func (c Color) Lerp(other Color, factor float32) Color {
	return Color{
		R: c.R*(1-factor) + other.R*factor,
		G: c.G*(1-factor) + other.G*factor,
		B: c.B*(1-factor) + other.B*factor,
		A: c.A*(1-factor) + other.A*factor,
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

// toRGBA converts to a premultiplied color.RGBA for Ebitengine.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersect returns the overlap of r and other. The result has zero size
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// ScreenInfo describes the monitor nearest to the window.
type ScreenInfo struct {
	Width, Height int
	DPIScale      float32
}

// Easing selects how an AnimatedFloat moves toward its destination.
type Easing uint8

const (
	EaseMutation  Easing = iota // snap to the destination on the next update
	EaseLinear                  // t
	EaseIn                      // t²
	EaseOut                     // 1 - sqrt(1 - t)
	EaseInOut                   // raised cosine
)

func (e Easing) String() string {
	switch e {
	case EaseMutation:
		return "mutation"
	case EaseLinear:
		return "linear"
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case EaseInOut:
		return "ease-in-out"
	default:
		return "unknown"
	}
}

// Kind tags the concrete widget type so layout code can branch on it without
// type assertions.
type Kind uint8

const (
	KindWidget  Kind = iota // plain node with no visual output
	KindFlex                // row/column layout container
	KindSpacer              // flex child that absorbs leftover main-axis space
	KindText                // renders a string
	KindPadding             // wraps children with padding
	KindRect                // filled rounded rectangle
	KindButton              // clickable padded box
)

// Align controls cross-axis placement of flex children.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Justify controls main-axis distribution of flex children.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft  MouseButton = iota // primary (left) mouse button
	MouseButtonRight                    // secondary (right) mouse button
)

// KeyState is a bitmask of key edges recorded during one frame.
type KeyState uint8

const (
	KeyNone     KeyState = 0
	KeyPressed  KeyState = 1 << 1
	KeyReleased KeyState = 1 << 2
	KeyRepeated KeyState = 1 << 3
)

// keyPressedMask counts auto-repeat as a press.
const keyPressedMask = KeyPressed | KeyRepeated

func roundPx(v float32) float32 {
	return float32(math.Round(float64(v)))
}
