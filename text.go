package breeze

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontFamily is the family name the bundled Go Regular face is
// registered under.
const DefaultFontFamily = "main"

// TextMeasurer measures strings for layout. Sizes are in logical pixels.
type TextMeasurer interface {
	// MeasureText measures s on a single line.
	MeasureText(family string, size float32, s string) (w, h float32)
	// MeasureTextBox measures s wrapped to maxWidth.
	MeasureTextBox(family string, size float32, s string, maxWidth float32) (w, h float32)
}

type faceKey struct {
	family string
	size   float32
}

// Fonts maps family names to font sources and caches sized faces.
// A new Fonts has DefaultFontFamily registered. Fonts implements
// TextMeasurer.
type Fonts struct {
	sources map[string]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

// NewFonts creates a font registry with the Go Regular face registered as
// DefaultFontFamily.
func NewFonts() (*Fonts, error) {
	f := &Fonts{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
	if err := f.Register(DefaultFontFamily, goregular.TTF); err != nil {
		return nil, err
	}
	return f, nil
}

// Register parses TrueType or OpenType data and makes it available under
// family, replacing any previous face of that name.
func (f *Fonts) Register(family string, ttfData []byte) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("breeze: failed to parse font %q: %w", family, err)
	}
	f.sources[family] = source
	for k := range f.faces {
		if k.family == family {
			delete(f.faces, k)
		}
	}
	return nil
}

// Face returns the face for family at size. Unknown families fall back to
// DefaultFontFamily.
func (f *Fonts) Face(family string, size float32) *text.GoTextFace {
	source, ok := f.sources[family]
	if !ok {
		family = DefaultFontFamily
		source = f.sources[family]
	}
	k := faceKey{family, size}
	if face, ok := f.faces[k]; ok {
		return face
	}
	face := &text.GoTextFace{Source: source, Size: float64(size)}
	f.faces[k] = face
	return face
}

// lineHeight returns the vertical distance between baselines.
func lineHeight(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureText implements TextMeasurer.
func (f *Fonts) MeasureText(family string, size float32, s string) (w, h float32) {
	face := f.Face(family, size)
	mw, mh := text.Measure(s, face, lineHeight(face))
	return float32(mw), float32(mh)
}

// MeasureTextBox implements TextMeasurer.
func (f *Fonts) MeasureTextBox(family string, size float32, s string, maxWidth float32) (w, h float32) {
	face := f.Face(family, size)
	lines := wrapLines(face, s, float64(maxWidth))
	var widest float64
	for _, l := range lines {
		widest = max(widest, text.Advance(l, face))
	}
	return float32(widest), float32(float64(len(lines)) * lineHeight(face))
}

// wrapLines breaks s into lines no wider than maxWidth. Explicit newlines
// always break. Words wider than maxWidth are split between runes.
func wrapLines(face text.Face, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var cur string
		for _, word := range strings.Fields(para) {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if text.Advance(candidate, face) <= maxWidth {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			for text.Advance(word, face) > maxWidth {
				head := splitToWidth(face, word, maxWidth)
				lines = append(lines, word[:head])
				word = word[head:]
			}
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// splitToWidth returns the byte length of the longest prefix of s that fits
// in maxWidth, and at least one rune.
func splitToWidth(face text.Face, s string, maxWidth float64) int {
	_, first := utf8.DecodeRuneInString(s)
	end := first
	for i := first; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if text.Advance(s[:i+size], face) > maxWidth {
			break
		}
		i += size
		end = i
	}
	return end
}

// Text draws a string at its position. With ShrinkHorizontal and
// ShrinkVertical set it sizes itself to the measured text every update.
type Text struct {
	Node

	Text       string
	FontSize   float32
	FontFamily string
	Color      AnimatedColor
	// MaxWidth wraps the text when positive. Negative means a single line.
	MaxWidth float32

	ShrinkHorizontal bool
	ShrinkVertical   bool
}

// NewText creates a black 14px text widget.
func NewText(s string) *Text {
	t := &Text{
		Text:             s,
		FontSize:         14,
		FontFamily:       DefaultFontFamily,
		MaxWidth:         -1,
		ShrinkHorizontal: true,
		ShrinkVertical:   true,
	}
	t.Init(t, KindText, "text")
	t.Color = NewAnimatedColor(&t.Node, ColorBlack, "txt")
	return t
}

// AsText implements Widget.
func (t *Text) AsText() *Text { return t }

// SetWrapWidth wraps the text at w pixels.
func (t *Text) SetWrapWidth(w float32) {
	t.MaxWidth = w
}

// measure returns the text extent, or false without a measurer.
func (t *Text) measure(ctx *UpdateContext) (w, h float32, ok bool) {
	if ctx.Measurer == nil {
		return 0, 0, false
	}
	if t.MaxWidth < 0 {
		w, h = ctx.Measurer.MeasureText(t.FontFamily, t.FontSize, t.Text)
	} else {
		w, h = ctx.Measurer.MeasureTextBox(t.FontFamily, t.FontSize, t.Text, t.MaxWidth)
	}
	return w, h, true
}

// Update updates the node, then resizes to the measured text.
func (t *Text) Update(ctx *UpdateContext) {
	t.Node.Update(ctx)
	w, h, ok := t.measure(ctx)
	if !ok {
		return
	}
	if t.ShrinkHorizontal {
		if t.MaxWidth > 0 {
			w = min(w, t.MaxWidth)
		}
		t.Width.AnimateTo(w)
	}
	if t.ShrinkVertical {
		t.Height.AnimateTo(h)
	}
}

// MeasureWidth returns the measured text width when shrinking horizontally.
func (t *Text) MeasureWidth(ctx *UpdateContext) float32 {
	if !t.ShrinkHorizontal {
		return t.Width.Dest()
	}
	w, _, ok := t.measure(ctx)
	if !ok {
		return t.Width.Dest()
	}
	if t.MaxWidth > 0 {
		w = min(w, t.MaxWidth)
	}
	return w
}

// MeasureHeight returns the measured text height when shrinking vertically.
func (t *Text) MeasureHeight(ctx *UpdateContext) float32 {
	if !t.ShrinkVertical {
		return t.Height.Dest()
	}
	_, h, ok := t.measure(ctx)
	if !ok {
		return t.Height.Dest()
	}
	return h
}

// Render draws children, then the text with its top-left at the node
// position.
func (t *Text) Render(c *Canvas) {
	t.Node.Render(c)
	c.FontSize(t.FontSize)
	c.FontFace(t.FontFamily)
	c.FillColor(t.Color.Color())
	if t.MaxWidth > 0 {
		c.TextBox(t.X.Value(), t.Y.Value(), t.MaxWidth, t.Text)
		return
	}
	c.Text(t.X.Value(), t.Y.Value(), t.Text)
}
