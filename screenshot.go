package breeze

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot of the next repainted frame and
// forces that repaint. The PNG is written to ScreenshotDir with a
// timestamped name.
func (d *Driver) Screenshot(label string) {
	d.screenshotQueue = append(d.screenshotQueue, label)
	d.RequestRepaint()
}

// takeScreenshots returns and clears the queued labels.
func (d *Driver) takeScreenshots() []string {
	labels := d.screenshotQueue
	d.screenshotQueue = nil
	return labels
}

// flushScreenshots captures screen for every queued label. Called by the
// host after Draw.
func (d *Driver) flushScreenshots(screen *ebiten.Image) {
	if len(d.screenshotQueue) == 0 {
		return
	}
	labels := d.takeScreenshots()

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	if err := d.writeScreenshots(unpremultiply(pixels, w, h), labels); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[breeze] screenshot: %v\n", err)
	}
}

func (d *Driver) writeScreenshots(img *image.NRGBA, labels []string) error {
	if err := os.MkdirAll(d.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", d.ScreenshotDir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	var firstErr error
	for _, label := range labels {
		path := filepath.Join(d.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// unpremultiply converts premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
