package breeze

import (
	"image"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// InvalidImageID marks an Image whose pixels could not be loaded.
const InvalidImageID = -1

// Image is a handle to pixels uploaded to a Surface. Check Valid before
// drawing; loaders return an invalid Image instead of an error.
type Image struct {
	ID            int
	Width, Height int
}

// InvalidImage is the Image every failed load returns.
var InvalidImage = Image{ID: InvalidImageID}

// Valid reports whether the image was loaded.
func (img Image) Valid() bool {
	return img.ID != InvalidImageID
}

// LoadBitmapImage uploads a 32-bit BGRA bitmap as produced by native window
// and icon APIs. bottomUp flips bitmaps whose first row is the bottom one.
// Alpha is taken as straight.
func LoadBitmapImage(s Surface, pix []byte, w, h int, bottomUp bool) Image {
	if s == nil || w <= 0 || h <= 0 {
		debugf("image: invalid bitmap %dx%d", w, h)
		return InvalidImage
	}
	if len(pix) < 4*w*h {
		debugf("image: bitmap %dx%d needs %d bytes, got %d", w, h, 4*w*h, len(pix))
		return InvalidImage
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < 4*w*h; i += 4 {
		img.Pix[i+0] = pix[i+2]
		img.Pix[i+1] = pix[i+1]
		img.Pix[i+2] = pix[i+0]
		img.Pix[i+3] = pix[i+3]
	}
	if bottomUp {
		img = imaging.FlipV(img)
	}
	return upload(s, img)
}

// DecodeBMP decodes a BMP file and uploads it.
func DecodeBMP(s Surface, r io.Reader) Image {
	img, err := bmp.Decode(r)
	if err != nil {
		debugf("image: decode bmp: %v", err)
		return InvalidImage
	}
	return LoadImage(s, img)
}

// LoadImage uploads any image.Image.
func LoadImage(s Surface, img image.Image) Image {
	if s == nil || img == nil {
		return InvalidImage
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*nrgba.Rect.Dx() {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)
	}
	return upload(s, nrgba)
}

// upload premultiplies straight-alpha pixels and hands them to s.
func upload(s Surface, img *image.NRGBA) Image {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]byte, len(img.Pix))
	for i := 0; i < len(pix); i += 4 {
		a := uint32(img.Pix[i+3])
		pix[i+0] = uint8(uint32(img.Pix[i+0]) * a / 255)
		pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
		pix[i+3] = uint8(a)
	}
	id := s.CreateImageRGBA(w, h, pix)
	if id == InvalidImageID {
		debugf("image: surface rejected %dx%d image", w, h)
		return InvalidImage
	}
	return Image{ID: id, Width: w, Height: h}
}
