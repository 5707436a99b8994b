package baseline

import "github.com/go-baseline-jpeg/jfifdecode/jpeg/common"

// Image is a width x height grid of RGB triples, one byte per
// channel. Backing storage is allocated at padded dimensions so that
// whole-MCU writes are always in-bounds; Pixels crops to the
// declared width/height on read.
type Image struct {
	Width, Height             int // declared (unpadded) dimensions
	paddedWidth, paddedHeight int
	buf                       []byte // padded RGB plane, row-major, 3 bytes per pixel
}

// NewImage allocates a padded RGB buffer sized to whole MCUs.
func NewImage(width, height, mcuW, mcuH int) *Image {
	img := &Image{
		Width:        width,
		Height:       height,
		paddedWidth:  common.DivCeil(width, mcuW) * mcuW,
		paddedHeight: common.DivCeil(height, mcuH) * mcuH,
	}
	img.buf = make([]byte, img.paddedWidth*img.paddedHeight*3)
	return img
}

// SetPixel writes one RGB triple at padded coordinate (x, y).
func (img *Image) SetPixel(x, y int, r, g, b byte) {
	off := (y*img.paddedWidth + x) * 3
	img.buf[off+0] = r
	img.buf[off+1] = g
	img.buf[off+2] = b
}

// Pixels returns a tightly packed row-major RGB buffer cropped to the
// declared Width x Height.
func (img *Image) Pixels() []byte {
	out := make([]byte, img.Width*img.Height*3)
	for y := 0; y < img.Height; y++ {
		srcOff := y * img.paddedWidth * 3
		dstOff := y * img.Width * 3
		copy(out[dstOff:dstOff+img.Width*3], img.buf[srcOff:srcOff+img.Width*3])
	}
	return out
}
