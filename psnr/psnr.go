// Package psnr compares a decoded RGB pixel buffer against the Go
// standard library's own JPEG decode of the same source file, as a
// rough correctness check against a second, independently implemented
// decoder.
package psnr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"math"
)

// Result holds the comparison outcome: the overlapping rectangle both
// decoders agree on (MCU padding can make the two outputs' dimensions
// differ by a few pixels) and the resulting PSNR in decibels.
type Result struct {
	Width, Height int
	PSNR          float64
}

// Compare decodes jpegData with image/jpeg and compares it, pixel by
// pixel over their shared top-left rectangle, against an RGB buffer
// already produced by this module's own decoder.
func Compare(jpegData []byte, width, height int, pixels []byte) (Result, error) {
	if len(pixels) != width*height*3 {
		return Result{}, fmt.Errorf("psnr: pixel buffer length %d does not match %dx%d RGB", len(pixels), width, height)
	}

	ref, _, err := image.Decode(bytes.NewReader(jpegData))
	if err != nil {
		return Result{}, fmt.Errorf("psnr: reference decode failed: %w", err)
	}

	bounds := ref.Bounds()
	refW, refH := bounds.Dx(), bounds.Dy()
	minW, minH := width, height
	if refW < minW {
		minW = refW
	}
	if refH < minH {
		minH = refH
	}

	var sumSquares float64
	for y := 0; y < minH; y++ {
		for x := 0; x < minW; x++ {
			r1, g1, b1 := sample(pixels, width, x, y)
			r2, g2, b2 := refRGB(ref, bounds, x, y)
			sumSquares += square(r1 - r2)
			sumSquares += square(g1 - g2)
			sumSquares += square(b1 - b2)
		}
	}

	mse := sumSquares / float64(minW*minH*3)
	result := Result{Width: minW, Height: minH}
	if mse == 0 {
		result.PSNR = math.Inf(1)
		return result, nil
	}
	result.PSNR = 20 * math.Log10(255.0/math.Sqrt(mse))
	return result, nil
}

func sample(pixels []byte, width, x, y int) (r, g, b float64) {
	off := (y*width + x) * 3
	return float64(pixels[off]), float64(pixels[off+1]), float64(pixels[off+2])
}

func refRGB(img image.Image, bounds image.Rectangle, x, y int) (r, g, b float64) {
	c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
	return float64(c.R), float64(c.G), float64(c.B)
}

func square(v float64) float64 { return v * v }
