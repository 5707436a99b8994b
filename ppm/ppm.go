// Package ppm writes decoded RGB pixel buffers to the PPM P6 format,
// the simplest way to inspect a decode result without a general-purpose
// image library.
package ppm

import (
	"bufio"
	"fmt"
	"io"
)

// Write emits pixels (width*height*3 interleaved RGB bytes) as a
// binary PPM (P6) image to w.
func Write(w io.Writer, width, height int, pixels []byte) error {
	if len(pixels) != width*height*3 {
		return fmt.Errorf("ppm: pixel buffer length %d does not match %dx%d RGB", len(pixels), width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	if _, err := bw.Write(pixels); err != nil {
		return fmt.Errorf("ppm: write pixel data: %w", err)
	}
	return bw.Flush()
}
