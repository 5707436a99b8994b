package common

import "math"

// cosTable[x][u] holds cos((2x+1)*u*pi/16), precomputed once at
// package init since it never depends on the block being transformed.
var cosTable [8][8]float64

// alpha[u] is the 1/sqrt(2) normalization applied at u == 0, 1
// otherwise, folded in here so idct1D doesn't branch per coefficient.
var alpha [8]float64

func init() {
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			cosTable[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
	alpha[0] = 1 / math.Sqrt2
	for u := 1; u < 8; u++ {
		alpha[u] = 1
	}
}

// idct1D computes one 8-point inverse DCT-II, used twice (rows then
// columns) to build the separable 2-D transform.
func idct1D(in [8]float64) [8]float64 {
	var out [8]float64
	for x := 0; x < 8; x++ {
		var sum float64
		for u := 0; u < 8; u++ {
			sum += alpha[u] * in[u] * cosTable[x][u]
		}
		out[x] = sum / 2
	}
	return out
}

// IDCT2D performs the inverse 2-D DCT on a dequantized, natural-order
// 8x8 block in place, row transform first and then column transform.
// The result is left unshifted and unclamped, nominally in
// (-128, 127.5]; the caller applies the level shift as part of color
// conversion.
func IDCT2D(block *[64]float64) {
	var rows [8][8]float64
	for y := 0; y < 8; y++ {
		var row [8]float64
		copy(row[:], block[y*8:y*8+8])
		rows[y] = idct1D(row)
	}
	for x := 0; x < 8; x++ {
		var col [8]float64
		for y := 0; y < 8; y++ {
			col[y] = rows[y][x]
		}
		col = idct1D(col)
		for y := 0; y < 8; y++ {
			block[y*8+x] = col[y]
		}
	}
}
