package common

// ZigZagOrder maps a coefficient's zigzag-scan position (the order
// Huffman decoding produces) to its natural row-major position within
// an 8x8 block: ZigZagOrder[zigzagIndex] == naturalIndex.
var ZigZagOrder = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// InverseZigZag scatters src, indexed in zigzag-scan order, into dst,
// indexed in natural row-major order. src and dst may not overlap.
func InverseZigZag(dst, src *[64]int32) {
	for zz, natural := range ZigZagOrder {
		dst[natural] = src[zz]
	}
}
