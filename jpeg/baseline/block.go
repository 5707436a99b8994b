package baseline

import "github.com/go-baseline-jpeg/jfifdecode/jpeg/common"

// Block is a single 8x8 coefficient grid. It carries four successive
// meanings during its life, always in the row-major layout of the
// array (linear index k lives at row k/8, column k%8):
//
//  1. freshly decoded coefficients in zig-zag linear order,
//  2. dequantized coefficients in the same order,
//  3. dequantized coefficients reordered into spatial frequency order,
//  4. spatial samples after IDCT, nominally in (-128, +128).
//
// BlockPipeline mutates a Block through these stages in place.
type Block [64]float64

// BlockPipeline applies the stateless per-block reconstruction chain:
// dequantize, inverse zig-zag, then 2-D IDCT. It holds no state of
// its own; every call is independent of every other.
type BlockPipeline struct{}

// Process mutates b through all three reconstruction stages in order
// against the given quantization table.
func (BlockPipeline) Process(b *Block, quant *[64]int32) {
	dequantize(b, quant)
	inverseZigZag(b)
	idct(b)
}

// dequantize pairwise multiplies the 64 coefficients, still in
// zig-zag linear order, by the quantization table of the component's
// declared quant_id.
func dequantize(b *Block, quant *[64]int32) {
	for k := 0; k < 64; k++ {
		b[k] *= float64(quant[k])
	}
}

// inverseZigZag permutes the 64 values from zig-zag linear order into
// natural row-major spatial order.
func inverseZigZag(b *Block) {
	var natural [64]float64
	for zz, n := range common.ZigZagOrder {
		natural[n] = b[zz]
	}
	*b = natural
}

// idct runs the 2-D inverse DCT via row-column separation, leaving
// the block in the spatial domain before level shift.
func idct(b *Block) {
	arr := [64]float64(*b)
	common.IDCT2D(&arr)
	*b = Block(arr)
}
