package baseline

import (
	"errors"
	"testing"

	"github.com/go-baseline-jpeg/jfifdecode/jpeg/common"
)

// onesTable is a quantization table that leaves coefficients
// unscaled, so expected pixel values reduce to dc/8 + level shift.
var onesTable = func() [64]int32 {
	var t [64]int32
	for i := range t {
		t[i] = 1
	}
	return t
}()

// TestDecodeMinimal1x1 covers scenario S1: a 1x1 grayscale image with
// a zero DC difference and an immediate EOB produces a single neutral
// pixel.
func TestDecodeMinimal1x1(t *testing.T) {
	dcBits, dcValues := oneSymbolHuffman(0) // S=0, diff=0
	acBits, acValues := oneSymbolHuffman(0x00) // EOB

	var w bitWriter
	w.writeBits(0, 1) // DC huffman code
	w.writeBits(0, 1) // AC huffman code (EOB)
	w.flush()

	comps := []testComponent{{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}}
	jpegData := buildBaselineJPEG(1, 1, comps,
		map[int][64]int32{0: onesTable},
		map[int][16]int{0: dcBits}, map[int][]byte{0: dcValues},
		map[int][16]int{0: acBits}, map[int][]byte{0: acValues},
		w.bytes())

	pix, width, height, components, err := Decode(jpegData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if width != 1 || height != 1 {
		t.Fatalf("dimensions = %dx%d, want 1x1", width, height)
	}
	if components != 1 {
		t.Fatalf("components = %d, want 1", components)
	}
	if len(pix) != 3 {
		t.Fatalf("pixel buffer length = %d, want 3", len(pix))
	}
	if pix[0] != 128 || pix[1] != 128 || pix[2] != 128 {
		t.Errorf("pixel = (%d,%d,%d), want (128,128,128)", pix[0], pix[1], pix[2])
	}
}

// TestDecodeAllDCBlock covers scenario S2: a single 8x8 block with no
// AC coefficients reconstructs to a constant plane of dc/8 + 128.
func TestDecodeAllDCBlock(t *testing.T) {
	dcDiff := 16
	size, bits := encodeMagnitude(dcDiff)
	dcBits, dcValues := oneSymbolHuffman(byte(size))
	acBits, acValues := oneSymbolHuffman(0x00)

	var w bitWriter
	w.writeBits(0, 1) // DC huffman code
	w.writeBits(bits, size)
	w.writeBits(0, 1) // AC huffman code (EOB)
	w.flush()

	comps := []testComponent{{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}}
	jpegData := buildBaselineJPEG(8, 8, comps,
		map[int][64]int32{0: onesTable},
		map[int][16]int{0: dcBits}, map[int][]byte{0: dcValues},
		map[int][16]int{0: acBits}, map[int][]byte{0: acValues},
		w.bytes())

	pix, width, height, _, err := Decode(jpegData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if width != 8 || height != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", width, height)
	}

	want := byte(dcDiff/8 + 128)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			off := (y*8 + x) * 3
			if pix[off] != want || pix[off+1] != want || pix[off+2] != want {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					x, y, pix[off], pix[off+1], pix[off+2], want, want, want)
			}
		}
	}
}

// TestDecodeSubsampling420 covers scenario S3: a single 16x16 MCU
// with 4:2:0 sampling verifies each of the four luma quadrants reads
// its own block while the neutral chroma leaves R=G=B=Y.
func TestDecodeSubsampling420(t *testing.T) {
	ySize, yBits := encodeMagnitude(8)
	yDCBits, yDCValues := oneSymbolHuffman(byte(ySize))
	cDCBits, cDCValues := oneSymbolHuffman(0) // chroma diff 0
	acBits, acValues := oneSymbolHuffman(0x00)

	var w bitWriter
	// Four Y blocks, each a further DC diff of 8 (cumulative 8,16,24,32).
	for i := 0; i < 4; i++ {
		w.writeBits(0, 1) // Y DC huffman code
		w.writeBits(yBits, ySize)
		w.writeBits(0, 1) // AC EOB
	}
	// Cb, then Cr: zero diff, immediate EOB.
	for i := 0; i < 2; i++ {
		w.writeBits(0, 1) // chroma DC huffman code
		w.writeBits(0, 1) // AC EOB
	}
	w.flush()

	comps := []testComponent{
		{id: 1, samplingH: 2, samplingV: 2, quantID: 0, dcID: 0, acID: 0},
		{id: 2, samplingH: 1, samplingV: 1, quantID: 0, dcID: 1, acID: 0},
		{id: 3, samplingH: 1, samplingV: 1, quantID: 0, dcID: 1, acID: 0},
	}
	jpegData := buildBaselineJPEG(16, 16, comps,
		map[int][64]int32{0: onesTable},
		map[int][16]int{0: yDCBits, 1: cDCBits}, map[int][]byte{0: yDCValues, 1: cDCValues},
		map[int][16]int{0: acBits}, map[int][]byte{0: acValues},
		w.bytes())

	pix, width, height, components, err := Decode(jpegData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if width != 16 || height != 16 {
		t.Fatalf("dimensions = %dx%d, want 16x16", width, height)
	}
	if components != 3 {
		t.Fatalf("components = %d, want 3", components)
	}

	check := func(x, y int, want byte) {
		off := (y*width + x) * 3
		if pix[off] != want || pix[off+1] != want || pix[off+2] != want {
			t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
				x, y, pix[off], pix[off+1], pix[off+2], want, want, want)
		}
	}
	check(0, 0, 129)
	check(8, 0, 130)
	check(0, 8, 131)
	check(8, 8, 132)
}

// TestDecodeNonAlignedGeometry covers scenario S4: a 7x7 image is
// decoded through a full 8x8 padded MCU and cropped back to the
// declared dimensions.
func TestDecodeNonAlignedGeometry(t *testing.T) {
	dcBits, dcValues := oneSymbolHuffman(0)
	acBits, acValues := oneSymbolHuffman(0x00)

	var w bitWriter
	w.writeBits(0, 1)
	w.writeBits(0, 1)
	w.flush()

	comps := []testComponent{{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}}
	jpegData := buildBaselineJPEG(7, 7, comps,
		map[int][64]int32{0: onesTable},
		map[int][16]int{0: dcBits}, map[int][]byte{0: dcValues},
		map[int][16]int{0: acBits}, map[int][]byte{0: acValues},
		w.bytes())

	pix, width, height, _, err := Decode(jpegData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if width != 7 || height != 7 {
		t.Fatalf("dimensions = %dx%d, want 7x7", width, height)
	}
	if len(pix) != 7*7*3 {
		t.Fatalf("pixel buffer length = %d, want %d", len(pix), 7*7*3)
	}
	for i := 0; i < len(pix); i++ {
		if pix[i] != 128 {
			t.Fatalf("pix[%d] = %d, want 128", i, pix[i])
		}
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	dcBits, dcValues := oneSymbolHuffman(0)
	acBits, acValues := oneSymbolHuffman(0x00)
	comps := []testComponent{{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}}

	t.Run("truncated input", func(t *testing.T) {
		var w bitWriter
		w.writeBits(0, 1)
		w.writeBits(0, 1)
		w.flush()
		full := buildBaselineJPEG(1, 1, comps,
			map[int][64]int32{0: onesTable},
			map[int][16]int{0: dcBits}, map[int][]byte{0: dcValues},
			map[int][16]int{0: acBits}, map[int][]byte{0: acValues},
			w.bytes())

		_, _, _, _, err := Decode(full[:10])
		if !errors.Is(err, common.ErrTruncatedInput) {
			t.Errorf("err = %v, want wrapping ErrTruncatedInput", err)
		}
	})

	t.Run("SOS before SOF0", func(t *testing.T) {
		raw := []byte{0xFF, 0xD8, 0xFF, 0xDA, 0x00, 0x04, 0x00, 0x00}
		_, _, _, _, err := Decode(raw)
		if !errors.Is(err, common.ErrUnexpectedMarker) {
			t.Errorf("err = %v, want wrapping ErrUnexpectedMarker", err)
		}
	})

	t.Run("progressive SOF unsupported", func(t *testing.T) {
		raw := []byte{0xFF, 0xD8, 0xFF, 0xC2, 0x00, 0x02}
		_, _, _, _, err := Decode(raw)
		if !errors.Is(err, common.ErrUnsupported) {
			t.Errorf("err = %v, want wrapping ErrUnsupported", err)
		}
	})

	t.Run("table missing", func(t *testing.T) {
		raw := buildBaselineJPEG(1, 1, comps,
			map[int][64]int32{}, map[int][16]int{}, map[int][]byte{},
			map[int][16]int{}, map[int][]byte{}, nil)
		_, _, _, _, err := Decode(raw)
		if !errors.Is(err, common.ErrTableMissing) {
			t.Errorf("err = %v, want wrapping ErrTableMissing", err)
		}
	})
}

// TestDecodeStandardTables exercises the Annex K standard
// quantization and Huffman tables from jpeg/common/tables.go end to
// end: a neutral (all-zero DC and AC) 8x8, 4:4:4 image encoded with
// the real standard DC/AC luminance and chrominance tables should
// decode flat to mid-gray.
func TestDecodeStandardTables(t *testing.T) {
	// DC category 0 (diff=0) is the first 2-bit code in both the
	// standard DC luminance and DC chrominance tables: "00".
	// EOB is the first 4-bit code (binary 1010) in the standard AC
	// luminance table, and the first 2-bit code ("00") in the
	// standard AC chrominance table.
	var w bitWriter
	w.writeBits(0b00, 2)   // Y DC: category 0
	w.writeBits(0b1010, 4) // Y AC: EOB
	w.writeBits(0b00, 2)   // Cb DC: category 0
	w.writeBits(0b00, 2)   // Cb AC: EOB
	w.writeBits(0b00, 2)   // Cr DC: category 0
	w.writeBits(0b00, 2)   // Cr AC: EOB
	w.flush()

	comps := []testComponent{
		{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}, // Y
		{id: 2, samplingH: 1, samplingV: 1, quantID: 1, dcID: 1, acID: 1}, // Cb
		{id: 3, samplingH: 1, samplingV: 1, quantID: 1, dcID: 1, acID: 1}, // Cr
	}
	jpegData := buildBaselineJPEG(8, 8, comps,
		map[int][64]int32{0: common.DefaultLuminanceQuantTable, 1: common.DefaultChrominanceQuantTable},
		map[int][16]int{0: common.StandardDCLuminanceBits, 1: common.StandardDCChrominanceBits},
		map[int][]byte{0: common.StandardDCLuminanceValues, 1: common.StandardDCChrominanceValues},
		map[int][16]int{0: common.StandardACLuminanceBits, 1: common.StandardACChrominanceBits},
		map[int][]byte{0: common.StandardACLuminanceValues, 1: common.StandardACChrominanceValues},
		w.bytes())

	pix, width, height, components, err := Decode(jpegData)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if width != 8 || height != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", width, height)
	}
	if components != 3 {
		t.Fatalf("components = %d, want 3", components)
	}
	for i := 0; i < len(pix); i++ {
		if pix[i] != 128 {
			t.Fatalf("pix[%d] = %d, want 128", i, pix[i])
		}
	}
}

func TestDecodeNoMatchingCode(t *testing.T) {
	dcBits, dcValues := oneSymbolHuffman(0)
	var emptyACBits [16]int // no AC codes assigned at all

	var w bitWriter
	w.writeBits(0, 1)   // DC huffman code
	w.writeBits(0, 24)  // plenty of zero bits; no AC code can match
	w.flush()

	comps := []testComponent{{id: 1, samplingH: 1, samplingV: 1, quantID: 0, dcID: 0, acID: 0}}
	jpegData := buildBaselineJPEG(8, 8, comps,
		map[int][64]int32{0: onesTable},
		map[int][16]int{0: dcBits}, map[int][]byte{0: dcValues},
		map[int][16]int{0: emptyACBits}, map[int][]byte{0: {}},
		w.bytes())

	_, _, _, _, err := Decode(jpegData)
	if !errors.Is(err, common.ErrNoMatchingCode) {
		t.Errorf("err = %v, want wrapping ErrNoMatchingCode", err)
	}
}
