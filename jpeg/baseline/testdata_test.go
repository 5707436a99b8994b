package baseline

import "bytes"

// bitWriter is the entropy-payload builder test fixtures use: the
// mirror image of common.BitReader, applying the same 0xFF/0x00
// byte-stuffing rule on the way out that BitReader removes on the
// way in.
type bitWriter struct {
	buf   bytes.Buffer
	cur   byte
	nbits int
}

func (w *bitWriter) writeBits(val uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := byte((val >> uint(i)) & 1)
		w.cur = w.cur<<1 | bit
		w.nbits++
		if w.nbits == 8 {
			w.emit(w.cur)
			w.cur, w.nbits = 0, 0
		}
	}
}

func (w *bitWriter) emit(b byte) {
	w.buf.WriteByte(b)
	if b == 0xFF {
		w.buf.WriteByte(0x00)
	}
}

// flush pads any partial final byte with 1-bits, the conventional
// JPEG scan-data padding.
func (w *bitWriter) flush() {
	if w.nbits > 0 {
		pad := 8 - w.nbits
		w.cur = w.cur<<uint(pad) | (1<<uint(pad) - 1)
		w.emit(w.cur)
		w.cur, w.nbits = 0, 0
	}
}

func (w *bitWriter) bytes() []byte { return w.buf.Bytes() }

// encodeMagnitude returns the (size, bits) pair ReceiveExtend's
// sign-extension rule expects for a DC difference or AC coefficient
// value: the inverse of common.ReceiveExtend.
func encodeMagnitude(v int) (size int, bits uint32) {
	if v == 0 {
		return 0, 0
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	for (1 << uint(size)) <= abs {
		size++
	}
	if v > 0 {
		return size, uint32(v)
	}
	return size, uint32(v + (1 << uint(size)) - 1)
}

// testComponent describes one SOF0/SOS component record for a
// synthetic fixture.
type testComponent struct {
	id                       byte
	samplingH, samplingV     int
	quantID, dcID, acID      int
}

// oneSymbolHuffman builds a table whose sole assigned code is the
// single bit "0" decoding to symbol. Fixtures that only ever need one
// DC/AC symbol per table use this to keep the synthetic bitstream
// trivial to hand-compute.
func oneSymbolHuffman(symbol byte) ([16]int, []byte) {
	var bits [16]int
	bits[0] = 1
	return bits, []byte{symbol}
}

// buildBaselineJPEG assembles a minimal JFIF byte stream: SOI, one
// DQT per distinct quant table, one DHT per distinct Huffman table,
// SOF0, SOS, the caller-supplied entropy bytes, EOI.
func buildBaselineJPEG(width, height int, comps []testComponent,
	quant map[int][64]int32,
	dcBits map[int][16]int, dcValues map[int][]byte,
	acBits map[int][16]int, acValues map[int][]byte,
	entropy []byte) []byte {

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI

	for id, table := range quant {
		var seg bytes.Buffer
		seg.WriteByte(byte(id)) // precision 0 (8-bit) in upper nibble
		for _, v := range table {
			seg.WriteByte(byte(v))
		}
		writeSegment(&buf, 0xDB, seg.Bytes())
	}

	for id, bits := range dcBits {
		var seg bytes.Buffer
		seg.WriteByte(byte(id)) // class 0 (DC) in upper nibble
		for _, c := range bits {
			seg.WriteByte(byte(c))
		}
		seg.Write(dcValues[id])
		writeSegment(&buf, 0xC4, seg.Bytes())
	}
	for id, bits := range acBits {
		var seg bytes.Buffer
		seg.WriteByte(byte(0x10 | id)) // class 1 (AC) in upper nibble
		for _, c := range bits {
			seg.WriteByte(byte(c))
		}
		seg.Write(acValues[id])
		writeSegment(&buf, 0xC4, seg.Bytes())
	}

	var sof bytes.Buffer
	sof.WriteByte(8) // precision
	sof.WriteByte(byte(height >> 8))
	sof.WriteByte(byte(height))
	sof.WriteByte(byte(width >> 8))
	sof.WriteByte(byte(width))
	sof.WriteByte(byte(len(comps)))
	for _, c := range comps {
		sof.WriteByte(c.id)
		sof.WriteByte(byte(c.samplingH<<4 | c.samplingV))
		sof.WriteByte(byte(c.quantID))
	}
	writeSegment(&buf, 0xC0, sof.Bytes())

	var sos bytes.Buffer
	sos.WriteByte(byte(len(comps)))
	for _, c := range comps {
		sos.WriteByte(c.id)
		sos.WriteByte(byte(c.dcID<<4 | c.acID))
	}
	sos.WriteByte(0)   // Ss
	sos.WriteByte(63)  // Se
	sos.WriteByte(0)   // Ah|Al
	writeSegment(&buf, 0xDA, sos.Bytes())

	buf.Write(entropy)
	buf.Write([]byte{0xFF, 0xD9}) // EOI

	return buf.Bytes()
}

func writeSegment(buf *bytes.Buffer, marker byte, body []byte) {
	buf.WriteByte(0xFF)
	buf.WriteByte(marker)
	length := len(body) + 2
	buf.WriteByte(byte(length >> 8))
	buf.WriteByte(byte(length))
	buf.Write(body)
}
