package common

// HuffmanTable is a canonical JPEG Huffman table: a mapping from
// (code length, code) pairs to an 8-bit symbol, built from the DHT
// on-wire form (sixteen length counts followed by the symbols in code
// order).
type HuffmanTable struct {
	// Bits[i] is the number of codes of length i+1 (Bits[0] counts
	// 1-bit codes, Bits[15] counts 16-bit codes).
	Bits [16]int
	// Values holds the symbols in code order: Bits[0] symbols of
	// length 1 first, then Bits[1] symbols of length 2, and so on.
	Values []byte

	minCode [16]int32 // first code assigned at each length
	maxCode [16]int32 // last code assigned at each length, -1 if none
	valPtr  [16]int32 // index into Values of the first code at each length
}

// Build assigns canonical codes to the table's symbols following the
// JPEG rule: the first code of length 1 is 0; within one length codes
// are consecutive; after the codes of length l are exhausted the
// running code shifts left one bit and length increments.
func (t *HuffmanTable) Build() error {
	code := int32(0)
	k := int32(0)
	for l := 0; l < 16; l++ {
		if t.Bits[l] == 0 {
			t.maxCode[l] = -1
		} else {
			t.valPtr[l] = k
			t.minCode[l] = code
			code += int32(t.Bits[l])
			k += int32(t.Bits[l])
			t.maxCode[l] = code - 1
		}
		code <<= 1
	}
	return nil
}

// Decode reads bits from br one at a time, testing the accumulated
// (length, code) pair against the table after each bit, and returns
// the first matching symbol. It fails with ErrNoMatchingCode if no
// code of length 16 or shorter matches.
func (t *HuffmanTable) Decode(br *BitReader) (byte, error) {
	code := int32(0)
	for l := 0; l < 16; l++ {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | int32(bit)
		if t.maxCode[l] >= 0 && code >= t.minCode[l] && code <= t.maxCode[l] {
			idx := t.valPtr[l] + (code - t.minCode[l])
			if int(idx) < len(t.Values) {
				return t.Values[idx], nil
			}
		}
	}
	return 0, ErrNoMatchingCode
}

// ReceiveExtend reads ssss bits and sign-extends them per the JPEG
// DC/AC magnitude-category convention: a leading 1 bit means the value
// is positive (in 2^(ssss-1)..2^ssss-1), a leading 0 bit means it
// decodes as value-(2^ssss-1), i.e. negative. ssss=0 returns 0 without
// reading any bits.
func ReceiveExtend(br *BitReader, ssss int) (int, error) {
	if ssss == 0 {
		return 0, nil
	}
	bits, err := br.ReadBits(ssss)
	if err != nil {
		return 0, err
	}
	v := int(bits)
	if v < 1<<uint(ssss-1) {
		v += (-1 << uint(ssss)) + 1
	}
	return v, nil
}

// BuildStandardHuffmanTable constructs and builds a HuffmanTable from
// its wire-form bit counts and symbol list, as read from a DHT
// segment. It never fails: Build does not validate the counts and
// always returns nil.
func BuildStandardHuffmanTable(bits [16]int, values []byte) *HuffmanTable {
	t := &HuffmanTable{Bits: bits, Values: values}
	_ = t.Build()
	return t
}
