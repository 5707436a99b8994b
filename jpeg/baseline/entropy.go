package baseline

import "github.com/go-baseline-jpeg/jfifdecode/jpeg/common"

// EntropyDecoder recovers per-block DC and AC coefficients from the
// bit-level Huffman-coded scan payload. It carries one mutable piece
// of state: a running DC predictor per component, which persists
// across every MCU of the scan (restart intervals, which would reset
// it mid-scan, are out of scope).
type EntropyDecoder struct {
	md     *Metadata
	dcPred []int
}

// NewEntropyDecoder builds a decoder bound to md's component table;
// md must already carry DC/AC table bindings from SOS.
func NewEntropyDecoder(md *Metadata) *EntropyDecoder {
	return &EntropyDecoder{
		md:     md,
		dcPred: make([]int, len(md.Components)),
	}
}

// DecodeBlock fills b (in zig-zag linear order) for component index
// ci, reading from br. The component's running DC predictor is
// updated in place.
func (e *EntropyDecoder) DecodeBlock(br *common.BitReader, ci int, b *Block) error {
	comp := e.md.Components[ci]

	for i := range b {
		b[i] = 0
	}

	dcTable := e.md.DCTables[comp.DCTableID]
	s, err := dcTable.Decode(br)
	if err != nil {
		return err
	}
	if s > 11 {
		return wrapUnsupported("DC coefficient size category %d exceeds baseline range", s)
	}
	diff, err := common.ReceiveExtend(br, int(s))
	if err != nil {
		return err
	}
	e.dcPred[ci] += diff
	b[0] = float64(e.dcPred[ci])

	acTable := e.md.ACTables[comp.ACTableID]
	k := 1
	for k < 64 {
		rs, err := acTable.Decode(br)
		if err != nil {
			return err
		}
		run := int(rs >> 4)
		size := int(rs & 0x0F)

		if size == 0 {
			if run == 15 {
				k += 16 // ZRL: 16 zero coefficients
				continue
			}
			break // EOB: remainder stays zero
		}

		k += run
		if k >= 64 {
			return wrapInvalidRunLength(k)
		}

		val, err := common.ReceiveExtend(br, size)
		if err != nil {
			return err
		}
		b[k] = float64(val)
		k++
	}

	return nil
}
