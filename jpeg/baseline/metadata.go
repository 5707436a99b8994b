package baseline

import "github.com/go-baseline-jpeg/jfifdecode/jpeg/common"

// ComponentSpec is the per-component record carried by SOF0 and
// completed by SOS: sampling factors, which quantization table the
// component dequantizes against, and which Huffman tables its scan
// data is coded with.
type ComponentSpec struct {
	ID            byte // component identifier as it appears on the wire
	SamplingH     int  // horizontal sampling factor, 1..4
	SamplingV     int  // vertical sampling factor, 1..4
	QuantTableID  int  // 0..3, set by SOF0
	DCTableID     int  // 0..3, set by SOS
	ACTableID     int  // 0..3, set by SOS
	WidthInBlocks int  // component plane width, in 8x8 blocks
	HeightBlocks  int  // component plane height, in 8x8 blocks
}

// appInfo carries the informational APP0/JFIF fields; nothing in the
// decode pipeline depends on them, but they round out the metadata
// record the way a JFIF-conformant parser collects it.
type appInfo struct {
	identifier    string
	versionMajor  byte
	versionMinor  byte
	densityUnits  byte
	densityX      int
	densityY      int
	thumbnailW    byte
	thumbnailH    byte
	thumbnailSeen bool
}

// Metadata is the aggregate record SegmentParser builds while walking
// headers: frame geometry, all loaded tables, and the per-component
// entropy-table bindings. It is built once and is read-only for the
// rest of the decode.
type Metadata struct {
	Precision  int // sample precision in bits; baseline requires 8
	Width      int
	Height     int
	Components []*ComponentSpec

	MaxH int // largest SamplingH across Components
	MaxV int // largest SamplingV across Components

	QuantTables [4]*[64]int32
	DCTables    [4]*common.HuffmanTable
	ACTables    [4]*common.HuffmanTable

	app0 appInfo
}

// MCUWidth is the pixel width of one MCU: 8 * MaxH.
func (m *Metadata) MCUWidth() int { return 8 * m.MaxH }

// MCUHeight is the pixel height of one MCU: 8 * MaxV.
func (m *Metadata) MCUHeight() int { return 8 * m.MaxV }

// validateComplete checks the end-of-headers invariant from the data
// model: every component referenced by SOS must have all three
// tables (quant, DC, AC) present.
func (m *Metadata) validateComplete() error {
	for _, c := range m.Components {
		if m.QuantTables[c.QuantTableID] == nil {
			return wrapTableMissing("quantization", c.QuantTableID, c.ID)
		}
		if m.DCTables[c.DCTableID] == nil {
			return wrapTableMissing("DC Huffman", c.DCTableID, c.ID)
		}
		if m.ACTables[c.ACTableID] == nil {
			return wrapTableMissing("AC Huffman", c.ACTableID, c.ID)
		}
	}
	return nil
}
