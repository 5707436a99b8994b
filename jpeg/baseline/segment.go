package baseline

import (
	"bufio"
	"io"

	"github.com/go-baseline-jpeg/jfifdecode/jpeg/common"
)

// SegmentParser walks the marker structure of a JFIF file, populating
// a Metadata record until it consumes Start-of-Scan, at which point
// the underlying reader is positioned at the first entropy-coded
// byte of the scan.
type SegmentParser struct {
	r   *bufio.Reader
	md  *Metadata
	saw struct {
		soi  bool
		sof0 bool
	}
}

// NewSegmentParser wraps r for marker-by-marker consumption.
func NewSegmentParser(r io.Reader) *SegmentParser {
	return &SegmentParser{
		r:  bufio.NewReader(r),
		md: &Metadata{},
	}
}

// readMarker scans forward for 0xFF followed by a non-zero byte,
// tolerating 0xFF fill bytes between segments, and returns the full
// 16-bit marker value (0xFFxx).
func (p *SegmentParser) readMarker() (uint16, error) {
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return 0, wrapTruncated("seeking marker: %v", err)
		}
		if b != 0xFF {
			continue
		}
		for {
			b2, err := p.r.ReadByte()
			if err != nil {
				return 0, wrapTruncated("seeking marker: %v", err)
			}
			if b2 == 0xFF {
				continue // fill byte, keep scanning
			}
			if b2 == 0x00 {
				break // stray stuffing outside a scan; re-sync
			}
			return 0xFF00 | uint16(b2), nil
		}
	}
}

// readSegment reads a 2-byte big-endian length (inclusive of itself)
// and returns the length-2 bytes that follow.
func (p *SegmentParser) readSegment() ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(p.r, lenBuf[:]); err != nil {
		return nil, wrapTruncated("segment length: %v", err)
	}
	length := int(lenBuf[0])<<8 | int(lenBuf[1])
	if length < 2 {
		return nil, wrapTruncated("segment length %d below minimum", length)
	}
	body := make([]byte, length-2)
	if _, err := io.ReadFull(p.r, body); err != nil {
		return nil, wrapTruncated("segment body: %v", err)
	}
	return body, nil
}

// skipSegment discards a length-prefixed segment without retaining
// its body, for markers the decoder doesn't need.
func (p *SegmentParser) skipSegment() error {
	_, err := p.readSegment()
	return err
}

// ParseHeaders drives the marker walk until Start-of-Scan, returning
// the populated Metadata. The underlying reader is left positioned at
// the first byte of entropy-coded scan data.
func (p *SegmentParser) ParseHeaders() (*Metadata, error) {
	marker, err := p.readMarker()
	if err != nil {
		return nil, err
	}
	if marker != common.MarkerSOI {
		return nil, wrapUnexpectedMarker("expected SOI, got 0x%04X", marker)
	}
	p.saw.soi = true

	for {
		marker, err := p.readMarker()
		if err != nil {
			return nil, err
		}

		switch {
		case marker == common.MarkerAPP0:
			if err := p.parseAPP0(); err != nil {
				return nil, err
			}
		case marker == common.MarkerDQT:
			if err := p.parseDQT(); err != nil {
				return nil, err
			}
		case marker == common.MarkerDHT:
			if err := p.parseDHT(); err != nil {
				return nil, err
			}
		case marker == common.MarkerSOF0:
			if err := p.parseSOF0(); err != nil {
				return nil, err
			}
		case common.IsSOF(marker) && marker != common.MarkerSOF0:
			return nil, wrapUnsupported("non-baseline SOF marker 0x%04X", marker)
		case marker == common.MarkerDRI:
			return nil, wrapUnsupported("restart interval (DRI) not supported")
		case marker == common.MarkerSOS:
			if !p.saw.sof0 {
				return nil, wrapUnexpectedMarker("SOS before SOF0")
			}
			if err := p.parseSOS(); err != nil {
				return nil, err
			}
			if err := p.md.validateComplete(); err != nil {
				return nil, err
			}
			return p.md, nil
		case marker == common.MarkerEOI:
			return nil, wrapUnexpectedMarker("EOI before SOS")
		default:
			if common.HasLength(marker) {
				if err := p.skipSegment(); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (p *SegmentParser) parseAPP0() error {
	data, err := p.readSegment()
	if err != nil {
		return err
	}
	if len(data) < 5 {
		// Malformed or non-JFIF APP0; nothing the decode path needs.
		return nil
	}
	p.md.app0.identifier = string(data[0:4])
	if len(data) >= 9 {
		p.md.app0.versionMajor = data[5]
		p.md.app0.versionMinor = data[6]
		p.md.app0.densityUnits = data[7]
	}
	if len(data) >= 11 {
		p.md.app0.densityX = int(data[8])<<8 | int(data[9])
	}
	if len(data) >= 14 {
		p.md.app0.thumbnailW = data[12]
		p.md.app0.thumbnailH = data[13]
		p.md.app0.thumbnailSeen = true
	}
	return nil
}

func (p *SegmentParser) parseDQT() error {
	data, err := p.readSegment()
	if err != nil {
		return err
	}
	offset := 0
	for offset < len(data) {
		pqTq := data[offset]
		pq := pqTq >> 4
		tq := int(pqTq & 0x0F)
		offset++

		if tq > 3 {
			return wrapUnsupported("DQT table id %d out of range", tq)
		}

		table := &[64]int32{}
		if pq == 0 {
			if offset+64 > len(data) {
				return wrapTruncated("DQT 8-bit table body")
			}
			for i := 0; i < 64; i++ {
				table[i] = int32(data[offset+i])
			}
			offset += 64
		} else {
			if offset+128 > len(data) {
				return wrapTruncated("DQT 16-bit table body")
			}
			for i := 0; i < 64; i++ {
				table[i] = int32(data[offset+i*2])<<8 | int32(data[offset+i*2+1])
			}
			offset += 128
		}
		p.md.QuantTables[tq] = table
	}
	return nil
}

func (p *SegmentParser) parseDHT() error {
	data, err := p.readSegment()
	if err != nil {
		return err
	}
	offset := 0
	for offset < len(data) {
		tcTh := data[offset]
		tc := tcTh >> 4
		th := int(tcTh & 0x0F)
		offset++

		if th > 3 {
			return wrapUnsupported("DHT table id %d out of range", th)
		}

		var bits [16]int
		total := 0
		for i := 0; i < 16; i++ {
			if offset >= len(data) {
				return wrapTruncated("DHT bit counts")
			}
			bits[i] = int(data[offset])
			total += bits[i]
			offset++
		}
		if offset+total > len(data) {
			return wrapTruncated("DHT symbol values")
		}
		values := make([]byte, total)
		copy(values, data[offset:offset+total])
		offset += total

		table := common.BuildStandardHuffmanTable(bits, values)
		if tc == 0 {
			p.md.DCTables[th] = table
		} else {
			p.md.ACTables[th] = table
		}
	}
	return nil
}

func (p *SegmentParser) parseSOF0() error {
	data, err := p.readSegment()
	if err != nil {
		return err
	}
	if len(data) < 6 {
		return wrapTruncated("SOF0 header")
	}

	precision := int(data[0])
	if precision != 8 {
		return wrapUnsupported("sample precision %d (baseline requires 8)", precision)
	}
	p.md.Precision = precision
	p.md.Height = int(data[1])<<8 | int(data[2])
	p.md.Width = int(data[3])<<8 | int(data[4])
	numComponents := int(data[5])

	if numComponents != 1 && numComponents != 3 {
		return wrapUnsupported("%d components (baseline supports 1 or 3)", numComponents)
	}
	if len(data) < 6+numComponents*3 {
		return wrapTruncated("SOF0 component records")
	}

	maxH, maxV := 1, 1
	p.md.Components = make([]*ComponentSpec, numComponents)
	for i := 0; i < numComponents; i++ {
		off := 6 + i*3
		spec := &ComponentSpec{
			ID:           data[off],
			SamplingH:    int(data[off+1] >> 4),
			SamplingV:    int(data[off+1] & 0x0F),
			QuantTableID: int(data[off+2]),
		}
		if spec.SamplingH < 1 || spec.SamplingH > 4 || spec.SamplingV < 1 || spec.SamplingV > 4 {
			return wrapUnsupported("component %d sampling factors %dx%d out of range", spec.ID, spec.SamplingH, spec.SamplingV)
		}
		if spec.QuantTableID > 3 {
			return wrapUnsupported("component %d quant table id %d out of range", spec.ID, spec.QuantTableID)
		}
		if spec.SamplingH > maxH {
			maxH = spec.SamplingH
		}
		if spec.SamplingV > maxV {
			maxV = spec.SamplingV
		}
		p.md.Components[i] = spec
	}

	p.md.MaxH, p.md.MaxV = maxH, maxV
	mcuW, mcuH := 8*maxH, 8*maxV
	mcuCols := common.DivCeil(p.md.Width, mcuW)
	mcuRows := common.DivCeil(p.md.Height, mcuH)
	for _, c := range p.md.Components {
		c.WidthInBlocks = mcuCols * c.SamplingH
		c.HeightBlocks = mcuRows * c.SamplingV
	}

	p.saw.sof0 = true
	return nil
}

func (p *SegmentParser) parseSOS() error {
	data, err := p.readSegment()
	if err != nil {
		return err
	}
	if len(data) < 1 {
		return wrapTruncated("SOS header")
	}
	ns := int(data[0])
	if len(data) < 1+ns*2+3 {
		return wrapTruncated("SOS component records")
	}

	for i := 0; i < ns; i++ {
		cs := data[1+i*2]
		tdTa := data[1+i*2+1]
		td := int(tdTa >> 4)
		ta := int(tdTa & 0x0F)

		var comp *ComponentSpec
		for _, c := range p.md.Components {
			if c.ID == cs {
				comp = c
				break
			}
		}
		if comp == nil {
			return wrapUnexpectedMarker("SOS references undeclared component id %d", cs)
		}
		if td > 3 || ta > 3 {
			return wrapUnsupported("SOS table selector out of range for component %d", cs)
		}
		comp.DCTableID = td
		comp.ACTableID = ta
	}
	// Ss, Se, Ah|Al trail and are ignored for baseline sequential.
	return nil
}

// Reader exposes the underlying byte reader positioned at the first
// entropy-coded byte, for the Orchestrator to hand to a BitReader.
func (p *SegmentParser) Reader() io.ByteReader {
	return p.r
}
