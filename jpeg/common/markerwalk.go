package common

import "fmt"

// markerNames gives the human-readable name shown by WalkMarkers for
// the handful of markers a diagnostic dump cares about.
var markerNames = map[uint16]string{
	MarkerSOI:  "SOI",
	MarkerEOI:  "EOI",
	MarkerDQT:  "DQT",
	MarkerDHT:  "DHT",
	MarkerSOF0: "SOF0",
	MarkerSOS:  "SOS",
	MarkerAPP0: "APP0",
	MarkerDRI:  "DRI",
}

// MarkerName returns a short name for marker: its registered name,
// "SOF (non-baseline)" for any other SOF marker, "RST" for a restart
// marker, or "Unknown" otherwise.
func MarkerName(marker uint16) string {
	if name, ok := markerNames[marker]; ok {
		return name
	}
	if IsSOF(marker) {
		return "SOF (non-baseline)"
	}
	if IsRST(marker) {
		return "RST"
	}
	return "Unknown"
}

// WalkMarkers scans data's marker structure, calling visit once per
// marker found with its length (0 for markers with no length field).
// It stops after reporting Start-of-Scan: the entropy-coded bytes that
// follow require bit-level destuffing to walk safely, which is the
// decoder's job, not this diagnostic's.
func WalkMarkers(data []byte, visit func(marker uint16, length int)) error {
	pos := 0
	marker, ok := readMarkerAt(data, &pos)
	if !ok {
		return fmt.Errorf("jfifdump: %w: no SOI marker found", ErrTruncatedInput)
	}
	if marker != MarkerSOI {
		return fmt.Errorf("jfifdump: %w: expected SOI, got 0x%04X", ErrUnexpectedMarker, marker)
	}
	visit(marker, 0)

	for {
		marker, ok = readMarkerAt(data, &pos)
		if !ok {
			return fmt.Errorf("jfifdump: %w: marker structure ended without EOI", ErrTruncatedInput)
		}

		if !HasLength(marker) {
			visit(marker, 0)
			if marker == MarkerEOI {
				return nil
			}
			continue
		}

		if pos+2 > len(data) {
			return fmt.Errorf("jfifdump: %w: truncated segment length", ErrTruncatedInput)
		}
		length := int(data[pos])<<8 | int(data[pos+1])
		visit(marker, length)
		if marker == MarkerSOS {
			return nil
		}
		pos += length
	}
}

// readMarkerAt scans forward from *pos for 0xFF followed by a
// non-zero, non-0xFF byte, tolerating fill bytes, and returns the full
// marker value with *pos advanced past it.
func readMarkerAt(data []byte, pos *int) (uint16, bool) {
	for *pos < len(data) {
		if data[*pos] != 0xFF {
			*pos++
			continue
		}
		*pos++
		for *pos < len(data) {
			b := data[*pos]
			if b == 0xFF {
				*pos++
				continue
			}
			*pos++
			if b == 0x00 {
				break
			}
			return 0xFF00 | uint16(b), true
		}
	}
	return 0, false
}
