package common

import "testing"

func TestWalkMarkers(t *testing.T) {
	data := []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xDB, 0x00, 0x43, // DQT, length 0x43 (zero-filled body appended below)
	}
	// Pad a fake DQT body so pos+length doesn't run past SOS below.
	body := make([]byte, 0x43-2)
	data = append(data, body...)
	data = append(data,
		0xFF, 0xDA, 0x00, 0x02, // SOS, length 2 (no component records, fine for this test)
	)

	var seen []uint16
	err := WalkMarkers(data, func(marker uint16, length int) {
		seen = append(seen, marker)
	})
	if err != nil {
		t.Fatalf("WalkMarkers failed: %v", err)
	}

	want := []uint16{MarkerSOI, MarkerDQT, MarkerSOS}
	if len(seen) != len(want) {
		t.Fatalf("saw %d markers, want %d: %v", len(seen), len(want), seen)
	}
	for i, m := range want {
		if seen[i] != m {
			t.Errorf("marker[%d] = 0x%04X, want 0x%04X", i, seen[i], m)
		}
	}
}

func TestWalkMarkersRequiresSOI(t *testing.T) {
	err := WalkMarkers([]byte{0xFF, 0xDA, 0x00, 0x02}, func(uint16, int) {})
	if err == nil {
		t.Fatal("WalkMarkers should fail without a leading SOI")
	}
}

func TestMarkerName(t *testing.T) {
	if name := MarkerName(MarkerSOF0); name != "SOF0" {
		t.Errorf("MarkerName(SOF0) = %q, want %q", name, "SOF0")
	}
	if name := MarkerName(MarkerSOF2); name != "SOF (non-baseline)" {
		t.Errorf("MarkerName(SOF2) = %q, want %q", name, "SOF (non-baseline)")
	}
}
