package baseline

import (
	"fmt"

	nativecodec "github.com/go-baseline-jpeg/jfifdecode/codec"
)

// jpegBaselineUID is the DICOM Transfer Syntax UID for JPEG Baseline
// (Process 1), used as this codec's registry key alongside its name.
const jpegBaselineUID = "1.2.840.10008.1.2.4.50"

// NativeCodec adapts the baseline decoder to the lightweight,
// DICOM-independent codec.Codec interface, so callers outside the
// go-dicom pixel-data pipeline (a CLI dump tool, a standalone
// benchmark) can reach it through codec.Get without pulling in
// go-dicom's types.
type NativeCodec struct{}

var _ nativecodec.Codec = NativeCodec{}

// UID returns the DICOM transfer syntax UID this codec implements.
func (NativeCodec) UID() string { return jpegBaselineUID }

// Name returns the registry name for this codec.
func (NativeCodec) Name() string { return "jpeg-baseline" }

// Encode always fails: see ErrEncodeUnsupported.
func (NativeCodec) Encode(params nativecodec.EncodeParams) ([]byte, error) {
	return nil, ErrEncodeUnsupported
}

// Decode runs the baseline decode pipeline over a raw JPEG byte
// stream and reports the result in the registry's common shape.
func (NativeCodec) Decode(data []byte) (*nativecodec.DecodeResult, error) {
	pixelData, width, height, components, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("jpeg-baseline: %w", err)
	}
	return &nativecodec.DecodeResult{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8,
	}, nil
}

func init() {
	nativecodec.Register(NativeCodec{})
}
