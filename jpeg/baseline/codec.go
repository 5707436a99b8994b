package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ codec.Codec = (*BaselineCodec)(nil)

// ErrEncodeUnsupported is returned by BaselineCodec.Encode: this
// module implements baseline JPEG decode only (no forward DCT or
// Huffman encoder), so the codec.Codec contract is satisfied with a
// loud, explicit refusal rather than a silent no-op.
var ErrEncodeUnsupported = fmt.Errorf("jpeg: baseline encode not implemented, this codec is decode-only")

// BaselineCodec adapts the baseline decoder to the DICOM imaging
// codec.Codec interface, so a pixel-data pipeline built on go-dicom
// can decode baseline-JPEG encapsulated frames.
type BaselineCodec struct {
	transferSyntax *transfer.Syntax
}

// NewBaselineCodec constructs a codec registered against the JPEG
// Baseline 8-bit transfer syntax.
func NewBaselineCodec() *BaselineCodec {
	return &BaselineCodec{transferSyntax: transfer.JPEGBaseline8Bit}
}

// Name returns the codec's human-readable name.
func (c *BaselineCodec) Name() string {
	return "JPEG Baseline (Process 1)"
}

// TransferSyntax returns the DICOM transfer syntax this codec handles.
func (c *BaselineCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters. Baseline
// decode has no tunables; the returned Parameters exists to satisfy
// callers that pass parameters generically across codecs.
func (c *BaselineCodec) GetDefaultParameters() codec.Parameters {
	return NewBaselineParameters()
}

// Encode always fails: see ErrEncodeUnsupported.
func (c *BaselineCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	return ErrEncodeUnsupported
}

// Decode decodes every frame of oldPixelData's baseline-JPEG
// encapsulated data into newPixelData.
func (c *BaselineCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("jpeg: source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("jpeg: failed to get frame info from source pixel data")
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("jpeg: failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("jpeg: frame %d pixel data is empty", frameIndex)
		}

		pixelData, width, height, _, err := Decode(frameData)
		if err != nil {
			return fmt.Errorf("jpeg: baseline decode failed for frame %d: %w", frameIndex, err)
		}

		if frameInfo.Width > 0 && width != int(frameInfo.Width) {
			return fmt.Errorf("jpeg: decoded width (%d) doesn't match expected (%d)", width, frameInfo.Width)
		}
		if frameInfo.Height > 0 && height != int(frameInfo.Height) {
			return fmt.Errorf("jpeg: decoded height (%d) doesn't match expected (%d)", height, frameInfo.Height)
		}

		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("jpeg: failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the
// go-dicom global codec registry.
func RegisterBaselineCodec() {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewBaselineCodec())
}

func init() {
	RegisterBaselineCodec()
}
