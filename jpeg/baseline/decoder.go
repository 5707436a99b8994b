package baseline

import (
	"bytes"
	"fmt"

	"github.com/go-baseline-jpeg/jfifdecode/jpeg/common"
)

// Decode runs the end-to-end baseline sequential JPEG pipeline: parse
// headers, decode the entropy-coded scan MCU by MCU, and return the
// reconstructed image as an interleaved RGB byte slice (grayscale
// sources are expanded to three identical channels; the components
// result still reports the source's own count, 1 for grayscale).
func Decode(jpegData []byte) (pixelData []byte, width, height, components int, err error) {
	parser := NewSegmentParser(bytes.NewReader(jpegData))
	md, err := parser.ParseHeaders()
	if err != nil {
		return nil, 0, 0, 0, err
	}

	br := common.NewBitReader(parser.Reader())
	entropy := NewEntropyDecoder(md)
	pipeline := BlockPipeline{}
	assembler := NewMCUAssembler(md)

	mcuW, mcuH := md.MCUWidth(), md.MCUHeight()
	mcuCols := common.DivCeil(md.Width, mcuW)
	mcuRows := common.DivCeil(md.Height, mcuH)

	img := NewImage(md.Width, md.Height, mcuW, mcuH)
	mcu := NewMCU(md)

	for row := 0; row < mcuRows; row++ {
		for col := 0; col < mcuCols; col++ {
			// Bits are read only on demand, so a scan that ends exactly
			// on the last MCU's last bit never reaches the terminating
			// marker here; running out of bits inside any MCU is fatal.
			if err := decodeMCU(entropy, pipeline, md, br, mcu); err != nil {
				return nil, 0, 0, 0, fmt.Errorf("jpeg: MCU (%d,%d): %w", row, col, err)
			}
			assembler.Assemble(mcu, img, row, col)
		}
	}

	numComponents := len(md.Components)
	if numComponents == 1 {
		return img.Pixels(), md.Width, md.Height, 1, nil
	}
	return img.Pixels(), md.Width, md.Height, numComponents, nil
}

// decodeMCU fills every block of every component in mcu from br,
// running each through BlockPipeline as soon as it's decoded.
func decodeMCU(entropy *EntropyDecoder, pipeline BlockPipeline, md *Metadata, br *common.BitReader, mcu *MCU) error {
	for ci, comp := range md.Components {
		quant := md.QuantTables[comp.QuantTableID]
		for v := 0; v < comp.SamplingV; v++ {
			for h := 0; h < comp.SamplingH; h++ {
				block := mcu.blockAt(comp, ci, v, h)
				if err := entropy.DecodeBlock(br, ci, block); err != nil {
					return err
				}
				pipeline.Process(block, quant)
			}
		}
	}
	return nil
}
