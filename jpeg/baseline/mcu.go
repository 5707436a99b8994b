package baseline

import "math"

// MCU is a three-component bundle of reconstructed spatial blocks.
// Component i holds SamplingV[i] x SamplingH[i] blocks; the block at
// position (v, h) is the spatial tile whose top-left pixel within the
// MCU is (v*8, h*8) in that component's own sampling grid.
type MCU struct {
	Blocks [3][]Block // Blocks[i] has len == comp[i].SamplingH*comp[i].SamplingV
}

// NewMCU allocates an MCU sized to md's component sampling factors.
func NewMCU(md *Metadata) *MCU {
	m := &MCU{}
	for i, c := range md.Components {
		m.Blocks[i] = make([]Block, c.SamplingH*c.SamplingV)
	}
	return m
}

// blockAt returns the block for component i at grid position (v, h)
// within the MCU, where h in 0..SamplingH-1 and v in 0..SamplingV-1.
func (m *MCU) blockAt(comp *ComponentSpec, compIdx, v, h int) *Block {
	return &m.Blocks[compIdx][v*comp.SamplingH+h]
}

// MCUAssembler converts one reconstructed MCU into an RGB tile and
// writes it into Image at the MCU's top-left origin, up-sampling
// chroma by nearest-neighbour replication according to the declared
// subsampling ratios.
type MCUAssembler struct {
	md *Metadata
}

// NewMCUAssembler binds an assembler to md's component sampling
// layout, read-only for the remainder of the decode.
func NewMCUAssembler(md *Metadata) *MCUAssembler {
	return &MCUAssembler{md: md}
}

// Assemble writes mcu's RGB tile into img at MCU grid cell
// (mcuRow, mcuCol).
func (a *MCUAssembler) Assemble(mcu *MCU, img *Image, mcuRow, mcuCol int) {
	mcuW, mcuH := a.md.MCUWidth(), a.md.MCUHeight()
	originX, originY := mcuCol*mcuW, mcuRow*mcuH

	grayscale := len(a.md.Components) == 1

	for y := 0; y < mcuH; y++ {
		for x := 0; x < mcuW; x++ {
			if grayscale {
				comp := a.md.Components[0]
				sample := a.sample(mcu, comp, 0, x, y, mcuW, mcuH)
				v := byte(clampRound(sample + 128))
				img.SetPixel(originX+x, originY+y, v, v, v)
				continue
			}

			yy := a.sample(mcu, a.md.Components[0], 0, x, y, mcuW, mcuH)
			cb := a.sample(mcu, a.md.Components[1], 1, x, y, mcuW, mcuH)
			cr := a.sample(mcu, a.md.Components[2], 2, x, y, mcuW, mcuH)

			r := yy + 1.402*cr + 128
			g := yy - 0.34414*cb - 0.71414*cr + 128
			b := yy + 1.7720*cb + 128

			img.SetPixel(originX+x, originY+y,
				byte(clampRound(r)), byte(clampRound(g)), byte(clampRound(b)))
		}
	}
}

// sample returns component compIdx's spatial value at tile pixel
// (x, y), nearest-neighbour upsampled to the MCU's max_h/max_v grid.
func (a *MCUAssembler) sample(mcu *MCU, comp *ComponentSpec, compIdx, x, y, mcuW, mcuH int) float64 {
	vy := (y * comp.SamplingV) / a.md.MaxV
	vx := (x * comp.SamplingH) / a.md.MaxH

	blockRow, blockCol := vy/8, vx/8
	inRow, inCol := vy%8, vx%8

	block := mcu.blockAt(comp, compIdx, blockRow, blockCol)
	return block[inRow*8+inCol]
}

// clampRound rounds to the nearest integer and saturates to 0..255.
func clampRound(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return r
}
