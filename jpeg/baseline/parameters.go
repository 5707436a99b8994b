package baseline

import "github.com/cocosip/go-dicom/pkg/imaging/codec"

var _ codec.Parameters = (*JPEGBaselineParameters)(nil)

// JPEGBaselineParameters satisfies codec.Parameters for the baseline
// codec. Decode has no tunables, so this exists only to give callers
// a concrete Parameters value to pass through generic codec plumbing.
type JPEGBaselineParameters struct {
	params map[string]interface{}
}

// NewBaselineParameters returns an empty parameter set.
func NewBaselineParameters() *JPEGBaselineParameters {
	return &JPEGBaselineParameters{params: make(map[string]interface{})}
}

// GetParameter retrieves a parameter by name.
func (p *JPEGBaselineParameters) GetParameter(name string) interface{} {
	return p.params[name]
}

// SetParameter stores a parameter value.
func (p *JPEGBaselineParameters) SetParameter(name string, value interface{}) {
	p.params[name] = value
}

// Validate always succeeds: there are no required decode parameters.
func (p *JPEGBaselineParameters) Validate() error {
	return nil
}
