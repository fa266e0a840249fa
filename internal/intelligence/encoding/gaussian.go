package encoding

import (
	"math"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// GaussianBinEncoder spreads a continuous value over Bins Gaussian kernels
// with centers evenly spaced on [Min, Max].  Rows are not normalised.
type GaussianBinEncoder struct {
	Min   float64
	Max   float64
	Sigma float64
	Bins  int
}

// NewGaussianBinEncoder validates the parameters before returning the encoder.
func NewGaussianBinEncoder(min, max, sigma float64, bins int) (*GaussianBinEncoder, error) {
	e := &GaussianBinEncoder{Min: min, Max: max, Sigma: sigma, Bins: bins}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate reports an ErrCodeEncodingConfig error for unusable parameters.
func (e *GaussianBinEncoder) Validate() error {
	switch {
	case e.Bins <= 0:
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "gaussian bins must be positive, got %d", e.Bins)
	case !(e.Sigma > 0):
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "gaussian sigma must be positive, got %g", e.Sigma)
	case math.IsNaN(e.Min) || math.IsNaN(e.Max) || e.Max < e.Min:
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "gaussian range [%g, %g] is empty", e.Min, e.Max)
	}
	return nil
}

// Width implements ContinuousEncoder.
func (e *GaussianBinEncoder) Width() int { return e.Bins }

// Centers returns the kernel centers.  A single bin sits at Min.
func (e *GaussianBinEncoder) Centers() []float64 {
	centers := make([]float64, e.Bins)
	if e.Bins == 1 {
		centers[0] = e.Min
		return centers
	}
	step := (e.Max - e.Min) / float64(e.Bins-1)
	for k := range centers {
		centers[k] = e.Min + float64(k)*step
	}
	centers[e.Bins-1] = e.Max
	return centers
}

// Encode returns exp(-(v-c)²/2σ²) for every value and center.
func (e *GaussianBinEncoder) Encode(values []float64) [][]float64 {
	centers := e.Centers()
	denom := 2 * e.Sigma * e.Sigma
	out := make([][]float64, len(values))
	for i, v := range values {
		row := make([]float64, len(centers))
		for k, c := range centers {
			d := v - c
			row[k] = math.Exp(-d * d / denom)
		}
		out[i] = row
	}
	return out
}

//Personal.AI order the ending
