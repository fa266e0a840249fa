// Package encoding turns scalar and categorical face/edge properties into
// fixed-width feature rows for graph records.
package encoding

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// ContinuousEncoder maps each value to a feature row of Width() columns.
type ContinuousEncoder interface {
	Width() int
	Encode(values []float64) [][]float64
}

// DiscreteEncoder maps each integer category to a feature row of Width()
// columns.
type DiscreteEncoder interface {
	Width() int
	Encode(values []int) [][]float64
}

// ---------------------------------------------------------------------------
// IdentityEncoder
// ---------------------------------------------------------------------------

// IdentityEncoder passes each value through as a one-column row.
type IdentityEncoder struct{}

// Width implements ContinuousEncoder.
func (IdentityEncoder) Width() int { return 1 }

// Encode implements ContinuousEncoder.
func (IdentityEncoder) Encode(values []float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, v := range values {
		out[i] = []float64{v}
	}
	return out
}

var (
	_ ContinuousEncoder = IdentityEncoder{}
	_ ContinuousEncoder = (*GaussianBinEncoder)(nil)
	_ DiscreteEncoder   = (*CategoricalBinEncoder)(nil)
)

//Personal.AI order the ending
