package encoding

import (
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/coordination"
)

// coordinationBins lists the coordination numbers with a dedicated column.
var coordinationBins = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 20}

// CoordinationEncoder one-hot encodes the coordination number of a chemenv
// mp_symbol.  Numbers outside coordinationBins encode as an all-zero row.
type CoordinationEncoder struct {
	registry *coordination.Registry
}

// NewCoordinationEncoder wraps a loaded registry.
func NewCoordinationEncoder(registry *coordination.Registry) *CoordinationEncoder {
	return &CoordinationEncoder{registry: registry}
}

// Width is the number of coordination bins.
func (e *CoordinationEncoder) Width() int { return len(coordinationBins) }

// EncodeNumber encodes a coordination number directly.
func (e *CoordinationEncoder) EncodeNumber(cn int) []float64 {
	row := make([]float64, len(coordinationBins))
	for i, b := range coordinationBins {
		if b == cn {
			row[i] = 1
			break
		}
	}
	return row
}

// Encode looks symbol up in the registry and encodes its coordination number.
func (e *CoordinationEncoder) Encode(symbol string) ([]float64, error) {
	env, err := e.registry.Get(symbol)
	if err != nil {
		return nil, err
	}
	return e.EncodeNumber(env.CoordinationNumber), nil
}

// EncodeAll encodes every symbol, stopping at the first unknown one.
func (e *CoordinationEncoder) EncodeAll(symbols []string) ([][]float64, error) {
	out := make([][]float64, len(symbols))
	for i, s := range symbols {
		row, err := e.Encode(s)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

//Personal.AI order the ending
