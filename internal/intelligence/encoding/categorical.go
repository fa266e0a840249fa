package encoding

import (
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// CategoricalBinEncoder one-hot encodes integers over Categories.  Values not
// listed fall into a trailing overflow bin, so every row has exactly one 1.
type CategoricalBinEncoder struct {
	Categories []int

	index map[int]int
}

// NewCategoricalBinEncoder returns an encoder over categories, rejecting an
// empty or repeating list.
func NewCategoricalBinEncoder(categories []int) (*CategoricalBinEncoder, error) {
	if len(categories) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeEncodingConfig, "categorical encoder needs at least one category")
	}
	index := make(map[int]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			return nil, pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "category %d listed twice", c)
		}
		index[c] = i
	}
	return &CategoricalBinEncoder{
		Categories: append([]int(nil), categories...),
		index:      index,
	}, nil
}

// Width is len(Categories) plus the overflow bin.
func (e *CategoricalBinEncoder) Width() int { return len(e.Categories) + 1 }

// Bin returns the column set for v.
func (e *CategoricalBinEncoder) Bin(v int) int {
	if e.index == nil {
		for i, c := range e.Categories {
			if c == v {
				return i
			}
		}
		return len(e.Categories)
	}
	if i, ok := e.index[v]; ok {
		return i
	}
	return len(e.Categories)
}

// Encode returns one one-hot row per value.
func (e *CategoricalBinEncoder) Encode(values []int) [][]float64 {
	w := e.Width()
	out := make([][]float64, len(values))
	for i, v := range values {
		row := make([]float64, w)
		row[e.Bin(v)] = 1
		out[i] = row
	}
	return out
}

//Personal.AI order the ending
