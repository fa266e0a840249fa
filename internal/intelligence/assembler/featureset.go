package assembler

import (
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// FeatureSet describes one stored featurization variant.
type FeatureSet struct {
	Index        int
	EdgeEncoding graph.EdgeEncoding
	Target       graph.TargetKind
}

// Field is the record field the feature set is written to.
func (fs FeatureSet) Field() string { return graph.FeatureSetField(fs.Index) }

var featureSets = []FeatureSet{
	{Index: 0, EdgeEncoding: graph.EdgeEncodingRaw, Target: graph.TargetEnergyPerNode},
	{Index: 1, EdgeEncoding: graph.EdgeEncodingGaussian, Target: graph.TargetThreeBodyEnergy},
}

// FeatureSetByIndex returns the preset with the given index.
func FeatureSetByIndex(index int) (FeatureSet, error) {
	for _, fs := range featureSets {
		if fs.Index == index {
			return fs, nil
		}
	}
	return FeatureSet{}, pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "unknown feature set index %d", index)
}

// FeatureSets lists every preset in index order.
func FeatureSets() []FeatureSet {
	return append([]FeatureSet(nil), featureSets...)
}

//Personal.AI order the ending
