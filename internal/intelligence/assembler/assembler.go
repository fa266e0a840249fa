// Package assembler turns the face structure of a polyhedron into a
// GraphRecord: one node per face, edges between faces sharing a hull edge.
package assembler

import (
	"fmt"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/polyhedron"
	"github.com/turtacn/PolyGraph-Intelligence/internal/intelligence/encoding"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// Assembler is stateless after construction and safe for concurrent use.
type Assembler struct {
	featureSet FeatureSet
	sides      encoding.DiscreteEncoder
	edges      encoding.ContinuousEncoder
	target     TargetFunc
}

// New builds an Assembler from explicit parts.
func New(fs FeatureSet, sides encoding.DiscreteEncoder, edges encoding.ContinuousEncoder, target TargetFunc) (*Assembler, error) {
	if sides == nil || edges == nil || target == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeEncodingConfig, "assembler needs side, edge and target encoders")
	}
	return &Assembler{featureSet: fs, sides: sides, edges: edges, target: target}, nil
}

// NewFromConfig selects the feature set preset and builds its encoders.  A
// non-empty target kind in cfg overrides the preset's target.
func NewFromConfig(cfg *config.Config) (*Assembler, error) {
	fs, err := FeatureSetByIndex(cfg.Featurize.FeatureSetIndex)
	if err != nil {
		return nil, err
	}
	if cfg.Target.Kind != "" {
		fs.Target = graph.TargetKind(cfg.Target.Kind)
	}

	sides, err := encoding.NewCategoricalBinEncoder(cfg.Encoding.SideCategories)
	if err != nil {
		return nil, err
	}

	var edges encoding.ContinuousEncoder
	switch fs.EdgeEncoding {
	case graph.EdgeEncodingGaussian:
		g := cfg.Encoding.Gaussian
		gauss, err := encoding.NewGaussianBinEncoder(g.Min, g.Max, g.Sigma, g.Bins)
		if err != nil {
			return nil, err
		}
		edges = gauss
	default:
		edges = encoding.IdentityEncoder{}
	}

	target, err := TargetFor(fs.Target)
	if err != nil {
		return nil, err
	}
	return New(fs, sides, edges, target)
}

// FeatureSet returns the preset in use, after any target override.
func (a *Assembler) FeatureSet() FeatureSet { return a.featureSet }

// Field is the record field written by this assembler.
func (a *Assembler) Field() string { return a.featureSet.Field() }

// NodeWidth is the number of columns of X.
func (a *Assembler) NodeWidth() int { return 1 + a.sides.Width() }

// EdgeWidth is the number of columns of EdgeAttr.
func (a *Assembler) EdgeWidth() int { return a.edges.Width() }

// Fingerprint identifies every setting that changes the assembled graph.
// Records featurized under equal fingerprints are interchangeable.
func (a *Assembler) Fingerprint() string {
	return fmt.Sprintf("%s|sides=%+v|edges=%T%+v|target=%s",
		a.Field(), a.sides, a.edges, a.edges, a.target.Kind())
}

// Assemble builds the graph of geom.  Each adjacent face pair (i, j), in
// lexicographic order, contributes the edge i→j immediately followed by j→i;
// both carry the same encoded dihedral angle.
func (a *Assembler) Assemble(label string, geom *polyhedron.Geometry) (*graph.GraphRecord, error) {
	if geom == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidVertices, "geometry is nil")
	}

	n := geom.NumFaces()
	areas := geom.Areas()
	sides := a.sides.Encode(geom.FaceSides())
	x := make([][]float64, n)
	for i := range x {
		row := make([]float64, 0, a.NodeWidth())
		row = append(row, areas[i])
		x[i] = append(row, sides[i]...)
	}

	pairs := geom.FacePairs()
	attrs := a.edges.Encode(geom.DihedralAngles())
	edgeIndex := make([][2]int, 0, 2*len(pairs))
	edgeAttr := make([][]float64, 0, 2*len(pairs))
	for k, p := range pairs {
		edgeIndex = append(edgeIndex, [2]int{p.I, p.J}, [2]int{p.J, p.I})
		edgeAttr = append(edgeAttr, attrs[k], append([]float64(nil), attrs[k]...))
	}

	normals := geom.Normals()
	pos := make([][3]float64, n)
	for i, nv := range normals {
		pos[i] = [3]float64(nv)
	}

	rec := &graph.GraphRecord{
		X:         x,
		EdgeIndex: edgeIndex,
		EdgeAttr:  edgeAttr,
		Y:         a.target.Compute(normals, geom.Adjacency()),
		Pos:       pos,
		Label:     label,
	}
	if err := rec.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "assembled graph is inconsistent")
	}
	return rec, nil
}

//Personal.AI order the ending
