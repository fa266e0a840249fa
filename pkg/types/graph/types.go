// Package graph defines the face-graph records produced by featurization and
// the events and reports that describe a featurization run.  Only plain data
// types live here.
package graph

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// GraphRecord
// ─────────────────────────────────────────────────────────────────────────────

// GraphRecord is the graph of one polyhedron: one node per face, one edge per
// direction of every adjacent face pair.
type GraphRecord struct {
	X         [][]float64  `json:"x"`
	EdgeIndex [][2]int     `json:"edge_index"`
	EdgeAttr  [][]float64  `json:"edge_attr"`
	Y         float64      `json:"y"`
	Pos       [][3]float64 `json:"pos"`
	Label     string       `json:"label"`
}

// NumNodes returns the number of faces.
func (g *GraphRecord) NumNodes() int { return len(g.X) }

// NumEdges returns the number of directed edges.
func (g *GraphRecord) NumEdges() int { return len(g.EdgeIndex) }

// Validate checks the structural invariants of the record.
func (g *GraphRecord) Validate() error {
	n := len(g.X)
	if len(g.EdgeAttr) != len(g.EdgeIndex) {
		return pkgerrors.Newf(pkgerrors.ErrCodeValidation,
			"edge_attr has %d rows for %d edges", len(g.EdgeAttr), len(g.EdgeIndex))
	}
	if len(g.Pos) != 0 && len(g.Pos) != n {
		return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "pos has %d rows for %d nodes", len(g.Pos), n)
	}
	for k, e := range g.EdgeIndex {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "edge %d (%d, %d) references a missing node", k, e[0], e[1])
		}
		if e[0] == e[1] {
			return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "edge %d is a self loop", k)
		}
	}
	for _, rows := range [][][]float64{g.X, g.EdgeAttr} {
		for i := 1; i < len(rows); i++ {
			if len(rows[i]) != len(rows[0]) {
				return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "row %d has width %d, want %d", i, len(rows[i]), len(rows[0]))
			}
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Feature sets and targets
// ─────────────────────────────────────────────────────────────────────────────

// FeatureSetPrefix prefixes the record field holding a feature set.
const FeatureSetPrefix = "face_feature_set_"

// FeatureSetField names the record field of feature set index.
func FeatureSetField(index int) string {
	return FeatureSetPrefix + strconv.Itoa(index)
}

// ParseFeatureSetField is the inverse of FeatureSetField.
func ParseFeatureSetField(field string) (int, error) {
	if !strings.HasPrefix(field, FeatureSetPrefix) {
		return 0, pkgerrors.Newf(pkgerrors.ErrCodeBadRequest, "%q is not a feature set field", field)
	}
	i, err := strconv.Atoi(strings.TrimPrefix(field, FeatureSetPrefix))
	if err != nil || i < 0 {
		return 0, pkgerrors.Newf(pkgerrors.ErrCodeBadRequest, "%q is not a feature set field", field)
	}
	return i, nil
}

// TargetKind selects the graph-level regression target.
type TargetKind string

const (
	TargetEnergyPerNode   TargetKind = "energy_per_node"
	TargetThreeBodyEnergy TargetKind = "three_body_energy"
)

// IsValid reports whether k is a known target.
func (k TargetKind) IsValid() bool {
	switch k {
	case TargetEnergyPerNode, TargetThreeBodyEnergy:
		return true
	}
	return false
}

// EdgeEncoding names how dihedral angles become edge features.
type EdgeEncoding string

const (
	EdgeEncodingRaw      EdgeEncoding = "raw"
	EdgeEncodingGaussian EdgeEncoding = "gaussian"
)

// ─────────────────────────────────────────────────────────────────────────────
// Run reporting
// ─────────────────────────────────────────────────────────────────────────────

// RecordStatus is the outcome of featurizing one record.
type RecordStatus string

const (
	StatusFeaturized RecordStatus = "featurized"
	StatusCached     RecordStatus = "cached"
	StatusSkipped    RecordStatus = "skipped"
	StatusFailed     RecordStatus = "failed"
)

// RecordEvent is published once per processed record.
type RecordEvent struct {
	common.BaseEvent
	RunID      string       `json:"run_id"`
	RecordID   string       `json:"record_id"`
	FeatureSet string       `json:"feature_set"`
	Status     RecordStatus `json:"status"`
	Faces      int          `json:"faces,omitempty"`
	Edges      int          `json:"edges,omitempty"`
	Y          float64      `json:"y,omitempty"`
	ErrorCode  string       `json:"error_code,omitempty"`
	Reason     string       `json:"reason,omitempty"`
}

// NewRecordEvent stamps a RecordEvent for recordID.
func NewRecordEvent(runID, recordID, featureSet string, status RecordStatus) *RecordEvent {
	return &RecordEvent{
		BaseEvent:  common.NewBaseEvent(recordID),
		RunID:      runID,
		RecordID:   recordID,
		FeatureSet: featureSet,
		Status:     status,
	}
}

// EventType is "record.<status>".
func (e *RecordEvent) EventType() string { return "record." + string(e.Status) }

// RecordFailure describes one record that could not be featurized.
type RecordFailure struct {
	RecordID  string `json:"record_id"`
	ErrorCode string `json:"error_code"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// BatchReport summarises a featurization run.
type BatchReport struct {
	RunID      string          `json:"run_id"`
	FeatureSet string          `json:"feature_set"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Cached     int             `json:"cached"`
	Skipped    int             `json:"skipped"`
	Failed     []RecordFailure `json:"failed"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Duration is the wall time of the run.
func (r *BatchReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// String renders a one-line summary.  Succeeded includes cached records.
func (r *BatchReport) String() string {
	s := fmt.Sprintf("run %s: %d records, %d succeeded (%d cached), %d failed",
		r.RunID, r.Total, r.Succeeded, r.Cached, len(r.Failed))
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %d skipped", r.Skipped)
	}
	return s + " in " + r.Duration().Round(time.Millisecond).String()
}

//Personal.AI order the ending
