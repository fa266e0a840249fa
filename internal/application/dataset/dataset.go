// Package dataset exposes featurized records as an indexed collection of
// graph samples for training code.
package dataset

import (
	"context"
	"encoding/json"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"
)

// Options selects the feature set, the target and the subset.
type Options struct {
	Field      string
	YVal       string
	MaxEntries int
	Seed       int64
}

// OptionsFromConfig maps the dataset section onto Options for feature set
// index fs.
func OptionsFromConfig(cfg config.DatasetConfig, fs int) Options {
	return Options{
		Field:      graph.FeatureSetField(fs),
		YVal:       cfg.YVal,
		MaxEntries: cfg.MaxEntries,
		Seed:       cfg.Seed,
	}
}

// Sample is one graph ready for training.
type Sample struct {
	ID        string       `json:"id"`
	X         [][]float64  `json:"x"`
	EdgeIndex [][2]int     `json:"edge_index"`
	EdgeAttr  [][]float64  `json:"edge_attr"`
	Y         float64      `json:"y"`
	Pos       [][3]float64 `json:"pos"`
	Label     string       `json:"label"`
}

// Info summarises a dataset.
type Info struct {
	Field     string `json:"field"`
	YVal      string `json:"y_val"`
	Records   int    `json:"records"`
	NodeWidth int    `json:"node_width"`
	EdgeWidth int    `json:"edge_width"`
}

// Dataset indexes featurized records through a Manifest.
type Dataset struct {
	store    record.Store
	manifest *Manifest
	opts     Options
	logger   logging.Logger
}

// Open builds the manifest of store and applies the MaxEntries sample.
func Open(ctx context.Context, store record.Store, opts Options, log logging.Logger) (*Dataset, error) {
	if opts.Field == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeValidation, "dataset field is required")
	}
	if opts.YVal == "" {
		opts.YVal = config.DefaultDatasetYVal
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	m, err := BuildManifest(ctx, store)
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = config.DefaultDatasetSeed
	}
	m = m.Sample(opts.MaxEntries, seed)

	d := &Dataset{store: store, manifest: m, opts: opts, logger: log.Named("dataset")}
	d.logger.Debug("dataset opened",
		logging.String(logging.FieldFeatureSet, opts.Field),
		logging.Int("records", m.Len()))
	return d, nil
}

func (d *Dataset) Len() int { return d.manifest.Len() }

func (d *Dataset) Manifest() *Manifest { return d.manifest }

func (d *Dataset) Field() string { return d.opts.Field }

// FileName returns the storage location of sample idx.
func (d *Dataset) FileName(idx int) (string, error) {
	if err := d.check(idx); err != nil {
		return "", err
	}
	return d.store.Location(d.manifest.ID(idx)), nil
}

// Get loads sample idx.  The target is the graph's y unless YVal names
// another key, which is looked up in the feature set first and then at the
// top level of the record.
func (d *Dataset) Get(ctx context.Context, idx int) (*Sample, error) {
	if err := d.check(idx); err != nil {
		return nil, err
	}
	id := d.manifest.ID(idx)
	rec, err := d.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := rec.GraphRecord(d.opts.Field)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeUnknown, "record is not featurized").WithDetail(id)
	}

	y := g.Y
	if d.opts.YVal != config.DefaultDatasetYVal {
		if y, err = d.target(rec, id); err != nil {
			return nil, err
		}
	}

	return &Sample{
		ID:        id,
		X:         g.X,
		EdgeIndex: g.EdgeIndex,
		EdgeAttr:  g.EdgeAttr,
		Y:         y,
		Pos:       g.Pos,
		Label:     g.Label,
	}, nil
}

// Describe reports the record count and the feature widths of the first
// sample.
func (d *Dataset) Describe(ctx context.Context) (*Info, error) {
	info := &Info{Field: d.opts.Field, YVal: d.opts.YVal, Records: d.Len()}
	if d.Len() == 0 {
		return info, nil
	}
	s, err := d.Get(ctx, 0)
	if err != nil {
		return nil, err
	}
	if len(s.X) > 0 {
		info.NodeWidth = len(s.X[0])
	}
	if len(s.EdgeAttr) > 0 {
		info.EdgeWidth = len(s.EdgeAttr[0])
	}
	return info, nil
}

func (d *Dataset) target(rec *record.Record, id string) (float64, error) {
	raw, err := rec.FeatureValue(d.opts.Field, d.opts.YVal)
	if pkgerrors.IsNotFound(err) {
		var ok bool
		if raw, ok = rec.Field(d.opts.YVal); !ok {
			return 0, pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "record has no %q value", d.opts.YVal).WithDetail(id)
		}
	} else if err != nil {
		return 0, err
	}
	var y float64
	if err := json.Unmarshal(raw, &y); err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordCorrupt, "target is not a number").WithDetail(id)
	}
	return y, nil
}

func (d *Dataset) check(idx int) error {
	if idx < 0 || idx >= d.manifest.Len() {
		return pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "index %d out of range [0, %d)", idx, d.manifest.Len())
	}
	return nil
}

//Personal.AI order the ending
