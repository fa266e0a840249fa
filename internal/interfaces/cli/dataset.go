package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/PolyGraph-Intelligence/internal/application/dataset"
	"github.com/turtacn/PolyGraph-Intelligence/internal/config"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

type datasetOptions struct {
	dir        string
	featureSet int
	yVal       string
	maxEntries int
	seed       int64
}

// NewDatasetCmd builds `polygraph dataset` and its subcommands.
func NewDatasetCmd() *cobra.Command {
	opts := &datasetOptions{}

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect a featurized dataset",
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.dir, "dir", "", "featurized record directory or object prefix (default: dataset.dir)")
	pf.IntVar(&opts.featureSet, "feature-set", -1, "feature set index (default: featurize.feature_set_index)")
	pf.StringVar(&opts.yVal, "y-val", "", "target key (default: dataset.y_val)")
	pf.IntVar(&opts.maxEntries, "max-entries", -1, "sample at most this many records (default: dataset.max_entries)")
	pf.Int64Var(&opts.seed, "seed", 0, "sampling seed (default: dataset.seed)")

	cmd.AddCommand(
		newDatasetInfoCmd(opts),
		newDatasetGetCmd(opts),
		newDatasetSampleCmd(opts),
	)
	return cmd
}

func newDatasetInfoCmd(opts *datasetOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarise the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataset(cmd, opts, func(cliCtx *CLIContext, ds *dataset.Dataset) error {
				ctx, cancel := commandContext(cmd, cliCtx)
				defer cancel()
				info, err := ds.Describe(ctx)
				if err != nil {
					return err
				}
				return PrintResult(cmd, infoView{info})
			})
		},
	}
}

func newDatasetGetCmd(opts *datasetOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <idx>",
		Short: "Print the sample at a manifest index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return pkgerrors.Newf(pkgerrors.ErrCodeBadRequest, "index %q is not an integer", args[0])
			}
			return withDataset(cmd, opts, func(cliCtx *CLIContext, ds *dataset.Dataset) error {
				ctx, cancel := commandContext(cmd, cliCtx)
				defer cancel()
				s, err := ds.Get(ctx, idx)
				if err != nil {
					return err
				}
				name, err := ds.FileName(idx)
				if err != nil {
					return err
				}
				return PrintResult(cmd, sampleView{Sample: s, FileName: name})
			})
		},
	}
}

func newDatasetSampleCmd(opts *datasetOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "List the manifest ids, optionally a seeded sample of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataset(cmd, opts, func(cliCtx *CLIContext, ds *dataset.Dataset) error {
				m := ds.Manifest()
				if n > 0 {
					m = m.Sample(n, cliCtx.Config.Dataset.Seed)
				}
				return PrintResult(cmd, manifestView{m.IDs()})
			})
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 0, "number of ids to draw (0 lists all)")
	return cmd
}

// applyDatasetFlags overlays the flags the user set on the config.
func applyDatasetFlags(cfg *config.Config, opts *datasetOptions) {
	dc := &cfg.Dataset
	if opts.dir != "" {
		dc.Dir = opts.dir
	}
	if opts.featureSet >= 0 {
		cfg.Featurize.FeatureSetIndex = opts.featureSet
	}
	if opts.yVal != "" {
		dc.YVal = opts.yVal
	}
	if opts.maxEntries >= 0 {
		dc.MaxEntries = opts.maxEntries
	}
	if opts.seed != 0 {
		dc.Seed = opts.seed
	}
}

// withDataset opens the configured dataset and hands it to fn.
func withDataset(cmd *cobra.Command, opts *datasetOptions, fn func(*CLIContext, *dataset.Dataset) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	applyDatasetFlags(cfg, opts)

	in := newInfra(cfg, cliCtx.Logger)
	defer in.Close()

	store, err := in.recordStore(cfg.Storage, cfg.Dataset.Dir)
	if err != nil {
		return err
	}
	ds, err := dataset.Open(cmd.Context(), store,
		dataset.OptionsFromConfig(cfg.Dataset, cfg.Featurize.FeatureSetIndex), cliCtx.Logger)
	if err != nil {
		return err
	}
	return fn(cliCtx, ds)
}

// ─────────────────────────────────────────────────────────────────────────────
// Output views
// ─────────────────────────────────────────────────────────────────────────────

type infoView struct {
	*dataset.Info
}

func (v infoView) String() string {
	return fmt.Sprintf("%s (y=%s): %d records, node width %d, edge width %d",
		v.Field, v.YVal, v.Records, v.NodeWidth, v.EdgeWidth)
}

func (v infoView) TableHeaders() []string {
	return []string{"FIELD", "Y_VAL", "RECORDS", "NODE_WIDTH", "EDGE_WIDTH"}
}

func (v infoView) TableRows() [][]string {
	return [][]string{{
		v.Field, v.YVal, strconv.Itoa(v.Records), strconv.Itoa(v.NodeWidth), strconv.Itoa(v.EdgeWidth),
	}}
}

type sampleView struct {
	*dataset.Sample
	FileName string `json:"file_name"`
}

func (v sampleView) String() string {
	return fmt.Sprintf("%s (%s): %d nodes, %d edges, y=%g",
		v.Label, v.FileName, len(v.X), len(v.EdgeIndex), v.Y)
}

type manifestView struct {
	IDs []string `json:"ids"`
}

func (v manifestView) String() string {
	return strings.Join(v.IDs, "\n")
}

func (v manifestView) TableHeaders() []string { return []string{"INDEX", "ID"} }

func (v manifestView) TableRows() [][]string {
	rows := make([][]string, len(v.IDs))
	for i, id := range v.IDs {
		rows[i] = []string{strconv.Itoa(i), id}
	}
	return rows
}

//Personal.AI order the ending
