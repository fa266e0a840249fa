package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/PolyGraph-Intelligence/internal/application/featurization"
	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/intelligence/assembler"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

type featurizeOptions struct {
	rawDir     string
	outputDir  string
	featureSet int
	workers    int
	overwrite  bool
	tolerance  float64
	ids        []string
	strict     bool
	purgeCache bool
}

// NewFeaturizeCmd builds `polygraph featurize`.
func NewFeaturizeCmd() *cobra.Command {
	opts := &featurizeOptions{}

	cmd := &cobra.Command{
		Use:   "featurize",
		Short: "Featurize polyhedron records into face graphs",
		Long: "Reads every record under the raw directory, builds the face graph of each\n" +
			"polyhedron with the selected feature set and writes it back as\n" +
			"face_feature_set_<n>.  Failed records are reported and skipped.",
		Example: `  polygraph featurize --raw-dir datasets/raw --output-dir datasets/interim
  polygraph featurize --feature-set 0 --ids mp-1,mp-2 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeaturize(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.rawDir, "raw-dir", "", "input record directory or object prefix (default: featurize.raw_dir)")
	f.StringVar(&opts.outputDir, "output-dir", "", "output record directory or object prefix (default: featurize.output_dir)")
	f.IntVar(&opts.featureSet, "feature-set", -1, "feature set preset index (default: featurize.feature_set_index)")
	f.IntVarP(&opts.workers, "workers", "w", 0, "concurrent workers (default: featurize.workers)")
	f.BoolVar(&opts.overwrite, "overwrite", true, "recompute feature sets that already exist")
	f.Float64Var(&opts.tolerance, "tolerance", 0, "coplanar merge tolerance (default: featurize.coplanar_tolerance)")
	f.StringSliceVar(&opts.ids, "ids", nil, "featurize only these record ids")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when any record fails")
	f.BoolVar(&opts.purgeCache, "purge-cache", false, "drop every feature cache entry before the run")

	return cmd
}

// applyFeaturizeFlags overlays the flags the user set on the config.
func applyFeaturizeFlags(cmd *cobra.Command, cfg *config.Config, opts *featurizeOptions) {
	fc := &cfg.Featurize
	if opts.rawDir != "" {
		fc.RawDir = opts.rawDir
	}
	if opts.outputDir != "" {
		fc.OutputDir = opts.outputDir
	}
	if opts.featureSet >= 0 {
		fc.FeatureSetIndex = opts.featureSet
	}
	if opts.workers > 0 {
		fc.Workers = opts.workers
	}
	if cmd.Flags().Changed("overwrite") {
		fc.Overwrite = opts.overwrite
	}
	if opts.tolerance > 0 {
		fc.CoplanarTolerance = opts.tolerance
	}
}

func runFeaturize(cmd *cobra.Command, opts *featurizeOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	applyFeaturizeFlags(cmd, cfg, opts)

	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()

	asm, err := assembler.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	in := newInfra(cfg, cliCtx.Logger)
	defer in.Close()

	source, err := in.recordStore(cfg.Storage, cfg.Featurize.RawDir)
	if err != nil {
		return err
	}
	sink := source
	if cfg.Featurize.OutputDir != "" && cfg.Featurize.OutputDir != cfg.Featurize.RawDir {
		if sink, err = in.recordStore(cfg.Storage, cfg.Featurize.OutputDir); err != nil {
			return err
		}
	}

	var options []featurization.Option
	if _, m, err := in.metrics(); err != nil {
		return err
	} else if m != nil {
		options = append(options, featurization.WithMetrics(m))
	}
	cache, err := in.featureCache()
	if err != nil {
		return err
	}
	if opts.purgeCache {
		if cache == nil {
			return pkgerrors.New(pkgerrors.ErrCodeValidation, "--purge-cache requires redis.enabled")
		}
		n, err := cache.Purge(ctx)
		if err != nil {
			return err
		}
		cliCtx.Logger.Info("feature cache purged", logging.Int64("entries", n))
	}
	if cache != nil {
		options = append(options, featurization.WithCache(cache))
	}
	if events, err := in.eventPublisher(); err != nil {
		return err
	} else if events != nil {
		options = append(options, featurization.WithEvents(events))
	}

	svc, err := featurization.NewService(source, sink, asm,
		featurization.OptionsFromConfig(cfg.Featurize), cliCtx.Logger, options...)
	if err != nil {
		return err
	}

	cliCtx.Logger.Info("featurization starting",
		logging.String(logging.FieldFeatureSet, svc.FeatureSet()),
		logging.String("raw_dir", cfg.Featurize.RawDir),
		logging.String("output_dir", cfg.Featurize.OutputDir),
		logging.Int("workers", cfg.Featurize.Workers),
	)

	var report *graph.BatchReport
	if len(opts.ids) > 0 {
		report, err = svc.RunIDs(ctx, opts.ids)
	} else {
		report, err = svc.Run(ctx)
	}
	if report != nil {
		if perr := PrintResult(cmd, reportView{report}); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	if opts.strict && len(report.Failed) > 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeInternal, "%d of %d records failed", len(report.Failed), report.Total)
	}
	return nil
}

// reportView renders a BatchReport for every output format.
type reportView struct {
	*graph.BatchReport
}

func (v reportView) TableHeaders() []string {
	return []string{"RECORD", "CODE", "REASON", "MESSAGE"}
}

func (v reportView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Failed))
	for _, f := range v.Failed {
		rows = append(rows, []string{f.RecordID, f.ErrorCode, f.Reason, f.Message})
	}
	return rows
}

func (v reportView) String() string {
	s := v.BatchReport.String()
	for _, f := range v.Failed {
		s += "\n  " + f.RecordID + ": [" + f.ErrorCode + "] " + f.Message
	}
	return s
}

//Personal.AI order the ending
