package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/PolyGraph-Intelligence/internal/application/graphdb"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/coordination"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// NewGraphDBCmd builds `polygraph graphdb`.
func NewGraphDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphdb",
		Short: "Populate and describe the materials graph in Neo4j",
	}
	cmd.AddCommand(newGraphDBSchemaCmd(), newGraphDBPopulateCmd())
	return cmd
}

func newGraphDBSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the node and relationship schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, repositories.MaterialsSchema())
		},
	}
}

func newGraphDBPopulateCmd() *cobra.Command {
	var coordinationDir, materialsDir string

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Load coordination environments and material records into Neo4j",
		Long: "Creates the uniqueness constraints, merges one node per coordination\n" +
			"environment and links every readable material record to its sites,\n" +
			"elements and environments.  Re-running leaves the graph unchanged.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if coordinationDir != "" {
				cfg.Coordination.Dir = coordinationDir
			}
			if materialsDir != "" {
				cfg.Neo4j.MaterialsDir = materialsDir
			}
			if cfg.Coordination.Dir == "" {
				return pkgerrors.New(pkgerrors.ErrCodeValidation, "coordination.dir is required")
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			registry := coordination.NewRegistry(coordination.DirSource{Dir: cfg.Coordination.Dir}, cliCtx.Logger)
			if err := registry.Load(ctx); err != nil {
				return err
			}

			driver, err := neo4j.NewDriver(cfg.Neo4j, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := driver.Close(); cerr != nil {
					cliCtx.Logger.Warn("failed to close neo4j driver", logging.Err(cerr))
				}
			}()

			var materials record.Store
			if cfg.Neo4j.MaterialsDir != "" {
				materials = record.NewFileStore(cfg.Neo4j.MaterialsDir, cliCtx.Logger)
			}

			repo := repositories.NewMaterialsRepo(driver, registry, cfg.Neo4j.BatchSize, cliCtx.Logger)
			report, err := graphdb.NewService(repo, materials, cliCtx.Logger).Populate(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, populateView{report})
		},
	}

	cmd.Flags().StringVar(&coordinationDir, "coordination-dir", "", "coordination environment definitions (default: coordination.dir)")
	cmd.Flags().StringVar(&materialsDir, "materials-dir", "", "material records (default: neo4j.materials_dir)")
	return cmd
}

type populateView struct {
	*graphdb.Report
}

func (v populateView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "populated %d materials in %d batches (%d skipped, %d unreadable) in %s",
		v.Materials, v.Batches, v.Skipped, len(v.Unreadable), v.Duration.Round(time.Millisecond))
	for _, k := range sortedKeys(v.Rows) {
		fmt.Fprintf(&sb, "\n  %-24s %d", k, v.Rows[k])
	}
	return sb.String()
}

func (v populateView) TableHeaders() []string { return []string{"KIND", "ROWS", "NODES"} }

func (v populateView) TableRows() [][]string {
	keys := sortedKeys(v.Rows)
	for k := range v.Counts {
		if _, ok := v.Rows[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		nodes := ""
		if n, ok := v.Counts[k]; ok {
			nodes = strconv.FormatInt(n, 10)
		}
		rows = append(rows, []string{k, strconv.Itoa(v.Rows[k]), nodes})
	}
	return rows
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//Personal.AI order the ending
