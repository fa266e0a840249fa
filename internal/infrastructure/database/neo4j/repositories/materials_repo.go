package repositories

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/coordination"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/material"
	driver "github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/intelligence/encoding"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// PopulateStats counts what a populate call wrote.  Rows is keyed by node
// label or relationship type.
type PopulateStats struct {
	Rows    map[string]int `json:"rows"`
	Skipped int            `json:"skipped"`
	Batches int            `json:"batches"`
}

func newPopulateStats() *PopulateStats {
	return &PopulateStats{Rows: make(map[string]int)}
}

// MaterialsRepo writes the materials graph.  Every statement is an
// idempotent MERGE, so populating twice leaves the graph unchanged.
type MaterialsRepo struct {
	driver    driver.DriverInterface
	registry  *coordination.Registry
	batchSize int
	log       logging.Logger
}

func NewMaterialsRepo(d driver.DriverInterface, registry *coordination.Registry, batchSize int, log logging.Logger) *MaterialsRepo {
	if batchSize <= 0 {
		batchSize = config.DefaultNeo4jBatchSize
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &MaterialsRepo{driver: d, registry: registry, batchSize: batchSize, log: log.Named("materials_repo")}
}

// Schema describes the graph for natural-language query tooling.
func (r *MaterialsRepo) Schema() string {
	return MaterialsSchema().String()
}

// EnsureConstraints creates the uniqueness constraint of every label.
func (r *MaterialsRepo) EnsureConstraints(ctx context.Context) error {
	for _, stmt := range MaterialsSchema().Constraints() {
		stmt := stmt
		_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
			return consume(ctx, tx, stmt, nil)
		})
		if err != nil {
			return err
		}
	}
	r.log.Info("constraints ensured", logging.Int("labels", len(MaterialsSchema().Nodes)))
	return nil
}

// PopulateNodes merges the fixed catalogue nodes: elements, coordination
// environments from the registry, crystal systems, magnetic states and
// space groups.
func (r *MaterialsRepo) PopulateNodes(ctx context.Context) (*PopulateStats, error) {
	if !r.registry.Loaded() {
		return nil, errors.New(errors.ErrCodeCoordinationNotLoaded, "coordination registry not loaded")
	}
	stats := newPopulateStats()

	elements := make([]map[string]any, len(Elements))
	for i, e := range Elements {
		elements[i] = map[string]any{"name": e, "atomic_number": i + 1}
	}
	if err := r.unwind(ctx, stats, LabelElement,
		`UNWIND $rows AS row
		 MERGE (n:Element {name: row.name})
		 SET n.atomic_number = row.atomic_number`, elements); err != nil {
		return nil, err
	}

	envs := r.registry.Environments()
	symbols := make([]string, len(envs))
	for i, env := range envs {
		symbols[i] = env.Symbol
	}
	encoded, err := encoding.NewCoordinationEncoder(r.registry).EncodeAll(symbols)
	if err != nil {
		return nil, err
	}
	chemenvs := make([]map[string]any, len(envs))
	for i, env := range envs {
		chemenvs[i] = map[string]any{
			"name":                  env.Symbol,
			"description":           env.Name,
			"coordination":          env.CoordinationNumber,
			"coordination_encoding": encoded[i],
		}
	}
	if err := r.unwind(ctx, stats, LabelChemEnv,
		`UNWIND $rows AS row
		 MERGE (n:ChemEnv {name: row.name})
		 SET n.description = row.description, n.coordination = row.coordination,
		     n.coordination_encoding = row.coordination_encoding`, chemenvs); err != nil {
		return nil, err
	}

	for label, names := range map[string][]string{
		LabelCrystalSystem: CrystalSystems,
		LabelMagneticState: MagneticStates,
	} {
		rows := make([]map[string]any, len(names))
		for i, n := range names {
			rows[i] = map[string]any{"name": n}
		}
		if err := r.unwind(ctx, stats, label,
			fmt.Sprintf("UNWIND $rows AS row MERGE (n:%s {name: row.name})", label), rows); err != nil {
			return nil, err
		}
	}

	groups := make([]map[string]any, SpaceGroupCount)
	for i := range groups {
		groups[i] = map[string]any{"number": i + 1}
	}
	if err := r.unwind(ctx, stats, LabelSpaceGroup,
		`UNWIND $rows AS row MERGE (n:SpaceGroup {number: row.number})`, groups); err != nil {
		return nil, err
	}

	r.log.Info("catalogue nodes populated", logging.Any("rows", stats.Rows), logging.Int("batches", stats.Batches))
	return stats, nil
}

// PopulateMaterials merges material nodes and links them to the catalogue.
// Invalid materials, or ones naming an unknown coordination environment,
// are skipped and logged.
func (r *MaterialsRepo) PopulateMaterials(ctx context.Context, materials []*material.Material) (*PopulateStats, error) {
	stats := newPopulateStats()

	var (
		nodes, elementLinks, crystalLinks, magneticLinks, groupLinks, envLinks []map[string]any
	)
	for _, m := range materials {
		if err := r.check(m); err != nil {
			r.log.Warn("skipping material", logging.String("material_id", m.ID), logging.Err(err))
			stats.Skipped++
			continue
		}
		nodes = append(nodes, map[string]any{
			"material_id": m.ID,
			"props": map[string]any{
				"formula":                   m.Formula,
				"nsites":                    m.NSites,
				"density":                   m.Density,
				"volume":                    m.Volume,
				"band_gap":                  m.BandGap,
				"energy_per_atom":           m.EnergyPerAtom,
				"formation_energy_per_atom": m.FormationEnergyPerAtom,
				"energy_above_hull":         m.EnergyAboveHull,
				"is_stable":                 m.IsStable,
			},
		})
		for _, e := range m.Elements {
			elementLinks = append(elementLinks, map[string]any{"material_id": m.ID, "key": e})
		}
		if m.CrystalSystem != "" {
			crystalLinks = append(crystalLinks, map[string]any{"material_id": m.ID, "key": m.CrystalSystem})
		}
		if m.MagneticOrdering != "" {
			magneticLinks = append(magneticLinks, map[string]any{"material_id": m.ID, "key": m.MagneticOrdering})
		}
		if m.SpaceGroup > 0 {
			groupLinks = append(groupLinks, map[string]any{"material_id": m.ID, "key": m.SpaceGroup})
		}
		for _, env := range m.DistinctEnvironments() {
			envLinks = append(envLinks, map[string]any{
				"material_id": m.ID,
				"element":     env.Element,
				"chemenv":     env.Symbol,
				"name":        material.ChemEnvElementName(env.Element, env.Symbol),
			})
		}
	}

	if err := r.unwind(ctx, stats, LabelMaterial,
		`UNWIND $rows AS row
		 MERGE (m:Material {material_id: row.material_id})
		 SET m += row.props`, nodes); err != nil {
		return nil, err
	}

	links := []struct {
		rel, label, key string
		rows            []map[string]any
	}{
		{RelHasElement, LabelElement, "name", elementLinks},
		{RelHasCrystalSystem, LabelCrystalSystem, "name", crystalLinks},
		{RelHasMagneticState, LabelMagneticState, "name", magneticLinks},
		{RelHasSpaceGroup, LabelSpaceGroup, "number", groupLinks},
	}
	for _, l := range links {
		if err := r.unwind(ctx, stats, l.rel, linkStatement(l.rel, l.label, l.key), l.rows); err != nil {
			return nil, err
		}
	}

	if err := r.unwind(ctx, stats, LabelChemEnvElement,
		`UNWIND $rows AS row
		 MATCH (m:Material {material_id: row.material_id})
		 MATCH (e:Element {name: row.element})
		 MATCH (c:ChemEnv {name: row.chemenv})
		 MERGE (ce:ChemEnvElement {name: row.name})
		 ON CREATE SET ce.element = row.element, ce.chemenv = row.chemenv
		 MERGE (ce)-[:HAS_ELEMENT]->(e)
		 MERGE (ce)-[:HAS_CHEMENV]->(c)
		 MERGE (m)-[:HAS_CHEMENV]->(c)
		 MERGE (m)-[:HAS_CHEMENV]->(ce)
		 MERGE (e)-[:CAN_OCCUR]->(c)`, envLinks); err != nil {
		return nil, err
	}

	r.log.Info("materials populated",
		logging.Int("materials", len(nodes)),
		logging.Int("skipped", stats.Skipped),
		logging.Int("batches", stats.Batches))
	return stats, nil
}

// CountNodes returns the node count of every schema label.
func (r *MaterialsRepo) CountNodes(ctx context.Context) (map[string]int64, error) {
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (n) UNWIND labels(n) AS label RETURN label, count(*) AS count`, nil)
		if err != nil {
			return nil, err
		}
		type row struct {
			label string
			count int64
		}
		rows, err := driver.CollectRecords(ctx, res, func(rec *neo4j.Record) (row, error) {
			label, _, err := neo4j.GetRecordValue[string](rec, "label")
			if err != nil {
				return row{}, err
			}
			count, _, err := neo4j.GetRecordValue[int64](rec, "count")
			return row{label, count}, err
		})
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int64, len(rows))
		for _, rw := range rows {
			counts[rw.label] = rw.count
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]int64), nil
}

func (r *MaterialsRepo) check(m *material.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, env := range m.Environments {
		if _, err := r.registry.Get(env.Symbol); err != nil {
			return err
		}
	}
	return nil
}

// unwind runs cypher once per batch of rows, each batch in its own write
// transaction.
func (r *MaterialsRepo) unwind(ctx context.Context, stats *PopulateStats, kind, cypher string, rows []map[string]any) error {
	for start := 0; start < len(rows); start += r.batchSize {
		end := start + r.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		params := map[string]any{"rows": rows[start:end]}
		_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
			return consume(ctx, tx, cypher, params)
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "populate failed").WithDetail(kind)
		}
		stats.Batches++
	}
	stats.Rows[kind] += len(rows)
	return nil
}

func linkStatement(rel, label, key string) string {
	return fmt.Sprintf(`UNWIND $rows AS row
		 MATCH (m:Material {material_id: row.material_id})
		 MATCH (t:%s {%s: row.key})
		 MERGE (m)-[:%s]->(t)`, label, key, rel)
}

func consume(ctx context.Context, tx driver.Transaction, cypher string, params map[string]any) (any, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	_, err = res.Consume(ctx)
	return nil, err
}

//Personal.AI order the ending
