// Package material models the materials documents loaded into the graph
// database alongside the polyhedron dataset.
package material

import (
	"sort"
	"strings"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// SiteEnvironment is the coordination environment of one site.
type SiteEnvironment struct {
	Element string `json:"element"`
	Symbol  string `json:"mp_symbol"`
}

// Material is one materials document.
type Material struct {
	ID                     string            `json:"material_id"`
	Formula                string            `json:"formula_pretty"`
	Elements               []string          `json:"elements"`
	NSites                 int               `json:"nsites"`
	Density                float64           `json:"density"`
	Volume                 float64           `json:"volume"`
	BandGap                float64           `json:"band_gap"`
	EnergyPerAtom          float64           `json:"energy_per_atom"`
	FormationEnergyPerAtom float64           `json:"formation_energy_per_atom"`
	EnergyAboveHull        float64           `json:"energy_above_hull"`
	IsStable               bool              `json:"is_stable"`
	CrystalSystem          string            `json:"crystal_system"`
	SpaceGroup             int               `json:"space_group"`
	MagneticOrdering       string            `json:"ordering"`
	Environments           []SiteEnvironment `json:"coordination_environments"`
}

// Validate checks the fields the graph keys on.
func (m *Material) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return pkgerrors.New(pkgerrors.ErrCodeValidation, "material_id is required")
	}
	if m.SpaceGroup < 0 || m.SpaceGroup > 230 {
		return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "material %s: space group %d out of range", m.ID, m.SpaceGroup)
	}
	for _, env := range m.Environments {
		if env.Element == "" || env.Symbol == "" {
			return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "material %s: incomplete coordination environment", m.ID)
		}
	}
	return nil
}

// ChemEnvElementName joins an element and an mp_symbol, e.g. "Fe_O:6".
func ChemEnvElementName(element, symbol string) string {
	return element + "_" + symbol
}

// DistinctEnvironments returns the site environments without repeats,
// sorted by element then symbol.
func (m *Material) DistinctEnvironments() []SiteEnvironment {
	seen := make(map[SiteEnvironment]struct{}, len(m.Environments))
	out := make([]SiteEnvironment, 0, len(m.Environments))
	for _, env := range m.Environments {
		if _, ok := seen[env]; ok {
			continue
		}
		seen[env] = struct{}{}
		out = append(out, env)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Element != out[j].Element {
			return out[i].Element < out[j].Element
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

//Personal.AI order the ending
