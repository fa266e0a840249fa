package repositories

import (
	"fmt"
	"strings"
)

// Node labels of the materials graph.
const (
	LabelMaterial       = "Material"
	LabelElement        = "Element"
	LabelChemEnv        = "ChemEnv"
	LabelChemEnvElement = "ChemEnvElement"
	LabelCrystalSystem  = "CrystalSystem"
	LabelMagneticState  = "MagneticState"
	LabelSpaceGroup     = "SpaceGroup"
)

// Relationship types of the materials graph.
const (
	RelHasElement       = "HAS_ELEMENT"
	RelHasChemEnv       = "HAS_CHEMENV"
	RelHasCrystalSystem = "HAS_CRYSTAL_SYSTEM"
	RelHasMagneticState = "HAS_MAGNETIC_STATE"
	RelHasSpaceGroup    = "HAS_SPACE_GROUP"
	RelCanOccur         = "CAN_OCCUR"
)

// NodeSchema lists the properties of one label.  Key is the unique property.
type NodeSchema struct {
	Label      string
	Key        string
	Properties []PropertySchema
}

type PropertySchema struct {
	Name string
	Type string
}

// RelationshipSchema is one allowed (from)-[type]->(to) pattern.
type RelationshipSchema struct {
	From string
	Type string
	To   string
}

// GraphSchema is the fixed schema of the materials graph.
type GraphSchema struct {
	Nodes         []NodeSchema
	Relationships []RelationshipSchema
}

// MaterialsSchema returns the materials graph schema.
func MaterialsSchema() GraphSchema {
	return GraphSchema{
		Nodes: []NodeSchema{
			{Label: LabelMaterial, Key: "material_id", Properties: []PropertySchema{
				{"material_id", "STRING"}, {"formula", "STRING"}, {"nsites", "INTEGER"},
				{"density", "FLOAT"}, {"volume", "FLOAT"}, {"band_gap", "FLOAT"},
				{"energy_per_atom", "FLOAT"}, {"formation_energy_per_atom", "FLOAT"},
				{"energy_above_hull", "FLOAT"}, {"is_stable", "BOOLEAN"},
			}},
			{Label: LabelElement, Key: "name", Properties: []PropertySchema{
				{"name", "STRING"}, {"atomic_number", "INTEGER"},
			}},
			{Label: LabelChemEnv, Key: "name", Properties: []PropertySchema{
				{"name", "STRING"}, {"description", "STRING"}, {"coordination", "INTEGER"},
				{"coordination_encoding", "LIST OF FLOAT"},
			}},
			{Label: LabelChemEnvElement, Key: "name", Properties: []PropertySchema{
				{"name", "STRING"}, {"element", "STRING"}, {"chemenv", "STRING"},
			}},
			{Label: LabelCrystalSystem, Key: "name", Properties: []PropertySchema{{"name", "STRING"}}},
			{Label: LabelMagneticState, Key: "name", Properties: []PropertySchema{{"name", "STRING"}}},
			{Label: LabelSpaceGroup, Key: "number", Properties: []PropertySchema{{"number", "INTEGER"}}},
		},
		Relationships: []RelationshipSchema{
			{LabelMaterial, RelHasElement, LabelElement},
			{LabelMaterial, RelHasChemEnv, LabelChemEnv},
			{LabelMaterial, RelHasChemEnv, LabelChemEnvElement},
			{LabelMaterial, RelHasCrystalSystem, LabelCrystalSystem},
			{LabelMaterial, RelHasMagneticState, LabelMagneticState},
			{LabelMaterial, RelHasSpaceGroup, LabelSpaceGroup},
			{LabelChemEnvElement, RelHasElement, LabelElement},
			{LabelChemEnvElement, RelHasChemEnv, LabelChemEnv},
			{LabelElement, RelCanOccur, LabelChemEnv},
		},
	}
}

// String renders the schema in the plain form downstream query tooling
// embeds in its prompts.
func (s GraphSchema) String() string {
	var b strings.Builder
	b.WriteString("Node properties:\n")
	for _, n := range s.Nodes {
		props := make([]string, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = p.Name + ": " + p.Type
		}
		fmt.Fprintf(&b, "%s {%s}\n", n.Label, strings.Join(props, ", "))
	}
	b.WriteString("The relationships:\n")
	for _, r := range s.Relationships {
		fmt.Fprintf(&b, "(:%s)-[:%s]->(:%s)\n", r.From, r.Type, r.To)
	}
	return b.String()
}

// Constraints returns one uniqueness constraint statement per label.
func (s GraphSchema) Constraints() []string {
	out := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = fmt.Sprintf("CREATE CONSTRAINT %s_%s_unique IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			strings.ToLower(n.Label), n.Key, n.Label, n.Key)
	}
	return out
}

//Personal.AI order the ending
