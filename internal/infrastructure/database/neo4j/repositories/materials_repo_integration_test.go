//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/coordination"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/material"
	infraNeo4j "github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"
)

// startNeo4j launches a Neo4j 5 container and returns a connected driver.
func startNeo4j(t *testing.T) *infraNeo4j.Driver {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5",
		ExposedPorts: []string{"7687/tcp"},
		Env:          map[string]string{"NEO4J_AUTH": "neo4j/polygraph-test"},
		WaitingFor:   wait.ForLog("Started.").WithStartupTimeout(120 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	d, err := infraNeo4j.NewDriver(config.Neo4jConfig{
		URI:      fmt.Sprintf("bolt://%s:%s", host, port.Port()),
		User:     "neo4j",
		Password: "polygraph-test",
		Database: "neo4j",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestMaterialsRepo_PopulateIsIdempotent(t *testing.T) {
	d := startNeo4j(t)
	ctx := context.Background()
	require.Equal(t, common.HealthUp, d.HealthCheck(ctx).Status)

	registry := coordination.NewRegistry(coordination.StaticSource{
		{Symbol: "T:4", Name: "Tetrahedron"},
		{Symbol: "O:6", Name: "Octahedron"},
	}, nil)
	require.NoError(t, registry.Load(ctx))
	repo := repositories.NewMaterialsRepo(d, registry, 100, nil)

	materials := []*material.Material{{
		ID: "mp-19770", Formula: "Fe2O3", Elements: []string{"Fe", "O"},
		CrystalSystem: "trigonal", SpaceGroup: 167, MagneticOrdering: "AFM",
		Environments: []material.SiteEnvironment{{Element: "Fe", Symbol: "O:6"}, {Element: "O", Symbol: "T:4"}},
	}}

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.EnsureConstraints(ctx))
		_, err := repo.PopulateNodes(ctx)
		require.NoError(t, err)
		_, err = repo.PopulateMaterials(ctx, materials)
		require.NoError(t, err)
	}

	counts, err := repo.CountNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(repositories.Elements)), counts[repositories.LabelElement])
	assert.Equal(t, int64(2), counts[repositories.LabelChemEnv])
	assert.Equal(t, int64(repositories.SpaceGroupCount), counts[repositories.LabelSpaceGroup])
	assert.Equal(t, int64(1), counts[repositories.LabelMaterial])
	assert.Equal(t, int64(2), counts[repositories.LabelChemEnvElement])
}

//Personal.AI order the ending
