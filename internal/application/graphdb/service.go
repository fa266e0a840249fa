// Package graphdb loads material records and populates the materials graph.
package graphdb

import (
	"context"
	"time"

	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/material"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
)

// Repository is the write side of the materials graph.
type Repository interface {
	Schema() string
	EnsureConstraints(ctx context.Context) error
	PopulateNodes(ctx context.Context) (*repositories.PopulateStats, error)
	PopulateMaterials(ctx context.Context, materials []*material.Material) (*repositories.PopulateStats, error)
	CountNodes(ctx context.Context) (map[string]int64, error)
}

// Report summarises a populate run.
type Report struct {
	Materials  int              `json:"materials"`
	Unreadable []string         `json:"unreadable,omitempty"`
	Rows       map[string]int   `json:"rows"`
	Skipped    int              `json:"skipped"`
	Batches    int              `json:"batches"`
	Counts     map[string]int64 `json:"counts,omitempty"`
	Duration   time.Duration    `json:"duration"`
}

// Service wires a material record store to the graph repository.
type Service struct {
	repo      Repository
	materials record.Store
	logger    logging.Logger
}

// NewService returns a Service reading materials from store.
func NewService(repo Repository, store record.Store, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{repo: repo, materials: store, logger: log.Named("graphdb")}
}

// Schema describes the graph.
func (s *Service) Schema() string { return s.repo.Schema() }

// LoadMaterials decodes every record in the store.  Unreadable records are
// logged and returned by id; they do not stop the load.
func (s *Service) LoadMaterials(ctx context.Context) ([]*material.Material, []string, error) {
	if s.materials == nil {
		return nil, nil, nil
	}
	ids, err := s.materials.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := make([]*material.Material, 0, len(ids))
	var unreadable []string
	for _, id := range ids {
		rec, err := s.materials.Load(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			s.logger.Warn("material record unreadable", logging.RecordID(id), logging.Err(err))
			unreadable = append(unreadable, id)
			continue
		}
		var m material.Material
		if err := rec.DecodeInto(&m); err != nil {
			s.logger.Warn("material record unreadable", logging.RecordID(id), logging.Err(err))
			unreadable = append(unreadable, id)
			continue
		}
		if m.ID == "" {
			m.ID = id
		}
		out = append(out, &m)
	}
	return out, unreadable, nil
}

// Populate creates constraints, the catalogue nodes and every material.  It
// is idempotent: all writes are MERGEs.
func (s *Service) Populate(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{Rows: make(map[string]int)}

	if err := s.repo.EnsureConstraints(ctx); err != nil {
		return nil, err
	}

	nodes, err := s.repo.PopulateNodes(ctx)
	if err != nil {
		return nil, err
	}
	report.merge(nodes)

	materials, unreadable, err := s.LoadMaterials(ctx)
	if err != nil {
		return nil, err
	}
	report.Materials = len(materials)
	report.Unreadable = unreadable

	if len(materials) > 0 {
		stats, err := s.repo.PopulateMaterials(ctx, materials)
		if err != nil {
			return nil, err
		}
		report.merge(stats)
	}

	counts, err := s.repo.CountNodes(ctx)
	if err != nil {
		s.logger.Warn("node count failed", logging.Err(err))
	} else {
		report.Counts = counts
	}
	report.Duration = time.Since(start)

	s.logger.Info("graph populated",
		logging.Int("materials", report.Materials),
		logging.Int("skipped", report.Skipped),
		logging.Int("unreadable", len(report.Unreadable)),
		logging.Int("batches", report.Batches),
		logging.Duration("duration", report.Duration))
	return report, nil
}

func (r *Report) merge(stats *repositories.PopulateStats) {
	if stats == nil {
		return
	}
	for k, v := range stats.Rows {
		r.Rows[k] += v
	}
	r.Skipped += stats.Skipped
	r.Batches += stats.Batches
}

//Personal.AI order the ending
