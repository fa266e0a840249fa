// Package featurization drives the batch pipeline: every record in a store is
// loaded, its polyhedron reduced to faces, assembled into a graph and written
// back under the configured face_feature_set field.
package featurization

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/polyhedron"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	"github.com/turtacn/PolyGraph-Intelligence/internal/intelligence/assembler"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Collaborators
// ─────────────────────────────────────────────────────────────────────────────

// Cache memoizes assembled graphs by geometry and encoder configuration.
type Cache interface {
	Key(fingerprint string, vertices [][3]float64) string
	GetOrCompute(ctx context.Context, key string, compute func() (*graph.GraphRecord, error)) (*graph.GraphRecord, bool, error)
}

// EventPublisher announces the outcome of each record.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, ev *graph.RecordEvent) error
}

// Options tunes a run.
type Options struct {
	Workers       int
	Overwrite     bool
	Tolerance     float64
	RecordTimeout time.Duration
}

// OptionsFromConfig copies the featurize section.
func OptionsFromConfig(cfg config.FeaturizeConfig) Options {
	return Options{
		Workers:       cfg.Workers,
		Overwrite:     cfg.Overwrite,
		Tolerance:     cfg.CoplanarTolerance,
		RecordTimeout: cfg.RecordTimeout,
	}
}

// Option attaches an optional collaborator.
type Option func(*Service)

// WithCache routes assembly through c.
func WithCache(c Cache) Option { return func(s *Service) { s.cache = c } }

// WithEvents publishes one event per record to p.
func WithEvents(p EventPublisher) Option { return func(s *Service) { s.events = p } }

// WithMetrics records run and record metrics on m.
func WithMetrics(m *prometheus.FeaturizeMetrics) Option { return func(s *Service) { s.metrics = m } }

// ─────────────────────────────────────────────────────────────────────────────
// Service
// ─────────────────────────────────────────────────────────────────────────────

// Result is the outcome of one record.
type Result struct {
	RecordID string
	Status   graph.RecordStatus
	Graph    *graph.GraphRecord
	Duration time.Duration
}

// Service featurizes records from source into sink.  A nil sink writes back
// into source.  It is safe for concurrent use.
type Service struct {
	source  record.Store
	sink    record.Store
	asm     *assembler.Assembler
	opts    Options
	logger  logging.Logger
	cache   Cache
	events  EventPublisher
	metrics *prometheus.FeaturizeMetrics
}

// NewService validates the options and wires the collaborators.
func NewService(source, sink record.Store, asm *assembler.Assembler, opts Options, log logging.Logger, options ...Option) (*Service, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeValidation, "featurization needs a source store")
	}
	if asm == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeValidation, "featurization needs an assembler")
	}
	if opts.Workers < 1 {
		opts.Workers = config.DefaultWorkers
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = polyhedron.DefaultTolerance
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	if sink == nil {
		sink = source
	}

	s := &Service{
		source: source,
		sink:   sink,
		asm:    asm,
		opts:   opts,
		logger: log.Named("featurization").With(logging.String(logging.FieldFeatureSet, asm.Field())),
	}
	for _, o := range options {
		o(s)
	}
	return s, nil
}

// FeatureSet is the field this service writes.
func (s *Service) FeatureSet() string { return s.asm.Field() }

// FeaturizeRecord processes one record.  A record that already holds the
// feature set is skipped unless Overwrite is set.
func (s *Service) FeaturizeRecord(ctx context.Context, id string) (*Result, error) {
	start := time.Now()
	if s.opts.RecordTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RecordTimeout)
		defer cancel()
	}

	res, err := s.featurize(ctx, id)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded && pkgerrors.GetCode(err) == pkgerrors.ErrCodeUnknown {
			err = pkgerrors.Wrap(err, pkgerrors.ErrCodeTimeout, "record timed out").WithDetail(id)
		}
		s.metrics.ObserveFailure(s.FeatureSet(), pkgerrors.GetCode(err).String())
		s.publish(ctx, s.failureEvent(ctx, id, err))
		return nil, err
	}
	res.Duration = time.Since(start)

	faces := 0
	if res.Graph != nil {
		faces = res.Graph.NumNodes()
	}
	s.metrics.ObserveRecord(s.FeatureSet(), res.Status, faces, res.Duration)
	s.publish(ctx, s.successEvent(ctx, res))
	return res, nil
}

func (s *Service) featurize(ctx context.Context, id string) (*Result, error) {
	rec, err := s.source.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec, err = s.mergeSink(ctx, id, rec); err != nil {
		return nil, err
	}

	field := s.FeatureSet()
	if rec.Has(field) && !s.opts.Overwrite {
		s.logger.Debug("feature set present, skipping", logging.RecordID(id))
		return &Result{RecordID: id, Status: graph.StatusSkipped}, nil
	}

	vertices, err := rec.Vertices()
	if err != nil {
		return nil, err
	}

	compute := func() (*graph.GraphRecord, error) {
		p, err := polyhedron.NewPolyhedron(vertices)
		if err != nil {
			return nil, err
		}
		geom, err := polyhedron.Extract(p, s.opts.Tolerance)
		if err != nil {
			return nil, err
		}
		return s.asm.Assemble(id, geom)
	}

	status := graph.StatusFeaturized
	var g *graph.GraphRecord
	if s.cache != nil {
		key := s.cache.Key(s.fingerprint(), vertices)
		var hit bool
		g, hit, err = s.cache.GetOrCompute(ctx, key, compute)
		s.metrics.ObserveCache(hit && err == nil)
		if err == nil {
			// Concurrent misses on one key share the first caller's record.
			cp := *g
			cp.Label = id
			g = &cp
			if hit {
				status = graph.StatusCached
			}
		}
	} else {
		g, err = compute()
	}
	if err != nil {
		return nil, err
	}

	if err := rec.SetGraphRecord(field, g); err != nil {
		return nil, err
	}
	if err := s.sink.Save(ctx, id, rec); err != nil {
		return nil, err
	}
	return &Result{RecordID: id, Status: status, Graph: g}, nil
}

// mergeSink carries feature sets already written to a separate sink over to
// the source record, in the sink's key order, so re-runs keep earlier sets.
func (s *Service) mergeSink(ctx context.Context, id string, rec *record.Record) (*record.Record, error) {
	if s.sink == s.source {
		return rec, nil
	}
	existing, err := s.sink.Load(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return rec, nil
		}
		return nil, err
	}
	for _, key := range existing.Keys() {
		if !strings.HasPrefix(key, graph.FeatureSetPrefix) {
			continue
		}
		raw, _ := existing.Field(key)
		if err := rec.Set(key, raw); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (s *Service) fingerprint() string {
	return s.asm.Fingerprint() + "|tol=" + strconv.FormatFloat(s.opts.Tolerance, 'g', -1, 64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch runs
// ─────────────────────────────────────────────────────────────────────────────

// Run featurizes every record in the source.
func (s *Service) Run(ctx context.Context) (*graph.BatchReport, error) {
	ids, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.RunIDs(ctx, ids)
}

// RunIDs featurizes ids with at most Workers records in flight.  A failing
// record is reported and never aborts the run; only cancellation of ctx does.
func (s *Service) RunIDs(ctx context.Context, ids []string) (*graph.BatchReport, error) {
	runID := uuid.New().String()
	ctx = logging.WithRunID(ctx, runID)
	log := s.logger.WithContext(ctx)

	report := &graph.BatchReport{
		RunID:      runID,
		FeatureSet: s.FeatureSet(),
		Total:      len(ids),
		Failed:     []graph.RecordFailure{},
		StartedAt:  time.Now().UTC(),
	}
	log.Info("featurization run started",
		logging.Int("records", len(ids)),
		logging.Int("workers", s.opts.Workers),
		logging.Bool("overwrite", s.opts.Overwrite))

	results := make([]*Result, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			s.metrics.WorkerStarted(s.FeatureSet())
			defer s.metrics.WorkerDone(s.FeatureSet())
			results[i], errs[i] = s.FeaturizeRecord(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		switch {
		case errs[i] != nil:
			err := errs[i]
			log.Warn("record failed", logging.RecordID(id), logging.Err(err),
				logging.String(logging.FieldErrorCode, pkgerrors.GetCode(err).String()))
			report.Failed = append(report.Failed, graph.RecordFailure{
				RecordID:  id,
				ErrorCode: pkgerrors.GetCode(err).String(),
				Reason:    pkgerrors.Reason(err),
				Message:   err.Error(),
			})
		default:
			switch results[i].Status {
			case graph.StatusSkipped:
				report.Skipped++
			case graph.StatusCached:
				report.Cached++
				report.Succeeded++
			default:
				report.Succeeded++
			}
		}
	}
	report.FinishedAt = time.Now().UTC()

	s.metrics.ObserveRun(report)
	log.Info("featurization run finished",
		logging.Int("total", report.Total),
		logging.Int("succeeded", report.Succeeded),
		logging.Int("cached", report.Cached),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", len(report.Failed)),
		logging.Duration("duration", report.Duration()))

	if err := ctx.Err(); err != nil {
		return report, pkgerrors.Wrap(err, pkgerrors.ErrCodeTimeout, "featurization run interrupted").WithDetail(runID)
	}
	return report, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Events
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) successEvent(ctx context.Context, res *Result) *graph.RecordEvent {
	runID, _ := logging.RunIDFromContext(ctx)
	ev := graph.NewRecordEvent(runID, res.RecordID, s.FeatureSet(), res.Status)
	if res.Graph != nil {
		ev.Faces = res.Graph.NumNodes()
		ev.Edges = res.Graph.NumEdges()
		ev.Y = res.Graph.Y
	}
	return ev
}

func (s *Service) failureEvent(ctx context.Context, id string, err error) *graph.RecordEvent {
	runID, _ := logging.RunIDFromContext(ctx)
	ev := graph.NewRecordEvent(runID, id, s.FeatureSet(), graph.StatusFailed)
	ev.ErrorCode = pkgerrors.GetCode(err).String()
	ev.Reason = pkgerrors.Reason(err)
	return ev
}

func (s *Service) publish(ctx context.Context, ev *graph.RecordEvent) {
	if s.events == nil {
		return
	}
	// The per-record context may already be done; the event outlives it.
	if err := s.events.PublishRecordEvent(context.WithoutCancel(ctx), ev); err != nil {
		s.logger.Debug("record event dropped", logging.RecordID(ev.RecordID), logging.Err(err))
	}
}

//Personal.AI order the ending
