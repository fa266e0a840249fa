package prometheus

import (
	"strconv"
	"time"

	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"
)

var (
	DefaultRecordDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1}
	DefaultFaceCountBuckets      = []float64{4, 5, 6, 8, 10, 12, 16, 20, 32, 64}
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
)

// FeaturizeMetrics instruments featurization runs and the dataset API.
type FeaturizeMetrics struct {
	RecordsTotal   CounterVec   // feature_set, status
	RecordFailures CounterVec   // feature_set, error_code
	RecordDuration HistogramVec // feature_set
	FacesPerRecord HistogramVec // feature_set
	RunsTotal      CounterVec   // feature_set
	RunDuration    HistogramVec // feature_set
	CacheLookups   CounterVec   // result
	ActiveWorkers  GaugeVec     // feature_set
	HTTPRequests   CounterVec   // method, route, status
	HTTPDuration   HistogramVec // method, route
	HealthCheckUp  GaugeVec     // component
}

// NewFeaturizeMetrics registers every featurization metric on c.
func NewFeaturizeMetrics(c MetricsCollector) *FeaturizeMetrics {
	return &FeaturizeMetrics{
		RecordsTotal:   c.RegisterCounter("records_total", "Records processed by outcome.", "feature_set", "status"),
		RecordFailures: c.RegisterCounter("record_failures_total", "Failed records by error code.", "feature_set", "error_code"),
		RecordDuration: c.RegisterHistogram("record_duration_seconds", "Time to featurize one record.", DefaultRecordDurationBuckets, "feature_set"),
		FacesPerRecord: c.RegisterHistogram("record_faces", "Faces per featurized polyhedron.", DefaultFaceCountBuckets, "feature_set"),
		RunsTotal:      c.RegisterCounter("runs_total", "Completed featurization runs.", "feature_set"),
		RunDuration:    c.RegisterHistogram("run_duration_seconds", "Wall time of a featurization run.", nil, "feature_set"),
		CacheLookups:   c.RegisterCounter("cache_lookups_total", "Feature cache lookups by result.", "result"),
		ActiveWorkers:  c.RegisterGauge("active_workers", "Workers currently featurizing a record.", "feature_set"),
		HTTPRequests:   c.RegisterCounter("http_requests_total", "HTTP requests served.", "method", "route", "status"),
		HTTPDuration:   c.RegisterHistogram("http_request_duration_seconds", "HTTP request latency.", DefaultHTTPDurationBuckets, "method", "route"),
		HealthCheckUp:  c.RegisterGauge("health_check_up", "1 when a dependency reports up.", "component"),
	}
}

// ObserveRecord records the outcome of one record.
func (m *FeaturizeMetrics) ObserveRecord(featureSet string, status graph.RecordStatus, faces int, d time.Duration) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(featureSet, string(status)).Inc()
	m.RecordDuration.WithLabelValues(featureSet).Observe(d.Seconds())
	if faces > 0 {
		m.FacesPerRecord.WithLabelValues(featureSet).Observe(float64(faces))
	}
}

// ObserveFailure counts a failed record under its error code.
func (m *FeaturizeMetrics) ObserveFailure(featureSet, code string) {
	if m == nil {
		return
	}
	m.RecordFailures.WithLabelValues(featureSet, code).Inc()
}

// ObserveRun records a finished run.
func (m *FeaturizeMetrics) ObserveRun(report *graph.BatchReport) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(report.FeatureSet).Inc()
	m.RunDuration.WithLabelValues(report.FeatureSet).Observe(report.Duration().Seconds())
}

// ObserveCache counts a cache hit or miss.
func (m *FeaturizeMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}

// WorkerStarted and WorkerDone track pool occupancy.
func (m *FeaturizeMetrics) WorkerStarted(featureSet string) {
	if m != nil {
		m.ActiveWorkers.WithLabelValues(featureSet).Inc()
	}
}

func (m *FeaturizeMetrics) WorkerDone(featureSet string) {
	if m != nil {
		m.ActiveWorkers.WithLabelValues(featureSet).Dec()
	}
}

// ObserveHTTP records one served request.  route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (m *FeaturizeMetrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetHealth publishes the last health probe of component.
func (m *FeaturizeMetrics) SetHealth(component string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckUp.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
