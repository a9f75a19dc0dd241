package load

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	chunkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "graphload_chunk_duration_seconds",
			Help: "Time spent executing one chunk against the database",
		},
		[]string{"kind"},
	)

	rowsLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphload_rows_loaded_total",
			Help: "Total nodes or relationships touched by merge statements",
		},
		[]string{"kind"},
	)

	chunkErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphload_chunk_errors_total",
			Help: "Total chunk executions that returned an error",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(chunkDuration)
	prometheus.MustRegister(rowsLoaded)
	prometheus.MustRegister(chunkErrors)
}

// DefaultChunkSize bounds the number of records bound into one statement.
const DefaultChunkSize = 10_000

// Progress receives the running total after every chunk round-trip.
type Progress func(loaded, total int64)

// Loader drives synthesized merge statements across record sets, one chunk
// per database round-trip, strictly in input order.
type Loader struct {
	exec      Executor
	chunkSize int
	logger    *logrus.Logger
	progress  Progress
}

// Option configures a Loader.
type Option func(*Loader)

// WithChunkSize sets the maximum records per round-trip. Values below one
// are clamped to one.
func WithChunkSize(n int) Option {
	return func(l *Loader) { l.chunkSize = n }
}

// WithLogger replaces the default JSON logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithProgress registers a callback invoked after every chunk.
func WithProgress(fn Progress) Option {
	return func(l *Loader) { l.progress = fn }
}

// New creates a Loader over the given execution capability.
func New(exec Executor, opts ...Option) *Loader {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	l := &Loader{
		exec:      exec,
		chunkSize: DefaultChunkSize,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadNodes upserts one node per record of tab, keyed on the spec's identity
// property, and returns the cumulative count of nodes touched. Columns are
// taken from the table; the spec names only the key and label.
func (l *Loader) LoadNodes(ctx context.Context, tab Table, spec NodeSpec) (int64, error) {
	spec.Columns = tab.Columns()
	query, err := NodeMergeQuery(spec)
	if err != nil {
		return 0, err
	}
	return l.run(ctx, "nodes", spec.Label, query, tab.Records())
}

// LoadRelationships upserts one relationship per record of tab between
// pre-existing endpoint nodes and returns the cumulative count touched.
// Records whose endpoints are missing merge nothing; a final count below the
// record count is logged as a warning rather than treated as an error.
func (l *Loader) LoadRelationships(ctx context.Context, tab Table, spec RelSpec) (int64, error) {
	spec.Columns = tab.Columns()
	query, err := RelMergeQuery(spec)
	if err != nil {
		return 0, err
	}

	loaded, err := l.run(ctx, "relationships", spec.Type, query, tab.Records())
	if err != nil {
		return loaded, err
	}
	if total := int64(len(tab.Records())); loaded < total {
		l.logger.WithFields(logrus.Fields{
			"type":    spec.Type,
			"loaded":  loaded,
			"missing": total - loaded,
		}).Warn("some records matched no existing endpoint nodes")
	}
	return loaded, nil
}

func (l *Loader) run(ctx context.Context, kind, name, query string, records []Record) (int64, error) {
	total := int64(len(records))
	log := l.logger.WithFields(logrus.Fields{
		"run_id": uuid.New().String(),
		"kind":   kind,
		"name":   name,
		"total":  total,
	})
	log.WithField("query", query).Infof("staging %d records", total)

	var loaded int64
	for _, chunk := range Chunks(records, l.chunkSize) {
		recs := make([]interface{}, len(chunk))
		for i, rec := range chunk {
			recs[i] = map[string]interface{}(rec)
		}

		timer := prometheus.NewTimer(chunkDuration.WithLabelValues(kind))
		rows, err := l.exec.Run(ctx, query, map[string]interface{}{"recs": recs})
		timer.ObserveDuration()
		if err != nil {
			chunkErrors.WithLabelValues(kind).Inc()
			return loaded, errors.Wrapf(err, "loading %s %s", name, kind)
		}

		count, err := scalarCount(rows)
		if err != nil {
			chunkErrors.WithLabelValues(kind).Inc()
			return loaded, errors.Wrapf(err, "loading %s %s", name, kind)
		}

		loaded += count
		rowsLoaded.WithLabelValues(kind).Add(float64(count))
		if l.progress != nil {
			l.progress(loaded, total)
		}
		log.Infof("Loaded %d of %d %s", loaded, total, kind)
	}
	return loaded, nil
}

// scalarCount reads the single numeric cell a merge statement returns.
func scalarCount(rows []map[string]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, ErrNoCount
	}
	for _, value := range rows[0] {
		switch n := value.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case float64:
			return int64(n), nil
		}
	}
	return 0, ErrNoCount
}
