// Package instrument wraps backprop.Backward with metrics, tracing and
// logging. Each call is a "pass" identified by a random UUID that appears
// in the span attributes and the log lines.
//
// Metrics (registered on the default Prometheus registry):
//
//	lvgrad_backward_passes_total{status="ok"|"error"}
//	lvgrad_backward_duration_seconds
//	lvgrad_backward_nodes
//
// Spans are created with the global OpenTelemetry tracer provider under
// the tracer name "lvgrad"; with no provider installed they are no-ops.
package instrument

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvgrad/backprop"
	"github.com/katalvlaran/lvgrad/core"
)

const tracerName = "lvgrad"

var (
	passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lvgrad_backward_passes_total",
		Help: "Total backward passes by status",
	}, []string{"status"})

	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lvgrad_backward_duration_seconds",
		Help:    "Duration of backward passes",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
	})

	passNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lvgrad_backward_nodes",
		Help:    "Nodes propagated per successful backward pass",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
	})
)

// Pass describes one instrumented backward pass.
type Pass struct {
	ID       string        // random UUID
	Nodes    int           // nodes propagated; 0 if the pass failed
	Duration time.Duration // wall time of backprop.Backward
}

// Options configures Backward.
type Options struct {
	// Logger receives one Debug line per pass and one Warn line per failure.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Option configures Backward.
type Option func(*Options)

// DefaultOptions returns Options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Backward runs backprop.Backward on root under a span, records the pass
// in the Prometheus metrics and logs it. ctx is passed to the backward
// pass for cancellation. The returned Pass is non-nil even on error.
func Backward(ctx context.Context, root *core.Node, opts ...Option) (*Pass, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	pass := &Pass{ID: uuid.NewString()}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "backprop.Backward",
		trace.WithAttributes(attribute.String("pass.id", pass.ID)),
	)
	defer span.End()

	nodes := 0
	start := time.Now()
	err := backprop.Backward(root,
		backprop.WithContext(ctx),
		backprop.WithOnPropagate(func(*core.Node) { nodes++ }),
	)
	pass.Duration = time.Since(start)
	passDuration.Observe(pass.Duration.Seconds())

	if err != nil {
		passesTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "backward failed")
		o.Logger.Warn("backward pass failed",
			slog.String("pass", pass.ID),
			slog.Any("error", err),
		)
		return pass, err
	}

	pass.Nodes = nodes
	passesTotal.WithLabelValues("ok").Inc()
	passNodes.Observe(float64(nodes))
	span.SetAttributes(attribute.Int("nodes", nodes))
	o.Logger.Debug("backward pass",
		slog.String("pass", pass.ID),
		slog.Int("nodes", nodes),
		slog.Duration("duration", pass.Duration),
	)

	return pass, nil
}
