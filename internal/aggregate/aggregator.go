package aggregate

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/digitsum/internal/dataset"
)

// Aggregator computes the Final Result of a dataset.
type Aggregator interface {
	// Name returns the strategy key ("sequential", "parallel").
	Name() string
	// Aggregate returns the sum of the digit-sums of every segment of ds.
	//
	// ctx carries tracing state only: a run is never cancelled, every
	// scheduled unit runs to completion.
	Aggregate(ctx context.Context, ds dataset.Dataset) (uint64, error)
}

var tracer = otel.Tracer("github.com/agbru/digitsum/internal/aggregate")

// startRun opens the span of one aggregation run and returns a function that
// closes it and records the run in the metrics.
func startRun(ctx context.Context, o *options, strategy string) (context.Context, func(total uint64, err error)) {
	ctx, span := tracer.Start(ctx, "aggregate."+strategy,
		trace.WithAttributes(attribute.String("aggregate.strategy", strategy)))
	start := time.Now()
	return ctx, func(total uint64, err error) {
		o.metrics.ObserveRun(strategy, time.Since(start), ErrorKind(err))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("aggregate.total", int64(total)))
		}
		span.End()
	}
}
