// Package filter implements the script filter pipeline stage: it runs
// user-supplied JavaScript against every reading of an ingested batch and
// applies the per-record outcome, replacing datapoints, dropping the
// reading, or leaving it untouched when the script fails.
package filter

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wehubfusion/scriptfilter/pkg/reading"
	"github.com/wehubfusion/scriptfilter/pkg/script"
)

// ErrMissingCode indicates that the required 'code' configuration item was
// absent at construction time. This is the only fatal error the filter
// reports to its host; it aborts the pipeline stage setup entirely.
var ErrMissingCode = errors.New("missing required 'code' configuration item")

// OutputFunc forwards a processed batch to the next pipeline stage. It is
// invoked exactly once per ingestion call, in both the passthrough and
// the running path.
type OutputFunc func(batch *reading.Set)

// Filter is the script filter stage. Construct it with New, feed it
// batches with Ingest, and release its engine resources with Shutdown.
type Filter struct {
	name    string
	state   configState
	engine  *script.Engine
	output  OutputFunc
	logger  *zap.Logger
	tracker Tracker
	tracer  trace.Tracer
}

// Option customizes a Filter.
type Option func(*Filter)

// WithLogger sets the structured logger used by the filter.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filter) { f.logger = logger }
}

// WithTracker sets the telemetry sink for asset-tracking tuples.
func WithTracker(tracker Tracker) Option {
	return func(f *Filter) { f.tracker = tracker }
}

// New constructs the filter stage from a configuration category snapshot
// and the output callback of the next stage. It fails with ErrMissingCode
// when the category carries no 'code' item; in that case no handle is
// returned and the stage must not be activated.
//
// The first filter constructed in the process starts the embedded engine
// and becomes its owner for shutdown purposes.
func New(name string, category Category, output OutputFunc, opts ...Option) (*Filter, error) {
	if output == nil {
		return nil, errors.New("output callback cannot be nil")
	}

	f := &Filter{
		name:   name,
		engine: script.NewEngine(),
		output: output,
		tracer: otel.Tracer("scriptfilter/filter"),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger, _ = zap.NewProduction()
	}
	if f.tracker == nil {
		f.tracker = &LogTracker{Logger: f.logger}
	}

	if !category.ItemExists("code") {
		f.logger.Error("filter is missing the 'code' configuration item, aborting filter setup",
			zap.String("filter", f.name),
			zap.String("plugin", PluginName))
		return nil, ErrMissingCode
	}
	f.state.SetCode(category.Value("code"))
	if category.ItemExists("enable") {
		f.state.SetEnabled(category.BoolValue("enable"))
	}

	f.engine.Initialize()

	return f, nil
}

// Ingest processes one batch of readings. When the filter is disabled or
// has no code, the batch passes through untouched. Otherwise every
// reading is executed against the current code under the engine-wide
// lock, held once for the whole batch, with a fresh shared-state mapping
// bound for user code under "user_data".
//
// A misbehaving script never aborts the batch: a failing record is logged
// and forwarded unchanged. The output callback is invoked exactly once,
// unconditionally, with the possibly reduced batch.
func (f *Filter) Ingest(ctx context.Context, batch *reading.Set) {
	_, span := f.tracer.Start(ctx, "filter.Ingest",
		trace.WithAttributes(
			attribute.String("filter.name", f.name),
			attribute.Int("batch.size", batch.Len()),
		))
	defer span.End()

	enabled, code := f.state.Snapshot()
	if !enabled || code == "" {
		f.output(batch)
		return
	}

	f.run(code, batch)
	span.SetAttributes(attribute.Int("batch.forwarded", batch.Len()))

	for _, r := range batch.Readings() {
		f.tracker.Record(f.name, r.AssetName(), TrackingRole)
	}

	f.output(batch)
}

// run executes the code against every reading of the batch and applies
// the per-record outcomes in place.
func (f *Filter) run(code string, batch *reading.Set) {
	guard := f.engine.Acquire()
	defer guard.Release()

	if guard.Runtime() == nil {
		f.logger.Error("embedded engine is not running, forwarding batch untouched",
			zap.String("filter", f.name))
		return
	}

	session := script.NewSession(code)

	// Fresh shared state for this batch. User code accumulates values in
	// it across records; it never survives into the next ingestion call.
	userData := map[string]interface{}{}
	if err := guard.SetGlobal(script.SharedStateKey, userData); err != nil {
		f.logger.Error("failed to bind shared state into engine globals",
			zap.String("filter", f.name),
			zap.Error(err))
		return
	}
	defer func() {
		if err := guard.DeleteGlobal(script.SharedStateKey); err != nil {
			f.logger.Warn("failed to unbind shared state from engine globals",
				zap.String("filter", f.name),
				zap.Error(err))
		}
	}()

	for i := 0; i < batch.Len(); {
		r := batch.At(i)
		outcome := session.Run(guard, r.Datapoints())

		switch outcome.Kind() {
		case script.OutcomeReplace:
			r.ReplaceDatapoints(outcome.Points())
			i++
		case script.OutcomeDrop:
			batch.RemoveAt(i)
		case script.OutcomeFailed:
			f.logger.Error("script execution failed",
				zap.String("filter", f.name),
				zap.String("code", code),
				zap.String("error", outcome.Err().Error()))
			i++
		}
	}
}

// Reconfigure applies a raw configuration category blob. The enable flag
// and the code string are updated if present; changes take effect on the
// next ingestion call.
func (f *Filter) Reconfigure(raw string) error {
	category, err := ParseCategory(raw)
	if err != nil {
		return err
	}

	if category.ItemExists("code") {
		f.state.SetCode(category.Value("code"))
	}
	if category.ItemExists("enable") {
		f.state.SetEnabled(category.BoolValue("enable"))
	}
	return nil
}

// Shutdown releases the filter's engine resources. The filter that
// originally started the embedded engine finalizes it; any other filter
// leaves the shared engine running.
func (f *Filter) Shutdown() {
	f.engine.Shutdown()
}

// Name returns the configured stage name.
func (f *Filter) Name() string { return f.name }
