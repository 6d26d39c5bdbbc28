package filter

import "go.uber.org/zap"

// TrackingRole is the role recorded for every reading that passes through
// a filter stage.
const TrackingRole = "Filter"

// Tracker is the telemetry sink for asset-tracking tuples. One tuple is
// recorded per surviving reading per ingestion call.
type Tracker interface {
	Record(service, asset, event string)
}

// LogTracker records asset-tracking tuples to a structured log. It is the
// default sink when no external tracker is configured.
type LogTracker struct {
	Logger *zap.Logger
}

// Record implements the Tracker interface.
func (t *LogTracker) Record(service, asset, event string) {
	t.Logger.Debug("asset tracking tuple",
		zap.String("service", service),
		zap.String("asset", asset),
		zap.String("event", event))
}

// NopTracker discards asset-tracking tuples.
type NopTracker struct{}

// Record implements the Tracker interface.
func (NopTracker) Record(service, asset, event string) {}
