// Package reading defines the sensor record model carried through the
// pipeline: readings, their scalar datapoints, and the batch container a
// filter stage receives on each ingestion call.
package reading

import (
	"time"

	"github.com/google/uuid"
)

// Reading is one timestamped sensor record: an asset name plus a set of
// named datapoints. A Reading is owned by the Set that carries it for the
// duration of one ingestion call and may be mutated in place by a filter.
type Reading struct {
	id        string
	asset     string
	timestamp time.Time
	points    []*Datapoint
}

// New creates a reading for the named asset with the supplied datapoints.
// The reading is stamped with the current time and a fresh ID.
func New(asset string, points ...*Datapoint) *Reading {
	return &Reading{
		id:        uuid.NewString(),
		asset:     asset,
		timestamp: time.Now().UTC(),
		points:    points,
	}
}

// ID returns the reading's unique identifier.
func (r *Reading) ID() string { return r.id }

// AssetName returns the asset this reading was collected from.
func (r *Reading) AssetName() string { return r.asset }

// Timestamp returns the time the reading was created.
func (r *Reading) Timestamp() time.Time { return r.timestamp }

// Datapoints returns the reading's datapoints. The slice is owned by the
// reading; callers must not retain it across mutations.
func (r *Reading) Datapoints() []*Datapoint { return r.points }

// Datapoint returns the named datapoint, or nil if absent.
func (r *Reading) Datapoint(name string) *Datapoint {
	for _, dp := range r.points {
		if dp.Name == name {
			return dp
		}
	}
	return nil
}

// AddDatapoint appends a datapoint to the reading.
func (r *Reading) AddDatapoint(dp *Datapoint) {
	r.points = append(r.points, dp)
}

// RemoveAllDatapoints discards every datapoint in the reading.
func (r *Reading) RemoveAllDatapoints() {
	r.points = nil
}

// ReplaceDatapoints swaps the reading's datapoint set for a new one. The
// previous set is discarded entirely; there is no partial merge.
func (r *Reading) ReplaceDatapoints(points []*Datapoint) {
	r.points = points
}
