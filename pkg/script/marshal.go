package script

import (
	"github.com/wehubfusion/scriptfilter/pkg/reading"
)

// Pack converts a reading's datapoints into the mapping handed to user
// code. Integer and float datapoints keep their native types; anything
// else is rendered as a string. The result is a fresh, independent copy;
// no ownership of the datapoints is taken.
func Pack(points []*reading.Datapoint) map[string]interface{} {
	m := make(map[string]interface{}, len(points))
	for _, dp := range points {
		switch dp.Value.Kind() {
		case reading.KindInt:
			m[dp.Name] = dp.Value.Int()
		case reading.KindFloat:
			m[dp.Name] = dp.Value.Float()
		default:
			m[dp.Name] = dp.Value.String()
		}
	}
	return m
}

// Unpack converts a mapping produced by user code back into datapoints.
// The second return value reports whether the input was a usable mapping
// at all: a nil or empty mapping means the record should be dropped.
//
// Only the three scalar types survive the trip back. Entries carrying any
// other type are skipped and the remaining entries are still processed.
func Unpack(result map[string]interface{}) ([]*reading.Datapoint, bool) {
	if len(result) == 0 {
		return nil, false
	}

	points := make([]*reading.Datapoint, 0, len(result))
	for name, value := range result {
		switch v := value.(type) {
		case int64:
			points = append(points, reading.NewIntDatapoint(name, v))
		case float64:
			points = append(points, reading.NewFloatDatapoint(name, v))
		case string:
			points = append(points, reading.NewStringDatapoint(name, v))
		}
	}

	if len(points) == 0 {
		return nil, false
	}
	return points, true
}
