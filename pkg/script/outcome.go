package script

import "github.com/wehubfusion/scriptfilter/pkg/reading"

// OutcomeKind classifies the result of executing user code on one record.
type OutcomeKind int

const (
	// OutcomeReplace means the record survives with a new datapoint set.
	OutcomeReplace OutcomeKind = iota
	// OutcomeDrop means the record should be removed from the batch.
	OutcomeDrop
	// OutcomeFailed means user code failed; the record is left untouched.
	OutcomeFailed
)

// Outcome is the per-record result of one execution session. Exactly one
// variant applies, selected by Kind.
type Outcome struct {
	kind   OutcomeKind
	points []*reading.Datapoint
	err    *ScriptError
}

// Replace builds an outcome that swaps the record's datapoints.
func Replace(points []*reading.Datapoint) Outcome {
	return Outcome{kind: OutcomeReplace, points: points}
}

// Drop builds an outcome that removes the record from the batch.
func Drop() Outcome {
	return Outcome{kind: OutcomeDrop}
}

// Failed builds an outcome recording a contained execution error.
func Failed(err *ScriptError) Outcome {
	return Outcome{kind: OutcomeFailed, err: err}
}

// Kind reports which variant this outcome is.
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Points returns the replacement datapoints of a Replace outcome.
func (o Outcome) Points() []*reading.Datapoint { return o.points }

// Err returns the contained error of a Failed outcome.
func (o Outcome) Err() *ScriptError { return o.err }
