package reading

import "testing"

func TestDatapointValueKinds(t *testing.T) {
	tests := []struct {
		name     string
		value    DatapointValue
		kind     ValueKind
		rendered string
	}{
		{"integer", IntValue(42), KindInt, "42"},
		{"negative integer", IntValue(-7), KindInt, "-7"},
		{"float", FloatValue(21.5), KindFloat, "21.5"},
		{"string", StringValue("celsius"), KindString, "celsius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.Kind() != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, tt.value.Kind())
			}
			if tt.value.String() != tt.rendered {
				t.Fatalf("expected rendering %q, got %q", tt.rendered, tt.value.String())
			}
		})
	}
}

func TestReadingDatapointAccess(t *testing.T) {
	r := New("TI1",
		NewIntDatapoint("temperature", 23),
		NewStringDatapoint("unit", "celsius"))

	if r.AssetName() != "TI1" {
		t.Fatalf("unexpected asset name %q", r.AssetName())
	}
	if r.ID() == "" {
		t.Fatal("expected a non-empty reading ID")
	}
	if dp := r.Datapoint("temperature"); dp == nil || dp.Value.Int() != 23 {
		t.Fatalf("unexpected temperature datapoint: %v", dp)
	}
	if dp := r.Datapoint("missing"); dp != nil {
		t.Fatalf("expected nil for missing datapoint, got %v", dp)
	}
}

func TestReadingReplaceDatapoints(t *testing.T) {
	r := New("TI1", NewIntDatapoint("temperature", 23))

	r.ReplaceDatapoints([]*Datapoint{NewFloatDatapoint("pressure", 1.2)})

	if len(r.Datapoints()) != 1 {
		t.Fatalf("expected 1 datapoint, got %d", len(r.Datapoints()))
	}
	if r.Datapoint("temperature") != nil {
		t.Fatal("old datapoints must not survive a replace")
	}
	if dp := r.Datapoint("pressure"); dp == nil || dp.Value.Float() != 1.2 {
		t.Fatalf("unexpected pressure datapoint: %v", dp)
	}
}

func TestReadingRemoveAllDatapoints(t *testing.T) {
	r := New("TI1", NewIntDatapoint("a", 1), NewIntDatapoint("b", 2))
	r.RemoveAllDatapoints()
	if len(r.Datapoints()) != 0 {
		t.Fatalf("expected no datapoints, got %d", len(r.Datapoints()))
	}
}

func TestSetRemoveAtPreservesOrder(t *testing.T) {
	a, b, c := New("A"), New("B"), New("C")
	s := NewSet(a, b, c)

	s.RemoveAt(1)

	if s.Len() != 2 {
		t.Fatalf("expected 2 readings, got %d", s.Len())
	}
	if s.At(0) != a || s.At(1) != c {
		t.Fatal("remaining readings are out of order after erase")
	}
}

func TestSetIterationWithErase(t *testing.T) {
	s := NewSet(New("A"), New("B"), New("C"), New("D"))

	// Drop every other reading while iterating, the way a filter does.
	drop := true
	for i := 0; i < s.Len(); {
		if drop {
			s.RemoveAt(i)
		} else {
			i++
		}
		drop = !drop
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 readings, got %d", s.Len())
	}
	if s.At(0).AssetName() != "B" || s.At(1).AssetName() != "D" {
		t.Fatalf("unexpected survivors: %s, %s", s.At(0).AssetName(), s.At(1).AssetName())
	}
}
