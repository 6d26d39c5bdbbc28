package reading

// Set is the batch container handed to a filter stage on each ingestion
// call. It supports stable index iteration with in-place erase, which is
// what a filter needs to drop readings while walking the batch.
//
// A Set is not safe for concurrent use; the host pipeline drives each
// ingestion call synchronously.
type Set struct {
	readings []*Reading
}

// NewSet creates a batch containing the supplied readings.
func NewSet(readings ...*Reading) *Set {
	return &Set{readings: readings}
}

// Append adds readings to the end of the batch.
func (s *Set) Append(readings ...*Reading) {
	s.readings = append(s.readings, readings...)
}

// Len returns the number of readings currently in the batch.
func (s *Set) Len() int { return len(s.readings) }

// At returns the reading at index i.
func (s *Set) At(i int) *Reading { return s.readings[i] }

// RemoveAt erases the reading at index i, preserving the order of the
// remaining readings. Iteration code that removes the current reading
// must not advance its index afterwards.
func (s *Set) RemoveAt(i int) {
	s.readings = append(s.readings[:i], s.readings[i+1:]...)
}

// Readings returns the underlying reading slice.
func (s *Set) Readings() []*Reading { return s.readings }
