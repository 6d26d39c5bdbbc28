package filter

import "sync"

// configState holds the enable flag and the current code string. Both can
// be read at the top of an ingestion call while a reconfiguration writes
// them from another goroutine, so every access goes through one mutex.
// The mutex is independent of the engine-wide lock: a code change takes
// effect on the next ingestion call, never the in-flight one.
type configState struct {
	mu      sync.Mutex
	enabled bool
	code    string
}

// SetEnabled updates the enable flag.
func (s *configState) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// SetCode updates the code string.
func (s *configState) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}

// Enabled reports the enable flag.
func (s *configState) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Code returns the current code string.
func (s *configState) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Snapshot returns both items under a single lock acquisition, so an
// ingestion call sees a consistent pair.
func (s *configState) Snapshot() (enabled bool, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled, s.code
}
