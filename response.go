package mameduino

import (
	"bytes"
	"time"
)

// Response markers. The NOK form comes from older firmware and is checked
// before OK because it ends in the same three bytes.
var (
	markerOK     = []byte("OK\n")
	markerNK     = []byte("NK\n")
	markerLegacy = []byte("NOK\n")
)

// ScanState is where a ResponseScanner stands
type ScanState int

const (
	ScanAccumulating ScanState = iota
	ScanAccepted
	ScanRejected
	ScanTimedOut
)

func (s ScanState) String() string {
	switch s {
	case ScanAccumulating:
		return "accumulating"
	case ScanAccepted:
		return "accepted"
	case ScanRejected:
		return "rejected"
	case ScanTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Done reports whether the state is terminal
func (s ScanState) Done() bool {
	return s != ScanAccumulating
}

// ResponseScanner accumulates device output until a marker is seen or the
// wait budget runs out. Once terminal, further input is ignored.
type ResponseScanner struct {
	buf     bytes.Buffer
	budget  time.Duration
	waited  time.Duration
	state   ScanState
	infoLen int
}

// NewResponseScanner returns a scanner that times out after budget of waiting
func NewResponseScanner(budget time.Duration) *ResponseScanner {
	return &ResponseScanner{budget: budget}
}

// Write appends device output and checks the trailing marker
func (s *ResponseScanner) Write(p []byte) (int, error) {
	if s.state.Done() {
		return len(p), nil
	}
	s.buf.Write(p)

	data := s.buf.Bytes()
	switch {
	case bytes.HasSuffix(data, markerLegacy):
		s.finish(ScanRejected, len(data)-len(markerLegacy))
	case bytes.HasSuffix(data, markerNK):
		s.finish(ScanRejected, len(data)-len(markerNK))
	case bytes.HasSuffix(data, markerOK):
		s.finish(ScanAccepted, len(data)-len(markerOK))
	}
	return len(p), nil
}

// Wait records d of waiting and times out once the budget is used up
func (s *ResponseScanner) Wait(d time.Duration) ScanState {
	if s.state.Done() {
		return s.state
	}
	s.waited += d
	if s.waited >= s.budget {
		s.finish(ScanTimedOut, s.buf.Len())
	}
	return s.state
}

func (s *ResponseScanner) finish(state ScanState, infoLen int) {
	s.state = state
	s.infoLen = infoLen
}

// State returns the current scanner state
func (s *ResponseScanner) State() ScanState {
	return s.state
}

// Info returns the bytes received before the marker, or everything received
// so far while no marker has been seen
func (s *ResponseScanner) Info() []byte {
	if !s.state.Done() {
		return s.buf.Bytes()
	}
	return s.buf.Bytes()[:s.infoLen]
}

// Raw returns everything received, marker included
func (s *ResponseScanner) Raw() []byte {
	return s.buf.Bytes()
}
