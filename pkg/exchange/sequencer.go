package exchange

import "sync/atomic"

// Sequencer issues order ids: strictly increasing from 1, shared across all
// symbols, safe for concurrent submissions.
type Sequencer struct {
	last atomic.Int64
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

func (s *Sequencer) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently issued id, 0 if none.
func (s *Sequencer) Last() int64 {
	return s.last.Load()
}
