package presence

import "sync/atomic"

// Sequencer hands out animation sequence numbers.
type Sequencer interface {
	Next() int64
}

// Counter is a monotonic Sequencer safe for concurrent use.
type Counter struct {
	seq atomic.Int64
}

// NewCounter creates a counter starting at 0. The first Next returns 1.
func NewCounter() *Counter {
	return &Counter{}
}

// NewCounterAt creates a counter whose next value is start+1. Used when
// restoring sets whose records already carry sequence numbers.
func NewCounterAt(start int64) *Counter {
	c := &Counter{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Counter) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Counter) Current() int64 {
	return c.seq.Load()
}

// nextSeq narrows a sequencer value to the record width. Values wrap past
// math.MaxInt32 as viewers expect.
func nextSeq(s Sequencer) int32 {
	return int32(s.Next())
}
