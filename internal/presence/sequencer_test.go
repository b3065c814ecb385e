package presence

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Monotonic(t *testing.T) {
	c := NewCounter()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestCounter_At(t *testing.T) {
	c := NewCounterAt(41)
	assert.Equal(t, int64(42), c.Next())
}

func TestCounter_Concurrent(t *testing.T) {
	c := NewCounter()
	var wg sync.WaitGroup
	seen := make([]int64, 100)
	for i := range seen {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seen[i] = c.Next()
		}(i)
	}
	wg.Wait()

	unique := make(map[int64]bool)
	for _, v := range seen {
		unique[v] = true
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, int64(100), c.Current())
}

func TestNextSeq_Wraps(t *testing.T) {
	c := NewCounterAt(math.MaxInt32)
	assert.Equal(t, int32(math.MinInt32), nextSeq(c))
}
