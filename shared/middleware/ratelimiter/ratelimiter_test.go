package ratelimiter

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(rate, capacity float64, expiration time.Duration) (*Limiter, *clock) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	l := New(rate, capacity, expiration)
	l.mu.Lock()
	l.now = c.now
	l.mu.Unlock()
	return l, c
}

func TestAllow_DeniesAfterCapacity(t *testing.T) {
	l, _ := newTestLimiter(1, 3, time.Hour)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d", i)
	}
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestAllow_Refills(t *testing.T) {
	l, c := newTestLimiter(2, 1, time.Hour)
	defer l.Stop()

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	c.advance(500 * time.Millisecond)
	assert.True(t, l.Allow("a"))

	c.advance(time.Hour / 2)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "refill must not exceed capacity")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 1, time.Hour)
	defer l.Stop()

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.False(t, l.Allow("a"))
	assert.Equal(t, 2, l.Len())
}

func TestSweep_DropsIdleBuckets(t *testing.T) {
	l, c := newTestLimiter(1, 1, time.Minute)
	defer l.Stop()

	l.Allow("old")
	c.advance(2 * time.Minute)
	l.Allow("fresh")

	l.sweep()

	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Allow("old"), "a dropped client starts with a full bucket")
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(0, 100, time.Hour)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if l.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
	assert.True(t, l.Allow(fmt.Sprintf("other-%d", 1)))
}

func TestStop_Idempotent(t *testing.T) {
	l := New(1, 1, time.Millisecond)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
