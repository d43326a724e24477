package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-audit/backend/analyzer"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "https://example.it_milano", Key("https://example.it", "Milano"))
	assert.Equal(t, Key("HTTPS://EXAMPLE.IT", "MILANO"), Key("https://example.it", "milano"))
}

func TestGetSet(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	key := Key("https://example.it", "Roma")
	assert.Nil(t, c.Get(key))

	result := &analyzer.AnalysisResult{ID: "abc", URL: "https://example.it"}
	c.Set(key, result)

	got := c.Get(key)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.ID)
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	defer c.Close()

	key := Key("https://example.it", "")
	c.Set(key, &analyzer.AnalysisResult{ID: "x"})
	time.Sleep(30 * time.Millisecond)

	assert.Nil(t, c.Get(key), "expired entries read as misses")
}

func TestLocationIsPartOfTheKey(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set(Key("https://example.it", "Milano"), &analyzer.AnalysisResult{ID: "milano"})
	c.Set(Key("https://example.it", "Torino"), &analyzer.AnalysisResult{ID: "torino"})

	assert.Equal(t, "milano", c.Get(Key("https://example.it", "Milano")).ID)
	assert.Equal(t, "torino", c.Get(Key("https://example.it", "Torino")).ID)
}

func TestExpiryNeverDropsFreshEntry(t *testing.T) {
	c := New(20 * time.Millisecond)
	defer c.Close()

	key := Key("https://example.it", "Roma")

	// A reader hammering an expiring key must never evict an entry a
	// concurrent Set just wrote.
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				c.Get(key)
			}
		}
	}()

	for i := 0; i < 25; i++ {
		c.Set(key, &analyzer.AnalysisResult{ID: "fresh"})
		require.NotNil(t, c.Get(key), "just-written entry evicted by a concurrent expiry check")
		time.Sleep(25 * time.Millisecond)
	}
	close(done)
}

func TestStats(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	key := Key("https://example.it", "Bari")
	c.Get(key)
	c.Set(key, &analyzer.AnalysisResult{ID: "y"})
	c.Get(key)
	c.Get(key)

	hits, misses, size := c.Stats()
	assert.EqualValues(t, 2, hits)
	assert.EqualValues(t, 1, misses)
	assert.Equal(t, 1, size)
}
