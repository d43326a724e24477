package stats

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	storage, err := NewStorage(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return storage
}

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()
	storage := newTestStorage(t, tempDir)

	t.Run("RecordAudit", func(t *testing.T) {
		storage.RecordAudit(200*time.Millisecond, false)
		storage.RecordAudit(400*time.Millisecond, true)

		m := storage.CurrentMonth()
		assert.Equal(t, 2, m.AuditsCompleted)
		assert.Equal(t, 1, m.AuditErrors)
		assert.InDelta(t, 300, m.AverageDurationMs(), 0.001)
	})

	t.Run("RecordCache", func(t *testing.T) {
		storage.RecordCache(true)
		storage.RecordCache(false)
		storage.RecordCache(false)

		m := storage.CurrentMonth()
		assert.Equal(t, 1, m.CacheHits)
		assert.Equal(t, 2, m.CacheMisses)
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.save()

		reloaded := newTestStorage(t, tempDir)
		m := reloaded.CurrentMonth()
		assert.Equal(t, 2, m.AuditsCompleted)
		assert.Equal(t, 1, m.CacheHits)
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.mu.Lock()
		storage.months[oldMonth] = &MonthlyStats{AuditsCompleted: 100}
		storage.mu.Unlock()

		storage.Cleanup()

		_, ok := storage.Month(oldMonth)
		assert.False(t, ok, "stats older than one month should be dropped")
	})

	t.Run("Months", func(t *testing.T) {
		months := storage.Months()
		require.NotEmpty(t, months)
		assert.Equal(t, time.Now().Format("2006-01"), months[0])
	})
}

func TestStorageConcurrentAccess(t *testing.T) {
	storage := newTestStorage(t, t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				storage.RecordAudit(time.Millisecond, false)
				storage.RecordCache(j%2 == 0)
				storage.CurrentMonth()
			}
		}()
	}
	wg.Wait()

	m := storage.CurrentMonth()
	assert.Equal(t, 1000, m.AuditsCompleted)
	assert.Equal(t, 1000, m.CacheHits+m.CacheMisses)
}
