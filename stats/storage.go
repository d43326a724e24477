// Package stats keeps month-bucketed service usage counters with
// periodic JSON persistence. Counters are best-effort: a lost write
// costs some numbers, never a request.
package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats are the usage counters for one calendar month.
type MonthlyStats struct {
	AuditsCompleted int       `json:"audits_completed"`
	AuditErrors     int       `json:"audit_errors"`
	CacheHits       int       `json:"cache_hits"`
	CacheMisses     int       `json:"cache_misses"`
	TotalDurationMs int64     `json:"total_duration_ms"`
	LastUpdated     time.Time `json:"last_updated"`
}

// AverageDurationMs is the mean audit duration for the month.
func (m MonthlyStats) AverageDurationMs() float64 {
	if m.AuditsCompleted == 0 {
		return 0
	}
	return float64(m.TotalDurationMs) / float64(m.AuditsCompleted)
}

// Storage accumulates monthly counters and flushes them to disk, keyed
// by "YYYY-MM". Safe for concurrent use.
type Storage struct {
	mu          sync.RWMutex
	months      map[string]*MonthlyStats
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	logger      *slog.Logger
}

// NewStorage opens (or creates) the stats file under dataDir and starts
// the background writer.
func NewStorage(dataDir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Storage{
		months:      make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		logger:      logger,
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	go s.backgroundWriter()
	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Unmarshal(data, &s.months)
}

func (s *Storage) save() {
	s.mu.RLock()
	data, err := json.Marshal(s.months)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("encoding stats failed", "error", err)
		return
	}

	// Write-then-rename keeps the file readable if the process dies
	// mid-write.
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		s.logger.Warn("writing stats failed", "error", err)
		return
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		s.logger.Warn("renaming stats file failed", "error", err)
	}
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

func (s *Storage) bucket() *MonthlyStats {
	month := currentMonth()
	m, ok := s.months[month]
	if !ok {
		m = &MonthlyStats{}
		s.months[month] = m
	}
	return m
}

// RecordAudit records one finished audit request.
func (s *Storage) RecordAudit(duration time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.bucket()
	m.AuditsCompleted++
	if failed {
		m.AuditErrors++
	}
	m.TotalDurationMs += duration.Milliseconds()
	m.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// RecordCache records one cache lookup outcome.
func (s *Storage) RecordCache(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.bucket()
	if hit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
	m.LastUpdated = time.Now()
}

// CurrentMonth returns the counters for the current month.
func (s *Storage) CurrentMonth() MonthlyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.months[currentMonth()]; ok {
		return *m
	}
	return MonthlyStats{}
}

// Month returns the counters for a specific "YYYY-MM" key.
func (s *Storage) Month(yearMonth string) (MonthlyStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.months[yearMonth]; ok {
		return *m, true
	}
	return MonthlyStats{}, false
}

// Months returns all tracked month keys, newest first.
func (s *Storage) Months() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	months := make([]string, 0, len(s.months))
	for month := range s.months {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Cleanup drops every month except the current and previous one.
func (s *Storage) Cleanup() {
	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mu.Lock()
	for key := range s.months {
		if key != current && key != previous {
			delete(s.months, key)
		}
	}
	s.mu.Unlock()

	s.requestWrite()
}
