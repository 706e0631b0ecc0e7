package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"archivebot/internal/archiver"
	"archivebot/internal/models"
	"archivebot/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockPageClient implements archiver.PageClient against an in-memory
// page map. Absent titles behave like missing wiki pages.
type MockPageClient struct {
	mu    sync.Mutex
	Pages map[string]string
	Saves []SaveCall
	// FailGets maps titles to errors returned from GetPageText.
	FailGets map[string]error
	// FailSaves maps titles to errors returned from SavePage.
	FailSaves map[string]error
}

type SaveCall struct {
	Title   string
	Text    string
	Summary string
}

func NewMockPageClient() *MockPageClient {
	return &MockPageClient{Pages: make(map[string]string)}
}

func (m *MockPageClient) GetPageText(_ context.Context, title string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailGets[title]; ok {
		return "", err
	}
	text, ok := m.Pages[title]
	if !ok {
		return "", fmt.Errorf("[[%s]]: %w", title, archiver.ErrPageNotFound)
	}
	return text, nil
}

func (m *MockPageClient) PageExists(_ context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Pages[title]
	return ok, nil
}

func (m *MockPageClient) SavePage(_ context.Context, title, text, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailSaves[title]; ok {
		return err
	}
	m.Pages[title] = text
	m.Saves = append(m.Saves, SaveCall{Title: title, Text: text, Summary: summary})
	return nil
}

// SaveTitles returns the titles saved so far, in save order.
func (m *MockPageClient) SaveTitles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Saves))
	for i, s := range m.Saves {
		out[i] = s.Title
	}
	return out
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	CacheHits       int
	CacheMisses     int
	PagesProcessed  map[string]int
	ThreadsArchived int
	RunsObserved    int
	APIRequests     map[string]int
	APIErrors       map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		PagesProcessed: make(map[string]int),
		APIRequests:    make(map[string]int),
		APIErrors:      make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncPagesProcessed(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesProcessed[result]++
}

func (m *MockMetrics) AddThreadsArchived(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ThreadsArchived += count
}

func (m *MockMetrics) ObserveRunDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsObserved++
}

func (m *MockMetrics) SetLastRun(_ time.Time) {}

func (m *MockMetrics) IncAPIRequests(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APIRequests[action]++
}

func (m *MockMetrics) IncAPIErrors(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APIErrors[action]++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockScheduler records SchedulerInterface calls.
type MockScheduler struct {
	mu       sync.Mutex
	InitN    int
	StopN    int
	RestoreN int
	PersistN int
	RunNowN  int
}

func (m *MockScheduler) Init()    { m.mu.Lock(); defer m.mu.Unlock(); m.InitN++ }
func (m *MockScheduler) Stop()    { m.mu.Lock(); defer m.mu.Unlock(); m.StopN++ }
func (m *MockScheduler) RunNow()  { m.mu.Lock(); defer m.mu.Unlock(); m.RunNowN++ }
func (m *MockScheduler) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreN++
	return nil
}
func (m *MockScheduler) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistN++
	return nil
}

// RunNowCalls reads the RunNow counter safely from another goroutine.
func (m *MockScheduler) RunNowCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RunNowN
}

// MockArchiveService implements services.ArchiveServiceInterface with
// canned data for controller tests.
type MockArchiveService struct {
	mu          sync.Mutex
	Running     bool
	Reports     []*models.PageReport
	LastRunTime time.Time
	BatchCalls  int
	Snapshots   []*models.Snapshot
}

func (m *MockArchiveService) RunBatch(_ context.Context) *models.BatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchCalls++
	return &models.BatchResult{Pages: len(m.Reports)}
}

func (m *MockArchiveService) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Running
}

func (m *MockArchiveService) GetReports() []*models.PageReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reports
}

func (m *MockArchiveService) GetReport(page string) (*models.PageReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Reports {
		if r.Page == page {
			return r, true
		}
	}
	return nil, false
}

func (m *MockArchiveService) GetSnapshot() *models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	reports := make(map[string]*models.PageReport, len(m.Reports))
	for _, r := range m.Reports {
		reports[r.Page] = r
	}
	return &models.Snapshot{Reports: reports, LastRun: m.LastRunTime}
}

func (m *MockArchiveService) PutSnapshot(snap *models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = append(m.Snapshots, snap)
	for _, r := range snap.Reports {
		m.Reports = append(m.Reports, r)
	}
	m.LastRunTime = snap.LastRun
}

func (m *MockArchiveService) LastRun() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastRunTime
}

func (m *MockArchiveService) ReportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}
