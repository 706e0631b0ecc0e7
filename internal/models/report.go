package models

import (
	"sort"
	"sync"
	"time"
)

// PageReport records the outcome of one archiving pass over one page.
type PageReport struct {
	Page             string    `json:"page"`
	Time             time.Time `json:"time"`
	ArchivedThreads  int       `json:"archived_threads"`
	RemainingThreads int       `json:"remaining_threads"`
	Archives         []string  `json:"archives,omitempty"`
	Skipped          bool      `json:"skipped,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// BatchResult summarizes one full run over all configured pages.
type BatchResult struct {
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Pages    int       `json:"pages"`
	Archived int       `json:"archived"`
	Errors   int       `json:"errors"`
}

// Snapshot is the on-disk shape of the report store.
type Snapshot struct {
	Reports map[string]*PageReport `json:"reports"`
	LastRun time.Time              `json:"last_run"`
}

// ReportStore keeps the latest report per page.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*PageReport
	lastRun time.Time
}

func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]*PageReport),
	}
}

func (rs *ReportStore) Put(report *PageReport) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.reports[report.Page] = report
}

func (rs *ReportStore) Get(page string) (*PageReport, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	r, ok := rs.reports[page]
	return r, ok
}

// GetAll returns reports sorted by page title for stable output.
func (rs *ReportStore) GetAll() []*PageReport {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]*PageReport, 0, len(rs.reports))
	for _, r := range rs.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out
}

func (rs *ReportStore) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.reports)
}

func (rs *ReportStore) SetLastRun(t time.Time) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.lastRun = t
}

func (rs *ReportStore) LastRun() time.Time {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastRun
}

func (rs *ReportStore) GetSnapshot() *Snapshot {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reports := make(map[string]*PageReport, len(rs.reports))
	for page, r := range rs.reports {
		cp := *r
		reports[page] = &cp
	}
	return &Snapshot{Reports: reports, LastRun: rs.lastRun}
}

func (rs *ReportStore) PutSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if snap.Reports != nil {
		rs.reports = snap.Reports
	}
	rs.lastRun = snap.LastRun
}
