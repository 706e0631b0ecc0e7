package services

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/atomic"

	"archivebot/internal/archiver"
	"archivebot/internal/models"
	"archivebot/internal/providers"
	"archivebot/internal/structures"
)

type ArchiveServiceInterface interface {
	RunBatch(ctx context.Context) *models.BatchResult
	IsRunning() bool
	GetReports() []*models.PageReport
	GetReport(page string) (*models.PageReport, bool)
	GetSnapshot() *models.Snapshot
	PutSnapshot(snap *models.Snapshot)
	LastRun() time.Time
	ReportCount() int
}

// ArchiveService walks the configured pages and runs one archiving
// pass per page. Page failures are isolated: an error or panic on one
// page is reported and the batch moves on.
type ArchiveService struct {
	conf     *structures.Config
	logger   providers.Logger
	client   archiver.PageClient
	stripper *archiver.TimeStripper
	metrics  providers.MetricsProviderInterface
	reports  *models.ReportStore
	running  atomic.Bool
}

func NewArchiveService(conf *structures.Config, logger providers.Logger, client archiver.PageClient, stripper *archiver.TimeStripper, metrics providers.MetricsProviderInterface) ArchiveServiceInterface {
	return &ArchiveService{
		conf:     conf,
		logger:   logger,
		client:   client,
		stripper: stripper,
		metrics:  metrics,
		reports:  models.NewReportStore(),
	}
}

// RunBatch processes every configured page once. Concurrent calls are
// collapsed: if a batch is already running the call returns nil.
func (s *ArchiveService) RunBatch(ctx context.Context) *models.BatchResult {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warnf(providers.TypeRun, "Batch already running, skipping")
		return nil
	}
	defer s.running.Store(false)

	result := &models.BatchResult{Started: time.Now().UTC()}
	s.logger.Infof(providers.TypeRun, "Batch started: %d page(s)", len(s.conf.Bot.Pages))

	for _, page := range s.conf.Bot.Pages {
		if ctx.Err() != nil {
			s.logger.Warnf(providers.TypeRun, "Batch interrupted: %s", ctx.Err())
			break
		}
		report := s.runPage(ctx, page, result.Started)
		s.reports.Put(report)
		result.Pages++
		result.Archived += report.ArchivedThreads
		switch {
		case report.Error != "":
			result.Errors++
			s.metrics.IncPagesProcessed("error")
		case report.Skipped:
			s.metrics.IncPagesProcessed("skipped")
		default:
			s.metrics.IncPagesProcessed("archived")
		}
		s.metrics.AddThreadsArchived(report.ArchivedThreads)
	}

	result.Finished = time.Now().UTC()
	s.reports.SetLastRun(result.Finished)
	s.metrics.ObserveRunDuration(result.Finished.Sub(result.Started))
	s.metrics.SetLastRun(result.Finished)
	s.logger.Infof(providers.TypeRun, "Batch finished: %d page(s), %d thread(s) archived, %d error(s)",
		result.Pages, result.Archived, result.Errors)
	return result
}

func (s *ArchiveService) runPage(ctx context.Context, page string, started time.Time) (report *models.PageReport) {
	report = &models.PageReport{Page: page, Time: started}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf(providers.TypeRun, "Panic on [[%s]]: %v\n%s", page, r, debug.Stack())
			report.Error = "internal error"
		}
	}()

	pa := archiver.New(s.client, s.logger, s.stripper, page, archiver.Options{
		Tpl:   s.conf.Bot.Template,
		Salt:  s.conf.Bot.Salt,
		Force: s.conf.Bot.Force,
		Now:   started,
	})
	res, err := pa.Run(ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeRun, "Failed on [[%s]]: %s", page, err)
		report.Error = err.Error()
		return report
	}

	report.ArchivedThreads = res.ArchivedThreads
	report.RemainingThreads = res.RemainingThreads
	report.Archives = res.Archives
	report.Skipped = res.Skipped
	if res.Skipped {
		s.logger.Infof(providers.TypeRun, "Skipped [[%s]]: %s", page, res.Reason)
	} else {
		s.logger.Infof(providers.TypeRun, "Archived %d thread(s) from [[%s]] to %d archive page(s)",
			res.ArchivedThreads, page, len(res.Archives))
	}
	return report
}

func (s *ArchiveService) IsRunning() bool {
	return s.running.Load()
}

func (s *ArchiveService) GetReports() []*models.PageReport {
	return s.reports.GetAll()
}

func (s *ArchiveService) GetReport(page string) (*models.PageReport, bool) {
	return s.reports.Get(page)
}

func (s *ArchiveService) GetSnapshot() *models.Snapshot {
	return s.reports.GetSnapshot()
}

func (s *ArchiveService) PutSnapshot(snap *models.Snapshot) {
	s.reports.PutSnapshot(snap)
}

func (s *ArchiveService) LastRun() time.Time {
	return s.reports.LastRun()
}

func (s *ArchiveService) ReportCount() int {
	return s.reports.Len()
}
