package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivebot/internal/archiver"
	"archivebot/internal/structures"
	"archivebot/internal/testutil"
	"archivebot/internal/wiki"
)

func serviceConfig(pages ...string) *structures.Config {
	return &structures.Config{
		Wiki: structures.WikiConfig{Lang: "en"},
		Bot: structures.BotConfig{
			Pages:    pages,
			Template: "User:ArchiveBot/config",
			Interval: time.Hour,
		},
	}
}

func serviceStripper(t *testing.T, conf *structures.Config) *archiver.TimeStripper {
	t.Helper()
	st, err := wiki.NewTimeStripper(conf)
	require.NoError(t, err)
	return st
}

func archivablePage(title string) string {
	return "{{User:ArchiveBot/config\n" +
		"|archive = " + title + "/Archive %(counter)d\n" +
		"|algo = old(30d)\n" +
		"|minthreadsleft = 0\n" +
		"|minthreadstoarchive = 1\n" +
		"}}\n\n" +
		"== Old ==\nStale. 12:35, 10 March 2010 (UTC)\n\n" +
		"== Fresh ==\nNew. " + time.Now().UTC().Format("15:04, 2 January 2006") + " (UTC)\n"
}

func TestRunBatch_ArchivesAndReports(t *testing.T) {
	conf := serviceConfig("Talk:A", "Talk:B")
	client := testutil.NewMockPageClient()
	client.Pages["Talk:A"] = archivablePage("Talk:A")
	client.Pages["Talk:B"] = archivablePage("Talk:B")
	metrics := testutil.NewMockMetrics()

	svc := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), metrics)
	result := svc.RunBatch(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 2, result.Archived)
	assert.Zero(t, result.Errors)

	reports := svc.GetReports()
	require.Len(t, reports, 2)
	assert.Equal(t, "Talk:A", reports[0].Page)
	assert.Equal(t, 1, reports[0].ArchivedThreads)
	assert.Empty(t, reports[0].Error)

	assert.Equal(t, 2, metrics.PagesProcessed["archived"])
	assert.Equal(t, 2, metrics.ThreadsArchived)
	assert.Equal(t, 1, metrics.RunsObserved)
	assert.False(t, svc.LastRun().IsZero())
	assert.False(t, svc.IsRunning())
}

func TestRunBatch_PageErrorDoesNotStopBatch(t *testing.T) {
	conf := serviceConfig("Talk:Broken", "Talk:Good")
	client := testutil.NewMockPageClient()
	// Talk:Broken has no configuration template at all.
	client.Pages["Talk:Broken"] = "== Thread ==\njust text\n"
	client.Pages["Talk:Good"] = archivablePage("Talk:Good")
	metrics := testutil.NewMockMetrics()

	svc := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), metrics)
	result := svc.RunBatch(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 1, result.Errors)

	broken, ok := svc.GetReport("Talk:Broken")
	require.True(t, ok)
	assert.NotEmpty(t, broken.Error)

	good, ok := svc.GetReport("Talk:Good")
	require.True(t, ok)
	assert.Empty(t, good.Error)
	assert.Equal(t, 1, good.ArchivedThreads)

	assert.Equal(t, 1, metrics.PagesProcessed["error"])
	assert.Equal(t, 1, metrics.PagesProcessed["archived"])
}

func TestRunBatch_SkippedPage(t *testing.T) {
	conf := serviceConfig("Talk:Quiet")
	client := testutil.NewMockPageClient()
	client.Pages["Talk:Quiet"] = strings.Replace(
		archivablePage("Talk:Quiet"),
		"|minthreadstoarchive = 1",
		"|minthreadstoarchive = 5",
		1,
	)
	metrics := testutil.NewMockMetrics()

	svc := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), metrics)
	result := svc.RunBatch(context.Background())

	require.NotNil(t, result)
	report, ok := svc.GetReport("Talk:Quiet")
	require.True(t, ok)
	assert.True(t, report.Skipped)
	assert.Equal(t, 1, metrics.PagesProcessed["skipped"])
}

func TestRunBatch_CancelledContext(t *testing.T) {
	conf := serviceConfig("Talk:A", "Talk:B")
	client := testutil.NewMockPageClient()
	client.Pages["Talk:A"] = archivablePage("Talk:A")
	client.Pages["Talk:B"] = archivablePage("Talk:B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), testutil.NewMockMetrics())
	result := svc.RunBatch(ctx)

	require.NotNil(t, result)
	assert.Zero(t, result.Pages)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	conf := serviceConfig("Talk:A")
	client := testutil.NewMockPageClient()
	client.Pages["Talk:A"] = archivablePage("Talk:A")

	svc := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), testutil.NewMockMetrics())
	svc.RunBatch(context.Background())

	snap := svc.GetSnapshot()
	require.NotNil(t, snap)

	restored := NewArchiveService(conf, &testutil.MockLogger{}, client, serviceStripper(t, conf), testutil.NewMockMetrics())
	restored.PutSnapshot(snap)
	assert.Equal(t, svc.ReportCount(), restored.ReportCount())
	assert.True(t, restored.LastRun().Equal(svc.LastRun()))
}
