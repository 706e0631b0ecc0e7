package bot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivebot/internal/structures"
	"archivebot/internal/testutil"
)

func schedulerFixture(t *testing.T) (*Scheduler, *testutil.MockArchiveService) {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	conf := &structures.Config{
		Bot: structures.BotConfig{Interval: time.Hour},
		Persistence: structures.Persistence{
			FilePath:     filepath.Join(t.TempDir(), "reports.dat"),
			SaveInterval: time.Hour,
		},
	}
	svc := testSnapshotService()
	fm := NewFileManager(compressor, svc, &testutil.MockLogger{})
	s := NewScheduler(conf, &testutil.MockLogger{}, svc, fm).(*Scheduler)
	return s, svc
}

func TestScheduler_RunNow(t *testing.T) {
	s, svc := schedulerFixture(t)
	s.RunNow()
	assert.Equal(t, 1, svc.BatchCalls)
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	s, _ := schedulerFixture(t)
	require.NoError(t, s.Persist())
	require.NoError(t, s.Restore())
}

func TestScheduler_InitAndStop(t *testing.T) {
	s, _ := schedulerFixture(t)
	s.Init()
	s.Stop()
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s, _ := schedulerFixture(t)
	assert.NotPanics(t, s.Stop)
}
