package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/dustward/campbase/pkg/announcements"
	"github.com/dustward/campbase/pkg/database"
	"github.com/dustward/campbase/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func TestSetupJobs(t *testing.T) {
	db := setupTestDB(t)
	store := ratelimit.NewMemoryStore(5, time.Minute)

	cm := NewCronManager(announcements.NewService(db), []*ratelimit.MemoryStore{store}, nil)
	require.NoError(t, cm.SetupJobs())
	assert.Len(t, cm.cron.Entries(), 2)
}

func TestSetupJobsWithoutSweepers(t *testing.T) {
	db := setupTestDB(t)

	cm := NewCronManager(announcements.NewService(db), nil, nil)
	require.NoError(t, cm.SetupJobs())
	assert.Len(t, cm.cron.Entries(), 1, "only the announcement purge is scheduled")
}

func TestStartStop(t *testing.T) {
	db := setupTestDB(t)

	cm := NewCronManager(announcements.NewService(db), nil, nil)
	require.NoError(t, cm.SetupJobs())

	cm.Start()
	cm.Stop()
}
