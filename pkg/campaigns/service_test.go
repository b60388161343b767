package campaigns

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dustward/campbase/pkg/database"
	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-cache memory DB so gorm's pooled connections all see
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func strPtr(s string) *string { return &s }

func TestCreate_DuplicateCaseRef(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "FB Spring", CaseRef: "fb-spring", Channel: models.ChannelFacebook,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.CreateCampaignRequest{
		Name: "FB Spring Again", CaseRef: "fb-spring", Channel: models.ChannelFacebook,
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestCreate_LaunchedStampsTimestamp(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	launched, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "IG", CaseRef: "ig-1", Channel: models.ChannelInstagram, Launched: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, launched.LaunchedAt)

	draft, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "Reddit", CaseRef: "rd-1", Channel: models.ChannelReddit,
	})
	require.NoError(t, err)
	assert.Nil(t, draft.LaunchedAt)
	assert.True(t, draft.Active)
}

func TestUpdate_PartialFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "Flyer", CaseRef: "flyer-1", Channel: models.ChannelFlyer,
	})
	require.NoError(t, err)

	active := false
	_, err = svc.Update(ctx, models.UpdateCampaignRequest{
		ID:     created.ID,
		Name:   strPtr("Flyer v2"),
		Active: &active,
	})
	require.NoError(t, err)

	var got models.Campaign
	require.NoError(t, db.First(&got, created.ID).Error)
	assert.Equal(t, "Flyer v2", got.Name)
	assert.False(t, got.Active)
	assert.Equal(t, "flyer-1", got.CaseRef, "case ref never changes")
	assert.Nil(t, got.LaunchedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, err := svc.Update(context.Background(), models.UpdateCampaignRequest{ID: 999})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestRecordClick(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "FB", CaseRef: "fb-1", Channel: models.ChannelFacebook,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordClick(ctx, "fb-1"))
	require.NoError(t, svc.RecordClick(ctx, "fb-1"))

	var count int64
	db.Model(&models.CampaignClick{}).Where("campaign_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRecordClick_UnknownRefWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	err := svc.RecordClick(context.Background(), "no-such-ref")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	var count int64
	db.Model(&models.CampaignClick{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordClick_BlankRef(t *testing.T) {
	svc := NewService(setupTestDB(t))

	err := svc.RecordClick(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestComputeFunnels(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	campaign, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "FB Spring", CaseRef: "fb-spring", Channel: models.ChannelFacebook,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordClick(ctx, "fb-spring"))
	}

	require.NoError(t, db.Create(&models.Recruit{
		Name: "Dusty", Stage: models.StageContacted, Confidence: 50,
		ReferredByID: strPtr("fb-spring"),
	}).Error)
	require.NoError(t, db.Create(&models.Recruit{
		Name: "Sparkle", Stage: models.StageDeclined, Confidence: 50,
		ReferredByID: strPtr("fb-spring"),
	}).Error)
	// Unrelated recruit must not be claimed.
	require.NoError(t, db.Create(&models.Recruit{
		Name: "Nobody", Stage: models.StageProspect, Confidence: 50,
	}).Error)

	funnels, err := svc.ComputeFunnels(ctx)
	require.NoError(t, err)
	require.Len(t, funnels, 1)

	f := funnels[0]
	assert.Equal(t, campaign.ID, f.ID)
	assert.Equal(t, 3, f.ClickCount)
	assert.Equal(t, 2, f.Funnel.Total, "declined recruits still count toward total")
	assert.Equal(t, 1, f.Funnel.ByStage[models.StageContacted])
	assert.Equal(t, 1, f.Funnel.ByStage[models.StageDeclined])
}

func TestComputeFunnels_NotesFallbackMatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "Reddit", CaseRef: "rd-9", Channel: models.ChannelReddit,
	})
	require.NoError(t, err)

	// Older rows carry the reference only in free-text notes.
	require.NoError(t, db.Create(&models.Recruit{
		Name: "Legacy", Stage: models.StageInterested, Confidence: 50,
		Notes: strPtr("Applied via intake form [ref: rd-9]"),
	}).Error)

	funnels, err := svc.ComputeFunnels(ctx)
	require.NoError(t, err)
	require.Len(t, funnels, 1)
	assert.Equal(t, 1, funnels[0].Funnel.Total)
	assert.Equal(t, 1, funnels[0].Funnel.ByStage[models.StageInterested])
}

func TestComputeFunnels_EmptyCampaignIncluded(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "Quiet", CaseRef: "quiet-1", Channel: models.ChannelEmail,
	})
	require.NoError(t, err)

	funnels, err := svc.ComputeFunnels(ctx)
	require.NoError(t, err)
	require.Len(t, funnels, 1)
	assert.Equal(t, 0, funnels[0].ClickCount)
	assert.Equal(t, 0, funnels[0].Funnel.Total)
}

func TestComputeFunnels_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	older := models.Campaign{Name: "Old", CaseRef: "old-1", Channel: models.ChannelOther,
		Active: true, CreatedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, db.Create(&older).Error)

	_, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "New", CaseRef: "new-1", Channel: models.ChannelOther,
	})
	require.NoError(t, err)

	funnels, err := svc.ComputeFunnels(ctx)
	require.NoError(t, err)
	require.Len(t, funnels, 2)
	assert.Equal(t, "New", funnels[0].Name)
	assert.Equal(t, "Old", funnels[1].Name)
}

func TestDelete(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateCampaignRequest{
		Name: "Gone", CaseRef: "gone-1", Channel: models.ChannelOther,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
