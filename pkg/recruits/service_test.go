package recruits

import (
	"context"
	"fmt"
	"testing"

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

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jazz Hands / she/her", "Jazz Hands"},
		{"Dusty, they/them", "Dusty"},
		{"Plain Name", "Plain Name"},
		{"  Spaced  ", "Spaced"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayName(tt.in))
	}
}

func TestSubmitApplication(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	recruit, err := svc.SubmitApplication(context.Background(), models.ApplicationRequest{
		NamePronouns:       "Jazz Hands / she/her",
		Email:              "jazz@example.com",
		ProjectDescription: "A giant disco ball",
		CaseRef:            "fb-spring",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jazz Hands", recruit.Name)
	assert.Equal(t, models.StageProspect, recruit.Stage)
	assert.Equal(t, 50, recruit.Confidence)
	require.NotNil(t, recruit.ReferredByID)
	assert.Equal(t, "fb-spring", *recruit.ReferredByID)
	require.NotNil(t, recruit.Notes)
	assert.Equal(t, "Applied via intake form [ref: fb-spring]", *recruit.Notes)

	// The full answers land in their own intake row, linked back.
	require.NotNil(t, recruit.IntakeID)
	var intake models.RecruitIntake
	require.NoError(t, db.First(&intake, *recruit.IntakeID).Error)
	assert.Equal(t, "Jazz Hands / she/her", intake.NamePronouns)
	require.NotNil(t, intake.ProjectDescription)
	assert.Equal(t, "A giant disco ball", *intake.ProjectDescription)
}

func TestSubmitApplication_NoReferral(t *testing.T) {
	svc := NewService(setupTestDB(t))

	recruit, err := svc.SubmitApplication(context.Background(), models.ApplicationRequest{
		NamePronouns: "Solo",
	})
	require.NoError(t, err)

	assert.Nil(t, recruit.ReferredByID)
	require.NotNil(t, recruit.Notes)
	assert.Equal(t, "Applied via intake form", *recruit.Notes)
}

func TestSubmitApplication_BlankNameWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.SubmitApplication(context.Background(), models.ApplicationRequest{
		NamePronouns: "   ",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var intakes, recruits int64
	db.Model(&models.RecruitIntake{}).Count(&intakes)
	db.Model(&models.Recruit{}).Count(&recruits)
	assert.Zero(t, intakes)
	assert.Zero(t, recruits)
}

func TestCreate_Defaults(t *testing.T) {
	svc := NewService(setupTestDB(t))

	recruit, err := svc.Create(context.Background(), models.CreateRecruitRequest{
		Name: "Direct Add",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageProspect, recruit.Stage)
	assert.Equal(t, 50, recruit.Confidence)
}

func TestCreate_InvalidStage(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, err := svc.Create(context.Background(), models.CreateRecruitRequest{
		Name: "Bad", Stage: "vibing",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreate_NormalizesPhone(t *testing.T) {
	svc := NewService(setupTestDB(t))

	recruit, err := svc.Create(context.Background(), models.CreateRecruitRequest{
		Name: "Caller", Phone: strPtr("(212) 555-0123"),
	})
	require.NoError(t, err)
	require.NotNil(t, recruit.Phone)
	assert.Equal(t, "+12125550123", *recruit.Phone)
}

func TestUpdate_WhitelistedFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateRecruitRequest{Name: "Mover"})
	require.NoError(t, err)

	confidence := 80
	_, err = svc.Update(ctx, models.UpdateRecruitRequest{
		ID:         created.ID,
		Stage:      strPtr(models.StageCommitted),
		Confidence: &confidence,
		Notes:      strPtr("met at the fundraiser"),
	})
	require.NoError(t, err)

	var got models.Recruit
	require.NoError(t, db.First(&got, created.ID).Error)
	assert.Equal(t, models.StageCommitted, got.Stage)
	assert.Equal(t, 80, got.Confidence)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "met at the fundraiser", *got.Notes)
	assert.Equal(t, "Mover", got.Name, "untouched fields keep their values")
}

func TestUpdate_InvalidStage(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateRecruitRequest{Name: "Stuck"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, models.UpdateRecruitRequest{
		ID:    created.ID,
		Stage: strPtr("ascended"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, err := svc.Update(context.Background(), models.UpdateRecruitRequest{ID: 4242})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete_KeepsIntake(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	recruit, err := svc.SubmitApplication(ctx, models.ApplicationRequest{
		NamePronouns: "Leaver",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, recruit.ID))

	var recruits, intakes int64
	db.Model(&models.Recruit{}).Count(&recruits)
	db.Model(&models.RecruitIntake{}).Count(&intakes)
	assert.Zero(t, recruits)
	assert.Equal(t, int64(1), intakes, "intake answers survive the pipeline record")
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(setupTestDB(t))

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
