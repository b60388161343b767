package members

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
func boolPtr(b bool) *bool    { return &b }

func createUser(t *testing.T, db *gorm.DB, email string, admin bool) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: email, IsAdmin: admin}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestGetProfile_CreatesOnFirstAccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "dusty@camp.example", false)

	member, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, member.UserID)
	assert.Equal(t, "active", member.Status)

	again, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, again.ID, "second access reuses the row")
}

func TestUpdateProfile_SyncsPlayaNameToAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "dusty@camp.example", false)

	_, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{
		PlayaName: strPtr("Stardust"),
		HomeBase:  strPtr("Oakland"),
	})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "Stardust", got.Name)

	var member models.Member
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&member).Error)
	assert.Equal(t, "Stardust", member.PlayaName)
	assert.Equal(t, "Oakland", member.HomeBase)
}

func TestUpdateProfile_PartialLeavesRest(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "m@camp.example", false)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{
		PlayaName: strPtr("Glow"),
		HasTicket: boolPtr(true),
	})
	require.NoError(t, err)

	member, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{
		Vehicle: strPtr("dusty van"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Glow", member.PlayaName)
	assert.True(t, member.HasTicket)
	assert.Equal(t, "dusty van", member.Vehicle)
}

func TestUpdateProfile_NormalizesPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "p@camp.example", false)

	member, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{
		Phone:          strPtr("(212) 555-0123"),
		EmergencyPhone: strPtr("definitely my mom"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+12125550123", member.Phone)
	assert.Equal(t, "definitely my mom", member.EmergencyPhone, "unparseable input is kept as typed")
}

func TestListUsers_IncludesPlayaName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "roster@camp.example", true)

	_, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{
		PlayaName: strPtr("Sparkle"),
	})
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Sparkle", users[0].PlayaName)
	assert.True(t, users[0].IsAdmin)
}

func TestSetAdmin_Promote(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	admin := createUser(t, db, "admin@camp.example", true)
	target := createUser(t, db, "new@camp.example", false)

	updated, err := svc.SetAdmin(context.Background(), admin.ID, models.SetAdminRequest{
		ID: target.ID, IsAdmin: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestSetAdmin_SelfDemotionRefused(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	admin := createUser(t, db, "a@camp.example", true)
	createUser(t, db, "b@camp.example", true)

	_, err := svc.SetAdmin(context.Background(), admin.ID, models.SetAdminRequest{
		ID: admin.ID, IsAdmin: boolPtr(false),
	})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestSetAdmin_LastAdminProtected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	only := createUser(t, db, "only@camp.example", true)
	other := createUser(t, db, "other@camp.example", false)

	_, err := svc.SetAdmin(context.Background(), other.ID, models.SetAdminRequest{
		ID: only.ID, IsAdmin: boolPtr(false),
	})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	admin := createUser(t, db, "admin@camp.example", true)
	target := createUser(t, db, "bye@camp.example", false)

	_, err := svc.GetProfile(context.Background(), target.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, target.ID))

	var users, profiles int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Member{}).Count(&profiles)
	assert.Equal(t, int64(1), users)
	assert.Zero(t, profiles, "profile goes with the account")
}

func TestDeleteUser_SelfRefused(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	admin := createUser(t, db, "self@camp.example", true)

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}
