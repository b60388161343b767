package invites

import (
	"context"
	"fmt"
	"regexp"
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

var codePattern = regexp.MustCompile(`^(DUST|GLOW|SPARK|PLAYA|DISCO|CAMP)-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{8}$`)

func TestGenerate_CodeFormat(t *testing.T) {
	svc := NewService(setupTestDB(t))

	codes, err := svc.Generate(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, codes, 10)

	seen := map[string]bool{}
	for _, c := range codes {
		assert.Regexp(t, codePattern, c.Code)
		assert.False(t, seen[c.Code], "codes must be unique")
		seen[c.Code] = true
		assert.Nil(t, c.UsedByID)
	}
}

func TestGenerate_CountBounds(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, err := svc.Generate(context.Background(), 0)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Generate(context.Background(), 51)
	assert.True(t, domain.IsValidation(err))
}

func TestRedeem_SingleUse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	codes, err := svc.Generate(ctx, 1)
	require.NoError(t, err)
	code := codes[0].Code

	require.NoError(t, svc.Redeem(ctx, code, 7))

	var got models.InviteCode
	require.NoError(t, db.Where("code = ?", code).First(&got).Error)
	require.NotNil(t, got.UsedByID)
	assert.Equal(t, uint(7), *got.UsedByID)
	assert.NotNil(t, got.UsedAt)

	// Second redemption fails the same way as a bogus code.
	err = svc.Redeem(ctx, code, 8)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	err = svc.Redeem(ctx, "DUST-NOTACODE", 8)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestValid(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	codes, err := svc.Generate(ctx, 1)
	require.NoError(t, err)

	ok, err := svc.Valid(ctx, codes[0].Code)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Redeem(ctx, codes[0].Code, 1))

	ok, err = svc.Valid(ctx, codes[0].Code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_UsedCodesStay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	codes, err := svc.Generate(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(ctx, codes[0].Code, 3))

	err = svc.Delete(ctx, codes[0].ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err), "used codes cannot be revoked")

	require.NoError(t, svc.Delete(ctx, codes[1].ID))

	var count int64
	db.Model(&models.InviteCode{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
