package assets

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
func intPtr(i int) *int       { return &i }

func TestCreate_DefaultCategory(t *testing.T) {
	svc := NewService(setupTestDB(t))

	asset, err := svc.Create(context.Background(), models.CreateAssetRequest{
		ItemName: "shade sail",
	})
	require.NoError(t, err)
	assert.Equal(t, "general", asset.Category)
}

func TestUpdate_PhotoURLNotWritable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	asset, err := svc.Create(ctx, models.CreateAssetRequest{ItemName: "generator"})
	require.NoError(t, err)
	require.NoError(t, svc.SetPhoto(ctx, asset.ID, "https://cdn.example/gen.jpg"))

	_, err = svc.Update(ctx, models.UpdateAssetRequest{
		ID:       asset.ID,
		ItemName: strPtr("big generator"),
		QtyHave:  intPtr(2),
	})
	require.NoError(t, err)

	var got models.Asset
	require.NoError(t, db.First(&got, asset.ID).Error)
	assert.Equal(t, "big generator", got.ItemName)
	assert.Equal(t, 2, got.QtyHave)
	require.NotNil(t, got.PhotoURL)
	assert.Equal(t, "https://cdn.example/gen.jpg", *got.PhotoURL, "updates never touch the photo")
}

func TestUpdate_NegativeQuantityRefused(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	asset, err := svc.Create(ctx, models.CreateAssetRequest{ItemName: "carpets"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, models.UpdateAssetRequest{
		ID:      asset.ID,
		QtyHave: intPtr(-1),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestList_SortedByCategoryThenName(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	for _, a := range []models.CreateAssetRequest{
		{ItemName: "zip ties", Category: "tools"},
		{ItemName: "shade sail", Category: "shade"},
		{ItemName: "aluminet", Category: "shade"},
	} {
		_, err := svc.Create(ctx, a)
		require.NoError(t, err)
	}

	assets, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "aluminet", assets[0].ItemName)
	assert.Equal(t, "shade sail", assets[1].ItemName)
	assert.Equal(t, "zip ties", assets[2].ItemName)
}

func TestSetPhoto_NotFound(t *testing.T) {
	svc := NewService(setupTestDB(t))

	err := svc.SetPhoto(context.Background(), 99, "https://cdn.example/x.jpg")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	svc := NewService(setupTestDB(t))
	ctx := context.Background()

	asset, err := svc.Create(ctx, models.CreateAssetRequest{ItemName: "dome"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, asset.ID))
	err = svc.Delete(ctx, asset.ID)
	assert.True(t, domain.IsNotFound(err))
}
