package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dustward/campbase/pkg/database"
	"github.com/dustward/campbase/pkg/dues"
	"github.com/dustward/campbase/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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

func TestDuesLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, dues.NewService(db))
	ctx := context.Background()

	user := models.User{Email: "payer@camp.example", Name: "Payer"}
	require.NoError(t, db.Create(&user).Error)
	item := models.DuesItem{Name: "2026 camp dues", Amount: 350, Active: true}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&models.DuesPayment{
		UserID: user.ID, DuesItemID: item.ID, Amount: 1234.5,
		Method: "venmo", RecordedBy: "Stardust", PaidAt: time.Now(),
	}).Error)

	data, err := svc.DuesLedger(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dues Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Paid At", rows[0][0])
	assert.Equal(t, "Payer", rows[1][1])
	assert.Equal(t, "2026 camp dues", rows[1][3])
	assert.Equal(t, "$1,234.50", rows[1][5], "currency column is grouped and formatted")
	assert.Equal(t, "Stardust", rows[1][7])
}

func TestRoster(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, dues.NewService(db))

	user := models.User{Email: "r@camp.example", Name: "Rosterite"}
	require.NoError(t, db.Create(&user).Error)
	source := "steward sale"
	require.NoError(t, db.Create(&models.Member{
		UserID: user.ID, PlayaName: "Roz", Pronouns: "they/them",
		HasTicket: true, TicketSource: &source, Status: "active",
	}).Error)

	data, err := svc.Roster(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Roster")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Roz", rows[1][0])
	assert.Equal(t, "r@camp.example", rows[1][2])
	assert.Equal(t, "TRUE", rows[1][9])
	assert.Equal(t, "steward sale", rows[1][10])
}

func TestFilename(t *testing.T) {
	name := Filename("dues-ledger")
	assert.Regexp(t, `^dues-ledger-\d{4}-\d{2}-\d{2}\.xlsx$`, name)
}
