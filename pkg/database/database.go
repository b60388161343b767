package database

import (
	"context"
	"fmt"
	"log"

	"github.com/dustward/campbase/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client holds the database handle
type Client struct {
	DB *gorm.DB
}

// NewClient opens a postgres connection and runs migrations
func NewClient(databaseURL string) (*Client, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed running migrations: %w", err)
	}

	log.Println("✅ Database connected and migrations applied")

	return &Client{DB: db}, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Campaign{},
		&models.CampaignClick{},
		&models.RecruitIntake{},
		&models.Recruit{},
		&models.DuesItem{},
		&models.DuesPayment{},
		&models.DuesOverride{},
		&models.Ticket{},
		&models.Asset{},
		&models.Announcement{},
		&models.InviteCode{},
		&models.Meal{},
		&models.ActivityLog{},
	)
}

// Close closes the database connection
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
