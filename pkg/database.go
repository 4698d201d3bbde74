package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AP-CSE-2025/proctor-service/internal/config"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

// SchemaMigration records an applied migration version.
type SchemaMigration struct {
	Version   string `gorm:"primaryKey;size:50"`
	AppliedAt time.Time
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	version string
	run     func(db *gorm.DB) error
}

// migrations is the ordered migration list. New schema changes append a new
// version here; versions already recorded in schema_migrations are skipped.
var migrations = []migration{
	{
		version: "202501_initial_schema",
		run: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&models.User{},
				&models.HODInfo{},
				&models.HODAvailability{},
				&models.StudentCore{},
				&models.PersonalInfo{},
				&models.AcademicScore{},
				&models.MidtermScore{},
				&models.LabExam{},
				&models.AttendanceRecord{},
				&models.Extracurricular{},
				&models.VisitLog{},
				&models.ToDoTask{},
			)
		},
	},
}

// InitDatabase opens the postgres connection, configures the pool, and
// applies pending migrations in order.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// services can map them to their duplicate sentinels.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnLifetime)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// runMigrations applies every migration not yet recorded in
// schema_migrations, each inside its own transaction.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&SchemaMigration{}).Where("version = ?", m.version).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: m.version, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", m.version, err)
		}
	}

	return nil
}
