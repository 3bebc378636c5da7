package config

import (
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates the dashboard tables that do not exist yet.
// Existing tables are left untouched so a partially provisioned schema owned by another service survives.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Interest{},
		&models.SubInterest{},
		&models.Post{},
		&models.NewsImage{},
		&models.Comment{},
		&models.CommentReaction{},
		&models.Report{},
		&models.Session{},
	}

	migrator := db.Migrator()

	for _, table := range tables {
		if migrator.HasTable(table) {
			continue
		}
		if err := db.AutoMigrate(table); err != nil {
			return err
		}
	}

	logrus.Info("PostgreSQL auto-migrations completed for all models.")
	return nil
}
