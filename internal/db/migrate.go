package db

import (
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Right{},
		&model.UserRight{},
		&model.Route{},
		&model.UserRoute{},
		&model.Delivery{},
		&model.Order{},
		&model.Issue{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedRights inserts the two fixed rights if they are not present. They are
// immutable reference data: admin (code 1) and courier (code 2).
func SeedRights(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Right{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Rights already seeded, skipping", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	rights := []model.Right{
		{Name: "admin", RightCode: model.RightAdmin},
		{Name: "courier", RightCode: model.RightCourier},
	}
	for _, right := range rights {
		if err := db.Create(&right).Error; err != nil {
			logger.Error("Failed to seed right", err, map[string]interface{}{
				"name": right.Name,
			})
			return err
		}
	}

	logger.Info("Rights seeded successfully", map[string]interface{}{
		"count": len(rights),
	})
	return nil
}
