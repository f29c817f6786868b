package config

import (
	"log"

	"ecorecycle_backend/models"

	"gorm.io/gorm"
)

func schema() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Listing{},
		&models.Order{},
		&models.Collection{},
		&models.Product{},
		&models.Category{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schema()...); err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully...")

	// Categories back the marketplace filter, so they exist even without a reset.
	return SeedCategories(db)
}

func ResetAndMigrate(db *gorm.DB) error {
	tables := schema()

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(tables...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	if err := SeedCategories(db); err != nil {
		return err
	}
	users, err := SeedUsers(db)
	if err != nil {
		return err
	}
	if err := SeedMarketplace(db, users); err != nil {
		return err
	}

	log.Println("Database reset and migration completed successfully.")
	return nil
}
