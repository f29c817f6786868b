package config

import (
	"errors"
	"log"

	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"gorm.io/gorm"
)

var marketplaceCategories = []models.Category{
	{Name: "Accessories", Slug: "accessories"},
	{Name: "Home & Living", Slug: "home"},
	{Name: "Furniture", Slug: "furniture"},
	{Name: "Stationery", Slug: "stationery"},
	{Name: "Kitchen", Slug: "kitchen"},
}

func SeedCategories(db *gorm.DB) error {
	for _, category := range marketplaceCategories {
		c := category
		if err := db.Where(models.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
			log.Printf("Failed to seed category %s: %v", c.Slug, err)
			return err
		}
	}
	return nil
}

// SeedUsers creates one account per role and returns them keyed by role.
func SeedUsers(db *gorm.DB) (map[models.Role]models.User, error) {
	log.Println("🌱 Seeding users...")

	password, err := utils.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	users := []models.User{
		{Name: "Nimal Perera", Email: "individual@example.com", UserType: models.RoleIndividual, Address: "12 Galle Road, Colombo"},
		{Name: "GreenPack Ltd", Email: "business@example.com", UserType: models.RoleBusiness, Address: "45 Kandy Road, Kelaniya"},
		{Name: "City Recyclers", Email: "collector@example.com", UserType: models.RoleCollector, Address: "7 Harbour Lane, Negombo"},
	}

	seeded := make(map[models.Role]models.User, len(users))
	for _, user := range users {
		user.Password = password

		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		switch {
		case err == nil:
			log.Printf("User already exists: %s", user.Email)
			seeded[existing.UserType] = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Failed to seed user %s: %v", user.Email, err)
				return nil, err
			}
			log.Printf("User seeded: %s (ID: %s)", user.Email, user.ID)
			seeded[user.UserType] = user
		default:
			return nil, err
		}
	}

	log.Println("✅ Seeding complete.")
	return seeded, nil
}

func SeedMarketplace(db *gorm.DB, users map[models.Role]models.User) error {
	collector, ok := users[models.RoleCollector]
	if !ok {
		return nil
	}

	listings := []models.Listing{
		{UserID: collector.ID, Title: "Sorted PET bottles", WasteType: "plastic", Quantity: 500, Price: 40, Location: "Negombo"},
		{UserID: collector.ID, Title: "Baled cardboard", WasteType: "paper", Quantity: 1200, Price: 18, Location: "Negombo"},
	}
	if err := db.Create(&listings).Error; err != nil {
		log.Printf("Failed to seed listings: %v", err)
		return err
	}

	products := []models.Product{
		{SellerID: collector.ID, Name: "Recycled tote bag", Description: "Woven from reclaimed plastic bags", Price: 1500, Category: "accessories", InStock: true, Quantity: 40, Rating: 4.5, Reviews: 12},
		{SellerID: collector.ID, Name: "Pallet coffee table", Description: "Sanded pallet wood, sealed", Price: 12500, Category: "furniture", InStock: true, Quantity: 5, Discount: 10, Rating: 4.8, Reviews: 4},
		{SellerID: collector.ID, Name: "Paper notebook", Description: "Made from recycled office paper", Price: 450, Category: "stationery", InStock: true, Quantity: 200, Rating: 4.1, Reviews: 30},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Printf("Failed to seed products: %v", err)
		return err
	}

	log.Printf("Seeded %d listings and %d products", len(listings), len(products))
	return nil
}
