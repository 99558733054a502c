package main

import (
	"log"
	"os"
	"time"

	"ad-marketplace-be/internal/entity"
	"ad-marketplace-be/internal/mapper"
	"ad-marketplace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Product Catalog...")

	products := []*entity.Product{
		{
			Id:           uuid.New(),
			Code:         "basic-cars-monthly",
			Name:         "Basic Cars",
			Vertical:     "vehicles",
			SubVertical:  "cars",
			Price:        29.90,
			Currency:     "EUR",
			DurationDays: 30,
			IsActive:     true,
			Constraints: entity.ProductConstraints{
				TotalAdsAllowed:       10,
				DailyRefreshesAllowed: 1,
				RefreshesPerAdAllowed: 5,
				CanPublishAds:         true,
				CanRefreshAds:         true,
				FreeAdsAllowances: []entity.FreeAdsAllowance{
					{Category: "vehicles", L1Category: "cars", FreeAdsAllowed: 2},
				},
			},
		},
		{
			Id:           uuid.New(),
			Code:         "pro-cars-monthly",
			Name:         "Pro Cars",
			Vertical:     "vehicles",
			SubVertical:  "cars",
			Price:        89.90,
			Currency:     "EUR",
			DurationDays: 30,
			IsActive:     true,
			Constraints: entity.ProductConstraints{
				TotalAdsAllowed:         50,
				TotalPromotionsAllowed:  10,
				TotalFeaturesAllowed:    5,
				DailyRefreshesAllowed:   3,
				RefreshesPerAdAllowed:   10,
				SocialMediaPostsAllowed: 4,
				CanPublishAds:           true,
				CanPromoteAds:           true,
				CanFeatureAds:           true,
				CanRefreshAds:           true,
				CanPostSocialMedia:      true,
				FreeAdsAllowances: []entity.FreeAdsAllowance{
					{Category: "vehicles", L1Category: "cars", FreeAdsAllowed: 5},
					{Category: "vehicles", L1Category: "motorcycles", FreeAdsAllowed: 2},
				},
			},
		},
		{
			Id:           uuid.New(),
			Code:         "realestate-agency-monthly",
			Name:         "Real Estate Agency",
			Vertical:     "real_estate",
			Price:        149.00,
			Currency:     "EUR",
			DurationDays: 30,
			IsActive:     true,
			Constraints: entity.ProductConstraints{
				TotalAdsAllowed:        100,
				TotalPromotionsAllowed: 20,
				DailyRefreshesAllowed:  5,
				RefreshesPerAdAllowed:  10,
				CanPublishAds:          true,
				CanPromoteAds:          true,
				CanRefreshAds:          true,
			},
		},
		{
			Id:           uuid.New(),
			Code:         "refresh-pack-10",
			Name:         "Refresh Pack",
			Price:        9.90,
			Currency:     "EUR",
			DurationDays: 90,
			IsAddon:      true,
			IsActive:     true,
			Constraints: entity.ProductConstraints{
				DailyRefreshesAllowed: 10,
				RefreshesPerAdAllowed: 10,
				CanRefreshAds:         true,
			},
		},
		{
			Id:           uuid.New(),
			Code:         "promo-boost-5",
			Name:         "Promotion Boost",
			Price:        14.90,
			Currency:     "EUR",
			DurationDays: 30,
			IsAddon:      true,
			IsActive:     true,
			Constraints: entity.ProductConstraints{
				TotalPromotionsAllowed: 5,
				CanPromoteAds:          true,
			},
		},
	}

	productMapper := mapper.NewProductMapper()
	created, skipped := 0, 0

	for _, p := range products {
		p.CreatedAt = time.Now().UTC()

		var count int64
		db.Table("products").Where("code = ?", p.Code).Count(&count)
		if count > 0 {
			color.Yellow("Product '%s' already exists, skipping...", p.Code)
			skipped++
			continue
		}

		if err := db.Create(productMapper.ToModel(p)).Error; err != nil {
			color.Red("Error creating product '%s': %v", p.Code, err)
			continue
		}
		color.Green("Created product: %s (%s)", p.Name, p.Code)
		created++
	}

	color.Cyan("Product seeding completed: %d created, %d skipped", created, skipped)
}
