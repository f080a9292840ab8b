package main

import (
	"log"

	"kopdes-pos/internal/model"
	"kopdes-pos/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds a small demo catalog and member register into an empty database.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Member{}, &model.Transaction{}, &model.StockLog{})

	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count > 0 {
		log.Fatalf("❌ Database already has %d products, refusing to seed", count)
	}

	products := []model.Product{
		{SKU: "BRS-001", Name: "Beras Premium 5kg", PurchasePrice: 60000, SellPrice: 68000, Stock: 40, Unit: "karung"},
		{SKU: "MNY-001", Name: "Minyak Goreng 1L", PurchasePrice: 15000, SellPrice: 17500, Stock: 60, Unit: "botol"},
		{SKU: "GLA-001", Name: "Gula Pasir 1kg", PurchasePrice: 13000, SellPrice: 15000, Stock: 50, Unit: "pak"},
		{SKU: "TLR-001", Name: "Telur Ayam", PurchasePrice: 2000, SellPrice: 2500, Stock: 200, Unit: "butir"},
		{SKU: "KPI-001", Name: "Kopi Bubuk 200g", PurchasePrice: 18000, SellPrice: 22000, Stock: 25, Unit: "pak"},
	}
	for i := range products {
		products[i].CreatedBy = "seed"
		products[i].UpdatedBy = "seed"
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed product %s: %v", products[i].SKU, err)
		}
	}

	members := []model.Member{
		{ID: "A-001", Name: "Maria Seran"},
		{ID: "A-002", Name: "Yohanes Lake"},
		{ID: "A-003", Name: "Petrus Taek"},
	}
	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed member %s: %v", members[i].ID, err)
		}
	}

	log.Printf("✅ Seeded %d products and %d members", len(products), len(members))
}
