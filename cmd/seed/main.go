package main

import (
	"log"
	"os"

	"autowebinar-be/internal/model"
	"autowebinar-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
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

	log.Println("Seeding Plan Catalog...")

	// Prices in centavos. Quota -1 = unlimited.
	plans := []model.Plan{
		{
			Name:        "Starter Mensal",
			Slug:        "starter-monthly",
			Description: "1 webinar ativo, ideal para validar sua oferta",
			Price:       9700,
			BillingType: "recurring",

			RecurrenceInterval: 1,
			RecurrenceUnit:     "month",
			AccessDays:         31,

			WebinarLimit:         1,
			UploadLimit:          5,
			StorageLimitMB:       2048,
			WhatsappAccountLimit: 0,

			Gateway:   "mercadopago",
			IsActive:  true,
			IsVisible: true,
			SortOrder: 1,
		},
		{
			Name:        "Pro Mensal",
			Slug:        "pro-monthly",
			Description: "Webinars ilimitados, transcrição por IA e integração WhatsApp",
			Price:       19700,
			BillingType: "recurring",

			RecurrenceInterval: 1,
			RecurrenceUnit:     "month",
			AccessDays:         31,

			WebinarLimit:         -1,
			UploadLimit:          50,
			StorageLimitMB:       20480,
			WhatsappAccountLimit: 2,

			AiTranscriptionEnabled:  true,
			MessageGeneratorEnabled: true,

			Gateway:   "mercadopago",
			IsActive:  true,
			IsVisible: true,
			SortOrder: 2,
		},
		{
			Name:        "Pro Anual",
			Slug:        "pro-yearly",
			Description: "Plano Pro com dois meses de desconto no ciclo anual",
			Price:       197000,
			BillingType: "recurring",

			RecurrenceInterval: 1,
			RecurrenceUnit:     "year",
			AccessDays:         366,

			WebinarLimit:         -1,
			UploadLimit:          50,
			StorageLimitMB:       20480,
			WhatsappAccountLimit: 2,

			AiTranscriptionEnabled:  true,
			AiDesignerEnabled:       true,
			MessageGeneratorEnabled: true,

			Gateway:   "mercadopago",
			IsActive:  true,
			IsVisible: true,
			SortOrder: 3,
		},
		{
			Name:        "Acesso Vitalício",
			Slug:        "lifetime",
			Description: "Pagamento único, acesso por 10 anos",
			Price:       297000,
			BillingType: "one_time",

			AccessDays: 3650,

			WebinarLimit:         -1,
			UploadLimit:          -1,
			StorageLimitMB:       51200,
			WhatsappAccountLimit: 5,

			AiTranscriptionEnabled:  true,
			AiDesignerEnabled:       true,
			MessageGeneratorEnabled: true,

			Gateway:   "mercadopago",
			IsActive:  true,
			IsVisible: false, // sold via direct link only
			SortOrder: 99,
		},
	}

	// Upsert by slug so reruns refresh copy and pricing without duplicating rows.
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		UpdateAll: true,
	}).Create(&plans)
	if result.Error != nil {
		log.Fatal("Error: Failed to seed plans:", result.Error)
	}

	log.Printf("Seeded %d plans.", len(plans))
}
