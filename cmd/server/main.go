package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"schoolmerch-backend/internal/config"
	"schoolmerch-backend/internal/database"
	"schoolmerch-backend/internal/handlers"
	"schoolmerch-backend/internal/middleware"
	"schoolmerch-backend/internal/services"
	"schoolmerch-backend/internal/shopify"
	"schoolmerch-backend/internal/supabase"
)

func main() {
	// .env is for local development; deployed environments set real vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	imageStorage, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseImageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize image storage client: %v", err)
	}
	printStorage, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabasePrintBucket)
	if err != nil {
		log.Fatalf("Failed to initialize print storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	platformClient := shopify.NewClient(cfg.ShopifyStoreDomain, cfg.ShopifyAccessToken, cfg.ShopifyAPIVersion)

	provisionService := services.NewProvisionService(dbClient, realtimeClient)
	assetService := services.NewAssetService(dbClient, imageStorage, printStorage)
	exportService := services.NewExportService(dbClient, platformClient, realtimeClient)

	leadsHandler := handlers.NewLeadsHandler(provisionService)
	assetsHandler := handlers.NewAssetsHandler(assetService)
	exportHandler := handlers.NewExportHandler(exportService)
	shopsHandler := handlers.NewShopsHandler(dbClient)

	router := gin.Default()
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Lead lifecycle
	api.POST("/leads/:lead_id/confirm", leadsHandler.ConfirmConfiguration)
	api.POST("/leads/:lead_id/provision", leadsHandler.ProvisionProducts)

	// Asset reassignment and renaming
	api.POST("/products/:product_id/images/:image_id/assign-colors", assetsHandler.AssignColors)
	api.POST("/products/:product_id/images/:image_id/rename-print-file", assetsHandler.RenamePrintFile)
	api.POST("/products/:product_id/images/rename-all", assetsHandler.RenameAll)

	// Storefront export
	api.POST("/products/:product_id/export", exportHandler.ExportProduct)

	// Shop reads
	api.GET("/shops/:shop_id", shopsHandler.GetShop)
	api.GET("/shops/:shop_id/products", shopsHandler.ListProducts)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
