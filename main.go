package main

import (
	"context"
	"fmt"
	"net/http"

	"auroxa/config"
	"auroxa/controllers"
	"auroxa/middleware"
	"auroxa/routes"
	"auroxa/services"
	"auroxa/store"
	"auroxa/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		return
	}

	logger := config.NewLogger(cfg.Logger)

	// Connect to MongoDB; the client is owned here and closed on shutdown
	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	orderStore := store.NewOrders(db)
	productStore := store.NewProducts(db)
	contactStore := store.NewContacts(db)
	reviewStore := store.NewReviews(db)

	emailService := utils.NewEmailService(cfg.Email)

	lifecycle := services.NewOrderLifecycle(orderStore, emailService, cfg.Server.BaseURL, logger)
	catalog := services.NewCatalog(productStore, logger)
	reviews := services.NewReviews(reviewStore, productStore, logger)

	router := mux.NewRouter()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	routes.Register(router, routes.Controllers{
		Health:   controllers.NewHealthController(client),
		Orders:   controllers.NewOrderController(lifecycle),
		Products: controllers.NewProductController(catalog),
		Contacts: controllers.NewContactController(contactStore),
		Reviews:  controllers.NewReviewController(reviews),
		Stats:    controllers.NewStatsController(orderStore, reviewStore),
	}, []byte(cfg.Auth.JWTSecret))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
