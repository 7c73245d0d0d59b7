package main

import (
	"context"
	"net/http"
	"time"

	"esgdashboard/config"
	"esgdashboard/database"
	"esgdashboard/handlers"
	repository "esgdashboard/repositories"
	routes "esgdashboard/routes"
	services "esgdashboard/services"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Create a new client and connect to the server
	clientOptions := options.Client().ApplyURI(cfg.MongoURI())
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB: ", err)
		}
	}()

	// Set a timeout for the ping operation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the primary to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB: ", err)
	}
	log.Info("Connected to MongoDB Atlas")

	db := client.Database(cfg.MongoDatabase)

	log.Info("Creating database indexes...")
	if err := database.CreateESGIndexes(db); err != nil {
		log.Warn("Failed to create indexes: ", err)
	}

	// Repositories
	initiativeRepo := repository.NewInitiativeRepository(db)
	indicatorRepo := repository.NewIndicatorRepository(db)
	requestRepo := repository.NewDataRequestRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Event dispatch is fire-and-forget; the log sink stands in for a real
	// delivery channel.
	dispatcher := services.NewDispatcher(services.NewLogNotifier(log))

	// Services
	completenessService := services.NewCompletenessService(requestRepo, indicatorRepo)
	initiativeService := services.NewInitiativeService(initiativeRepo, requestRepo, indicatorRepo, completenessService, dispatcher)
	indicatorService := services.NewIndicatorService(indicatorRepo)
	draftService := services.NewDraftService(draftRepo, requestRepo)
	contributionService := services.NewContributionService(contributionRepo, requestRepo, indicatorRepo, draftService, completenessService, dispatcher, log)
	compiler := services.NewSectionCompiler(contributionRepo, requestRepo, indicatorRepo)
	reportService := services.NewReportService(initiativeRepo, reportRepo, completenessService, compiler, cfg.ReportThreshold, dispatcher)
	analyticsService := services.NewAnalyticsService(initiativeRepo, completenessService)

	// Handlers and routes
	mux := routes.SetupRoutes(routes.Handlers{
		Initiative:   handlers.NewInitiativeHandler(initiativeService, completenessService),
		Indicator:    handlers.NewIndicatorHandler(indicatorService),
		Draft:        handlers.NewDraftHandler(draftService),
		Contribution: handlers.NewContributionHandler(contributionService),
		Report:       handlers.NewReportHandler(reportService),
		Analytics:    handlers.NewAnalyticsHandler(analyticsService),
	}, cfg.JWTSecret)

	log.Infof("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
