package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"flugbuech/tower/internal/api"
	"flugbuech/tower/internal/common"
	"flugbuech/tower/internal/db"
	"flugbuech/tower/internal/db/repositories"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/metrics"
	"flugbuech/tower/internal/middleware"
	"flugbuech/tower/internal/services"
)

// RegisterRoutes wires repositories, services and handlers into the
// Chi router.
func RegisterRoutes(gormDB *gorm.DB, redisClient *redis.Client, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// repositories
	gliderRepo := repositories.NewGliderRepository(db.DB)
	locationRepo := repositories.NewLocationRepository(db.DB)
	locationGormRepo := repositories.NewLocationRepositoryGORM(gormDB)

	// services
	cacheSvc := common.NewCacheService(60, 120)
	sessionSvc := common.NewSessionService(redisClient)
	lookupSvc := services.NewLookupService(cacheSvc, gliderRepo, locationRepo)
	importSvc := services.NewCsvImportService(metricsReg)
	trackSvc := services.NewTrackService(locationGormRepo, metricsReg)

	// authenticated API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(sessionSvc))

		r.Post("/flights/add/import_csv", api.ImportCsvHandler(importSvc, lookupSvc))
		r.Post("/flights/add/process_igc", api.ProcessIgcHandler(trackSvc))
		r.Get("/gliders", api.GlidersHandler(lookupSvc))
		r.Get("/locations", api.LocationsHandler(lookupSvc))
	})

	logging.Info("Router initialized with metrics and logging middleware")

	return r
}
