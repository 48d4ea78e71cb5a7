package api

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/careerforge/backend/internal/cache"
	"github.com/careerforge/backend/internal/config"
	"github.com/careerforge/backend/internal/db"
	"github.com/careerforge/backend/internal/letters"
	"github.com/careerforge/backend/internal/repository/sqlite"
	"github.com/careerforge/backend/internal/tracking"
)

// SetupRoutes builds the router. redisClient and gen may be nil; caching is
// then skipped and cover-letter generation reports unavailable.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, redisClient *redis.Client, gen letters.Generator) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, logger)

	var positionCache *cache.Cache
	if redisClient != nil {
		positionCache = cache.New(redisClient, cfg.CacheTTL, logger)
	}

	var lettersSvc *letters.Service
	if gen != nil {
		lettersSvc = letters.NewService(gen, repo, repo, repo, cfg.Letters, logger)
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	trackedHandler := NewTrackedHandler(tracking.NewService(repo, repo, logger))
	positionsHandler := NewPositionsHandler(repo, repo, positionCache)
	organizationsHandler := NewOrganizationsHandler(repo)
	milestonesHandler := NewMilestonesHandler(repo)
	lettersHandler := NewLettersHandler(lettersSvc)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Tracked application endpoints, keyed by position
	apiV1.HandleFunc("/tracked-jobs", trackedHandler.Create).Methods("POST")
	apiV1.HandleFunc("/tracked-jobs", trackedHandler.List).Methods("GET")
	apiV1.HandleFunc("/tracked-jobs/{position_id}", trackedHandler.Get).Methods("GET")
	apiV1.HandleFunc("/tracked-jobs/{position_id}", trackedHandler.Update).Methods("PATCH")
	apiV1.HandleFunc("/tracked-jobs/{position_id}", trackedHandler.Delete).Methods("DELETE")

	// Position endpoints
	apiV1.HandleFunc("/positions", positionsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/positions", positionsHandler.List).Methods("GET")
	apiV1.HandleFunc("/positions/mine", positionsHandler.ListMine).Methods("GET")
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Get).Methods("GET")
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Delete).Methods("DELETE")

	// Organization endpoints
	apiV1.HandleFunc("/organizations", organizationsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/organizations/mine", organizationsHandler.GetMine).Methods("GET")
	apiV1.HandleFunc("/organizations/mine", organizationsHandler.Update).Methods("PUT")

	// Milestone endpoints
	apiV1.HandleFunc("/milestones", milestonesHandler.Create).Methods("POST")
	apiV1.HandleFunc("/milestones", milestonesHandler.List).Methods("GET")
	apiV1.HandleFunc("/milestones/{id}", milestonesHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/milestones/{id}", milestonesHandler.Delete).Methods("DELETE")

	// Cover letter generation
	apiV1.HandleFunc("/cover-letters", lettersHandler.Generate).Methods("POST")

	return r
}
