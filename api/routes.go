package api

import (
	"fmt"

	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/config"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/pkg/repository"
	"github.com/gorilla/mux"
)

// Store is the composite persistence contract the HTTP layer needs.
type Store interface {
	repository.UserRepo
	repository.ProfileRepo
	repository.AutoApplySettingsRepo
}

func SetupRoutes(cfg *config.Config, version, buildTime string, store Store, profiles *profile.Service, gate *autoapply.Gate) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	platformHandler := &PlatformHandler{}
	authHandler := NewAuthHandler(store, store, cfg.JWTSecret, cfg.TokenDuration)
	autoApplyHandler := NewAutoApplyHandler(gate)
	profileHandler, err := NewProfileHandler(store, profiles, gate)
	if err != nil {
		return nil, fmt.Errorf("profile handler: %w", err)
	}

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/pricing/calculate", platformHandler.PricingCalculate).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Profile wizard endpoints
	apiV1.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/profile", profileHandler.UpdateProfile).Methods("PUT")
	apiV1.HandleFunc("/profile/completion", profileHandler.Completion).Methods("GET")

	// AutoApply endpoints
	apiV1.HandleFunc("/autoapply/settings", autoApplyHandler.GetSettings).Methods("GET")
	apiV1.HandleFunc("/autoapply/settings", autoApplyHandler.UpdateSettings).Methods("PUT")
	apiV1.HandleFunc("/autoapply/enable", autoApplyHandler.Enable).Methods("POST")

	// Agent and platform endpoints
	apiV1.HandleFunc("/agent/status", platformHandler.AgentStatus).Methods("GET")
	apiV1.HandleFunc("/resume/tailor", platformHandler.ResumeTailor).Methods("POST")
	apiV1.HandleFunc("/dashboard/metrics", platformHandler.DashboardMetrics).Methods("GET")

	return r, nil
}
