package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/budgetfolio/backend/src/config"
	"github.com/username/budgetfolio/backend/src/database"
	"github.com/username/budgetfolio/backend/src/handlers"
	"github.com/username/budgetfolio/backend/src/logger"
	"github.com/username/budgetfolio/backend/src/processors"
	"github.com/username/budgetfolio/backend/src/security"
	"github.com/username/budgetfolio/backend/src/services"
	"github.com/username/budgetfolio/backend/src/store"
	"golang.org/x/time/rate"
)

var limiter *rate.Limiter

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":     true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, X-Session-ID")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Budgetfolio backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid: must be at least 32 characters.")
		os.Exit(1)
	}

	limiter = rate.NewLimiter(rate.Limit(config.Cfg.RateLimitPerSecond), config.Cfg.RateLimitBurst)

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	sessionCache := cache.New(services.SessionEditExpiration, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)

	txStore := store.NewTransactionStore(database.DB)
	ruleStore := store.NewRuleStore(database.DB)
	obligationStore := store.NewObligationStore(database.DB)
	transferStore := store.NewTransferStore(database.DB)
	paycheckStore := store.NewPaycheckStore(database.DB)
	goalStore := store.NewGoalStore(database.DB)

	ruleMatcher := processors.NewRuleMatcher()
	suggestionProcessor := processors.NewSuggestionProcessor(ruleMatcher)
	cashflowProcessor := processors.NewCashflowProcessor(ruleMatcher)

	importService := services.NewImportService(txStore, reportCache)
	classificationService := services.NewClassificationService(txStore, ruleStore, suggestionProcessor, sessionCache, reportCache)
	budgetService := services.NewBudgetService(
		txStore, ruleStore, obligationStore, transferStore, paycheckStore, goalStore,
		cashflowProcessor, ruleMatcher, reportCache,
	)

	authHandler := handlers.NewAuthHandler(authService, config.Cfg.JWTSecret)
	uploadHandler := handlers.NewUploadHandler(importService)
	txHandler := handlers.NewTransactionHandler(txStore)
	classificationHandler := handlers.NewClassificationHandler(classificationService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	scheduleHandler := handlers.NewScheduleHandler(obligationStore, transferStore, paycheckStore, goalStore, budgetService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Budgetfolio Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/token", authHandler.HandleIssueToken)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)

			r.Post("/upload", uploadHandler.HandleUpload)
			r.Get("/transactions", txHandler.HandleListTransactions)
			r.Patch("/transactions/{id}/goal", txHandler.HandleSetGoal)

			r.Get("/classification/suggestions", classificationHandler.HandleSuggest)
			r.Post("/classification/session-edits", classificationHandler.HandleSessionEdit)
			r.Post("/classification/confirm", classificationHandler.HandleConfirm)
			r.Post("/classification/reset", classificationHandler.HandleResetRules)

			r.Get("/budget/money-status", budgetHandler.HandleGetMoneyStatus)
			r.Get("/budget/obligations/status", budgetHandler.HandleGetObligationStatuses)
			r.Post("/budget/cache/invalidate", budgetHandler.HandleInvalidateCache)

			r.Get("/schedule/obligations", scheduleHandler.HandleListObligations)
			r.Post("/schedule/obligations", scheduleHandler.HandleCreateObligation)
			r.Put("/schedule/obligations/{id}", scheduleHandler.HandleUpdateObligation)
			r.Delete("/schedule/obligations/{id}", scheduleHandler.HandleDeleteObligation)

			r.Get("/schedule/transfers", scheduleHandler.HandleListTransfers)
			r.Post("/schedule/transfers", scheduleHandler.HandleCreateTransfer)
			r.Put("/schedule/transfers/{id}", scheduleHandler.HandleUpdateTransfer)
			r.Delete("/schedule/transfers/{id}", scheduleHandler.HandleDeleteTransfer)

			r.Get("/schedule/paychecks", scheduleHandler.HandleListPaychecks)
			r.Post("/schedule/paychecks", scheduleHandler.HandleCreatePaycheck)
			r.Put("/schedule/paychecks/{id}", scheduleHandler.HandleUpdatePaycheck)
			r.Delete("/schedule/paychecks/{id}", scheduleHandler.HandleDeletePaycheck)

			r.Get("/schedule/goals", scheduleHandler.HandleListGoals)
			r.Post("/schedule/goals", scheduleHandler.HandleCreateGoal)
			r.Put("/schedule/goals/{id}", scheduleHandler.HandleUpdateGoal)
			r.Delete("/schedule/goals/{id}", scheduleHandler.HandleDeleteGoal)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
		}
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
