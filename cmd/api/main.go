package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/danguerrag/go-leads-api/internal/config"
	"github.com/danguerrag/go-leads-api/internal/infra/database"
	"github.com/danguerrag/go-leads-api/internal/infra/http/handlers"
	appmiddleware "github.com/danguerrag/go-leads-api/internal/infra/http/middleware"
	"github.com/danguerrag/go-leads-api/internal/infra/mail"
	"github.com/danguerrag/go-leads-api/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)

	// 2. Notifier (activation state fixed for the process lifetime)
	notifier := mail.NewLeadNotifier(cfg.Mail, logger)

	// 3. UseCases
	leadUC := usecase.NewLeadUseCase(leadRepo, notifier)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(leadUC)
	healthHandler := handlers.NewHealthHandler(db, string(notifier.State()))

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.Create)
		r.Get("/", leadHandler.List)
		r.Get("/{id}", leadHandler.Get)
		r.Patch("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	logger.Info("🔥 leads API listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
