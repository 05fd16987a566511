package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/config"
	"github.com/fuelease/fuelease/internal/database"
	"github.com/fuelease/fuelease/internal/handlers"
	middlewareCustom "github.com/fuelease/fuelease/internal/middleware"
	"github.com/fuelease/fuelease/internal/models"
	"github.com/fuelease/fuelease/internal/repositories"
	"github.com/fuelease/fuelease/internal/routes"
	"github.com/fuelease/fuelease/internal/services"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Run migrations before opening the pool
	if err := database.Migrate(cfg.Database.DSN()); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	operatorRepo := repositories.NewOperatorRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	stationRepo := repositories.NewFuelStationRepository(db)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)

	// AWS SES mailer
	mailer, err := services.NewAWSSESMailer(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
	if err != nil {
		logger.Error("failed to initialize mailer", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize services
	authService := services.NewAuthService(tokenManager, mailer, logger, cfg.Auth.OTPExpiry,
		adminRepo, operatorRepo, customerRepo)
	twoFactorService := services.NewTwoFactorService(mailer, logger, cfg.Auth.OTPExpiry,
		adminRepo, operatorRepo, customerRepo)
	adminService := services.NewAdminService(adminRepo, logger)
	operatorService := services.NewOperatorService(operatorRepo, logger)
	customerService := services.NewCustomerService(customerRepo, logger)
	stationService := services.NewFuelStationService(stationRepo, operatorRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	twoFactorHandler := handlers.NewTwoFactorHandler(twoFactorService, logger)
	adminHandler := handlers.NewAdminHandler(adminService, &cfg.Upload, logger)
	operatorHandler := handlers.NewOperatorHandler(operatorService, &cfg.Upload, logger)
	customerHandler := handlers.NewCustomerHandler(customerService, logger)
	stationHandler := handlers.NewFuelStationHandler(stationService, logger)

	// Bootstrap first admin account if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminAccount(ctx, adminRepo, logger); err != nil {
		logger.Error("failed to ensure admin account", slog.Any("error", err))
	}
	cancel()

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(cfg.Server.Env))
	router.Use(middlewareCustom.CORS(cfg.Server.AllowedOrigins))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, tokenManager,
		authHandler, twoFactorHandler,
		adminHandler, operatorHandler, customerHandler, stationHandler)

	router.Handle("/metrics", promhttp.Handler())

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminAccount creates the first admin if ADMIN_EMAIL and ADMIN_PASSWORD are set
func ensureAdminAccount(ctx context.Context, adminRepo *repositories.AdminRepository, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin bootstrap")
		return nil
	}

	_, err := adminRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin account already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashSecret(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Admin{
		FullName:  "Administrator",
		Email:     adminEmail,
		NIDNumber: "bootstrap",
		Age:       30,
		PhoneNo:   "unset",
		Status:    "active",
	}

	if _, err := adminRepo.Create(ctx, admin, hashedPassword); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("admin account created successfully")
	return nil
}
