package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/handlers"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
	"github.com/junaidamjadofficial/newsite-accounting/internal/platform/config"
	"github.com/junaidamjadofficial/newsite-accounting/internal/repositories/database/pgsql"
	"github.com/junaidamjadofficial/newsite-accounting/pkg/database"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register custom validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Tenant-ID", "X-User-ID")
	r.Use(cors.New(corsConfig))

	rateLimiter := limiter.New(memorystore.NewStore(), limiter.Rate{
		Period: cfg.RateLimitPeriod,
		Limit:  cfg.RateLimitRequests,
	})
	r.Use(middleware.RateLimit(rateLimiter))

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := buildServices(cfg, repos)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the service layer onto the repositories.
func buildServices(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	balanceSvc := services.NewBalanceService(repos.AccountRepo, repos.JournalRepo, repos.OpeningBalanceRepo)
	return &portssvc.ServiceContainer{
		Account:        services.NewAccountService(repos.AccountRepo),
		OpeningBalance: services.NewOpeningBalanceService(repos.AccountRepo, repos.OpeningBalanceRepo),
		Journal:        services.NewJournalService(repos.AccountRepo, repos.JournalRepo),
		Balance:        balanceSvc,
		Reporting:      services.NewReportingService(repos.AccountRepo, repos.JournalRepo, balanceSvc),
		Ledger:         services.NewLedgerService(repos.AccountRepo, repos.JournalRepo, repos.OpeningBalanceRepo),
		BalanceSheet:   services.NewBalanceSheetService(repos.AccountRepo, repos.BalanceSheetRepo, balanceSvc, cfg.RetainedEarningsCode),
		Closing:        services.NewClosingService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, repos.OpeningBalanceRepo, cfg.RetainedEarningsCode),
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// taking traffic. It uses a short-lived database/sql connection through the
// pgx stdlib driver, compatible with the main pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
