package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tallybooks/tally-backend/internal/business"
	"github.com/tallybooks/tally-backend/internal/config"
	"github.com/tallybooks/tally-backend/internal/handler"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/logging"
	"github.com/tallybooks/tally-backend/internal/middleware"
	"github.com/tallybooks/tally-backend/internal/repository"
	"github.com/tallybooks/tally-backend/internal/tax"
	"github.com/tallybooks/tally-backend/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("tally-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accountRepo := repository.NewAccountRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	businessRepo := repository.NewBusinessRepository(db)

	ledgerSvc := ledger.NewService(accountRepo, journalRepo, db)
	transactionSvc := transaction.NewService(transactionRepo, ledgerSvc, db)
	businessSvc := business.NewService(businessRepo, ledgerSvc, db)
	taxRegistry := tax.NewRegistry(
		tax.NewNigeriaStrategy(),
		tax.NewUSStrategy(),
	)

	healthHandler := handler.NewHealthHandler(db)
	businessHandler := handler.NewBusinessHandler(businessSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc)
	taxHandler := handler.NewTaxHandler(taxRegistry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/businesses", businessHandler.Create)
	api.HandleFunc("GET /api/v1/businesses/{id}", businessHandler.Get)
	api.HandleFunc("POST /api/v1/businesses/{id}/transactions", transactionHandler.Create)
	api.HandleFunc("GET /api/v1/businesses/{id}/transactions", transactionHandler.List)
	api.HandleFunc("GET /api/v1/businesses/{id}/accounts", ledgerHandler.ListAccounts)
	api.HandleFunc("GET /api/v1/businesses/{id}/accounts/{code}/balance", ledgerHandler.Balance)
	api.HandleFunc("GET /api/v1/businesses/{id}/journal-entries", ledgerHandler.ListEntries)
	api.HandleFunc("GET /api/v1/businesses/{id}/trial-balance", ledgerHandler.TrialBalance)
	api.HandleFunc("POST /api/v1/tax/estimate", taxHandler.Estimate)

	mux.Handle("/api/v1/", middleware.Auth(cfg.JWTSecret)(api))

	chain := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
