package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rwhitten/nestegg/internal/account"
	accountStore "github.com/rwhitten/nestegg/internal/account/store"
	"github.com/rwhitten/nestegg/internal/budget"
	budgetStore "github.com/rwhitten/nestegg/internal/budget/store"
	"github.com/rwhitten/nestegg/internal/config"
	"github.com/rwhitten/nestegg/internal/database"
	neHttp "github.com/rwhitten/nestegg/internal/http"
	accountHandler "github.com/rwhitten/nestegg/internal/http/account"
	budgetHandler "github.com/rwhitten/nestegg/internal/http/budget"
	importHandler "github.com/rwhitten/nestegg/internal/http/importcsv"
	ledgerHandler "github.com/rwhitten/nestegg/internal/http/ledger"
	reportHandler "github.com/rwhitten/nestegg/internal/http/report"
	userHandler "github.com/rwhitten/nestegg/internal/http/user"
	"github.com/rwhitten/nestegg/internal/importer"
	"github.com/rwhitten/nestegg/internal/ledger"
	ledgerStore "github.com/rwhitten/nestegg/internal/ledger/store"
	"github.com/rwhitten/nestegg/internal/projection"
	"github.com/rwhitten/nestegg/internal/retirement"
	"github.com/rwhitten/nestegg/internal/user"
	userStore "github.com/rwhitten/nestegg/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Bootstrap(context.Background(), db); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	entries := ledgerStore.New(db)

	var (
		userService       = user.NewService(userStore.New(db))
		ledgerService     = ledger.NewService(entries)
		accountService    = account.NewService(accountStore.New(db), entries)
		budgetService     = budget.NewService(budgetStore.New(db))
		projectionService = projection.NewService(accountService)
		retirementService = retirement.NewService(accountService, projectionService)
		importService     = importer.NewService(ledgerService)
	)

	defaultSplit := budget.Split{
		MandatoryPct:     cfg.Budget.MandatoryPct,
		MortgagePct:      cfg.Budget.MortgagePct,
		DGRPct:           cfg.Budget.DGRPct,
		DiscretionaryPct: cfg.Budget.DiscretionaryPct,
	}

	var (
		usersH    = userHandler.NewHandler(userService)
		accountsH = accountHandler.NewHandler(accountService, projectionService)
		entriesH  = ledgerHandler.NewHandler(ledgerService)
		budgetsH  = budgetHandler.NewHandler(budgetService, defaultSplit)
		importH   = importHandler.NewHandler(importService)
		reportsH  = reportHandler.NewHandler(userService, accountService, budgetService, projectionService, retirementService)
	)

	router := neHttp.New(usersH, accountsH, entriesH, budgetsH, importH, reportsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
