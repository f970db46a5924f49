package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rwhitten/nestegg/cmd/tui/internal/view"
	"github.com/rwhitten/nestegg/internal/account"
	accountStore "github.com/rwhitten/nestegg/internal/account/store"
	"github.com/rwhitten/nestegg/internal/budget"
	budgetStore "github.com/rwhitten/nestegg/internal/budget/store"
	"github.com/rwhitten/nestegg/internal/config"
	"github.com/rwhitten/nestegg/internal/database"
	"github.com/rwhitten/nestegg/internal/ledger"
	ledgerStore "github.com/rwhitten/nestegg/internal/ledger/store"
	"github.com/rwhitten/nestegg/internal/projection"
	"github.com/rwhitten/nestegg/internal/user"
	userStore "github.com/rwhitten/nestegg/internal/user/store"
)

type model struct {
	currentView View

	accountsView view.AccountsModel
	entriesView  view.EntriesModel
	budgetView   view.BudgetModel
}

type View int

const (
	ViewMenu     View = 0
	ViewAccounts View = 1
	ViewEntries  View = 2
	ViewBudget   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

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

	entries := ledgerStore.New(db)

	userSvc := user.NewService(userStore.New(db))
	ledgerSvc := ledger.NewService(entries)
	accountSvc := account.NewService(accountStore.New(db), entries)
	budgetSvc := budget.NewService(budgetStore.New(db))
	projectionSvc := projection.NewService(accountSvc)

	return model{
		currentView:  ViewMenu,
		accountsView: view.NewAccountsModel(accountSvc, projectionSvc),
		entriesView:  view.NewEntriesModel(ledgerSvc, accountSvc),
		budgetView:   view.NewBudgetModel(userSvc, budgetSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAccounts
				return m, m.accountsView.Init()
			case "2":
				m.currentView = ViewEntries
				return m, m.entriesView.Init()
			case "3":
				m.currentView = ViewBudget
				return m, m.budgetView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewEntries:
		var newModel tea.Model
		newModel, cmd = m.entriesView.Update(msg)
		m.entriesView = newModel.(view.EntriesModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Nestegg TUI\n\n" +
				"1. Accounts & Projections\n" +
				"2. Ledger Entries\n" +
				"3. Monthly Budget\n\n" +
				"q. Quit",
		)
	case ViewAccounts:
		return m.accountsView.View()
	case ViewEntries:
		return m.entriesView.View()
	case ViewBudget:
		return m.budgetView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
