package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/projection"
)

// accountRow pairs an account with the derived figures the table shows.
type accountRow struct {
	account    *account.Account
	balance    string
	estimate1y string
	estimate5y string
}

type AccountsModel struct {
	CommonModel
	accounts  *account.Service
	projector *projection.Service

	table   table.Model
	rows    []accountRow
	loading bool
	err     error
	status  string
}

func NewAccountsModel(accounts *account.Service, projector *projection.Service) AccountsModel {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Kind", Width: 12},
		{Title: "Balance", Width: 12},
		{Title: "Est. +1y", Width: 12},
		{Title: "Est. +5y", Width: 12},
		{Title: "Target", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return AccountsModel{accounts: accounts, projector: projector, table: t}
}

func (m AccountsModel) Title() string { return "Accounts" }
func (m AccountsModel) ShortHelp() string {
	return "Esc: back | r: refresh | t: time to target"
}

func (m AccountsModel) Init() tea.Cmd {
	m.loading = true
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.rows
		m.refreshTable()
		return m, nil

	case targetReachedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s reaches its target around %s", msg.name, FormatDate(msg.when))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			return m, m.timeToTargetCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		target := ""
		if !r.account.TargetAmount.IsZero() {
			target = FormatAmount(r.account.TargetAmount)
		}
		rows = append(rows, table.Row{
			r.account.Name,
			string(r.account.Kind),
			r.balance,
			r.estimate1y,
			r.estimate5y,
			target,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type accountsLoadedMsg struct {
	rows []accountRow
	err  error
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accounts.List(ctx, account.ListFilter{})
		if err != nil {
			return accountsLoadedMsg{err: err}
		}

		thisMonth := dateutil.MonthOf(time.Now().UTC())

		rows := make([]accountRow, 0, len(accounts))
		for _, a := range accounts {
			balance, err := m.accounts.BalanceIncluding(ctx, a, thisMonth)
			if err != nil {
				return accountsLoadedMsg{err: err}
			}

			row := accountRow{account: a, balance: FormatAmount(balance), estimate1y: "-", estimate5y: "-"}

			est1y, err := m.projector.EstimateBalance(ctx, a, thisMonth.AddMonths(12), projection.DefaultWindow, projection.KindLinear)
			if err == nil {
				row.estimate1y = FormatAmount(est1y)
			} else if !errors.Is(err, projection.ErrEmptyHistory) {
				return accountsLoadedMsg{err: err}
			}

			est5y, err := m.projector.EstimateBalance(ctx, a, thisMonth.AddMonths(60), projection.DefaultWindow, projection.KindLinear)
			if err == nil {
				row.estimate5y = FormatAmount(est5y)
			} else if !errors.Is(err, projection.ErrEmptyHistory) {
				return accountsLoadedMsg{err: err}
			}

			rows = append(rows, row)
		}

		return accountsLoadedMsg{rows: rows}
	}
}

type targetReachedMsg struct {
	name string
	when time.Time
	err  error
}

func (m AccountsModel) timeToTargetCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	a := m.rows[idx].account
	if a.TargetAmount.IsZero() {
		return func() tea.Msg {
			return targetReachedMsg{err: fmt.Errorf("%s has no target amount", a.Name)}
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		when, err := m.projector.TimeToReach(ctx, a, a.TargetAmount, projection.DefaultWindow, projection.KindLinear)
		return targetReachedMsg{name: a.Name, when: when, err: err}
	}
}
