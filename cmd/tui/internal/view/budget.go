package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rwhitten/nestegg/internal/budget"
	"github.com/rwhitten/nestegg/internal/dateutil"
	"github.com/rwhitten/nestegg/internal/user"
)

// BudgetModel shows one user's month: planned amounts next to what the
// ledger actually recorded, and what is left per group.
type BudgetModel struct {
	CommonModel
	users   *user.Service
	budgets *budget.Service

	table table.Model
	month dateutil.Month

	userList []*user.User
	userIdx  int

	loading bool
	err     error
}

func NewBudgetModel(users *user.Service, budgets *budget.Service) BudgetModel {
	columns := []table.Column{
		{Title: "Group", Width: 26},
		{Title: "Planned", Width: 12},
		{Title: "Actual", Width: 12},
		{Title: "Leftover", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	return BudgetModel{
		users:   users,
		budgets: budgets,
		table:   t,
		month:   dateutil.MonthOf(time.Now().UTC()),
	}
}

func (m BudgetModel) Title() string { return "Monthly Budget" }
func (m BudgetModel) ShortHelp() string {
	return "Esc: back | u: next user | [ / ]: prev/next month | r: refresh"
}

func (m BudgetModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.userList = msg.users
		if m.userIdx >= len(m.userList) {
			m.userIdx = 0
		}
		m.table.SetRows(msg.rows)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "u":
			if len(m.userList) > 0 {
				m.userIdx = (m.userIdx + 1) % len(m.userList)
			}
			return m, m.loadCmd()
		case "[":
			m.month = m.month.Prev()
			return m, m.loadCmd()
		case "]":
			m.month = m.month.Next()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BudgetModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budget...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	who := "no users"
	if len(m.userList) > 0 {
		who = m.userList[m.userIdx].Name
	}

	header := fmt.Sprintf("User: %s | Month: %s", activeStyle(who), activeStyle(m.month.String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type budgetLoadedMsg struct {
	users []*user.User
	rows  []table.Row
	err   error
}

func (m BudgetModel) loadCmd() tea.Cmd {
	month := m.month
	idx := m.userIdx

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		users, err := m.users.List(ctx)
		if err != nil {
			return budgetLoadedMsg{err: err}
		}

		if len(users) == 0 {
			return budgetLoadedMsg{users: users}
		}

		if idx >= len(users) {
			idx = 0
		}
		u := users[idx]

		planned, err := m.budgets.GetOrCreate(ctx, u.ID, month)
		if err != nil {
			return budgetLoadedMsg{err: err}
		}

		actual, err := m.budgets.ExpensesForMonth(ctx, u.ID, month)
		if err != nil {
			return budgetLoadedMsg{err: err}
		}

		leftover, err := m.budgets.Leftover(ctx, u.ID, month)
		if err != nil {
			return budgetLoadedMsg{err: err}
		}

		rows := []table.Row{
			{"Mandatory", FormatAmount(planned.Mandatory), FormatAmount(actual.Mandatory), FormatAmount(leftover.Mandatory)},
			{"Mortgage", FormatAmount(planned.Mortgage), FormatAmount(actual.Mortgage), FormatAmount(leftover.Mortgage)},
			{"Debts, Goals, Retirement", FormatAmount(planned.DebtsGoalsRetirement), FormatAmount(actual.DebtsGoalsRetirement), FormatAmount(leftover.DebtsGoalsRetirement)},
			{"Discretionary", FormatAmount(planned.Discretionary), FormatAmount(actual.Discretionary), FormatAmount(leftover.Discretionary)},
			{"Statutory", "-", FormatAmount(actual.Statutory), "-"},
		}

		return budgetLoadedMsg{users: users, rows: rows}
	}
}
