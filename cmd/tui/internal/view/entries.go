package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rwhitten/nestegg/internal/account"
	"github.com/rwhitten/nestegg/internal/ledger"
)

type entriesState int

const (
	entriesStateBrowse entriesState = iota
	entriesStateRecord
)

type EntriesModel struct {
	CommonModel
	entries  *ledger.Service
	accounts *account.Service

	state entriesState
	table table.Model
	rows  []*ledger.Entry
	all   []*account.Account
	form  *huh.Form

	// Filter cycling
	kindFilterIdx int
	dateFilterIdx int

	filter  ledger.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formAccount uuid.UUID
	formKind    string
	formDate    string
	formAmount  string
	formDesc    string
	formCat     string
	formGroup   string
}

func NewEntriesModel(entries *ledger.Service, accounts *account.Service) EntriesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 11},
		{Title: "Amount", Width: 10},
		{Title: "Group", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 36},
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

	return EntriesModel{entries: entries, accounts: accounts, table: t}
}

func (m EntriesModel) Title() string { return "Ledger Entries" }
func (m EntriesModel) ShortHelp() string {
	if m.state == entriesStateRecord {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new entry | k: kind filter | d: date filter | r: refresh"
}

func (m EntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.entries
		m.all = msg.accounts
		m.status = ""
		m.refreshTable()
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Recorded."
		}
		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case entriesStateBrowse:
		return m.updateBrowse(msg)
	case entriesStateRecord:
		return m.updateRecord(msg)
	}

	return m, nil
}

func (m EntriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterRecordMode()
		case "k":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m EntriesModel) enterRecordMode() (tea.Model, tea.Cmd) {
	if len(m.all) == 0 {
		m.status = "No accounts yet."
		return m, nil
	}

	accountOpts := make([]huh.Option[uuid.UUID], 0, len(m.all))
	for _, a := range m.all {
		accountOpts = append(accountOpts, huh.NewOption(a.Name, a.ID))
	}

	m.formAccount = m.all[0].ID
	m.formKind = string(ledger.KindWithdrawal)
	m.formDate = FormatDate(time.Now())
	m.formAmount = ""
	m.formDesc = ""
	m.formCat = ""
	m.formGroup = string(ledger.GroupDiscretionary)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("account").
				Title("Account").
				Options(accountOpts...).
				Value(&m.formAccount),

			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Withdrawal", string(ledger.KindWithdrawal)),
					huh.NewOption("Deposit", string(ledger.KindDeposit)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("2006-01-02").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
					return err
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if d.IsNegative() {
						return fmt.Errorf("amount is a magnitude; pick the kind instead")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCat),

			huh.NewSelect[string]().
				Key("group").
				Title("Budget Group").
				Options(
					huh.NewOption("Mandatory", string(ledger.GroupMandatory)),
					huh.NewOption("Mortgage", string(ledger.GroupMortgage)),
					huh.NewOption("Debts, Goals, Retirement", string(ledger.GroupDGR)),
					huh.NewOption("Discretionary", string(ledger.GroupDiscretionary)),
				).
				Value(&m.formGroup),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = entriesStateRecord
	m.table.Blur()
	return m, m.form.Init()
}

func (m EntriesModel) updateRecord(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = entriesStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m EntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	kindLabels := []string{"All", "Deposits", "Withdrawals"}
	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf(
		"Filter: [k] Kind: %s | [d] Date: %s",
		activeStyle(kindLabels[m.kindFilterIdx]),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == entriesStateRecord && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Record Entry\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *EntriesModel) applyFilter() {
	switch m.kindFilterIdx {
	case 1:
		m.filter.Kind = new(ledger.KindDeposit)
	case 2:
		m.filter.Kind = new(ledger.KindWithdrawal)
	default:
		m.filter.Kind = nil
	}

	now := time.Now()
	switch m.dateFilterIdx {
	case 1:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	case 2:
		s := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *EntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Kind),
			FormatAmount(e.Amount),
			string(e.BudgetGroup),
			e.Category,
			e.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type entriesLoadedMsg struct {
	entries  []*ledger.Entry
	accounts []*account.Account
	err      error
}

func (m EntriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.entries.List(ctx, m.filter)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}

		accounts, err := m.accounts.List(ctx, account.ListFilter{})
		if err != nil {
			return entriesLoadedMsg{err: err}
		}

		return entriesLoadedMsg{entries: entries, accounts: accounts}
	}
}

type entrySavedMsg struct {
	err error
}

func (m EntriesModel) saveCmd() tea.Cmd {
	params := ledger.EntryParams{
		AccountID:   m.formAccount,
		Kind:        ledger.Kind(m.formKind),
		BudgetGroup: ledger.BudgetGroup(m.formGroup),
		Category:    strings.TrimSpace(m.formCat),
		Description: strings.TrimSpace(m.formDesc),
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	if err != nil {
		return func() tea.Msg { return entrySavedMsg{err: err} }
	}
	params.Date = date

	amount, err := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	if err != nil {
		return func() tea.Msg { return entrySavedMsg{err: err} }
	}
	params.Amount = amount

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.entries.RecordEntry(ctx, params)
		return entrySavedMsg{err: err}
	}
}
