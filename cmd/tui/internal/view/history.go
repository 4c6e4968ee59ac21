package view

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

// EntryListerFunc loads movement log entries in the given order.
type EntryListerFunc func(ctx context.Context, order report.Order) ([]*report.Entry, error)

type HistoryModel struct {
	CommonModel
	entries EntryListerFunc

	table   table.Model
	order   report.Order
	rows    []*report.Entry
	loading bool
	err     error
}

func NewHistoryModel(entries EntryListerFunc) HistoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Action", Width: 10},
		{Title: "Qty", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Value", Width: 12},
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

	return HistoryModel{
		entries: entries,
		table:   t,
		order:   report.OrderNewestFirst,
	}
}

func (m HistoryModel) Title() string { return "Movement History" }
func (m HistoryModel) ShortHelp() string {
	return "Esc: back | o: toggle order | r: refresh"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.entries
		m.refreshTable()
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
		case "o":
			if m.order == report.OrderNewestFirst {
				m.order = report.OrderOldestFirst
			} else {
				m.order = report.OrderNewestFirst
			}
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading history...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "newest first"
	if m.order == report.OrderOldestFirst {
		label = "oldest first"
	}

	header := fmt.Sprintf("Order: [o] %s", activeStyle(label))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		rows = append(rows, table.Row{
			e.ItemName,
			string(e.Action),
			strconv.Itoa(e.QuantityDelta),
			FormatDate(e.Date),
			FormatMoney(e.LineValue()),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadHistoryMsg struct {
	entries []*report.Entry
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.entries(ctx, m.order)
		return loadHistoryMsg{entries: entries, err: err}
	}
}
