package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/stockroom/internal/summary"
)

const chartBarWidth = 40

type DashboardModel struct {
	CommonModel
	summaryService *summary.Service

	overview summary.Overview
	loading  bool
	err      error
}

func NewDashboardModel(svc *summary.Service) DashboardModel {
	return DashboardModel{summaryService: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOverviewMsg:
		m.loading = false
		m.err = msg.err
		m.overview = msg.overview
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := lipgloss.NewStyle().Bold(true)

	totals := fmt.Sprintf("Items: %d    On-hand value: %s",
		m.overview.TotalItems, FormatMoney(m.overview.TotalValue))

	sections := []string{
		title.Render("Overview"),
		totals,
		"",
		title.Render("Low Stock"),
		m.viewLowStock(),
		"",
		title.Render("Value by Item"),
		m.viewChart(),
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m DashboardModel) viewLowStock() string {
	if len(m.overview.LowStock) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No items below threshold")
	}

	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	lines := make([]string, 0, len(m.overview.LowStock))
	for _, it := range m.overview.LowStock {
		lines = append(lines, warn.Render(fmt.Sprintf("%-24s %d left", it.Name, it.Quantity)))
	}

	return strings.Join(lines, "\n")
}

func (m DashboardModel) viewChart() string {
	if len(m.overview.Chart) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No items")
	}

	var max int64
	for _, p := range m.overview.Chart {
		if p.Value > max {
			max = p.Value
		}
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("57"))

	lines := make([]string, 0, len(m.overview.Chart))

	for _, p := range m.overview.Chart {
		width := 0
		if max > 0 {
			width = int(p.Value * chartBarWidth / max)
		}

		lines = append(lines, fmt.Sprintf("%-24s %s %s",
			p.Name,
			bar.Render(strings.Repeat("█", width)),
			FormatMoney(p.Value),
		))
	}

	return strings.Join(lines, "\n")
}

// Messages

type loadOverviewMsg struct {
	overview summary.Overview
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		overview, err := m.summaryService.Overview(ctx)
		return loadOverviewMsg{overview: overview, err: err}
	}
}
