package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/stockroom/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/stockroom/internal/auth"
	"github.com/MrJamesThe3rd/stockroom/internal/config"
	"github.com/MrJamesThe3rd/stockroom/internal/database"
	"github.com/MrJamesThe3rd/stockroom/internal/export"
	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	invStore "github.com/MrJamesThe3rd/stockroom/internal/inventory/store"
	reportStore "github.com/MrJamesThe3rd/stockroom/internal/report/store"
	"github.com/MrJamesThe3rd/stockroom/internal/summary"
)

type model struct {
	invService     *inventory.Service
	summaryService *summary.Service
	exportService  *export.Service
	entryStore     *reportStore.Store

	currentView View
	username    string

	loginView     view.LoginModel
	itemsView     view.ItemsModel
	historyView   view.HistoryModel
	dashboardView view.DashboardModel
	exportView    view.ExportModel
}

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewItems     View = 2
	ViewHistory   View = 3
	ViewDashboard View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	creds, err := cfg.Credentials()
	if err != nil {
		slog.Error("failed to parse credentials", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := invStore.New(db)
	entries := reportStore.New(db)

	authSvc := auth.NewService(creds, cfg.Auth.SigningKey, cfg.Auth.SessionTTL)
	invSvc := inventory.NewService(store, nil)
	summarySvc := summary.NewService(store)
	exportSvc := export.NewService(entries)

	return model{
		invService:     invSvc,
		summaryService: summarySvc,
		exportService:  exportSvc,
		entryStore:     entries,
		currentView:    ViewLogin,
		loginView:      view.NewLoginModel(authSvc),
		itemsView:      view.NewItemsModel(invSvc),
		historyView:    view.NewHistoryModel(entries.ListEntries),
		dashboardView:  view.NewDashboardModel(summarySvc),
		exportView:     view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewItems
				m.itemsView = view.NewItemsModel(m.invService)

				return m, m.itemsView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.entryStore.ListEntries)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.summaryService)

				return m, m.dashboardView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		m.username = msg.Username
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewItems:
		var newModel tea.Model
		newModel, cmd = m.itemsView.Update(msg)
		m.itemsView = newModel.(view.ItemsModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Stockroom (" + m.username + ")\n\n" +
				"1. Items\n" +
				"2. Movement History\n" +
				"3. Dashboard\n" +
				"4. Export Report\n\n" +
				"q. Quit",
		)
	case ViewItems:
		return m.itemsView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExport:
		return m.exportView.View()
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
