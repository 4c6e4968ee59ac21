package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

type itemsState int

const (
	itemsStateBrowse itemsState = iota
	itemsStateAdd
	itemsStateEdit
	itemsStateAdjust
	itemsStateConfirm
	itemsStateSearch
)

var sortCycle = []item.Sort{
	item.SortNameAsc,
	item.SortNameDesc,
	item.SortQuantityAsc,
	item.SortQuantityDesc,
	item.SortDateNewest,
	item.SortDateOldest,
}

type ItemsModel struct {
	CommonModel
	invService *inventory.Service

	state itemsState
	table table.Model
	items []*item.Item
	form  *huh.Form

	sortIdx int
	filter  item.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formCategory string
	formQuantity string
	formUnit     string
	formPricePcs string
	formPriceBox string
	formPriceTub string
	formDate     string
	formSearch   string

	// Pending adjustment awaiting form or confirmation
	adjustDirection inventory.Direction
	adjustAmount    int
	confirmDelete   bool
	confirmed       bool
}

func NewItemsModel(invSvc *inventory.Service) ItemsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "Qty", Width: 6},
		{Title: "Unit", Width: 5},
		{Title: "Price", Width: 10},
		{Title: "Value", Width: 12},
		{Title: "Date", Width: 12},
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

	return ItemsModel{
		invService: invSvc,
		table:      t,
		filter:     item.ListFilter{Sort: item.SortNameAsc},
	}
}

func (m ItemsModel) Title() string { return "Items" }

func (m ItemsModel) ShortHelp() string {
	switch m.state {
	case itemsStateBrowse:
		return "Esc: back | a: add | e: edit | +: restock | -: sell | x: delete | /: search | s: sort | r: refresh"
	case itemsStateConfirm:
		return "Confirm removal"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m ItemsModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.items
		m.refreshTable()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadItemsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case itemsStateBrowse:
		return m.updateBrowse(msg)
	case itemsStateAdd, itemsStateEdit:
		return m.updateItemForm(msg)
	case itemsStateAdjust:
		return m.updateAdjust(msg)
	case itemsStateConfirm:
		return m.updateConfirm(msg)
	case itemsStateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m ItemsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadItemsCmd()
		case "a":
			return m.enterAdd()
		case "e":
			return m.enterEdit()
		case "+":
			return m.enterAdjust(inventory.DirectionRestock)
		case "-":
			return m.enterAdjust(inventory.DirectionSold)
		case "x":
			return m.enterDeleteConfirm()
		case "/":
			return m.enterSearch()
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
			m.filter.Sort = sortCycle[m.sortIdx]
			return m, m.loadItemsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ItemsModel) selected() *item.Item {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m ItemsModel) enterAdd() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCategory = ""
	m.formQuantity = "1"
	m.formUnit = string(item.UnitPcs)
	m.formPricePcs = ""
	m.formPriceBox = ""
	m.formPriceTub = ""
	m.formDate = FormatDate(time.Now())

	m.form = m.buildItemForm(true)
	m.state = itemsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) enterEdit() (tea.Model, tea.Cmd) {
	it := m.selected()
	if it == nil {
		return m, nil
	}

	m.formName = it.Name
	m.formCategory = it.Category
	m.formUnit = string(it.Unit)
	m.formPricePcs = FormatMoney(it.Prices.Pcs)
	m.formPriceBox = FormatMoney(it.Prices.Box)
	m.formPriceTub = FormatMoney(it.Prices.Tub)
	m.formDate = FormatDate(it.CreatedDate)

	m.form = m.buildItemForm(false)
	m.state = itemsStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) buildItemForm(withQuantity bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Value(&m.formName).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name cannot be empty")
				}
				return nil
			}),

		huh.NewInput().
			Key("category").
			Title("Category").
			Value(&m.formCategory),
	}

	if withQuantity {
		fields = append(fields, huh.NewInput().
			Key("quantity").
			Title("Quantity").
			Value(&m.formQuantity))
	}

	fields = append(fields,
		huh.NewSelect[string]().
			Key("unit").
			Title("Unit").
			Options(
				huh.NewOption("pcs", string(item.UnitPcs)),
				huh.NewOption("box", string(item.UnitBox)),
				huh.NewOption("tub", string(item.UnitTub)),
			).
			Value(&m.formUnit),

		huh.NewInput().Key("price_pcs").Title("Price (pcs)").Placeholder("0.00").Value(&m.formPricePcs),
		huh.NewInput().Key("price_box").Title("Price (box)").Placeholder("0.00").Value(&m.formPriceBox),
		huh.NewInput().Key("price_tub").Title("Price (tub)").Placeholder("0.00").Value(&m.formPriceTub),

		huh.NewInput().Key("date").Title("Date").Placeholder("YYYY-MM-DD").Value(&m.formDate),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
}

func (m ItemsModel) updateItemForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
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

	if m.state == itemsStateAdd {
		return m, m.addCmd()
	}

	return m, m.editCmd()
}

func (m ItemsModel) formValues() (inventory.ItemParams, error) {
	prices := item.PriceSet{}

	var err error

	if prices.Pcs, err = item.ParsePrice(m.form.GetString("price_pcs")); err != nil {
		return inventory.ItemParams{}, err
	}

	if prices.Box, err = item.ParsePrice(m.form.GetString("price_box")); err != nil {
		return inventory.ItemParams{}, err
	}

	if prices.Tub, err = item.ParsePrice(m.form.GetString("price_tub")); err != nil {
		return inventory.ItemParams{}, err
	}

	date, err := time.Parse(time.DateOnly, m.form.GetString("date"))
	if err != nil {
		return inventory.ItemParams{}, fmt.Errorf("parsing date: %w", err)
	}

	params := inventory.ItemParams{
		Name:        strings.TrimSpace(m.form.GetString("name")),
		Category:    strings.TrimSpace(m.form.GetString("category")),
		Unit:        item.Unit(m.form.GetString("unit")),
		Prices:      prices,
		CreatedDate: date,
	}

	if m.state == itemsStateAdd {
		if params.Quantity, err = strconv.Atoi(m.form.GetString("quantity")); err != nil {
			return inventory.ItemParams{}, fmt.Errorf("parsing quantity: %w", err)
		}
	}

	return params, nil
}

func (m ItemsModel) addCmd() tea.Cmd {
	params, err := m.formValues()

	return func() tea.Msg {
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		it, err := m.invService.AddItem(ctx, params)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		return mutationDoneMsg{status: fmt.Sprintf("Added %s", it.Name)}
	}
}

func (m ItemsModel) editCmd() tea.Cmd {
	it := m.selected()
	if it == nil {
		return nil
	}

	params, err := m.formValues()

	return func() tea.Msg {
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.invService.EditItem(ctx, it.ID, inventory.EditParams{
			Name:        params.Name,
			Category:    params.Category,
			Unit:        params.Unit,
			Prices:      params.Prices,
			CreatedDate: params.CreatedDate,
		})
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		return mutationDoneMsg{status: fmt.Sprintf("Saved %s", updated.Name)}
	}
}

func (m ItemsModel) enterAdjust(dir inventory.Direction) (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.adjustDirection = dir
	m.formQuantity = "1"

	title := "Restock amount"
	if dir == inventory.DirectionSold {
		title = "Sold amount"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(title).
				Value(&m.formQuantity).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("amount must be a positive number")
					}
					return nil
				}),
		),
	).WithWidth(35).WithShowHelp(false)

	m.state = itemsStateAdjust
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) updateAdjust(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
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

	amount, err := strconv.Atoi(m.form.GetString("amount"))
	if err != nil {
		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	m.adjustAmount = amount

	it := m.selected()
	if it != nil && m.adjustDirection == inventory.DirectionSold && amount >= it.Quantity {
		return m.enterTerminalConfirm(it)
	}

	return m, m.adjustCmd(false)
}

func (m ItemsModel) enterTerminalConfirm(it *item.Item) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("This sells all remaining stock of %s and removes it. Continue?", it.Name)).
				Value(&m.confirmed),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = itemsStateConfirm
	return m, m.form.Init()
}

func (m ItemsModel) enterDeleteConfirm() (tea.Model, tea.Cmd) {
	it := m.selected()
	if it == nil {
		return m, nil
	}

	m.confirmDelete = true
	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s (%d on hand)?", it.Name, it.Quantity)).
				Value(&m.confirmed),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = itemsStateConfirm
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
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

	if !m.form.GetBool("confirm") {
		m.state = itemsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	if m.confirmDelete {
		return m, m.deleteCmd()
	}

	return m, m.adjustCmd(true)
}

func (m ItemsModel) adjustCmd(confirmed bool) tea.Cmd {
	it := m.selected()
	if it == nil {
		return nil
	}

	dir := m.adjustDirection
	amount := m.adjustAmount

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.invService.AdjustStock(ctx, inventory.AdjustParams{
			ID:        it.ID,
			Direction: dir,
			Amount:    amount,
			Confirmed: confirmed,
		})
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		if res.Removed {
			return mutationDoneMsg{status: fmt.Sprintf("Sold out %s, item removed", it.Name)}
		}

		return mutationDoneMsg{status: fmt.Sprintf("%s now at %d", res.Item.Name, res.Item.Quantity)}
	}
}

func (m ItemsModel) deleteCmd() tea.Cmd {
	it := m.selected()
	if it == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.invService.DeleteItem(ctx, it.ID, true); err != nil {
			return mutationDoneMsg{err: err}
		}

		return mutationDoneMsg{status: fmt.Sprintf("Deleted %s", it.Name)}
	}
}

func (m ItemsModel) enterSearch() (tea.Model, tea.Cmd) {
	m.formSearch = m.filter.Search
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Search by name").
				Value(&m.formSearch),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = itemsStateSearch
	m.table.Blur()
	return m, m.form.Init()
}

func (m ItemsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = itemsStateBrowse
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

	m.filter.Search = strings.TrimSpace(m.form.GetString("search"))
	m.state = itemsStateBrowse
	m.form = nil
	m.table.Focus()
	return m, m.loadItemsCmd()
}

func (m ItemsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading items...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Sort: [s] %s", activeStyle(string(m.filter.Sort)))
	if m.filter.Search != "" {
		header += fmt.Sprintf(" | Search: %s", activeStyle(m.filter.Search))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil && m.state != itemsStateBrowse {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(m.form.View())

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

func (m *ItemsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{
			it.Name,
			it.Category,
			strconv.Itoa(it.Quantity),
			string(it.Unit),
			FormatMoney(it.ActivePrice()),
			FormatMoney(it.Value()),
			FormatDate(it.CreatedDate),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadItemsMsg struct {
	items []*item.Item
	err   error
}

func (m ItemsModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := m.invService.List(ctx, m.filter)
		return loadItemsMsg{items: items, err: err}
	}
}

type mutationDoneMsg struct {
	status string
	err    error
}
