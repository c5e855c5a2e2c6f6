// Package menu implements the interactive terminal front end. It owns all
// prompting and rendering; every mutation goes through the catalog service
// and every failure the core returns is shown as a message, never a crash.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"techmart/internal/clock"
	"techmart/internal/insights"
	"techmart/internal/models"
	"techmart/internal/service"
)

const (
	welcomeMessage   = "Welcome to Tech Mart Management System!!!"
	invalidSelection = "NOT IN CHOICES PICK AGAIN"
	clearScreen      = "\033[2J\033[H"
)

// command binds one menu key to its label and handler. A nil handler returns
// to the previous menu.
type command struct {
	key   string
	label string
	run   func(*Menu) error
}

var mainCommands = []command{
	{"1", "Add Product Inventory", (*Menu).addProduct},
	{"2", "Update Product Quantity", (*Menu).updateQuantity},
	{"3", "Remove a product from inventory", (*Menu).removeProduct},
	{"4", "Display Inventory", (*Menu).displayMenu},
	{"5", "Recover Deleted Product", (*Menu).recoverProduct},
	{"6", "Product Restock Level Alert", (*Menu).restockAlert},
	{"7", "Show TechMart Insights", (*Menu).showInsights},
	{"8", "Exit", (*Menu).exit},
}

var updateCommands = []command{
	{"1", "Add Product Quantity Transaction", (*Menu).buyTransaction},
	{"2", "Remove Product Quantity Transaction", (*Menu).sellTransaction},
	{"3", "Return to home", nil},
}

var displayCommands = []command{
	{"1", "Display Active Product Inventory", (*Menu).displayActive},
	{"2", "Display Inactive Product Inventory", (*Menu).displayInactive},
	{"3", "Display Product Transaction History", (*Menu).displayHistory},
	{"4", "Return to home", nil},
}

// column pairs a table header with its left-justified display width.
type column struct {
	header string
	width  int
}

var inventoryColumns = []column{
	{"Product ID", 36},
	{"Product Name", 16},
	{"Quantity", 8},
	{"Threshold1", 10},
	{"Threshold2", 10},
	{"Last Updated", 26},
}

var historyColumns = []column{
	{"Transaction ID", 36},
	{"Transaction Type", 16},
	{"Start Qty", 9},
	{"Add", 9},
	{"Remove", 9},
	{"End Qty", 9},
	{"Unit Price", 11},
	{"Total Value", 11},
	{"Timestamp", 26},
}

// Menu drives the interactive loop over one catalog.
type Menu struct {
	catalog *service.Catalog
	clock   clock.Clock
	in      *bufio.Scanner
	out     io.Writer
	quit    bool
}

// New returns a menu reading commands from in and rendering to out.
func New(catalog *service.Catalog, clk clock.Clock, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		clock:   clk,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the main menu until the user exits or input runs out.
func (m *Menu) Run() error {
	m.clear()
	fmt.Fprintln(m.out, welcomeMessage)
	for !m.quit {
		m.renderChoices(mainCommands)
		choice := m.prompt("What do you want to do: ")
		if m.quit {
			break
		}
		cmd := findCommand(mainCommands, choice)
		if cmd == nil {
			m.clear()
			fmt.Fprintln(m.out, invalidSelection)
			m.pause()
			m.clear()
			continue
		}
		if err := cmd.run(m); err != nil {
			m.renderError(err)
		}
		m.clear()
	}
	return m.in.Err()
}

func (m *Menu) addProduct() error {
	m.clear()
	name := m.prompt("Enter Product Name: ")
	threshold1, err := m.promptInt("Enter Threshold 1: ")
	if err != nil {
		return err
	}
	threshold2, err := m.promptInt("Enter Threshold 2: ")
	if err != nil {
		return err
	}
	p, err := m.catalog.CreateProduct(name, threshold1, threshold2)
	if err != nil {
		return err
	}
	m.clear()
	fmt.Fprintln(m.out, "Added:")
	m.renderProducts([]models.Product{p})
	m.pause()
	return nil
}

func (m *Menu) updateQuantity() error {
	return m.submenu(updateCommands, "What to do: ")
}

func (m *Menu) displayMenu() error {
	return m.submenu(displayCommands, "What to view: ")
}

func (m *Menu) buyTransaction() error {
	return m.transaction(models.KindBuy)
}

func (m *Menu) sellTransaction() error {
	return m.transaction(models.KindSell)
}

func (m *Menu) transaction(kind models.TxnKind) error {
	m.clear()
	id := m.prompt("Input Product ID: ")
	if _, err := m.catalog.FindActiveIndex(id); err != nil {
		return err
	}

	var (
		qty   int
		price decimal.Decimal
		err   error
	)
	if kind == models.KindBuy {
		if qty, err = m.promptInt("Enter Quantity to Add: "); err != nil {
			return err
		}
		price, err = m.promptDecimal("Enter Price Bought: ")
	} else {
		if qty, err = m.promptInt("Enter Quantity to Remove: "); err != nil {
			return err
		}
		price, err = m.promptDecimal("Enter Price Sold: ")
	}
	if err != nil {
		return err
	}

	updated, _, err := m.catalog.AdjustQuantity(id, kind, qty, price)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Updated:")
	m.renderProducts([]models.Product{updated})
	m.pause()
	return nil
}

func (m *Menu) removeProduct() error {
	m.clear()
	id := m.prompt("Input Product ID: ")
	p, err := m.catalog.RemoveProduct(id)
	if err != nil {
		return err
	}
	m.clear()
	fmt.Fprintln(m.out, "Deleted:")
	m.renderProducts([]models.Product{p})
	m.pause()
	return nil
}

func (m *Menu) recoverProduct() error {
	m.clear()
	id := m.prompt("Input Product ID: ")
	p, err := m.catalog.RecoverProduct(id)
	if err != nil {
		return err
	}
	m.clear()
	fmt.Fprintln(m.out, "Recovered:")
	m.renderProducts([]models.Product{p})
	m.pause()
	return nil
}

func (m *Menu) displayActive() error {
	products, err := m.catalog.ActiveProducts()
	if err != nil {
		return err
	}
	m.clear()
	fmt.Fprintln(m.out, "ACTIVE INVENTORY:")
	m.renderProducts(products)
	m.pause()
	return nil
}

func (m *Menu) displayInactive() error {
	products, err := m.catalog.InactiveProducts()
	if err != nil {
		return err
	}
	m.clear()
	fmt.Fprintln(m.out, "INACTIVE INVENTORY:")
	m.renderProducts(products)
	m.pause()
	return nil
}

// displayHistory shows a product's transactions newest first. The ledger
// itself stays in append order; only the rendering is reversed.
func (m *Menu) displayHistory() error {
	m.clear()
	id := m.prompt("Input Product ID: ")
	entries, err := m.catalog.History(id)
	if err != nil {
		return err
	}
	m.clear()
	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rows = append(rows, entries[i].Record())
	}
	m.renderTable(historyColumns, rows)
	m.pause()
	return nil
}

func (m *Menu) restockAlert() error {
	m.clear()
	id := m.prompt("Input Product ID (leave blank for full report): ")
	if id == "" {
		return m.restockReport()
	}
	p, err := m.catalog.ActiveProduct(id)
	if err != nil {
		return err
	}
	alert, err := m.catalog.CheckRestockAlert(id)
	if err != nil {
		return err
	}
	switch alert {
	case models.NoAlert:
		fmt.Fprintf(m.out, "No Restock Needed! Current Qty: %d above Threshold 1 and 2 (%d,%d)\n",
			p.Quantity, p.ThresholdHigh, p.ThresholdLow)
	case models.BelowHigh:
		fmt.Fprintln(m.out, "Restock Needed!")
		fmt.Fprintf(m.out, "Current Qty: %d is less than threshold 1 - %d\n", p.Quantity, p.ThresholdHigh)
	case models.BelowBoth:
		fmt.Fprintln(m.out, "Restock Needed!")
		fmt.Fprintf(m.out, "Current Qty: %d is less than threshold 1 - %d\n", p.Quantity, p.ThresholdHigh)
		fmt.Fprintf(m.out, "Current Qty: %d is less than threshold 2 - %d\n", p.Quantity, p.ThresholdLow)
	}
	m.pause()
	return nil
}

func (m *Menu) restockReport() error {
	report, err := m.catalog.RestockReport()
	if err != nil {
		return err
	}
	if len(report) == 0 {
		fmt.Fprintln(m.out, "Nothing to restock.")
	}
	for _, item := range report {
		fmt.Fprintf(m.out, "%s (%s): qty %d, %s\n",
			item.Product.Name, item.Product.ID, item.Product.Quantity, item.Alert)
	}
	m.pause()
	return nil
}

func (m *Menu) showInsights() error {
	m.clear()
	id := m.prompt("Input Product ID: ")
	entries, err := m.catalog.History(id)
	if err != nil {
		return err
	}
	s := insights.Summarize(entries)
	fmt.Fprintf(m.out, "TechMart Insights as of %s\n", m.clock.Now().Format(models.TimestampLayout))
	fmt.Fprintf(m.out, "Total Revenue is %s\n", s.Revenue)
	fmt.Fprintf(m.out, "Total Value Bought is %s\n", s.TotalBought)
	fmt.Fprintf(m.out, "Total Value Sold is %s\n", s.TotalSold)
	fmt.Fprintf(m.out, "Ave Buy Price is %s\n", s.AvgBuyPrice)
	fmt.Fprintf(m.out, "Min buy price is %s, Max buy price is %s\n", s.MinBuyPrice, s.MaxBuyPrice)
	fmt.Fprintf(m.out, "Ave Sell Price is %s\n", s.AvgSellPrice)
	fmt.Fprintf(m.out, "Min sell price is %s, Max sell price is %s\n", s.MinSellPrice, s.MaxSellPrice)
	fmt.Fprintf(m.out, "Number of transactions occurred is %d\n", s.Transactions)
	m.pause()
	return nil
}

func (m *Menu) exit() error {
	m.quit = true
	return nil
}

// submenu loops until a listed choice is picked, runs it once, and returns.
func (m *Menu) submenu(commands []command, label string) error {
	m.clear()
	for !m.quit {
		m.renderChoices(commands)
		choice := m.prompt(label)
		if m.quit {
			return nil
		}
		cmd := findCommand(commands, choice)
		if cmd == nil {
			m.clear()
			continue
		}
		if cmd.run == nil {
			return nil
		}
		return cmd.run(m)
	}
	return nil
}

func (m *Menu) renderChoices(commands []command) {
	for _, c := range commands {
		fmt.Fprintf(m.out, "%s - %s\n", c.key, c.label)
	}
}

func (m *Menu) renderProducts(products []models.Product) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, p.Record())
	}
	m.renderTable(inventoryColumns, rows)
}

func (m *Menu) renderTable(columns []column, rows [][]string) {
	for _, col := range columns {
		fmt.Fprintf(m.out, "%-*s | ", col.width, col.header)
	}
	fmt.Fprintln(m.out)
	for _, row := range rows {
		for i, cell := range row {
			if i < len(columns) {
				fmt.Fprintf(m.out, "%-*s | ", columns[i].width, cell)
			}
		}
		fmt.Fprintln(m.out)
	}
}

func (m *Menu) renderError(err error) {
	if errors.Is(err, service.ErrProductNotFound) {
		fmt.Fprintln(m.out, "Product does not exist!")
	} else {
		fmt.Fprintln(m.out, err)
	}
	m.pause()
}

func (m *Menu) prompt(label string) string {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		m.quit = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *Menu) promptInt(label string) (int, error) {
	raw := m.prompt(label)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return n, nil
}

func (m *Menu) promptDecimal(label string) (decimal.Decimal, error) {
	raw := m.prompt(label)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a price", raw)
	}
	return d, nil
}

func (m *Menu) pause() {
	fmt.Fprint(m.out, "Click any button to continue...")
	if !m.in.Scan() {
		m.quit = true
	}
}

func (m *Menu) clear() {
	fmt.Fprint(m.out, clearScreen)
}

func findCommand(commands []command, key string) *command {
	for i := range commands {
		if commands[i].key == key {
			return &commands[i]
		}
	}
	return nil
}
