package menu

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techmart/internal/clock"
	"techmart/internal/models"
	"techmart/internal/money"
	"techmart/internal/service"
	"techmart/internal/store"
)

func newTestCatalog(t *testing.T) (*service.Catalog, *clock.Fixed) {
	t.Helper()
	dir := t.TempDir()
	active := store.NewStore(filepath.Join(dir, "tech_mart_inventory.csv"), "active")
	inactive := store.NewStore(filepath.Join(dir, "inactive_tech_mart_inventory.csv"), "inactive")
	ledgers := store.NewLedgerDir(filepath.Join(dir, "inventory"))
	clk := clock.NewFixed(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))
	return service.NewCatalog(active, inactive, ledgers, money.DefaultStep, clk, zap.NewNop()), clk
}

func runSession(t *testing.T, catalog *service.Catalog, clk clock.Clock, script ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	m := New(catalog, clk, strings.NewReader(strings.Join(script, "\n")+"\n"), out)
	require.NoError(t, m.Run())
	return out.String()
}

func mustPrice(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestExitImmediately(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	out := runSession(t, catalog, clk, "8")
	assert.Contains(t, out, "Welcome to Tech Mart Management System!!!")
	assert.Contains(t, out, "1 - Add Product Inventory")
}

func TestInvalidSelectionShowsMessageAndReprompts(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	out := runSession(t, catalog, clk, "9", "", "8")
	assert.Contains(t, out, "NOT IN CHOICES PICK AGAIN")
}

func TestAddProductFlow(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	out := runSession(t, catalog, clk, "1", "Laptop", "10", "5", "", "8")
	assert.Contains(t, out, "Added:")

	products, err := catalog.ActiveProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, 0, products[0].Quantity)
}

func TestAddProductRejectsBadThresholdInput(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	out := runSession(t, catalog, clk, "1", "Laptop", "lots", "", "8")
	assert.Contains(t, out, `"lots" is not a whole number`)

	products, err := catalog.ActiveProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBuyTransactionFlow(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "2", "1", p.ID, "20", "2.50", "", "8")
	assert.Contains(t, out, "Updated:")

	got, err := catalog.ActiveProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)
}

func TestSellBeyondStockShowsMessageAndKeepsQuantity(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(p.ID, models.KindBuy, 5, mustPrice(t, "2"))
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "2", "2", p.ID, "6", "3", "", "8")
	assert.Contains(t, out, "insufficient stock")

	got, err := catalog.ActiveProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestDisplayActiveInventoryRendersColumns(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	_, err := catalog.CreateProduct("Mechanical Keyboard", 10, 5)
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "4", "1", "", "8")
	assert.Contains(t, out, "ACTIVE INVENTORY:")
	assert.Contains(t, out, "Product ID")
	assert.Contains(t, out, "Last Updated")
	assert.Contains(t, out, "Mechanical Keyboard")
}

func TestHistoryRendersNewestFirst(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)
	_, first, err := catalog.AdjustQuantity(p.ID, models.KindBuy, 20, mustPrice(t, "2.50"))
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, second, err := catalog.AdjustQuantity(p.ID, models.KindSell, 3, mustPrice(t, "5"))
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "4", "3", p.ID, "", "8")
	assert.Contains(t, out, "Transaction ID")
	require.Contains(t, out, first.TxnID)
	require.Contains(t, out, second.TxnID)
	assert.Less(t, strings.Index(out, second.TxnID), strings.Index(out, first.TxnID))
}

func TestRemoveUnknownProductShowsFriendlyMessage(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	out := runSession(t, catalog, clk, "3", "no-such-id", "", "8")
	assert.Contains(t, out, "Product does not exist!")
}

func TestRemoveThenRecoverFlow(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "3", p.ID, "", "5", p.ID, "", "8")
	assert.Contains(t, out, "Deleted:")
	assert.Contains(t, out, "Recovered:")

	got, err := catalog.ActiveProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestRestockAlertForOneProduct(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(p.ID, models.KindBuy, 3, mustPrice(t, "2"))
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "6", p.ID, "", "8")
	assert.Contains(t, out, "Restock Needed!")
	assert.Contains(t, out, "less than threshold 1 - 10")
	assert.Contains(t, out, "less than threshold 2 - 5")
}

func TestRestockReportOnBlankID(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Webcam", 10, 5)
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(p.ID, models.KindBuy, 2, mustPrice(t, "2"))
	require.NoError(t, err)
	healthy, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(healthy.ID, models.KindBuy, 40, mustPrice(t, "2"))
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "6", "", "", "8")
	assert.Contains(t, out, "Webcam")
	assert.Contains(t, out, "below thresholds 1 and 2")
	assert.NotContains(t, out, "Laptop (")
}

func TestInsightsView(t *testing.T) {
	catalog, clk := newTestCatalog(t)
	p, err := catalog.CreateProduct("Laptop", 10, 5)
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(p.ID, models.KindBuy, 20, mustPrice(t, "2.50"))
	require.NoError(t, err)
	_, _, err = catalog.AdjustQuantity(p.ID, models.KindSell, 3, mustPrice(t, "5"))
	require.NoError(t, err)

	out := runSession(t, catalog, clk, "7", p.ID, "", "8")
	assert.Contains(t, out, "TechMart Insights as of")
	assert.Contains(t, out, "Total Revenue is -35")
	assert.Contains(t, out, "Total Value Bought is 50")
	assert.Contains(t, out, "Total Value Sold is 15")
	assert.Contains(t, out, "Number of transactions occurred is 2")
}

func TestEndOfInputStopsTheLoop(t *testing.T) {
	catalog, clk := newTestCatalog(t)

	// No exit command; the session just runs out of input.
	out := runSession(t, catalog, clk, "4", "1")
	assert.Contains(t, out, "ACTIVE INVENTORY:")
}
