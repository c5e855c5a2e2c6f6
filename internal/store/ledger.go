package store

import "path/filepath"

// LedgerDir manages one record set per product under a single directory.
// Each product's transaction history lives in <dir>/<productID>.csv and is
// only ever appended to.
type LedgerDir struct {
	dir string
}

// NewLedgerDir returns a ledger directory rooted at dir. The directory is
// created lazily on first write.
func NewLedgerDir(dir string) *LedgerDir {
	return &LedgerDir{dir: dir}
}

// Path returns the file holding the ledger for productID.
func (d *LedgerDir) Path(productID string) string {
	return filepath.Join(d.dir, productID+".csv")
}

func (d *LedgerDir) store(productID string) *Store {
	return NewStore(d.Path(productID), "ledger "+productID)
}

// Create starts an empty ledger for productID. An existing ledger is left
// untouched.
func (d *LedgerDir) Create(productID string) error {
	return d.store(productID).Create()
}

// Append adds one transaction row to the product's ledger.
func (d *LedgerDir) Append(productID string, row []string) error {
	return d.store(productID).AppendOne(row)
}

// ReadAll returns the product's transaction rows in append order. A product
// with no ledger file yet has an empty history.
func (d *LedgerDir) ReadAll(productID string) ([][]string, error) {
	return d.store(productID).ReadAll()
}
