// Package gnucashtest writes small GnuCash SQLite books for tests.
package gnucashtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Schema is the subset of the GnuCash SQL schema the ledger reader queries.
const Schema = `
	CREATE TABLE commodities (
		guid TEXT PRIMARY KEY,
		namespace TEXT,
		mnemonic TEXT,
		fullname TEXT,
		fraction INTEGER
	);
	CREATE TABLE accounts (
		guid TEXT PRIMARY KEY,
		name TEXT,
		account_type TEXT,
		commodity_guid TEXT,
		parent_guid TEXT,
		description TEXT,
		hidden INTEGER DEFAULT 0,
		placeholder INTEGER DEFAULT 0
	);
	CREATE TABLE transactions (
		guid TEXT PRIMARY KEY,
		currency_guid TEXT,
		num TEXT,
		post_date TEXT,
		enter_date TEXT,
		description TEXT
	);
	CREATE TABLE splits (
		guid TEXT PRIMARY KEY,
		tx_guid TEXT,
		account_guid TEXT,
		memo TEXT,
		value_num INTEGER,
		value_denom INTEGER,
		quantity_num INTEGER,
		quantity_denom INTEGER
	);
`

// Seed is a book kept in CAD whose expenses are paid in USD.
//
//	2025-01-05  Split dinner   three legs, CAD 30.00 from Checking
//	2025-01-10  Supermarket    US$11.00 groceries, CAD 10.00 from Checking
//	2025-01-12  Hotel stay     US$100.00 hotel, CAD 135.00 on Visa
//	2025-01-12  Market         US$6.00 groceries, CAD 5.50 from Checking
//	2025-02-02  Bank fee       single leg, CAD 20.00 from Checking
const Seed = `
	INSERT INTO commodities VALUES ('cad', 'CURRENCY', 'CAD', 'Canadian Dollar', 100);
	INSERT INTO commodities VALUES ('usd', 'CURRENCY', 'USD', 'US Dollar', 100);
	INSERT INTO commodities VALUES ('aapl', 'NASDAQ', 'AAPL', 'Apple Inc', 10000);

	INSERT INTO accounts VALUES ('root',     'Root Account',  'ROOT', 'cad', NULL, '', 0, 0);
	INSERT INTO accounts VALUES ('troot',    'Template Root', 'ROOT', NULL,  NULL, '', 0, 0);
	INSERT INTO accounts VALUES ('ttmpl',    'Rent template', 'BANK', 'cad', 'troot', '', 0, 0);

	INSERT INTO accounts VALUES ('assets',      'Assets',      'ASSET',     'cad',  'root',        '', 0, 1);
	INSERT INTO accounts VALUES ('checking',    'Checking',    'BANK',      'cad',  'assets',      '', 0, 0);
	INSERT INTO accounts VALUES ('brokerage',   'Brokerage',   'ASSET',     'cad',  'assets',      '', 0, 1);
	INSERT INTO accounts VALUES ('apple',       'Apple',       'STOCK',     'aapl', 'brokerage',   '', 0, 0);
	INSERT INTO accounts VALUES ('liabilities', 'Liabilities', 'LIABILITY', 'cad',  'root',        '', 0, 1);
	INSERT INTO accounts VALUES ('visa',        'Visa',        'CREDIT',    'cad',  'liabilities', '', 0, 0);
	INSERT INTO accounts VALUES ('expenses',    'Expenses',    'EXPENSE',   'usd',  'root',        '', 0, 1);
	INSERT INTO accounts VALUES ('food',        'Food',        'EXPENSE',   'usd',  'expenses',    '', 0, 1);
	INSERT INTO accounts VALUES ('groceries',   'Groceries',   'EXPENSE',   'usd',  'food',        '', 0, 0);
	INSERT INTO accounts VALUES ('restaurant',  'Restaurant',  'EXPENSE',   'usd',  'food',        '', 0, 0);
	INSERT INTO accounts VALUES ('travel',      'Travel',      'EXPENSE',   'usd',  'expenses',    '', 0, 1);
	INSERT INTO accounts VALUES ('hotel',       'Hotel',       'EXPENSE',   'usd',  'travel',      '', 0, 0);
	INSERT INTO accounts VALUES ('fees',        'Fees',        'EXPENSE',   'cad',  'root',        '', 0, 0);

	INSERT INTO transactions VALUES ('tx1', 'cad', '',  '2025-01-05 10:59:00', '2025-01-05 10:59:00', 'Split dinner');
	INSERT INTO splits VALUES ('sp1a', 'tx1', 'checking',   '', -3000, 100, -3000, 100);
	INSERT INTO splits VALUES ('sp1b', 'tx1', 'restaurant', '',  2000, 100,  2000, 100);
	INSERT INTO splits VALUES ('sp1c', 'tx1', 'groceries',  '',  1000, 100,  1000, 100);

	INSERT INTO transactions VALUES ('tx2', 'usd', '1', '2025-01-10 10:59:00', '2025-01-10 10:59:00', 'Supermarket');
	INSERT INTO splits VALUES ('sp2a', 'tx2', 'checking',  '', -1100, 100, -1000, 100);
	INSERT INTO splits VALUES ('sp2b', 'tx2', 'groceries', '',  1100, 100,  1100, 100);

	INSERT INTO transactions VALUES ('tx3', 'usd', '',  '2025-01-12 10:59:00', '2025-01-12 10:59:00', 'Hotel stay');
	INSERT INTO splits VALUES ('sp3a', 'tx3', 'visa',  '', -10000, 100, -13500, 100);
	INSERT INTO splits VALUES ('sp3b', 'tx3', 'hotel', '',  10000, 100,  10000, 100);

	INSERT INTO transactions VALUES ('tx4', 'usd', '2', '20250112105900', '20250112105900', 'Market');
	INSERT INTO splits VALUES ('sp4a', 'tx4', 'checking',  '', -600, 100, -550, 100);
	INSERT INTO splits VALUES ('sp4b', 'tx4', 'groceries', '',  600, 100,  600, 100);

	INSERT INTO transactions VALUES ('tx5', 'cad', '',  '2025-02-02 10:59:00', '2025-02-02 10:59:00', 'Bank fee');
	INSERT INTO splits VALUES ('sp5a', 'tx5', 'checking', '', -2000, 100, -2000, 100);
`

// DB returns an in-memory database holding Schema, Seed and any extra
// statements.
func DB(t testing.TB, extra ...string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	// Each pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	seed(t, db, extra...)
	return db
}

// File writes Schema, Seed and any extra statements to a book file in a
// temporary directory and returns its path.
func File(t testing.TB, extra ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.gnucash")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	defer db.Close()
	seed(t, db, extra...)
	return path
}

func seed(t testing.TB, db *sql.DB, extra ...string) {
	t.Helper()
	for _, stmt := range append([]string{Schema, Seed}, extra...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed database: %v", err)
		}
	}
}
