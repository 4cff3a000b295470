package gnucash

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const (
	sqliteMagic      = "SQLite format 3\x00"
	templateRootName = "Template Root"
)

// Session wraps a read-only SQLite connection to a GnuCash book.
// Accounts and commodities are loaded when the session opens; splits are
// queried per account.
type Session struct {
	db     *sql.DB
	path   string
	root   *Account
	byGUID map[string]*Account
	txs    map[string]*Transaction
	splits map[string]*Split
	closed bool
}

// Open opens a GnuCash SQLite book in read-only mode. Every successful Open
// must be paired with exactly one Close.
func Open(ctx context.Context, filepath string) (*Session, error) {
	if err := checkHeader(filepath); err != nil {
		return nil, &OpenError{Path: filepath, Err: err}
	}

	dsn := fmt.Sprintf("file:%s?mode=ro", filepath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &OpenError{Path: filepath, Err: fmt.Errorf("open database: %w", err)}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &OpenError{Path: filepath, Err: fmt.Errorf("ping database: %w", err)}
	}

	s := newSession(db, filepath)
	if err := s.load(ctx); err != nil {
		db.Close()
		return nil, &OpenError{Path: filepath, Err: err}
	}
	return s, nil
}

func newSession(db *sql.DB, path string) *Session {
	return &Session{
		db:     db,
		path:   path,
		byGUID: make(map[string]*Account),
		txs:    make(map[string]*Transaction),
		splits: make(map[string]*Split),
	}
}

// checkHeader rejects files that are not SQLite databases before the driver
// gets a chance to create or misread them.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	defer f.Close()

	hdr := make([]byte, len(sqliteMagic))
	if _, err := io.ReadFull(f, hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrUnsupportedBackend
		}
		return fmt.Errorf("read header: %w", err)
	}
	if string(hdr) != sqliteMagic {
		return ErrUnsupportedBackend
	}
	return nil
}

// Close closes the database connection. Calls after the first are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Path returns the file the session was opened on.
func (s *Session) Path() string {
	return s.path
}

// Root returns the book's root account.
func (s *Session) Root() *Account {
	return s.root
}

// Lookup resolves path segment by segment starting at the root account.
func (s *Session) Lookup(path AccountPath) (*Account, error) {
	if path.Len() == 0 {
		return nil, &LookupError{Name: ""}
	}
	acc := s.root
	for _, seg := range path {
		child, err := acc.LookupChild(seg)
		if err != nil {
			return nil, err
		}
		acc = child
	}
	return acc, nil
}

// Accounts returns every account below the root in depth-first order.
func (s *Session) Accounts() []*Account {
	var out []*Account
	stack := append([]*Account(nil), s.root.Children...)
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	for len(stack) > 0 {
		acc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, acc)
		for i := len(acc.Children) - 1; i >= 0; i-- {
			stack = append(stack, acc.Children[i])
		}
	}
	return out
}

func (s *Session) load(ctx context.Context) error {
	commodities, err := s.loadCommodities(ctx)
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT guid, name, account_type,
		       COALESCE(parent_guid, ''),
		       COALESCE(commodity_guid, '')
		FROM accounts
		ORDER BY name, guid
	`)
	if err != nil {
		return fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	parents := make(map[string]string)
	var order []*Account
	for rows.Next() {
		var a Account
		var parentGUID, commodityGUID string
		if err := rows.Scan(&a.GUID, &a.Name, &a.AccountType, &parentGUID, &commodityGUID); err != nil {
			return fmt.Errorf("scan account: %w", err)
		}
		a.Commodity = commodities[commodityGUID]
		s.byGUID[a.GUID] = &a
		parents[a.GUID] = parentGUID
		order = append(order, &a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read accounts: %w", err)
	}

	for _, a := range order {
		pg := parents[a.GUID]
		if pg == "" {
			if a.AccountType == "ROOT" && a.Name != templateRootName {
				s.root = a
			}
			continue
		}
		if p, ok := s.byGUID[pg]; ok {
			a.Parent = p
			p.Children = append(p.Children, a)
		}
	}
	if s.root == nil {
		return fmt.Errorf("%w: no root account", ErrNotBook)
	}
	return nil
}

func (s *Session) loadCommodities(ctx context.Context) (map[string]*Commodity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT guid, namespace, mnemonic FROM commodities`)
	if err != nil {
		return nil, fmt.Errorf("query commodities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*Commodity)
	for rows.Next() {
		var c Commodity
		if err := rows.Scan(&c.GUID, &c.Namespace, &c.Mnemonic); err != nil {
			return nil, fmt.Errorf("scan commodity: %w", err)
		}
		out[c.GUID] = &c
	}
	return out, rows.Err()
}

// SplitsOf returns the splits posted directly to acc, ordered by post date.
// Each split carries its transaction and, for two-leg transactions, the
// opposite leg. Splits reached twice resolve to the same *Split.
func (s *Session) SplitsOf(ctx context.Context, acc *Account) ([]*Split, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.guid, s.tx_guid,
		       s.value_num, s.value_denom, s.quantity_num, s.quantity_denom,
		       COALESCE(t.post_date, ''), COALESCE(t.num, ''), COALESCE(t.description, ''),
		       COALESCE(o.guid, ''), COALESCE(o.account_guid, ''),
		       COALESCE(o.value_num, 0), COALESCE(o.value_denom, 1),
		       COALESCE(o.quantity_num, 0), COALESCE(o.quantity_denom, 1)
		FROM splits s
		JOIN transactions t ON s.tx_guid = t.guid
		LEFT JOIN splits o ON o.tx_guid = s.tx_guid AND o.guid != s.guid
		     AND (SELECT COUNT(*) FROM splits c WHERE c.tx_guid = s.tx_guid) = 2
		WHERE s.account_guid = ?
		ORDER BY s.guid
	`, acc.GUID)
	if err != nil {
		return nil, fmt.Errorf("query splits: %w", err)
	}
	defer rows.Close()

	var out []*Split
	for rows.Next() {
		var r splitRow
		if err := rows.Scan(&r.guid, &r.txGUID,
			&r.valueNum, &r.valueDenom, &r.qtyNum, &r.qtyDenom,
			&r.postDate, &r.num, &r.desc,
			&r.otherGUID, &r.otherAccGUID,
			&r.otherValueNum, &r.otherValueDenom, &r.otherQtyNum, &r.otherQtyDenom); err != nil {
			return nil, fmt.Errorf("scan split: %w", err)
		}

		tx, err := s.transaction(r.txGUID, r.postDate, r.num, r.desc)
		if err != nil {
			return nil, err
		}
		sp := s.split(r.guid, tx, acc, ratio(r.valueNum, r.valueDenom), ratio(r.qtyNum, r.qtyDenom))
		if r.otherGUID != "" {
			otherAcc, ok := s.byGUID[r.otherAccGUID]
			if !ok {
				return nil, fmt.Errorf("split %s: unknown account %s", r.otherGUID, r.otherAccGUID)
			}
			other := s.split(r.otherGUID, tx, otherAcc,
				ratio(r.otherValueNum, r.otherValueDenom), ratio(r.otherQtyNum, r.otherQtyDenom))
			sp.Other = other
			other.Other = sp
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read splits: %w", err)
	}

	// post_date has had more than one text layout, so order after parsing.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tx.PostDate.Before(out[j].Tx.PostDate)
	})
	return out, nil
}

type splitRow struct {
	guid, txGUID                   string
	valueNum, valueDenom           int64
	qtyNum, qtyDenom               int64
	postDate, num, desc            string
	otherGUID, otherAccGUID        string
	otherValueNum, otherValueDenom int64
	otherQtyNum, otherQtyDenom     int64
}

func (s *Session) transaction(guid, postDate, num, desc string) (*Transaction, error) {
	if tx, ok := s.txs[guid]; ok {
		return tx, nil
	}
	date, err := parseDate(postDate)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: parse post date %q: %w", guid, postDate, err)
	}
	tx := &Transaction{GUID: guid, PostDate: date, Num: num, Description: desc}
	s.txs[guid] = tx
	return tx, nil
}

func (s *Session) split(guid string, tx *Transaction, acc *Account, value, qty decimal.Decimal) *Split {
	if sp, ok := s.splits[guid]; ok {
		return sp
	}
	sp := &Split{GUID: guid, Tx: tx, Account: acc, Value: value, Quantity: qty}
	s.splits[guid] = sp
	return sp
}

// parseDate accepts both post_date layouts GnuCash has written to SQLite
// and truncates the result to the calendar day.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		t, err = time.Parse("20060102150405", s)
	}
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// SortAccounts orders accounts by full name.
func SortAccounts(accs []*Account, sep string) {
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].FullName(sep) < accs[j].FullName(sep)
	})
}
