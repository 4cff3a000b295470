package gnucash

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedBackend is returned for books that are not SQLite files,
	// such as the XML and compressed XML formats.
	ErrUnsupportedBackend = errors.New("unsupported ledger backend (only SQLite books can be read)")

	// ErrNotBook is returned for SQLite files without a GnuCash root account.
	ErrNotBook = errors.New("not a GnuCash book")
)

// OpenError reports a ledger that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open ledger %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// LookupError reports a child account name missing under Parent.
type LookupError struct {
	Parent AccountPath
	Name   string
}

func (e *LookupError) Error() string {
	if e.Parent.Len() == 0 {
		return fmt.Sprintf("no top-level account named %q", e.Name)
	}
	return fmt.Sprintf("no account named %q under %q", e.Name, e.Parent.String())
}

// PathTooShortError reports an access to a segment the path does not have.
type PathTooShortError struct {
	Path  AccountPath
	Index int
}

func (e *PathTooShortError) Error() string {
	return fmt.Sprintf("account path %q has %d segment(s), need segment %d", e.Path.String(), e.Path.Len(), e.Index)
}
