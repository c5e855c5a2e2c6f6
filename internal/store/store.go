// Package store persists record sets as flat files. A record set is a plain
// text file of rows, one per line, with fields joined by commas. No quoting
// or escaping is applied, so field values must not contain the delimiters.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Delimiters of the on-disk row format.
const (
	FieldDelimiter = ","
	RowDelimiter   = "\n"
)

// ErrRecordNotFound is returned when no row in a set satisfies a match.
var ErrRecordNotFound = errors.New("record not found")

// StorageError wraps a failed file operation with the record set and the
// operation that failed. Use errors.As to recover it, or errors.Is to reach
// the underlying cause.
type StorageError struct {
	Set string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s record set %s: %v", e.Op, e.Set, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store reads and writes one record set.
type Store struct {
	path string
	name string
}

// NewStore returns a store over the file at path. The name labels the set in
// errors and logs.
func NewStore(path, name string) *Store {
	return &Store{path: path, name: name}
}

// Name returns the set's label.
func (s *Store) Name() string { return s.name }

// Path returns the file the set is persisted in.
func (s *Store) Path() string { return s.path }

// ReadAll returns every row in the set. A set whose file does not exist yet
// is empty, not an error. Blank lines are skipped.
func (s *Store) ReadAll() ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StorageError{Set: s.name, Op: "read", Err: err}
	}
	var rows [][]string
	for _, line := range strings.Split(string(data), RowDelimiter) {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, FieldDelimiter))
	}
	return rows, nil
}

// WriteAll replaces the set's entire contents with rows.
func (s *Store) WriteAll(rows [][]string) error {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, FieldDelimiter))
		b.WriteString(RowDelimiter)
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return &StorageError{Set: s.name, Op: "write", Err: err}
	}
	return nil
}

// AppendOne adds a single row to the end of the set, creating the file and
// its directory if they do not exist yet.
func (s *Store) AppendOne(row []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StorageError{Set: s.name, Op: "append", Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Set: s.name, Op: "append", Err: err}
	}
	_, err = f.WriteString(strings.Join(row, FieldDelimiter) + RowDelimiter)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &StorageError{Set: s.name, Op: "append", Err: err}
	}
	return nil
}

// Create makes sure the set's file exists, leaving existing contents alone.
func (s *Store) Create() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StorageError{Set: s.name, Op: "create", Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Set: s.name, Op: "create", Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Set: s.name, Op: "create", Err: err}
	}
	return nil
}

// Match reports whether a row should be selected.
type Match func(row []string) bool

// MatchSubstring selects any row with a field that contains value. This is
// deliberately loose: it is the historical selector for purge operations and
// callers that need exact identity must pre-check before purging.
func MatchSubstring(value string) Match {
	return func(row []string) bool {
		for _, field := range row {
			if strings.Contains(field, value) {
				return true
			}
		}
		return false
	}
}

// PurgeAndTransfer removes every matching row from the set, stamps the first
// match's final field with stamp, appends that row to dest, and returns it.
// Matches after the first are dropped without being transferred. When nothing
// matches, the set is left untouched and ErrRecordNotFound is returned.
func (s *Store) PurgeAndTransfer(match Match, dest *Store, stamp string) ([]string, error) {
	rows, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	var (
		kept        [][]string
		transferred []string
	)
	for _, row := range rows {
		if !match(row) {
			kept = append(kept, row)
			continue
		}
		if transferred == nil {
			transferred = row
		}
	}
	if transferred == nil {
		return nil, fmt.Errorf("purge from %s: %w", s.name, ErrRecordNotFound)
	}
	if len(transferred) > 0 {
		transferred[len(transferred)-1] = stamp
	}
	if err := s.WriteAll(kept); err != nil {
		return nil, err
	}
	if err := dest.AppendOne(transferred); err != nil {
		return nil, err
	}
	return transferred, nil
}
