// Package sqlstore implements storage.Provider data access on top of sqlx.
// Both the SQLite and PostgreSQL backends embed a Store; they differ only in
// connection handling, migrations and how a unique-constraint violation is
// reported by the driver.
package sqlstore

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// UniqueViolationFunc reports whether err is a unique-constraint violation.
type UniqueViolationFunc func(error) bool

type Store struct {
	db       *sqlx.DB
	isUnique UniqueViolationFunc
	builder  sq.StatementBuilderType
	now      func() time.Time
}

// New wraps db. isUnique must recognise the driver's unique violation error.
func New(db *sqlx.DB, isUnique UniqueViolationFunc) *Store {
	var placeholder sq.PlaceholderFormat = sq.Question
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		placeholder = sq.Dollar
	}
	return &Store{
		db:       db,
		isUnique: isUnique,
		builder:  sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Used by tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// DB returns the underlying connection.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
