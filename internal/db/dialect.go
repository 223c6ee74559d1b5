package db

import "gorm.io/gorm"

// Dialect renders the few SQL fragments that differ between the supported engines.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// DialectOf reports the dialect behind a gorm handle.
func DialectOf(tx *gorm.DB) Dialect {
	return Dialect(tx.Dialector.Name())
}

// ILike returns a case-insensitive "contains" predicate for expr with one placeholder.
func (d Dialect) ILike(expr string) string {
	switch d {
	case Postgres:
		return expr + " ILIKE ?"
	default:
		return "LOWER(" + expr + ") LIKE LOWER(?)"
	}
}

// Text casts expr to its textual representation.
func (d Dialect) Text(expr string) string {
	if d == MySQL {
		return "CAST(" + expr + " AS CHAR)"
	}
	return "CAST(" + expr + " AS TEXT)"
}

// Year extracts the calendar year of a date column as an integer.
func (d Dialect) Year(expr string) string {
	switch d {
	case Postgres:
		return "CAST(EXTRACT(YEAR FROM " + expr + ") AS INTEGER)"
	case SQLite:
		return "CAST(strftime('%Y', " + expr + ") AS INTEGER)"
	default:
		return "EXTRACT(YEAR FROM " + expr + ")"
	}
}

// Month extracts the calendar month (1-12) of a date column as an integer.
func (d Dialect) Month(expr string) string {
	switch d {
	case Postgres:
		return "CAST(EXTRACT(MONTH FROM " + expr + ") AS INTEGER)"
	case SQLite:
		return "CAST(strftime('%m', " + expr + ") AS INTEGER)"
	default:
		return "EXTRACT(MONTH FROM " + expr + ")"
	}
}

// Contains wraps a search term for use with ILike.
func Contains(term string) string {
	return "%" + term + "%"
}
