package chfs

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// All code interacting with a database is here.  Float columns map to
// Nullable(Float64) so missing values round-trip as NULL.

type Dialect struct {
	db *sql.DB

	bufSize int // rows per insert batch
}

func NewDialect(db *sql.DB) *Dialect {
	return &Dialect{db: db, bufSize: 10000}
}

// OpenCH opens a ClickHouse connection with the native protocol.
func OpenCH(host, database, user, password string) *sql.DB {
	return clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{host},
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	})
}

func (d *Dialect) DB() *sql.DB {
	return d.db
}

func chType(dt DataTypes) (string, error) {
	switch dt {
	case DTfloat:
		return "Nullable(Float64)", nil
	case DTint:
		return "Int64", nil
	case DTstring:
		return "String", nil
	default:
		return "", fmt.Errorf("unsupported data type %v for ClickHouse", dt)
	}
}

func (d *Dialect) createTable(tableName string, t *Table, orderBy string) error {
	var flds []string
	for c := t.Next(true); c != nil; c = t.Next(false) {
		var (
			typ string
			e   error
		)

		if typ, e = chType(c.DataType()); e != nil {
			return e
		}

		flds = append(flds, fmt.Sprintf("`%s` %s", c.Name(""), typ))
	}

	qry := fmt.Sprintf("CREATE TABLE %s (%s) ENGINE = MergeTree ORDER BY (%s)",
		tableName, strings.Join(flds, ", "), orderBy)
	_, e := d.db.Exec(qry)

	return e
}

// Save writes t to tableName, dropping any existing table when overwrite
// is true.  The table is ordered by its first column.
func (d *Dialect) Save(tableName string, t *Table, overwrite bool) error {
	if overwrite {
		if _, e := d.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); e != nil {
			return e
		}
	}

	if e := d.createTable(tableName, t, t.ColumnNames()[0]); e != nil {
		return e
	}

	names := t.ColumnNames()
	qry := fmt.Sprintf("INSERT INTO %s (`%s`) VALUES (%s)",
		tableName,
		strings.Join(names, "`, `"),
		strings.TrimSuffix(strings.Repeat("?,", len(names)), ","))

	for start := 0; start < t.RowCount(); start += d.bufSize {
		end := start + d.bufSize
		if end > t.RowCount() {
			end = t.RowCount()
		}

		if e := d.insertRows(qry, t, start, end); e != nil {
			return e
		}
	}

	return nil
}

func (d *Dialect) insertRows(qry string, t *Table, start, end int) (err error) {
	var tx *sql.Tx
	if tx, err = d.db.Begin(); err != nil {
		return err
	}

	var stmt *sql.Stmt
	if stmt, err = tx.Prepare(qry); err != nil {
		_ = tx.Rollback()
		return err
	}

	for row := start; row < end; row++ {
		var vals []any
		for c := t.Next(true); c != nil; c = t.Next(false) {
			v := c.Element(row)
			if f, isFloat := v.(float64); isFloat && IsMissing(f) {
				vals = append(vals, nil)
				continue
			}

			vals = append(vals, v)
		}

		if _, err = stmt.Exec(vals...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
