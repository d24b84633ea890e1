package store

import (
	entsql "entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// Column is a data column stored after the id and scope_id key columns.
type Column struct {
	Name string
	Type string // SQL type understood by both postgres and sqlite
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Mapping describes how one record kind is laid out in SQL. Every table
// starts with id and scope_id, followed by Columns in order.
type Mapping[R domain.Record] struct {
	Table   string
	Columns []Column

	// Values returns the data column values in Columns order.
	Values func(R) []any

	// Scan reads a row selected as id, scope_id, Columns...
	Scan func(Scanner) (R, error)
}

func (m Mapping[R]) TableName() string { return m.Table }

func (m Mapping[R]) columnNames() []string {
	names := make([]string, 0, len(m.Columns)+2)
	names = append(names, "id", "scope_id")
	for _, c := range m.Columns {
		names = append(names, c.Name)
	}
	return names
}

// CreateTable renders an idempotent CREATE TABLE for the dialect. Identifiers
// are quoted by ent's builder; the DDL itself is written out since the
// builder only covers DML.
func (m Mapping[R]) CreateTable(dialect string) (string, []any) {
	query := entsql.Dialect(dialect).String(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(m.Table).Pad().Wrap(func(b *entsql.Builder) {
			b.Ident("id").WriteString(" varchar(64) NOT NULL")
			b.Comma().Ident("scope_id").WriteString(" varchar(64) NOT NULL")
			for _, c := range m.Columns {
				b.Comma().Ident(c.Name).Pad().WriteString(c.Type)
			}
			b.Comma().WriteString("PRIMARY KEY ").Wrap(func(b *entsql.Builder) {
				b.Ident("id")
			})
		})
	})
	return query, nil
}
