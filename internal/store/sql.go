package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/pkg/database"
)

// SQLTable is a Table backed by database/sql, with queries rendered by the
// ent SQL builder for the connection's dialect.
type SQLTable[R domain.Record] struct {
	db      *sql.DB
	dialect string
	m       Mapping[R]
}

func NewSQLTable[R domain.Record](db *sql.DB, dialect string, m Mapping[R]) *SQLTable[R] {
	return &SQLTable[R]{db: db, dialect: dialect, m: m}
}

// NewSQLTables opens one table per collection on db.
func NewSQLTables(db *database.DB) *Tables {
	conn, d := db.Conn(), db.Dialect()
	return &Tables{
		Patients:   NewSQLTable(conn, d, PatientMapping),
		BloodSugar: NewSQLTable(conn, d, BloodSugarMapping),
		Insulin:    NewSQLTable(conn, d, InsulinMapping),
		Exercise:   NewSQLTable(conn, d, ExerciseMapping),
		Diet:       NewSQLTable(conn, d, DietMapping),
		Symptoms:   NewSQLTable(conn, d, SymptomMapping),
	}
}

func (t *SQLTable[R]) selector() *entsql.Selector {
	b := entsql.Dialect(t.dialect)
	return b.Select(t.m.columnNames()...).From(b.Table(t.m.Table))
}

func (t *SQLTable[R]) List(ctx context.Context, scope domain.ID) ([]R, error) {
	query, args := t.selector().
		Where(entsql.EQ("scope_id", scope.String())).
		OrderBy("id").
		Query()

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", t.m.Table, err)
	}
	defer rows.Close()

	out := make([]R, 0)
	for rows.Next() {
		rec, err := t.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", t.m.Table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *SQLTable[R]) Get(ctx context.Context, id domain.ID) (R, error) {
	query, args := t.selector().Where(entsql.EQ("id", id.String())).Query()

	rec, err := t.m.Scan(t.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero R
		return zero, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("store: get %s: %w", t.m.Table, err)
	}
	return rec, nil
}

func (t *SQLTable[R]) Insert(ctx context.Context, rec R) error {
	values := append([]any{rec.RecordID().String(), rec.RecordScope().String()}, t.m.Values(rec)...)
	query, args := entsql.Dialect(t.dialect).
		Insert(t.m.Table).
		Columns(t.m.columnNames()...).
		Values(values...).
		Query()

	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: insert %s: %w", t.m.Table, err)
	}
	return nil
}

func (t *SQLTable[R]) Update(ctx context.Context, rec R) error {
	u := entsql.Dialect(t.dialect).Update(t.m.Table).Set("scope_id", rec.RecordScope().String())
	for i, v := range t.m.Values(rec) {
		u.Set(t.m.Columns[i].Name, v)
	}
	query, args := u.Where(entsql.EQ("id", rec.RecordID().String())).Query()

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", t.m.Table, err)
	}
	return affectedOne(res)
}

func (t *SQLTable[R]) Delete(ctx context.Context, id domain.ID) error {
	query, args := entsql.Dialect(t.dialect).
		Delete(t.m.Table).
		Where(entsql.EQ("id", id.String())).
		Query()

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", t.m.Table, err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
