package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alijeyrad/glycare/pkg/database"
)

// Schema is implemented by every Mapping.
type Schema interface {
	TableName() string
	CreateTable(dialect string) (string, []any)
}

// Schemas lists every table the API needs, in creation order.
func Schemas() []Schema {
	return []Schema{
		PatientMapping,
		BloodSugarMapping,
		InsulinMapping,
		ExerciseMapping,
		DietMapping,
		SymptomMapping,
	}
}

// Migrate creates any missing tables. Existing tables are left untouched.
func Migrate(ctx context.Context, db *database.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for _, s := range Schemas() {
		query, args := s.CreateTable(db.Dialect())
		if _, err := db.Conn().ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("store: migrate %s: %w", s.TableName(), err)
		}
		logger.Debug("table ready", "table", s.TableName())
	}
	return nil
}
