// Package storagetest поднимает sqlite базу с production-схемой для тестов
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/migrations"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/sqlbuilder"
)

// Dialect диалект тестовой базы
var Dialect = sqlbuilder.SQLite

// NewDB создает файл sqlite во временной директории теста и применяет миграции.
// Пул ограничен одним соединением: конкурентные транзакции выстраиваются в очередь.
func NewDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	raw, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "booking.db")+"?_busy_timeout=5000&_foreign_keys=on")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	require.NoError(t, migrations.Apply(context.Background(), db))
	return db
}

// InsertStaff добавляет мастера с рабочими часами по умолчанию
func InsertStaff(t *testing.T, db *dbmetrics.DB, id string) *domain.Staff {
	t.Helper()

	hours, err := domain.MarshalWeeklySchedule(domain.DefaultWeeklySchedule())
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO staff (id, name, working_hours, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, "Staff "+id, hours, true, now, now)
	require.NoError(t, err)

	return &domain.Staff{ID: id, Name: "Staff " + id, WorkingHours: domain.DefaultWeeklySchedule(), IsActive: true}
}

// InsertService добавляет услугу в каталог
func InsertService(t *testing.T, db *dbmetrics.DB, id string, durationMinutes int, price string) *domain.Service {
	t.Helper()

	now := time.Now().UTC()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO services (id, name, category, duration_minutes, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, "Service "+id, "hair", durationMinutes, price, now, now)
	require.NoError(t, err)

	return &domain.Service{
		ID:              id,
		Name:            "Service " + id,
		Category:        "hair",
		DurationMinutes: durationMinutes,
		Price:           decimal.RequireFromString(price),
	}
}
