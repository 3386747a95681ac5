package sqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect squirrel-билдер с плейсхолдерами конкретной СУБД
type Dialect struct {
	name     string
	builder  squirrel.StatementBuilderType
	rowLocks bool
}

var (
	// Postgres $1, $2, ... и поддержка SELECT ... FOR UPDATE
	Postgres = Dialect{
		name:     "postgres",
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		rowLocks: true,
	}

	// SQLite ?-плейсхолдеры; блокировки строк не нужны, запись сериализуется на уровне БД
	SQLite = Dialect{
		name:     "sqlite3",
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		rowLocks: false,
	}
)

// ForDriver возвращает диалект по имени database/sql драйвера
func ForDriver(driver string) (Dialect, error) {
	switch driver {
	case Postgres.name:
		return Postgres, nil
	case SQLite.name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("sqlbuilder: unsupported driver %q", driver)
	}
}

func (d Dialect) Name() string {
	return d.name
}

// SupportsRowLocks сообщает, можно ли добавлять FOR UPDATE к запросам
func (d Dialect) SupportsRowLocks() bool {
	return d.rowLocks
}

func (d Dialect) Select(columns ...string) squirrel.SelectBuilder {
	return d.builder.Select(columns...)
}

func (d Dialect) Insert(table string) squirrel.InsertBuilder {
	return d.builder.Insert(table)
}

func (d Dialect) Update(table string) squirrel.UpdateBuilder {
	return d.builder.Update(table)
}

func (d Dialect) Delete(table string) squirrel.DeleteBuilder {
	return d.builder.Delete(table)
}
