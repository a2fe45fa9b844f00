package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor позволяет методам репозитория работать и с *sql.DB, и с
// *sql.Tx: запись, входящая в транзакцию сервиса, получает tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// Коды SQLSTATE, на которые завязана обработка гонок бронирования.
const (
	pqSerializationFailure = "40001"
	pqUniqueViolation      = "23505"
	pqExclusionViolation   = "23P01"
)

// IsSerializationFailure сообщает, что serializable-транзакция не смогла
// зафиксироваться из-за конкурентной записи и её можно повторить.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqSerializationFailure
}

// IsExclusionViolation ловит срабатывание ограничения БД на пересечение
// интервалов (EXCLUDE USING gist по (venue_id, tsrange)) либо
// уникального индекса - вторая линия защиты от двойного бронирования.
func IsExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqExclusionViolation || string(pqErr.Code) == pqUniqueViolation
}
