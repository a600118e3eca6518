package repository

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// jsonbElem renders a single id as a one-element jsonb array, the operand
// shape the @> containment operator expects.
func jsonbElem(id string) string {
	data, _ := json.Marshal([]string{id})
	return string(data)
}

func jsonbArray(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}
