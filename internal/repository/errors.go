package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// 資料表約束名稱，對應 internal/database/schema.sql
const (
	constraintUsersUsername = "users_username_key"
	constraintUsersEmail    = "users_email_key"
	constraintVenuesName    = "venues_name_key"
)

// pgErrorCode 取出 PostgreSQL 錯誤碼與違反的約束名稱
func pgErrorCode(err error) (code string, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error, constraint string) bool {
	code, name := pgErrorCode(err)
	return code == pgerrcode.UniqueViolation && name == constraint
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgerrcode.ForeignKeyViolation
}

func isCheckViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgerrcode.CheckViolation
}
