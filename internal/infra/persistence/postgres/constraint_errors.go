package postgres

import (
	"strings"

	"identity/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Unique indexes on accounts, named in model.AccountModel.
const (
	accountEmailIndex    = "idx_accounts_email"
	accountIdentityIndex = "idx_accounts_provider_external_id"
)

// Driver errors are left untranslated so the violated constraint stays visible:
// PostgreSQL reports its name, SQLite the columns it covers.

// isUniqueConstraintViolation matches the raw PostgreSQL (23505) and SQLite messages
// as well as a translated GORM error.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}

// violatesAccountIdentity reports a unique violation on (provider, provider_id)
// rather than on the email.
func violatesAccountIdentity(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == accountIdentityIndex
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, accountIdentityIndex) ||
		strings.Contains(errMsg, "accounts.provider_id")
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23502"
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}
