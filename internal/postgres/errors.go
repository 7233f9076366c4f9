package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrProtected = errors.New("protected by a related row")
	ErrNoRef     = errors.New("referenced row does not exist")
	ErrInvalid   = errors.New("violates a check constraint")
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Translate maps driver errors onto the package sentinels, keeping the
// constraint name in the message. Other errors pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		// deletes of a referenced row report "update or delete on table ..."
		if strings.HasPrefix(pgErr.Message, "update or delete") {
			return fmt.Errorf("%w (%s)", ErrProtected, pgErr.ConstraintName)
		}
		return fmt.Errorf("%w (%s)", ErrNoRef, pgErr.ConstraintName)
	case codeCheckViolation:
		return fmt.Errorf("%w (%s)", ErrInvalid, pgErr.ConstraintName)
	}
	return err
}
