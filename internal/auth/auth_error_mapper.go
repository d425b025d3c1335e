package auth

import (
	"errors"
	"net/http"
	"strings"

	autherrors "github.com/DannielJohn120/Employee-Leave-Management-Project/internal/auth/errors"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return autherrors.ErrEmailAlreadyRegistered
		case "23514":
			if strings.Contains(pgErr.ConstraintName, "role") {
				return autherrors.ErrInvalidRole
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return autherrors.ErrEmailAlreadyRegistered
	}

	// Anything else carries driver detail; wrap so handlers report a
	// generic internal error while the log keeps the cause
	return apperror.Wrap(err, apperror.CodeInternalError,
		"Could not complete the request", http.StatusInternalServerError)
}
