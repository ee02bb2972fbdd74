package leave

import (
	"errors"
	"strings"

	leaveerrors "go-leave/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgCheckViolation = "23514"
	pgInvalidText    = "22P02"

	ckLeaveDateRange = "ck_leave_requests_date_range"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == ckLeaveDateRange:
			return leaveerrors.ErrInvalidDateRange
		case pgErr.Code == pgInvalidText:
			return leaveerrors.ErrLeaveNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "check constraint") && strings.Contains(errMsg, ckLeaveDateRange) {
		return leaveerrors.ErrInvalidDateRange
	}

	return err
}
