package balance

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Reserve(ctx context.Context, key Key, book, requested, limit int) (booked int, ok bool, err error)
	Release(ctx context.Context, key Key, days int) error
	Booked(ctx context.Context, key Key) (int, error)
	ListByEmployee(ctx context.Context, employeeID string, period int) ([]Balance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true, SkipDefaultTransaction: true})
	db.Statement.ConnPool = r.tx
	return db
}

// Reserve checks requested against limit and, when it fits, adds book to the
// balance row of key in a single statement. Two concurrent reservations can
// never overrun limit together. ok is false when the limit would be
// exceeded; booked is then the unchanged current total.
func (r *repository) Reserve(ctx context.Context, key Key, book, requested, limit int) (int, bool, error) {
	if requested > limit {
		booked, err := r.Booked(ctx, key)
		return booked, false, err
	}

	var rows []int
	res := r.conn(ctx).Raw(`
		INSERT INTO leave_balances (employee_id, leave_type, period, booked_days, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (employee_id, leave_type, period) DO UPDATE
		SET booked_days = leave_balances.booked_days + excluded.booked_days,
			updated_at = CURRENT_TIMESTAMP
		WHERE leave_balances.booked_days + ? <= ?
		RETURNING booked_days
	`, key.EmployeeID, key.LeaveType, key.Period, book, requested, limit).Scan(&rows)
	if res.Error != nil {
		return 0, false, res.Error
	}

	if len(rows) == 0 {
		booked, err := r.Booked(ctx, key)
		return booked, false, err
	}
	return rows[0], true, nil
}

// Release gives days back to key, never going below zero.
func (r *repository) Release(ctx context.Context, key Key, days int) error {
	if days <= 0 {
		return nil
	}
	return r.conn(ctx).Exec(`
		UPDATE leave_balances
		SET booked_days = CASE WHEN booked_days > ? THEN booked_days - ? ELSE 0 END,
			updated_at = CURRENT_TIMESTAMP
		WHERE employee_id = ? AND leave_type = ? AND period = ?
	`, days, days, key.EmployeeID, key.LeaveType, key.Period).Error
}

func (r *repository) Booked(ctx context.Context, key Key) (int, error) {
	var b Balance
	err := r.conn(ctx).
		Where("employee_id = ? AND leave_type = ? AND period = ?", key.EmployeeID, key.LeaveType, key.Period).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return b.BookedDays, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, period int) ([]Balance, error) {
	var balances []Balance
	err := r.conn(ctx).
		Where("employee_id = ? AND period = ?", employeeID, period).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}
