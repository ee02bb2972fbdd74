package leave

import (
	"context"
	"database/sql"
	"time"

	leaveerrors "go-leave/internal/leave/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status LeaveStatus) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByEmployeeAndStatus(ctx context.Context, employeeID string, status LeaveStatus) ([]LeaveRequest, error)
	FindByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	FindByManagerAndStatus(ctx context.Context, managerID string, status LeaveStatus) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, l *LeaveRequest, from LeaveStatus) error
	Delete(ctx context.Context, id string) error
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

// conn returns a handle bound to ctx, and to the transaction when one was
// attached with WithTx.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true, SkipDefaultTransaction: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return mapRepositoryError(r.conn(ctx).Create(l).Error)
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

// FindByIDForUpdate reads the row and locks it until the surrounding
// transaction ends.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx))
}

func (r *repository) FindByStatus(ctx context.Context, status LeaveStatus) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx).Where("leave_status = ?", status))
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx).Where("employee_id = ?", employeeID))
}

func (r *repository) FindByEmployeeAndStatus(ctx context.Context, employeeID string, status LeaveStatus) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_status = ?", status))
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx).Where("manager_id = ?", managerID))
}

func (r *repository) FindByManagerAndStatus(ctx context.Context, managerID string, status LeaveStatus) ([]LeaveRequest, error) {
	return r.list(r.conn(ctx).
		Where("manager_id = ?", managerID).
		Where("leave_status = ?", status))
}

func (r *repository) list(q *gorm.DB) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := q.Order("leave_start_date DESC").Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

// HasOverlappingPeriod reports whether the employee has any request, in any
// status, whose date range intersects [startDate, endDate].
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("leave_start_date <= ?", endDate).
		Where("leave_end_date >= ?", startDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// Update writes the mutable columns of l only while the stored row is still
// in status from. A row deleted or decided in the meantime is never written
// back and yields ErrInvalidStatusTransition.
func (r *repository) Update(ctx context.Context, l *LeaveRequest, from LeaveStatus) error {
	l.UpdatedAt = time.Now().UTC()
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND leave_status = ?", l.ID, from).
		Updates(map[string]any{
			"leave_type":       l.LeaveType,
			"leave_start_date": l.LeaveStartDate,
			"leave_end_date":   l.LeaveEndDate,
			"duration":         l.Duration,
			"balance_period":   l.BalancePeriod,
			"leave_status":     l.LeaveStatus,
			"rejection_reason": l.RejectionReason,
			"decided_at":       l.DecidedAt,
			"updated_at":       l.UpdatedAt,
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrInvalidStatusTransition
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
