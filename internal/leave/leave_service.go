package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-leave/internal/balance"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/notification"
	"go-leave/internal/policy"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const documentKind = "medical-document"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest, doc *Document) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id, reason string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetAll(ctx context.Context, status string) ([]LeaveResponse, error)
	GetByManager(ctx context.Context, managerID, status string) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID, status string) ([]LeaveResponse, error)
	ValidateLeaveBalance(ctx context.Context, employeeID string, leaveType policy.LeaveType, start time.Time, requestedDays int) error
	Balances(ctx context.Context, employeeID string, year int) (balance.SummaryResponse, error)
	DocumentSize(ctx context.Context, ref string) (int64, error)
}

type ServiceConfig struct {
	CapWindow policy.CapWindow
	// BaseURL is the public root used for the approve/reject links.
	BaseURL          string
	MaxDocumentBytes int64
	Now              func() time.Time
}

type service struct {
	db       *sql.DB
	repo     Repository
	ledger   balance.Repository
	balances balance.Service
	files    storage.FileStore
	notifier Notifier
	cfg      ServiceConfig
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ledger balance.Repository,
	balances balance.Service,
	files storage.FileStore,
	notifier Notifier,
	cfg ServiceConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.CapWindow == "" {
		cfg.CapWindow = policy.WindowLifetime
	}
	return &service{
		db:       db,
		repo:     repo,
		ledger:   ledger,
		balances: balances,
		files:    files,
		notifier: notifier,
		cfg:      cfg,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest, doc *Document) (LeaveResponse, error) {
	s.log(ctx).Debug("submit leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.LeaveStartDate),
		zap.String("end_date", req.LeaveEndDate),
	)

	if err := authorizeEmployee(ctx, req.EmployeeID); err != nil {
		return LeaveResponse{}, err
	}
	startDate, endDate, err := parseDateRange(req.LeaveStartDate, req.LeaveEndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	leaveType, ok := policy.ParseLeaveType(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	if req.LeaveStatus != "" {
		requested, err := ParseStatus(req.LeaveStatus)
		if err != nil {
			return LeaveResponse{}, err
		}
		if requested == StatusRejected {
			overlap, err := s.repo.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate, nil)
			if err != nil {
				s.log(ctx).Error("submit leave overlap check failed", zap.Error(err))
				return LeaveResponse{}, err
			}
			if overlap {
				s.log(ctx).Warn("submit leave overlap detected",
					zap.String("employee_id", req.EmployeeID),
					zap.String("start_date", req.LeaveStartDate),
					zap.String("end_date", req.LeaveEndDate),
				)
				return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			}
		}
	}

	duration := policy.Duration(startDate, endDate)
	needsDocument := policy.RequiresMedicalDocument(leaveType, duration)
	if needsDocument {
		if doc == nil || doc.Content == nil || doc.Size == 0 {
			return LeaveResponse{}, leaveerrors.ErrMedicalDocumentRequired
		}
		if s.cfg.MaxDocumentBytes > 0 && doc.Size > s.cfg.MaxDocumentBytes {
			return LeaveResponse{}, leaveerrors.ErrMedicalDocumentTooLarge
		}
	}

	if err := s.ValidateLeaveBalance(ctx, req.EmployeeID, leaveType, startDate, duration); err != nil {
		return LeaveResponse{}, err
	}

	var documentRef *string
	if needsDocument {
		ref, err := s.files.Save(ctx, documentKind, doc.Name, doc.Content)
		if err != nil {
			s.log(ctx).Error("submit leave store document failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		documentRef = &ref
	}
	committed := false
	defer func() {
		if !committed && documentRef != nil {
			s.discardDocument(ctx, *documentRef)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	key := balance.Key{
		EmployeeID: req.EmployeeID,
		LeaveType:  string(leaveType),
		Period:     s.cfg.CapWindow.Period(startDate),
	}
	if err := s.reserve(ctx, tx, key, policy.CalendarDays(startDate, endDate), duration); err != nil {
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:              uuid.New(),
		EmployeeID:      req.EmployeeID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Position:        req.Position,
		Phone:           req.Phone,
		ManagerID:       req.ManagerID,
		ManagerName:     req.ManagerName,
		ManagerEmail:    req.ManagerEmail,
		LeaveType:       string(leaveType),
		LeaveStartDate:  startDate,
		LeaveEndDate:    endDate,
		Duration:        duration,
		DurationType:    DurationTypeDays,
		BalancePeriod:   key.Period,
		LeaveReason:     req.LeaveReason,
		Comments:        optionalString(req.Comments),
		MedicalDocument: documentRef,
		LeaveStatus:     StatusPending,
	}
	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.log(ctx).Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	notice := Notice{
		EventType:  events.EventLeaveSubmitted,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID,
		Message:    notification.SubmissionNotice(toDetails(*l), s.cfg.BaseURL),
	}
	if err := s.notifier.Stage(ctx, tx, notice); err != nil {
		s.log(ctx).Error("submit leave stage notification failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	committed = true
	s.balances.Invalidate(ctx, key.EmployeeID, key.Period)
	s.log(ctx).Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID),
		zap.Int("duration", l.Duration),
	)

	return s.deliver(ctx, notice, mapToResponse(*l))
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.decide(ctx, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, id, reason string) (LeaveResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, id, StatusRejected, reason)
}

func (s *service) decide(ctx context.Context, id string, target LeaveStatus, reason string) (LeaveResponse, error) {
	s.log(ctx).Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("target_status", string(target)),
	)
	if err := validateID(id); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	from := l.LeaveStatus
	if err := l.transition(target); err != nil {
		s.log(ctx).Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", string(from)),
			zap.String("to_status", string(target)),
		)
		return LeaveResponse{}, err
	}
	now := s.cfg.Now().UTC()
	l.DecidedAt = &now

	notice := Notice{
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID,
	}
	switch target {
	case StatusApproved:
		notice.EventType = events.EventLeaveApproved
		notice.Message = notification.DecisionNotice(toDetails(*l))
	case StatusRejected:
		l.RejectionReason = &reason
		if err := s.ledger.WithTx(tx).Release(ctx, keyOf(*l), bookedDays(*l)); err != nil {
			s.log(ctx).Error("decide leave release balance failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		notice.EventType = events.EventLeaveRejected
		notice.Message = notification.RejectionNotice(toDetails(*l))
	}

	if err := qtx.Update(ctx, l, from); err != nil {
		s.log(ctx).Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := s.notifier.Stage(ctx, tx, notice); err != nil {
		s.log(ctx).Error("decide leave stage notification failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if target == StatusRejected {
		s.balances.Invalidate(ctx, l.EmployeeID, l.BalancePeriod)
	}
	s.log(ctx).Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(l.LeaveStatus)),
	)

	return s.deliver(ctx, notice, mapToResponse(*l))
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.log(ctx).Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.LeaveStartDate),
		zap.String("end_date", req.LeaveEndDate),
	)
	if err := validateID(id); err != nil {
		return LeaveResponse{}, err
	}
	startDate, err := policy.ParseDate(req.LeaveStartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUpdateDates
	}
	endDate, err := policy.ParseDate(req.LeaveEndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUpdateDates
	}
	leaveType, ok := policy.ParseLeaveType(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := authorizeEmployee(ctx, l.EmployeeID); err != nil {
		return LeaveResponse{}, err
	}
	if l.LeaveStatus != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPendingUpdate
	}
	today := policy.Date(s.cfg.Now())
	if startDate.Before(today) || endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidUpdateDates
	}

	duration := policy.Duration(startDate, endDate)
	if policy.RequiresMedicalDocument(leaveType, duration) && l.MedicalDocument == nil {
		return LeaveResponse{}, leaveerrors.ErrMedicalDocumentRequired
	}

	ledger := s.ledger.WithTx(tx)
	oldKey := keyOf(*l)
	if err := ledger.Release(ctx, oldKey, bookedDays(*l)); err != nil {
		s.log(ctx).Error("update leave release balance failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	newKey := balance.Key{
		EmployeeID: l.EmployeeID,
		LeaveType:  string(leaveType),
		Period:     s.cfg.CapWindow.Period(startDate),
	}
	if err := s.reserve(ctx, tx, newKey, policy.CalendarDays(startDate, endDate), duration); err != nil {
		return LeaveResponse{}, err
	}

	l.LeaveType = string(leaveType)
	l.LeaveStartDate = startDate
	l.LeaveEndDate = endDate
	l.Duration = duration
	l.BalancePeriod = newKey.Period

	if err := qtx.Update(ctx, l, StatusPending); err != nil {
		if errors.Is(err, leaveerrors.ErrInvalidStatusTransition) {
			return LeaveResponse{}, leaveerrors.ErrNotPendingUpdate
		}
		s.log(ctx).Error("update leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("update leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.balances.Invalidate(ctx, oldKey.EmployeeID, oldKey.Period)
	if newKey.Period != oldKey.Period {
		s.balances.Invalidate(ctx, newKey.EmployeeID, newKey.Period)
	}
	s.log(ctx).Info("update leave success",
		zap.String("leave_id", id),
		zap.Int("duration", duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeEmployee(ctx, l.EmployeeID); err != nil {
		return err
	}
	if l.LeaveStatus != StatusPending {
		return leaveerrors.ErrNotPendingDelete
	}
	if err := s.ledger.WithTx(tx).Release(ctx, keyOf(*l), bookedDays(*l)); err != nil {
		s.log(ctx).Error("delete leave release balance failed", zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.log(ctx).Error("delete leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return err
	}
	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("delete leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return err
	}
	s.balances.Invalidate(ctx, l.EmployeeID, l.BalancePeriod)
	if l.MedicalDocument != nil {
		s.discardDocument(ctx, *l.MedicalDocument)
	}
	s.log(ctx).Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if err := validateID(id); err != nil {
		return LeaveResponse{}, err
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := authorizeEmployee(ctx, l.EmployeeID); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]LeaveResponse, error) {
	st, err := parseOptionalStatus(status)
	if err != nil {
		return nil, err
	}

	var leaves []LeaveRequest
	if st == "" {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindByStatus(ctx, st)
	}
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, leaveerrors.NoneFound(string(st), "", "")
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByManager(ctx context.Context, managerID, status string) ([]LeaveResponse, error) {
	st, err := parseOptionalStatus(status)
	if err != nil {
		return nil, err
	}

	var leaves []LeaveRequest
	if st == "" {
		leaves, err = s.repo.FindByManager(ctx, managerID)
	} else {
		leaves, err = s.repo.FindByManagerAndStatus(ctx, managerID, st)
	}
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, leaveerrors.NoneFound(string(st), "manager", managerID)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID, status string) ([]LeaveResponse, error) {
	if err := authorizeEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	st, err := parseOptionalStatus(status)
	if err != nil {
		return nil, err
	}

	var leaves []LeaveRequest
	if st == "" {
		leaves, err = s.repo.FindByEmployee(ctx, employeeID)
	} else {
		leaves, err = s.repo.FindByEmployeeAndStatus(ctx, employeeID, st)
	}
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, leaveerrors.NoneFound(string(st), "employee", employeeID)
	}
	return mapToListResponse(leaves), nil
}

// ValidateLeaveBalance checks that requestedDays more of leaveType still fit
// under the cap for the period start falls in. The booked total counts the
// calendar span of every open request while requestedDays counts business
// days.
func (s *service) ValidateLeaveBalance(ctx context.Context, employeeID string, leaveType policy.LeaveType, start time.Time, requestedDays int) error {
	booked, err := s.ledger.Booked(ctx, balance.Key{
		EmployeeID: employeeID,
		LeaveType:  string(leaveType),
		Period:     s.cfg.CapWindow.Period(start),
	})
	if err != nil {
		s.log(ctx).Error("validate leave balance lookup failed", zap.Error(err))
		return err
	}
	if err := policy.CheckBalance(leaveType, booked, requestedDays); err != nil {
		var limitErr *policy.LimitError
		if errors.As(err, &limitErr) {
			return leaveerrors.LimitExceeded(limitErr)
		}
		return leaveerrors.ErrInvalidLeaveType
	}
	return nil
}

func (s *service) Balances(ctx context.Context, employeeID string, year int) (balance.SummaryResponse, error) {
	if strings.TrimSpace(employeeID) == "" {
		return balance.SummaryResponse{}, apperror.RequiredField("employee_id")
	}
	if err := authorizeEmployee(ctx, employeeID); err != nil {
		return balance.SummaryResponse{}, err
	}
	if year == 0 {
		year = s.cfg.Now().Year()
	}
	period := s.cfg.CapWindow.Period(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	return s.balances.Summary(ctx, employeeID, period)
}

func (s *service) DocumentSize(ctx context.Context, ref string) (int64, error) {
	if strings.TrimSpace(ref) == "" {
		return 0, apperror.RequiredField("ref")
	}
	size, err := s.files.Size(ctx, ref)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return 0, leaveerrors.ErrDocumentNotFound
	case errors.Is(err, storage.ErrInvalidReference):
		return 0, leaveerrors.ErrInvalidDocumentRef
	case err != nil:
		return 0, err
	}
	return size, nil
}

// reserve books book calendar days on key, provided requested business days
// still fit under the cap.
func (s *service) reserve(ctx context.Context, tx *sql.Tx, key balance.Key, book, requested int) error {
	limit, ok := policy.Cap(policy.LeaveType(key.LeaveType))
	if !ok {
		return leaveerrors.ErrInvalidLeaveType
	}
	booked, ok, err := s.ledger.WithTx(tx).Reserve(ctx, key, book, requested, limit)
	if err != nil {
		s.log(ctx).Error("reserve leave balance failed", zap.Error(err))
		return err
	}
	if !ok {
		s.log(ctx).Warn("leave limit exceeded",
			zap.String("employee_id", key.EmployeeID),
			zap.String("leave_type", key.LeaveType),
			zap.Int("booked", booked),
			zap.Int("requested", requested),
		)
		return leaveerrors.LimitExceeded(&policy.LimitError{
			LeaveType: policy.LeaveType(key.LeaveType),
			Cap:       limit,
			Booked:    booked,
			Requested: requested,
		})
	}
	return nil
}

// deliver sends the notice after commit. A failure is reported alongside the
// persisted response.
func (s *service) deliver(ctx context.Context, n Notice, resp LeaveResponse) (LeaveResponse, error) {
	if err := s.notifier.Deliver(ctx, n); err != nil {
		s.log(ctx).Error("leave notification delivery failed",
			zap.String("leave_id", n.LeaveID),
			zap.String("event_type", n.EventType),
			zap.Error(err),
		)
		return resp, leaveerrors.NotificationFailed(err)
	}
	return resp, nil
}

func (s *service) discardDocument(ctx context.Context, ref string) {
	if err := s.files.Delete(ctx, ref); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log(ctx).Warn("discard medical document failed",
			zap.String("ref", ref),
			zap.Error(err),
		)
	}
}

// log prefers the request scoped logger so entries carry request_id.
func (s *service) log(ctx context.Context) *zap.Logger {
	l := contextutil.GetLogger(ctx, s.logger)
	if l == s.logger {
		return l
	}
	return l.Named("leave.service")
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrDatesRequired
	}
	startDate, err := policy.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := policy.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseOptionalStatus(v string) (LeaveStatus, error) {
	if strings.TrimSpace(v) == "" {
		return "", nil
	}
	return ParseStatus(v)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}
	return nil
}

// authorizeEmployee fails with ErrNotOwner when an employee acts for someone
// else. Managers, admins and callers without an identity pass.
func authorizeEmployee(ctx context.Context, employeeID string) error {
	switch contextutil.GetRole(ctx) {
	case "", rbac.RoleManager, rbac.RoleAdmin:
		return nil
	}
	if contextutil.GetEmployeeID(ctx) != employeeID {
		return leaveerrors.ErrNotOwner
	}
	return nil
}

// bookedDays is what a request holds on the ledger: its calendar span.
func bookedDays(l LeaveRequest) int {
	return policy.CalendarDays(l.LeaveStartDate, l.LeaveEndDate)
}

func keyOf(l LeaveRequest) balance.Key {
	return balance.Key{
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		Period:     l.BalancePeriod,
	}
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func toDetails(l LeaveRequest) notification.LeaveDetails {
	d := notification.LeaveDetails{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID,
		FirstName:    l.FirstName,
		LastName:     l.LastName,
		Email:        l.Email,
		Position:     l.Position,
		Phone:        l.Phone,
		ManagerEmail: l.ManagerEmail,
		LeaveType:    l.LeaveType,
		StartDate:    l.LeaveStartDate,
		EndDate:      l.LeaveEndDate,
		Duration:     l.Duration,
		DurationType: l.DurationType,
		Status:       string(l.LeaveStatus),
	}
	if l.Comments != nil {
		d.Comments = *l.Comments
	}
	if l.RejectionReason != nil {
		d.Reason = *l.RejectionReason
	}
	return d
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID,
		FirstName:       l.FirstName,
		LastName:        l.LastName,
		Email:           l.Email,
		Position:        l.Position,
		Phone:           l.Phone,
		ManagerID:       l.ManagerID,
		ManagerName:     l.ManagerName,
		ManagerEmail:    l.ManagerEmail,
		LeaveType:       l.LeaveType,
		LeaveStartDate:  l.LeaveStartDate.Format(policy.DateLayout),
		LeaveEndDate:    l.LeaveEndDate.Format(policy.DateLayout),
		Duration:        l.Duration,
		DurationType:    l.DurationType,
		LeaveReason:     l.LeaveReason,
		Comments:        l.Comments,
		MedicalDocument: l.MedicalDocument,
		LeaveStatus:     string(l.LeaveStatus),
		RejectionReason: l.RejectionReason,
	}
	if l.DecidedAt != nil {
		decidedAt := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}
