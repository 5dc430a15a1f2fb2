package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/notify"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HierarchyProvider answers "who is this employee's lead, if any". It is
// consulted exactly once, at submission, to freeze LeadApprovalRequired.
type HierarchyProvider interface {
	GetLead(ctx context.Context, employeeID string) (*uuid.UUID, error)
}

type Config struct {
	// AllowOverage permits HR to approve a request beyond the remaining
	// balance. On by default; when off, the approval that would overdraw
	// fails with INSUFFICIENT_BALANCE.
	AllowOverage bool
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error)
	ApproveAsLead(ctx context.Context, id, approverID, comment string) (LeaveResponse, error)
	ApproveAsHR(ctx context.Context, id, approverID, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, id, rejectorID, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, id, actorID string) (LeaveResponse, error)
	Edit(ctx context.Context, id, actorID string, req EditLeaveRequest) (LeaveResponse, error)
	Remove(ctx context.Context, id, actorID string) error
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	ListForApprover(ctx context.Context, approverID, role string) ([]LeaveResponse, error)
	ListByStatus(ctx context.Context, status string) ([]LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	balances   balance.Repository
	employees  employee.Repository
	hierarchy  HierarchyProvider
	dispatcher notify.Dispatcher
	cfg        Config
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	employees employee.Repository,
	hierarchy HierarchyProvider,
	dispatcher notify.Dispatcher,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		employees:  employees,
		hierarchy:  hierarchy,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, createdByUUID, startDate, endDate, err := validateSubmitRequest(actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	coverPersonID, err := parseOptionalID(req.CoverPersonID, leaveerrors.ErrInvalidCoverPersonID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := validateNotifyIDs(req.AdditionalNotifyIDs); err != nil {
		return LeaveResponse{}, err
	}

	exists, err := s.employees.Exists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("submit leave employee check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// The one synchronous hierarchy call: the answer is frozen on the
	// request and never revisited.
	lead, err := s.hierarchy.GetLead(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("submit leave hierarchy lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:                   uuid.New(),
		EmployeeID:           employeeUUID,
		LeaveType:            req.LeaveType,
		StartDate:            startDate,
		EndDate:              endDate,
		Reason:               req.Reason,
		TransitionPlan:       req.TransitionPlan,
		CoverPersonID:        coverPersonID,
		AdditionalNotifyIDs:  req.AdditionalNotifyIDs,
		LeadApprovalRequired: lead != nil,
		CreatedBy:            createdByUUID,
		Version:              1,
	}
	l.Status = ComputeStatus(l)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("lead_approval_required", l.LeadApprovalRequired),
	)

	s.publishLifecycle(ctx, l, events.EventLeaveSubmitted)
	s.notifyBestEffort(ctx, recipientIDs(l), events.TemplateLeaveSubmitted, notificationPayload(l))
	if lead != nil {
		s.notifyBestEffort(ctx, []string{lead.String()}, events.TemplateLeaveAwaitingApproval, notificationPayload(l))
	}

	return mapToResponse(*l), nil
}

func (s *service) ApproveAsLead(ctx context.Context, id, approverID, comment string) (LeaveResponse, error) {
	return s.approve(ctx, id, approverID, comment, RoleLead)
}

func (s *service) ApproveAsHR(ctx context.Context, id, approverID, comment string) (LeaveResponse, error) {
	return s.approve(ctx, id, approverID, comment, RoleHR)
}

// approve advances one approval track. The two tracks are commutative: the
// call that completes the rendezvous, whichever order the tracks ran in, is
// the one that applies the balance debit, inside the same transaction as
// the status write.
func (s *service) approve(ctx context.Context, id, approverID, comment, role string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("role", role),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if IsTerminal(l.Status) {
		s.logger.Warn("approve leave on terminal request",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	switch role {
	case RoleLead:
		if !l.LeadApprovalRequired {
			return LeaveResponse{}, leaveerrors.ErrLeadApprovalNotRequired
		}
		if l.LeadApprovedBy != nil {
			return LeaveResponse{}, leaveerrors.ErrLeadAlreadyApproved
		}
		l.LeadApprovedBy = &approverUUID
		l.LeadApprovedAt = &now
	case RoleHR:
		if l.HRApprovedBy != nil {
			return LeaveResponse{}, leaveerrors.ErrHRAlreadyApproved
		}
		l.HRApprovedBy = &approverUUID
		l.HRApprovedAt = &now
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverRole
	}

	l.Status = ComputeStatus(l)

	if l.Status == StatusApproved {
		days := dateutil.WeekdayCount(l.StartDate, l.EndDate)

		if !s.cfg.AllowOverage {
			// Locked read inside the tx: a concurrent approval for the
			// same employee and type waits here instead of double-passing
			// the check.
			remaining, err := s.balances.WithTx(tx).RemainingForUpdate(ctx, l.EmployeeID.String(), l.LeaveType)
			if err != nil {
				return LeaveResponse{}, err
			}
			if remaining < days {
				s.logger.Warn("approve leave would overdraw balance",
					zap.String("leave_id", id),
					zap.Int("remaining", remaining),
					zap.Int("requested", days),
				)
				return LeaveResponse{}, balanceerrors.ErrInsufficientBalance
			}
		}

		applied, err := s.balances.WithTx(tx).ApplyDebit(ctx, l.ID.String(), l.EmployeeID.String(), l.LeaveType, days)
		if err != nil {
			s.logger.Error("approve leave debit failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
		if !applied {
			s.logger.Warn("approve leave debit already applied, skipping",
				zap.String("leave_id", id),
			)
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("role", role),
		zap.String("status", l.Status),
	)

	s.publishLifecycle(ctx, l, events.EventLeaveStatusChanged)
	if l.Status == StatusApproved {
		payload := notificationPayload(l)
		if comment != "" {
			payload["comment"] = comment
		}
		s.notifyBestEffort(ctx, recipientIDs(l), events.TemplateLeaveApproved, payload)
	}

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, id, rejectorID, reason string) (LeaveResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("rejector_id", rejectorID),
	)

	rejectorUUID, err := uuid.Parse(rejectorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	// Rejection wins from any non-terminal status, no matter which
	// approval flags are already set. No debit has happened yet because
	// APPROVED is terminal.
	if IsTerminal(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	l.RejectedBy = &rejectorUUID
	l.RejectionReason = &reason
	l.Status = ComputeStatus(l)

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("leave_id", id),
		zap.String("reason", reason),
	)

	s.publishLifecycle(ctx, l, events.EventLeaveStatusChanged)
	s.notifyBestEffort(ctx, recipientIDs(l), events.TemplateLeaveRejected, notificationPayload(l))

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, id, actorID string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	// APPROVED is not cancellable through this path; removal of an
	// approved request is the privileged Remove operation.
	if !IsEditable(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	l.CancelledAt = &now
	l.Status = ComputeStatus(l)

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	s.publishLifecycle(ctx, l, events.EventLeaveStatusChanged)
	s.notifyBestEffort(ctx, recipientIDs(l), events.TemplateLeaveCancelled, notificationPayload(l))

	return mapToResponse(*l), nil
}

func (s *service) Edit(ctx context.Context, id, actorID string, req EditLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("edit leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	coverPersonID, err := parseOptionalID(req.CoverPersonID, leaveerrors.ErrInvalidCoverPersonID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := validateNotifyIDs(req.AdditionalNotifyIDs); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("edit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if !IsEditable(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	excludeID := l.ID.String()
	overlap, err := s.repo.HasOverlappingPeriod(ctx, l.EmployeeID.String(), startDate, endDate, &excludeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// Approvals already granted are deliberately left standing; an
	// approved track applies to the edited range.
	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.Reason = req.Reason
	l.TransitionPlan = req.TransitionPlan
	l.CoverPersonID = coverPersonID
	l.AdditionalNotifyIDs = req.AdditionalNotifyIDs
	l.Status = ComputeStatus(l)

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("edit leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("edit leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("edit leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

// Remove is the privileged HR deletion path. Removing an already-approved
// request credits back exactly the debited days in the same transaction.
func (s *service) Remove(ctx context.Context, id, actorID string) error {
	s.logger.Debug("remove leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, id)
	if err != nil {
		return err
	}

	reversed, err := s.balances.WithTx(tx).ReverseDebit(ctx, l.ID.String())
	if err != nil {
		s.logger.Error("remove leave credit-back failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := qtx.Delete(ctx, l.ID.String()); err != nil {
		s.logger.Error("remove leave delete failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("remove leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("remove leave success",
		zap.String("leave_id", id),
		zap.Bool("debit_reversed", reversed),
	)

	s.publishLifecycle(ctx, l, events.EventLeaveRemoved)
	payload := notificationPayload(l)
	payload["removed_by"] = actorID
	s.notifyBestEffort(ctx, recipientIDs(l), events.TemplateLeaveCancelled, payload)

	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListForApprover(ctx context.Context, approverID, role string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	leaves, err := s.repo.ListForApprover(ctx, approverID, role)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]LeaveResponse, error) {
	if !IsValidStatus(status) {
		return nil, leaveerrors.ErrInvalidTransition
	}
	leaves, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) findForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

// publishLifecycle is best-effort like notifications: the committed
// transition stands whether or not the fact makes it onto the bus.
func (s *service) publishLifecycle(ctx context.Context, l *LeaveRequest, eventType string) {
	err := s.dispatcher.PublishLifecycle(ctx, events.LeaveLifecycleEvent{
		EventType:  eventType,
		RequestID:  l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("lifecycle publish failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func (s *service) notifyBestEffort(ctx context.Context, recipients []string, templateKind string, payload map[string]any) {
	if err := s.dispatcher.Notify(ctx, recipients, templateKind, payload); err != nil {
		s.logger.Error("notification dispatch failed",
			zap.String("template_kind", templateKind),
			zap.Error(err),
		)
	}
}

func validateSubmitRequest(actorID string, req SubmitLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidType(req.LeaveType) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeUUID, createdByUUID, startDate, endDate, nil
}

func parseOptionalID(v *string, invalid error) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}

func validateNotifyIDs(ids []string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return leaveerrors.ErrInvalidNotifyID
		}
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// recipientIDs is the notification fan-out: the owner, the cover person and
// every additional notify id. Cover person and notify list are
// notification-only, they confer no approval authority.
func recipientIDs(l *LeaveRequest) []string {
	ids := []string{l.EmployeeID.String()}
	if l.CoverPersonID != nil {
		ids = append(ids, l.CoverPersonID.String())
	}
	ids = append(ids, l.AdditionalNotifyIDs...)
	return ids
}

func notificationPayload(l *LeaveRequest) map[string]any {
	payload := map[string]any{
		"request_id": l.ID.String(),
		"leave_type": l.LeaveType,
		"start_date": l.StartDate.Format("2006-01-02"),
		"end_date":   l.EndDate.Format("2006-01-02"),
		"status":     l.Status,
	}
	if l.RejectionReason != nil {
		payload["rejection_reason"] = *l.RejectionReason
	}
	return payload
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                   l.ID.String(),
		EmployeeID:           l.EmployeeID.String(),
		LeaveType:            l.LeaveType,
		StartDate:            l.StartDate.Format("2006-01-02"),
		EndDate:              l.EndDate.Format("2006-01-02"),
		TotalDays:            dateutil.InclusiveDayCount(l.StartDate, l.EndDate),
		WorkingDays:          dateutil.WeekdayCount(l.StartDate, l.EndDate),
		Reason:               l.Reason,
		TransitionPlan:       l.TransitionPlan,
		AdditionalNotifyIDs:  l.AdditionalNotifyIDs,
		LeadApprovalRequired: l.LeadApprovalRequired,
		Status:               l.Status,
		CreatedBy:            l.CreatedBy.String(),
		CreatedAt:            l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:            l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.CoverPersonID != nil {
		v := l.CoverPersonID.String()
		resp.CoverPersonID = &v
	}
	if l.LeadApprovedBy != nil {
		v := l.LeadApprovedBy.String()
		resp.LeadApprovedBy = &v
	}
	if l.LeadApprovedAt != nil {
		v := l.LeadApprovedAt.UTC().Format(time.RFC3339)
		resp.LeadApprovedAt = &v
	}
	if l.HRApprovedBy != nil {
		v := l.HRApprovedBy.String()
		resp.HRApprovedBy = &v
	}
	if l.HRApprovedAt != nil {
		v := l.HRApprovedAt.UTC().Format(time.RFC3339)
		resp.HRApprovedAt = &v
	}
	if l.RejectedBy != nil {
		v := l.RejectedBy.String()
		resp.RejectedBy = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
