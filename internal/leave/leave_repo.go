package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	leaveerrors "go-leave/internal/leave/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, r *LeaveRequest) error
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListForApprover(ctx context.Context, approverID, role string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	ListIntersectingRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)
	ListUpcomingWithoutPlan(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

// repository reads through gorm; the mutation path goes through raw SQL on
// the execer so writes land inside the caller's transaction (see WithTx).
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

type execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	db, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	notifyIDs, err := json.Marshal(l.AdditionalNotifyIDs)
	if err != nil {
		return err
	}

	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type, start_date, end_date, reason,
	transition_plan, cover_person_id, additional_notify_ids,
	lead_approval_required, lead_approved_by, lead_approved_at,
	hr_approved_by, hr_approved_at, rejected_by, rejection_reason,
	cancelled_at, status, created_by, version, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW()
)
RETURNING created_at, updated_at
`
	// The DB owns the timestamps; reading them back keeps the response
	// from serializing zero times.
	return r.execer().QueryRowContext(ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Reason,
		l.TransitionPlan, l.CoverPersonID, notifyIDs,
		l.LeadApprovalRequired, l.LeadApprovedBy, l.LeadApprovedAt,
		l.HRApprovedBy, l.HRApprovedAt, l.RejectedBy, l.RejectionReason,
		l.CancelledAt, l.Status, l.CreatedBy, l.Version,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

// Update is version-checked. No row coming back means another writer got
// there first; the caller must surface CONCURRENT_MODIFICATION.
func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	notifyIDs, err := json.Marshal(l.AdditionalNotifyIDs)
	if err != nil {
		return err
	}

	query := `
UPDATE leave_requests SET
	leave_type = $2,
	start_date = $3,
	end_date = $4,
	reason = $5,
	transition_plan = $6,
	cover_person_id = $7,
	additional_notify_ids = $8,
	lead_approved_by = $9,
	lead_approved_at = $10,
	hr_approved_by = $11,
	hr_approved_at = $12,
	rejected_by = $13,
	rejection_reason = $14,
	cancelled_at = $15,
	status = $16,
	version = version + 1,
	updated_at = NOW()
WHERE id = $1 AND version = $17 AND deleted_at IS NULL
RETURNING updated_at
`
	err = r.execer().QueryRowContext(ctx, query,
		l.ID, l.LeaveType, l.StartDate, l.EndDate, l.Reason,
		l.TransitionPlan, l.CoverPersonID, notifyIDs,
		l.LeadApprovedBy, l.LeadApprovedAt,
		l.HRApprovedBy, l.HRApprovedAt,
		l.RejectedBy, l.RejectionReason,
		l.CancelledAt, l.Status, l.Version,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return leaveerrors.ErrConcurrentModification
		}
		return err
	}

	l.Version++
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
UPDATE leave_requests SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.execer().ExecContext(ctx, query, id)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

// ListForApprover returns requests where the caller is the outstanding
// approver. Leads only see their own reports; any HR actor sees every
// request still awaiting the HR track.
func (r *repository) ListForApprover(ctx context.Context, approverID, role string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest

	switch role {
	case RoleLead:
		err := r.db.WithContext(ctx).
			Joins("JOIN employees ON employees.id = leave_requests.employee_id").
			Where("employees.lead_id = ?", approverID).
			Where("leave_requests.lead_approval_required").
			Where("leave_requests.lead_approved_by IS NULL").
			Where("leave_requests.status IN ?", []string{StatusPending, StatusHRApproved}).
			Order("leave_requests.start_date ASC").
			Find(&leaves).Error
		return leaves, err
	case RoleHR:
		err := r.db.WithContext(ctx).
			Where("hr_approved_by IS NULL").
			Where("status IN ?", []string{StatusPending, StatusLeadApproved}).
			Order("start_date ASC").
			Find(&leaves).Error
		return leaves, err
	default:
		return nil, leaveerrors.ErrInvalidApproverRole
	}
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListIntersectingRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Department").
		Where("start_date <= ?", end).
		Where("end_date >= ?", start).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListUpcomingWithoutPlan(ctx context.Context, from, to time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{StatusRejected, StatusCancelled}).
		Where("btrim(transition_plan) = ''").
		Where("start_date BETWEEN ? AND ?", from, to).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCancelled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
