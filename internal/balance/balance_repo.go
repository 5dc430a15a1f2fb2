package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Allocate(ctx context.Context, employeeID, leaveType string, allocatedDays int) error
	Get(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error)
	RemainingForUpdate(ctx context.Context, employeeID, leaveType string) (int, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	ApplyDebit(ctx context.Context, requestID, employeeID, leaveType string, days int) (bool, error)
	ReverseDebit(ctx context.Context, requestID string) (bool, error)
}

// repository runs the balance-mutating statements as raw SQL on the execer
// so the debit lands in the same transaction as the status write that
// triggers it. Reads go through gorm.
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

// Allocate upserts the allocation for one employee/leave-type pair.
// Used days are untouched so re-running onboarding is safe.
func (r *repository) Allocate(ctx context.Context, employeeID, leaveType string, allocatedDays int) error {
	query := `
INSERT INTO leave_balances (id, employee_id, leave_type, allocated_days, used_days, created_at, updated_at)
VALUES (gen_random_uuid(), $1, $2, $3, 0, NOW(), NOW())
ON CONFLICT (employee_id, leave_type) DO UPDATE
SET allocated_days = EXCLUDED.allocated_days, updated_at = NOW()
`
	_, err := r.execer().ExecContext(ctx, query, employeeID, leaveType, allocatedDays)
	return err
}

func (r *repository) Get(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		First(&b).Error
	return &b, err
}

// RemainingForUpdate reads the remaining days under a row lock so the value
// cannot move between the check and the debit in the caller's transaction.
// No allocation row means nothing was ever granted: zero remaining.
func (r *repository) RemainingForUpdate(ctx context.Context, employeeID, leaveType string) (int, error) {
	query := `
SELECT allocated_days - used_days
FROM leave_balances
WHERE employee_id = $1 AND leave_type = $2
FOR UPDATE
`
	var remaining int
	err := r.execer().QueryRowContext(ctx, query, employeeID, leaveType).Scan(&remaining)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return remaining, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

// ApplyDebit increases used_days exactly once per request id. The returned
// bool is false when the debit marker already existed, i.e. a replayed
// transition; the balance is left unchanged in that case.
func (r *repository) ApplyDebit(ctx context.Context, requestID, employeeID, leaveType string, days int) (bool, error) {
	exec := r.execer()

	marker := `
INSERT INTO leave_debits (request_id, employee_id, leave_type, days, applied_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (request_id) DO NOTHING
`
	res, err := exec.ExecContext(ctx, marker, requestID, employeeID, leaveType, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	debit := `
INSERT INTO leave_balances (id, employee_id, leave_type, allocated_days, used_days, created_at, updated_at)
VALUES (gen_random_uuid(), $1, $2, 0, $3, NOW(), NOW())
ON CONFLICT (employee_id, leave_type) DO UPDATE
SET used_days = leave_balances.used_days + $3, updated_at = NOW()
`
	if _, err := exec.ExecContext(ctx, debit, employeeID, leaveType, days); err != nil {
		return false, err
	}

	return true, nil
}

// ReverseDebit credits back exactly the days the request debited. False
// means no debit was ever applied for this request.
func (r *repository) ReverseDebit(ctx context.Context, requestID string) (bool, error) {
	exec := r.execer()

	remove := `
DELETE FROM leave_debits
WHERE request_id = $1
RETURNING employee_id::text, leave_type, days
`
	var (
		employeeID string
		leaveType  string
		days       int
	)
	err := exec.QueryRowContext(ctx, remove, requestID).Scan(&employeeID, &leaveType, &days)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	credit := `
UPDATE leave_balances
SET used_days = used_days - $3, updated_at = NOW()
WHERE employee_id = $1 AND leave_type = $2
`
	if _, err := exec.ExecContext(ctx, credit, employeeID, leaveType, days); err != nil {
		return false, err
	}

	return true, nil
}
