package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is the per-employee, per-leave-type ledger row. UsedDays only
// moves through ApplyDebit/ReverseDebit, never directly.
type LeaveBalance struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type"`
	LeaveType     string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_balances_employee_type"`
	AllocatedDays int       `gorm:"type:int;not null;default:0"`
	UsedDays      int       `gorm:"type:int;not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LeaveDebit records that a request's debit has been applied. Keying by
// request id is what makes a replayed transition a no-op, and the stored
// Days is what ReverseDebit credits back, so a post-approval edit cannot
// skew the reversal.
type LeaveDebit struct {
	RequestID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	LeaveType  string    `gorm:"type:varchar(20);not null"`
	Days       int       `gorm:"type:int;not null"`
	AppliedAt  time.Time
}
