package leave

import (
	"time"

	"go-leave/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest is the aggregate root of the lifecycle engine. The two
// approval tracks are carried as independent optional approver/timestamp
// pairs; Status is always the value ComputeStatus derives from them and is
// persisted only so the store can query by it.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text;not null"`

	TransitionPlan      string     `gorm:"type:text"`
	CoverPersonID       *uuid.UUID `gorm:"type:uuid"`
	AdditionalNotifyIDs []string   `gorm:"type:jsonb;serializer:json"`

	// Fixed at submission from the hierarchy provider; later org-chart
	// changes do not touch existing requests.
	LeadApprovalRequired bool `gorm:"not null"`

	LeadApprovedBy *uuid.UUID `gorm:"type:uuid"`
	LeadApprovedAt *time.Time
	HRApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	HRApprovedAt   *time.Time

	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`
	CancelledAt     *time.Time

	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Version   int       `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
