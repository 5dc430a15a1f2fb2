package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	EventLeaveSubmitted     = "leave_submitted"
	EventLeaveStatusChanged = "leave_status_changed"
	EventLeaveRemoved       = "leave_removed"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
