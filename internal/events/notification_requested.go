package events

import "time"

const NotificationDispatchTopic = "hr.notification.dispatch.v1"

// Template kinds understood by the notification gateway.
const (
	TemplateLeaveSubmitted         = "leave_submitted"
	TemplateLeaveApproved          = "leave_approved"
	TemplateLeaveRejected          = "leave_rejected"
	TemplateLeaveCancelled         = "leave_cancelled"
	TemplateLeaveAwaitingApproval  = "leave_awaiting_approval"
	TemplateTransitionPlanReminder = "transition_plan_reminder"
)

type NotificationRequestedEvent struct {
	EventType    string         `json:"event_type"`
	EmployeeIDs  []string       `json:"employee_ids"`
	TemplateKind string         `json:"template_kind"`
	Payload      map[string]any `json:"payload,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
}
