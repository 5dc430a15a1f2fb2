package leave

const (
	StatusPending      = "PENDING"
	StatusLeadApproved = "LEAD_APPROVED"
	StatusHRApproved   = "HR_APPROVED"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
	StatusCancelled    = "CANCELLED"
)

const (
	TypeCasual = "CASUAL"
	TypeSick   = "SICK"
	TypeAnnual = "ANNUAL"
)

const (
	RoleLead = "lead"
	RoleHR   = "hr"
)

// ComputeStatus derives the request status from the stored facts. Status is
// never settable on its own; every write recomputes it from the flags so
// "both tracks approved" cannot be represented inconsistently. Rejection
// wins over everything, cancellation over any pending approval state.
func ComputeStatus(r *LeaveRequest) string {
	switch {
	case r.RejectedBy != nil:
		return StatusRejected
	case r.CancelledAt != nil:
		return StatusCancelled
	case r.HRApprovedBy != nil && (r.LeadApprovedBy != nil || !r.LeadApprovalRequired):
		return StatusApproved
	case r.HRApprovedBy != nil:
		return StatusHRApproved
	case r.LeadApprovedBy != nil:
		return StatusLeadApproved
	default:
		return StatusPending
	}
}

// IsTerminal reports whether no further transition is allowed.
func IsTerminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsEditable reports whether the owning employee may still edit or cancel.
func IsEditable(status string) bool {
	switch status {
	case StatusPending, StatusLeadApproved, StatusHRApproved:
		return true
	}
	return false
}

func IsValidType(leaveType string) bool {
	switch leaveType {
	case TypeCasual, TypeSick, TypeAnnual:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusLeadApproved, StatusHRApproved,
		StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
