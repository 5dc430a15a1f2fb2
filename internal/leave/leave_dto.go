package leave

type SubmitLeaveRequest struct {
	EmployeeID          string   `json:"employee_id" binding:"required,uuid"`
	LeaveType           string   `json:"leave_type" binding:"required,oneof=CASUAL SICK ANNUAL"`
	StartDate           string   `json:"start_date" binding:"required"`
	EndDate             string   `json:"end_date" binding:"required"`
	Reason              string   `json:"reason" binding:"required"`
	TransitionPlan      string   `json:"transition_plan"`
	CoverPersonID       *string  `json:"cover_person_id" binding:"omitempty,uuid"`
	AdditionalNotifyIDs []string `json:"additional_notify_ids" binding:"omitempty,dive,uuid"`
}

type EditLeaveRequest struct {
	LeaveType           string   `json:"leave_type" binding:"required,oneof=CASUAL SICK ANNUAL"`
	StartDate           string   `json:"start_date" binding:"required"`
	EndDate             string   `json:"end_date" binding:"required"`
	Reason              string   `json:"reason" binding:"required"`
	TransitionPlan      string   `json:"transition_plan"`
	CoverPersonID       *string  `json:"cover_person_id" binding:"omitempty,uuid"`
	AdditionalNotifyIDs []string `json:"additional_notify_ids" binding:"omitempty,dive,uuid"`
}

type ApproveLeaveRequest struct {
	Comment string `json:"comment"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID                   string   `json:"id"`
	EmployeeID           string   `json:"employee_id"`
	EmployeeName         string   `json:"employee_name,omitempty"`
	LeaveType            string   `json:"leave_type"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	TotalDays            int      `json:"total_days"`
	WorkingDays          int      `json:"working_days"`
	Reason               string   `json:"reason"`
	TransitionPlan       string   `json:"transition_plan,omitempty"`
	CoverPersonID        *string  `json:"cover_person_id,omitempty"`
	AdditionalNotifyIDs  []string `json:"additional_notify_ids,omitempty"`
	LeadApprovalRequired bool     `json:"lead_approval_required"`
	LeadApprovedBy       *string  `json:"lead_approved_by,omitempty"`
	LeadApprovedAt       *string  `json:"lead_approved_at,omitempty"`
	HRApprovedBy         *string  `json:"hr_approved_by,omitempty"`
	HRApprovedAt         *string  `json:"hr_approved_at,omitempty"`
	RejectedBy           *string  `json:"rejected_by,omitempty"`
	RejectionReason      *string  `json:"rejection_reason,omitempty"`
	Status               string   `json:"status"`
	CreatedBy            string   `json:"created_by"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}
