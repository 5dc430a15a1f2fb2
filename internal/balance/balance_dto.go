package balance

type AllocateBalanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveType     string `json:"leave_type" binding:"required,oneof=CASUAL SICK ANNUAL"`
	AllocatedDays int    `json:"allocated_days" binding:"min=0"`
}

type BalanceResponse struct {
	EmployeeID    string `json:"employee_id"`
	LeaveType     string `json:"leave_type"`
	AllocatedDays int    `json:"allocated_days"`
	UsedDays      int    `json:"used_days"`
	// RemainingDays goes negative under the allow-overage policy; it is
	// surfaced as-is, never clamped.
	RemainingDays int `json:"remaining_days"`
}
