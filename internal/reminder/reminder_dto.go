package reminder

type ReminderResponse struct {
	RequestID      string `json:"request_id"`
	EmployeeID     string `json:"employee_id"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	Status         string `json:"status"`
	DaysUntilStart int    `json:"days_until_start"`
}

type SendRemindersResponse struct {
	Sent int `json:"sent"`
}
