package calendar

import "time"

// Event is one leave entry projected onto the calendar, annotated for the
// viewer it was computed for.
type Event struct {
	RequestID     string
	EmployeeID    string
	EmployeeName  string
	Department    string
	LeaveType     string
	Status        string
	StartDate     time.Time
	EndDate       time.Time
	IsCurrentUser bool
}

type EventResponse struct {
	RequestID     string `json:"request_id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	Department    string `json:"department,omitempty"`
	LeaveType     string `json:"leave_type"`
	Status        string `json:"status"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	IsCurrentUser bool   `json:"is_current_user"`
}

func mapToResponse(events []Event) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = EventResponse{
			RequestID:     e.RequestID,
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			Department:    e.Department,
			LeaveType:     e.LeaveType,
			Status:        e.Status,
			StartDate:     e.StartDate.Format("2006-01-02"),
			EndDate:       e.EndDate.Format("2006-01-02"),
			IsCurrentUser: e.IsCurrentUser,
		}
	}
	return resp
}
