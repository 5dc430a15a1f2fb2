package reminder

import (
	"strings"
	"time"

	"go-leave/internal/leave"
	"go-leave/internal/shared/dateutil"
)

// NeedsTransitionPlanReminder reports whether a request is close enough to
// its start date to nudge for a transition plan: still live (or approved),
// plan blank, and starting within [0, windowDays] calendar days of today.
// Pure selection only; dispatch is the service's job.
func NeedsTransitionPlanReminder(r *leave.LeaveRequest, today time.Time, windowDays int) bool {
	switch r.Status {
	case leave.StatusPending, leave.StatusLeadApproved, leave.StatusHRApproved, leave.StatusApproved:
	default:
		return false
	}

	if strings.TrimSpace(r.TransitionPlan) != "" {
		return false
	}

	days := dateutil.CalendarDaysUntil(today, r.StartDate)
	return days >= 0 && days <= windowDays
}
