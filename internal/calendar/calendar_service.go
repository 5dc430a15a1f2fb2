// Package calendar is a read-side projection of the leave store. It never
// mutates state.
package calendar

import (
	"context"
	"fmt"
	"time"

	"go-leave/internal/leave"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DepartmentAll = "ALL"

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	EventsForMonth(ctx context.Context, viewerID string, year, month int, departmentFilter string) ([]Event, error)
}

type service struct {
	repo   leave.Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

// EventsForMonth returns every leave request intersecting the month,
// annotated for the viewer. With a department filter set (and not "ALL"),
// other departments' events are dropped unless they belong to the viewer.
func (s *service) EventsForMonth(ctx context.Context, viewerID string, year, month int, departmentFilter string) ([]Event, error) {
	if _, err := uuid.Parse(viewerID); err != nil {
		return nil, apperror.InvalidField("viewer id")
	}
	if month < 1 || month > 12 {
		return nil, apperror.InvalidField("month")
	}
	if year < 1970 || year > 9999 {
		return nil, apperror.InvalidField("year")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// The store fetch is viewer-independent, so concurrent loads of the
	// same month share one query. Annotation stays per-viewer. The load
	// runs on a detached context: the first caller cancelling must not
	// fail the coalesced waiters.
	key := fmt.Sprintf("%04d-%02d", year, month)
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.repo.ListIntersectingRange(loadCtx, monthStart, monthEnd)
	})
	if err != nil {
		s.logger.Error("calendar month load failed",
			zap.String("month", key),
			zap.Error(err),
		)
		return nil, err
	}
	requests := v.([]leave.LeaveRequest)

	events := make([]Event, 0, len(requests))
	for i := range requests {
		r := &requests[i]

		// Calendar-date intersection, never timestamp arithmetic: a
		// timezone offset on a stored value must not shift an event
		// across a month boundary.
		if !dateutil.OnOrBeforeCalendarDate(r.StartDate, monthEnd) ||
			!dateutil.OnOrAfterCalendarDate(r.EndDate, monthStart) {
			continue
		}

		e := Event{
			RequestID:     r.ID.String(),
			EmployeeID:    r.EmployeeID.String(),
			LeaveType:     r.LeaveType,
			Status:        r.Status,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			IsCurrentUser: r.EmployeeID.String() == viewerID,
		}
		if r.Employee != nil {
			e.EmployeeName = r.Employee.FullName
			if r.Employee.Department != nil {
				e.Department = r.Employee.Department.Name
			}
		}

		if departmentFilter != "" && departmentFilter != DepartmentAll &&
			!e.IsCurrentUser && e.Department != departmentFilter {
			continue
		}

		events = append(events, e)
	}

	return events, nil
}

// EventsForDate narrows a month's projection to a single date, inclusive on
// both endpoints. Pure; callers reuse the month slice they already hold.
func EventsForDate(events []Event, date time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if dateutil.OnOrBeforeCalendarDate(e.StartDate, date) &&
			dateutil.OnOrAfterCalendarDate(e.EndDate, date) {
			out = append(out, e)
		}
	}
	return out
}
