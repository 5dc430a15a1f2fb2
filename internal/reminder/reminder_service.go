package reminder

import (
	"context"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/leave"
	"go-leave/internal/notify"
	"go-leave/internal/shared/dateutil"

	"go.uber.org/zap"
)

const DefaultWindowDays = 7

//go:generate mockgen -source=reminder_service.go -destination=mock/reminder_service_mock.go -package=mock
type Service interface {
	ListNeedingReminder(ctx context.Context, today time.Time, windowDays int) ([]ReminderResponse, error)
	SendReminders(ctx context.Context, today time.Time, windowDays int) (int, error)
}

type service struct {
	repo       leave.Repository
	dispatcher notify.Dispatcher
	logger     *zap.Logger
}

func NewService(repo leave.Repository, dispatcher notify.Dispatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("reminder.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reminder.service")
	}
	return &service{repo: repo, dispatcher: dispatcher, logger: l}
}

func (s *service) ListNeedingReminder(ctx context.Context, today time.Time, windowDays int) ([]ReminderResponse, error) {
	eligible, err := s.listEligible(ctx, today, windowDays)
	if err != nil {
		return nil, err
	}

	resp := make([]ReminderResponse, len(eligible))
	for i := range eligible {
		r := &eligible[i]
		resp[i] = ReminderResponse{
			RequestID:      r.ID.String(),
			EmployeeID:     r.EmployeeID.String(),
			LeaveType:      r.LeaveType,
			StartDate:      r.StartDate.Format("2006-01-02"),
			Status:         r.Status,
			DaysUntilStart: dateutil.CalendarDaysUntil(today, r.StartDate),
		}
	}
	return resp, nil
}

// SendReminders is the batch trigger, called by the HR endpoint or the
// worker sweep. Individual dispatch failures are logged and skipped, never
// propagated.
func (s *service) SendReminders(ctx context.Context, today time.Time, windowDays int) (int, error) {
	eligible, err := s.listEligible(ctx, today, windowDays)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range eligible {
		r := &eligible[i]
		err := s.dispatcher.Notify(ctx,
			[]string{r.EmployeeID.String()},
			events.TemplateTransitionPlanReminder,
			map[string]any{
				"request_id": r.ID.String(),
				"leave_type": r.LeaveType,
				"start_date": r.StartDate.Format("2006-01-02"),
			},
		)
		if err != nil {
			s.logger.Error("transition plan reminder dispatch failed",
				zap.String("leave_id", r.ID.String()),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("transition plan reminders sent",
		zap.Int("eligible", len(eligible)),
		zap.Int("sent", sent),
	)
	return sent, nil
}

func (s *service) listEligible(ctx context.Context, today time.Time, windowDays int) ([]leave.LeaveRequest, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	candidates, err := s.repo.ListUpcomingWithoutPlan(ctx, today, today.AddDate(0, 0, windowDays))
	if err != nil {
		s.logger.Error("list upcoming without plan failed", zap.Error(err))
		return nil, err
	}

	// The query over-fetches slightly; the pure selector is the source of
	// truth for eligibility.
	eligible := candidates[:0]
	for i := range candidates {
		if NeedsTransitionPlanReminder(&candidates[i], today, windowDays) {
			eligible = append(eligible, candidates[i])
		}
	}
	return eligible, nil
}
