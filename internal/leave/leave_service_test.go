package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn                  func(tx *sql.Tx) leave.Repository
	createFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn                func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	updateFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	deleteFn                  func(ctx context.Context, id string) error
	listByEmployeeFn          func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	listForApproverFn         func(ctx context.Context, approverID, role string) ([]leave.LeaveRequest, error)
	listByStatusFn            func(ctx context.Context, status string) ([]leave.LeaveRequest, error)
	listIntersectingRangeFn   func(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error)
	listUpcomingWithoutPlanFn func(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error)
	hasOverlappingPeriodFn    func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) ListForApprover(ctx context.Context, approverID, role string) ([]leave.LeaveRequest, error) {
	if f.listForApproverFn != nil {
		return f.listForApproverFn(ctx, approverID, role)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) ListByStatus(ctx context.Context, status string) ([]leave.LeaveRequest, error) {
	if f.listByStatusFn != nil {
		return f.listByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) ListIntersectingRange(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	if f.listIntersectingRangeFn != nil {
		return f.listIntersectingRangeFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) ListUpcomingWithoutPlan(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	if f.listUpcomingWithoutPlanFn != nil {
		return f.listUpcomingWithoutPlanFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeBalanceRepository struct {
	withTxFn             func(tx *sql.Tx) balance.Repository
	allocateFn           func(ctx context.Context, employeeID, leaveType string, allocatedDays int) error
	getFn                func(ctx context.Context, employeeID, leaveType string) (*balance.LeaveBalance, error)
	remainingForUpdateFn func(ctx context.Context, employeeID, leaveType string) (int, error)
	listFn               func(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error)
	applyDebitFn         func(ctx context.Context, requestID, employeeID, leaveType string, days int) (bool, error)
	reverseDebitFn       func(ctx context.Context, requestID string) (bool, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Allocate(ctx context.Context, employeeID, leaveType string, allocatedDays int) error {
	if f.allocateFn != nil {
		return f.allocateFn(ctx, employeeID, leaveType, allocatedDays)
	}
	return nil
}

func (f *fakeBalanceRepository) Get(ctx context.Context, employeeID, leaveType string) (*balance.LeaveBalance, error) {
	if f.getFn != nil {
		return f.getFn(ctx, employeeID, leaveType)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) RemainingForUpdate(ctx context.Context, employeeID, leaveType string) (int, error) {
	if f.remainingForUpdateFn != nil {
		return f.remainingForUpdateFn(ctx, employeeID, leaveType)
	}
	return 0, nil
}

func (f *fakeBalanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) ApplyDebit(ctx context.Context, requestID, employeeID, leaveType string, days int) (bool, error) {
	if f.applyDebitFn != nil {
		return f.applyDebitFn(ctx, requestID, employeeID, leaveType, days)
	}
	return true, nil
}

func (f *fakeBalanceRepository) ReverseDebit(ctx context.Context, requestID string) (bool, error) {
	if f.reverseDebitFn != nil {
		return f.reverseDebitFn(ctx, requestID)
	}
	return false, nil
}

type fakeEmployeeRepository struct {
	findByIDFn  func(ctx context.Context, id string) (*employee.Employee, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]employee.Employee, error)
	existsFn    func(ctx context.Context, id string) (bool, error)
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

type fakeHierarchy struct {
	getLeadFn func(ctx context.Context, employeeID string) (*uuid.UUID, error)
}

func (f *fakeHierarchy) GetLead(ctx context.Context, employeeID string) (*uuid.UUID, error) {
	if f.getLeadFn != nil {
		return f.getLeadFn(ctx, employeeID)
	}
	return nil, nil
}

type notifyCall struct {
	recipients []string
	template   string
	payload    map[string]any
}

type fakeDispatcher struct {
	notifyFn  func(ctx context.Context, employeeIDs []string, templateKind string, payload map[string]any) error
	calls     []notifyCall
	lifecycle []events.LeaveLifecycleEvent
}

func (f *fakeDispatcher) Notify(ctx context.Context, employeeIDs []string, templateKind string, payload map[string]any) error {
	f.calls = append(f.calls, notifyCall{recipients: employeeIDs, template: templateKind, payload: payload})
	if f.notifyFn != nil {
		return f.notifyFn(ctx, employeeIDs, templateKind, payload)
	}
	return nil
}

func (f *fakeDispatcher) PublishLifecycle(ctx context.Context, event events.LeaveLifecycleEvent) error {
	f.lifecycle = append(f.lifecycle, event)
	return nil
}

type leaveServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    leave.Service
	repo       *fakeLeaveRepository
	balances   *fakeBalanceRepository
	employees  *fakeEmployeeRepository
	hierarchy  *fakeHierarchy
	dispatcher *fakeDispatcher
}

func setupLeaveServiceTest(t *testing.T, cfg leave.Config) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	balances := &fakeBalanceRepository{}
	employees := &fakeEmployeeRepository{}
	hierarchy := &fakeHierarchy{}
	dispatcher := &fakeDispatcher{}

	svc := leave.NewService(db, repo, balances, employees, hierarchy, dispatcher, cfg)

	return &leaveServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		balances:   balances,
		employees:  employees,
		hierarchy:  hierarchy,
		dispatcher: dispatcher,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// 2026-03-02 through 2026-03-06 is a full Monday-Friday week.
const (
	testStartDate = "2026-03-02"
	testEndDate   = "2026-03-06"
)

func pendingRequest(employeeID uuid.UUID, leadRequired bool) *leave.LeaveRequest {
	r := &leave.LeaveRequest{
		ID:                   uuid.New(),
		EmployeeID:           employeeID,
		LeaveType:            leave.TypeAnnual,
		StartDate:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Reason:               "Family event",
		LeadApprovalRequired: leadRequired,
		CreatedBy:            employeeID,
		Version:              1,
	}
	r.Status = leave.ComputeStatus(r)
	return r
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success with lead in hierarchy", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		leadID := uuid.New()
		deps.hierarchy.getLeadFn = func(ctx context.Context, eid string) (*uuid.UUID, error) {
			assert.Equal(t, employeeID, eid)
			return &leadID, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.True(t, l.LeadApprovalRequired)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, 1, l.Version)
			return nil
		}

		resp, err := deps.service.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  testStartDate,
			EndDate:    testEndDate,
			Reason:     "Family event",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.True(t, resp.LeadApprovalRequired)
		assert.Equal(t, 5, resp.TotalDays)
		assert.Equal(t, 5, resp.WorkingDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		// Submission confirms to the owner and nudges the lead.
		assert.Len(t, deps.dispatcher.calls, 2)
		assert.Equal(t, []string{employeeID}, deps.dispatcher.calls[0].recipients)
		assert.Equal(t, []string{leadID.String()}, deps.dispatcher.calls[1].recipients)
	})

	t.Run("no lead means lead approval not required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.False(t, l.LeadApprovalRequired)
			return nil
		}

		resp, err := deps.service.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeSick,
			StartDate:  testStartDate,
			EndDate:    testStartDate,
			Reason:     "Medical",
		})

		assert.NoError(t, err)
		assert.False(t, resp.LeadApprovalRequired)
		assert.Len(t, deps.dispatcher.calls, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid string, start, end time.Time, excludeID *string) (bool, error) {
			assert.Nil(t, excludeID)
			return true, nil
		}

		_, err := deps.service.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  testStartDate,
			EndDate:    testEndDate,
			Reason:     "Family event",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  testEndDate,
			EndDate:    testStartDate,
			Reason:     "Family event",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		deps.employees.existsFn = func(ctx context.Context, id string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  testStartDate,
			EndDate:    testEndDate,
			Reason:     "Family event",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func TestLeaveService_ApprovalRendezvous(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leadID := uuid.New().String()
	hrID := uuid.New().String()

	t.Run("lead then hr, debit applied exactly once on completion", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		debits := 0
		deps.balances.applyDebitFn = func(ctx context.Context, requestID, eid, leaveType string, days int) (bool, error) {
			debits++
			assert.Equal(t, r.ID.String(), requestID)
			assert.Equal(t, employeeID.String(), eid)
			assert.Equal(t, 5, days)
			return true, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsLead(ctx, r.ID.String(), leadID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusLeadApproved, resp.Status)
		assert.Equal(t, 0, debits)

		expectTx(t, deps.sqlMock, true)
		resp, err = deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "enjoy")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 1, debits)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr then lead reaches the same terminal state", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		debits := 0
		deps.balances.applyDebitFn = func(ctx context.Context, requestID, eid, leaveType string, days int) (bool, error) {
			debits++
			return true, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusHRApproved, resp.Status)
		assert.Equal(t, 0, debits)

		expectTx(t, deps.sqlMock, true)
		resp, err = deps.service.ApproveAsLead(ctx, r.ID.String(), leadID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 1, debits)
	})

	t.Run("hr alone approves when no lead is required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		debits := 0
		deps.balances.applyDebitFn = func(ctx context.Context, requestID, eid, leaveType string, days int) (bool, error) {
			debits++
			return true, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 1, debits)
	})

	t.Run("negative lead approve when not required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ApproveAsLead(ctx, r.ID.String(), leadID, "")
		assert.ErrorIs(t, err, leaveerrors.ErrLeadApprovalNotRequired)
	})

	t.Run("negative duplicate lead approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		already := uuid.MustParse(leadID)
		now := time.Now().UTC()
		r.LeadApprovedBy = &already
		r.LeadApprovedAt = &now
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ApproveAsLead(ctx, r.ID.String(), leadID, "")
		assert.ErrorIs(t, err, leaveerrors.ErrLeadAlreadyApproved)
	})

	t.Run("negative approve on terminal request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		hr := uuid.MustParse(hrID)
		r.HRApprovedBy = &hr
		r.Status = leave.ComputeStatus(r)
		assert.Equal(t, leave.StatusApproved, r.Status)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	})

	t.Run("replayed completion skips the duplicate debit", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.balances.applyDebitFn = func(ctx context.Context, requestID, eid, leaveType string, days int) (bool, error) {
			return false, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("negative insufficient balance when overage disallowed", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: false})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.balances.remainingForUpdateFn = func(ctx context.Context, eid, leaveType string) (int, error) {
			assert.Equal(t, employeeID.String(), eid)
			assert.Equal(t, leave.TypeAnnual, leaveType)
			return 2, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
	})

	t.Run("balance check takes the row lock inside the transaction", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: false})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		// The locked read must go through the tx-bound repository; a read
		// on the base repository would race a concurrent approval.
		deps.balances.remainingForUpdateFn = func(ctx context.Context, eid, leaveType string) (int, error) {
			t.Fatal("remaining read bypassed the transaction")
			return 0, nil
		}
		txBalances := &fakeBalanceRepository{
			remainingForUpdateFn: func(ctx context.Context, eid, leaveType string) (int, error) {
				return 25, nil
			},
		}
		deps.balances.withTxFn = func(tx *sql.Tx) balance.Repository {
			assert.NotNil(t, tx)
			return txBalances
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("overage allowed lets the balance go negative", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.balances.remainingForUpdateFn = func(ctx context.Context, eid, leaveType string) (int, error) {
			t.Fatal("remaining should not be read when overage is allowed")
			return 0, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), hrID, "")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("negative concurrent modification surfaces", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			return leaveerrors.ErrConcurrentModification
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ApproveAsLead(ctx, r.ID.String(), leadID, "")
		assert.ErrorIs(t, err, leaveerrors.ErrConcurrentModification)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	hrID := uuid.New().String()

	t.Run("rejection wins from a partially approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		lead := uuid.New()
		r.LeadApprovedBy = &lead
		r.Status = leave.ComputeStatus(r)
		assert.Equal(t, leave.StatusLeadApproved, r.Status)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Reject(ctx, r.ID.String(), hrID, "understaffed")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "understaffed", *resp.RejectionReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reason required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, uuid.New().String(), hrID, "   ")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("negative reject on terminal request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		now := time.Now().UTC()
		r.CancelledAt = &now
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Reject(ctx, r.ID.String(), hrID, "understaffed")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("owner cancels a lead approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		lead := uuid.New()
		r.LeadApprovedBy = &lead
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Cancel(ctx, r.ID.String(), employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
	})

	t.Run("negative cancel after full approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		hr := uuid.New()
		r.HRApprovedBy = &hr
		r.Status = leave.ComputeStatus(r)
		assert.Equal(t, leave.StatusApproved, r.Status)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Cancel(ctx, r.ID.String(), employeeID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	})

	t.Run("negative cancel by someone else", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Cancel(ctx, r.ID.String(), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})
}

func TestLeaveService_Edit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("edit keeps granted approvals standing", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, true)
		lead := uuid.New()
		r.LeadApprovedBy = &lead
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid string, start, end time.Time, excludeID *string) (bool, error) {
			assert.NotNil(t, excludeID)
			assert.Equal(t, r.ID.String(), *excludeID)
			return false, nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Edit(ctx, r.ID.String(), employeeID.String(), leave.EditLeaveRequest{
			LeaveType: leave.TypeAnnual,
			StartDate: "2026-03-09",
			EndDate:   "2026-03-10",
			Reason:    "Moved dates",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusLeadApproved, resp.Status)
		assert.NotNil(t, resp.LeadApprovedBy)
		assert.Equal(t, "2026-03-09", resp.StartDate)
	})

	t.Run("negative edit after terminal status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		hr := uuid.New()
		r.HRApprovedBy = &hr
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Edit(ctx, r.ID.String(), employeeID.String(), leave.EditLeaveRequest{
			LeaveType: leave.TypeAnnual,
			StartDate: "2026-03-09",
			EndDate:   "2026-03-10",
			Reason:    "Moved dates",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	})
}

func TestLeaveService_Remove(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	hrID := uuid.New().String()

	t.Run("removing an approved request credits the debit back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		hr := uuid.MustParse(hrID)
		r.HRApprovedBy = &hr
		r.Status = leave.ComputeStatus(r)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		reversed := false
		deps.balances.reverseDebitFn = func(ctx context.Context, requestID string) (bool, error) {
			reversed = true
			assert.Equal(t, r.ID.String(), requestID)
			return true, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		err := deps.service.Remove(ctx, r.ID.String(), hrID)

		assert.NoError(t, err)
		assert.True(t, reversed)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		expectTx(t, deps.sqlMock, false)
		err := deps.service.Remove(ctx, uuid.New().String(), hrID)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Notifications(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("dispatch failure never fails the transition", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}
		deps.dispatcher.notifyFn = func(ctx context.Context, ids []string, kind string, payload map[string]any) error {
			return errors.New("broker down")
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApproveAsHR(ctx, r.ID.String(), uuid.New().String(), "")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("cover person and notify list receive the outcome", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		r := pendingRequest(employeeID, false)
		cover := uuid.New()
		extra := uuid.New().String()
		r.CoverPersonID = &cover
		r.AdditionalNotifyIDs = []string{extra}

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return r, nil
		}

		expectTx(t, deps.sqlMock, true)
		_, err := deps.service.ApproveAsHR(ctx, r.ID.String(), uuid.New().String(), "")
		assert.NoError(t, err)

		assert.Len(t, deps.dispatcher.calls, 1)
		assert.ElementsMatch(t,
			[]string{employeeID.String(), cover.String(), extra},
			deps.dispatcher.calls[0].recipients,
		)
	})
}

func TestLeaveService_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("list for approver validates role downstream", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		deps.repo.listForApproverFn = func(ctx context.Context, approverID, role string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, leave.RoleLead, role)
			return []leave.LeaveRequest{*pendingRequest(uuid.New(), true)}, nil
		}

		resp, err := deps.service.ListForApprover(ctx, uuid.New().String(), leave.RoleLead)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative list by unknown status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		_, err := deps.service.ListByStatus(ctx, "MAYBE")
		assert.Error(t, err)
	})

	t.Run("get by id not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Config{AllowOverage: true})
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
