package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "go-leave/internal/balance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Allocate(ctx context.Context, req AllocateBalanceRequest) (BalanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	Remaining(ctx context.Context, employeeID, leaveType string) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Allocate(ctx context.Context, req AllocateBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("allocate balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("allocated_days", req.AllocatedDays),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if !isValidLeaveType(req.LeaveType) {
		return BalanceResponse{}, balanceerrors.ErrInvalidLeaveType
	}
	if req.AllocatedDays < 0 {
		return BalanceResponse{}, balanceerrors.ErrInvalidAllocation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("allocate balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Allocate(ctx, req.EmployeeID, req.LeaveType, req.AllocatedDays); err != nil {
		s.logger.Error("allocate balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("allocate balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	b, err := s.repo.Get(ctx, req.EmployeeID, req.LeaveType)
	if err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("allocate balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
	)
	return mapToResponse(*b), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Remaining(ctx context.Context, employeeID, leaveType string) (int, error) {
	b, err := s.repo.Get(ctx, employeeID, leaveType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, balanceerrors.ErrBalanceNotFound
		}
		return 0, err
	}
	return b.AllocatedDays - b.UsedDays, nil
}

func isValidLeaveType(leaveType string) bool {
	switch leaveType {
	case "CASUAL", "SICK", "ANNUAL":
		return true
	}
	return false
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:    b.EmployeeID.String(),
		LeaveType:     b.LeaveType,
		AllocatedDays: b.AllocatedDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.AllocatedDays - b.UsedDays,
	}
}
