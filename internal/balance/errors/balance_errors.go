package balanceerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeValidation,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidation,
		"leave_type must be one of CASUAL, SICK, ANNUAL",
		http.StatusBadRequest,
	)
	ErrInvalidAllocation = apperror.New(
		apperror.CodeValidation,
		"allocated_days must not be negative",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"remaining balance is not sufficient for this request",
		http.StatusUnprocessableEntity,
	)
)
