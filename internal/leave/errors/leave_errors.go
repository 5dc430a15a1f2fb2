package leaveerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeValidation,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidCoverPersonID = apperror.New(
		apperror.CodeValidation,
		"invalid cover person id",
		http.StatusBadRequest,
	)
	ErrInvalidNotifyID = apperror.New(
		apperror.CodeValidation,
		"invalid additional notify id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidation,
		"leave_type must be one of CASUAL, SICK, ANNUAL",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeValidation,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeValidation,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeValidation,
		"employee does not exist",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a leave request already exists in an overlapping period",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"action is not permitted from the current status",
		http.StatusConflict,
	)
	ErrLeadApprovalNotRequired = apperror.New(
		apperror.CodeInvalidTransition,
		"this request does not require lead approval",
		http.StatusConflict,
	)
	ErrLeadAlreadyApproved = apperror.New(
		apperror.CodeInvalidTransition,
		"lead approval has already been granted",
		http.StatusConflict,
	)
	ErrHRAlreadyApproved = apperror.New(
		apperror.CodeInvalidTransition,
		"hr approval has already been granted",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeInvalidTransition,
		"only the owning employee may perform this action",
		http.StatusConflict,
	)
	ErrInvalidApproverRole = apperror.New(
		apperror.CodeValidation,
		"role must be one of lead, hr",
		http.StatusBadRequest,
	)
	ErrConcurrentModification = apperror.New(
		apperror.CodeConcurrentModification,
		"the request was modified concurrently, retry the action",
		http.StatusConflict,
	)
)
