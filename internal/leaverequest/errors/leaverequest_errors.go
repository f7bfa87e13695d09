package leaverequesterrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrInvalidLeaveRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request id",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor id",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced employee does not exist",
		http.StatusBadRequest,
	)

	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced leave type does not exist",
		http.StatusBadRequest,
	)

	ErrEditNonPending = apperror.New(
		apperror.CodeInvalidState,
		"Cannot edit a request that is no longer pending",
		http.StatusConflict,
	)

	ErrDeleteNonPending = apperror.New(
		apperror.CodeInvalidState,
		"Cannot delete a request that is no longer pending",
		http.StatusConflict,
	)

	ErrDecideNonPending = apperror.New(
		apperror.CodeInvalidState,
		"Request has already been decided",
		http.StatusConflict,
	)

	ErrQuotaExceeded = apperror.New(
		apperror.CodeInvalidInput,
		"Approving this request would exceed the leave type quota",
		http.StatusBadRequest,
	)
)
