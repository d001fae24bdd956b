package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches by code so a WithError copy still compares equal to its sentinel
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidAmount = &AppError{
		Code:       "INVALID_AMOUNT",
		Message:    "Rate amount must be greater than zero",
		StatusCode: 422,
	}

	ErrInvalidPlate = &AppError{
		Code:       "INVALID_PLATE",
		Message:    "License plate format is invalid",
		StatusCode: 422,
	}

	ErrInvalidDiscount = &AppError{
		Code:       "INVALID_DISCOUNT",
		Message:    "Corporate discount must be between 0 and 10 percent",
		StatusCode: 422,
	}

	ErrInvalidBenefit = &AppError{
		Code:       "INVALID_BENEFIT",
		Message:    "Benefit configuration is invalid",
		StatusCode: 422,
	}

	ErrInvalidPeriod = &AppError{
		Code:       "INVALID_PERIOD",
		Message:    "Settlement period is invalid",
		StatusCode: 422,
	}

	ErrDuplicateActiveTicket = &AppError{
		Code:       "DUPLICATE_ACTIVE_TICKET",
		Message:    "An open ticket already exists for this license plate",
		StatusCode: 409,
	}

	ErrBranchAtCapacity = &AppError{
		Code:       "BRANCH_AT_CAPACITY",
		Message:    "Branch has no free spots for this vehicle type",
		StatusCode: 409,
	}

	ErrTicketAlreadyClosed = &AppError{
		Code:       "TICKET_ALREADY_CLOSED",
		Message:    "Ticket has already been closed",
		StatusCode: 409,
	}

	ErrFleetPlateLimit = &AppError{
		Code:       "FLEET_PLATE_LIMIT",
		Message:    "Fleet has reached its plate limit",
		StatusCode: 409,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, slow down",
		StatusCode: 429,
	}

	ErrTicketNotFound = &AppError{
		Code:       "TICKET_NOT_FOUND",
		Message:    "Ticket not found",
		StatusCode: 404,
	}

	ErrBranchNotFound = &AppError{
		Code:       "BRANCH_NOT_FOUND",
		Message:    "Branch not found",
		StatusCode: 404,
	}

	ErrPlanNotFound = &AppError{
		Code:       "PLAN_NOT_FOUND",
		Message:    "Subscription plan not found",
		StatusCode: 404,
	}

	ErrSubscriptionNotFound = &AppError{
		Code:       "SUBSCRIPTION_NOT_FOUND",
		Message:    "Subscription not found",
		StatusCode: 404,
	}

	ErrBenefitNotFound = &AppError{
		Code:       "BENEFIT_NOT_FOUND",
		Message:    "Commerce benefit not found",
		StatusCode: 404,
	}

	ErrFleetNotFound = &AppError{
		Code:       "FLEET_NOT_FOUND",
		Message:    "Fleet not found",
		StatusCode: 404,
	}

	// ErrNoActiveRate means no rate row covers the requested instant. This is
	// administrative misconfiguration: the triggering exit fails, the ticket
	// stays OPEN and the operation is retryable once a rate exists.
	ErrNoActiveRate = &AppError{
		Code:       "NO_ACTIVE_RATE",
		Message:    "No active rate configured for this time",
		StatusCode: 500,
	}
)
