package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email address already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueExists       = errors.New("venue already exists")
	ErrVenueInUse        = errors.New("venue still hosts shows")
	ErrCapacityBelowSold = errors.New("capacity is lower than tickets already sold")

	ErrShowNotFound        = errors.New("show not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")

	ErrSessionNotFound = errors.New("session not found")
)
