package services

import "errors"

// Service-level errors mapped to HTTP statuses by the handlers.
var (
	// ErrIDMismatch means the path id and body id disagree on an update.
	ErrIDMismatch = errors.New("path ID does not match body ID")
	// ErrInvalidCustomer means an order references a customer that does not exist.
	ErrInvalidCustomer = errors.New("customer does not exist")
	// ErrInvalidVehicle means an assignment references a vehicle that does not exist.
	ErrInvalidVehicle = errors.New("vehicle does not exist")
	// ErrInvalidTimeFormat means a time-of-day query parameter failed to parse.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidGUID means a path segment failed to parse as a guid.
	ErrInvalidGUID = errors.New("invalid guid")
)
