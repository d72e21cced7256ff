package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrStorageUnavailable  = errors.New("storage unavailable")

	ErrUnsupportedCountry = errors.New("unsupported country")
	ErrOngNotConfigured   = errors.New("ong payment configuration missing or incomplete")
	ErrMethodNotAvailable = errors.New("payment method not available for this ong")
	ErrSlotUnavailable    = errors.New("requested slot is not available")
)
