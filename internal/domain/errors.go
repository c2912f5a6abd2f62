package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("dates overlap an existing booking")
	ErrUnavailable  = errors.New("room has no availability for the requested dates")
	ErrInvalidRange = errors.New("check-in must be before check-out")
	ErrInvalidInput = errors.New("invalid input")
)
