package errors

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidID = errors.New("invalid resource ID format")

	ErrNameTaken = errors.New("resource name is already in use")
)
