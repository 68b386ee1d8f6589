package contract

import "errors"

var (
	ErrReasonerInvoke  = errors.New("reasoning service invoke failed")
	ErrSchemaViolation = errors.New("reasoning response violates schema")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("collaborator not available")
)
