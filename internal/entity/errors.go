package entity

import "errors"

// Sentinel errors returned by repositories. The usecase layer translates
// them into caller-facing error codes.
var (
	ErrNotFound               = errors.New("record not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrDuplicateTransactionID = errors.New("transaction ID already exists")
	ErrDuplicateDocument      = errors.New("document already uploaded for this client")
)
