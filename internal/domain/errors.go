package domain

import "errors"

var (
	// Configuration errors
	ErrMissingCredential    = errors.New("missing credential")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidStartDate     = errors.New("invalid start date")

	// Ledger errors
	ErrAccountNotFound = errors.New("account not found")
	ErrTransport       = errors.New("ledger request failed")

	// Expense errors
	ErrExpenseUnbalanced  = errors.New("expense shares do not balance")
	ErrMissingExpenseDate = errors.New("expense has no usable date")

	// Run errors
	ErrImportIDCollision  = errors.New("duplicate import id in batch")
	ErrSelectionCancelled = errors.New("selection cancelled")
)
