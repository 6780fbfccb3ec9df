package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotBalanced indicates that a double-entry invariant does not hold:
// a journal entry whose debit and credit totals differ, or a balance sheet
// where assets != liabilities + equity.
var ErrNotBalanced = errors.New("debits and credits do not balance")

// ErrAlreadyClosed indicates that a year-end close was attempted for a fiscal
// year whose successor already has opening balances. Not retryable.
var ErrAlreadyClosed = errors.New("fiscal year already closed")

// ErrMissingConfiguration indicates that a required configured account (for
// example the retained earnings account) does not exist for the tenant.
var ErrMissingConfiguration = errors.New("required configuration missing")

// ErrImmutable indicates an attempt to mutate a posted journal entry or a
// finalized balance sheet.
var ErrImmutable = errors.New("resource is immutable")
