package interfaces

import "context"

// UserRecord is the raw, non-localizable user payload embedded in user list
// blocks. Records come from an external directory and are passed through
// untouched.
type UserRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Login  string `json:"login"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// UserDirectory lists users for dynamic user list blocks. Implementations are
// expected to honour the limit; a limit of zero or less means the caller did
// not constrain the result.
type UserDirectory interface {
	ListUsers(ctx context.Context, limit int) ([]UserRecord, error)
}
