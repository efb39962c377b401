package users

import "errors"

// ErrNotFound is returned when no user matches the lookup
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when an insert hits the unique index
var ErrDuplicateUsername = errors.New("username already exists")
