package types

import "errors"

// Operation errors surfaced by the data access layer.
var (
	// ErrNotFound means a lookup by ID matched nothing. Read operations
	// translate this to a nil result; mutating operations that require the
	// target to exist return it as an error.
	ErrNotFound = errors.New("not found")

	// ErrSchemaMismatch means a config or value does not conform to the
	// shape dictated by the owning property's type.
	ErrSchemaMismatch = errors.New("value does not match property type")

	// ErrUnknownPropertyType means a type tag outside the closed set of
	// seven property types.
	ErrUnknownPropertyType = errors.New("unknown property type")

	// ErrConstraintViolation means a referential or uniqueness constraint
	// was violated at the store layer.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Argument validation errors.
var (
	ErrInvalidID         = errors.New("invalid entity ID")
	ErrInvalidParentType = errors.New("parent type must be \"database\" or \"page\"")
	ErrUnknownViewType   = errors.New("unknown view type")
)
