// Package common defines the sentinel errors shared by the storefront
// components. Callers should use errors.Is to match these values; the
// specific errors wrap a category error so both levels match.
package common

import (
	"errors"
	"fmt"
)

var (
	// Category errors.
	ErrValidation = errors.New("validation error")
	ErrCart       = errors.New("cart error")

	// Registration validation errors.
	ErrMissingField     = fmt.Errorf("%w: please fill in all fields", ErrValidation)
	ErrWeakPassword     = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrDuplicateEmail   = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidText      = fmt.Errorf("%w: fields must be valid UTF-8 text", ErrValidation)

	// Auth errors. The credentials error never names the failing field.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("please login to continue")

	// Cart errors.
	ErrUnknownItem = fmt.Errorf("%w: unknown item", ErrCart)
	ErrEmptyCart   = fmt.Errorf("%w: your cart is empty", ErrCart)

	// Catalog loading.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// Dispatch.
	ErrUnknownIntent = errors.New("unknown intent")
)
