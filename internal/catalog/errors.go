package catalog

import (
	"github.com/errgate-io/errgate/internal/fault"
)

// Fault type identifiers for the catalog. These are the keys operators
// use to configure status codes, e.g.:
//
//	catalog:
//	  NotFoundError/mp-jaxrs-ext/statuscode: 404
const (
	TypeNotFound   = "catalog.NotFoundError"
	TypeValidation = "catalog.ValidationError"
	TypeDuplicate  = "catalog.DuplicateError"
	TypeStorage    = "catalog.StorageError"
)

// NewNotFoundError creates a fault for a missing item.
func NewNotFoundError(id string) error {
	return fault.Newf(TypeNotFound, "item %q not found", id)
}

// NewValidationError creates a fault for a rejected item, wrapping the
// underlying validation failure.
func NewValidationError(cause error) error {
	return fault.Wrap(TypeValidation, "item validation failed", cause)
}

// NewDuplicateError creates a fault for an item that already exists.
func NewDuplicateError(id string) error {
	return fault.Newf(TypeDuplicate, "item %q already exists", id)
}

// NewStorageError creates a fault for a failing backing store. The
// message is intentionally left to the cause chain.
func NewStorageError(cause error) error {
	return fault.Wrap(TypeStorage, "", cause)
}
