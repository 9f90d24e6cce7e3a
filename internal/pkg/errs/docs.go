// Package errs provides standardized error types for the formation admin
// service. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ObjectNotFoundError: a referenced object does not exist
//   - ValueIsInvalidError: a value is outside its allowed domain
//   - ValueIsRequiredError: a required value is missing
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// The HTTP adapter relies on the sentinels to map domain failures onto
// response status codes, so new error conditions should reuse these
// categories where they fit.
package errs
