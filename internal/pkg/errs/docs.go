// Package errs provides the typed errors shared by the fulfillment core.
//
// Each type follows the same shape: a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired), a struct carrying the details, a
// constructor with and without a cause, and an Unwrap that returns the sentinel.
//
// ObjectNotFoundError is the NotFound class of the fulfillment error taxonomy: it is
// a hard error, surfaced verbatim and never retried automatically. Business
// mismatches (wrong validation code, courier not holding an assignment) are not
// errors at all; they are reported through result structs by the command handlers.
package errs
