// Package errs holds the error types shared by the order service layers.
//
// Every type pairs a sentinel with a struct that carries the details:
//   - ObjectNotFoundError (ErrObjectNotFound): a lookup matched nothing
//   - ValueIsInvalidError (ErrValueIsInvalid): a malformed argument
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a number outside its bounds
//   - ValueIsRequiredError (ErrValueIsRequired): a missing argument
//   - InvalidTransitionError (ErrInvalidTransition): a denied order status change
//
// Callers classify with errors.Is against the sentinel and use errors.As when
// they need the details. Messages never contain newlines.
package errs
