// Package checkerr defines the error taxonomy shared by every stage of the
// equality-checking pipeline: sanitiser, parser, simplifier and sampler all
// fail into the same small set of kinds so the HTTP layer can turn any of
// them into the right JSON shape without knowing which package raised it.
package checkerr

import (
	"errors"
	"fmt"
)

// Kind identifies a category of failure in the checking pipeline.
type Kind string

const (
	// KindUnsafeInput means the sanitiser rejected characters outside the
	// whitelist in strict mode.
	KindUnsafeInput Kind = "UnsafeInput"
	// KindParseError means the token stream does not form a valid tree.
	KindParseError Kind = "ParseError"
	// KindEquationTypeMismatch means one side of a comparison is a relation
	// and the other is a plain expression.
	KindEquationTypeMismatch Kind = "EquationTypeMismatch"
	// KindNumericRangeError means the sampled values were too close, too
	// spread out, or not representable in a complex128.
	KindNumericRangeError Kind = "NumericRangeError"
	// KindNumericDomainError means both the real and complex sampling
	// passes produced NaN.
	KindNumericDomainError Kind = "NumericDomainError"
	// KindFactorialTooLarge means factorial(n) was requested for n > 50.
	KindFactorialTooLarge Kind = "FactorialTooLarge"
	// KindTimeout means the per-request deadline elapsed.
	KindTimeout Kind = "Timeout"
	// KindIllFormedRequest means required HTTP fields were missing or the
	// body did not match the request schema.
	KindIllFormedRequest Kind = "IllFormedRequest"
	// KindEmptyInput means the test or target string was empty.
	KindEmptyInput Kind = "EmptyInput"
	// KindNotImplemented is reserved for a simplifier rewrite path that
	// needs to fail loudly instead of silently falling through. Today an
	// uncovered rewrite is left as an opaque subtree and the symbolic tier
	// just fails to prove equality on it — nothing constructs this kind yet.
	KindNotImplemented Kind = "NotImplemented"
)

// Error is a structured error carrying a Kind, a human message, an optional
// wrapped cause, and whether it is fatal to a trusted (target) expression.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	// Fatal marks an error that occurred while processing the trusted
	// target string; the engine surfaces these distinctly (HTTP 400-class)
	// from test-side failures, which are reported as non-fatal syntax
	// errors.
	Fatal bool
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithFatal marks the error as fatal (trusted-side failure) and returns it
// for chaining.
func (e *Error) WithFatal() *Error {
	e.Fatal = true
	return e
}

// Is reports whether err is a checkerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*Error)
	if !ok {
		return false
	}
	return ce.Kind == kind
}

// As extracts a checkerr.Error from err if one is anywhere in its chain.
func As(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
