/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errview

import (
	"fmt"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
)

// Error is the application error type understood by errview resolvers.
//
// It carries:
//   - Kind: classification of the failure (required);
//   - Code: optional logging code that replaces the table code for Kind;
//   - Message: human-oriented description of what went wrong;
//   - Details: client-visible key/value payload;
//   - Cause: wrapped underlying error for debugging / unwrapping.
//
// All mutation helpers (WithX) return a shallow copy, so Error values can be
// shared between goroutines and declared as package-level templates.
type Error struct {
	// Kind is the classification. It should be one of the declared kinds;
	// anything else makes the resolver fall back to its rules.
	Kind kind.Kind

	// Code, when set, is reported instead of the table code for Kind.
	// Use it for business errors that have their own message entry,
	// e.g. "e.shop.order.8101".
	Code excode.Code

	// Message is a human-readable explanation. It ends up in logs, and in
	// the response body when no localized message exists for the code.
	Message string

	// Details is an optional, shallow map of client-visible fields.
	// The map is treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

var (
	_ apis.KindedError   = (*Error)(nil)
	_ apis.CodedError    = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
)

// E is a convenience constructor for Error.
//
// Usage:
//
//	return errview.E(kind.Business, "stock is insufficient",
//	    errview.WithCodeOption("e.shop.order.8101"),
//	    errview.WithDetailOption("item", itemID),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(k kind.Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// NotFound returns a resource-not-found error.
func NotFound(msg string, opts ...Option) *Error {
	return E(kind.ResourceNotFound, msg, opts...)
}

// InvalidToken returns an invalid-transaction-token error.
func InvalidToken(msg string, opts ...Option) *Error {
	return E(kind.InvalidToken, msg, opts...)
}

// Business returns a business-rule violation error.
func Business(msg string, opts ...Option) *Error {
	return E(kind.Business, msg, opts...)
}

// DataAccess returns a data-access error wrapping cause.
func DataAccess(msg string, cause error, opts ...Option) *Error {
	return E(kind.DataAccess, msg, opts...).WithCause(cause)
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>
//
// or, when a cause is attached:
//
//	<kind>: <message>: <cause>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ErrorKind implements apis.KindedError. A nil *Error reports kind.Unknown.
func (e *Error) ErrorKind() kind.Kind {
	if e == nil {
		return kind.Unknown
	}
	return e.Kind
}

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string {
	if e == nil {
		return ""
	}
	return string(e.Code)
}

// ErrorMessage returns the message without kind or cause, for display.
func (e *Error) ErrorMessage() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// ErrorDetails implements apis.DetailedError.
func (e *Error) ErrorDetails() map[string]any {
	if e == nil {
		return nil
	}
	return e.Details
}

// WithCode returns a shallow copy of e with the given logging code set.
func (e *Error) WithCode(c excode.Code) *Error {
	cp := *e
	cp.Code = c
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of e with all provided kv merged into
// Details, kv taking precedence on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
