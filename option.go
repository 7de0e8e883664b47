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

import "dirpx.dev/errview/excode"

// Option adjusts an Error while E builds it. Options run in order, so a
// later option overrides an earlier one touching the same field.
type Option func(*Error) *Error

// WithCodeOption gives the error its own logging code, reported in logs and
// used as the message catalog key instead of the kind's table code. The
// string is parsed with excode.Parse; an invalid code is dropped so that
// building an error can never fail.
func WithCodeOption(c string) Option {
	return func(e *Error) *Error {
		parsed, err := excode.Parse(c)
		if err != nil {
			return e
		}
		return e.WithCode(parsed)
	}
}

// WithDetailOption attaches one client-visible detail. Details also feed
// {{.Key}} placeholders in catalog messages.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetailsOption is WithDetailOption for several keys at once.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithCauseOption wraps the underlying error, typically the driver or
// library error that triggered the failure. It is logged but never shown to
// the client.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
