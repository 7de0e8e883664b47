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

package apis

import "dirpx.dev/errview/kind"

// KindedError represents an error that knows its own classification.
//
// A resolver checks the error chain for KindedError before running any of its
// rules, so application code that returns such errors never depends on rule
// registration order. Implementations should return one of the declared
// kinds; kind.Unknown (or an undeclared value) is treated as "no opinion" and
// classification continues with the next tier.
type KindedError interface {
	error

	// ErrorKind returns the classification of the error.
	ErrorKind() kind.Kind
}

// CodedError represents an error that carries its own logging code.
//
// When an error in the chain implements CodedError and returns a valid
// excode value, the resolver reports that code instead of the table code for
// the error's kind. The HTTP status and view still come from the table.
//
// Returning an empty string means "use the table".
type CodedError interface {
	error

	// ErrorCode returns the exception logging code, e.g. "e.xx.fw.8001".
	ErrorCode() string
}

// DetailedError represents an error that exposes structured details that are
// safe to show to a client (field names, limits, resource ids).
//
// Implementations SHOULD return a map that will not be modified afterwards.
// Returning nil is allowed and means "no details".
type DetailedError interface {
	error

	// ErrorDetails returns the client-visible details. May return nil.
	ErrorDetails() map[string]any
}
