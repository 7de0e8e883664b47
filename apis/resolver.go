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

import (
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
	"google.golang.org/grpc/codes"
)

// Resolver is an immutable, concurrency-safe view of the exception policy.
// It classifies an error into a kind and resolves the kind into a logging
// code and a response.
//
// None of the methods fail or panic: anything that cannot be classified
// resolves to kind.Unknown and the default code and response.
type Resolver interface {
	// Classify inspects the error chain and returns the matching kind, or
	// kind.Unknown when no rule matches. A nil error is Unknown.
	Classify(err error) kind.Kind

	// CodeFor returns the logging code for k, or the default code if k has
	// no entry.
	CodeFor(k kind.Kind) excode.Code

	// ResponseFor returns the response for k, or the default response if k
	// has no entry.
	ResponseFor(k kind.Kind) Response

	// Handle composes Classify, CodeFor and ResponseFor. It is called exactly
	// once per unhandled error that reaches the boundary.
	Handle(err error) Disposition

	// Explain returns a human-readable description of how err was resolved.
	// It is meant for diagnostics and tests, not for machine parsing.
	Explain(err error) string
}

// Response is the transport disposition for one kind.
type Response struct {
	Status int        // HTTP status code (net/http compatible).
	GRPC   codes.Code // gRPC status code used by gRPC boundaries.
	View   string     // Render target identifier, e.g. "systemError".
}

// Disposition is the full outcome of resolving one error.
// It is the value boundary adapters log and render.
type Disposition struct {
	Kind kind.Kind
	Code excode.Code
	Response
}
