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

// ErrorView is the minimal, serializable representation of a handled error
// that is safe to expose to a client.
//
// This is *not* the error type used internally; it is the shape we are
// comfortable putting on the wire. Keeping it here lets the net/http, gin and
// gRPC adapters share the same struct.
type ErrorView struct {
	// Code is the exception logging code, e.g. "e.xx.fw.5001". Clients can
	// quote it in support requests to find the matching log line.
	Code string `json:"code"`

	// Kind is the canonical classification, e.g. "resource_not_found".
	Kind string `json:"kind"`

	// Message is the localized, human-friendly message.
	Message string `json:"message"`

	// View is the render target the error resolves to. Clients that render
	// HTML themselves can use it to pick a template.
	View string `json:"view"`

	// Details carries client-visible structured data. It is only populated
	// for classified (non-unknown) errors.
	Details map[string]any `json:"details,omitempty"`

	// Locale is the BCP-47 tag of the language Message is written in. Empty
	// when the text did not come from a message catalog.
	Locale string `json:"locale,omitempty"`

	// Correlation is the request id the boundary saw, if any.
	Correlation string `json:"correlation,omitempty"`

	// TraceID is the OpenTelemetry trace id of the failed request, if any.
	TraceID string `json:"trace_id,omitempty"`
}
