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

package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/message"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader is the header carrying the correlation id.
const RequestIDHeader = "X-Request-ID"

// Writer turns unhandled errors into JSON error responses.
type Writer struct {
	Responder *adapter.Responder
}

// Write resolves err and writes the status and apis.ErrorView body.
// A nil err writes nothing.
//
// No redaction happens here beyond what the Responder applies: details are
// exposed for classified errors only.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	ctx := r.Context()
	d, v := w.Responder.Respond(ctx, err)
	v.Correlation = r.Header.Get(RequestIDHeader)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		v.TraceID = sc.TraceID().String()
	}
	WriteView(rw, d.Status, v)
}

// WriteView writes v as the JSON body with the given status.
func WriteView(rw http.ResponseWriter, status int, v apis.ErrorView) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.Header().Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

// HandlerFunc is an http.HandlerFunc that can fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handler adapts fn to http.Handler, writing any returned error through w.
func Handler(w Writer, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := fn(rw, r); err != nil {
			w.Write(rw, r, err)
		}
	})
}

// Recover converts panics in next into Unknown-kind errors written through w.
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
func Recover(w Writer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			w.Write(rw, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(rw, r)
	})
}

// Locale stores a localizer built from the Accept-Language header in the
// request context, for the Responder to pick up.
func Locale(src *message.Source, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		loc := src.Localizer(r.Header.Get("Accept-Language"))
		next.ServeHTTP(rw, r.WithContext(message.WithLocalizer(r.Context(), loc)))
	})
}
