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

package adapter

import (
	"context"
	"errors"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/exlog"
	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/message"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Responder is the single place where a boundary turns an unhandled error
// into a disposition and a public view.
//
// Resolver is required. Logger and Messages are optional: without Logger
// nothing is logged, without Messages the view carries the error's own
// message (classified errors) or a fixed generic text.
type Responder struct {
	Resolver apis.Resolver
	Logger   *exlog.Logger
	Messages *message.Source
}

// genericText is used when no message catalog is configured.
const genericText = "An unexpected error occurred."

// Respond resolves err exactly once, logs it, records it on the active span
// and builds the client-facing view.
//
// The localizer is taken from ctx (see message.WithLocalizer); when absent
// the catalog's default language is used.
func (r *Responder) Respond(ctx context.Context, err error) (apis.Disposition, apis.ErrorView) {
	if ctx == nil {
		ctx = context.Background()
	}
	d := r.Resolver.Handle(err)

	if r.Logger != nil {
		r.Logger.Log(ctx, err, d)
	}
	recordSpan(ctx, err, d)

	return d, r.View(ctx, err, d)
}

// View builds the public view for an already resolved error. It performs no
// logging and does not touch the span.
func (r *Responder) View(ctx context.Context, err error, d apis.Disposition) apis.ErrorView {
	msg, locale := r.message(ctx, err, d)
	v := apis.ErrorView{
		Code:    d.Code.String(),
		Kind:    d.Kind.String(),
		View:    d.View,
		Message: msg,
		Locale:  locale,
	}
	if d.Kind != kind.Unknown {
		var de apis.DetailedError
		if errors.As(err, &de) {
			if ds := de.ErrorDetails(); len(ds) > 0 {
				v.Details = ds
			}
		}
	}
	return v
}

// message picks the text shown to the client and the catalog language it
// is written in:
//  1. the catalog entry for the code;
//  2. the message of an application error carrying a known kind;
//  3. the generic text.
//
// Error() is never shown: for rule-classified errors it is driver or
// library text.
func (r *Responder) message(ctx context.Context, err error, d apis.Disposition) (string, string) {
	var loc *i18n.Localizer
	if r.Messages != nil {
		loc, _ = message.LocalizerFromContext(ctx)
		if msg, tag, ok := r.Messages.LookupTag(loc, d.Code.String(), details(err)); ok {
			return msg, tag.String()
		}
	}
	if d.Kind != kind.Unknown {
		if msg := ownMessage(err); msg != "" {
			return msg, ""
		}
	}
	if r.Messages != nil {
		msg, tag := r.Messages.GenericTag(loc)
		return msg, tag.String()
	}
	return genericText, ""
}

// messenger is implemented by application errors that carry a display
// message separate from their Error() text, such as *errview.Error.
type messenger interface {
	ErrorMessage() string
	ErrorKind() kind.Kind
}

// ownMessage returns the display message of the first application error in
// the chain, provided it reports a known kind.
func ownMessage(err error) string {
	var m messenger
	if !errors.As(err, &m) {
		return ""
	}
	if !m.ErrorKind().IsKnown() {
		return ""
	}
	return m.ErrorMessage()
}

// details returns the error's details as message template data.
func details(err error) map[string]any {
	var de apis.DetailedError
	if errors.As(err, &de) {
		return de.ErrorDetails()
	}
	return nil
}

// recordSpan annotates the span in ctx, if any, with the error and its
// disposition.
func recordSpan(ctx context.Context, err error, d apis.Disposition) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err, trace.WithAttributes(
		attribute.String("exception.code", d.Code.String()),
		attribute.String("exception.kind", d.Kind.String()),
	))
	span.SetAttributes(attribute.Int("http.response.status_code", d.Status))
	span.SetStatus(otelcodes.Error, d.Code.String())
}
