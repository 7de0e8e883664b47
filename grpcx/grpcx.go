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

package grpcx

import (
	"context"
	"strconv"

	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/message"
	"golang.org/x/text/language"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
)

// DefaultDomain is the ErrorInfo domain used when none is configured.
const DefaultDomain = "errview"

// LanguageKey is the incoming metadata key read for the client locale.
const LanguageKey = "accept-language"

// Option configures the interceptor.
type Option func(*config)

type config struct {
	domain string
}

// WithDomain sets ErrorInfo.Domain, typically the service name.
func WithDomain(d string) Option {
	return func(c *config) { c.domain = d }
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// handler errors into gRPC statuses.
//
// The status code and message come from the Responder. Two details are
// attached:
//
//   - errdetails.ErrorInfo{Reason: <logging code>, Domain, Metadata: kind, view, http_status};
//   - errdetails.LocalizedMessage in the client's locale.
//
// A handler error that is itself a gRPC status error (typically one relayed
// from a downstream call) is returned as-is, unless the resolver classifies
// it. Application errors wrapping a status are always resolved.
func UnaryServerInterceptor(resp *adapter.Responder, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := config{domain: DefaultDomain}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		out, err := handler(ctx, req)
		if err == nil {
			return out, nil
		}
		if passThrough(resp, err) {
			return nil, err
		}

		lang := incomingLanguage(ctx)
		if resp.Messages != nil {
			ctx = message.WithLocalizer(ctx, resp.Messages.Localizer(lang))
		}
		d, v := resp.Respond(ctx, err)

		base := gstatus.New(d.GRPC, v.Message)
		ei := &errdetails.ErrorInfo{
			Reason: v.Code,
			Domain: cfg.domain,
			Metadata: map[string]string{
				"kind":        v.Kind,
				"view":        v.View,
				"http_status": strconv.Itoa(d.Status),
			},
		}
		lm := &errdetails.LocalizedMessage{Locale: localeOf(resp, v), Message: v.Message}

		// Try to attach details. If it fails, return base.
		if with, derr := base.WithDetails(ei, lm); derr == nil {
			return nil, with.Err()
		}
		return nil, base.Err()
	}
}

// ExtractInfo pulls errdetails.ErrorInfo out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := fromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}

// ExtractMessage pulls errdetails.LocalizedMessage out of a gRPC error.
func ExtractMessage(err error) (*errdetails.LocalizedMessage, bool) {
	st, ok := fromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if lm, ok := d.(*errdetails.LocalizedMessage); ok {
			return lm, true
		}
	}
	return nil, false
}

func fromError(err error) (*gstatus.Status, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok || st.Code() == gcodes.OK {
		return nil, false
	}
	return st, true
}

// statusError is implemented by the errors grpc/status produces.
type statusError interface {
	GRPCStatus() *gstatus.Status
}

// passThrough reports whether err goes back to the client unchanged. Only
// the error value itself is inspected, not its chain.
func passThrough(resp *adapter.Responder, err error) bool {
	if _, ok := err.(statusError); !ok {
		return false
	}
	return resp.Resolver.Classify(err) == kind.Unknown
}

// incomingLanguage returns the first accept-language metadata value.
func incomingLanguage(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vs := md.Get(LanguageKey); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// localeOf returns the language the view message is written in. Messages
// that did not come from the catalog are reported in the catalog's default
// language, or English without a catalog.
func localeOf(resp *adapter.Responder, v apis.ErrorView) string {
	if v.Locale != "" {
		return v.Locale
	}
	if resp.Messages != nil {
		return resp.Messages.DefaultLanguage().String()
	}
	return language.English.String()
}
