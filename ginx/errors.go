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

package ginx

import (
	"fmt"
	"net/http"

	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/apis"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ErrorsOption configures Errors.
type ErrorsOption func(*errorsConfig)

type errorsConfig struct {
	htmlExt string
}

// WithHTMLViews makes Errors render the HTML template named View+ext
// (e.g. "businessError.html") for clients preferring text/html. The engine
// must have templates loaded.
func WithHTMLViews(ext string) ErrorsOption {
	return func(c *errorsConfig) { c.htmlExt = ext }
}

// Errors resolves the last error attached with c.Error, or a recovered
// panic, and writes it as the response.
//
// When the handler already wrote a response, the error is still resolved
// and logged but nothing more is written.
func Errors(resp *adapter.Responder, opts ...ErrorsOption) gin.HandlerFunc {
	var cfg errorsConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			respond(c, resp, cfg, fmt.Errorf("panic: %v", rec))
		}()

		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		respond(c, resp, cfg, last.Err)
	}
}

func respond(c *gin.Context, resp *adapter.Responder, cfg errorsConfig, err error) {
	d, v := resp.Respond(c.Request.Context(), err)
	if c.Writer.Written() {
		return
	}
	v.Correlation = c.GetString(RequestIDKey)
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		v.TraceID = sc.TraceID().String()
	}
	write(c, cfg, d, v)
}

func write(c *gin.Context, cfg errorsConfig, d apis.Disposition, v apis.ErrorView) {
	if cfg.htmlExt != "" && c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.HTML(d.Status, v.View+cfg.htmlExt, v)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(d.Status, v)
}
