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
	"time"

	"dirpx.dev/errview/exlog"
	"dirpx.dev/errview/internal/pathmatch"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DefaultWarnThreshold is the elapsed time above which the end line is
// logged at Warn.
const DefaultWarnThreshold = 3 * time.Second

// TraceConfig selects the requests TraceLogging reports on.
type TraceConfig struct {
	// Includes are Ant-style path patterns; empty means "/**".
	Includes []string
	// Excludes are removed from Includes. Nil means pathmatch.DefaultExcludes;
	// use an empty non-nil slice to exclude nothing.
	Excludes []string
	// WarnThreshold defaults to DefaultWarnThreshold.
	WarnThreshold time.Duration
}

// TraceLogging logs a start and an end line per selected request with the
// handler name and the elapsed time. Requests slower than WarnThreshold are
// logged at Warn, others at Debug.
func TraceLogging(cfg TraceConfig, logger *log.Logger) (gin.HandlerFunc, error) {
	excludes := cfg.Excludes
	if excludes == nil {
		excludes = pathmatch.DefaultExcludes
	}
	m, err := pathmatch.NewMatcher(cfg.Includes, excludes)
	if err != nil {
		return nil, err
	}
	threshold := cfg.WarnThreshold
	if threshold <= 0 {
		threshold = DefaultWarnThreshold
	}

	return func(c *gin.Context) {
		if !m.Match(c.Request.URL.Path) {
			c.Next()
			return
		}

		e := exlog.WithTrace(c.Request.Context(), logger).WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"handler": c.HandlerName(),
		})
		if rid := c.GetString(RequestIDKey); rid != "" {
			e = e.WithField(RequestIDKey, rid)
		}

		e.Debug("[START CONTROLLER]")
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		e = e.WithFields(log.Fields{
			"status":     c.Writer.Status(),
			"elapsed_ms": elapsed.Milliseconds(),
		})
		if elapsed > threshold {
			e.Warnf("[END CONTROLLER] slow request: %s > %s", elapsed, threshold)
			return
		}
		e.Debug("[END CONTROLLER]")
	}, nil
}
