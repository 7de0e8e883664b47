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

// Package bootstrap builds the ambient services an errview process needs:
// the logrus logger, the OpenTelemetry tracer provider, and the optional
// Redis and PostgreSQL clients used by the demo routes.
//
// Example usage:
//
//	cfg, err := config.Load(nil, config.LoadOptions{AllowNoConfig: true})
//	...
//	logger, err := bootstrap.NewLogger(cfg.Log, cfg.App.Name)
//	...
//	shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
//	if err != nil {
//	    logger.Warn(err)
//	}
//	defer shutdown(ctx)
package bootstrap
