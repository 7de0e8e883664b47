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

package config

import (
	"time"

	"dirpx.dev/errview/internal/pathmatch"
	"github.com/spf13/viper"
)

// setDefaults registers every scalar key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("app.name", "errview")
	v.SetDefault("app.env", env)

	v.SetDefault("log.format", "json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.report_caller", false)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.dir", "./logs")

	v.SetDefault("tracing.exporter", "disabled")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.html_views", "")
	v.SetDefault("server.grpc_addr", "")

	v.SetDefault("trace_logging.enabled", true)
	v.SetDefault("trace_logging.warn_threshold", "3s")

	v.SetDefault("messages.default_language", "en")

	v.SetDefault("exceptions.disable_default_rules", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("postgres.dsn", "")
}

// ApplyDefaults fills zero values left after unmarshalling.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "errview"
	}
	if c.App.Env == "" {
		c.App.Env = GetEnv()
	}
	c.Log.ApplyDefaults()
	c.Tracing.ApplyDefaults(c.App.Name)
	c.Server.ApplyDefaults()
	c.TraceLogging.ApplyDefaults()
	if c.Messages.DefaultLanguage == "" {
		c.Messages.DefaultLanguage = "en"
	}
	if c.Exceptions.Domain == "" {
		c.Exceptions.Domain = c.App.Name
	}
	if c.Postgres.MaxOpenConns <= 0 {
		c.Postgres.MaxOpenConns = 10
	}
	if c.Postgres.MaxRetries <= 0 {
		c.Postgres.MaxRetries = 3
	}
	if c.Postgres.RetryInterval <= 0 {
		c.Postgres.RetryInterval = 2 * time.Second
	}
}

// ApplyDefaults fills logger defaults.
func (l *LogConfig) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "json"
	}
	if l.Level == "" {
		l.Level = "info"
	}
	if l.File.Dir == "" {
		l.File.Dir = "./logs"
	}
	if l.File.MaxAgeDays <= 0 {
		l.File.MaxAgeDays = 7
	}
	if l.File.RotationDays <= 0 {
		l.File.RotationDays = 1
	}
}

// ApplyDefaults fills tracing defaults.
func (t *TracingConfig) ApplyDefaults(service string) {
	if t.Exporter == "" {
		t.Exporter = "disabled"
	}
	if t.ServiceName == "" {
		t.ServiceName = service
	}
	if t.SampleRatio <= 0 || t.SampleRatio > 1 {
		t.SampleRatio = 1.0
	}
}

// ApplyDefaults fills server defaults.
func (s *ServerConfig) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 15 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 15 * time.Second
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

// ApplyDefaults fills trace logging defaults.
func (t *TraceLoggingConfig) ApplyDefaults() {
	if t.Excludes == nil {
		t.Excludes = append([]string(nil), pathmatch.DefaultExcludes...)
	}
	if t.WarnThreshold <= 0 {
		t.WarnThreshold = 3 * time.Second
	}
}
