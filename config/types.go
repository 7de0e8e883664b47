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

import "time"

// Config is the full service configuration.
type Config struct {
	App          AppConfig          `yaml:"app" mapstructure:"app"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Tracing      TracingConfig      `yaml:"tracing" mapstructure:"tracing"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	TraceLogging TraceLoggingConfig `yaml:"trace_logging" mapstructure:"trace_logging"`
	Messages     MessagesConfig     `yaml:"messages" mapstructure:"messages"`
	Exceptions   ExceptionsConfig   `yaml:"exceptions" mapstructure:"exceptions"`
	Redis        RedisConfig        `yaml:"redis" mapstructure:"redis"`
	Postgres     PostgresConfig     `yaml:"postgres" mapstructure:"postgres"`
}

// AppConfig holds service identity.
type AppConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Env  string `yaml:"env" mapstructure:"env"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Format       string        `yaml:"format" mapstructure:"format"`
	Level        string        `yaml:"level" mapstructure:"level"`
	ReportCaller bool          `yaml:"report_caller" mapstructure:"report_caller"`
	File         LogFileConfig `yaml:"file" mapstructure:"file"`
}

// LogFileConfig enables daily rotated file output next to stdout.
type LogFileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"` // disabled|stdout|otlp
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	HTMLViews       string        `yaml:"html_views" mapstructure:"html_views"` // template glob; empty = JSON only
	GRPCAddr        string        `yaml:"grpc_addr" mapstructure:"grpc_addr"`   // empty disables the gRPC listener
}

// TraceLoggingConfig selects requests for start/end trace lines.
type TraceLoggingConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	Includes      []string      `yaml:"includes" mapstructure:"includes"`
	Excludes      []string      `yaml:"excludes" mapstructure:"excludes"`
	WarnThreshold time.Duration `yaml:"warn_threshold" mapstructure:"warn_threshold"`
}

// MessagesConfig configures the message catalog.
type MessagesConfig struct {
	DefaultLanguage string   `yaml:"default_language" mapstructure:"default_language"`
	Files           []string `yaml:"files" mapstructure:"files"`
}

// ExceptionsConfig overrides the exception policy.
type ExceptionsConfig struct {
	// Domain is the gRPC ErrorInfo domain.
	Domain string `yaml:"domain" mapstructure:"domain"`
	// DisableDefaultRules turns off built-in data-access detection.
	DisableDefaultRules bool `yaml:"disable_default_rules" mapstructure:"disable_default_rules"`
	// Kinds is keyed by snake_case kind name ("resource_not_found"); viper
	// lowercases keys, so CamelCase names cannot be used here.
	Kinds map[string]KindPolicy `yaml:"kinds" mapstructure:"kinds"`
}

// KindPolicy overrides one kind. Zero fields keep the built-in value.
type KindPolicy struct {
	Code      string   `yaml:"code" mapstructure:"code"`
	Status    int      `yaml:"status" mapstructure:"status"`
	View      string   `yaml:"view" mapstructure:"view"`
	GRPC      string   `yaml:"grpc" mapstructure:"grpc"` // e.g. "NOT_FOUND"
	TypeNames []string `yaml:"type_names" mapstructure:"type_names"`
	Disabled  bool     `yaml:"disabled" mapstructure:"disabled"`
}

// RedisConfig is the optional store used by the demo routes.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// PostgresConfig is the optional store used by the demo routes.
type PostgresConfig struct {
	DSN           string        `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns  int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryInterval time.Duration `yaml:"retry_interval" mapstructure:"retry_interval"`
}
