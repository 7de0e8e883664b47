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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

const sampleYAML = `
app:
  name: shop
log:
  format: text
  level: debug
server:
  addr: ":9000"
  read_timeout: 5s
trace_logging:
  includes: ["/api/**"]
  warn_threshold: 500ms
messages:
  files: ["i18n/messages.fr.toml"]
exceptions:
  kinds:
    invalid_token:
      status: 400
      grpc: INVALID_ARGUMENT
    business:
      code: e.shop.fw.8001
      type_names: ["RuleViolation"]
    data_access:
      disabled: true
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	return dir
}

func TestLoad_File(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := writeConfig(t, "config_test.yaml", sampleYAML)

	cfg, err := Load(nil, LoadOptions{ConfigPath: dir})
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"/api/**"}, cfg.TraceLogging.Includes)
	assert.Equal(t, []string{"/resources/**", "/**/*.html"}, cfg.TraceLogging.Excludes)
	assert.Equal(t, 500*time.Millisecond, cfg.TraceLogging.WarnThreshold)
	assert.Equal(t, []string{"i18n/messages.fr.toml"}, cfg.Messages.Files)
	assert.Equal(t, "shop", cfg.Exceptions.Domain)
	assert.Equal(t, "shop", cfg.Tracing.ServiceName)
	require.Len(t, cfg.Exceptions.Kinds, 3)
	assert.Equal(t, 400, cfg.Exceptions.Kinds["invalid_token"].Status)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("ERRVIEW_SERVER_ADDR", ":7000")
	t.Setenv("ERRVIEW_LOG_LEVEL", "warn")
	dir := writeConfig(t, "config_test.yaml", sampleYAML)

	cfg, err := Load(nil, LoadOptions{ConfigPath: dir})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_NoConfig(t *testing.T) {
	t.Setenv("APP_ENV", "missing")
	dir := t.TempDir()

	_, err := Load(nil, LoadOptions{ConfigPath: dir})
	require.Error(t, err)

	cfg, err := Load(nil, LoadOptions{ConfigPath: dir, AllowNoConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "errview", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "disabled", cfg.Tracing.Exporter)
	assert.Equal(t, 3*time.Second, cfg.TraceLogging.WarnThreshold)
	assert.True(t, cfg.TraceLogging.Enabled)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := writeConfig(t, "custom.yaml", "server:\n  addr: \":6000\"\n")
	cfg, err := Load(nil, LoadOptions{ConfigFile: filepath.Join(dir, "custom.yaml")})
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Server.Addr)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ERRVIEW_APP_NAME=from-dotenv\n"), 0o644))
	t.Setenv("ENV_FILE", envFile)
	// godotenv never overrides existing variables; register for cleanup
	t.Setenv("ERRVIEW_APP_NAME", "")
	require.NoError(t, os.Unsetenv("ERRVIEW_APP_NAME"))

	cfg, err := Load(nil, LoadOptions{ConfigPath: dir, AllowNoConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.App.Name)
}

func TestExceptionsOptions(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := writeConfig(t, "config_test.yaml", sampleYAML)
	cfg, err := Load(nil, LoadOptions{ConfigPath: dir})
	require.NoError(t, err)

	opts, err := cfg.Exceptions.Options()
	require.NoError(t, err)
	r, err := resolver.New(opts...)
	require.NoError(t, err)

	resp := r.ResponseFor(kind.InvalidToken)
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "transactionTokenError", resp.View)
	assert.Equal(t, codes.InvalidArgument, resp.GRPC)

	assert.Equal(t, "e.shop.fw.8001", r.CodeFor(kind.Business).String())
	assert.Equal(t, "e.xx.fw.9001", r.CodeFor(kind.DataAccess).String())
	assert.Equal(t, kind.Business, r.Classify(&RuleViolation{}))
}

type RuleViolation struct{}

func (*RuleViolation) Error() string { return "rule violated" }

func TestExceptionsOptions_Invalid(t *testing.T) {
	_, err := ExceptionsConfig{Kinds: map[string]KindPolicy{"nope": {Code: "e.a.b"}}}.Options()
	assert.True(t, errors.Is(err, kind.ErrKindInvalid))

	_, err = ExceptionsConfig{Kinds: map[string]KindPolicy{"business": {GRPC: "SOMETIMES"}}}.Options()
	assert.Error(t, err)
}

func TestParseGRPCCode(t *testing.T) {
	tests := map[string]codes.Code{
		"NOT_FOUND":           codes.NotFound,
		"failed_precondition": codes.FailedPrecondition,
		" 10 ":                codes.Aborted,
	}
	for in, want := range tests {
		got, err := ParseGRPCCode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGRPCCode("99")
	assert.Error(t, err)
}
