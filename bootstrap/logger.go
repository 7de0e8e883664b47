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

package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dirpx.dev/errview/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger from cfg. Unknown formats fall back to
// JSON and unknown levels to Info (with a warning).
func NewLogger(cfg config.LogConfig, serviceName string) (*log.Logger, error) {
	l := log.New()
	l.SetOutput(os.Stdout)

	switch cfg.Format {
	case "text":
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&log.JSONFormatter{})
	}

	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(log.InfoLevel)
		l.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	l.SetReportCaller(cfg.ReportCaller)

	if cfg.File.Enabled {
		w, err := rotatingWriter(cfg.File, serviceName)
		if err != nil {
			return nil, err
		}
		l.SetOutput(io.MultiWriter(os.Stdout, w))
	}
	return l, nil
}

// rotatingWriter returns a daily rotated file writer with a stable
// "<name>.log" symlink to the current file.
func rotatingWriter(fc config.LogFileConfig, serviceName string) (io.Writer, error) {
	dir := fc.Dir
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	name := fc.Filename
	if name == "" {
		name = serviceName
	}
	if name == "" {
		name = "app"
	}
	maxAge := fc.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}
	rotation := fc.RotationDays
	if rotation <= 0 {
		rotation = 1
	}

	w, err := rotatelogs.New(
		filepath.Join(dir, name+".%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, name+".log")),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(rotation)*24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("setup log file: %w", err)
	}
	return w, nil
}
