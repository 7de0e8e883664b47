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
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	ConfigPath    string // directory searched for config_<env>.yaml, default "./configs"
	ConfigFile    string // explicit file; overrides ConfigPath and APP_ENV
	EnvPrefix     string // environment variable prefix, default "ERRVIEW"
	AllowNoConfig bool   // run on defaults and environment alone when no file exists
}

// Load reads the configuration into a Config with defaults applied.
// v may be nil; pass a viper instance to have bound CLI flags take effect.
func Load(v *viper.Viper, opt LoadOptions) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if opt.ConfigPath == "" {
		opt.ConfigPath = "./configs"
	}
	if opt.EnvPrefix == "" {
		opt.EnvPrefix = "ERRVIEW"
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	env := GetEnv()
	setDefaults(v, env)

	if opt.ConfigFile != "" {
		v.SetConfigFile(opt.ConfigFile)
	} else {
		v.SetConfigName(fmt.Sprintf("config_%s", env))
		v.SetConfigType("yaml")
		v.AddConfigPath(opt.ConfigPath)
	}

	v.SetEnvPrefix(opt.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !(errors.As(err, &notFound) && opt.AllowNoConfig) {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// loadDotEnv loads ENV_FILE, or .env, into the process environment.
// A missing file is not an error.
func loadDotEnv() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env failed: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s failed: %w", envFile, err)
	}
	return nil
}

// GetEnv returns APP_ENV, defaulting to "dev".
func GetEnv() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		return "dev"
	}
	return env
}
