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

// Package config loads errview service configuration.
//
// Values come from, in increasing priority: built-in defaults, the YAML file
// config_<APP_ENV>.yaml (APP_ENV defaults to "dev"), and environment
// variables with the configured prefix ("ERRVIEW_SERVER_ADDR" overrides
// server.addr). A .env file (or the file named by ENV_FILE) is loaded into
// the environment first.
//
// Usage:
//
//	cfg, err := config.Load(nil, config.LoadOptions{AllowNoConfig: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.Exceptions.Options()
//	...
//	r, err := resolver.New(opts...)
package config
