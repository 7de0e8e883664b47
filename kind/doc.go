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

// Package kind defines the closed classification of runtime failures that an
// exception resolver sorts errors into.
//
// There are exactly five kinds:
//
//   - resource_not_found;
//   - invalid_token;
//   - business;
//   - data_access;
//   - unknown (the catch-all).
//
// Kinds are the keys of both the logging-code table and the response table
// of a resolver, which is why the set is closed: a table can be checked for
// completeness at construction time.
//
// Parse accepts snake_case, kebab-case and CamelCase spellings so the same
// names can be used in YAML configuration and in Go code.
package kind
