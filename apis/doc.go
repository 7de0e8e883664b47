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

// Package apis defines the public Go-level contracts for errview.
//
// The goal of this package is to provide *small, composable* interfaces that
// boundary adapters (net/http, gin, gRPC), loggers and application code can
// depend on without importing the concrete resolver or error implementation.
//
// In other words: this package is the "surface" that the request-handling
// layer targets. Application errors implement KindedError / CodedError, the
// resolver implements Resolver, and adapters only ever see Disposition and
// ErrorView.
//
// This package must remain lightweight, so it only contains interfaces and
// very small value types.
package apis
