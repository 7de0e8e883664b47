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

// Package resolver builds immutable exception policies.
//
// A policy answers three questions for every error that reaches a boundary
// (HTTP handler, gRPC interceptor, job runner):
//
//   - which kind is it? (Classify)
//   - which logging code identifies it? (CodeFor)
//   - which HTTP status, gRPC code and view describe it? (ResponseFor)
//
// Classification looks first for an apis.KindedError anywhere in the chain,
// then runs rules in registration order, and otherwise yields kind.Unknown.
// The built-in rule recognizes driver and ORM errors (see package dataaccess)
// as kind.DataAccess.
//
// Every lookup falls back to the kind.Unknown entry
// (e.xx.fw.9001 / 500 / "systemError"), so a resolver never fails at
// request time. All configuration problems are reported once, by New.
//
// Example:
//
//	r, err := resolver.New(
//	    resolver.WithSentinel(kind.Business, orders.ErrStockExhausted),
//	    resolver.WithTypeName(kind.ResourceNotFound, "NotFound"),
//	    resolver.WithStatus(kind.InvalidToken, http.StatusBadRequest, "transactionTokenError"),
//	)
//	...
//	d := r.Handle(err)
//	log.Printf("[%s] %v", d.Code, err)
//	w.WriteHeader(d.Status)
package resolver
