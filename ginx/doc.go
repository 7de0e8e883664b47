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

// Package ginx wires errview into gin.
//
// Register the middlewares outermost first:
//
//	r := gin.New()
//	r.Use(ginx.Tracing("shop"), ginx.RequestID(), ginx.Locale(msgs), ginx.Errors(responder))
//
// Handlers report failures with c.Error(err) (or panic); Errors resolves the
// last one exactly once and writes the response.
package ginx
