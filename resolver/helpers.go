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

package resolver

import (
	"fmt"
	"strings"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
)

// freezeCodes makes an immutable copy of the code table.
// Used when finalizing the resolver so later mutations to the builder
// cannot affect the snapshot.
func freezeCodes(src map[kind.Kind]excode.Code) map[kind.Kind]excode.Code {
	dst := make(map[kind.Kind]excode.Code, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeResponses makes an immutable copy of the response table.
func freezeResponses(src map[kind.Kind]apis.Response) map[kind.Kind]apis.Response {
	dst := make(map[kind.Kind]apis.Response, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeRules copies the rule slice so appends on the builder never alias
// the resolver's backing array.
func freezeRules(src []rule) []rule {
	if len(src) == 0 {
		return nil
	}
	dst := make([]rule, len(src))
	copy(dst, src)
	return dst
}

// walk visits err and every error reachable through Unwrap() error and
// Unwrap() []error, depth first, stopping at the first visit that returns
// true.
func walk(err error, visit func(error) bool) bool {
	for err != nil {
		if visit(err) {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if walk(e, visit) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return false
		}
	}
	return false
}

// typeNameContains returns a visitor matching errors whose dynamic type name
// (as printed by %T) contains substr.
func typeNameContains(substr string) func(error) bool {
	return func(err error) bool {
		return strings.Contains(fmt.Sprintf("%T", err), substr)
	}
}

// grpcName renders a gRPC code the way it appears in status protos,
// e.g. codes.FailedPrecondition -> "FAILED_PRECONDITION".
func grpcName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' && i > 0 && name[i-1] >= 'a' && name[i-1] <= 'z' {
			b.WriteByte('_')
		}
		b.WriteByte(c)
	}
	return strings.ToUpper(b.String())
}
