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
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/errview/kind"
	"google.golang.org/grpc/codes"
)

// Option configures the resolver at build time.
// All options are applied to an internal builder and then frozen into an
// immutable Resolver. Values are validated by New, not by the options.
type Option func(*builder)

// WithCode sets the logging code for k. The code is parsed with excode.Parse
// when the resolver is built.
func WithCode(k kind.Kind, code string) Option {
	return func(b *builder) { b.codes[k] = code }
}

// WithStatus sets the HTTP status and render target for k.
func WithStatus(k kind.Kind, status int, view string) Option {
	return func(b *builder) { b.statuses[k] = statusEntry{status: status, view: view} }
}

// WithGRPCCode sets the gRPC status code for k.
func WithGRPCCode(k kind.Kind, c codes.Code) Option {
	return func(b *builder) { b.grpc[k] = c }
}

// WithoutKind removes k from both tables, so CodeFor and ResponseFor fall
// back to the default for it. Classification is not affected: errors can
// still be classified as k. Removing kind.Unknown is rejected by New.
func WithoutKind(k kind.Kind) Option {
	return func(b *builder) { b.removed[k] = true }
}

// WithSentinel adds a rule classifying any error for which
// errors.Is(err, target) holds as k.
func WithSentinel(k kind.Kind, target error) Option {
	return func(b *builder) {
		if target == nil {
			b.fail(fmt.Errorf("resolver: nil sentinel for kind %q", k))
			return
		}
		b.rules = append(b.rules, rule{
			kind:  k,
			name:  fmt.Sprintf("sentinel(%q)", target.Error()),
			match: func(err error) bool { return errors.Is(err, target) },
		})
	}
}

// WithTypeName adds a rule classifying an error as k when the dynamic type
// name of any error in its chain contains substr, e.g. "NotFound" matches
// *orders.NotFoundError. Matching is case-sensitive.
func WithTypeName(k kind.Kind, substr string) Option {
	return func(b *builder) {
		if strings.TrimSpace(substr) == "" {
			b.fail(fmt.Errorf("resolver: empty type name for kind %q", k))
			return
		}
		b.rules = append(b.rules, rule{
			kind:  k,
			name:  fmt.Sprintf("type(%q)", substr),
			match: func(err error) bool { return walk(err, typeNameContains(substr)) },
		})
	}
}

// WithMatcher adds a rule classifying an error as k when match returns true.
// match receives the outermost error and is responsible for unwrapping.
func WithMatcher(k kind.Kind, name string, match func(error) bool) Option {
	return func(b *builder) {
		if match == nil {
			b.fail(fmt.Errorf("resolver: nil matcher %q for kind %q", name, k))
			return
		}
		if name == "" {
			name = "matcher"
		}
		b.rules = append(b.rules, rule{kind: k, name: name, match: match})
	}
}

// WithoutDefaultRules drops the built-in rules (data-access detection), so
// only kinded errors and user rules classify.
func WithoutDefaultRules() Option {
	return func(b *builder) { b.rules = b.rules[b.defaultRules:]; b.defaultRules = 0 }
}
