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

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
	"google.golang.org/grpc/codes"
)

// ErrInvalidPolicy wraps every configuration error returned by New.
var ErrInvalidPolicy = errors.New("resolver: invalid policy")

// New constructs an immutable apis.Resolver snapshot.
//
// The resulting resolver is safe for concurrent use and holds no references
// to caller-provided structures.
//
// Build process overview:
//
//  1. Seed the builder with the built-in tables and rules.
//  2. Apply user-provided options in order.
//  3. Drop kinds removed with WithoutKind from both tables.
//  4. Validate every kind, code, status, view and rule.
//  5. Check that the code and response tables cover the same kinds and that
//     both contain kind.Unknown.
//  6. Freeze tables and rules into fresh allocations.
//
// All problems found are reported together, joined and wrapped with
// ErrInvalidPolicy.
func New(opts ...Option) (apis.Resolver, error) {
	// (1) Seeded builder.
	b := newBuilder()

	// (2) User options.
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	// (3) Removal. Unknown carries the defaults and can never be removed.
	for k := range b.removed {
		if k == kind.Unknown {
			b.fail(fmt.Errorf("kind %q cannot be removed", k))
			continue
		}
		delete(b.codes, k)
		delete(b.statuses, k)
		delete(b.grpc, k)
	}

	// (4) Validation of table entries.
	codeTable := make(map[kind.Kind]excode.Code, len(b.codes))
	for k, raw := range b.codes {
		if err := kind.Validate(k); err != nil {
			b.fail(fmt.Errorf("code table: kind %q: %w", k, err))
			continue
		}
		c, err := excode.Parse(raw)
		if err != nil {
			b.fail(fmt.Errorf("code table: kind %q: code %q: %w", k, raw, err))
			continue
		}
		codeTable[k] = c
	}

	respTable := make(map[kind.Kind]apis.Response, len(b.statuses))
	for k, st := range b.statuses {
		if err := kind.Validate(k); err != nil {
			b.fail(fmt.Errorf("status table: kind %q: %w", k, err))
			continue
		}
		if st.status < 100 || st.status > 599 {
			b.fail(fmt.Errorf("status table: kind %q: status %d out of range", k, st.status))
			continue
		}
		view := strings.TrimSpace(st.view)
		if view == "" {
			b.fail(fmt.Errorf("status table: kind %q: empty view", k))
			continue
		}
		g, ok := b.grpc[k]
		if !ok {
			g = codes.Internal
		}
		if g > codes.Unauthenticated {
			b.fail(fmt.Errorf("status table: kind %q: grpc code %d out of range", k, uint32(g)))
			continue
		}
		respTable[k] = apis.Response{Status: st.status, GRPC: g, View: view}
	}

	for i, r := range b.rules {
		if err := kind.Validate(r.kind); err != nil {
			b.fail(fmt.Errorf("rule %d (%s): kind %q: %w", i, r.name, r.kind, err))
			continue
		}
		if r.kind == kind.Unknown {
			b.fail(fmt.Errorf("rule %d (%s): rules cannot classify as %q", i, r.name, r.kind))
		}
	}

	// (5) Table consistency.
	for k := range codeTable {
		if _, ok := respTable[k]; !ok {
			b.fail(fmt.Errorf("kind %q has a code but no response", k))
		}
	}
	for k := range respTable {
		if _, ok := codeTable[k]; !ok {
			b.fail(fmt.Errorf("kind %q has a response but no code", k))
		}
	}
	if _, ok := codeTable[kind.Unknown]; !ok {
		b.fail(fmt.Errorf("kind %q must have a code", kind.Unknown))
	}
	if _, ok := respTable[kind.Unknown]; !ok {
		b.fail(fmt.Errorf("kind %q must have a response", kind.Unknown))
	}

	if err := b.err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	// (6) Freeze.
	return &resolver{
		codes:       freezeCodes(codeTable),
		responses:   freezeResponses(respTable),
		rules:       freezeRules(b.rules),
		defaultCode: codeTable[kind.Unknown],
		defaultResp: respTable[kind.Unknown],
	}, nil
}

// MustNew is the panic-on-error variant of New. Intended for package-level
// initialization with static options.
func MustNew(opts ...Option) apis.Resolver {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// resolver is an immutable policy snapshot. Lookups are map reads and rule
// scans; no method mutates state.
type resolver struct {
	// codes maps each configured kind to its logging code.
	codes map[kind.Kind]excode.Code

	// responses maps each configured kind to its response.
	responses map[kind.Kind]apis.Response

	// rules are evaluated in order after the kinded tier.
	rules []rule

	// defaultCode and defaultResp are the kind.Unknown entries, used for any
	// kind without its own entry.
	defaultCode excode.Code
	defaultResp apis.Response
}

// classification tiers reported by Explain.
const (
	tierNil      = "nil"
	tierKinded   = "kinded"
	tierRule     = "rule"
	tierFallback = "fallback"
	tierPanic    = "panic"
)

// Classify resolves err into a kind.
//
// Resolution order:
//  1. the outermost error in the chain implementing apis.KindedError with a
//     declared kind other than Unknown;
//  2. rules in registration order, built-in rules first;
//  3. kind.Unknown.
func (r *resolver) Classify(err error) kind.Kind {
	k, _, _ := r.classify(err)
	return k
}

// classify returns the kind together with the tier that produced it and,
// for rule matches, the index of the rule.
//
// KindedError implementations and user matchers run here; a panic in either
// resolves to kind.Unknown.
func (r *resolver) classify(err error) (k kind.Kind, tier string, idx int) {
	if err == nil {
		return kind.Unknown, tierNil, -1
	}
	defer func() {
		if recover() != nil {
			k, tier, idx = kind.Unknown, tierPanic, -1
		}
	}()

	if k, ok := kindOf(err); ok {
		return k, tierKinded, -1
	}
	for i, rl := range r.rules {
		if rl.match(err) {
			return rl.kind, tierRule, i
		}
	}
	return kind.Unknown, tierFallback, -1
}

// CodeFor returns the configured code for k, or the default code.
func (r *resolver) CodeFor(k kind.Kind) excode.Code {
	if c, ok := r.codes[k]; ok {
		return c
	}
	return r.defaultCode
}

// ResponseFor returns the configured response for k, or the default
// response.
func (r *resolver) ResponseFor(k kind.Kind) apis.Response {
	if v, ok := r.responses[k]; ok {
		return v
	}
	return r.defaultResp
}

// Handle classifies err and resolves its code and response. A valid code
// provided by an apis.CodedError in the chain replaces the table code.
func (r *resolver) Handle(err error) apis.Disposition {
	k := r.Classify(err)
	c := r.CodeFor(k)
	if pc, ok := providedCode(err); ok {
		c = pc
	}
	return apis.Disposition{Kind: k, Code: c, Response: r.ResponseFor(k)}
}

// Explain produces a textual trace of how the resolver handled err.
//
// Example output:
//
//	error="reserve: stock exhausted" kind="business" source=rule index=1 match=sentinel("stock exhausted")
//	code: source=table -> e.shop.fw.8101
//	http: source=table -> 409 view="businessError"
//	grpc: source=table -> FAILED_PRECONDITION(9)
//
// Notes:
//   - kind source ∈ {nil | kinded | rule | fallback | panic}
//   - code source ∈ {provider | table | default}
//   - http/grpc source ∈ {table | default}
func (r *resolver) Explain(err error) string {
	var b strings.Builder

	k, tier, idx := r.classify(err)
	if err == nil {
		_, _ = fmt.Fprintf(&b, "error=<nil> kind=%q source=%s\n", k, tier)
	} else if tier == tierRule {
		_, _ = fmt.Fprintf(&b, "error=%q kind=%q source=%s index=%d match=%s\n", errorText(err), k, tier, idx, r.rules[idx].name)
	} else {
		_, _ = fmt.Fprintf(&b, "error=%q kind=%q source=%s\n", errorText(err), k, tier)
	}

	// ---- code ----
	if pc, ok := providedCode(err); ok {
		_, _ = fmt.Fprintf(&b, "code: source=provider -> %s\n", pc)
	} else {
		_, _ = fmt.Fprintf(&b, "code: source=%s -> %s\n", r.source(k), r.CodeFor(k))
	}

	// ---- response ----
	resp := r.ResponseFor(k)
	src := r.source(k)
	_, _ = fmt.Fprintf(&b, "http: source=%s -> %d view=%q\n", src, resp.Status, resp.View)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src, grpcName(resp.GRPC.String()), uint32(resp.GRPC))

	return b.String()
}

// errorText returns err.Error(), or a placeholder when Error panics.
func errorText(err error) (s string) {
	defer func() {
		if recover() != nil {
			s = "<Error() panicked>"
		}
	}()
	return err.Error()
}

// source reports whether k resolves through its own table entry or through
// the default.
func (r *resolver) source(k kind.Kind) string {
	if k == kind.Unknown {
		return "default"
	}
	if _, ok := r.codes[k]; ok {
		return "table"
	}
	return "default"
}

// kindOf returns the kind of the outermost KindedError in the chain that
// reports a declared kind other than Unknown.
func kindOf(err error) (kind.Kind, bool) {
	var out kind.Kind
	found := walk(err, func(e error) bool {
		ke, ok := e.(apis.KindedError)
		if !ok {
			return false
		}
		if k := ke.ErrorKind(); k.IsKnown() {
			out = k
			return true
		}
		return false
	})
	return out, found
}

// providedCode returns the first valid code reported by an apis.CodedError
// in the chain. Invalid or empty codes are skipped.
func providedCode(err error) (c excode.Code, ok bool) {
	if err == nil {
		return excode.Empty, false
	}
	defer func() {
		if recover() != nil {
			c, ok = excode.Empty, false
		}
	}()
	ok = walk(err, func(e error) bool {
		ce, isCoded := e.(apis.CodedError)
		if !isCoded {
			return false
		}
		raw := ce.ErrorCode()
		if raw == "" {
			return false
		}
		parsed, perr := excode.Parse(raw)
		if perr != nil {
			return false
		}
		c = parsed
		return true
	})
	return c, ok
}
