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

	"dirpx.dev/errview/kind"
	"google.golang.org/grpc/codes"
)

// rule is one classification rule. Rules are evaluated in order and the
// first match wins.
type rule struct {
	// kind is the classification assigned on match.
	kind kind.Kind
	// name describes the rule in Explain output.
	name string
	// match reports whether the rule applies to the error.
	match func(error) bool
}

type statusEntry struct {
	status int
	view   string
}

type builder struct {
	// codes holds raw logging codes per kind; parsed in New.
	codes map[kind.Kind]string
	// statuses holds HTTP status + view per kind.
	statuses map[kind.Kind]statusEntry
	// grpc holds gRPC codes per kind.
	grpc map[kind.Kind]codes.Code
	// removed marks kinds dropped from both tables.
	removed map[kind.Kind]bool

	// rules are the classification rules, defaults first.
	rules []rule
	// defaultRules is the number of built-in rules at the head of rules.
	defaultRules int

	// errs collects option-level errors reported by New.
	errs []error
}

// newBuilder creates a builder seeded with the built-in tables and rules.
func newBuilder() *builder {
	b := &builder{
		codes:    make(map[kind.Kind]string, len(defaultCodes)),
		statuses: make(map[kind.Kind]statusEntry, len(defaultResponses)),
		grpc:     make(map[kind.Kind]codes.Code, len(defaultResponses)),
		removed:  make(map[kind.Kind]bool),
	}
	for k, c := range defaultCodes {
		b.codes[k] = c.String()
	}
	for k, r := range defaultResponses {
		b.statuses[k] = statusEntry{status: r.Status, view: r.View}
		b.grpc[k] = r.GRPC
	}
	b.rules = defaultRules()
	b.defaultRules = len(b.rules)
	return b
}

func (b *builder) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *builder) err() error {
	return errors.Join(b.errs...)
}
