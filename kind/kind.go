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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Kind is the canonical, validated classification of a runtime failure.
//
// The set of kinds is closed: Parse and Validate reject anything that is not
// declared below. Kind is a separate type (not just string) so that callers
// cannot accidentally pass raw user input where a classification is expected.
type Kind string

const (
	// ResourceNotFound indicates that the requested resource does not exist
	// or is not visible to the caller.
	// Mapped to HTTP 404 by the default policy.
	ResourceNotFound Kind = "resource_not_found"

	// InvalidToken indicates that the transaction token submitted with the
	// request is missing, stale or does not match the one issued for the
	// screen flow (double submit, back button, forged form).
	// Mapped to HTTP 409 by the default policy.
	InvalidToken Kind = "invalid_token"

	// Business indicates a violated business rule. The request was well
	// formed but the current state does not allow the operation.
	// Mapped to HTTP 409 by the default policy.
	Business Kind = "business"

	// DataAccess indicates a failure in the persistence layer: driver,
	// connection, constraint or query errors.
	// Mapped to HTTP 500 by the default policy.
	DataAccess Kind = "data_access"

	// Unknown is the catch-all for errors that no rule classifies.
	// It is always mapped to the default code and response.
	Unknown Kind = "unknown"
)

var (
	// ErrKindInvalid is returned when a value cannot be parsed as one of the
	// declared kinds.
	ErrKindInvalid = errors.New("errview: invalid kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// all lists every kind in declaration order. The order is the order in which
// the default classification policy evaluates kinds.
var all = [...]Kind{ResourceNotFound, InvalidToken, Business, DataAccess, Unknown}

// known indexes all for O(1) validation.
var known = map[Kind]struct{}{
	ResourceNotFound: {},
	InvalidToken:     {},
	Business:         {},
	DataAccess:       {},
	Unknown:          {},
}

// All returns every declared kind in declaration order.
// The returned slice is a fresh copy and may be modified by the caller.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all[:])
	return out
}

// Parse takes a user-provided string, normalizes it and validates it against
// the closed set of kinds.
func Parse(s string) (Kind, error) {
	k := Kind(Normalize(s))
	if err := Validate(k); err != nil {
		return "", err
	}
	return k, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize brings an arbitrary string closer to the canonical kind form.
//
// Besides the usual trimming and lowercasing it accepts CamelCase names
// ("ResourceNotFound", "DataAccess") and dashes, so configuration files can
// use whichever spelling reads best. It does NOT validate the result.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			// word boundary only after a lowercase letter or digit, so
			// "RESOURCE_NOT_FOUND" stays intact
			if i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z' || s[i-1] >= '0' && s[i-1] <= '9') {
				b.WriteByte('_')
			}
			b.WriteByte(c + ('a' - 'A'))
		case c == '-':
			b.WriteByte('_')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Validate reports whether k is one of the declared kinds.
func Validate(k Kind) error {
	if _, ok := known[k]; !ok {
		return ErrKindInvalid
	}
	return nil
}

// IsKnown reports whether k is a declared kind other than Unknown.
func (k Kind) IsKnown() bool {
	return k != Unknown && Validate(k) == nil
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
