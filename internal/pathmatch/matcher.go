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

package pathmatch

import "fmt"

var (
	// DefaultIncludes selects every request path.
	DefaultIncludes = []string{"/**"}
	// DefaultExcludes skips static resources and rendered pages.
	DefaultExcludes = []string{"/resources/**", "/**/*.html"}
)

// Matcher selects request paths by include patterns minus exclude patterns.
// A nil *Matcher matches every path.
type Matcher struct {
	include *Trie
	exclude *Trie
}

// NewMatcher builds a matcher. An empty includes list means DefaultIncludes.
// Excludes are taken as given; pass DefaultExcludes explicitly to use them.
func NewMatcher(includes, excludes []string) (*Matcher, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	m := &Matcher{include: New(), exclude: New()}
	for _, p := range includes {
		if err := m.include.Insert(p); err != nil {
			return nil, fmt.Errorf("include %q: %w", p, err)
		}
	}
	for _, p := range excludes {
		if err := m.exclude.Insert(p); err != nil {
			return nil, fmt.Errorf("exclude %q: %w", p, err)
		}
	}
	return m, nil
}

// Match reports whether p is included and not excluded.
func (m *Matcher) Match(p string) bool {
	if m == nil {
		return true
	}
	return m.include.Match(p) && !m.exclude.Match(p)
}
