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

import (
	"errors"
	"path"
	"strings"
)

// Trie is a segment-aware index of Ant-style path patterns.
// Each node represents one "/"-separated segment. A segment is one of:
//
//   - a literal ("orders");
//   - a glob within the segment ("*.html", "v?", "[ab]*"), as in path.Match;
//   - "**", matching zero or more whole segments.
//
// Literal children are tried before globs, and globs before "**", so a more
// specific pattern reports itself from MatchWithPattern.
type Trie struct {
	// children holds literal segments.
	children map[string]*Trie
	// globs holds wildcard segments in insertion order.
	globs []globChild
	// any is the "**" child.
	any *Trie
	// terminal marks that a pattern ends at this node.
	terminal bool
	// pattern is the pattern as inserted, set only when terminal=true.
	pattern string
}

type globChild struct {
	seg  string
	node *Trie
}

var (
	// ErrInvalidPattern is returned when inserting a pattern that does not
	// start with "/", mixes "**" with other characters in one segment, or
	// contains a malformed glob.
	ErrInvalidPattern = errors.New("pathmatch: invalid pattern")
)

// New creates an empty trie ready for inserts.
func New() *Trie {
	return &Trie{children: make(map[string]*Trie)}
}

// Insert adds a pattern to the trie.
//
// Examples:
//
//	"/**"
//	"/resources/**"
//	"/**/*.html"
//	"/api/v?/orders/*"
func (t *Trie) Insert(pattern string) error {
	if t == nil || !strings.HasPrefix(pattern, "/") {
		return ErrInvalidPattern
	}
	segs := split(pattern)
	for _, s := range segs {
		if !validSegment(s) {
			return ErrInvalidPattern
		}
	}

	cur := t
	for _, s := range segs {
		cur = cur.child(s)
	}
	cur.terminal = true
	if cur.pattern == "" {
		cur.pattern = pattern
	}
	return nil
}

// child returns the node for seg, creating it when missing.
func (t *Trie) child(seg string) *Trie {
	if seg == "**" {
		if t.any == nil {
			t.any = New()
		}
		return t.any
	}
	if !isGlob(seg) {
		next, ok := t.children[seg]
		if !ok {
			next = New()
			t.children[seg] = next
		}
		return next
	}
	for _, g := range t.globs {
		if g.seg == seg {
			return g.node
		}
	}
	next := New()
	t.globs = append(t.globs, globChild{seg: seg, node: next})
	return next
}

// Match reports whether p matches any inserted pattern.
func (t *Trie) Match(p string) bool {
	_, ok := t.MatchWithPattern(p)
	return ok
}

// MatchWithPattern returns the first pattern matching p.
func (t *Trie) MatchWithPattern(p string) (string, bool) {
	if t == nil {
		return "", false
	}
	if n := t.match(split(p)); n != nil {
		return n.pattern, true
	}
	return "", false
}

// match returns the terminal node reached by consuming all of segs, or nil.
func (t *Trie) match(segs []string) *Trie {
	if len(segs) == 0 && t.terminal {
		return t
	}
	if len(segs) > 0 {
		seg := segs[0]
		if next, ok := t.children[seg]; ok {
			if n := next.match(segs[1:]); n != nil {
				return n
			}
		}
		for _, g := range t.globs {
			if ok, _ := path.Match(g.seg, seg); ok {
				if n := g.node.match(segs[1:]); n != nil {
					return n
				}
			}
		}
	}
	if t.any != nil {
		// "**" swallows zero or more segments
		for i := 0; i <= len(segs); i++ {
			if n := t.any.match(segs[i:]); n != nil {
				return n
			}
		}
	}
	return nil
}

// split breaks a path into its non-empty segments. "/" and "" both yield an
// empty list.
func split(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// isGlob reports whether seg contains path.Match metacharacters.
func isGlob(seg string) bool {
	return strings.ContainsAny(seg, `*?[\`)
}

// validSegment reports whether seg can be stored in the trie.
// Rules:
//   - "**" is allowed only as a whole segment;
//   - globs must be well-formed for path.Match.
func validSegment(seg string) bool {
	if seg == "**" {
		return true
	}
	if strings.Contains(seg, "**") {
		return false
	}
	if isGlob(seg) {
		if _, err := path.Match(seg, ""); err != nil {
			return false
		}
	}
	return true
}
