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

import "testing"

func TestMatcher_Defaults(t *testing.T) {
	m, err := NewMatcher(nil, DefaultExcludes)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	tests := []struct {
		in   string
		want bool
	}{
		{"/", true},
		{"/demo/business", true},
		{"/resources/app.js", false},
		{"/docs/index.html", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.in); got != tt.want {
			t.Fatalf("Match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatcher_Includes(t *testing.T) {
	m, err := NewMatcher([]string{"/api/**"}, nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	if !m.Match("/api/orders/1") {
		t.Fatalf("included path must match")
	}
	if m.Match("/health") {
		t.Fatalf("path outside includes must not match")
	}
}

func TestMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewMatcher([]string{"api"}, nil); err == nil {
		t.Fatalf("relative include must be rejected")
	}
	if _, err := NewMatcher(nil, []string{"/a/[x"}); err == nil {
		t.Fatalf("malformed exclude must be rejected")
	}
}

func TestMatcher_Nil(t *testing.T) {
	var m *Matcher
	if !m.Match("/anything") {
		t.Fatalf("nil matcher must match everything")
	}
}
