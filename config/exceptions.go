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

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/resolver"
	"google.golang.org/grpc/codes"
)

// Options converts the exception overrides into resolver options. Problems
// with kind names or gRPC code names are reported here; everything else is
// validated by resolver.New.
func (e ExceptionsConfig) Options() ([]resolver.Option, error) {
	var opts []resolver.Option
	if e.DisableDefaultRules {
		opts = append(opts, resolver.WithoutDefaultRules())
	}

	// sorted so rule order is stable across runs
	names := make([]string, 0, len(e.Kinds))
	for name := range e.Kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		p := e.Kinds[name]
		k, err := kind.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("exceptions.kinds.%s: %w", name, err)
		}
		if p.Disabled {
			opts = append(opts, resolver.WithoutKind(k))
			continue
		}
		if p.Code != "" {
			opts = append(opts, resolver.WithCode(k, p.Code))
		}
		if p.Status != 0 || p.View != "" {
			def := resolver.DefaultResponse(k)
			status, view := p.Status, p.View
			if status == 0 {
				status = def.Status
			}
			if view == "" {
				view = def.View
			}
			opts = append(opts, resolver.WithStatus(k, status, view))
		}
		if p.GRPC != "" {
			c, err := ParseGRPCCode(p.GRPC)
			if err != nil {
				return nil, fmt.Errorf("exceptions.kinds.%s.grpc: %w", name, err)
			}
			opts = append(opts, resolver.WithGRPCCode(k, c))
		}
		for _, tn := range p.TypeNames {
			opts = append(opts, resolver.WithTypeName(k, tn))
		}
	}
	return opts, nil
}

// ParseGRPCCode parses a gRPC code name ("NOT_FOUND", "not_found") or
// number ("5").
func ParseGRPCCode(s string) (codes.Code, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		if n > uint64(codes.Unauthenticated) {
			return 0, fmt.Errorf("invalid grpc code %q", s)
		}
		return codes.Code(n), nil
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(s)))); err != nil {
		return 0, err
	}
	return c, nil
}
