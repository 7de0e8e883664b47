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

package excode

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated representation of an exception logging
// code such as "e.xx.fw.5001".
//
// A code correlates one error occurrence across log lines and localized
// messages, so it must stay stable across releases. The segments are, by
// convention:
//
//	<level>.<project>.<layer>.<number>
//
// where level is "e" (error), "w" (warn) or "i" (info). Only the level is
// interpreted by this package (see Level); the rest is opaque.
type Code string

// MinLength and MaxLength define the allowed length range for a code.
const (
	// MinLength is the minimum length of a code: one level letter, a dot and
	// at least one more character.
	MinLength = 3

	// MaxLength is the maximum length of a code.
	MaxLength = 64
)

const (
	// codeFmt accepts 2 to 5 dot-separated segments. The first segment
	// starts with a lowercase letter; later segments may be purely numeric
	// ("5001"), which is where the sequence number lives.
	//
	// Examples that match:
	//
	//	"e.xx.fw.5001"
	//	"w.app.order.1003"
	//	"i.ok"
	//
	// Examples that DO NOT match:
	//
	//	"E.XX.FW.5001"   (uppercase, fixed by Normalize)
	//	"e..fw.5001"     (empty segment)
	//	"5001"           (single segment, digit first)
	//	"e-xx-fw-5001"   (wrong separator)
	codeFmt = `^[a-z][a-z0-9]*(\.[a-z0-9]+){1,4}$`
)

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeInvalidFormat is returned when a code does not match the
	// expected dotted format.
	ErrCodeInvalidFormat = errors.New("errview: invalid exception code format")
	// ErrCodeInvalidLength is returned when a code is too short or too long.
	ErrCodeInvalidLength = errors.New("errview: invalid exception code length")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It means "no code provided" and is never a
// valid table entry.
var Empty Code = ""

// Level is the severity encoded in the first segment of a code.
type Level int

const (
	// LevelError is used for "e.*" codes and for anything unrecognized.
	LevelError Level = iota
	// LevelWarn is used for "w.*" codes.
	LevelWarn
	// LevelInfo is used for "i.*" codes.
	LevelInfo
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	default:
		return "error"
	}
}

// Normalize trims spaces and lowercases s. It does NOT validate the result.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Parse takes a user-provided string, normalizes it and validates it.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is meant for
// package-level tables.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks whether c is in canonical form. The empty code is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// Level returns the severity encoded in the first segment.
func (c Code) Level() Level {
	head, _, _ := strings.Cut(string(c), ".")
	switch head {
	case "w":
		return LevelWarn
	case "i":
		return LevelInfo
	default:
		return LevelError
	}
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrCodeInvalidLength
	}
	if !codeRe.MatchString(s) {
		return ErrCodeInvalidFormat
	}
	return nil
}
