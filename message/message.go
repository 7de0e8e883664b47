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

// Package message resolves user-facing texts for exception codes.
//
// Messages live in TOML files keyed by logging code ("e.xx.fw.5001") and are
// loaded into a go-i18n bundle. English and Japanese ship embedded; extra
// files from disk can add languages or override entries.
package message

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// GenericID is the message shown for errors that have no catalog entry and
// are not safe to describe with their own text.
const GenericID = "errview.generic"

// embedded lists the built-in locale files.
var embedded = []string{"locales/en.toml", "locales/ja.toml"}

// Source is a read-only message catalog. Safe for concurrent use once built.
type Source struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// Option configures New.
type Option func(*options)

type options struct {
	defaultLang language.Tag
	files       []string
}

// WithDefaultLanguage sets the bundle's fallback language (English if unset).
func WithDefaultLanguage(tag language.Tag) Option {
	return func(o *options) { o.defaultLang = tag }
}

// WithFiles loads additional message files from disk after the embedded
// ones. The language is taken from the file name, e.g. "messages.fr.toml".
func WithFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// New builds a catalog from the embedded locales plus any WithFiles entries.
func New(opts ...Option) (*Source, error) {
	o := options{defaultLang: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	bundle := i18n.NewBundle(o.defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, name := range embedded {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return nil, fmt.Errorf("message: load %s: %w", name, err)
		}
	}
	for _, path := range o.files {
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("message: load %s: %w", path, err)
		}
	}
	return &Source{bundle: bundle, defaultLang: o.defaultLang}, nil
}

// Localizer returns a localizer for the given preference list. Each entry
// may be a tag ("ja") or a raw Accept-Language value ("ja,en;q=0.8").
func (s *Source) Localizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(s.bundle, langs...)
}

// Languages returns the languages the catalog has messages for.
func (s *Source) Languages() []language.Tag {
	return s.bundle.LanguageTags()
}

// DefaultLanguage returns the language used when no requested one matches.
func (s *Source) DefaultLanguage() language.Tag {
	return s.defaultLang
}

// Lookup resolves code in loc. The boolean is false when no language in the
// chain defines the code; the returned text is then empty.
// data feeds {{.Field}} template placeholders and may be nil.
func (s *Source) Lookup(loc *i18n.Localizer, code string, data map[string]any) (string, bool) {
	msg, _, ok := s.LookupTag(loc, code, data)
	return msg, ok
}

// LookupTag is Lookup that also reports the catalog language the text was
// taken from. A request for a language without the code yields the default
// language's text and tag.
func (s *Source) LookupTag(loc *i18n.Localizer, code string, data map[string]any) (string, language.Tag, bool) {
	if loc == nil {
		loc = s.Localizer()
	}
	msg, tag, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{
		MessageID:    code,
		TemplateData: data,
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		// a fallback-language hit still returns text with a not-found error
		if errors.As(err, &notFound) && msg != "" {
			return msg, tag, true
		}
		return "", language.Und, false
	}
	return msg, tag, true
}

// Generic returns the generic error text in loc.
func (s *Source) Generic(loc *i18n.Localizer) string {
	msg, _ := s.GenericTag(loc)
	return msg
}

// GenericTag is Generic plus the language of the returned text.
func (s *Source) GenericTag(loc *i18n.Localizer) (string, language.Tag) {
	if msg, tag, ok := s.LookupTag(loc, GenericID, nil); ok {
		return msg, tag
	}
	return "An unexpected error occurred.", language.English
}

// ========== context.Context helpers ==========

type contextKey struct{}

// WithLocalizer stores loc in ctx.
func WithLocalizer(ctx context.Context, loc *i18n.Localizer) context.Context {
	return context.WithValue(ctx, contextKey{}, loc)
}

// LocalizerFromContext returns the localizer stored by WithLocalizer.
func LocalizerFromContext(ctx context.Context) (*i18n.Localizer, bool) {
	if ctx == nil {
		return nil, false
	}
	loc, ok := ctx.Value(contextKey{}).(*i18n.Localizer)
	return loc, ok && loc != nil
}

// ParseAcceptLanguage returns the language tags of an Accept-Language header
// ordered by preference. Malformed headers yield nil.
func ParseAcceptLanguage(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}
