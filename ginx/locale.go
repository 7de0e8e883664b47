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

package ginx

import (
	"dirpx.dev/errview/message"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// LocalizerKey is the gin context key holding the request localizer.
const LocalizerKey = "localizer"

// Locale parses Accept-Language and stores a localizer both in the gin
// context and in the request context.
func Locale(src *message.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := src.Localizer(c.GetHeader("Accept-Language"))

		c.Set(LocalizerKey, loc)
		c.Request = c.Request.WithContext(message.WithLocalizer(c.Request.Context(), loc))

		c.Next()
	}
}

// GetLocalizer returns the localizer stored by Locale, or nil.
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(LocalizerKey); ok {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	loc, _ := message.LocalizerFromContext(c.Request.Context())
	return loc
}
