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

package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/errview"
	"dirpx.dev/errview/ginx"
	"dirpx.dev/errview/httpx"
	"github.com/gin-gonic/gin"
)

// registerDemo mounts one route per kind so the whole pipeline can be
// exercised with curl.
func (a *app) registerDemo(g *gin.RouterGroup) {
	g.GET("/not-found/:id", func(c *gin.Context) {
		_ = c.Error(errview.NotFound("order not found",
			errview.WithDetailOption("id", c.Param("id"))))
	})

	g.GET("/invalid-token", func(c *gin.Context) {
		_ = c.Error(errview.InvalidToken("transaction token does not match the screen flow"))
	})

	g.GET("/business", func(c *gin.Context) {
		_ = c.Error(errview.Business("stock is insufficient",
			errview.WithCodeOption("e.shop.order.8101"),
			errview.WithDetailOption("item", c.DefaultQuery("item", "A-100"))))
	})

	g.GET("/data-access", func(c *gin.Context) {
		if err := a.storeError(c); err != nil {
			_ = c.Error(fmt.Errorf("load order: %w", err))
		}
	})

	g.GET("/unknown", func(c *gin.Context) {
		_ = c.Error(errors.New("unexpected state in order pipeline"))
	})

	g.GET("/panic", func(*gin.Context) {
		panic("demo panic")
	})

	// Catalog lookup in the request language; a missing code is itself a
	// not-found error.
	g.GET("/messages/:code", func(c *gin.Context) {
		code := c.Param("code")
		msg, tag, ok := a.msgs.LookupTag(ginx.GetLocalizer(c), code, nil)
		if !ok {
			_ = c.Error(errview.NotFound("no message for code",
				errview.WithDetailOption("code", code)))
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "locale": tag.String(), "message": msg})
	})

	// net/http boundary mounted inside gin.
	w := httpx.Writer{Responder: a.resp}
	plain := httpx.Locale(a.msgs, httpx.Recover(w, httpx.Handler(w, func(http.ResponseWriter, *http.Request) error {
		return errview.NotFound("document not found")
	})))
	g.GET("/plain", gin.WrapH(plain))
}

// storeError returns a real driver error from the store named by the
// "store" query parameter. Without a parameter a wrapped sql.ErrNoRows is
// returned. The errors are deliberately left unclassified so the
// data-access rule has to recognize them.
func (a *app) storeError(c *gin.Context) error {
	ctx := c.Request.Context()
	switch store := c.Query("store"); store {
	case "":
		return sql.ErrNoRows
	case "redis":
		if a.rdb == nil {
			return fmt.Errorf("%s: %w", store, errStoreNotConfigured)
		}
		// redis.Nil
		return a.rdb.Get(ctx, "errview:demo:missing").Err()
	case "postgres":
		if a.db == nil {
			return fmt.Errorf("%s: %w", store, errStoreNotConfigured)
		}
		var n int
		return a.db.WithContext(ctx).Raw("SELECT 1 FROM errview_demo_missing").Scan(&n).Error
	default:
		return fmt.Errorf("unknown store %q", store)
	}
}
