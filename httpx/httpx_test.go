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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dirpx.dev/errview"
	"dirpx.dev/errview/adapter"
	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/message"
	"dirpx.dev/errview/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWriter(t *testing.T) (Writer, *message.Source) {
	t.Helper()
	msgs, err := message.New()
	require.NoError(t, err)
	return Writer{Responder: &adapter.Responder{Resolver: resolver.MustNew(), Messages: msgs}}, msgs
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apis.ErrorView {
	t.Helper()
	var v apis.ErrorView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandler_WritesResolvedError(t *testing.T) {
	w, _ := newWriter(t)
	h := Handler(w, func(http.ResponseWriter, *http.Request) error {
		return errview.NotFound("order 42")
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	v := decode(t, rec)
	assert.Equal(t, "e.xx.fw.5001", v.Code)
	assert.Equal(t, "resourceNotFoundError", v.View)
	assert.Equal(t, "Resource not found.", v.Message)
	assert.Equal(t, "req-1", v.Correlation)
}

func TestHandler_NoError(t *testing.T) {
	w, _ := newWriter(t)
	h := Handler(w, func(rw http.ResponseWriter, _ *http.Request) error {
		rw.WriteHeader(http.StatusNoContent)
		return nil
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHandler_InvalidToken(t *testing.T) {
	w, _ := newWriter(t)
	h := Handler(w, func(http.ResponseWriter, *http.Request) error {
		return errview.InvalidToken("double submit")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "transactionTokenError", decode(t, rec).View)
}

func TestRecover(t *testing.T) {
	w, _ := newWriter(t)
	h := Recover(w, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	v := decode(t, rec)
	assert.Equal(t, "e.xx.fw.9001", v.Code)
	assert.Equal(t, "systemError", v.View)
	assert.Equal(t, "System error occurred!", v.Message)
}

func TestRecover_AbortHandler(t *testing.T) {
	w, _ := newWriter(t)
	h := Recover(w, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		assert.True(t, errors.Is(rec.(error), http.ErrAbortHandler))
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestLocale(t *testing.T) {
	w, msgs := newWriter(t)
	h := Locale(msgs, Handler(w, func(http.ResponseWriter, *http.Request) error {
		return errview.Business("closed")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ja,en;q=0.5")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "業務エラーが発生しました。", decode(t, rec).Message)
}
