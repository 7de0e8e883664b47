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

package resolver

import (
	"net/http"

	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/dataaccess"
	"dirpx.dev/errview/excode"
	"dirpx.dev/errview/kind"
	"google.golang.org/grpc/codes"
)

// defaultCodes is the built-in logging-code table. The kind.Unknown entry is
// the default code for anything unclassified.
var defaultCodes = map[kind.Kind]excode.Code{
	kind.ResourceNotFound: excode.MustParse("e.xx.fw.5001"),
	kind.InvalidToken:     excode.MustParse("e.xx.fw.7001"),
	kind.Business:         excode.MustParse("e.xx.fw.8001"),
	kind.DataAccess:       excode.MustParse("e.xx.fw.9002"),
	kind.Unknown:          excode.MustParse("e.xx.fw.9001"),
}

// defaultResponses is the built-in response table. Statuses are keyed by
// kind (not by view name) so a misspelled view can never silently drop a
// status mapping.
var defaultResponses = map[kind.Kind]apis.Response{
	kind.ResourceNotFound: {Status: http.StatusNotFound, GRPC: codes.NotFound, View: "resourceNotFoundError"},
	kind.InvalidToken:     {Status: http.StatusConflict, GRPC: codes.Aborted, View: "transactionTokenError"},
	kind.Business:         {Status: http.StatusConflict, GRPC: codes.FailedPrecondition, View: "businessError"},
	kind.DataAccess:       {Status: http.StatusInternalServerError, GRPC: codes.Internal, View: "dataAccessError"},
	kind.Unknown:          {Status: http.StatusInternalServerError, GRPC: codes.Internal, View: "systemError"},
}

// defaultRules returns the built-in classification rules in evaluation
// order. User rules are appended after these.
func defaultRules() []rule {
	return []rule{
		{kind: kind.DataAccess, name: "dataaccess", match: dataaccess.Is},
	}
}

// DefaultCode returns the built-in code for k. Undeclared kinds get the
// kind.Unknown code.
func DefaultCode(k kind.Kind) excode.Code {
	if c, ok := defaultCodes[k]; ok {
		return c
	}
	return defaultCodes[kind.Unknown]
}

// DefaultResponse returns the built-in response for k. Undeclared kinds get
// the kind.Unknown response.
func DefaultResponse(k kind.Kind) apis.Response {
	if r, ok := defaultResponses[k]; ok {
		return r
	}
	return defaultResponses[kind.Unknown]
}
