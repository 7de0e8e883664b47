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

// Package excode provides parsing and validation for exception logging codes.
//
// An exception code ("e.xx.fw.5001") is attached to every handled error. It
// is written into the log line, used as the message ID when looking up a
// localized text, and returned to clients so that a support request can be
// matched with the server log.
//
// Codes are dot-separated, lowercase, 2 to 5 segments. The first segment
// encodes the log level (see Code.Level).
package excode
