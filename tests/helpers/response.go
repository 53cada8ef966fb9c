// response.go
//
// A rotating quote-of-the-day API with anonymous sessions, likes, and bookmarks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of author-clock.
// author-clock is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// author-clock is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with author-clock.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Envelope is the standard response wrapper returned by every route.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
	Error      *EnvelopeError  `json:"error"`
}

// EnvelopeError is the error payload inside a failed envelope.
type EnvelopeError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// ParseEnvelope decodes the response body as an envelope and unmarshals
// its data into target when target is non-nil.
func ParseEnvelope(t *testing.T, resp *http.Response, target interface{}) Envelope {
	t.Helper()
	var env Envelope
	ParseJSON(t, resp, &env)
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			t.Fatalf("Failed to decode envelope data: %v. Data: %s", err, string(env.Data))
		}
	}
	return env
}

// AssertErrorCode verifies the envelope carries the expected error code
func AssertErrorCode(t *testing.T, env Envelope, code string) {
	t.Helper()
	if env.Success {
		t.Fatal("Expected error envelope, got success")
	}
	if env.Error == nil {
		t.Fatal("Expected error body in envelope")
	}
	if env.Error.Code != code {
		t.Errorf("Expected error code %s, got %s", code, env.Error.Code)
	}
}
