// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"time"

	"github.com/tidwall/gjson"
)

// BodyKind tags how a response body was interpreted.
type BodyKind int

const (
	// Structured bodies parsed as JSON.
	Structured BodyKind = iota
	// Raw bodies are kept verbatim as plain text.
	Raw
)

// String returns the string representation of the kind.
func (k BodyKind) String() string {
	if k == Structured {
		return "structured"
	}
	return "raw"
}

// Response is a successful (2xx) gateway response.
type Response struct {
	Kind       BodyKind
	Body       []byte
	StatusCode int
	RequestID  string
	Duration   time.Duration
}

func newResponse(body []byte) *Response {
	kind := Raw
	if gjson.ValidBytes(body) {
		kind = Structured
	}
	return &Response{Kind: kind, Body: body}
}

// Raw returns the body verbatim.
func (r *Response) Raw() string {
	return string(r.Body)
}

// Field returns the first usable value among fields, in order.
// A value is usable when it is present and not empty, null, false or zero.
// Raw responses have no fields.
func (r *Response) Field(fields ...string) (string, bool) {
	if r.Kind != Structured {
		return "", false
	}
	for _, f := range fields {
		res := gjson.GetBytes(r.Body, f)
		if usable(res) {
			return res.String(), true
		}
	}
	return "", false
}

// Text returns the display text of the response under the endpoint's policy:
// the first usable field, otherwise the fallback text, otherwise the raw body.
// Raw responses always yield the raw body.
func (r *Response) Text(ep Endpoint) string {
	if r.Kind == Raw {
		return r.Raw()
	}
	if s, ok := r.Field(ep.Fields...); ok {
		return s
	}
	if ep.Fallback != "" {
		return ep.Fallback
	}
	return r.Raw()
}

func usable(res gjson.Result) bool {
	switch res.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return res.Str != ""
	case gjson.Number:
		return res.Num != 0
	}
	return res.Exists()
}
