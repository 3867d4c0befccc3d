// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the remote inference services.
//
// Every feature screen talks to its own endpoint: the multimodal chat service,
// and two independent YouTube summarizer services. The oEmbed preview lookup
// goes through the same client with a GET endpoint.
//
// # Response handling
//
// A 2xx body is read once. If it is valid JSON the response is Structured and
// Response.Text picks the first usable field from the endpoint's precedence
// list. Anything else is Raw and is shown verbatim. Non-JSON is never an error.
//
// # Errors
//
// Failures are *Error values with a Kind of KindNetwork or KindHTTPStatus.
// Callers log the error and show their own generic message.
package gateway
