// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FinPay Authors

// Package http implements the HTTP transport layer of the gateway.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as rate limiting, authentication, request
// tracing, and access logging are handled in this package before requests
// are delegated to the service layer or proxied to backend services.
package http
