// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

/*
Package middleware provides HTTP middleware for the dashboard server.

Key Components:

  - DashboardMetrics: request counts and latency per chi route pattern
  - Compression: gzip responses for clients that accept it

Both are plain func(http.Handler) http.Handler values and plug into chi's
r.Use:

	r.Use(middleware.DashboardMetrics)
	r.Use(middleware.Compression)

DashboardMetrics labels by route pattern ("/api/v1/aggregates/{name}"), not
by raw path, so label cardinality stays bounded.
*/
package middleware
