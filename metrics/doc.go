// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics registers the ballot's Prometheus collectors: rejected
// commands, HTTP traffic, and scrape-time gauges over the engine's state.
package metrics
