// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /status", middleware.WithLogging(handler))

Logs request completion with method, path, status and duration_ms.

# Request Metrics

	middleware.WithMetrics(recorder, "POST /votes", handler)

Reports status and latency to a RequestObserver under a fixed route label.

# Caller Identity

	middleware.WithAccount(cfg.AccountSalt, true, handler)

Reads X-Account and X-Account-Signature, verifies the signature with the
auth package, and stores the caller in the request context:

	caller, ok := middleware.AccountFromContext(r.Context())

A bad signature is always rejected with 401. A missing account is rejected
only when required is true.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type,
Authorization, X-Account, X-Account-Signature.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ErrorDetailResponse(w, http.StatusConflict, "already_voted", msg, details)

Parse JSON request bodies:

	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

An empty body yields ErrMissingBody.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used in request and signature logs.
*/
package middleware
