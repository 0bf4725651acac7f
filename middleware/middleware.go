// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/models"
)

const (
	HeaderAccount          = "X-Account"
	HeaderAccountSignature = "X-Account-Signature"
)

type accountKey struct{}

// RequestObserver records per-route request outcomes.
type RequestObserver interface {
	ObserveRequest(route string, status int, d time.Duration)
}

// statusWriter remembers the status code written by the wrapped handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		sw := &statusWriter{ResponseWriter: w}
		next(sw, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.code(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// WithMetrics reports the status and latency of every request under route
func WithMetrics(obs RequestObserver, route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next(sw, r)
		obs.ObserveRequest(route, sw.code(), time.Since(start))
	}
}

// WithAccount authenticates the caller from X-Account and X-Account-Signature.
// A caller who sends an account must sign it. When required is false an
// anonymous request passes through with no account in its context.
func WithAccount(salt string, required bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderAccount)
		if raw == "" {
			if required {
				ErrorDetailResponse(w, http.StatusUnauthorized, "missing_account",
					"X-Account header required", nil)
				return
			}
			next(w, r)
			return
		}

		account, err := auth.NormalizeAccount(raw)
		if err != nil {
			ErrorDetailResponse(w, http.StatusBadRequest, "invalid_account", err.Error(), nil)
			return
		}
		if err := auth.VerifyAccount(account, r.Header.Get(HeaderAccountSignature), salt); err != nil {
			slog.Warn("rejected account signature", "account", account, "remote", GetClientIP(r))
			ErrorDetailResponse(w, http.StatusUnauthorized, "invalid_signature",
				"account signature does not match", nil)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey{}, ballot.Account(account))
		next(w, r.WithContext(ctx))
	}
}

// AccountFromContext returns the caller set by WithAccount
func AccountFromContext(ctx context.Context) (ballot.Account, bool) {
	account, ok := ctx.Value(accountKey{}).(ballot.Account)
	return account, ok
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	ErrorDetailResponse(w, statusCode, "", message, nil)
}

// ErrorDetailResponse writes a JSON error response with a machine-readable
// code and optional details
func ErrorDetailResponse(w http.ResponseWriter, statusCode int, code, message string, details map[string]any) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    code,
		Details: details,
	})
}

var ErrMissingBody = errors.New("request body required")

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrMissingBody
		}
		return err
	}
	return nil
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Account, X-Account-Signature")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Strip port if present
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
