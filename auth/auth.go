// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// MaxAccountLength bounds the size of an account identifier.
const MaxAccountLength = 128

var (
	ErrInvalidSignature = errors.New("invalid account signature")
	ErrInvalidAccount   = errors.New("invalid account")
)

// SignAccount creates an HMAC-based signature proving control of an account.
// This is deterministic and verifiable
func SignAccount(account, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(account))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VerifyAccount checks if the provided signature is valid for the account
func VerifyAccount(account, signature, salt string) error {
	expected := SignAccount(account, salt)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// NormalizeAccount trims surrounding whitespace and rejects empty, oversized,
// or control-character identifiers.
func NormalizeAccount(raw string) (string, error) {
	account := strings.TrimSpace(raw)
	if account == "" || len(account) > MaxAccountLength {
		return "", ErrInvalidAccount
	}
	for _, c := range account {
		if c < 0x20 || c == 0x7f {
			return "", ErrInvalidAccount
		}
	}
	return account, nil
}
