// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies caller identities for the HTTP layer.

# Account Signatures

Every caller sends its account in X-Account and a signature in
X-Account-Signature. Signatures use HMAC-SHA256 keyed by the server salt:

	sig := auth.SignAccount("0xVoter1", salt)
	err := auth.VerifyAccount("0xVoter1", sig, salt)

The signature is URL-safe base64 encoded without padding. Since it's
deterministic, no per-account secret needs to be stored. Whoever issues
accounts (an operator, or a gateway in front of the server) hands out the
signatures.

# Account Identifiers

	account, err := auth.NormalizeAccount(header)

Accounts are trimmed, non-empty, at most MaxAccountLength bytes, and free of
control characters.
*/
package auth
