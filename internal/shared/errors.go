// Package shared holds the cross-cutting pieces the storefront and
// admin modules both lean on: sessions, CSRF tokens, idempotency keys,
// and the sentinel errors below.
package shared

import "errors"

var (
	// ErrInvalidCredentials covers every admin login failure, whether the
	// email is unknown, the password is wrong, or the account was
	// deactivated. Callers show one message for all three so the login
	// form leaks nothing about which accounts exist.
	ErrInvalidCredentials = errors.New("shared: invalid credentials")

	// ErrCSRFTokenMissing means a mutating form arrived without its token.
	ErrCSRFTokenMissing = errors.New("shared: csrf token missing")

	// ErrCSRFTokenMismatch means the submitted token does not match the
	// one minted for this session.
	ErrCSRFTokenMismatch = errors.New("shared: csrf token mismatch")
)
