// Package identity delegates bearer-token verification to an external
// identity provider. The middleware only ever sees the TokenVerifier
// contract; which provider backs it is a config decision.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken covers every verification failure: expired, malformed,
// bad signature, or rejected by the provider. Callers must not leak the
// underlying cause to the client.
var ErrInvalidToken = errors.New("identity: invalid token")

// TokenVerifier checks a bearer identity token and returns the subject it
// was issued to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}
