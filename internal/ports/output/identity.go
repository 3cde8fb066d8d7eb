package output

import "context"

// Identity is what the identity service asserts about a bearer token.
type Identity struct {
	UID     string
	Email   string
	Name    string
	IsAdmin bool
}

// IdentityVerifier validates tokens issued by the identity service.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
