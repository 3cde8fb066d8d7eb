package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"revamp/internal/domain"
	"revamp/internal/ports/output"
)

var _ output.IdentityVerifier = (*Firebase)(nil)

// tokenVerifier is the part of the Firebase auth client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Firebase verifies ID tokens issued by Firebase Authentication.
type Firebase struct {
	client tokenVerifier
}

// NewFirebase builds a verifier for projectID. credentialsFile may be empty
// to use application default credentials.
func NewFirebase(ctx context.Context, projectID, credentialsFile string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &Firebase{client: client}, nil
}

func (f *Firebase) Verify(ctx context.Context, token string) (output.Identity, error) {
	if token == "" {
		return output.Identity{}, domain.ErrUnauthenticated
	}
	tok, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return output.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return identityFromClaims(tok.UID, tok.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) output.Identity {
	id := output.Identity{UID: uid}
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.IsAdmin, _ = claims["admin"].(bool)
	return id
}
