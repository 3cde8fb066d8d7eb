package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"revamp/internal/domain"
	"revamp/internal/ports/output"
)

var _ output.IdentityVerifier = (*JWT)(nil)

const issuer = "revamp"

// Claims represents the identity claims transmitted via a locally signed JWT.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}

// JWT verifies and issues HS256 tokens. It stands in for Firebase in
// development and tests.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token asserting id.
func (j *JWT) Issue(id output.Identity) (string, error) {
	now := j.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Email: id.Email,
		Name:  id.Name,
		Admin: id.IsAdmin,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return ss, nil
}

func (j *JWT) Verify(_ context.Context, token string) (output.Identity, error) {
	if token == "" {
		return output.Identity{}, domain.ErrUnauthenticated
	}
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return output.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return output.Identity{}, fmt.Errorf("%w: missing subject", domain.ErrUnauthenticated)
	}
	return output.Identity{
		UID:     claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.Admin,
	}, nil
}
