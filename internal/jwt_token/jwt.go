package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "lear/pkg/domain-errors"
	authmw "lear/pkg/platform/middleware/auth"
	strutil "lear/pkg/platform/strings"
)

// Claims are the bearer token claims the service reads. Roles may arrive as a
// top-level "roles" array or under realm_access the way the identity provider issues them.
type Claims struct {
	Username    string      `json:"username,omitempty"`
	Preferred   string      `json:"preferred_username,omitempty"`
	LoginSource string      `json:"loginSource,omitempty"`
	Roles       []string    `json:"roles,omitempty"`
	RealmAccess realmAccess `json:"realm_access"`
	jwt.RegisteredClaims
}

type realmAccess struct {
	Roles []string `json:"roles,omitempty"`
}

// User returns the username, falling back to preferred_username and then the subject.
func (c *Claims) User() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.Preferred != "":
		return c.Preferred
	}
	return c.Subject
}

// AllRoles merges the top-level and realm roles, lower-cased and without duplicates.
func (c *Claims) AllRoles() []string {
	out := make([]string, 0, len(c.Roles)+len(c.RealmAccess.Roles))
	out = append(out, c.Roles...)
	return strutil.NormalizeRoles(append(out, c.RealmAccess.Roles...))
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken signs a token for username. Used by local tooling and tests.
func (s *JWTService) GenerateAccessToken(username, loginSource string, roles []string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:    username,
		LoginSource: loginSource,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.User() == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}

	return claims, nil
}

// Adapter exposes JWTService as the auth middleware's validator.
type Adapter struct {
	service *JWTService
}

func NewAdapter(service *JWTService) *Adapter {
	return &Adapter{service: service}
}

func (a *Adapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{
		Username:    claims.User(),
		Roles:       claims.AllRoles(),
		LoginSource: claims.LoginSource,
	}, nil
}
