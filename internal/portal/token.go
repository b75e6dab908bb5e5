package portal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims are the fields the backend puts in its access tokens.
type tokenClaims struct {
	ID     any    `json:"id"`
	UserID any    `json:"userId"`
	Tipo   string `json:"tipo,omitempty"`
	jwt.RegisteredClaims
}

// TokenInfo is what the client can learn from a token without the
// backend's signing key.
type TokenInfo struct {
	UserID    string
	Tipo      string
	ExpiresAt time.Time // zero if the token has no exp claim
}

// Expired reports whether the token's exp claim is in the past.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// ParseToken decodes the token payload without verifying the signature.
// Verification is the backend's job; the client only needs the user id to
// look up the profile.
func ParseToken(token string) (TokenInfo, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	info := TokenInfo{Tipo: claims.Tipo}
	for _, c := range []any{claims.ID, claims.UserID, claims.Subject} {
		if id := claimString(c); id != "" {
			info.UserID = id
			break
		}
	}
	if info.UserID == "" {
		return TokenInfo{}, fmt.Errorf("%w: no user id claim", ErrInvalidToken)
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// UserIDFromToken returns the id claim of the token.
func UserIDFromToken(token string) (string, error) {
	info, err := ParseToken(token)
	if err != nil {
		return "", err
	}
	return info.UserID, nil
}

func claimString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
