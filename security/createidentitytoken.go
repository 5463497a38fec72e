package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamop.dk/bosted/model"
)

const (
	Issuer   = "bosted"
	Audience = "bosted-staff"
)

// StaffIdentity is who a staff JWT speaks for: a user that exists in Directus.
type StaffIdentity struct {
	UserID string `json:"nameid"`
	Email  string `json:"email"`
	Name   string `json:"unique_name"`
}

func IdentityOf(user model.User) StaffIdentity {
	return StaffIdentity{UserID: user.ID, Email: user.Email, Name: user.DisplayName()}
}

type IdentityClaims struct {
	StaffIdentity
	jwt.RegisteredClaims
}

func CreateIdentityToken(identity StaffIdentity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		StaffIdentity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   identity.UserID,
			Audience:  []string{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// ParseIdentityToken verifies signature, expiry, issuer and audience.
func ParseIdentityToken(tokenStr string, secret []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.Email == "" {
		return nil, errors.New("token carries no email")
	}
	return claims, nil
}
