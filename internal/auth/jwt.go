package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the single custom claim embedded in a bearer token: the
// identifier of the user it was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// GenerateToken issues an HS256-signed bearer token for userID that expires
// after validity.
func GenerateToken(userID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseUserID verifies signature and expiry and returns the embedded user
// identifier. Any failure — malformed token, bad signature, expiry — yields
// ok=false; callers treat absence as unauthenticated.
func ParseUserID(tokenString string, secret []byte) (string, bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}

	return claims.UserID, true
}
