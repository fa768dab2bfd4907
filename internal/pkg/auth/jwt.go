// Package auth provides functionality for generating and parsing JSON Web Tokens (JWT)
// for user authentication. It defines custom claims, token generation, and validation logic.
package auth

import (
	"time"

	"rewear/internal/config"

	"github.com/golang-jwt/jwt/v4"
)

// secretKey is the key used to sign the JWT.
var secretKey = []byte(config.JWTSecret)

// TOKENEXP defines the token expiration duration.
const TOKENEXP = time.Hour * 3

// Claims represents the custom JWT claims that include the user ID, the moderator flag and standard claims.
type Claims struct {
	UserID  int32
	IsAdmin bool
	jwt.RegisteredClaims
}

// GenerateToken creates a new signed JWT for a given user.
// The token expires after TOKENEXP.
func GenerateToken(userID int32, isAdmin bool) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TOKENEXP)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken validates the provided JWT token string and parses its claims.
// It returns the Claims if the token is valid, or an error otherwise.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
