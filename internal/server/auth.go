package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

const (
	bcryptCost        = 10
	bcryptMaxPassword = 72
)

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.UserID,
		"iss": config.Issuer,
		"iat": now.Unix(),
		"exp": now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

// hashPassword hashes with bcrypt; bcrypt only reads the first 72 bytes.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword reports whether password matches the stored hash.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPassword {
		b = b[:bcryptMaxPassword]
	}
	return b
}
