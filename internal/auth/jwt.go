package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSecret string

const tokenLifetime = time.Hour * 24

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// Claims is the subset of token claims the rest of the service needs. JTI
// identifies the token itself so logout can revoke it.
type Claims struct {
	UserID    uint
	Email     string
	JTI       string
	ExpiresAt time.Time
}

func GenerateJWT(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	return token, nil
}

func ParseClaims(token *jwt.Token) (Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return Claims{}, fmt.Errorf("Invalid token claims")
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)

	if !ok {
		return Claims{}, fmt.Errorf("Invalid user ID in token claims")
	}

	jti, ok := mapClaims["jti"].(string)

	if !ok {
		return Claims{}, fmt.Errorf("Invalid token ID in token claims")
	}

	expFloat, ok := mapClaims["exp"].(float64)

	if !ok {
		return Claims{}, fmt.Errorf("Invalid expiry in token claims")
	}

	email, _ := mapClaims["email"].(string)

	return Claims{
		UserID:    uint(userIDFloat),
		Email:     email,
		JTI:       jti,
		ExpiresAt: time.Unix(int64(expFloat), 0),
	}, nil
}
