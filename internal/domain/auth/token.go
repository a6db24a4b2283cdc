package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserContext is the already-established identity of the caller.
type UserContext struct {
	UserID    int64  `json:"uid"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	HRID      *int64 `json:"hrId,omitempty"`
	ManagerID *int64 `json:"managerId,omitempty"`
}

type Claims struct {
	UserContext
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken signs user with HS256. A zero ttl produces a token without expiry.
func GenerateToken(secret string, user UserContext, ttl time.Duration) (string, error) {
	claims := Claims{UserContext: user}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !ValidRole(claims.Role) {
		return nil, errors.New("invalid role claim")
	}
	return claims, nil
}
