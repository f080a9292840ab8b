package roletoken

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role session tokens carry the simulated role between requests so the
// client does not resend its toggle on every call. They are a convenience
// claim carrier, not an authentication mechanism: anyone may mint one for
// any role via the session endpoint.

var ErrInvalidToken = errors.New("invalid or expired role token")

type Claims struct {
	Role        string `json:"role"`
	CashierName string `json:"cashier_name"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	secret := os.Getenv("ROLE_TOKEN_SECRET")
	if secret == "" {
		secret = "kopdes-pos-role-token"
	}
	return []byte(secret)
}

// Generate creates a signed role session token valid for one working day.
func Generate(role, cashierName string) (string, error) {
	claims := &Claims{
		Role:        role,
		CashierName: cashierName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "kopdes-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// Validate parses a role session token.
func Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
