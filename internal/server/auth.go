package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gravitas-games/idlecore/internal/config"
	"github.com/gravitas-games/idlecore/pkg/models"
)

// JWTValidator handles JWT token validation
type JWTValidator struct {
	secret []byte
	issuer string
}

// Claims represents JWT token claims issued by the platform login service
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	GameID   string `json:"game_id"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a new JWT validator using the shared HMAC secret
func NewJWTValidator(cfg *config.Config) *JWTValidator {
	return &JWTValidator{
		secret: []byte(cfg.JWT.Secret),
		issuer: cfg.JWT.Issuer,
	}
}

// ValidateToken verifies a token and extracts the player identity
func (v *JWTValidator) ValidateToken(tokenString string) (*models.Player, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user_id claim")
	}
	if claims.GameID == "" {
		return nil, fmt.Errorf("token missing game_id claim")
	}

	return &models.Player{
		ID:          claims.UserID,
		Username:    claims.Username,
		GameID:      claims.GameID,
		Connected:   true,
		ConnectedAt: time.Now(),
		LastSeen:    time.Now(),
	}, nil
}
