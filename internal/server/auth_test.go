package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gravitas-games/idlecore/internal/config"
)

func testValidator() *JWTValidator {
	return NewJWTValidator(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "platform-login"},
	})
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func validClaims() Claims {
	return Claims{
		UserID:   "42",
		Username: "alice",
		GameID:   "aviary",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "platform-login",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	v := testValidator()

	player, err := v.ValidateToken(signToken(t, "test-secret", validClaims()))
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if player.ID != "42" || player.Username != "alice" || player.GameID != "aviary" {
		t.Fatalf("Unexpected player identity: %+v", player)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	v := testValidator()

	if _, err := v.ValidateToken(signToken(t, "other-secret", validClaims())); err == nil {
		t.Fatalf("Expected error for wrong secret")
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	v := testValidator()

	claims := validClaims()
	claims.Issuer = "someone-else"
	if _, err := v.ValidateToken(signToken(t, "test-secret", claims)); err == nil {
		t.Fatalf("Expected error for wrong issuer")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	v := testValidator()

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	if _, err := v.ValidateToken(signToken(t, "test-secret", claims)); err == nil {
		t.Fatalf("Expected error for expired token")
	}
}

func TestValidateTokenMissingGame(t *testing.T) {
	v := testValidator()

	claims := validClaims()
	claims.GameID = ""
	if _, err := v.ValidateToken(signToken(t, "test-secret", claims)); err == nil {
		t.Fatalf("Expected error for missing game_id claim")
	}
}
