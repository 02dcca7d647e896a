package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/regondolajezreel/Proj/app/config"
	"github.com/regondolajezreel/Proj/app/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(7, "jane@example.com", "Jane", "Doe", models.RoleProfessor)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	claims, err := ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken error: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "jane@example.com" || claims.Role != models.RoleProfessor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	claims := SessionClaims{
		UserID: 1,
		Email:  "old@example.com",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ValidateSessionToken(signed); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSessionTokenTampered(t *testing.T) {
	token, err := GenerateSessionToken(1, "a@example.com", "A", "B", models.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ValidateSessionToken(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
}
