package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harentsoaR/clinic-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate("P001", models.RolePatient)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "P001" {
		t.Errorf("UserID = %q, want P001", claims.UserID)
	}
	if claims.Role != models.RolePatient {
		t.Errorf("Role = %q, want patient", claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("missing expiry")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 24*time.Hour {
		t.Errorf("expiry %v away, want about 24h", ttl)
	}
}

func TestValidateWrongKey(t *testing.T) {
	token, err := NewTokenService("key-one").Generate("admin", models.RoleDoctor)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewTokenService("key-two").Validate(token); err == nil {
		t.Fatal("token signed with a different key validated")
	}
}

func TestValidateTampered(t *testing.T) {
	svc := NewTokenService("test-secret")
	token, err := svc.Generate("P001", models.RolePatient)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Validate(tampered); err == nil {
		t.Fatal("tampered token validated")
	}
}

func TestValidateExpired(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		UserID: "P001",
		Role:   models.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenService(secret).Validate(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")
	for _, bad := range []string{"", "not.a.token", "aaaa"} {
		if _, err := svc.Validate(bad); err == nil {
			t.Fatalf("garbage token %q validated", bad)
		}
	}
}
