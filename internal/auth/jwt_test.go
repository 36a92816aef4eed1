// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mfigueredo/reports-service/internal/config"
)

const testSecret = "test-secret-key-for-token-validation"

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		SecretKey: testSecret,
		Issuer:    "auth-service",
		Audience:  "reports-service",
	}
}

// signToken builds a signed HS256 token for tests.
func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func validClaims() *Claims {
	return &Claims{
		Email: "ana@example.com",
		Role:  "User",
		Name:  "Ana",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "auth-service",
			Audience:  jwt.ClaimStrings{"reports-service"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestNewTokenValidatorEmptySecret(t *testing.T) {
	_, err := NewTokenValidator(&config.JWTConfig{SecretKey: ""})
	if err == nil {
		t.Fatal("NewTokenValidator with empty secret should fail")
	}
}

func TestValidateAcceptsValidToken(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	tokenString := signToken(t, testSecret, validClaims())

	claims, err := validator.Validate(tokenString)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != "7" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "7")
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "ana@example.com")
	}
}

func TestValidateRejectsExpiredTokenWithZeroSkew(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	// Expired one second ago. No clock skew allowance means this must
	// be rejected.
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Second))

	if _, err := validator.Validate(signToken(t, testSecret, claims)); err == nil {
		t.Fatal("Validate accepted a token expired 1s ago")
	}
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	claims := validClaims()
	claims.Issuer = "someone-else"

	if _, err := validator.Validate(signToken(t, testSecret, claims)); err == nil {
		t.Fatal("Validate accepted a token with wrong issuer")
	}
}

func TestValidateRejectsWrongAudience(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	claims := validClaims()
	claims.Audience = jwt.ClaimStrings{"another-service"}

	if _, err := validator.Validate(signToken(t, testSecret, claims)); err == nil {
		t.Fatal("Validate accepted a token with wrong audience")
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	if _, err := validator.Validate(signToken(t, "a-different-secret-key", validClaims())); err == nil {
		t.Fatal("Validate accepted a token signed with the wrong key")
	}
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := validator.Validate(unsigned); err == nil {
		t.Fatal("Validate accepted a token with alg=none")
	}
}

func TestValidateRejectsMalformedToken(t *testing.T) {
	validator, err := NewTokenValidator(testJWTConfig())
	if err != nil {
		t.Fatalf("NewTokenValidator failed: %v", err)
	}

	if _, err := validator.Validate("not.a.token"); err == nil {
		t.Fatal("Validate accepted a malformed token")
	}
}
