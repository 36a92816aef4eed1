// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mfigueredo/reports-service/internal/config"
)

// TokenValidator validates bearer tokens issued by the upstream
// identity provider. The service never mints tokens of its own.
type TokenValidator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenValidator creates a validator from the JWT configuration.
//
// Returns an error if the signing key is empty: a service that cannot
// verify token signatures must not start. Issuer and audience are
// optional; when set, tokens must match them exactly.
//
// Example:
//
//	validator, err := auth.NewTokenValidator(&cfg.Security.JWT)
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to initialize token validator")
//	}
func NewTokenValidator(cfg *config.JWTConfig) (*TokenValidator, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required but was empty")
	}

	return &TokenValidator{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}, nil
}

// Validate parses and verifies a JWT token string.
//
// Validation Steps:
//  1. Parse token structure and extract claims
//  2. Verify HMAC-SHA256 signature matches the configured key
//  3. Check signing algorithm is HMAC (prevents algorithm confusion attacks)
//  4. Verify expiration and not-before with ZERO clock skew; a token
//     expired one second ago is rejected
//  5. Verify issuer and audience exactly when configured
//
// Returns the parsed claims, or an error describing the first check
// that failed.
func (v *TokenValidator) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
