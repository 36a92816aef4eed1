// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package auth

import "context"

type contextKey string

const (
	claimsKey   contextKey = "auth_claims"
	identityKey contextKey = "auth_identity"
)

// WithClaims stores validated token claims in the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves validated token claims from the context.
// Returns nil when the request carried no token.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// WithIdentity stores the resolved caller identity in the context.
func WithIdentity(ctx context.Context, id CallerIdentity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller identity from the context.
// Returns an empty, unauthenticated identity when resolution never ran.
func IdentityFromContext(ctx context.Context) CallerIdentity {
	if id, ok := ctx.Value(identityKey).(CallerIdentity); ok {
		return id
	}
	return CallerIdentity{}
}
