// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package auth resolves the caller identity for each request.
//
// Identity comes from two sources, in fixed precedence order:
//
//  1. Trusted headers injected by the API gateway (X-User-Id,
//     X-User-Email, X-User-Role, X-User-Name). If ANY of these headers
//     is present the header source wins, even when its values are
//     partial or malformed.
//  2. Claims from a validated bearer token.
//
// When neither source yields anything the request proceeds with an
// empty identity. Identity resolution never fails a request; it only
// describes the caller. Authorization decisions belong to the authz
// package.
package auth

import (
	"net/http"
	"strconv"
	"strings"
)

// Trusted identity headers injected by the API gateway.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
	HeaderUserName  = "X-User-Name"
)

// Role is the caller's access level.
type Role int

const (
	RoleUnknown Role = iota
	RoleUser
	RoleAdmin
)

// ParseRole maps a role string to a Role. Matching is case-insensitive;
// anything that is not "admin" or "user" is RoleUnknown.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// CallerIdentity describes who is making a request. A zero UserID means
// the caller could not be resolved to a concrete user.
type CallerIdentity struct {
	UserID          int
	Email           string
	Role            Role
	DisplayName     string
	IsAuthenticated bool
}

// IsAdmin reports whether the caller has administrative access. An
// admin role claim without authentication does not grant anything, so
// an unauthenticated identity is never admin.
func (id CallerIdentity) IsAdmin() bool {
	return id.IsAuthenticated && id.Role == RoleAdmin
}

// Source extracts identity fields from one origin. It returns false
// when the origin contributed nothing, letting resolution fall through
// to the next source.
type Source func(r *http.Request, claims *Claims) (CallerIdentity, bool)

// sources is the resolution pipeline in precedence order.
var sources = []Source{
	fromTrustedHeaders,
	fromTokenClaims,
}

// fromTrustedHeaders builds an identity from the gateway-injected
// headers. It fires if any of the four headers is present; each field
// is filled independently, so partial header sets are fine. A user ID
// that does not parse as an integer resolves to zero.
func fromTrustedHeaders(r *http.Request, _ *Claims) (CallerIdentity, bool) {
	rawID := r.Header.Get(HeaderUserID)
	email := r.Header.Get(HeaderUserEmail)
	role := r.Header.Get(HeaderUserRole)
	name := r.Header.Get(HeaderUserName)

	if rawID == "" && email == "" && role == "" && name == "" {
		return CallerIdentity{}, false
	}

	userID, err := strconv.Atoi(rawID)
	if err != nil {
		userID = 0
	}

	return CallerIdentity{
		UserID:      userID,
		Email:       email,
		Role:        ParseRole(role),
		DisplayName: name,
	}, true
}

// fromTokenClaims builds an identity from validated token claims. The
// user ID comes from the Subject claim; a non-numeric subject resolves
// to zero.
func fromTokenClaims(_ *http.Request, claims *Claims) (CallerIdentity, bool) {
	if claims == nil {
		return CallerIdentity{}, false
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		userID = 0
	}

	return CallerIdentity{
		UserID:      userID,
		Email:       claims.Email,
		Role:        ParseRole(claims.Role),
		DisplayName: claims.Name,
	}, true
}

// Resolve determines the caller identity for a request. The claims
// argument is the validated token claims for the request, or nil when
// no token was presented.
//
// The caller counts as authenticated when it resolved to a non-zero
// user ID or presented a validated token.
func Resolve(r *http.Request, claims *Claims) CallerIdentity {
	var identity CallerIdentity
	for _, source := range sources {
		if id, ok := source(r, claims); ok {
			identity = id
			break
		}
	}

	identity.IsAuthenticated = identity.UserID != 0 || claims != nil
	return identity
}
