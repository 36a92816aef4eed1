// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package authz

import (
	"testing"

	"github.com/mfigueredo/reports-service/internal/auth"
)

func authed(userID int, role auth.Role) auth.CallerIdentity {
	return auth.CallerIdentity{UserID: userID, Role: role, IsAuthenticated: true}
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	anonymous := auth.CallerIdentity{}

	ops := []Operation{
		OpReadOwnCollection,
		OpCreateOwn,
		OpReadByOwner,
		OpReadShared,
		OpDeleteSingle,
		OpDeleteAll,
		OpReadAll,
	}

	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			if got := Authorize(anonymous, 5, op); got != DecisionUnauthenticated {
				t.Errorf("Authorize(anonymous, 5, %s) = %s, want unauthenticated", op, got)
			}
		})
	}
}

func TestAuthorizeDecisionTable(t *testing.T) {
	user := authed(5, auth.RoleUser)
	admin := authed(1, auth.RoleAdmin)

	tests := []struct {
		name    string
		caller  auth.CallerIdentity
		ownerID int
		op      Operation
		want    Decision
	}{
		{"user reads own collection", user, 5, OpReadOwnCollection, DecisionAllow},
		{"user creates own", user, 5, OpCreateOwn, DecisionAllow},
		{"user reads own data by owner", user, 5, OpReadByOwner, DecisionAllow},
		{"user reads another user's data", user, 9, OpReadByOwner, DecisionForbidden},
		{"admin reads another user's data", admin, 9, OpReadByOwner, DecisionAllow},
		{"user reads shared data", user, 0, OpReadShared, DecisionAllow},
		{"user deletes single", user, 0, OpDeleteSingle, DecisionAllow},
		{"user deletes all", user, 0, OpDeleteAll, DecisionAllow},
		{"admin deletes all", admin, 0, OpDeleteAll, DecisionAllow},
		{"user reads all users' data", user, 0, OpReadAll, DecisionForbidden},
		{"admin reads all users' data", admin, 0, OpReadAll, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.caller, tt.ownerID, tt.op); got != tt.want {
				t.Errorf("Authorize(%+v, %d, %s) = %s, want %s", tt.caller, tt.ownerID, tt.op, got, tt.want)
			}
		})
	}
}

func TestAuthorizeAdminRoleWithoutAuthentication(t *testing.T) {
	// A role claim alone grants nothing: an unauthenticated identity
	// carrying RoleAdmin is still rejected everywhere.
	impostor := auth.CallerIdentity{Role: auth.RoleAdmin}

	if got := Authorize(impostor, 9, OpReadByOwner); got != DecisionUnauthenticated {
		t.Errorf("Authorize(unauthenticated admin, 9, read_by_owner) = %s, want unauthenticated", got)
	}
}

func TestEffectiveOwnerForcesCallerForOwnDataOps(t *testing.T) {
	user := authed(5, auth.RoleUser)
	admin := authed(1, auth.RoleAdmin)

	tests := []struct {
		name      string
		caller    auth.CallerIdentity
		requested int
		op        Operation
		want      int
	}{
		{"create own ignores requested owner", user, 42, OpCreateOwn, 5},
		{"create own ignores requested owner for admin too", admin, 42, OpCreateOwn, 1},
		{"read own collection pins to caller", user, 99, OpReadOwnCollection, 5},
		{"read by owner keeps requested", user, 9, OpReadByOwner, 9},
		{"delete keeps requested", admin, 7, OpDeleteSingle, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveOwner(tt.caller, tt.requested, tt.op); got != tt.want {
				t.Errorf("EffectiveOwner(%+v, %d, %s) = %d, want %d", tt.caller, tt.requested, tt.op, got, tt.want)
			}
		})
	}
}
