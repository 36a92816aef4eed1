// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package authz makes per-resource access decisions.
//
// Authorize is a pure function over the caller identity, the owner of
// the requested resource and the operation class. It performs no I/O
// and touches no request state, which keeps every access rule testable
// as a plain table.
package authz

import (
	"github.com/mfigueredo/reports-service/internal/auth"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// DecisionAllow permits the operation.
	DecisionAllow Decision = iota
	// DecisionForbidden rejects an authenticated caller that lacks
	// access to the resource. Maps to HTTP 403.
	DecisionForbidden
	// DecisionUnauthenticated rejects a caller whose identity could not
	// be established. Maps to HTTP 401.
	DecisionUnauthenticated
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unauthenticated"
	}
}

// Operation classifies what the caller is trying to do. The class, not
// the concrete endpoint, determines which access rule applies.
type Operation int

const (
	// OpReadOwnCollection reads the caller's own data (e.g. "my
	// history"). The owner is always the caller; request input cannot
	// redirect it.
	OpReadOwnCollection Operation = iota
	// OpCreateOwn creates a record owned by the caller. Like reads of
	// own data, the owner is forced to the caller.
	OpCreateOwn
	// OpReadByOwner reads data belonging to an explicitly named user.
	// Only that user or an admin may do this.
	OpReadByOwner
	// OpReadShared reads data not scoped to a single user, such as
	// history filtered by analysis or the reports collection. Any
	// authenticated caller may do this.
	OpReadShared
	// OpDeleteSingle removes one record. Any authenticated caller may
	// do this.
	OpDeleteSingle
	// OpDeleteAll removes an entire collection. Any authenticated
	// caller may do this.
	OpDeleteAll
	// OpReadAll reads every user's data in one call. Admin only.
	OpReadAll
)

func (op Operation) String() string {
	switch op {
	case OpReadOwnCollection:
		return "read_own_collection"
	case OpCreateOwn:
		return "create_own"
	case OpReadByOwner:
		return "read_by_owner"
	case OpReadShared:
		return "read_shared"
	case OpDeleteSingle:
		return "delete_single"
	case OpDeleteAll:
		return "delete_all"
	case OpReadAll:
		return "read_all"
	default:
		return "unknown"
	}
}

// Authorize decides whether the caller may perform op on data owned by
// ownerID.
//
// Rules, in order:
//   - An unauthenticated caller is rejected for every operation.
//   - Own-data operations (OpReadOwnCollection, OpCreateOwn) are always
//     allowed once authenticated; EffectiveOwner has already pinned the
//     target to the caller.
//   - OpReadByOwner requires the caller to be the named owner or an
//     admin.
//   - OpReadAll requires an admin.
//   - Shared reads and deletes only require authentication.
func Authorize(caller auth.CallerIdentity, ownerID int, op Operation) Decision {
	if !caller.IsAuthenticated {
		return DecisionUnauthenticated
	}

	switch op {
	case OpReadOwnCollection, OpCreateOwn:
		return DecisionAllow
	case OpReadByOwner:
		if caller.IsAdmin() || ownerID == caller.UserID {
			return DecisionAllow
		}
		return DecisionForbidden
	case OpReadAll:
		if caller.IsAdmin() {
			return DecisionAllow
		}
		return DecisionForbidden
	case OpReadShared, OpDeleteSingle, OpDeleteAll:
		return DecisionAllow
	default:
		return DecisionForbidden
	}
}

// EffectiveOwner returns the owner ID an operation actually targets.
// For own-data operations the requested owner is ignored and the
// caller's own ID is used, with no admin exception: a client cannot
// read or write another user's data by naming them in the request body.
// All other operations target the requested owner unchanged.
func EffectiveOwner(caller auth.CallerIdentity, requested int, op Operation) int {
	switch op {
	case OpReadOwnCollection, OpCreateOwn:
		return caller.UserID
	default:
		return requested
	}
}
